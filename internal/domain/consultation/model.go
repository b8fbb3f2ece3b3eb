package consultation

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

// ItemType classifies a prescribed treatment item.
type ItemType string

const (
	ItemMedication ItemType = "medication"
	ItemService    ItemType = "service"
)

// Session maps to the consultation_session table. At most one active
// session exists per (patient, queue entry); the workflow reuses it
// when present.
type Session struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	PatientID    uuid.UUID     `db:"patient_id" json:"patient_id"`
	DoctorID     uuid.UUID     `db:"doctor_id" json:"doctor_id"`
	QueueEntryID uuid.UUID     `db:"queue_entry_id" json:"queue_entry_id"`
	Status       SessionStatus `db:"status" json:"status"`
	StartedAt    time.Time     `db:"started_at" json:"started_at"`
	EndedAt      *time.Time    `db:"ended_at" json:"ended_at,omitempty"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// TreatmentItem maps to the treatment_item table. CatalogID is nil when
// the prescribed name could not be resolved against the catalog; the
// item is stored anyway. Amount is always recomputed server-side.
type TreatmentItem struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	SessionID   uuid.UUID  `db:"session_id" json:"session_id"`
	CatalogID   *uuid.UUID `db:"catalog_id" json:"catalog_id,omitempty"`
	Name        string     `db:"name" json:"name"`
	ItemType    ItemType   `db:"item_type" json:"item_type"`
	Quantity    float64    `db:"quantity" json:"quantity"`
	PriceTier   string     `db:"price_tier" json:"price_tier"`
	Rate        float64    `db:"rate" json:"rate"`
	Amount      float64    `db:"amount" json:"amount"`
	Dosage      *string    `db:"dosage" json:"dosage,omitempty"`
	Frequency   *string    `db:"frequency" json:"frequency,omitempty"`
	Duration    *string    `db:"duration" json:"duration,omitempty"`
	Instruction *string    `db:"instruction" json:"instruction,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// Note maps to the consultation_note table. Insert-only.
type Note struct {
	ID            uuid.UUID `db:"id" json:"id"`
	SessionID     uuid.UUID `db:"session_id" json:"session_id"`
	PatientID     uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorID      uuid.UUID `db:"doctor_id" json:"doctor_id"`
	Complaint     *string   `db:"complaint" json:"complaint,omitempty"`
	Diagnosis     *string   `db:"diagnosis" json:"diagnosis,omitempty"`
	TreatmentPlan *string   `db:"treatment_plan" json:"treatment_plan,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// ItemInput is a prescribed item as submitted at completion time.
type ItemInput struct {
	Name        string   `json:"name"`
	ItemType    ItemType `json:"item_type,omitempty"`
	Quantity    float64  `json:"quantity"`
	PriceTier   string   `json:"price_tier,omitempty"`
	Rate        float64  `json:"rate,omitempty"`
	Dosage      string   `json:"dosage,omitempty"`
	Frequency   string   `json:"frequency,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Instruction string   `json:"instruction,omitempty"`
}

// Classify returns the item's type. An explicit item_type from the
// caller wins; otherwise the item is a medication iff at least one of
// dosage, frequency or duration is filled in.
func (in *ItemInput) Classify() ItemType {
	switch in.ItemType {
	case ItemMedication, ItemService:
		return in.ItemType
	}
	if strings.TrimSpace(in.Dosage) != "" ||
		strings.TrimSpace(in.Frequency) != "" ||
		strings.TrimSpace(in.Duration) != "" {
		return ItemMedication
	}
	return ItemService
}
