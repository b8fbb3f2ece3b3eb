package medication

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive  = "active"
	StatusStopped = "stopped"
)

// CurrentMedication maps to the current_medication table. Rows track
// what a patient is taking now; stopping a medication keeps the row for
// history rather than deleting it.
type CurrentMedication struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	PatientID    uuid.UUID  `db:"patient_id" json:"patient_id"`
	Name         string     `db:"name" json:"name"`
	Dosage       *string    `db:"dosage" json:"dosage,omitempty"`
	Frequency    *string    `db:"frequency" json:"frequency,omitempty"`
	Duration     *string    `db:"duration" json:"duration,omitempty"`
	Instruction  *string    `db:"instruction" json:"instruction,omitempty"`
	PrescribedBy *uuid.UUID `db:"prescribed_by" json:"prescribed_by,omitempty"`
	StartedAt    time.Time  `db:"started_at" json:"started_at"`
	Status       string     `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
