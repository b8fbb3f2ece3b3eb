package activity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Type categorizes a feed entry by the clinical event that produced it.
type Type string

const (
	TypeConsultation Type = "consultation"
	TypeMedication   Type = "medication"
	TypeTreatment    Type = "treatment"
)

// FeedEntry maps to the activity_feed table. Rows are append-only; the
// feed is the patient's chronological clinical history.
type FeedEntry struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	PatientID     uuid.UUID       `db:"patient_id" json:"patient_id"`
	ActivityType  Type            `db:"activity_type" json:"activity_type"`
	ActivityDate  time.Time       `db:"activity_date" json:"activity_date"`
	Title         string          `db:"title" json:"title"`
	Content       string          `db:"content" json:"content"`
	Metadata      json.RawMessage `db:"metadata" json:"metadata,omitempty"`
	StaffMemberID *uuid.UUID      `db:"staff_member_id" json:"staff_member_id,omitempty"`
	Priority      string          `db:"priority" json:"priority"`
	Status        string          `db:"status" json:"status"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}
