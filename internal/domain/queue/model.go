package queue

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a waiting-room entry.
type Status string

const (
	StatusWaiting        Status = "waiting"
	StatusInConsultation Status = "in_consultation"
	StatusCompleted      Status = "completed"
	StatusArchived       Status = "archived"
)

// Integrity errors returned by UpdateSessionData. Archived entries are
// immutable, and the entry fetched for a write must be the entry the
// caller asked for.
var (
	ErrEntryArchived = errors.New("queue entry is archived")
	ErrQueueMismatch = errors.New("queue entry does not match requested id")
)

// Entry maps to the queue_entry table. SessionData holds the in-progress
// consultation snapshot as raw JSON.
type Entry struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	PatientID   uuid.UUID       `db:"patient_id" json:"patient_id"`
	Status      Status          `db:"status" json:"status"`
	SessionData json.RawMessage `db:"session_data" json:"session_data,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}
