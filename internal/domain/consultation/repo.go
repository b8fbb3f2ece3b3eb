package consultation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	CreateSession(ctx context.Context, s *Session) error
	GetSessionByID(ctx context.Context, id uuid.UUID) (*Session, error)
	// GetActiveSession returns (nil, nil) when no active session exists
	// for the pair.
	GetActiveSession(ctx context.Context, patientID, queueEntryID uuid.UUID) (*Session, error)
	CompleteSession(ctx context.Context, id uuid.UUID, endedAt time.Time) error
	ListSessionsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Session, int, error)

	InsertItem(ctx context.Context, it *TreatmentItem) error
	ListItemsBySession(ctx context.Context, sessionID uuid.UUID) ([]*TreatmentItem, error)

	InsertNote(ctx context.Context, n *Note) error
	ListNotesByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Note, int, error)
}
