package consultation

import (
	"context"

	"github.com/google/uuid"
)

// Service carries the read side of the consultation module. Writes all
// go through the Workflow.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetSession(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.repo.GetSessionByID(ctx, id)
}

func (s *Service) ListSessionsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Session, int, error) {
	return s.repo.ListSessionsByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListItemsBySession(ctx context.Context, sessionID uuid.UUID) ([]*TreatmentItem, error) {
	return s.repo.ListItemsBySession(ctx, sessionID)
}

func (s *Service) ListNotesByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Note, int, error) {
	return s.repo.ListNotesByPatient(ctx, patientID, limit, offset)
}
