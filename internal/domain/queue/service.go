package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

var validStatuses = map[Status]bool{
	StatusWaiting:        true,
	StatusInConsultation: true,
	StatusCompleted:      true,
	StatusArchived:       true,
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Enqueue(ctx context.Context, e *Entry) error {
	if e.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if e.Status == "" {
		e.Status = StatusWaiting
	}
	if !validStatuses[e.Status] {
		return fmt.Errorf("status must be one of: waiting, in_consultation, completed, archived")
	}
	return s.repo.Create(ctx, e)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateSessionData stores the consultation snapshot on a queue entry.
// Archived entries reject the write, and the fetched record must carry
// the id the caller asked for.
func (s *Service) UpdateSessionData(ctx context.Context, queueID uuid.UUID, data json.RawMessage) error {
	entry, err := s.repo.GetByID(ctx, queueID)
	if err != nil {
		return fmt.Errorf("fetch queue entry: %w", err)
	}
	if entry.Status == StatusArchived {
		return ErrEntryArchived
	}
	if entry.ID != queueID {
		return ErrQueueMismatch
	}
	affected, err := s.repo.UpdateSessionData(ctx, queueID, data)
	if err != nil {
		return err
	}
	if affected == 0 {
		// Entry was archived between the read above and the write.
		return ErrEntryArchived
	}
	return nil
}

func (s *Service) MarkCompleted(ctx context.Context, queueID uuid.UUID) error {
	return s.repo.UpdateStatus(ctx, queueID, StatusCompleted)
}

func (s *Service) MarkInConsultation(ctx context.Context, queueID uuid.UUID) error {
	return s.repo.UpdateStatus(ctx, queueID, StatusInConsultation)
}

func (s *Service) Archive(ctx context.Context, queueID uuid.UUID) error {
	return s.repo.UpdateStatus(ctx, queueID, StatusArchived)
}

func (s *Service) ListByStatus(ctx context.Context, status Status, limit, offset int) ([]*Entry, int, error) {
	if !validStatuses[status] {
		return nil, 0, fmt.Errorf("status must be one of: waiting, in_consultation, completed, archived")
	}
	return s.repo.ListByStatus(ctx, status, limit, offset)
}
