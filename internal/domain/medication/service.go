package medication

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add records a medication the patient is now taking. Status defaults
// to active; the row outlives whatever consultation created it.
func (s *Service) Add(ctx context.Context, m *CurrentMedication) error {
	if m.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if m.StartedAt.IsZero() {
		m.StartedAt = time.Now()
	}
	if m.Status == "" {
		m.Status = StatusActive
	}
	if m.Status != StatusActive && m.Status != StatusStopped {
		return fmt.Errorf("status must be active or stopped")
	}
	return s.repo.Insert(ctx, m)
}

func (s *Service) ListActiveByPatient(ctx context.Context, patientID uuid.UUID) ([]*CurrentMedication, error) {
	return s.repo.ListActiveByPatient(ctx, patientID)
}

func (s *Service) Stop(ctx context.Context, id uuid.UUID) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("medication not found: %w", err)
	}
	if m.Status == StatusStopped {
		return nil
	}
	return s.repo.UpdateStatus(ctx, id, StatusStopped)
}
