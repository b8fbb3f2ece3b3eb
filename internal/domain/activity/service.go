package activity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var validTypes = map[Type]bool{
	TypeConsultation: true,
	TypeMedication:   true,
	TypeTreatment:    true,
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Append adds an entry to a patient's feed. Entries are never updated
// or deleted afterwards.
func (s *Service) Append(ctx context.Context, e *FeedEntry) error {
	if e.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if !validTypes[e.ActivityType] {
		return fmt.Errorf("activity_type must be one of: consultation, medication, treatment")
	}
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if e.ActivityDate.IsZero() {
		e.ActivityDate = time.Now()
	}
	if e.Priority == "" {
		e.Priority = "normal"
	}
	if e.Status == "" {
		e.Status = "recorded"
	}
	return s.repo.Insert(ctx, e)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*FeedEntry, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}
