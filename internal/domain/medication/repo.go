package medication

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Insert(ctx context.Context, m *CurrentMedication) error
	GetByID(ctx context.Context, id uuid.UUID) (*CurrentMedication, error)
	ListActiveByPatient(ctx context.Context, patientID uuid.UUID) ([]*CurrentMedication, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}
