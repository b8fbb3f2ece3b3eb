package patient

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	patients map[uuid.UUID]*Patient
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return p, nil
}

func (m *mockRepo) GetByMRN(_ context.Context, mrn string) (*Patient, error) {
	for _, p := range m.patients {
		if p.MRN == mrn {
			return p, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	m.patients[p.ID] = p
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	var result []*Patient
	for _, p := range m.patients {
		result = append(result, p)
	}
	return result, len(result), nil
}

func TestCreatePatient(t *testing.T) {
	svc := NewService(newMockRepo())

	p := &Patient{MRN: "MRN-001", FirstName: "Jane", LastName: "Roe"}
	if err := svc.CreatePatient(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected ID to be set")
	}
	if !p.Active {
		t.Error("expected new patient to be active")
	}
}

func TestCreatePatient_MRNRequired(t *testing.T) {
	svc := NewService(newMockRepo())

	p := &Patient{FirstName: "Jane"}
	if err := svc.CreatePatient(context.Background(), p); err == nil {
		t.Error("expected error for missing mrn")
	}
}

func TestCreatePatient_NameRequired(t *testing.T) {
	svc := NewService(newMockRepo())

	p := &Patient{MRN: "MRN-001"}
	if err := svc.CreatePatient(context.Background(), p); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestCreatePatient_DuplicateMRN(t *testing.T) {
	svc := NewService(newMockRepo())

	first := &Patient{MRN: "MRN-001", FirstName: "Jane", LastName: "Roe"}
	if err := svc.CreatePatient(context.Background(), first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dup := &Patient{MRN: "MRN-001", FirstName: "John", LastName: "Doe"}
	if err := svc.CreatePatient(context.Background(), dup); err == nil {
		t.Error("expected error for duplicate mrn")
	}
}

func TestGetPatientByMRN(t *testing.T) {
	svc := NewService(newMockRepo())

	p := &Patient{MRN: "MRN-002", FirstName: "John", LastName: "Doe"}
	svc.CreatePatient(context.Background(), p)

	fetched, err := svc.GetPatientByMRN(context.Background(), "MRN-002")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetched.ID != p.ID {
		t.Error("expected same patient")
	}
}

func TestPatientFullName(t *testing.T) {
	p := &Patient{FirstName: "Jane", LastName: "Roe"}
	if p.FullName() != "Jane Roe" {
		t.Errorf("unexpected full name: %s", p.FullName())
	}

	p = &Patient{LastName: "Roe"}
	if p.FullName() != "Roe" {
		t.Errorf("unexpected full name: %s", p.FullName())
	}
}
