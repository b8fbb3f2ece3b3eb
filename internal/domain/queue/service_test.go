package queue

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type mockRepo struct {
	entries map[uuid.UUID]*Entry
	// when set, GetByID returns this entry regardless of the id asked for
	getOverride *Entry
	writes      int
}

func newMockRepo() *mockRepo {
	return &mockRepo{entries: make(map[uuid.UUID]*Entry)}
}

func (m *mockRepo) Create(_ context.Context, e *Entry) error {
	e.ID = uuid.New()
	cp := *e
	m.entries[e.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Entry, error) {
	if m.getOverride != nil {
		return m.getOverride, nil
	}
	e, ok := m.entries[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return e, nil
}

func (m *mockRepo) UpdateSessionData(_ context.Context, id uuid.UUID, data json.RawMessage) (int64, error) {
	e, ok := m.entries[id]
	if !ok || e.Status == StatusArchived {
		return 0, nil
	}
	e.SessionData = data
	m.writes++
	return 1, nil
}

func (m *mockRepo) UpdateStatus(_ context.Context, id uuid.UUID, status Status) error {
	e, ok := m.entries[id]
	if !ok {
		return pgx.ErrNoRows
	}
	e.Status = status
	return nil
}

func (m *mockRepo) ListByStatus(_ context.Context, status Status, limit, offset int) ([]*Entry, int, error) {
	var out []*Entry
	for _, e := range m.entries {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

func enqueue(t *testing.T, svc *Service, repo *mockRepo, status Status) *Entry {
	t.Helper()
	e := &Entry{PatientID: uuid.New(), Status: status}
	if err := svc.Enqueue(context.Background(), e); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	return repo.entries[e.ID]
}

func TestUpdateSessionData(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	e := enqueue(t, svc, repo, StatusInConsultation)

	data := json.RawMessage(`{"complaint":"headache"}`)
	if err := svc.UpdateSessionData(context.Background(), e.ID, data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(repo.entries[e.ID].SessionData) != string(data) {
		t.Errorf("session data not written: %s", repo.entries[e.ID].SessionData)
	}
}

func TestUpdateSessionData_ArchivedEntry(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	e := enqueue(t, svc, repo, StatusArchived)

	err := svc.UpdateSessionData(context.Background(), e.ID, json.RawMessage(`{}`))
	if err != ErrEntryArchived {
		t.Fatalf("expected ErrEntryArchived, got %v", err)
	}
	if repo.writes != 0 {
		t.Error("archived entry must not be written")
	}
}

func TestUpdateSessionData_QueueMismatch(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	other := enqueue(t, svc, repo, StatusWaiting)
	repo.getOverride = other

	err := svc.UpdateSessionData(context.Background(), uuid.New(), json.RawMessage(`{}`))
	if err != ErrQueueMismatch {
		t.Fatalf("expected ErrQueueMismatch, got %v", err)
	}
	if repo.writes != 0 {
		t.Error("mismatched entry must not be written")
	}
}

func TestUpdateSessionData_ConcurrentArchive(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	e := enqueue(t, svc, repo, StatusWaiting)

	// Entry looks live at read time but the conditional update misses.
	live := *e
	repo.getOverride = &live
	repo.entries[e.ID].Status = StatusArchived

	err := svc.UpdateSessionData(context.Background(), e.ID, json.RawMessage(`{}`))
	if err != ErrEntryArchived {
		t.Fatalf("expected ErrEntryArchived, got %v", err)
	}
}

func TestEnqueue_DefaultsToWaiting(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	e := &Entry{PatientID: uuid.New()}
	if err := svc.Enqueue(context.Background(), e); err != nil {
		t.Fatal(err)
	}
	if e.Status != StatusWaiting {
		t.Errorf("expected waiting, got %s", e.Status)
	}
}

func TestEnqueue_PatientRequired(t *testing.T) {
	svc := NewService(newMockRepo())
	if err := svc.Enqueue(context.Background(), &Entry{}); err == nil {
		t.Fatal("expected error for missing patient_id")
	}
}

func TestMarkCompleted(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	e := enqueue(t, svc, repo, StatusInConsultation)

	if err := svc.MarkCompleted(context.Background(), e.ID); err != nil {
		t.Fatal(err)
	}
	if repo.entries[e.ID].Status != StatusCompleted {
		t.Errorf("expected completed, got %s", repo.entries[e.ID].Status)
	}
}
