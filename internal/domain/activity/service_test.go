package activity

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	entries []*FeedEntry
}

func (m *mockRepo) Insert(_ context.Context, e *FeedEntry) error {
	e.ID = uuid.New()
	cp := *e
	m.entries = append(m.entries, &cp)
	return nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*FeedEntry, int, error) {
	var out []*FeedEntry
	for _, e := range m.entries {
		if e.PatientID == patientID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ActivityDate.After(out[j].ActivityDate) })
	return out, len(out), nil
}

func TestAppend(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	e := &FeedEntry{PatientID: uuid.New(), ActivityType: TypeConsultation, Title: "Consultation completed"}
	if err := svc.Append(context.Background(), e); err != nil {
		t.Fatal(err)
	}
	if e.ActivityDate.IsZero() {
		t.Error("activity date should default to now")
	}
	if e.Priority != "normal" || e.Status != "recorded" {
		t.Errorf("defaults not applied: priority=%q status=%q", e.Priority, e.Status)
	}
}

func TestAppend_InvalidType(t *testing.T) {
	svc := NewService(&mockRepo{})
	err := svc.Append(context.Background(), &FeedEntry{PatientID: uuid.New(), ActivityType: "billing", Title: "x"})
	if err == nil {
		t.Fatal("expected error for unknown activity type")
	}
}

func TestAppend_TitleRequired(t *testing.T) {
	svc := NewService(&mockRepo{})
	err := svc.Append(context.Background(), &FeedEntry{PatientID: uuid.New(), ActivityType: TypeMedication, Title: "  "})
	if err == nil {
		t.Fatal("expected error for blank title")
	}
}

func TestListByPatient_NewestFirst(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	pid := uuid.New()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		e := &FeedEntry{
			PatientID:    pid,
			ActivityType: TypeTreatment,
			Title:        "entry",
			ActivityDate: base.Add(time.Duration(i) * time.Hour),
		}
		if err := svc.Append(context.Background(), e); err != nil {
			t.Fatal(err)
		}
	}
	got, total, err := svc.ListByPatient(context.Background(), pid, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 {
		t.Fatalf("expected 3 entries, got %d", total)
	}
	for i := 1; i < len(got); i++ {
		if got[i].ActivityDate.After(got[i-1].ActivityDate) {
			t.Error("entries not in newest-first order")
		}
	}
}
