package consultation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinicdesk/internal/domain/activity"
	"github.com/clinicdesk/clinicdesk/internal/domain/catalog"
	"github.com/clinicdesk/clinicdesk/internal/domain/medication"
)

// QueueStore is the slice of the queue service the workflow needs.
type QueueStore interface {
	UpdateSessionData(ctx context.Context, queueID uuid.UUID, data json.RawMessage) error
	MarkCompleted(ctx context.Context, queueID uuid.UUID) error
}

// CatalogResolver resolves prescribed names against the item catalog.
type CatalogResolver interface {
	ResolveByName(ctx context.Context, kind catalog.ItemKind, name string) (*catalog.Item, error)
}

// FeedAppender records entries on the patient activity feed.
type FeedAppender interface {
	Append(ctx context.Context, e *activity.FeedEntry) error
}

// MedicationStore records current medications.
type MedicationStore interface {
	Add(ctx context.Context, m *medication.CurrentMedication) error
}

// CompleteRequest is everything submitted when a doctor finishes a
// consultation.
type CompleteRequest struct {
	PatientID     uuid.UUID       `json:"patient_id"`
	DoctorID      uuid.UUID       `json:"doctor_id"`
	QueueEntryID  uuid.UUID       `json:"queue_entry_id"`
	SessionData   json.RawMessage `json:"session_data,omitempty"`
	Complaint     string          `json:"complaint,omitempty"`
	Diagnosis     string          `json:"diagnosis,omitempty"`
	TreatmentPlan string          `json:"treatment_plan,omitempty"`
	Items         []ItemInput     `json:"items,omitempty"`
}

// CompleteResult reports what the workflow wrote.
type CompleteResult struct {
	Session *Session         `json:"session"`
	Items   []*TreatmentItem `json:"items"`
	Note    *Note            `json:"note,omitempty"`
}

// Workflow runs consultation completion as a sequence of ordered
// external writes. The steps are deliberately not transactional: the
// stores behind them are independent, so a failure aborts the remaining
// steps but leaves earlier writes in place. Callers surface the error;
// already-written data stays visible.
type Workflow struct {
	repo    Repository
	queue   QueueStore
	catalog CatalogResolver
	feed    FeedAppender
	meds    MedicationStore
	log     zerolog.Logger
}

func NewWorkflow(repo Repository, q QueueStore, cat CatalogResolver, feed FeedAppender, meds MedicationStore, log zerolog.Logger) *Workflow {
	return &Workflow{repo: repo, queue: q, catalog: cat, feed: feed, meds: meds, log: log}
}

func (w *Workflow) Complete(ctx context.Context, req *CompleteRequest) (*CompleteResult, error) {
	if req.PatientID == uuid.Nil {
		return nil, fmt.Errorf("patient_id is required")
	}
	if req.DoctorID == uuid.Nil {
		return nil, fmt.Errorf("doctor_id is required")
	}
	if req.QueueEntryID == uuid.Nil {
		return nil, fmt.Errorf("queue_entry_id is required")
	}

	log := w.log.With().
		Str("patient_id", req.PatientID.String()).
		Str("queue_entry_id", req.QueueEntryID.String()).
		Logger()

	// 1. resolve or create the active session
	session, err := w.repo.GetActiveSession(ctx, req.PatientID, req.QueueEntryID)
	if err != nil {
		log.Error().Err(err).Msg("consultation completion: session lookup failed")
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if session == nil {
		session = &Session{
			PatientID:    req.PatientID,
			DoctorID:     req.DoctorID,
			QueueEntryID: req.QueueEntryID,
			Status:       SessionActive,
			StartedAt:    time.Now(),
		}
		if err := w.repo.CreateSession(ctx, session); err != nil {
			log.Error().Err(err).Msg("consultation completion: session create failed")
			return nil, fmt.Errorf("create session: %w", err)
		}
	}
	log = log.With().Str("session_id", session.ID.String()).Logger()

	// 2. snapshot session data onto the queue entry
	if len(req.SessionData) > 0 {
		if err := w.queue.UpdateSessionData(ctx, req.QueueEntryID, req.SessionData); err != nil {
			log.Error().Err(err).Msg("consultation completion: session data write failed")
			return nil, fmt.Errorf("write session data: %w", err)
		}
	}

	// 3. queue entry leaves the waiting room
	if err := w.queue.MarkCompleted(ctx, req.QueueEntryID); err != nil {
		log.Error().Err(err).Msg("consultation completion: queue transition failed")
		return nil, fmt.Errorf("complete queue entry: %w", err)
	}

	// 4. record treatment items
	result := &CompleteResult{Session: session}
	for i := range req.Items {
		item, err := w.buildItem(ctx, session.ID, &req.Items[i])
		if err != nil {
			log.Error().Err(err).Str("item", req.Items[i].Name).Msg("consultation completion: item insert failed")
			return nil, fmt.Errorf("record item %q: %w", req.Items[i].Name, err)
		}
		result.Items = append(result.Items, item)
	}

	// 5. close the session
	endedAt := time.Now()
	if err := w.repo.CompleteSession(ctx, session.ID, endedAt); err != nil {
		log.Error().Err(err).Msg("consultation completion: session close failed")
		return nil, fmt.Errorf("complete session: %w", err)
	}
	session.Status = SessionCompleted
	session.EndedAt = &endedAt

	// 6. note, only when there is something to record
	if strings.TrimSpace(req.Complaint) != "" || strings.TrimSpace(req.Diagnosis) != "" ||
		strings.TrimSpace(req.TreatmentPlan) != "" {
		note := &Note{
			SessionID: session.ID,
			PatientID: req.PatientID,
			DoctorID:  req.DoctorID,
		}
		if v := strings.TrimSpace(req.Complaint); v != "" {
			note.Complaint = &v
		}
		if v := strings.TrimSpace(req.Diagnosis); v != "" {
			note.Diagnosis = &v
		}
		if v := strings.TrimSpace(req.TreatmentPlan); v != "" {
			note.TreatmentPlan = &v
		}
		if err := w.repo.InsertNote(ctx, note); err != nil {
			log.Error().Err(err).Msg("consultation completion: note insert failed")
			return nil, fmt.Errorf("record note: %w", err)
		}
		result.Note = note
	}

	// 7. consultation feed entry
	meta, _ := json.Marshal(map[string]interface{}{
		"session_id":     session.ID,
		"queue_entry_id": req.QueueEntryID,
		"item_count":     len(result.Items),
	})
	feedEntry := &activity.FeedEntry{
		PatientID:     req.PatientID,
		ActivityType:  activity.TypeConsultation,
		ActivityDate:  endedAt,
		Title:         "Consultation completed",
		Content:       w.summarize(req, result.Items),
		Metadata:      meta,
		StaffMemberID: &req.DoctorID,
	}
	if err := w.feed.Append(ctx, feedEntry); err != nil {
		log.Error().Err(err).Msg("consultation completion: feed append failed")
		return nil, fmt.Errorf("record activity: %w", err)
	}

	// 8. per-item records
	for _, it := range result.Items {
		if err := w.recordItem(ctx, req, session, it); err != nil {
			log.Error().Err(err).Str("item", it.Name).Msg("consultation completion: item record failed")
			return nil, err
		}
	}

	log.Info().Int("items", len(result.Items)).Msg("consultation completed")
	return result, nil
}

// buildItem classifies and prices one prescribed item, then inserts it.
// A catalog miss is not an error; the item is stored without a catalog
// link using the caller-supplied rate.
func (w *Workflow) buildItem(ctx context.Context, sessionID uuid.UUID, in *ItemInput) (*TreatmentItem, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("item name is required")
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative")
	}

	itemType := in.Classify()
	kind := catalog.KindService
	if itemType == ItemMedication {
		kind = catalog.KindMedication
	}

	tier := in.PriceTier
	if tier == "" {
		tier = "standard"
	}
	rate := in.Rate
	var catalogID *uuid.UUID
	cat, err := w.catalog.ResolveByName(ctx, kind, in.Name)
	if err != nil {
		return nil, fmt.Errorf("resolve catalog item: %w", err)
	}
	if cat != nil {
		catalogID = &cat.ID
		rate = cat.RateForTier(tier)
	}

	item := &TreatmentItem{
		SessionID: sessionID,
		CatalogID: catalogID,
		Name:      in.Name,
		ItemType:  itemType,
		Quantity:  in.Quantity,
		PriceTier: tier,
		Rate:      rate,
		Amount:    in.Quantity * rate,
	}
	if v := strings.TrimSpace(in.Dosage); v != "" {
		item.Dosage = &v
	}
	if v := strings.TrimSpace(in.Frequency); v != "" {
		item.Frequency = &v
	}
	if v := strings.TrimSpace(in.Duration); v != "" {
		item.Duration = &v
	}
	if v := strings.TrimSpace(in.Instruction); v != "" {
		item.Instruction = &v
	}
	if err := w.repo.InsertItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// recordItem writes the downstream records for one treatment item:
// medications get a current-medication row plus a medication feed
// entry, services get a treatment feed entry.
func (w *Workflow) recordItem(ctx context.Context, req *CompleteRequest, session *Session, it *TreatmentItem) error {
	meta, _ := json.Marshal(map[string]interface{}{
		"session_id":        session.ID,
		"treatment_item_id": it.ID,
		"amount":            it.Amount,
	})

	if it.ItemType == ItemMedication {
		med := &medication.CurrentMedication{
			PatientID:    req.PatientID,
			Name:         it.Name,
			Dosage:       it.Dosage,
			Frequency:    it.Frequency,
			Duration:     it.Duration,
			Instruction:  it.Instruction,
			PrescribedBy: &req.DoctorID,
		}
		if err := w.meds.Add(ctx, med); err != nil {
			return fmt.Errorf("record medication %q: %w", it.Name, err)
		}
		return w.feed.Append(ctx, &activity.FeedEntry{
			PatientID:     req.PatientID,
			ActivityType:  activity.TypeMedication,
			Title:         "Medication prescribed: " + it.Name,
			Content:       medSummary(it),
			Metadata:      meta,
			StaffMemberID: &req.DoctorID,
		})
	}

	return w.feed.Append(ctx, &activity.FeedEntry{
		PatientID:     req.PatientID,
		ActivityType:  activity.TypeTreatment,
		Title:         "Service provided: " + it.Name,
		Content:       fmt.Sprintf("%s x%.0f", it.Name, it.Quantity),
		Metadata:      meta,
		StaffMemberID: &req.DoctorID,
	})
}

func (w *Workflow) summarize(req *CompleteRequest, items []*TreatmentItem) string {
	var meds, services int
	for _, it := range items {
		if it.ItemType == ItemMedication {
			meds++
		} else {
			services++
		}
	}
	var b strings.Builder
	if d := strings.TrimSpace(req.Diagnosis); d != "" {
		b.WriteString("Diagnosis: " + d + ". ")
	}
	fmt.Fprintf(&b, "%d medication(s) and %d service(s) recorded.", meds, services)
	return b.String()
}

func medSummary(it *TreatmentItem) string {
	parts := []string{it.Name}
	for _, p := range []*string{it.Dosage, it.Frequency, it.Duration} {
		if p != nil {
			parts = append(parts, *p)
		}
	}
	return strings.Join(parts, ", ")
}
