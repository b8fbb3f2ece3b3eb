package consultation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicdesk/clinicdesk/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const sessionCols = `id, patient_id, doctor_id, queue_entry_id, status, started_at, ended_at, created_at, updated_at`

func (r *repoPG) CreateSession(ctx context.Context, s *Session) error {
	s.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO consultation_session (id, patient_id, doctor_id, queue_entry_id, status, started_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		s.ID, s.PatientID, s.DoctorID, s.QueueEntryID, s.Status, s.StartedAt,
	)
	return err
}

func (r *repoPG) GetSessionByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	return scanSession(r.conn(ctx).QueryRow(ctx,
		`SELECT `+sessionCols+` FROM consultation_session WHERE id = $1`, id))
}

func (r *repoPG) GetActiveSession(ctx context.Context, patientID, queueEntryID uuid.UUID) (*Session, error) {
	s, err := scanSession(r.conn(ctx).QueryRow(ctx, `
		SELECT `+sessionCols+` FROM consultation_session
		WHERE patient_id = $1 AND queue_entry_id = $2 AND status = 'active'
		ORDER BY started_at DESC LIMIT 1`,
		patientID, queueEntryID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

func (r *repoPG) CompleteSession(ctx context.Context, id uuid.UUID, endedAt time.Time) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE consultation_session SET status = 'completed', ended_at = $2, updated_at = NOW()
		WHERE id = $1`,
		id, endedAt,
	)
	return err
}

func (r *repoPG) ListSessionsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Session, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM consultation_session WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+sessionCols+` FROM consultation_session
		WHERE patient_id = $1 ORDER BY started_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(
			&s.ID, &s.PatientID, &s.DoctorID, &s.QueueEntryID, &s.Status,
			&s.StartedAt, &s.EndedAt, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		sessions = append(sessions, &s)
	}
	return sessions, total, rows.Err()
}

const itemCols = `id, session_id, catalog_id, name, item_type, quantity, price_tier, rate, amount, dosage, frequency, duration, instruction, created_at`

func (r *repoPG) InsertItem(ctx context.Context, it *TreatmentItem) error {
	it.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO treatment_item
			(id, session_id, catalog_id, name, item_type, quantity, price_tier, rate, amount,
			 dosage, frequency, duration, instruction)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		it.ID, it.SessionID, it.CatalogID, it.Name, it.ItemType, it.Quantity,
		it.PriceTier, it.Rate, it.Amount, it.Dosage, it.Frequency, it.Duration, it.Instruction,
	)
	return err
}

func (r *repoPG) ListItemsBySession(ctx context.Context, sessionID uuid.UUID) ([]*TreatmentItem, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+itemCols+` FROM treatment_item WHERE session_id = $1 ORDER BY created_at`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*TreatmentItem
	for rows.Next() {
		var it TreatmentItem
		if err := rows.Scan(
			&it.ID, &it.SessionID, &it.CatalogID, &it.Name, &it.ItemType, &it.Quantity,
			&it.PriceTier, &it.Rate, &it.Amount, &it.Dosage, &it.Frequency, &it.Duration,
			&it.Instruction, &it.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

func (r *repoPG) InsertNote(ctx context.Context, n *Note) error {
	n.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO consultation_note (id, session_id, patient_id, doctor_id, complaint, diagnosis, treatment_plan)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		n.ID, n.SessionID, n.PatientID, n.DoctorID, n.Complaint, n.Diagnosis, n.TreatmentPlan,
	)
	return err
}

func (r *repoPG) ListNotesByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Note, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM consultation_note WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, session_id, patient_id, doctor_id, complaint, diagnosis, treatment_plan, created_at
		FROM consultation_note
		WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notes []*Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(
			&n.ID, &n.SessionID, &n.PatientID, &n.DoctorID,
			&n.Complaint, &n.Diagnosis, &n.TreatmentPlan, &n.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		notes = append(notes, &n)
	}
	return notes, total, rows.Err()
}

func scanSession(row pgx.Row) (*Session, error) {
	var s Session
	err := row.Scan(
		&s.ID, &s.PatientID, &s.DoctorID, &s.QueueEntryID, &s.Status,
		&s.StartedAt, &s.EndedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
