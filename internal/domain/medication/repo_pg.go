package medication

import (
	"context"

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

const medCols = `id, patient_id, name, dosage, frequency, duration, instruction, prescribed_by, started_at, status, created_at, updated_at`

func (r *repoPG) Insert(ctx context.Context, m *CurrentMedication) error {
	m.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO current_medication
			(id, patient_id, name, dosage, frequency, duration, instruction, prescribed_by, started_at, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		m.ID, m.PatientID, m.Name, m.Dosage, m.Frequency, m.Duration,
		m.Instruction, m.PrescribedBy, m.StartedAt, m.Status,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*CurrentMedication, error) {
	return scanMedication(r.conn(ctx).QueryRow(ctx,
		`SELECT `+medCols+` FROM current_medication WHERE id = $1`, id))
}

func (r *repoPG) ListActiveByPatient(ctx context.Context, patientID uuid.UUID) ([]*CurrentMedication, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+medCols+` FROM current_medication
		WHERE patient_id = $1 AND status = 'active'
		ORDER BY started_at DESC`,
		patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meds []*CurrentMedication
	for rows.Next() {
		var m CurrentMedication
		if err := rows.Scan(
			&m.ID, &m.PatientID, &m.Name, &m.Dosage, &m.Frequency, &m.Duration,
			&m.Instruction, &m.PrescribedBy, &m.StartedAt, &m.Status, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		meds = append(meds, &m)
	}
	return meds, rows.Err()
}

func (r *repoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE current_medication SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status,
	)
	return err
}

func scanMedication(row pgx.Row) (*CurrentMedication, error) {
	var m CurrentMedication
	err := row.Scan(
		&m.ID, &m.PatientID, &m.Name, &m.Dosage, &m.Frequency, &m.Duration,
		&m.Instruction, &m.PrescribedBy, &m.StartedAt, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
