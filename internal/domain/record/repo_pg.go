package record

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinica/clinica/pkg/oid"
)

type repoPG struct {
	pool querier
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const cols = `id, patient_id, visit_date, full_name, dni, reason, condition, history,
	comments, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, rec *ClinicalRecord) error {
	rec.ID = oid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO clinical_record (
			id, patient_id, visit_date, full_name, dni, reason, condition, history, comments
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		rec.ID, rec.PatientID, rec.VisitDate, rec.FullName, rec.DNI,
		rec.Reason, rec.Condition, rec.History, rec.Comments,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id string) (*ClinicalRecord, error) {
	return scanRecord(r.pool.QueryRow(ctx, `SELECT `+cols+` FROM clinical_record WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, rec *ClinicalRecord) error {
	// patient_id, full_name and dni are frozen at creation.
	_, err := r.pool.Exec(ctx, `
		UPDATE clinical_record SET
			visit_date=$2, reason=$3, condition=$4, history=$5, comments=$6, updated_at=NOW()
		WHERE id = $1`,
		rec.ID, rec.VisitDate, rec.Reason, rec.Condition, rec.History, rec.Comments,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM clinical_record WHERE id = $1`, id)
	return err
}

func (r *repoPG) CountByPatient(ctx context.Context, patientID string) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM clinical_record WHERE patient_id = $1`, patientID).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]*ClinicalRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+cols+` FROM clinical_record
		 WHERE patient_id = $1 ORDER BY visit_date DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecord(row pgx.Row) (*ClinicalRecord, error) {
	rec := &ClinicalRecord{}
	err := row.Scan(
		&rec.ID, &rec.PatientID, &rec.VisitDate, &rec.FullName, &rec.DNI, &rec.Reason,
		&rec.Condition, &rec.History, &rec.Comments, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func scanRecords(rows pgx.Rows) ([]*ClinicalRecord, error) {
	var records []*ClinicalRecord
	for rows.Next() {
		rec := &ClinicalRecord{}
		if err := rows.Scan(
			&rec.ID, &rec.PatientID, &rec.VisitDate, &rec.FullName, &rec.DNI, &rec.Reason,
			&rec.Condition, &rec.History, &rec.Comments, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
