package patient

import (
	"context"
	"errors"
	"strings"

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

const cols = `id, first_name, last_name, full_name, dni, birth_date, address, locality,
	email, phone_1, phone_2, insurance_name, insurance_member_id, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = oid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patient (
			id, first_name, last_name, full_name, dni, birth_date, address, locality,
			email, phone_1, phone_2, insurance_name, insurance_member_id
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		p.ID, p.FirstName, p.LastName, p.FullName, p.DNI, p.BirthDate, p.Address, p.Locality,
		p.Email, p.Phone1, p.Phone2, p.InsuranceName, p.InsuranceMemberID,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id string) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx, `SELECT `+cols+` FROM patient WHERE id = $1`, id))
}

func (r *repoPG) GetByDNI(ctx context.Context, dni string) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx, `SELECT `+cols+` FROM patient WHERE dni = $1 LIMIT 1`, dni))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE patient SET
			first_name=$2, last_name=$3, full_name=$4, dni=$5, birth_date=$6, address=$7,
			locality=$8, email=$9, phone_1=$10, phone_2=$11, insurance_name=$12,
			insurance_member_id=$13, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.FirstName, p.LastName, p.FullName, p.DNI, p.BirthDate, p.Address,
		p.Locality, p.Email, p.Phone1, p.Phone2, p.InsuranceName, p.InsuranceMemberID,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	return err
}

func (r *repoPG) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Patient, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+cols+` FROM patient ORDER BY last_name, first_name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPatients(rows)
}

// likeEscaper makes a search substring literal: %, _ and the escape
// character itself would otherwise act as LIKE wildcards.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *repoPG) Search(ctx context.Context, name string) ([]*Patient, error) {
	// LIKE, not ILIKE: the match is case-sensitive.
	rows, err := r.pool.Query(ctx,
		`SELECT `+cols+` FROM patient WHERE full_name LIKE '%' || $1 || '%' ESCAPE '\'`,
		escapeLike(name))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPatients(rows)
}

func scanPatient(row pgx.Row) (*Patient, error) {
	p := &Patient{}
	err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.FullName, &p.DNI, &p.BirthDate, &p.Address,
		&p.Locality, &p.Email, &p.Phone1, &p.Phone2, &p.InsuranceName, &p.InsuranceMemberID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanPatients(rows pgx.Rows) ([]*Patient, error) {
	var patients []*Patient
	for rows.Next() {
		p := &Patient{}
		if err := rows.Scan(
			&p.ID, &p.FirstName, &p.LastName, &p.FullName, &p.DNI, &p.BirthDate, &p.Address,
			&p.Locality, &p.Email, &p.Phone1, &p.Phone2, &p.InsuranceName, &p.InsuranceMemberID,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		patients = append(patients, p)
	}
	return patients, rows.Err()
}
