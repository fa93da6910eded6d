package staff

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// execFailer is a querier whose writes fail with a fixed error.
type execFailer struct {
	err error
}

func (f execFailer) Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, f.err
}

func (f execFailer) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	return nil, f.err
}

func (f execFailer) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	return nil
}

func TestCreate_ConcurrentDuplicateEmail(t *testing.T) {
	// the unique index fires when two registrations race past the
	// service's pre-check
	repo := &repoPG{pool: execFailer{err: &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "staff_user_email_key",
	}}}

	err := repo.Create(context.Background(), &User{Email: "ana@clinica.test"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestCreate_OtherErrorsPassThrough(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	repo := &repoPG{pool: execFailer{err: cause}}

	err := repo.Create(context.Background(), &User{Email: "ana@clinica.test"})
	if !errors.Is(err, cause) {
		t.Errorf("expected the original error, got %v", err)
	}
	if errors.Is(err, ErrEmailTaken) {
		t.Errorf("non-unique-violation must not map to ErrEmailTaken")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !isUniqueViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("expected 23505 to be a unique violation")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign key violation is not a unique violation")
	}
	if isUniqueViolation(nil) {
		t.Error("nil is not a unique violation")
	}
}
