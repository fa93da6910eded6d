package patient

import (
	"context"
	"errors"
)

var (
	// ErrNotFound covers both a well-formed id that is absent and a
	// malformed id (which never reaches storage).
	ErrNotFound = errors.New("patient not found")

	// ErrDuplicateDNI is returned on create in strict mode only.
	ErrDuplicateDNI = errors.New("a patient with this dni already exists")
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id string) (*Patient, error)
	GetByDNI(ctx context.Context, dni string) (*Patient, error)
	// Update overwrites all mutable fields. Missing ids are a no-op,
	// not an error.
	Update(ctx context.Context, p *Patient) error
	// Delete is a no-op on a missing id. Clinical records referencing
	// the patient are left untouched.
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	// List returns patients ordered by last name ascending.
	List(ctx context.Context, limit, offset int) ([]*Patient, error)
	// Search is a case-sensitive substring match on the stored full
	// name, unordered and unpaginated.
	Search(ctx context.Context, name string) ([]*Patient, error)
}
