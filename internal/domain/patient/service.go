package patient

import (
	"context"
	"errors"

	"github.com/clinica/clinica/pkg/oid"
	"github.com/clinica/clinica/pkg/pagination"
)

type Service struct {
	patients Repository
	strict   bool
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients}
}

// SetStrictValidation toggles strict mode. When on, creating a patient
// with an already-registered dni is rejected; when off (the default)
// duplicates are accepted, matching the historical behavior.
func (s *Service) SetStrictValidation(on bool) {
	s.strict = on
}

// Create persists a new patient. Fields are stored as submitted, blanks
// included; only the full name is derived server-side.
func (s *Service) Create(ctx context.Context, p *Patient) error {
	p.ComposeFullName()
	if s.strict && p.DNI != "" {
		_, err := s.patients.GetByDNI(ctx, p.DNI)
		if err == nil {
			return ErrDuplicateDNI
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	return s.patients.Create(ctx, p)
}

// Get returns a patient by id. A malformed id fails with ErrNotFound
// without touching storage.
func (s *Service) Get(ctx context.Context, id string) (*Patient, error) {
	if !oid.IsValid(id) {
		return nil, ErrNotFound
	}
	return s.patients.GetByID(ctx, id)
}

// Update overwrites the patient's fields and recomputes the full name.
// A malformed or missing id is a silent no-op.
func (s *Service) Update(ctx context.Context, p *Patient) error {
	if !oid.IsValid(p.ID) {
		return nil
	}
	p.ComposeFullName()
	return s.patients.Update(ctx, p)
}

// Delete removes the patient. Missing ids are a silent no-op, and the
// patient's clinical records are deliberately left in place.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !oid.IsValid(id) {
		return nil
	}
	return s.patients.Delete(ctx, id)
}

// List returns one page of patients ordered by last name, plus the
// pagination window describing the whole set.
func (s *Service) List(ctx context.Context, page int) ([]*Patient, int, pagination.Window, error) {
	total, err := s.patients.Count(ctx)
	if err != nil {
		return nil, 0, pagination.Window{}, err
	}
	w := pagination.Paginate(total, page, pagination.DefaultPageSize)
	items, err := s.patients.List(ctx, w.Limit, w.Skip)
	if err != nil {
		return nil, 0, pagination.Window{}, err
	}
	return items, total, w, nil
}

// Search matches the given substring against stored full names. The
// result is never paginated.
func (s *Service) Search(ctx context.Context, name string) ([]*Patient, error) {
	return s.patients.Search(ctx, name)
}
