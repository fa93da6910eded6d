package record

import (
	"context"

	"github.com/clinica/clinica/pkg/oid"
	"github.com/clinica/clinica/pkg/pagination"
)

// ExistsFunc reports whether a patient id refers to a stored patient.
// Wired in by the caller so this package does not depend on the
// patient package.
type ExistsFunc func(ctx context.Context, patientID string) (bool, error)

type Service struct {
	records       Repository
	patientExists ExistsFunc
}

func NewService(records Repository) *Service {
	return &Service{records: records}
}

// SetPatientCheck enables strict mode: creating a record for an unknown
// patient id is rejected. Without it (the default) records are accepted
// for any well-formed patient id.
func (s *Service) SetPatientCheck(fn ExistsFunc) {
	s.patientExists = fn
}

// Create stores a new visit entry. The full name and dni submitted with
// it become immutable snapshots.
func (s *Service) Create(ctx context.Context, rec *ClinicalRecord) error {
	if s.patientExists != nil {
		ok, err := s.patientExists(ctx, rec.PatientID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrPatientUnknown
		}
	}
	return s.records.Create(ctx, rec)
}

// Get returns a record by id. A malformed id fails with ErrNotFound
// without touching storage.
func (s *Service) Get(ctx context.Context, id string) (*ClinicalRecord, error) {
	if !oid.IsValid(id) {
		return nil, ErrNotFound
	}
	return s.records.GetByID(ctx, id)
}

// Update overwrites the editable fields. A malformed or missing id is a
// silent no-op.
func (s *Service) Update(ctx context.Context, rec *ClinicalRecord) error {
	if !oid.IsValid(rec.ID) {
		return nil
	}
	return s.records.Update(ctx, rec)
}

// Delete removes the record. Missing ids are a silent no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !oid.IsValid(id) {
		return nil
	}
	return s.records.Delete(ctx, id)
}

// ListByPatient returns one page of the patient's history, newest visit
// first, plus the pagination window for the whole set. An unknown or
// malformed patient id yields an empty page rather than an error.
func (s *Service) ListByPatient(ctx context.Context, patientID string, page int) ([]*ClinicalRecord, int, pagination.Window, error) {
	if !oid.IsValid(patientID) {
		return nil, 0, pagination.Window{}, nil
	}
	total, err := s.records.CountByPatient(ctx, patientID)
	if err != nil {
		return nil, 0, pagination.Window{}, err
	}
	w := pagination.Paginate(total, page, pagination.DefaultPageSize)
	items, err := s.records.ListByPatient(ctx, patientID, w.Limit, w.Skip)
	if err != nil {
		return nil, 0, pagination.Window{}, err
	}
	return items, total, w, nil
}
