package record

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no record matches the given id.
	ErrNotFound = errors.New("clinical record not found")
	// ErrPatientUnknown is returned in strict mode when a record is
	// created for a patient id that does not exist.
	ErrPatientUnknown = errors.New("patient does not exist")
)

// Repository is the storage contract for clinical records.
type Repository interface {
	Create(ctx context.Context, r *ClinicalRecord) error
	GetByID(ctx context.Context, id string) (*ClinicalRecord, error)
	// Update overwrites the editable fields only: visit date, reason,
	// condition, history and comments. The patient link and the name
	// and dni snapshots stay as created. Missing ids are a no-op.
	Update(ctx context.Context, r *ClinicalRecord) error
	// Delete removes the record. Missing ids are a no-op.
	Delete(ctx context.Context, id string) error
	CountByPatient(ctx context.Context, patientID string) (int, error)
	// ListByPatient returns one page of the patient's records ordered
	// by visit date, newest first.
	ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]*ClinicalRecord, error)
}
