package record

import "time"

// ClinicalRecord is one visit entry in a patient's history. FullName and
// DNI are snapshots taken at creation time; they are not kept in sync
// with later edits to the patient.
type ClinicalRecord struct {
	ID        string    `db:"id" json:"id"`
	PatientID string    `db:"patient_id" json:"patient_id"`
	VisitDate time.Time `db:"visit_date" json:"visit_date"`
	FullName  string    `db:"full_name" json:"full_name"`
	DNI       string    `db:"dni" json:"dni"`
	Reason    string    `db:"reason" json:"reason"`
	Condition string    `db:"condition" json:"condition"`
	History   string    `db:"history" json:"history"`
	Comments  string    `db:"comments" json:"comments"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
