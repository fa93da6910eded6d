package patient

import "time"

// Patient maps to the patient table.
//
// FullName is derived: it is recomputed as FirstName + " " + LastName on
// every create and update, and is the field the substring search and the
// attachment folder keys run against.
type Patient struct {
	ID                string    `db:"id" json:"id"`
	FirstName         string    `db:"first_name" json:"first_name"`
	LastName          string    `db:"last_name" json:"last_name"`
	FullName          string    `db:"full_name" json:"full_name"`
	DNI               string    `db:"dni" json:"dni"`
	BirthDate         string    `db:"birth_date" json:"birth_date"`
	Address           string    `db:"address" json:"address"`
	Locality          string    `db:"locality" json:"locality"`
	Email             string    `db:"email" json:"email"`
	Phone1            string    `db:"phone_1" json:"phone_1"`
	Phone2            string    `db:"phone_2" json:"phone_2"`
	InsuranceName     string    `db:"insurance_name" json:"insurance_name"`
	InsuranceMemberID string    `db:"insurance_member_id" json:"insurance_member_id"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// ComposeFullName recomputes the derived full name from the current
// first and last name.
func (p *Patient) ComposeFullName() {
	p.FullName = p.FirstName + " " + p.LastName
}
