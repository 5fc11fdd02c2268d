package model

import "time"

// BirthDateLayout is the ISO date layout used for Resident.BirthDate.
const BirthDateLayout = "2006-01-02"

type Resident struct {
	ID        string `json:"id"        yaml:"id"        validate:"required"`
	FirstName string `json:"firstName" yaml:"firstName" validate:"required"`
	LastName  string `json:"lastName"  yaml:"lastName"`
	BirthDate string `json:"birthDate" yaml:"birthDate" validate:"datetime=2006-01-02"`
	HideAge   bool   `json:"hideAge"   yaml:"hideAge"`
	Active    bool   `json:"active"    yaml:"active"`
}

// Birthday parses BirthDate.
func (r Resident) Birthday() (time.Time, error) {
	return time.Parse(BirthDateLayout, r.BirthDate)
}
