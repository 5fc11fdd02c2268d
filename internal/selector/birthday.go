package selector

import (
	"time"

	"github.com/Nixie-Tech-LLC/carescreen/internal/model"
)

// BirthdayResidents returns the active residents whose birthday (month and
// day, year ignored) falls on tp.Date. Residents with malformed birth dates
// are skipped.
func BirthdayResidents(residents []model.Resident, tp model.TimePoint) []model.Resident {
	var out []model.Resident
	for _, r := range residents {
		if !r.Active {
			continue
		}
		born, err := r.Birthday()
		if err != nil {
			continue
		}
		if born.Month() == tp.Date.Month() && born.Day() == tp.Date.Day() {
			out = append(out, r)
		}
	}
	return out
}

// Age is the number the greeting shows: the difference of calendar years.
// It reports false when the resident asked to hide it or the birth date is
// malformed.
func Age(r model.Resident, on time.Time) (int, bool) {
	if r.HideAge {
		return 0, false
	}
	born, err := r.Birthday()
	if err != nil {
		return 0, false
	}
	return on.Year() - born.Year(), true
}
