package selector

import (
	"encoding/json"

	"github.com/Nixie-Tech-LLC/carescreen/internal/model"
)

// Frame is what a display receives: the decision plus the data derived from
// it that the renderer cannot compute without the resident records.
type Frame struct {
	Decision Decision       `json:"decision"`
	Ages     map[string]int `json:"ages,omitempty"`
}

// NewFrame runs the selection for tp and attaches the birthday ages keyed by
// resident id. Residents hiding their age are left out of Ages.
func NewFrame(tp model.TimePoint, snap *model.Snapshot) Frame {
	d := SelectContent(tp, snap)
	f := Frame{Decision: d}
	if d.Kind != KindBirthday {
		return f
	}
	for _, r := range d.Residents {
		if age, ok := Age(r, tp.Date); ok {
			if f.Ages == nil {
				f.Ages = map[string]int{}
			}
			f.Ages[r.ID] = age
		}
	}
	return f
}

// Encode returns the JSON form of f. Equal frames encode to equal bytes, so
// the encoding doubles as the change detector.
func (f Frame) Encode() ([]byte, error) {
	return json.Marshal(f)
}
