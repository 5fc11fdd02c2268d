// Package seed provides the default display data and merges imported or
// stored documents onto it.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/Nixie-Tech-LLC/carescreen/internal/model"
)

//go:embed default.yaml
var defaultYAML []byte

// LegacyLunchMeal is the meal name older documents used for lunch before it
// moved into model.LunchMenu.
const LegacyLunchMeal = "Mittagessen"

// Default returns a fresh copy of the built-in data set.
func Default() (*model.AppData, error) {
	var d model.AppData
	if err := yaml.Unmarshal(defaultYAML, &d); err != nil {
		return nil, fmt.Errorf("failed to parse default seed: %w", err)
	}
	Normalize(&d)
	return &d, nil
}

// MergeJSON decodes raw on top of the defaults, so sections missing from raw
// keep their default values, then normalizes the result.
func MergeJSON(raw []byte) (*model.AppData, error) {
	return merge(raw, json.Unmarshal)
}

// MergeYAML is MergeJSON for YAML documents.
func MergeYAML(raw []byte) (*model.AppData, error) {
	return merge(raw, yaml.Unmarshal)
}

type unmarshalFunc func(data []byte, v any) error

func merge(raw []byte, unmarshal unmarshalFunc) (*model.AppData, error) {
	d, err := Default()
	if err != nil {
		return nil, err
	}
	var top map[string]any
	if err := unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("failed to decode app data: %w", err)
	}
	dropPresentLists(d, top)
	if err := unmarshal(raw, d); err != nil {
		return nil, fmt.Errorf("failed to decode app data: %w", err)
	}
	Normalize(d)
	return d, nil
}

// dropPresentLists clears every default collection that top replaces. Both
// decoders fill existing slice elements and map entries in place, which would
// otherwise leak default records into imported ones.
func dropPresentLists(d *model.AppData, top map[string]any) {
	present := func(m map[string]any, key string) bool {
		_, ok := m[key]
		return ok
	}
	if present(top, "meals") {
		d.Meals = nil
	}
	if present(top, "residents") {
		d.Residents = nil
	}
	if present(top, "quotes") {
		d.Quotes = nil
	}
	if present(top, "locations") {
		d.Locations = nil
	}
	if present(top, "eventTitles") {
		d.EventTitles = nil
	}
	if present(top, "weeklySchedule") {
		d.WeeklySchedule = nil
	}
	if lunch, ok := top["lunchMenu"].(map[string]any); ok && present(lunch, "images") {
		d.LunchMenu.Images = nil
	}
	if slides, ok := top["slideshow"].(map[string]any); ok && present(slides, "images") {
		d.Slideshow.Images = nil
	}
}

// LoadFile reads a .json, .yaml or .yml document and merges it onto the defaults.
func LoadFile(path string) (*model.AppData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return MergeYAML(raw)
	default:
		return MergeJSON(raw)
	}
}

// Normalize repairs documents written by older versions: the lunch meal is
// dropped from Meals, the lunch image list is padded to seven entries and
// nil lists become empty.
func Normalize(d *model.AppData) {
	meals := d.Meals[:0:0]
	for _, m := range d.Meals {
		if m.Name == LegacyLunchMeal {
			log.Debug().Msg("dropping legacy lunch meal")
			continue
		}
		meals = append(meals, m)
	}
	d.Meals = meals

	switch n := len(d.LunchMenu.Images); {
	case n < 7:
		d.LunchMenu.Images = append(d.LunchMenu.Images, make([]string, 7-n)...)
	case n > 7:
		d.LunchMenu.Images = d.LunchMenu.Images[:7]
	}

	if d.Slideshow.DurationPerSlide <= 0 {
		d.Slideshow.DurationPerSlide = 10
	}
	if d.Theme == "" {
		d.Theme = "standard"
	}
	if d.WeeklySchedule == nil {
		d.WeeklySchedule = model.WeeklySchedule{}
	}
	if d.Slideshow.Images == nil {
		d.Slideshow.Images = []model.SlideshowImage{}
	}
	if d.Residents == nil {
		d.Residents = []model.Resident{}
	}
	if d.Quotes == nil {
		d.Quotes = []string{}
	}
	if d.Locations == nil {
		d.Locations = []string{}
	}
	if d.EventTitles == nil {
		d.EventTitles = []string{}
	}
}
