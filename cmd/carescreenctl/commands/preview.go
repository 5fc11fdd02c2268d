package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/carescreen/internal/clock"
	"github.com/Nixie-Tech-LLC/carescreen/internal/model"
	"github.com/Nixie-Tech-LLC/carescreen/internal/seed"
	"github.com/Nixie-Tech-LLC/carescreen/internal/selector"
)

// PreviewCmd creates the preview command
func PreviewCmd() *cobra.Command {
	var (
		file     string
		at       string
		until    string
		timezone string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show what the display selects at a given time",
		Long: `Runs the content selection against a data file without touching the database.
With --until, every change of content between --at and --until is listed minute by minute.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := time.LoadLocation(timezone)
			if err != nil {
				return fmt.Errorf("invalid timezone: %w", err)
			}

			data, err := seed.Default()
			if file != "" {
				data, err = seed.LoadFile(file)
			}
			if err != nil {
				return err
			}
			if err := model.Validate(data); err != nil {
				return err
			}

			start, err := parseTime(at, loc)
			if err != nil {
				return fmt.Errorf("invalid --at: %w", err)
			}
			snap := data.Snapshot()

			if until == "" {
				frame := selector.NewFrame(clock.At(start), snap)
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(frame)
			}

			end, err := parseTime(until, loc)
			if err != nil {
				return fmt.Errorf("invalid --until: %w", err)
			}
			if end.Before(start) {
				return fmt.Errorf("--until must not be before --at")
			}
			return printTimeline(cmd.OutOrStdout(), snap, start, end)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON or YAML data file (defaults to the built-in data)")
	cmd.Flags().StringVar(&at, "at", "", "RFC3339 time to preview (defaults to now)")
	cmd.Flags().StringVar(&until, "until", "", "RFC3339 end of a timeline preview")
	cmd.Flags().StringVar(&timezone, "timezone", "Europe/Berlin", "facility time zone")

	return cmd
}

func parseTime(raw string, loc *time.Location) (time.Time, error) {
	if raw == "" {
		return time.Now().In(loc), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

// printTimeline writes one line per content change between start and end.
func printTimeline(w io.Writer, snap *model.Snapshot, start, end time.Time) error {
	var last string
	for t := start.Truncate(time.Minute); !t.After(end); t = t.Add(time.Minute) {
		d := selector.SelectContent(clock.At(t), snap)
		line := describe(d)
		if line == last {
			continue
		}
		last = line
		if _, err := fmt.Fprintf(w, "%s  %s\n", t.Format("2006-01-02 15:04"), line); err != nil {
			return err
		}
	}
	return nil
}

func describe(d selector.Decision) string {
	switch d.Kind {
	case selector.KindUrgent:
		return fmt.Sprintf("%s: %s", d.Kind, d.Urgent.Title)
	case selector.KindEvent:
		return fmt.Sprintf("%s: %s %s (%s)", d.Kind, d.Event.Time, d.Event.Title, d.Event.Location)
	case selector.KindBirthday:
		return fmt.Sprintf("%s: %d resident(s)", d.Kind, len(d.Residents))
	case selector.KindMeal:
		return fmt.Sprintf("%s: %s", d.Kind, d.Label)
	case selector.KindSlideshow:
		return fmt.Sprintf("%s: %d slide(s)", d.Kind, len(d.Slides))
	default:
		return fmt.Sprintf("%s: %s", d.Kind, d.ImageURL)
	}
}
