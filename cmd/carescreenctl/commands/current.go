package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Nixie-Tech-LLC/carescreen/internal/redis"
)

// FrameReader is satisfied by redis.Cache.
type FrameReader interface {
	Frame(ctx context.Context) ([]byte, error)
}

// CurrentCmd creates the current command
func CurrentCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the frame the running server last published",
		Long:  `Reads the last published frame from redis. Requires REDIS_ADDRESS.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Connect(); err != nil {
				return err
			}
			if app.Cache == nil {
				return errors.New("REDIS_ADDRESS is not configured")
			}
			return printFrame(cmd.Context(), cmd.OutOrStdout(), app.Cache)
		},
	}
}

func printFrame(ctx context.Context, w io.Writer, frames FrameReader) error {
	raw, err := frames.Frame(ctx)
	if errors.Is(err, redis.ErrMiss) {
		return errors.New("no frame published yet")
	}
	if err != nil {
		return fmt.Errorf("failed to read frame: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return fmt.Errorf("published frame is not JSON: %w", err)
	}
	out.WriteByte('\n')
	_, err = out.WriteTo(w)
	return err
}
