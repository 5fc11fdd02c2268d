package commands

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/carescreen/internal/redis"
)

type fakeFrames struct {
	raw []byte
	err error
}

func (f fakeFrames) Frame(context.Context) ([]byte, error) {
	return f.raw, f.err
}

func TestPrintFrame(t *testing.T) {
	var out bytes.Buffer
	err := printFrame(context.Background(), &out, fakeFrames{raw: []byte(`{"decision":{"kind":"menu_plan"}}`)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"decision":{"kind":"menu_plan"}}`, out.String())
	assert.Contains(t, out.String(), "\n  \"decision\"")
}

func TestPrintFrameErrors(t *testing.T) {
	var out bytes.Buffer
	ctx := context.Background()

	assert.ErrorContains(t, printFrame(ctx, &out, fakeFrames{err: redis.ErrMiss}), "no frame published")
	assert.ErrorContains(t, printFrame(ctx, &out, fakeFrames{err: errors.New("connection refused")}), "connection refused")
	assert.ErrorContains(t, printFrame(ctx, &out, fakeFrames{raw: []byte("garbage")}), "not JSON")
	assert.Empty(t, out.String())
}
