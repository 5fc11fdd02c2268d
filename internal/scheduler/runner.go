// Package scheduler drives the display: on every tick it builds a time point,
// asks the selector for content and publishes the frame when it changed.
package scheduler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/carescreen/internal/clock"
	"github.com/Nixie-Tech-LLC/carescreen/internal/selector"
)

// Publisher delivers an encoded frame to one channel (MQTT, websocket, cache).
type Publisher interface {
	Publish(ctx context.Context, payload []byte) error
}

type sink struct {
	name string
	pub  Publisher
	last []byte
}

// Runner owns the tick loop. Each publisher remembers the last payload it
// accepted, so a failed delivery is retried on the next tick while channels
// that are up to date stay quiet.
type Runner struct {
	source   Source
	clock    clock.Clock
	interval time.Duration
	trigger  chan struct{}

	mu    sync.Mutex
	sinks []*sink
	frame selector.Frame
	last  []byte
}

func NewRunner(source Source, clk clock.Clock, interval time.Duration) *Runner {
	return &Runner{
		source:   source,
		clock:    clk,
		interval: interval,
		trigger:  make(chan struct{}, 1),
	}
}

// AddPublisher registers p under name, used in logs.
func (r *Runner) AddPublisher(name string, p Publisher) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sinks = append(r.sinks, &sink{name: name, pub: p})
	return r
}

// Trigger requests an immediate tick, e.g. after an admin write. It never
// blocks; pending triggers coalesce.
func (r *Runner) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// Current returns the most recently computed frame and its encoding.
func (r *Runner) Current() (selector.Frame, []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame, r.last
}

// Tick computes the frame for the current time and publishes it to every
// channel whose last accepted payload differs. It reports whether the frame
// changed since the previous tick. Run is the only caller in production; Tick
// is not safe to call concurrently with itself.
func (r *Runner) Tick(ctx context.Context) (bool, error) {
	snap, err := r.source.Snapshot(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if snap == nil {
		return false, errors.New("source returned a nil snapshot")
	}

	tp := clock.At(r.clock.Now())
	frame := selector.NewFrame(tp, snap)
	payload, err := frame.Encode()
	if err != nil {
		return false, fmt.Errorf("failed to encode frame: %w", err)
	}

	r.mu.Lock()
	changed := !bytes.Equal(payload, r.last)
	r.frame = frame
	r.last = payload
	var pending []*sink
	for _, s := range r.sinks {
		if !bytes.Equal(payload, s.last) {
			pending = append(pending, s)
		}
	}
	r.mu.Unlock()

	if changed {
		log.Info().Str("kind", string(frame.Decision.Kind)).
			Int("week", tp.Week).
			Int("minute_of_day", tp.MinutesOfDay()).
			Msg("display content changed")
	}

	// publishers may block on the network, so r.mu is not held here
	for _, s := range pending {
		if err := s.pub.Publish(ctx, payload); err != nil {
			log.Error().Err(err).Str("publisher", s.name).Msg("failed to publish frame")
			continue
		}
		r.mu.Lock()
		s.last = payload
		r.mu.Unlock()
	}
	return changed, nil
}

// Run ticks immediately and then on every interval or trigger until ctx is
// cancelled. Missed ticks are not replayed.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", r.interval).Msg("scheduler started")
	r.tickAndLog(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("scheduler stopped")
			return nil
		case <-ticker.C:
			r.tickAndLog(ctx)
		case <-r.trigger:
			r.tickAndLog(ctx)
		}
	}
}

func (r *Runner) tickAndLog(ctx context.Context) {
	if _, err := r.Tick(ctx); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("scheduler tick failed")
	}
}
