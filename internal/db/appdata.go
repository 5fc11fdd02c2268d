package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/carescreen/internal/model"
	"github.com/Nixie-Tech-LLC/carescreen/internal/seed"
)

// decodeDocument turns a stored document into AppData. A missing document
// yields the seed defaults.
func decodeDocument(raw []byte) (*model.AppData, error) {
	if len(raw) == 0 {
		return seed.Default()
	}
	return seed.MergeJSON(raw)
}

// applyUpdate runs fn against a fresh copy of raw and returns the validated
// result together with its encoded form.
func applyUpdate(raw []byte, fn UpdateFunc) (*model.AppData, []byte, error) {
	d, err := decodeDocument(raw)
	if err != nil {
		return nil, nil, err
	}
	if err := fn(d); err != nil {
		return nil, nil, err
	}
	seed.Normalize(d)
	if err := model.Validate(d); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	doc, err := json.Marshal(d)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode display data: %w", err)
	}
	return d, doc, nil
}

func replaceWith(next *model.AppData) UpdateFunc {
	return func(d *model.AppData) error {
		*d = *next
		return nil
	}
}

func (s *pgStore) GetAppData(ctx context.Context) (*model.AppData, error) {
	var raw []byte
	err := s.db.GetContext(ctx, &raw, `
		SELECT document
		FROM display_data
		WHERE display_id = $1
		`, s.displayID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Error().Err(err).Str("display_id", s.displayID).Msg("failed to load display data")
		return nil, err
	}
	return decodeDocument(raw)
}

// UpdateAppData locks the display row for the duration of fn so concurrent
// admin writes serialize.
func (s *pgStore) UpdateAppData(ctx context.Context, fn UpdateFunc) (*model.AppData, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin display data transaction")
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var raw []byte
	err = tx.GetContext(ctx, &raw, `
		SELECT document
		FROM display_data
		WHERE display_id = $1
		FOR UPDATE
		`, s.displayID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Error().Err(err).Str("display_id", s.displayID).Msg("failed to lock display data")
		return nil, err
	}

	d, doc, err := applyUpdate(raw, fn)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO display_data (display_id, document, revision, updated_at)
		VALUES ($1, $2, 1, now())
		ON CONFLICT (display_id) DO UPDATE
		SET document = EXCLUDED.document,
		revision = display_data.revision + 1,
		updated_at = now()
		`, s.displayID, doc)
	if err != nil {
		log.Error().Err(err).Str("display_id", s.displayID).Msg("failed to write display data")
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit display data")
		return nil, err
	}
	return d, nil
}

func (s *pgStore) ReplaceAppData(ctx context.Context, d *model.AppData) (*model.AppData, error) {
	return s.UpdateAppData(ctx, replaceWith(d))
}
