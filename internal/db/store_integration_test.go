package db

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/carescreen/internal/model"
)

func integrationStore(t *testing.T) Store {
	t.Helper()
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping postgres integration test")
	}
	displayID := fmt.Sprintf("test-%d", time.Now().UnixNano())
	store, err := InitTestDB("../../migrations", displayID)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = DB.Exec(`DELETE FROM display_data WHERE display_id = $1`, displayID)
	})
	return store
}

func TestPostgresAppDataRoundTrip(t *testing.T) {
	store := integrationStore(t)
	ctx := context.Background()

	d, err := store.GetAppData(ctx)
	require.NoError(t, err)
	assert.Len(t, d.Meals, 3, "missing row falls back to defaults")

	_, err = store.UpdateAppData(ctx, func(d *model.AppData) error {
		d.Residents = append(d.Residents, model.Resident{ID: "r1", FirstName: "Erna", BirthDate: "1938-01-09", Active: true})
		return nil
	})
	require.NoError(t, err)

	got, err := store.GetAppData(ctx)
	require.NoError(t, err)
	require.Len(t, got.Residents, 1)
	assert.Equal(t, "Erna", got.Residents[0].FirstName)

	_, err = store.UpdateAppData(ctx, func(d *model.AppData) error {
		d.Theme = "disco"
		return nil
	})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestPostgresUsers(t *testing.T) {
	store := integrationStore(t)
	email := fmt.Sprintf("admin-%d@example.com", time.Now().UnixNano())
	t.Cleanup(func() { _, _ = DB.Exec(`DELETE FROM users WHERE email = $1`, email) })

	id, err := store.CreateUser(email, "hash", nil)
	require.NoError(t, err)

	_, err = store.CreateUser(email, "hash", nil)
	assert.ErrorIs(t, err, ErrConflict)

	u, err := store.GetUserByID(id)
	require.NoError(t, err)
	assert.Equal(t, email, u.Email)

	_, err = store.GetUserByEmail("nobody-" + email)
	assert.ErrorIs(t, err, ErrNotFound)
}
