// exposes a Store interface that is passed to API calls w/ param requirements
package db

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/Nixie-Tech-LLC/carescreen/internal/model"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
	ErrInvalid  = errors.New("invalid display data")
)

// UpdateFunc mutates a freshly loaded copy of the display data. Returning an
// error aborts the write.
type UpdateFunc func(d *model.AppData) error

type Store interface {
	// user functions
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error

	// display data functions; every read returns an independent copy
	GetAppData(ctx context.Context) (*model.AppData, error)
	UpdateAppData(ctx context.Context, fn UpdateFunc) (*model.AppData, error)
	ReplaceAppData(ctx context.Context, d *model.AppData) (*model.AppData, error)
}

type pgStore struct {
	db        *sqlx.DB
	displayID string
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

// NewStore returns a PostgreSQL-backed Store scoped to one display.
func NewStore(conn *sqlx.DB, displayID string) Store {
	return &pgStore{db: conn, displayID: displayID}
}
