package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/safeguard/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore captures persistence operations needed by the auth service.
// Implementations must enforce email uniqueness themselves: CreateUser returns
// ErrAlreadyExists when the email is taken, even under concurrent inserts.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
	Ping(ctx context.Context) error
	Close()
}
