package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/dream-journal-api/internal/domain/entity"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned on a uniqueness conflict.
	ErrAlreadyExists = errors.New("record already exists")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail expects an already lowercased email.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// SetRefreshToken overwrites the stored refresh token; an empty token clears it.
	SetRefreshToken(ctx context.Context, id, token string) error
	IncrementStats(ctx context.Context, id string, delta entity.UserStats) error
}
