package repository

import (
	"context"

	"github.com/jhoicas/issuetrack-api/internal/domain/entity"
)

// UserRepository persistence port for users.
type UserRepository interface {
	// Create persists a new user. Returns domain.ErrConflict when the
	// username is already taken (unique constraint, not pre-checked).
	Create(ctx context.Context, user *entity.User) error
	// GetByUsername returns (nil, nil) when no row matches.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
