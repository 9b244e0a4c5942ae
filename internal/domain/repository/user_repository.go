package repository

import (
	"context"
	"errors"

	"github.com/Lucas-Nascimentto/projeto-fan/internal/domain/entity"
)

// ErrNotFound is returned by every repository when the referenced
// record does not exist. Callers classify it at the service boundary.
var ErrNotFound = errors.New("not found")

// UserRepository defines the interface for user-related store operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
