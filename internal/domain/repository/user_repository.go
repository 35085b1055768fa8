package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-employee-directory/internal/domain/entity"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// Create inserts u and fills ID and timestamps. ErrDuplicate on a unique violation.
	Create(ctx context.Context, u *entity.User) error
	// ExistsByEmailOrUsername is a single existence check over both identifiers.
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	// FindByEmailOrUsername matches either identifier; an email match wins
	// when both are given and hit different rows. ErrNotFound when nothing matches.
	FindByEmailOrUsername(ctx context.Context, email, username string) (*entity.User, error)
}
