package repository

import (
	"context"

	"storefront/internal/domain"
)

// UserPatch carries the optional fields of a partial user update.
// PasswordHash must already be hashed by the caller.
type UserPatch struct {
	Username     *string
	Email        *string
	PasswordHash *string
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.Email == nil && p.PasswordHash == nil
}

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Patch(ctx context.Context, id int64, patch UserPatch) (*domain.User, error)
}
