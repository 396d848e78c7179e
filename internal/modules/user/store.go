package user

import (
	"context"

	"github.com/lunchpick/lunchpick/internal/modules/user/domain"

	"github.com/google/uuid"
)

// Store is the persistence capability for users. Implementations signal a
// missing record with core.ErrNotFound.
type Store interface {
	FindByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	FindByName(ctx context.Context, name string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Save(ctx context.Context, user domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
