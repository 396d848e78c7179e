package lunch

import (
	"context"

	"github.com/lunchpick/lunchpick/internal/modules/lunch/domain"
	userdomain "github.com/lunchpick/lunchpick/internal/modules/user/domain"

	"github.com/google/uuid"
)

// Every store implementation signals a missing record with core.ErrNotFound.

// SessionStore is the persistence capability for session aggregates. Each
// coordinator operation performs a fresh load and a full save; nothing is
// cached between calls.
type SessionStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	FindAll(ctx context.Context) ([]*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RestaurantStore persists candidates. FindByName is global so a name never
// spawns a second entity.
type RestaurantStore interface {
	FindByName(ctx context.Context, name string) (domain.Restaurant, error)
	FindBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Restaurant, error)
	Save(ctx context.Context, restaurant domain.Restaurant) error
	DeleteBySession(ctx context.Context, sessionID uuid.UUID) error
}

// UserDirectory is the slice of the user module the lunch module consumes.
type UserDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (userdomain.User, error)
}
