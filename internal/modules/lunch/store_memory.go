package lunch

import (
	"context"
	"sync"

	"github.com/lunchpick/lunchpick/internal/modules/core"
	"github.com/lunchpick/lunchpick/internal/modules/lunch/domain"
	userdomain "github.com/lunchpick/lunchpick/internal/modules/user/domain"

	"github.com/google/uuid"
)

// In-memory stores back the unit tests and favor clarity over performance.
// Reads hand out deep copies so callers only ever observe committed state; an
// aggregate mutated in place becomes visible to others through Save alone.

type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]domain.Session
}

var _ SessionStore = (*MemorySessionStore)(nil)

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[uuid.UUID]domain.Session)}
}

func (s *MemorySessionStore) FindByID(_ context.Context, id uuid.UUID) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, core.ErrNotFound
	}

	clone := cloneSession(session)
	return &clone, nil
}

func (s *MemorySessionStore) FindAll(_ context.Context) ([]*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]*domain.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		clone := cloneSession(session)
		sessions = append(sessions, &clone)
	}
	return sessions, nil
}

func (s *MemorySessionStore) Save(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = cloneSession(*session)
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return core.ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

type MemoryRestaurantStore struct {
	mu          sync.RWMutex
	restaurants map[uuid.UUID]domain.Restaurant
}

var _ RestaurantStore = (*MemoryRestaurantStore)(nil)

func NewMemoryRestaurantStore() *MemoryRestaurantStore {
	return &MemoryRestaurantStore{restaurants: make(map[uuid.UUID]domain.Restaurant)}
}

func (s *MemoryRestaurantStore) FindByName(_ context.Context, name string) (domain.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, restaurant := range s.restaurants {
		if restaurant.Name == name {
			return restaurant, nil
		}
	}
	return domain.Restaurant{}, core.ErrNotFound
}

func (s *MemoryRestaurantStore) FindBySession(_ context.Context, sessionID uuid.UUID) ([]domain.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	restaurants := make([]domain.Restaurant, 0)
	for _, restaurant := range s.restaurants {
		if restaurant.SessionID == sessionID {
			restaurants = append(restaurants, restaurant)
		}
	}
	return restaurants, nil
}

func (s *MemoryRestaurantStore) Save(_ context.Context, restaurant domain.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.restaurants[restaurant.ID] = restaurant
	return nil
}

func (s *MemoryRestaurantStore) DeleteBySession(_ context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, restaurant := range s.restaurants {
		if restaurant.SessionID == sessionID {
			delete(s.restaurants, id)
		}
	}
	return nil
}

func cloneSession(session domain.Session) domain.Session {
	session.Participants = append([]userdomain.User(nil), session.Participants...)
	session.Restaurants = append([]domain.Restaurant(nil), session.Restaurants...)
	if session.Picked != nil {
		picked := *session.Picked
		session.Picked = &picked
	}
	return session
}
