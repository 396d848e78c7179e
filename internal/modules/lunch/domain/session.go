package domain

import (
	userdomain "github.com/lunchpick/lunchpick/internal/modules/user/domain"

	"github.com/google/uuid"
)

// Session is the aggregate root for one lunch decision round. It moves
// through exactly two states, active then ended, and every mutation goes
// through an operation that checks the state first. The participant set
// always contains the creator.
type Session struct {
	ID           uuid.UUID         `json:"id"`
	Creator      userdomain.User   `json:"creator"`
	Participants []userdomain.User `json:"participants"`
	Restaurants  []Restaurant      `json:"restaurants"`
	Active       bool              `json:"active"`
	Picked       *Restaurant       `json:"picked_restaurant,omitempty"`
}

func NewSession(creator userdomain.User) *Session {
	return &Session{
		ID:           uuid.New(),
		Creator:      creator,
		Participants: []userdomain.User{creator},
		Active:       true,
	}
}

// AddParticipant inserts the user into the participant set. Adding an
// existing member is a no-op, not an error.
func (s *Session) AddParticipant(u userdomain.User) error {
	if !s.Active {
		return InvalidStateError{Reason: "session already ended"}
	}

	if s.HasParticipant(u.ID) {
		return nil
	}

	s.Participants = append(s.Participants, u)
	return nil
}

func (s *Session) HasParticipant(id uuid.UUID) bool {
	for _, p := range s.Participants {
		if p.ID == id {
			return true
		}
	}
	return false
}

// AddRestaurant inserts the candidate into the set, deduplicated by id.
func (s *Session) AddRestaurant(r Restaurant) error {
	if !s.Active {
		return InvalidStateError{Reason: "session already ended"}
	}

	for _, existing := range s.Restaurants {
		if existing.ID == r.ID {
			return nil
		}
	}

	s.Restaurants = append(s.Restaurants, r)
	return nil
}

func (s *Session) HasRestaurantNamed(name string) bool {
	for _, r := range s.Restaurants {
		if r.Name == name {
			return true
		}
	}
	return false
}

// End flips the session into its terminal state and draws the pick. Every
// candidate is picked with probability 1/N; the iteration order underneath
// the draw is an implementation detail nothing may rely on. Ending a session
// with no candidates yields a zero-value restaurant and no error.
func (s *Session) End(rand Rand) (Restaurant, error) {
	if !s.Active {
		return Restaurant{}, InvalidStateError{Reason: "session already ended"}
	}

	s.Active = false

	if len(s.Restaurants) == 0 {
		return Restaurant{}, nil
	}

	picked := s.Restaurants[rand.Intn(len(s.Restaurants))]
	s.Picked = &picked
	return picked, nil
}
