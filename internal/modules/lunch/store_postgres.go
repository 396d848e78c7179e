package lunch

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lunchpick/lunchpick/internal/modules/core"
	"github.com/lunchpick/lunchpick/internal/modules/lunch/domain"
	userdomain "github.com/lunchpick/lunchpick/internal/modules/user/domain"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
)

type sessionRow struct {
	ID                   uuid.UUID      `db:"id"`
	CreatorID            uuid.UUID      `db:"creator_id"`
	Active               bool           `db:"active"`
	PickedRestaurantID   uuid.NullUUID  `db:"picked_restaurant_id"`
	PickedRestaurantName sql.NullString `db:"picked_restaurant_name"`
}

type participantRow struct {
	SessionID uuid.UUID `db:"session_id"`
	UserID    uuid.UUID `db:"user_id"`
}

// PostgresSessionStore persists the aggregate across three tables: the
// session row, the participant join table and the restaurant table. Loads
// hydrate the whole aggregate; saves write the row and insert missing
// participants in one transaction. Restaurant rows are written through the
// restaurant store.
type PostgresSessionStore struct {
	db *sql.DB
}

var _ SessionStore = (*PostgresSessionStore)(nil)

func NewPostgresSessionStore(db *sql.DB) *PostgresSessionStore {
	return &PostgresSessionStore{db}
}

func (s *PostgresSessionStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	const query = `
		SELECT
			id, creator_id, active, picked_restaurant_id, picked_restaurant_name
		FROM
			lunch_session
		WHERE
			id = $1;`

	row, err := tql.QuerySingle[sessionRow](ctx, s.db, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return s.hydrate(ctx, row)
}

func (s *PostgresSessionStore) FindAll(ctx context.Context) ([]*domain.Session, error) {
	const query = `
		SELECT
			id, creator_id, active, picked_restaurant_id, picked_restaurant_name
		FROM
			lunch_session;`

	rows, err := tql.Query[sessionRow](ctx, s.db, query)
	if err != nil {
		return nil, err
	}

	sessions := make([]*domain.Session, 0, len(rows))
	for _, row := range rows {
		session, err := s.hydrate(ctx, row)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (s *PostgresSessionStore) Save(ctx context.Context, session *domain.Session) error {
	return core.Tx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		const stmt = `
			INSERT INTO
				lunch_session (id, creator_id, active, picked_restaurant_id, picked_restaurant_name)
			VALUES
				(:id, :creator_id, :active, :picked_restaurant_id, :picked_restaurant_name)
			ON CONFLICT (id)
			DO UPDATE
			SET
				active = :active,
				picked_restaurant_id = :picked_restaurant_id,
				picked_restaurant_name = :picked_restaurant_name;`

		row := sessionRow{
			ID:        session.ID,
			CreatorID: session.Creator.ID,
			Active:    session.Active,
		}
		if session.Picked != nil {
			row.PickedRestaurantID = uuid.NullUUID{UUID: session.Picked.ID, Valid: true}
			row.PickedRestaurantName = sql.NullString{String: session.Picked.Name, Valid: true}
		}

		if _, err := tql.Exec(ctx, tx, stmt, row); err != nil {
			return err
		}

		const participantStmt = `
			INSERT INTO
				session_participant (session_id, user_id)
			VALUES
				(:session_id, :user_id)
			ON CONFLICT (session_id, user_id)
			DO NOTHING;`

		for _, participant := range session.Participants {
			row := participantRow{SessionID: session.ID, UserID: participant.ID}
			if _, err := tql.Exec(ctx, tx, participantStmt, row); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *PostgresSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	const stmt = `
		DELETE FROM
			lunch_session
		WHERE
			id = $1;`

	result, err := tql.Exec(ctx, s.db, stmt, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *PostgresSessionStore) hydrate(ctx context.Context, row sessionRow) (*domain.Session, error) {
	const creatorQuery = `
		SELECT
			id, name, email
		FROM
			app_user
		WHERE
			id = $1;`

	creator, err := tql.QuerySingle[userdomain.User](ctx, s.db, creatorQuery, row.CreatorID)
	if err != nil {
		return nil, err
	}

	const participantsQuery = `
		SELECT
			u.id, u.name, u.email
		FROM
			app_user u
			JOIN session_participant sp ON sp.user_id = u.id
		WHERE
			sp.session_id = $1;`

	participants, err := tql.Query[userdomain.User](ctx, s.db, participantsQuery, row.ID)
	if err != nil {
		return nil, err
	}

	const restaurantsQuery = `
		SELECT
			id, name, session_id
		FROM
			restaurant
		WHERE
			session_id = $1;`

	restaurants, err := tql.Query[domain.Restaurant](ctx, s.db, restaurantsQuery, row.ID)
	if err != nil {
		return nil, err
	}

	session := domain.Session{
		ID:           row.ID,
		Creator:      creator,
		Participants: participants,
		Restaurants:  restaurants,
		Active:       row.Active,
	}

	// The pick is denormalized onto the session row because ending a session
	// deletes its restaurant rows.
	if row.PickedRestaurantID.Valid {
		session.Picked = &domain.Restaurant{
			ID:        row.PickedRestaurantID.UUID,
			Name:      row.PickedRestaurantName.String,
			SessionID: row.ID,
		}
	}

	return &session, nil
}

type PostgresRestaurantStore struct {
	db *sql.DB
}

var _ RestaurantStore = (*PostgresRestaurantStore)(nil)

func NewPostgresRestaurantStore(db *sql.DB) *PostgresRestaurantStore {
	return &PostgresRestaurantStore{db}
}

func (s *PostgresRestaurantStore) FindByName(ctx context.Context, name string) (domain.Restaurant, error) {
	const query = `
		SELECT
			id, name, session_id
		FROM
			restaurant
		WHERE
			name = $1;`

	restaurant, err := tql.QueryFirst[domain.Restaurant](ctx, s.db, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Restaurant{}, core.ErrNotFound
	}
	return restaurant, err
}

func (s *PostgresRestaurantStore) FindBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.Restaurant, error) {
	const query = `
		SELECT
			id, name, session_id
		FROM
			restaurant
		WHERE
			session_id = $1;`

	return tql.Query[domain.Restaurant](ctx, s.db, query, sessionID)
}

func (s *PostgresRestaurantStore) Save(ctx context.Context, restaurant domain.Restaurant) error {
	const stmt = `
		INSERT INTO
			restaurant (id, name, session_id)
		VALUES
			(:id, :name, :session_id)
		ON CONFLICT (id)
		DO NOTHING;`

	_, err := tql.Exec(ctx, s.db, stmt, restaurant)
	return err
}

func (s *PostgresRestaurantStore) DeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	const stmt = `
		DELETE FROM
			restaurant
		WHERE
			session_id = $1;`

	_, err := tql.Exec(ctx, s.db, stmt, sessionID)
	return err
}
