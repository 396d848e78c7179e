package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lunchpick/lunchpick/internal/modules/core"
	"github.com/lunchpick/lunchpick/internal/modules/user/domain"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
)

type PostgresStore struct {
	db *sql.DB
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db}
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const query = `
		SELECT
			id, name, email
		FROM
			app_user
		WHERE
			id = $1;`

	user, err := tql.QuerySingle[domain.User](ctx, s.db, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, core.ErrNotFound
	}
	return user, err
}

func (s *PostgresStore) FindByName(ctx context.Context, name string) (domain.User, error) {
	const query = `
		SELECT
			id, name, email
		FROM
			app_user
		WHERE
			name = $1;`

	user, err := tql.QuerySingle[domain.User](ctx, s.db, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, core.ErrNotFound
	}
	return user, err
}

func (s *PostgresStore) FindAll(ctx context.Context) ([]domain.User, error) {
	const query = `
		SELECT
			id, name, email
		FROM
			app_user;`

	return tql.Query[domain.User](ctx, s.db, query)
}

func (s *PostgresStore) Save(ctx context.Context, user domain.User) error {
	const stmt = `
		INSERT INTO
			app_user (id, name, email)
		VALUES
			(:id, :name, :email)
		ON CONFLICT (id)
		DO UPDATE
		SET name = :name, email = :email;`

	_, err := tql.Exec(ctx, s.db, stmt, user)
	return err
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	const stmt = `
		DELETE FROM
			app_user
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
