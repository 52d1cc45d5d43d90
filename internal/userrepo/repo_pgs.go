// Package userrepo manages repository layer of users.
package userrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/domain"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/dbpkg"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/errorspkg"
)

// RepoPGS facilitates user repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns user RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// CreateQuery inserts into users table.
const CreateQuery = `
INSERT INTO users (
    email,
    hashed_password
) VALUES (
    $1, $2
) RETURNING email, hashed_password, password_changed_at, created_at
`

// Create creates the user and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, CreateQuery,
		arg.Email,
		arg.HashedPassword,
	)

	var u domain.User

	err := row.Scan(
		&u.Email,
		&u.HashedPassword,
		&u.PasswordChangedAt,
		&u.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code.Name() == "unique_violation" {
				return u, domain.ErrEmailALreadyExists
			}
		}

		return u, err
	}

	return u, nil
}

const getQuery = `
SELECT
	email,
	hashed_password,
	password_changed_at,
	created_at
FROM users
WHERE email = $1
`

// Get returns the user with the given email.
func (r *RepoPGS) Get(ctx context.Context, email string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, email)

	var u domain.User

	err := row.Scan(
		&u.Email,
		&u.HashedPassword,
		&u.PasswordChangedAt,
		&u.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const updatePasswordQuery = `
UPDATE users
SET hashed_password = $2, password_changed_at = now()
WHERE email = $1
RETURNING email, hashed_password, password_changed_at, created_at
`

// UpdatePassword replaces the user's password hash and stamps the change.
func (r *RepoPGS) UpdatePassword(ctx context.Context, email, hashedPassword string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, updatePasswordQuery, email, hashedPassword)

	var u domain.User

	err := row.Scan(
		&u.Email,
		&u.HashedPassword,
		&u.PasswordChangedAt,
		&u.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}
