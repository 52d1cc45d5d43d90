// Package transactionrepo manages repository layer of transactions.
package transactionrepo

import (
	"context"
	"database/sql"

	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/domain"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/dbpkg"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    transactions (date, amount, category, description, owner)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING id, date, amount, category, description, owner, created_at
`

// Create creates the transaction and then returns it with the store assigned id.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.Date,
		arg.Amount,
		arg.Category,
		arg.Description,
		arg.Owner,
	)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.Date,
		&t.Amount,
		&t.Category,
		&t.Description,
		&t.Owner,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "transactions_owner_fkey" {
				return t, domain.ErrUserNotFound
			}
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const getQuery = `
SELECT
	id, date, amount, category, description, owner, created_at
FROM transactions
WHERE id = $1
`

// Get returns the transaction with the given id regardless of owner.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.Date,
		&t.Amount,
		&t.Category,
		&t.Description,
		&t.Owner,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listByOwnerQuery = `
SELECT
	id, date, amount, category, description, owner, created_at
FROM transactions
WHERE owner = $1
ORDER BY date DESC
`

// ListByOwner returns all transactions of the given owner ordered by date descending.
func (r *RepoPGS) ListByOwner(ctx context.Context, owner string) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByOwnerQuery, owner)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, domain.ErrStoreUnavailable
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.Date, &t.Amount, &t.Category, &t.Description, &t.Owner, &t.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, domain.ErrStoreUnavailable
	}

	return items, nil
}

const deleteQuery = `
DELETE FROM transactions
WHERE id = $1
`

// Delete removes the transaction with the given id.
func (r *RepoPGS) Delete(ctx context.Context, id int64) error {
	l := zerolog.Ctx(ctx)

	result, err := r.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if deleted == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}
