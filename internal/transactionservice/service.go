// Package transactionservice manages business logic layer of transactions.
package transactionservice

import (
	"context"
	"strings"
	"time"

	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/domain"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/ledger"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/categorypkg"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/errorspkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	descriptionMinLength = 3
	descriptionMaxLength = 100
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error)
	Get(ctx context.Context, id int64) (domain.Transaction, error)
	ListByOwner(ctx context.Context, owner string) ([]domain.Transaction, error)
	Delete(ctx context.Context, id int64) error
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo Repo
}

// New returns transaction service struct to manage transaction bussines logic.
func New(tr Repo) *Service {
	return &Service{repo: tr}
}

// CreateInput is the raw, not yet validated input of the create operation.
type CreateInput struct {
	Date        string
	Amount      string
	Category    string
	Description string
}

// dateLayouts are accepted create input date formats, day precision first.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date, nil
		}
	}

	return time.Time{}, domain.ErrInvalidDate
}

// Create validates the input, persists the transaction and returns it
// with the store assigned id. The sign of the amount is stored as given.
func (s *Service) Create(ctx context.Context, owner string, input CreateInput) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	var result domain.Transaction

	if owner == "" {
		l.Error().Msg("create transaction without owner")
		return result, errorspkg.ErrInternal
	}

	amount, err := decimal.NewFromString(input.Amount)
	if err != nil {
		return result, domain.ErrInvalidAmount
	}

	date, err := parseDate(input.Date)
	if err != nil {
		return result, err
	}

	if !categorypkg.IsSupportedCategory(input.Category) {
		return result, domain.ErrCategoryNotSupported
	}

	description := strings.TrimSpace(input.Description)
	if n := len([]rune(description)); n < descriptionMinLength || n > descriptionMaxLength {
		return result, domain.ErrDescriptionLength
	}

	arg := domain.CreateTransactionParams{
		Date:        date,
		Amount:      amount,
		Category:    input.Category,
		Description: description,
		Owner:       owner,
	}

	return s.repo.Create(ctx, arg)
}

// ListResult is the ledger of one owner together with its derived views.
type ListResult struct {
	Transactions []domain.Transaction
	Balance      decimal.Decimal
	Income       decimal.Decimal
	Expenses     decimal.Decimal
}

// List returns the owner's transactions filtered by the free-text query
// and sorted by the given key. The balance and the income and expense
// totals are derived from the full ledger, not the filtered view.
func (s *Service) List(ctx context.Context, owner, query string, key ledger.SortKey, descending bool) (ListResult, error) {
	transactions, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return ListResult{}, err
	}

	income, expenses := ledger.PartitionByDirection(transactions)

	result := ListResult{
		Balance:      ledger.Balance(transactions),
		Income:       ledger.Balance(income),
		Expenses:     ledger.Balance(expenses).Abs(),
		Transactions: ledger.Sort(ledger.Filter(transactions, query), key, descending),
	}

	return result, nil
}

// Delete removes the transaction after re-verifying ownership. The
// check runs here, at the trust boundary, no matter what the caller
// already believes about the record.
func (s *Service) Delete(ctx context.Context, id int64, owner string) error {
	l := zerolog.Ctx(ctx)

	transaction, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if transaction.Owner != owner {
		l.Warn().
			Int64("transaction_id", id).
			Str("requesting_owner", owner).
			Msg("delete rejected: owner mismatch")

		return domain.ErrTransactionOwnerMismatch
	}

	return s.repo.Delete(ctx, id)
}

// Report holds expense totals per category for the spending chart.
type Report struct {
	Categories []ledger.CategoryTotal
	Total      decimal.Decimal
}

// SpendingReport aggregates the owner's expenses by category, sorted by
// total descending.
func (s *Service) SpendingReport(ctx context.Context, owner string) (Report, error) {
	transactions, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return Report{}, err
	}

	_, expenses := ledger.PartitionByDirection(transactions)

	report := Report{
		Categories: ledger.AggregateByCategory(expenses),
		Total:      ledger.Balance(expenses).Abs(),
	}

	return report, nil
}
