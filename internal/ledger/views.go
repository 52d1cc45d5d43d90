// Package ledger provides pure derived views over a user's transactions.
//
// Every function is side effect free and operates on an in-memory
// sequence already scoped to one owner.
package ledger

import (
	"sort"
	"strings"

	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the display format transactions are searched against.
const DateLayout = "02.01.2006"

// Balance returns the sum of all transaction amounts. Empty input yields 0.
func Balance(transactions []domain.Transaction) decimal.Decimal {
	total := decimal.Zero

	for _, t := range transactions {
		total = total.Add(t.Amount)
	}

	return total
}

// PartitionByDirection splits transactions into income (amount > 0) and
// expenses (amount < 0). Zero-amount transactions belong to neither.
func PartitionByDirection(transactions []domain.Transaction) (income, expenses []domain.Transaction) {
	income = []domain.Transaction{}
	expenses = []domain.Transaction{}

	for _, t := range transactions {
		switch t.Amount.Sign() {
		case 1:
			income = append(income, t)
		case -1:
			expenses = append(expenses, t)
		}
	}

	return income, expenses
}

// CategoryTotal holds the aggregated absolute amount of one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// AggregateByCategory sums the absolute amount per category and returns
// the pairs sorted by total descending. Ties keep the first-encountered
// category order, so the output is deterministic for permuted input
// only up to that tie rule.
func AggregateByCategory(transactions []domain.Transaction) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	order := []string{}

	for _, t := range transactions {
		if _, ok := totals[t.Category]; !ok {
			order = append(order, t.Category)
		}

		totals[t.Category] = totals[t.Category].Add(t.Amount.Abs())
	}

	result := make([]CategoryTotal, len(order))
	for i, c := range order {
		result[i] = CategoryTotal{Category: c, Total: totals[c]}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total.GreaterThan(result[j].Total)
	})

	return result
}

// SortKey selects the transaction field to sort by.
type SortKey string

// Supported sort keys.
const (
	SortByDate        SortKey = "date"
	SortByAmount      SortKey = "amount"
	SortByCategory    SortKey = "category"
	SortByDescription SortKey = "description"
)

// Sort returns a new sequence ordered by the given key. Date compares
// chronologically, amount numerically, category and description
// case-insensitively. The sort is stable for equal keys. An unknown key
// returns the input order unchanged.
func Sort(transactions []domain.Transaction, key SortKey, descending bool) []domain.Transaction {
	sorted := make([]domain.Transaction, len(transactions))
	copy(sorted, transactions)

	var less func(a, b domain.Transaction) bool

	switch key {
	case SortByDate:
		less = func(a, b domain.Transaction) bool { return a.Date.Before(b.Date) }
	case SortByAmount:
		less = func(a, b domain.Transaction) bool { return a.Amount.LessThan(b.Amount) }
	case SortByCategory:
		less = func(a, b domain.Transaction) bool {
			return strings.ToLower(a.Category) < strings.ToLower(b.Category)
		}
	case SortByDescription:
		less = func(a, b domain.Transaction) bool {
			return strings.ToLower(a.Description) < strings.ToLower(b.Description)
		}
	default:
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return less(sorted[j], sorted[i])
		}

		return less(sorted[i], sorted[j])
	})

	return sorted
}

// Filter returns the transactions matching the free-text query. A
// transaction matches if the query is a case-insensitive substring of
// its description, category, formatted date or decimal amount string.
// An empty query matches everything.
func Filter(transactions []domain.Transaction, query string) []domain.Transaction {
	if query == "" {
		return transactions
	}

	q := strings.ToLower(query)
	matched := []domain.Transaction{}

	for _, t := range transactions {
		if strings.Contains(strings.ToLower(t.Description), q) ||
			strings.Contains(strings.ToLower(t.Category), q) ||
			strings.Contains(t.Date.Format(DateLayout), q) ||
			strings.Contains(t.Amount.String(), q) {
			matched = append(matched, t)
		}
	}

	return matched
}
