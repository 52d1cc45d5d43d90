// Package randompkg provides functionality gor generating random applications common items.
package randompkg

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/categorypkg"
	"github.com/shopspring/decimal"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// Float64 is a shortcut for generating a random float between 0 and 1 using crypto/rand.
func Float64() float64 {
	return float64(Intn(1<<32)) / (1 << 32)
}

// FloatBetween generates a random decimal number between min and max rounded to 4 decimals.
func FloatBetween(min, max float64) float64 {
	numInRange := min + Float64()*(max-min)
	return math.Floor(numInRange*10_000) / 10_000
}

// String generates a random string of length n.
func String(n int) string {
	var sb strings.Builder

	k := len(alphabet)

	for i := 0; i < n; i++ {
		c := alphabet[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// AmountBetween generates a random signed amount between min and max rounded to 4 decimals.
func AmountBetween(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(FloatBetween(min, max))
}

// ExpenseCategory generates a random non-income category.
func ExpenseCategory() string {
	expenses := make([]string, 0, len(categorypkg.SupportedCategories)-1)

	for _, c := range categorypkg.SupportedCategories {
		if c != categorypkg.Income {
			expenses = append(expenses, c)
		}
	}

	return expenses[Intn(len(expenses))]
}

// Description generates a random transaction description within entry bounds.
func Description() string {
	return String(int(Intn(97)) + 3)
}

// Date generates a random day-precision date within the last year.
func Date() time.Time {
	day := 24 * time.Hour
	return time.Now().UTC().Truncate(day).Add(-time.Duration(Intn(365)) * day)
}

// Email generates a random email.
func Email() string {
	return fmt.Sprintf("%s@email.com", String(10))
}
