// Package integrationtest provides db helpers used in integration tests.
package integrationtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Vitaliy-tsuper/hatafinance.github.io/cmd/httpserver"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/domain"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/middleware"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/sessionrepo"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/transactionrepo"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/userrepo"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/configpkg"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/dbpkg"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/passpkg"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/randompkg"
)

// noSuggestion stands in for the model client so the server starts
// without model credentials.
type noSuggestion struct{}

func (noSuggestion) Classify(ctx context.Context, description string) (domain.Suggestion, error) {
	return domain.Suggestion{}, domain.ErrNoSuggestion
}

// SetupServer returns test server that cleans up database after each integration test.
func SetupServer(t *testing.T) *httpserver.Server {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		t.Fatalf(`configpkg.Load("../../configs") returned error: %v`, err)
	}

	zerolog.SetGlobalLevel(zerolog.FatalLevel)

	logger := middleware.CreateLogger(config)

	db := SetupDB(t, config.DBDriver, config.DBSource)

	gin.SetMode(gin.ReleaseMode)

	server, err := httpserver.New(db, logger, config, noSuggestion{})
	if err != nil {
		t.Fatalf(`httpserver.New(db, logger, config, noSuggestion{}) returned error: %v`, err)
	}

	return server
}

// Flush flushes all db tables without droping.
func Flush(t *testing.T, db *sql.DB) {
	t.Helper()

	var tables string

	const query = `
	SELECT string_agg(table_name, ', ')
	FROM information_schema.tables
	WHERE table_schema='public';`

	row := db.QueryRow(query)

	err := row.Scan(&tables)
	if err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}

	if _, err := db.Exec(`TRUNCATE TABLE ` + tables + " CASCADE"); err != nil {
		t.Fatalf("db cleanup failed. err: %v", err)
	}
}

// SetupDB sets up connection with database for testing and then cleans it.
func SetupDB(t *testing.T, driver, source string) *sql.DB {
	t.Helper()

	db, err := dbpkg.Setup(driver, source)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	t.Cleanup(func() {
		Flush(t, db)

		if err := db.Close(); err != nil {
			t.Fatalf("db cleanup failed. err: %v", err)
		}
	})

	return db
}

// SetupTX sets up a database transaction to be used in tests.
//
// Once the tests are done it will rollback the transaction.
func SetupTX(t *testing.T, driver, source string) *sql.Tx {
	t.Helper()

	db, err := dbpkg.Setup(driver, source)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("db.Begin() failed: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Fatalf("tx.Rollback() failed: %v", err)
		}
		if err := db.Close(); err != nil {
			t.Fatalf("db.Close() failed: %v", err)
		}
	})

	return tx
}

// SeedUser inserts a user with a random password and returns it.
func SeedUser(t *testing.T, tx dbpkg.SQLInterface) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	if err != nil {
		t.Fatalf("passpkg.Hash() returned error: %v", err)
	}

	arg := domain.CreateUserParams{
		Email:          randompkg.Email(),
		HashedPassword: hashedPassword,
	}

	user, err := userrepo.NewRepoPGS(tx).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("userrepo Create(%+v) returned error: %v", arg, err)
	}

	return user
}

// SeedSession inserts the given session.
func SeedSession(t *testing.T, tx dbpkg.SQLInterface, arg domain.CreateSessionParams) domain.Session {
	t.Helper()

	session, err := sessionrepo.NewRepoPGS(tx).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("sessionrepo Create(%+v) returned error: %v", arg, err)
	}

	return session
}

// SeedTransaction inserts a random transaction owned by the given user.
func SeedTransaction(t *testing.T, tx dbpkg.SQLInterface, owner string) domain.Transaction {
	t.Helper()

	arg := domain.CreateTransactionParams{
		Date:        randompkg.Date(),
		Amount:      randompkg.AmountBetween(-1000, 1000),
		Category:    randompkg.ExpenseCategory(),
		Description: randompkg.Description(),
		Owner:       owner,
	}

	transaction, err := transactionrepo.NewRepoPGS(tx).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("transactionrepo Create(%+v) returned error: %v", arg, err)
	}

	return transaction
}
