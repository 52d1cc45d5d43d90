//go:build integration

package sessionrepo_test

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/domain"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/integrationtest"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/sessionrepo"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/configpkg"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/errorspkg"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/randompkg"
)

var (
	dbDriver string
	dbSource string
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	dbDriver = config.DBDriver
	dbSource = config.DBSource

	os.Exit(m.Run())
}

func SeedSession(t *testing.T, tx *sql.Tx, email string) domain.Session {
	arg := domain.CreateSessionParams{
		ID:           uuid.New(),
		Email:        email,
		RefreshToken: randompkg.String(10),
		UserAgent:    randompkg.String(10),
		ClientIP:     randompkg.String(10),
		ExpiresAt:    time.Now().Truncate(time.Second).UTC(),
	}

	sessionRepo := sessionrepo.NewRepoPGS(tx)

	session, err := sessionRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("sessionRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return session
}

func TestCreate(t *testing.T) {
	testCases := []struct {
		name        string
		wantSession func(tx *sql.Tx) domain.Session
		wantErr     error
	}{
		{
			name: "OK",
			wantSession: func(tx *sql.Tx) domain.Session {
				user := integrationtest.SeedUser(t, tx)
				return domain.Session{
					ID:           uuid.New(),
					Email:        user.Email,
					RefreshToken: randompkg.String(10),
					UserAgent:    randompkg.String(10),
					ClientIP:     randompkg.String(10),
					ExpiresAt:    time.Now().Truncate(time.Second).UTC(),
					CreatedAt:    time.Now().Truncate(time.Second).UTC(),
				}
			},
		},
		{
			name: "ErrUserNotFound",
			wantSession: func(tx *sql.Tx) domain.Session {
				return domain.Session{
					ID:           uuid.New(),
					Email:        randompkg.Email(),
					RefreshToken: randompkg.String(10),
					UserAgent:    randompkg.String(10),
					ClientIP:     randompkg.String(10),
					ExpiresAt:    time.Now().Truncate(time.Second).UTC(),
					CreatedAt:    time.Now().Truncate(time.Second).UTC(),
				}
			},
			wantErr: domain.ErrUserNotFound,
		},
		{
			name: "PubKeyDublicate",
			wantSession: func(tx *sql.Tx) domain.Session {
				user := integrationtest.SeedUser(t, tx)
				s := SeedSession(t, tx, user.Email)
				return domain.Session{
					ID:           s.ID,
					Email:        user.Email,
					RefreshToken: randompkg.String(10),
					UserAgent:    randompkg.String(10),
					ClientIP:     randompkg.String(10),
					ExpiresAt:    time.Now().Truncate(time.Second).UTC(),
					CreatedAt:    time.Now().Truncate(time.Second).UTC(),
				}
			},
			wantErr: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tx := integrationtest.SetupTX(t, dbDriver, dbSource)

			want := tc.wantSession(tx)

			sessionRepo := sessionrepo.NewRepoPGS(tx)

			arg := domain.CreateSessionParams{
				ID:           want.ID,
				Email:        want.Email,
				RefreshToken: want.RefreshToken,
				UserAgent:    want.UserAgent,
				ClientIP:     want.ClientIP,
				ExpiresAt:    want.ExpiresAt,
			}

			got, err := sessionRepo.Create(context.Background(), arg)
			if err != nil {
				if err == tc.wantErr {
					return
				}
				t.Fatalf("sessionRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
			}

			if diff := cmp.Diff(want, got, cmpopts.EquateApproxTime(time.Second)); diff != "" {
				t.Errorf(`sessionRepo.Create(context.Background(), %+v) returned unexpected difference (-want +got):\n%s"`,
					arg, diff)
			}
		})
	}
}

func TestGetSession(t *testing.T) {
	testCases := []struct {
		name        string
		wantSession func(tx *sql.Tx) domain.Session
		wantErr     error
	}{
		{
			name: "OK",
			wantSession: func(tx *sql.Tx) domain.Session {
				user := integrationtest.SeedUser(t, tx)
				return SeedSession(t, tx, user.Email)
			},
		},
		{
			name: "ErrSessionNotFound",
			wantSession: func(tx *sql.Tx) domain.Session {
				return domain.Session{ID: uuid.New()}
			},
			wantErr: domain.ErrSessionNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tx := integrationtest.SetupTX(t, dbDriver, dbSource)
			want := tc.wantSession(tx)
			sessionRepo := sessionrepo.NewRepoPGS(tx)

			got, err := sessionRepo.Get(context.Background(), want.ID)
			if err != nil {
				if err == tc.wantErr {
					return
				}
				t.Fatalf("sessionRepo.Get(context.Background(), %+v) returned error: %v", want.ID, err)
			}

			if diff := cmp.Diff(want, got, cmpopts.EquateApproxTime(time.Second)); diff != "" {
				t.Errorf(`sessionRepo.Get(context.Background(), %v) returned unexpected difference (-want +got):\n%s"`,
					want.ID, diff)
			}
		})
	}
}

func TestBlockByEmail(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)

	user := integrationtest.SeedUser(t, tx)
	first := SeedSession(t, tx, user.Email)
	second := SeedSession(t, tx, user.Email)

	other := integrationtest.SeedUser(t, tx)
	untouched := SeedSession(t, tx, other.Email)

	sessionRepo := sessionrepo.NewRepoPGS(tx)

	if err := sessionRepo.BlockByEmail(context.Background(), user.Email); err != nil {
		t.Fatalf("sessionRepo.BlockByEmail(context.Background(), %v) returned error: %v", user.Email, err)
	}

	for _, id := range []uuid.UUID{first.ID, second.ID} {
		got, err := sessionRepo.Get(context.Background(), id)
		if err != nil {
			t.Fatalf("sessionRepo.Get(context.Background(), %v) returned error: %v", id, err)
		}

		if !got.IsBlocked {
			t.Errorf("session %v is not blocked", id)
		}
	}

	got, err := sessionRepo.Get(context.Background(), untouched.ID)
	if err != nil {
		t.Fatalf("sessionRepo.Get(context.Background(), %v) returned error: %v", untouched.ID, err)
	}

	if got.IsBlocked {
		t.Errorf("session %v of another user was blocked", untouched.ID)
	}
}
