//go:build integration

package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/domain"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/integrationtest"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/tokenpkg"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/web"
)

func TestRenewAccessTokenAPI(t *testing.T) {
	server := integrationtest.SetupServer(t)

	tokenMaker, err := tokenpkg.NewPasetoMaker(server.Config.TokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v",
			server.Config.TokenSymmetricKey, err)
	}

	duration := server.Config.RefreshTokenDuration

	type requestBody struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	seedSession := func(t *testing.T, email, refreshToken string, payload *tokenpkg.Payload, blocked bool, expiresAt time.Time) {
		arg := domain.CreateSessionParams{
			ID:           payload.ID,
			Email:        email,
			RefreshToken: refreshToken,
			UserAgent:    "Mozilla/5.0",
			ClientIP:     "123.123.123.123",
			IsBlocked:    blocked,
			ExpiresAt:    expiresAt,
		}
		integrationtest.SeedSession(t, server.DB, arg)
	}

	testCases := []struct {
		name           string
		requestBody    func(t *testing.T) requestBody
		wantStatusCode int
		checkData      func(t *testing.T, res web.Response)
		wantError      string
	}{
		{
			name: "OK",
			requestBody: func(t *testing.T) requestBody {
				user := integrationtest.SeedUser(t, server.DB)

				refreshToken, payload, err := tokenMaker.CreateToken(user.Email, duration)
				if err != nil {
					t.Fatalf("tokenMaker.CreateToken(%v, %v) returned error: %v",
						user.Email, duration, err)
				}

				seedSession(t, user.Email, refreshToken, payload, false, payload.ExpiredAt)

				return requestBody{
					RefreshToken: refreshToken,
				}
			},
			wantStatusCode: http.StatusOK,
			checkData: func(t *testing.T, got web.Response) {
				t.Helper()

				if _, err := tokenMaker.VerifyToken(got.AccessToken); err != nil {
					t.Errorf("tokenMaker.VerifyToken(got.AccessToken) returned error: %v", err)
				}
			},
		},
		{
			name: "ErrExpiredToken",
			requestBody: func(t *testing.T) requestBody {
				user := integrationtest.SeedUser(t, server.DB)

				refreshToken, _, err := tokenMaker.CreateToken(user.Email, time.Nanosecond)
				if err != nil {
					t.Fatalf("tokenMaker.CreateToken(%v, %v) returned error: %v",
						user.Email, time.Nanosecond, err)
				}

				return requestBody{
					RefreshToken: refreshToken,
				}
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      tokenpkg.ErrExpiredToken.Error(),
		},
		{
			name: "ErrSessionNotFound",
			requestBody: func(t *testing.T) requestBody {
				user := integrationtest.SeedUser(t, server.DB)

				refreshToken, _, err := tokenMaker.CreateToken(user.Email, duration)
				if err != nil {
					t.Fatalf("tokenMaker.CreateToken(%v, %v) returned error: %v",
						user.Email, duration, err)
				}

				return requestBody{
					RefreshToken: refreshToken,
				}
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      domain.ErrSessionNotFound.Error(),
		},
		{
			name: "ErrBlockedSession",
			requestBody: func(t *testing.T) requestBody {
				user := integrationtest.SeedUser(t, server.DB)

				refreshToken, payload, err := tokenMaker.CreateToken(user.Email, duration)
				if err != nil {
					t.Fatalf("tokenMaker.CreateToken(%v, %v) returned error: %v",
						user.Email, duration, err)
				}

				seedSession(t, user.Email, refreshToken, payload, true, payload.ExpiredAt)

				return requestBody{
					RefreshToken: refreshToken,
				}
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      domain.ErrBlockedSession.Error(),
		},
		{
			name: "ErrInvalidUser",
			requestBody: func(t *testing.T) requestBody {
				user := integrationtest.SeedUser(t, server.DB)

				refreshToken, payload, err := tokenMaker.CreateToken(user.Email, duration)
				if err != nil {
					t.Fatalf("tokenMaker.CreateToken(%v, %v) returned error: %v",
						user.Email, duration, err)
				}

				user2 := integrationtest.SeedUser(t, server.DB)
				seedSession(t, user2.Email, refreshToken, payload, false, payload.ExpiredAt)

				return requestBody{
					RefreshToken: refreshToken,
				}
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      domain.ErrInvalidUser.Error(),
		},
		{
			name: "ErrMismatchedRefreshToken",
			requestBody: func(t *testing.T) requestBody {
				user := integrationtest.SeedUser(t, server.DB)

				refreshToken, payload, err := tokenMaker.CreateToken(user.Email, duration)
				if err != nil {
					t.Fatalf("tokenMaker.CreateToken(%v, %v) returned error: %v",
						user.Email, duration, err)
				}

				otherToken, _, err := tokenMaker.CreateToken(user.Email, duration)
				if err != nil {
					t.Fatalf("tokenMaker.CreateToken(%v, %v) returned error: %v",
						user.Email, duration, err)
				}

				seedSession(t, user.Email, otherToken, payload, false, payload.ExpiredAt)

				return requestBody{
					RefreshToken: refreshToken,
				}
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      domain.ErrMismatchedRefreshToken.Error(),
		},
		{
			name: "ErrExpiredSession",
			requestBody: func(t *testing.T) requestBody {
				user := integrationtest.SeedUser(t, server.DB)

				refreshToken, payload, err := tokenMaker.CreateToken(user.Email, duration)
				if err != nil {
					t.Fatalf("tokenMaker.CreateToken(%v, %v) returned error: %v",
						user.Email, duration, err)
				}

				seedSession(t, user.Email, refreshToken, payload, false, payload.ExpiredAt.Add(-72*time.Hour))

				return requestBody{
					RefreshToken: refreshToken,
				}
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      domain.ErrExpiredSession.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			body, err := json.Marshal(tc.requestBody(t))
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req, err := http.NewRequest(http.MethodPost, "/sessions", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			w := httptest.NewRecorder()
			server.ServeHTTP(w, req)

			if got := w.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := web.Response{}

			if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
				t.Errorf("Decoding response body error: %v", err)
			}

			if tc.wantStatusCode != http.StatusOK {
				if res.Error != tc.wantError {
					t.Errorf(`res.Error=%q, want %q`, res.Error, tc.wantError)
				}
			} else {
				tc.checkData(t, res)
			}
		})
	}
}
