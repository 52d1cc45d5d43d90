//go:build integration

package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/domain"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/integrationtest"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/randompkg"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/web"
)

func TestUsersAPI(t *testing.T) {
	server := integrationtest.SetupServer(t)

	email := randompkg.Email()
	password := randompkg.String(10)

	post := func(t *testing.T, target string, body any) *httptest.ResponseRecorder {
		t.Helper()

		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Encoding request body error: %v", err)
		}

		req, err := http.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
		if err != nil {
			t.Fatalf("Creating request error: %v", err)
		}

		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		return w
	}

	t.Run("Signup", func(t *testing.T) {
		w := post(t, "/users", map[string]string{"email": email, "password": password})
		if w.Code != http.StatusOK {
			t.Fatalf("POST /users status code: got %v, want %v; body: %v",
				w.Code, http.StatusOK, w.Body.String())
		}

		var res web.Response
		if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
			t.Fatalf("Decoding response body error: %v", err)
		}

		if res.AccessToken == "" {
			t.Error(`res.AccessToken = "", want non empty`)
		}

		if res.RefreshToken == "" {
			t.Error(`res.RefreshToken = "", want non empty`)
		}
	})

	t.Run("DuplicateSignup", func(t *testing.T) {
		w := post(t, "/users", map[string]string{"email": email, "password": password})
		if w.Code != http.StatusConflict {
			t.Fatalf("POST /users status code: got %v, want %v", w.Code, http.StatusConflict)
		}

		var res web.Response
		if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
			t.Fatalf("Decoding response body error: %v", err)
		}

		if res.Error != domain.ErrEmailALreadyExists.Error() {
			t.Errorf("res.Error = %q, want %q", res.Error, domain.ErrEmailALreadyExists.Error())
		}
	})

	t.Run("Login", func(t *testing.T) {
		w := post(t, "/users/login", map[string]string{"email": email, "password": password})
		if w.Code != http.StatusOK {
			t.Fatalf("POST /users/login status code: got %v, want %v; body: %v",
				w.Code, http.StatusOK, w.Body.String())
		}
	})

	t.Run("LoginWrongPassword", func(t *testing.T) {
		w := post(t, "/users/login", map[string]string{"email": email, "password": "wrong" + password})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("POST /users/login status code: got %v, want %v", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("ChangePassword", func(t *testing.T) {
		w := post(t, "/users/login", map[string]string{"email": email, "password": password})
		if w.Code != http.StatusOK {
			t.Fatalf("POST /users/login status code: got %v, want %v", w.Code, http.StatusOK)
		}

		var login web.Response
		if err := json.NewDecoder(w.Body).Decode(&login); err != nil {
			t.Fatalf("Decoding response body error: %v", err)
		}

		newPassword := randompkg.String(10)

		raw, err := json.Marshal(map[string]string{
			"current_password": password,
			"new_password":     newPassword,
		})
		if err != nil {
			t.Fatalf("Encoding request body error: %v", err)
		}

		req, err := http.NewRequest(http.MethodPut, "/users/password", bytes.NewReader(raw))
		if err != nil {
			t.Fatalf("Creating request error: %v", err)
		}
		req.Header.Set("authorization", "bearer "+login.AccessToken)

		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("PUT /users/password status code: got %v, want %v; body: %v",
				recorder.Code, http.StatusOK, recorder.Body.String())
		}

		// The old password no longer works, the new one does.
		w = post(t, "/users/login", map[string]string{"email": email, "password": password})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("login with old password status code: got %v, want %v", w.Code, http.StatusUnauthorized)
		}

		w = post(t, "/users/login", map[string]string{"email": email, "password": newPassword})
		if w.Code != http.StatusOK {
			t.Errorf("login with new password status code: got %v, want %v", w.Code, http.StatusOK)
		}
	})
}
