package suggestiondelivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"

	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/domain"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/middleware"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/categorypkg"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/randompkg"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/tokenpkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("category", categorypkg.ValidCategory); err != nil {
			os.Exit(1)
		}
	}

	os.Exit(m.Run())
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	owner := randompkg.Email()

	tokenSymmetricKey := randompkg.String(32)

	tokenMaker, err := tokenpkg.NewPasetoMaker(tokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", tokenSymmetricKey, err)
	}

	suggestion := domain.Suggestion{Category: categorypkg.Groceries, Confidence: 0.92}

	testCases := []struct {
		name           string
		body           gin.H
		setupAuth      func(t *testing.T, r *http.Request) error
		buildStubs     func(service *MockService)
		wantStatusCode int
		checkBody      func(t *testing.T, body *bytes.Buffer)
	}{
		{
			name: "OK",
			body: gin.H{
				"description":       "молоко і хліб",
				"selected_category": categorypkg.Other,
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, middleware.AuthTypeBearer, owner, time.Minute)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Suggest(gomock.Any(), gomock.Eq(owner), gomock.Eq("молоко і хліб"), gomock.Eq(categorypkg.Other)).
					Times(1).
					Return(suggestion, nil)
			},
			wantStatusCode: http.StatusOK,
			checkBody: func(t *testing.T, body *bytes.Buffer) {
				var res response
				if err := json.Unmarshal(body.Bytes(), &res); err != nil {
					t.Fatalf("json.Unmarshal(%v) returned error: %v", body.String(), err)
				}

				if res.Data.Suggestion != suggestion {
					t.Errorf("res.Data.Suggestion = %v, want %v", res.Data.Suggestion, suggestion)
				}
			},
		},
		{
			name: "NoAuthorization",
			body: gin.H{
				"description": "молоко і хліб",
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return nil
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Suggest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "MissingDescription",
			body: gin.H{
				"selected_category": categorypkg.Other,
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, middleware.AuthTypeBearer, owner, time.Minute)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Suggest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "UnsupportedSelectedCategory",
			body: gin.H{
				"description":       "молоко і хліб",
				"selected_category": "Кава",
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, middleware.AuthTypeBearer, owner, time.Minute)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Suggest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "DescriptionTooShort",
			body: gin.H{
				"description": "abc",
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, middleware.AuthTypeBearer, owner, time.Minute)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Suggest(gomock.Any(), gomock.Eq(owner), gomock.Eq("abc"), gomock.Eq("")).
					Times(1).
					Return(domain.Suggestion{}, domain.ErrDescriptionTooShort)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "NoSuggestion",
			body: gin.H{
				"description": "coffee with friends",
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, middleware.AuthTypeBearer, owner, time.Minute)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Suggest(gomock.Any(), gomock.Eq(owner), gomock.Eq("coffee with friends"), gomock.Eq("")).
					Times(1).
					Return(domain.Suggestion{}, domain.ErrNoSuggestion)
			},
			wantStatusCode: http.StatusNoContent,
		},
		{
			name: "Superseded",
			body: gin.H{
				"description": "квитки в кі",
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, middleware.AuthTypeBearer, owner, time.Minute)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Suggest(gomock.Any(), gomock.Eq(owner), gomock.Eq("квитки в кі"), gomock.Eq("")).
					Times(1).
					Return(domain.Suggestion{}, domain.ErrSuggestionSuperseded)
			},
			wantStatusCode: http.StatusNoContent,
		},
		{
			name: "InternalError",
			body: gin.H{
				"description": "молоко і хліб",
			},
			setupAuth: func(t *testing.T, r *http.Request) error {
				return middleware.AddAuthorization(r, tokenMaker, middleware.AuthTypeBearer, owner, time.Minute)
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Suggest(gomock.Any(), gomock.Eq(owner), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Suggestion{}, fmt.Errorf("model unavailable"))
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			handler := NewHandler(service)

			engine := gin.New()
			engine.POST("/suggestions", middleware.AuthMiddleware(tokenMaker), handler.Suggest)

			body, err := json.Marshal(tc.body)
			if err != nil {
				t.Fatalf("json.Marshal(%v) returned error: %v", tc.body, err)
			}

			request, err := http.NewRequest(http.MethodPost, "/suggestions", bytes.NewReader(body))
			if err != nil {
				t.Fatalf("http.NewRequest() returned error: %v", err)
			}

			if err := tc.setupAuth(t, request); err != nil {
				t.Fatalf("tc.setupAuth(t, request) returned error: %v", err)
			}

			recorder := httptest.NewRecorder()
			engine.ServeHTTP(recorder, request)

			if recorder.Code != tc.wantStatusCode {
				t.Errorf("recorder.Code = %v, want %v; body: %v",
					recorder.Code, tc.wantStatusCode, recorder.Body.String())
			}

			if tc.checkBody != nil {
				tc.checkBody(t, recorder.Body)
			}
		})
	}
}
