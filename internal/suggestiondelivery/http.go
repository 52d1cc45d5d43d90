// Package suggestiondelivery exposes category suggestions over http.
package suggestiondelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/domain"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/middleware"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/errorspkg"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/tokenpkg"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/web"
)

// Service provides debounced category suggestions.
type Service interface {
	Suggest(ctx context.Context, owner, description, selected string) (domain.Suggestion, error)
}

//go:generate mockgen -source=http.go -destination=http_mock.go -package=suggestiondelivery

// Handler facilitates suggestion http requests.
type Handler struct {
	service Service
}

// NewHandler returns a suggestion Handler.
func NewHandler(ss Service) *Handler {
	return &Handler{service: ss}
}

type suggestRequest struct {
	Description      string `json:"description" binding:"required"`
	SelectedCategory string `json:"selected_category" binding:"omitempty,category"`
}

type data struct {
	Suggestion domain.Suggestion `json:"suggestion"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

// Suggest handles http request for a category suggestion. A suppressed
// suggestion, whatever the reason, is a 204 so the client simply keeps
// the current selection.
func (h *Handler) Suggest(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req suggestRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	suggestion, err := h.service.Suggest(ctx, authPayload.Email, req.Description, req.SelectedCategory)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDescriptionTooShort):
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case errors.Is(err, domain.ErrNoSuggestion), errors.Is(err, domain.ErrSuggestionSuperseded):
			gctx.Status(http.StatusNoContent)
			return
		case errors.Is(err, context.Canceled):
			gctx.Status(http.StatusNoContent)
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{suggestion}})
}
