// Package transactiondelivery manages delivery layer of transactions.
package transactiondelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/domain"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/ledger"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/middleware"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/internal/transactionservice"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/errorspkg"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/tokenpkg"
	"github.com/Vitaliy-tsuper/hatafinance.github.io/pkg/web"
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Create(ctx context.Context, owner string, input transactionservice.CreateInput) (domain.Transaction, error)
	List(ctx context.Context, owner, query string, key ledger.SortKey, descending bool) (transactionservice.ListResult, error)
	Delete(ctx context.Context, id int64, owner string) error
	SpendingReport(ctx context.Context, owner string) (transactionservice.Report, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) *Handler {
	return &Handler{service: ts}
}

type data struct {
	Transaction domain.Transaction `json:"transaction"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

type createRequest struct {
	Date        string `json:"date" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Category    string `json:"category" binding:"required,category"`
	Description string `json:"description" binding:"required,min=3,max=100"`
}

// Create handles http request to create a transaction.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
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

	input := transactionservice.CreateInput{
		Date:        req.Date,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
	}

	created, err := h.service.Create(ctx, authPayload.Email, input)
	if err != nil {
		switch err {
		case domain.ErrInvalidAmount, domain.ErrInvalidDate,
			domain.ErrCategoryNotSupported, domain.ErrDescriptionLength:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrUserNotFound:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{created},
	}

	gctx.JSON(http.StatusOK, res)
}

type listRequest struct {
	SortBy string `form:"sort_by" binding:"omitempty,oneof=date amount category description"`
	Order  string `form:"order" binding:"omitempty,oneof=asc desc"`
	Search string `form:"search"`
}

type dataTransactions struct {
	Transactions []domain.Transaction `json:"transactions"`
	Balance      decimal.Decimal      `json:"balance"`
	Income       decimal.Decimal      `json:"income"`
	Expenses     decimal.Decimal      `json:"expenses"`
}
type responseTransactions struct {
	Data dataTransactions `json:"data,omitempty"`
}

// List handles http request to list the caller's transactions with the
// derived balance. Sorting and free-text search are optional.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
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

	descending := req.Order != "asc"

	result, err := h.service.List(ctx, authPayload.Email, req.Search, ledger.SortKey(req.SortBy), descending)
	if err != nil {
		if err == domain.ErrStoreUnavailable {
			gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := responseTransactions{
		Data: dataTransactions{
			Transactions: result.Transactions,
			Balance:      result.Balance,
			Income:       result.Income,
			Expenses:     result.Expenses,
		},
	}

	gctx.JSON(http.StatusOK, res)
}

type deleteRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Delete handles http request to delete the caller's transaction.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req deleteRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	if err := h.service.Delete(ctx, req.ID, authPayload.Email); err != nil {
		switch err {
		case domain.ErrTransactionNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case domain.ErrTransactionOwnerMismatch:
			gctx.JSON(http.StatusForbidden, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, gin.H{})
}

type dataReport struct {
	Categories []ledger.CategoryTotal `json:"categories"`
	Total      decimal.Decimal        `json:"total"`
}
type responseReport struct {
	Data dataReport `json:"data,omitempty"`
}

// SpendingReport handles http request for the expense-by-category report.
func (h *Handler) SpendingReport(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	report, err := h.service.SpendingReport(ctx, authPayload.Email)
	if err != nil {
		if err == domain.ErrStoreUnavailable {
			gctx.JSON(http.StatusServiceUnavailable, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := responseReport{
		Data: dataReport{
			Categories: report.Categories,
			Total:      report.Total,
		},
	}

	gctx.JSON(http.StatusOK, res)
}
