// Package transactiondelivery manages delivery layer of transactions.
package transactiondelivery

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/finledger/finledger/internal/domain"
	"github.com/finledger/finledger/internal/middleware"
	"github.com/finledger/finledger/pkg/errorspkg"
	"github.com/finledger/finledger/pkg/tokenpkg"
	"github.com/finledger/finledger/pkg/web"
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Record(ctx context.Context, owner string, arg domain.RecordTransactionParams) (domain.TransactionTxResult, error)
	List(ctx context.Context, owner string, arg domain.ListTransactionsParams) ([]domain.TransactionWithAccount, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) Handler {
	return Handler{service: ts}
}

type createRequest struct {
	AccountID   int32  `json:"accountId" binding:"required,min=1"`
	Type        string `json:"type" binding:"required,oneof=deposit withdrawal"`
	Amount      string `json:"amount" binding:"required,amount"`
	Description string `json:"description"`
}

// Create handles http request to record a deposit or withdrawal.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.ValidationErrorMsg(err)})

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	arg := domain.RecordTransactionParams{
		AccountID:   req.AccountID,
		Type:        domain.TransactionType(req.Type),
		Amount:      req.Amount,
		Description: req.Description,
	}

	result, err := h.service.Record(ctx, authPayload.Username, arg)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case
			domain.ErrInvalidAmount,
			domain.ErrNonPositiveAmount,
			domain.ErrInvalidTransactionType:
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusCreated, result.Transaction)
}

type listRequest struct {
	// Pointer so an explicit accountId=0 fails validation instead of
	// binding to the zero value and reading as "no filter".
	AccountID *int32    `form:"accountId" binding:"omitempty,min=1"`
	StartDate time.Time `form:"startDate" time_format:"2006-01-02T15:04:05Z07:00"`
	EndDate   time.Time `form:"endDate" time_format:"2006-01-02T15:04:05Z07:00"`
}

// List handles http request to list the caller's transactions with optional
// account and date range filters.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.ValidationErrorMsg(err)})

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	arg := domain.ListTransactionsParams{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if req.AccountID != nil {
		arg.AccountID = *req.AccountID
	}

	transactions, err := h.service.List(ctx, authPayload.Username, arg)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, transactions)
}
