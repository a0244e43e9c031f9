package transaction

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"memberpay/internal/api"
	"memberpay/internal/auth"
	"memberpay/internal/logger"
	"memberpay/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Mailer queues receipt emails; delivery is best-effort and never blocks the
// transaction response.
type Mailer interface {
	Send(ctx context.Context, to, name, subject, body string) error
}

type Handler struct {
	svc    Service
	mailer Mailer
}

func NewHandler(svc Service, mailer Mailer) *Handler {
	return &Handler{svc: svc, mailer: mailer}
}

// Balance godoc
// @Summary      Get current balance
// @Tags         transaction
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  api.Response{data=BalanceData}
// @Failure      401  {object}  api.Response
// @Router       /balance [get]
func (h *Handler) Balance(c *gin.Context) {
	email, ok := auth.GetEmail(c)
	if !ok {
		api.Error(c, http.StatusUnauthorized, api.CodeBadToken, "Token is invalid or expired")
		return
	}

	balance, err := h.svc.Balance(c.Request.Context(), email)
	if err != nil {
		api.Error(c, http.StatusInternalServerError, api.CodeFailure, "Failed to get balance")
		return
	}

	api.OK(c, "Success", BalanceData{Balance: balance})
}

// TopUp godoc
// @Summary      Top up balance
// @Tags         transaction
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      TopUpRequest  true  "Top up amount"
// @Success      200      {object}  api.Response{data=BalanceData}
// @Failure      400      {object}  api.Response
// @Failure      401      {object}  api.Response
// @Router       /topup [post]
func (h *Handler) TopUp(c *gin.Context) {
	email, ok := auth.GetEmail(c)
	if !ok {
		api.Error(c, http.StatusUnauthorized, api.CodeBadToken, "Token is invalid or expired")
		return
	}

	var req TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, api.CodeFailure,
			"Parameter top_up_amount must be a number greater than or equal to 0")
		return
	}

	balance, err := h.svc.TopUp(c.Request.Context(), email, *req.TopUpAmount)
	if err != nil {
		api.Error(c, http.StatusInternalServerError, api.CodeFailure, "Top up failed")
		return
	}

	h.queueReceipt(c, "topup", email, "Top up confirmation",
		fmt.Sprintf("Your balance was topped up by %d. Current balance: %d.", *req.TopUpAmount, balance))

	api.OK(c, "Success", BalanceData{Balance: balance})
}

// Purchase godoc
// @Summary      Pay for a service
// @Tags         transaction
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      PurchaseRequest  true  "Service to purchase"
// @Success      200      {object}  api.Response{data=PurchaseReceipt}
// @Failure      400      {object}  api.Response
// @Failure      401      {object}  api.Response
// @Router       /transaction [post]
func (h *Handler) Purchase(c *gin.Context) {
	email, ok := auth.GetEmail(c)
	if !ok {
		api.Error(c, http.StatusUnauthorized, api.CodeBadToken, "Token is invalid or expired")
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, api.CodeFailure, "Parameter service_code is required")
		return
	}

	receipt, err := h.svc.Purchase(c.Request.Context(), email, req.ServiceCode)
	switch {
	case errors.Is(err, ErrServiceNotFound):
		api.Error(c, http.StatusBadRequest, api.CodeFailure, "Service not found")
		return
	case errors.Is(err, ErrInsufficientFunds):
		api.Error(c, http.StatusBadRequest, api.CodeFailure, "Insufficient balance")
		return
	case err != nil:
		api.Error(c, http.StatusInternalServerError, api.CodeFailure, "Transaction failed")
		return
	}

	h.queueReceipt(c, "purchase", email, "Payment receipt "+receipt.InvoiceNumber,
		fmt.Sprintf("Payment of %d for %s. Invoice %s.",
			receipt.TotalAmount, receipt.ServiceName, receipt.InvoiceNumber))

	api.OK(c, "Success", receipt)
}

// History godoc
// @Summary      Paginated transaction history
// @Tags         transaction
// @Security     BearerAuth
// @Produce      json
// @Param        offset  query     int  false  "Records to skip"     default(0)
// @Param        limit   query     int  false  "Records to return"   default(5)
// @Success      200     {object}  api.Response{data=HistoryData}
// @Failure      401     {object}  api.Response
// @Router       /transaction/history [get]
func (h *Handler) History(c *gin.Context) {
	email, ok := auth.GetEmail(c)
	if !ok {
		api.Error(c, http.StatusUnauthorized, api.CodeBadToken, "Token is invalid or expired")
		return
	}

	// Non-numeric values fall back to the defaults, same as absent ones.
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		offset = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultHistoryLimit)))
	if err != nil {
		limit = defaultHistoryLimit
	}

	history, err := h.svc.History(c.Request.Context(), email, offset, limit)
	if err != nil {
		api.Error(c, http.StatusInternalServerError, api.CodeFailure, "Failed to get transaction history")
		return
	}

	api.OK(c, "Success", history)
}

func (h *Handler) queueReceipt(c *gin.Context, receiptType, email, subject, body string) {
	if h.mailer == nil {
		return
	}
	// The transaction is already committed; a client disconnect must not
	// cancel the enqueue.
	ctx := context.WithoutCancel(c.Request.Context())
	if err := h.mailer.Send(ctx, email, email, subject, body); err != nil {
		logger.Errorf("queue %s receipt for %s: %v", receiptType, email, err)
		metrics.RecordReceipt(receiptType, "failed")
		return
	}
	metrics.RecordReceipt(receiptType, "queued")
}
