package transaction

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"memberpay/internal/api"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Balance(ctx context.Context, email string) (int64, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockService) TopUp(ctx context.Context, email string, amount int64) (int64, error) {
	args := m.Called(ctx, email, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockService) Purchase(ctx context.Context, email, serviceCode string) (*PurchaseReceipt, error) {
	args := m.Called(ctx, email, serviceCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PurchaseReceipt), args.Error(1)
}

func (m *MockService) History(ctx context.Context, email string, offset, limit int) (*HistoryData, error) {
	args := m.Called(ctx, email, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*HistoryData), args.Error(1)
}

func setupTransactionRouter(svc Service, email string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewHandler(svc, nil)
	group := router.Group("/")
	if email != "" {
		group.Use(func(c *gin.Context) {
			c.Set("member_email", email)
			c.Next()
		})
	}
	group.GET("/balance", h.Balance)
	group.POST("/topup", h.TopUp)
	group.POST("/transaction", h.Purchase)
	group.GET("/transaction/history", h.History)

	return router
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) api.Response {
	var resp api.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBalanceHandler(t *testing.T) {
	svc := new(MockService)
	svc.On("Balance", mock.Anything, "a@x.com").Return(int64(60000), nil)

	router := setupTransactionRouter(svc, "a@x.com")
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/balance", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, api.CodeSuccess, resp.Status)
	assert.Equal(t, "Success", resp.Message)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(60000), data["balance"])
	svc.AssertExpectations(t)
}

func TestBalanceHandler_MissingEmailIsUnauthorized(t *testing.T) {
	svc := new(MockService)

	router := setupTransactionRouter(svc, "")
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/balance", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, api.CodeBadToken, resp.Status)
	svc.AssertNotCalled(t, "Balance", mock.Anything, mock.Anything)
}

func TestTopUpHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(*MockService)
		wantHTTP   int
		wantStatus int
		wantMsg    string
	}{
		{
			name: "valid amount",
			body: `{"top_up_amount": 100000}`,
			setupMock: func(m *MockService) {
				m.On("TopUp", mock.Anything, "a@x.com", int64(100000)).Return(int64(100000), nil)
			},
			wantHTTP:   http.StatusOK,
			wantStatus: api.CodeSuccess,
			wantMsg:    "Success",
		},
		{
			name: "zero is accepted",
			body: `{"top_up_amount": 0}`,
			setupMock: func(m *MockService) {
				m.On("TopUp", mock.Anything, "a@x.com", int64(0)).Return(int64(60000), nil)
			},
			wantHTTP:   http.StatusOK,
			wantStatus: api.CodeSuccess,
			wantMsg:    "Success",
		},
		{
			name:       "negative amount",
			body:       `{"top_up_amount": -1}`,
			setupMock:  func(m *MockService) {},
			wantHTTP:   http.StatusBadRequest,
			wantStatus: api.CodeFailure,
			wantMsg:    "Parameter top_up_amount must be a number greater than or equal to 0",
		},
		{
			name:       "missing amount",
			body:       `{}`,
			setupMock:  func(m *MockService) {},
			wantHTTP:   http.StatusBadRequest,
			wantStatus: api.CodeFailure,
			wantMsg:    "Parameter top_up_amount must be a number greater than or equal to 0",
		},
		{
			name:       "string amount",
			body:       `{"top_up_amount": "lots"}`,
			setupMock:  func(m *MockService) {},
			wantHTTP:   http.StatusBadRequest,
			wantStatus: api.CodeFailure,
			wantMsg:    "Parameter top_up_amount must be a number greater than or equal to 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			router := setupTransactionRouter(svc, "a@x.com")
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/topup", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantHTTP, w.Code)
			resp := decodeEnvelope(t, w)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, tt.wantMsg, resp.Message)
			svc.AssertExpectations(t)
		})
	}
}

type recordingMailer struct {
	ctx     context.Context
	subject string
}

func (m *recordingMailer) Send(ctx context.Context, to, name, subject, body string) error {
	m.ctx = ctx
	m.subject = subject
	return nil
}

func TestTopUpHandler_ReceiptSurvivesClientDisconnect(t *testing.T) {
	svc := new(MockService)
	svc.On("TopUp", mock.Anything, "a@x.com", int64(100000)).Return(int64(100000), nil)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	mailer := &recordingMailer{}
	h := NewHandler(svc, mailer)
	router.POST("/topup", func(c *gin.Context) {
		c.Set("member_email", "a@x.com")
		h.TopUp(c)
	})

	// The client goes away before the handler finishes.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/topup", bytes.NewBufferString(`{"top_up_amount": 100000}`))
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mailer.ctx, "receipt must still be queued")
	assert.NoError(t, mailer.ctx.Err(), "enqueue context must not carry the request cancellation")
	assert.Equal(t, "Top up confirmation", mailer.subject)
}

func TestPurchaseHandler(t *testing.T) {
	createdOn := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		body       string
		setupMock  func(*MockService)
		wantHTTP   int
		wantStatus int
		wantMsg    string
	}{
		{
			name: "successful payment",
			body: `{"service_code": "PLN"}`,
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, "a@x.com", "PLN").Return(&PurchaseReceipt{
					InvoiceNumber:   "INV20260901-002",
					ServiceCode:     "PLN",
					ServiceName:     "Listrik",
					TransactionType: TypePayment,
					TotalAmount:     40000,
					CreatedOn:       createdOn,
				}, nil)
			},
			wantHTTP:   http.StatusOK,
			wantStatus: api.CodeSuccess,
			wantMsg:    "Success",
		},
		{
			name: "unknown service",
			body: `{"service_code": "UNKNOWN"}`,
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, "a@x.com", "UNKNOWN").Return(nil, ErrServiceNotFound)
			},
			wantHTTP:   http.StatusBadRequest,
			wantStatus: api.CodeFailure,
			wantMsg:    "Service not found",
		},
		{
			name: "insufficient balance",
			body: `{"service_code": "PLN"}`,
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, "a@x.com", "PLN").Return(nil, ErrInsufficientFunds)
			},
			wantHTTP:   http.StatusBadRequest,
			wantStatus: api.CodeFailure,
			wantMsg:    "Insufficient balance",
		},
		{
			name:       "missing service code",
			body:       `{}`,
			setupMock:  func(m *MockService) {},
			wantHTTP:   http.StatusBadRequest,
			wantStatus: api.CodeFailure,
			wantMsg:    "Parameter service_code is required",
		},
		{
			name: "storage failure",
			body: `{"service_code": "PLN"}`,
			setupMock: func(m *MockService) {
				m.On("Purchase", mock.Anything, "a@x.com", "PLN").Return(nil, ErrOperationFailed)
			},
			wantHTTP:   http.StatusInternalServerError,
			wantStatus: api.CodeFailure,
			wantMsg:    "Transaction failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			router := setupTransactionRouter(svc, "a@x.com")
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/transaction", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantHTTP, w.Code)
			resp := decodeEnvelope(t, w)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, tt.wantMsg, resp.Message)
			svc.AssertExpectations(t)
		})
	}
}

func TestPurchaseHandler_ReceiptFields(t *testing.T) {
	svc := new(MockService)
	svc.On("Purchase", mock.Anything, "a@x.com", "PLN").Return(&PurchaseReceipt{
		InvoiceNumber:   "INV20260901-002",
		ServiceCode:     "PLN",
		ServiceName:     "Listrik",
		TransactionType: TypePayment,
		TotalAmount:     40000,
		CreatedOn:       time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}, nil)

	router := setupTransactionRouter(svc, "a@x.com")
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/transaction", bytes.NewBufferString(`{"service_code": "PLN"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	resp := decodeEnvelope(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "INV20260901-002", data["invoice_number"])
	assert.Equal(t, "PLN", data["service_code"])
	assert.Equal(t, "Listrik", data["service_name"])
	assert.Equal(t, "PAYMENT", data["transaction_type"])
	assert.Equal(t, float64(40000), data["total_amount"])
}

func TestHistoryHandler_QueryParsing(t *testing.T) {
	tests := []struct {
		name                  string
		query                 string
		wantOffset, wantLimit int
	}{
		{"no params use defaults", "", 0, 5},
		{"explicit params", "?offset=3&limit=10", 3, 10},
		{"non-numeric offset falls back", "?offset=abc&limit=10", 0, 10},
		{"non-numeric limit falls back", "?offset=3&limit=all", 3, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("History", mock.Anything, "a@x.com", tt.wantOffset, tt.wantLimit).
				Return(&HistoryData{Offset: tt.wantOffset, Limit: tt.wantLimit, Records: []HistoryRecord{}}, nil)

			router := setupTransactionRouter(svc, "a@x.com")
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/transaction/history"+tt.query, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			resp := decodeEnvelope(t, w)
			assert.Equal(t, api.CodeSuccess, resp.Status)
			svc.AssertExpectations(t)
		})
	}
}

func TestHistoryHandler_EmptyHistoryIsSuccess(t *testing.T) {
	svc := new(MockService)
	svc.On("History", mock.Anything, "a@x.com", 0, 5).
		Return(&HistoryData{Offset: 0, Limit: 5, Records: []HistoryRecord{}}, nil)

	router := setupTransactionRouter(svc, "a@x.com")
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/transaction/history", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	data := resp.Data.(map[string]interface{})
	records, ok := data["records"].([]interface{})
	require.True(t, ok, "records must be a JSON array, not null")
	assert.Empty(t, records)
}
