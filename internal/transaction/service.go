package transaction

import (
	"context"
	"errors"

	"memberpay/internal/catalog"
	"memberpay/internal/logger"
	"memberpay/internal/metrics"
)

const topUpDescription = "Top Up Balance"

const (
	defaultHistoryLimit = 5
	maxHistoryLimit     = 100
)

var (
	ErrServiceNotFound = errors.New("service not found")

	// ErrOperationFailed replaces any storage failure at the engine boundary;
	// the underlying error is logged, never surfaced to the caller.
	ErrOperationFailed = errors.New("operation failed")
)

type Service interface {
	Balance(ctx context.Context, email string) (int64, error)
	TopUp(ctx context.Context, email string, amount int64) (int64, error)
	Purchase(ctx context.Context, email, serviceCode string) (*PurchaseReceipt, error)
	History(ctx context.Context, email string, offset, limit int) (*HistoryData, error)
}

type service struct {
	ledger      Store
	catalogRepo catalog.Repository
}

func NewService(ledger Store, catalogRepo catalog.Repository) Service {
	return &service{
		ledger:      ledger,
		catalogRepo: catalogRepo,
	}
}

func (s *service) Balance(ctx context.Context, email string) (int64, error) {
	balance, err := s.ledger.LatestBalance(ctx, email)
	if err != nil {
		logger.Errorf("balance lookup for %s: %v", email, err)
		return 0, ErrOperationFailed
	}
	return balance, nil
}

func (s *service) TopUp(ctx context.Context, email string, amount int64) (int64, error) {
	entry, err := s.ledger.Append(ctx, AppendParams{
		Email:       email,
		Type:        TypeTopUp,
		Description: topUpDescription,
		Amount:      amount,
	})
	if err != nil {
		logger.Errorf("top up for %s: %v", email, err)
		return 0, ErrOperationFailed
	}

	metrics.RecordTopUp(amount)
	return entry.CurrentBalance, nil
}

func (s *service) Purchase(ctx context.Context, email, serviceCode string) (*PurchaseReceipt, error) {
	svc, err := s.catalogRepo.FindByCode(ctx, serviceCode)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) {
			metrics.RecordPayment("service_not_found")
			return nil, ErrServiceNotFound
		}
		logger.Errorf("service lookup %s: %v", serviceCode, err)
		return nil, ErrOperationFailed
	}

	code := svc.ServiceCode
	entry, err := s.ledger.Append(ctx, AppendParams{
		Email:       email,
		Type:        TypePayment,
		ServiceCode: &code,
		Description: svc.ServiceName,
		Amount:      svc.ServiceTarif,
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientFunds) {
			metrics.RecordPayment("insufficient_funds")
			return nil, ErrInsufficientFunds
		}
		logger.Errorf("purchase %s for %s: %v", serviceCode, email, err)
		metrics.RecordPayment("error")
		return nil, ErrOperationFailed
	}

	metrics.RecordPayment("success")

	receipt := &PurchaseReceipt{
		InvoiceNumber:   entry.InvoiceNumber,
		TransactionType: entry.TransactionType,
		ServiceName:     entry.Description,
		TotalAmount:     entry.TotalAmount,
		CreatedOn:       entry.CreatedOn,
	}
	if entry.ServiceCode != nil {
		receipt.ServiceCode = *entry.ServiceCode
	}
	return receipt, nil
}

func (s *service) History(ctx context.Context, email string, offset, limit int) (*HistoryData, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	entries, err := s.ledger.History(ctx, email, limit, offset)
	if err != nil {
		logger.Errorf("history for %s: %v", email, err)
		return nil, ErrOperationFailed
	}

	records := make([]HistoryRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, HistoryRecord{
			InvoiceNumber:   entry.InvoiceNumber,
			TransactionType: entry.TransactionType,
			Description:     entry.Description,
			TotalAmount:     entry.TotalAmount,
			CreatedOn:       entry.CreatedOn,
		})
	}

	return &HistoryData{
		Offset:  offset,
		Limit:   limit,
		Records: records,
	}, nil
}
