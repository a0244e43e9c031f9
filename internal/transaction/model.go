package transaction

import "time"

const (
	TypeTopUp   = "TOPUP"
	TypePayment = "PAYMENT"
)

// LedgerEntry is one append-only row of the transactions table. CurrentBalance
// is the account balance after the entry is applied; the latest entry for an
// email therefore carries the account's current balance.
type LedgerEntry struct {
	ID              int64     `db:"id" json:"-"`
	Email           string    `db:"email" json:"email"`
	InvoiceNumber   string    `db:"invoice_number" json:"invoice_number"`
	ServiceCode     *string   `db:"service_code" json:"service_code,omitempty"`
	TransactionType string    `db:"transaction_type" json:"transaction_type"`
	Description     string    `db:"description" json:"description"`
	TotalAmount     int64     `db:"total_amount" json:"total_amount"`
	CurrentBalance  int64     `db:"current_balance" json:"current_balance"`
	CreatedOn       time.Time `db:"created_on" json:"created_on"`
}

// AppendParams describes one balance-affecting event to be written to the
// ledger. Amount is the positive magnitude; Type decides the sign.
type AppendParams struct {
	Email       string
	Type        string
	ServiceCode *string
	Description string
	Amount      int64
}

type TopUpRequest struct {
	TopUpAmount *int64 `json:"top_up_amount" binding:"required,gte=0"`
}

type PurchaseRequest struct {
	ServiceCode string `json:"service_code" binding:"required"`
}

type BalanceData struct {
	Balance int64 `json:"balance" example:"100000"`
}

type PurchaseReceipt struct {
	InvoiceNumber   string    `json:"invoice_number" example:"INV20260901-001"`
	ServiceCode     string    `json:"service_code" example:"PLN"`
	ServiceName     string    `json:"service_name" example:"Electricity"`
	TransactionType string    `json:"transaction_type" example:"PAYMENT"`
	TotalAmount     int64     `json:"total_amount" example:"40000"`
	CreatedOn       time.Time `json:"created_on"`
}

type HistoryRecord struct {
	InvoiceNumber   string    `json:"invoice_number"`
	TransactionType string    `json:"transaction_type"`
	Description     string    `json:"description"`
	TotalAmount     int64     `json:"total_amount"`
	CreatedOn       time.Time `json:"created_on"`
}

type HistoryData struct {
	Offset  int             `json:"offset"`
	Limit   int             `json:"limit"`
	Records []HistoryRecord `json:"records"`
}
