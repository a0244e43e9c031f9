package transaction

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrInsufficientFunds = errors.New("insufficient balance")
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// A longer suffix always means a higher sequence number, so the day max is
// ordered by suffix length before value; plain string order would put
// "-1000" below "-999".
const selectLastInvoice = `
		SELECT invoice_number
		FROM transactions
		WHERE invoice_number LIKE $1
		ORDER BY length(invoice_number) DESC, invoice_number DESC
		LIMIT 1`

const selectLatestBalance = `
		SELECT current_balance
		FROM transactions
		WHERE email = $1
		ORDER BY created_on DESC, id DESC
		LIMIT 1`

// Append serializes the whole read-then-write sequence with two transaction
// scoped advisory locks: first the invoice day key, then the account email.
// The lock order is the same for every writer, so concurrent appends cannot
// deadlock, cannot allocate the same invoice number, and cannot lose a
// balance update.
func (r *Repository) Append(ctx context.Context, p AppendParams) (*LedgerEntry, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()
	dayPrefix := invoiceDayPrefix(now)

	if _, err := tx.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1))`, "invoice:"+dayPrefix); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1))`, "ledger:"+p.Email); err != nil {
		return nil, err
	}

	var lastInvoice string
	err = tx.GetContext(ctx, &lastInvoice, selectLastInvoice, dayPrefix+"%")
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	invoiceNumber := nextInvoiceNumber(lastInvoice, now)

	var priorBalance int64
	err = tx.GetContext(ctx, &priorBalance, selectLatestBalance, p.Email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		priorBalance = 0
	}

	var newBalance int64
	switch p.Type {
	case TypePayment:
		newBalance = priorBalance - p.Amount
		if newBalance < 0 {
			return nil, ErrInsufficientFunds
		}
	default:
		newBalance = priorBalance + p.Amount
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions
			(email, invoice_number, service_code, total_amount, transaction_type, description, current_balance)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.Email, invoiceNumber, p.ServiceCode, p.Amount, p.Type, p.Description, newBalance,
	)
	if err != nil {
		return nil, err
	}

	// Re-read the committed shape of the row rather than trusting what the
	// insert reported; created_on is assigned by the database.
	var entry LedgerEntry
	err = tx.GetContext(ctx, &entry,
		`SELECT id, email, invoice_number, service_code, transaction_type, description, total_amount, current_balance, created_on
		 FROM transactions
		 WHERE invoice_number = $1
		 LIMIT 1`,
		invoiceNumber,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (r *Repository) LatestBalance(ctx context.Context, email string) (int64, error) {
	var balance int64
	err := r.db.GetContext(ctx, &balance, selectLatestBalance, email)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (r *Repository) History(ctx context.Context, email string, limit, offset int) ([]LedgerEntry, error) {
	var entries []LedgerEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT id, email, invoice_number, service_code, transaction_type, description, total_amount, current_balance, created_on
		 FROM transactions
		 WHERE email = $1
		 ORDER BY created_on DESC, id DESC
		 LIMIT $2 OFFSET $3`,
		email, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []LedgerEntry{}
	}
	return entries, nil
}

func (r *Repository) NextInvoiceNumber(ctx context.Context) (string, error) {
	now := time.Now()
	var lastInvoice string
	err := r.db.GetContext(ctx, &lastInvoice, selectLastInvoice, invoiceDayPrefix(now)+"%")
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	return nextInvoiceNumber(lastInvoice, now), nil
}
