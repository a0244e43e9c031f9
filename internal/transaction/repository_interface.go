package transaction

import "context"

// Store is the ledger capability consumed by the Service. Append must be
// atomic: either the entry is committed and visible to subsequent reads, or
// nothing is written.
type Store interface {
	// Append writes one ledger entry, deriving the invoice number and the new
	// running balance inside a single serialized transaction. It returns
	// ErrInsufficientFunds for a payment that would drive the balance
	// negative.
	Append(ctx context.Context, p AppendParams) (*LedgerEntry, error)

	// LatestBalance returns the current_balance of the most recent entry for
	// the email, or 0 when the account has no entries.
	LatestBalance(ctx context.Context, email string) (int64, error)

	// History lists entries for the email in reverse chronological order.
	History(ctx context.Context, email string, limit, offset int) ([]LedgerEntry, error)

	// NextInvoiceNumber previews the next invoice number for today without
	// reserving it. Reservation only happens inside Append.
	NextInvoiceNumber(ctx context.Context) (string, error)
}
