package transaction

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var invoicePattern = regexp.MustCompile(`^INV\d{8}-\d{3,}$`)

func TestNextInvoiceNumber_FirstOfDay(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

	got := nextInvoiceNumber("", now)

	assert.Equal(t, "INV20260901-001", got)
	assert.Regexp(t, invoicePattern, got)
}

func TestNextInvoiceNumber_Increments(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

	last := ""
	for seq := 1; seq <= 12; seq++ {
		got := nextInvoiceNumber(last, now)
		require.Equal(t, fmt.Sprintf("INV20260901-%03d", seq), got)
		last = got
	}
}

func TestNextInvoiceNumber_StrictlyIncreasing(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	// Issue order must agree with the order the day-max query uses: longer
	// suffix first, then string order. Walk across the 999 boundary, where
	// plain string order would go backwards.
	laterInIssueOrder := func(a, b string) bool {
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a > b
	}

	prev := nextInvoiceNumber("", now)
	for i := 0; i < 50; i++ {
		next := nextInvoiceNumber(prev, now)
		require.True(t, laterInIssueOrder(next, prev), "%s must follow %s", next, prev)
		prev = next
	}

	prev = "INV20260901-995"
	for i := 0; i < 10; i++ {
		next := nextInvoiceNumber(prev, now)
		require.True(t, laterInIssueOrder(next, prev), "%s must follow %s", next, prev)
		prev = next
	}
	require.Equal(t, "INV20260901-1005", prev)
}

func TestNextInvoiceNumber_WidensPast999(t *testing.T) {
	now := time.Date(2026, 9, 1, 23, 59, 0, 0, time.UTC)

	got := nextInvoiceNumber("INV20260901-999", now)
	assert.Equal(t, "INV20260901-1000", got)

	got = nextInvoiceNumber(got, now)
	assert.Equal(t, "INV20260901-1001", got)

	// Once widened, the shorter suffixes must never be re-derived: the whole
	// suffix is parsed, not the last three runes.
	got = nextInvoiceNumber("INV20260901-9999", now)
	assert.Equal(t, "INV20260901-10000", got)
}

func TestNextInvoiceNumber_NewDayResets(t *testing.T) {
	nextDay := time.Date(2026, 9, 2, 0, 0, 1, 0, time.UTC)

	// The caller only ever passes invoices matching the current day prefix;
	// an empty last means the new day has no invoices yet.
	got := nextInvoiceNumber("", nextDay)
	assert.Equal(t, "INV20260902-001", got)
}

func TestInvoiceDayPrefix(t *testing.T) {
	assert.Equal(t, "INV20261231", invoiceDayPrefix(time.Date(2026, 12, 31, 5, 0, 0, 0, time.UTC)))
}
