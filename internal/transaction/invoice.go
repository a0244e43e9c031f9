package transaction

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const invoiceDateLayout = "20060102"

// invoiceDayPrefix returns the shared prefix of every invoice issued on the
// given day, e.g. "INV20260901".
func invoiceDayPrefix(t time.Time) string {
	return "INV" + t.Format(invoiceDateLayout)
}

// nextInvoiceNumber derives the invoice number that follows last, where last
// is the highest invoice already stored for the day (empty when the day has
// none). The store finds it by ordering on suffix length before value, since
// a widened suffix sorts below a shorter one as a plain string. The sequence
// starts at 1 each day and is zero-padded to three digits; past 999 the
// suffix simply widens.
func nextInvoiceNumber(last string, now time.Time) string {
	seq := 1
	if last != "" {
		if i := strings.LastIndex(last, "-"); i >= 0 {
			if n, err := strconv.Atoi(last[i+1:]); err == nil {
				seq = n + 1
			}
		}
	}
	return fmt.Sprintf("%s-%03d", invoiceDayPrefix(now), seq)
}
