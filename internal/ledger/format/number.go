package format

import (
	"strconv"
	"time"
)

const prefix = "INV-"

// InvoiceNumber derives an invoice number from the issue instant:
// the prefix plus the last 8 digits of the unix millisecond timestamp.
//
// This function is PURE:
// - No side effects
// - Fully deterministic for a given instant
//
// Two instants inside the same millisecond produce the same number, so
// callers must check the ledger and re-derive from a later instant on
// collision.
func InvoiceNumber(t time.Time) string {
	ms := strconv.FormatInt(t.UnixMilli(), 10)
	if len(ms) > 8 {
		ms = ms[len(ms)-8:]
	}
	return prefix + ms
}
