package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInvoiceNumber(t *testing.T) {
	// 2024-01-15T10:30:00Z = 1705314600000 ms
	at := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "INV-14600000", InvoiceNumber(at))

	// Deterministic within the same millisecond.
	assert.Equal(t, InvoiceNumber(at), InvoiceNumber(at))

	// A later millisecond yields a different number.
	assert.NotEqual(t, InvoiceNumber(at), InvoiceNumber(at.Add(time.Millisecond)))
}

func TestInvoiceNumberShortTimestamp(t *testing.T) {
	// Timestamps under 8 digits are kept whole.
	at := time.UnixMilli(1234567).UTC()
	assert.Equal(t, "INV-1234567", InvoiceNumber(at))
}
