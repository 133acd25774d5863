package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "₹0", FormatINR(0))
	assert.Equal(t, "₹90", FormatINR(90))
	assert.Equal(t, "₹999", FormatINR(999))
	assert.Equal(t, "₹1,000", FormatINR(1000))
	assert.Equal(t, "₹12,345", FormatINR(12345))
	assert.Equal(t, "₹1,23,456", FormatINR(123456))
	assert.Equal(t, "₹12,34,567", FormatINR(1234567))
	assert.Equal(t, "₹1,00,00,000", FormatINR(10000000))
}

func TestFormatINRRoundsToWholeRupees(t *testing.T) {
	assert.Equal(t, "₹90", FormatINR(89.991))
	assert.Equal(t, "₹89", FormatINR(89.4))
	assert.Equal(t, "-₹1,250", FormatINR(-1250.2))
}

func TestFormatBV(t *testing.T) {
	assert.Equal(t, "4", FormatBV(4))
	assert.Equal(t, "4.5", FormatBV(4.5))
	assert.Equal(t, "0", FormatBV(0))
}
