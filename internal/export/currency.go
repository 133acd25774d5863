package export

import (
	"math"
	"strconv"
)

// FormatINR renders an amount the way the invoice shows money: rupee
// sign, Indian digit grouping (last three digits, then pairs), no
// fractional part.
func FormatINR(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}

	digits := strconv.FormatInt(int64(math.Round(math.Abs(amount))), 10)
	if len(digits) <= 3 {
		return sign + "₹" + digits
	}

	head := digits[:len(digits)-3]
	out := "," + digits[len(digits)-3:]
	for len(head) > 2 {
		out = "," + head[len(head)-2:] + out
		head = head[:len(head)-2]
	}
	return sign + "₹" + head + out
}

// FormatBV renders a bonus value without a currency sign, dropping
// any trailing zero fraction.
func FormatBV(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
