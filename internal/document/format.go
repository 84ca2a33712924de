package document

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/diewo77/go-quotations/i18n"
)

// FormatAmount renders d with two decimals and grouped thousands,
// e.g. 4400 -> "4,400.00" for English.
func FormatAmount(d decimal.Decimal, nf i18n.NumberFormat) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i+1:]
	}

	var b strings.Builder
	if d.IsNegative() && !d.Round(2).IsZero() {
		b.WriteByte('-')
	}
	n := len(intPart)
	for i, c := range intPart {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteString(nf.Thousands)
		}
		b.WriteRune(c)
	}
	b.WriteString(nf.Decimal)
	b.WriteString(frac)
	return b.String()
}
