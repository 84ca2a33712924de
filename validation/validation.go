package validation

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Violations maps a field name to a violation code ("required", ...).
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Fields returns the violating field names in a stable order.
func (v Violations) Fields() []string {
	out := make([]string, 0, len(v))
	for f := range v {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// Decimal flags value when it is neither blank nor a number.
func Decimal(field, value string, v Violations) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if _, err := decimal.NewFromString(value); err != nil {
		v[field] = "not_a_number"
	}
}
