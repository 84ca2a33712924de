package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultQuantity  = "1"
	DefaultUnitPrice = "0.00"
)

// LineItem represents one row of the quotation.
// Quantity and UnitPrice hold the text as typed; Amount is derived from
// them and never set directly.
type LineItem struct {
	Index       int             `json:"index"`
	Description string          `json:"description"`
	Quantity    string          `json:"quantity"`
	UnitPrice   string          `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// NewLineItem returns a blank row at the given 1-based position.
func NewLineItem(index int) LineItem {
	return LineItem{
		Index:     index,
		Quantity:  DefaultQuantity,
		UnitPrice: DefaultUnitPrice,
		Amount:    decimal.Zero,
	}
}

// HasDescription reports whether the row is printed in the item table.
func (item *LineItem) HasDescription() bool {
	return strings.TrimSpace(item.Description) != ""
}

// Recompute sets Amount to quantity × unit price rounded to 2 places.
// When either text is not a number the previous Amount is kept and false
// is returned.
func (item *LineItem) Recompute() bool {
	qty, err := ParseDecimal(item.Quantity)
	if err != nil {
		return false
	}
	price, err := ParseDecimal(item.UnitPrice)
	if err != nil {
		return false
	}
	item.Amount = qty.Mul(price).Round(2)
	return true
}

// AmountText is the amount as displayed: exactly two fraction digits.
func (item *LineItem) AmountText() string {
	return item.Amount.StringFixed(2)
}

func (item *LineItem) reset() {
	item.Description = ""
	item.Quantity = DefaultQuantity
	item.UnitPrice = DefaultUnitPrice
	item.Amount = decimal.Zero
}

// ParseDecimal parses user-typed numeric text. Blank text counts as zero.
func ParseDecimal(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(text)
}
