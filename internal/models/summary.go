package models

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Summary holds the derived figures of a quotation.
type Summary struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Net       decimal.Decimal `json:"net"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Total     decimal.Decimal `json:"total"`
}

// NewSummary computes net = subtotal - discount, tax = net × rate/100 and
// total = net + tax. Negative inputs are not rejected.
func NewSummary(subtotal, discount, taxRate decimal.Decimal) Summary {
	net := subtotal.Sub(discount)
	tax := net.Mul(taxRate).Div(hundred)
	return Summary{
		Subtotal:  subtotal,
		Discount:  discount,
		Net:       net,
		TaxRate:   taxRate,
		TaxAmount: tax,
		Total:     net.Add(tax),
	}
}
