package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/diewo77/go-quotations/internal/errors"
)

// DateLayout is the layout used for the default issue and validity dates.
const DateLayout = "2006-01-02"

const (
	DefaultRowCount     = 10
	DefaultValidityDays = 7
	DefaultDiscount     = "0.00"
	DefaultTaxRate      = "0.00"
)

// DefaultTerms is the boilerplate printed under TERMS AND CONDITIONS.
const DefaultTerms = "1. The prices in this quotation are valid for the period mentioned above.\n" +
	"2. 50% advance payment is required to commence the work.\n" +
	"3. You should pay the remaining amount of the bill upon completion of the work.\n" +
	"4. Any modifications to the design after approval may incur additional charges.\n" +
	"5. Delivery timeline will be confirmed upon receipt of advance payment."

// Field names accepted by SetField.
const (
	FieldIssueDate       = "issue_date"
	FieldValidUntil      = "valid_until"
	FieldQuoteNumber     = "quote_number"
	FieldCustomerID      = "customer_id"
	FieldCustomerName    = "customer_name"
	FieldCustomerPhone   = "customer_phone"
	FieldCustomerAddress = "customer_address"
	FieldDiscount        = "discount"
	FieldTaxRate         = "tax_rate"
	FieldTerms           = "terms"
)

// Fields lists the SetField names in form order.
var Fields = []string{
	FieldIssueDate, FieldValidUntil, FieldQuoteNumber, FieldCustomerID,
	FieldCustomerName, FieldCustomerPhone, FieldCustomerAddress,
	FieldDiscount, FieldTaxRate, FieldTerms,
}

// Defaults controls how a form is initialised and cleared.
type Defaults struct {
	Rows         int
	ValidityDays int
	Terms        string
}

// DefaultSettings returns the stock defaults: 10 rows, 7 days, boilerplate terms.
func DefaultSettings() Defaults {
	return Defaults{
		Rows:         DefaultRowCount,
		ValidityDays: DefaultValidityDays,
		Terms:        DefaultTerms,
	}
}

// QuotationForm is the in-memory model behind one quotation session.
// Dates and numeric inputs are free text; Subtotal and Total are derived
// by RecomputeTotals.
type QuotationForm struct {
	IssueDate       string          `json:"issue_date"`
	ValidUntil      string          `json:"valid_until"`
	QuoteNumber     string          `json:"quote_number"`
	CustomerID      string          `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	CustomerAddress string          `json:"customer_address"`
	Items           []LineItem      `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Discount        string          `json:"discount"`
	TaxRate         string          `json:"tax_rate"`
	Total           decimal.Decimal `json:"total"`
	Terms           string          `json:"terms"`
	LogoPath        string          `json:"logo_path,omitempty"`

	defaults Defaults
}

// NewQuotationForm creates a form dated now with d.Rows blank rows.
func NewQuotationForm(now time.Time, d Defaults) *QuotationForm {
	if d.Rows < 1 {
		d.Rows = 1
	}
	f := &QuotationForm{defaults: d}
	f.resetScalars(now)
	for i := 0; i < d.Rows; i++ {
		f.AddItem()
	}
	return f
}

func (f *QuotationForm) resetScalars(now time.Time) {
	f.IssueDate = now.Format(DateLayout)
	f.ValidUntil = now.AddDate(0, 0, f.defaults.ValidityDays).Format(DateLayout)
	f.QuoteNumber = ""
	f.CustomerID = ""
	f.CustomerName = ""
	f.CustomerPhone = ""
	f.CustomerAddress = ""
	f.Subtotal = decimal.Zero
	f.Discount = DefaultDiscount
	f.TaxRate = DefaultTaxRate
	f.Total = decimal.Zero
	f.Terms = f.defaults.Terms
}

// AddItem appends a blank row and returns it.
func (f *QuotationForm) AddItem() LineItem {
	item := NewLineItem(len(f.Items) + 1)
	f.Items = append(f.Items, item)
	return item
}

// RemoveLastItem drops the final row. The form always keeps one row; at
// that floor the call does nothing and returns false.
func (f *QuotationForm) RemoveLastItem() bool {
	if len(f.Items) <= 1 {
		return false
	}
	f.Items = f.Items[:len(f.Items)-1]
	for i := range f.Items {
		f.Items[i].Index = i + 1
	}
	return true
}

// Item returns the row at the 1-based position.
func (f *QuotationForm) Item(row int) (*LineItem, error) {
	if row < 1 || row > len(f.Items) {
		return nil, ierr.NewErrorf("row %d out of range", row).
			WithHintf("Row %d does not exist (1-%d)", row, len(f.Items)).
			Mark(ierr.ErrValidation)
	}
	return &f.Items[row-1], nil
}

// SetDescription updates the description of a row.
func (f *QuotationForm) SetDescription(row int, text string) error {
	item, err := f.Item(row)
	if err != nil {
		return err
	}
	item.Description = text
	return nil
}

// SetQuantity updates the quantity text of a row and recomputes its amount.
func (f *QuotationForm) SetQuantity(row int, text string) error {
	item, err := f.Item(row)
	if err != nil {
		return err
	}
	item.Quantity = text
	f.RecomputeRow(row)
	return nil
}

// SetUnitPrice updates the unit price text of a row and recomputes its amount.
func (f *QuotationForm) SetUnitPrice(row int, text string) error {
	item, err := f.Item(row)
	if err != nil {
		return err
	}
	item.UnitPrice = text
	f.RecomputeRow(row)
	return nil
}

// RecomputeRow refreshes the amount of one row. Parse failures are
// ignored: the last valid amount stays in place.
func (f *QuotationForm) RecomputeRow(row int) {
	if row < 1 || row > len(f.Items) {
		return
	}
	f.Items[row-1].Recompute()
}

// SetField assigns one of the scalar text fields by name.
func (f *QuotationForm) SetField(name, value string) error {
	switch name {
	case FieldIssueDate:
		f.IssueDate = value
	case FieldValidUntil:
		f.ValidUntil = value
	case FieldQuoteNumber:
		f.QuoteNumber = value
	case FieldCustomerID:
		f.CustomerID = value
	case FieldCustomerName:
		f.CustomerName = value
	case FieldCustomerPhone:
		f.CustomerPhone = value
	case FieldCustomerAddress:
		f.CustomerAddress = value
	case FieldDiscount:
		f.Discount = value
	case FieldTaxRate:
		f.TaxRate = value
	case FieldTerms:
		f.Terms = value
	default:
		return ierr.NewErrorf("unknown field %q", name).
			WithHintf("Unknown field %q", name).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// SetLogo records the logo file. Loading happens at preview and render time.
func (f *QuotationForm) SetLogo(path string) {
	f.LogoPath = strings.TrimSpace(path)
}

// RemoveLogo drops the logo; the document falls back to the text-only header.
func (f *QuotationForm) RemoveLogo() {
	f.LogoPath = ""
}

// HasLogo reports whether a logo reference is set.
func (f *QuotationForm) HasLogo() bool {
	return f.LogoPath != ""
}

// RecomputeTotals sums every row (blank descriptions included) into
// Subtotal, then applies discount and tax into Total. Unlike row
// recomputation, an unparseable discount or tax rate is reported; in that
// case Subtotal is already refreshed and Total keeps its previous value.
func (f *QuotationForm) RecomputeTotals() error {
	subtotal := decimal.Zero
	for _, item := range f.Items {
		subtotal = subtotal.Add(item.Amount)
	}
	f.Subtotal = subtotal

	summary, err := f.Summary()
	if err != nil {
		return err
	}
	f.Total = summary.Total
	return nil
}

// Summary derives the figures printed in the summary block from the
// current Subtotal, Discount and TaxRate.
func (f *QuotationForm) Summary() (Summary, error) {
	discount, err := ParseDecimal(f.Discount)
	if err != nil {
		return Summary{}, ierr.WithError(err).
			WithMessagef("parse discount %q", f.Discount).
			WithHintf("Error calculating total: invalid discount %q", f.Discount).
			Mark(ierr.ErrCalculation)
	}
	taxRate, err := ParseDecimal(f.TaxRate)
	if err != nil {
		return Summary{}, ierr.WithError(err).
			WithMessagef("parse tax rate %q", f.TaxRate).
			WithHintf("Error calculating total: invalid tax rate %q", f.TaxRate).
			Mark(ierr.ErrCalculation)
	}
	return NewSummary(f.Subtotal, discount, taxRate), nil
}

// Clear resets every scalar field to its default and every row to a blank
// row. The number of rows and the logo selection are kept.
func (f *QuotationForm) Clear(now time.Time) {
	f.resetScalars(now)
	for i := range f.Items {
		f.Items[i].reset()
	}
}

// Snapshot returns a copy that later edits to f do not affect.
func (f *QuotationForm) Snapshot() *QuotationForm {
	c := *f
	c.Items = make([]LineItem, len(f.Items))
	copy(c.Items, f.Items)
	return &c
}

// DescribedItems returns the rows that have a description, in order.
func (f *QuotationForm) DescribedItems() []LineItem {
	out := make([]LineItem, 0, len(f.Items))
	for _, item := range f.Items {
		if item.HasDescription() {
			out = append(out, item)
		}
	}
	return out
}
