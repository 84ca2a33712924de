package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/diewo77/go-quotations/internal/errors"
)

var testNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

func newTestForm() *QuotationForm {
	return NewQuotationForm(testNow, DefaultSettings())
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewQuotationForm_Defaults(t *testing.T) {
	f := newTestForm()
	if f.IssueDate != "2026-10-17" {
		t.Errorf("IssueDate = %q", f.IssueDate)
	}
	if f.ValidUntil != "2026-10-24" {
		t.Errorf("ValidUntil = %q", f.ValidUntil)
	}
	if len(f.Items) != DefaultRowCount {
		t.Fatalf("rows = %d, want %d", len(f.Items), DefaultRowCount)
	}
	for i, item := range f.Items {
		if item.Index != i+1 || item.Quantity != "1" || item.UnitPrice != "0.00" || !item.Amount.IsZero() {
			t.Errorf("row %d not blank: %+v", i, item)
		}
	}
	if f.Discount != "0.00" || f.TaxRate != "0.00" {
		t.Errorf("discount/tax = %q/%q", f.Discount, f.TaxRate)
	}
	if f.Terms != DefaultTerms {
		t.Errorf("terms not defaulted")
	}
}

func TestNewQuotationForm_AtLeastOneRow(t *testing.T) {
	f := NewQuotationForm(testNow, Defaults{Rows: 0})
	if len(f.Items) != 1 {
		t.Fatalf("rows = %d, want 1", len(f.Items))
	}
}

func TestLineItem_Recompute(t *testing.T) {
	tests := []struct {
		name  string
		qty   string
		price string
		want  string
	}{
		{"integers", "2", "500.00", "1000.00"},
		{"fractional", "1.5", "19.99", "29.99"},
		{"rounds half up", "3", "0.335", "1.01"},
		{"blank quantity counts as zero", "", "10", "0.00"},
		{"negative", "-2", "4", "-8.00"},
		{"padded", " 4 ", " 2.5 ", "10.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := NewLineItem(1)
			item.Quantity, item.UnitPrice = tt.qty, tt.price
			if !item.Recompute() {
				t.Fatalf("Recompute() = false")
			}
			if got := item.AmountText(); got != tt.want {
				t.Errorf("AmountText() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRecomputeRow_KeepsLastValidAmount(t *testing.T) {
	f := newTestForm()
	if err := f.SetUnitPrice(1, "250"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetQuantity(1, "4"); err != nil {
		t.Fatal(err)
	}
	if got := f.Items[0].AmountText(); got != "1000.00" {
		t.Fatalf("amount = %s", got)
	}

	for _, bad := range []string{"4x", "abc", "1,5"} {
		if err := f.SetQuantity(1, bad); err != nil {
			t.Fatalf("SetQuantity(%q) reported %v", bad, err)
		}
		if got := f.Items[0].AmountText(); got != "1000.00" {
			t.Errorf("after %q amount = %s, want 1000.00", bad, got)
		}
	}
	if err := f.SetUnitPrice(1, "??"); err != nil {
		t.Fatal(err)
	}
	if got := f.Items[0].AmountText(); got != "1000.00" {
		t.Errorf("after bad price amount = %s", got)
	}
}

func TestSetQuantity_UnknownRow(t *testing.T) {
	f := newTestForm()
	err := f.SetQuantity(11, "1")
	if !ierr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRemoveLastItem(t *testing.T) {
	f := NewQuotationForm(testNow, Defaults{Rows: 3})
	if !f.RemoveLastItem() {
		t.Fatal("expected removal")
	}
	if !f.RemoveLastItem() {
		t.Fatal("expected removal")
	}
	if f.RemoveLastItem() {
		t.Fatal("removed the last remaining row")
	}
	if len(f.Items) != 1 || f.Items[0].Index != 1 {
		t.Fatalf("items = %+v", f.Items)
	}
}

func TestAddRemove_IndicesContiguous(t *testing.T) {
	f := NewQuotationForm(testNow, Defaults{Rows: 2})
	f.AddItem()
	f.AddItem()
	f.RemoveLastItem()
	f.AddItem()
	for i, item := range f.Items {
		if item.Index != i+1 {
			t.Errorf("item %d has index %d", i, item.Index)
		}
	}
	if len(f.Items) != 4 {
		t.Errorf("rows = %d, want 4", len(f.Items))
	}
}

func TestRecomputeTotals_IncludesBlankDescriptions(t *testing.T) {
	f := NewQuotationForm(testNow, Defaults{Rows: 2})
	_ = f.SetDescription(1, "Steel gate")
	_ = f.SetQuantity(1, "2")
	_ = f.SetUnitPrice(1, "500.00")
	_ = f.SetQuantity(2, "1")
	_ = f.SetUnitPrice(2, "999.00")

	if err := f.RecomputeTotals(); err != nil {
		t.Fatal(err)
	}
	if !f.Subtotal.Equal(dec("1999")) {
		t.Errorf("Subtotal = %s, want 1999", f.Subtotal)
	}
	if got := f.DescribedItems(); len(got) != 1 || got[0].Description != "Steel gate" {
		t.Errorf("DescribedItems() = %+v", got)
	}
}

func TestRecomputeTotals_DiscountAndTax(t *testing.T) {
	f := NewQuotationForm(testNow, Defaults{Rows: 1})
	_ = f.SetDescription(1, "Railing")
	_ = f.SetQuantity(1, "3")
	_ = f.SetUnitPrice(1, "1500.00")
	_ = f.SetField(FieldDiscount, "500")
	_ = f.SetField(FieldTaxRate, "10")

	if err := f.RecomputeTotals(); err != nil {
		t.Fatal(err)
	}
	s, err := f.Summary()
	if err != nil {
		t.Fatal(err)
	}
	checks := map[string]struct{ got, want decimal.Decimal }{
		"subtotal": {s.Subtotal, dec("4500")},
		"net":      {s.Net, dec("4000")},
		"tax":      {s.TaxAmount, dec("400")},
		"total":    {s.Total, dec("4400")},
	}
	for name, c := range checks {
		if !c.got.Equal(c.want) {
			t.Errorf("%s = %s, want %s", name, c.got, c.want)
		}
	}
	if !f.Total.Equal(dec("4400")) {
		t.Errorf("Total = %s", f.Total)
	}
}

func TestRecomputeTotals_NegativeInputsPropagate(t *testing.T) {
	f := NewQuotationForm(testNow, Defaults{Rows: 1})
	_ = f.SetUnitPrice(1, "100")
	_ = f.SetField(FieldDiscount, "-50")
	_ = f.SetField(FieldTaxRate, "-10")
	if err := f.RecomputeTotals(); err != nil {
		t.Fatal(err)
	}
	// net 150, tax -15
	if !f.Total.Equal(dec("135")) {
		t.Errorf("Total = %s, want 135", f.Total)
	}
}

func TestRecomputeTotals_ReportsBadDiscount(t *testing.T) {
	f := NewQuotationForm(testNow, Defaults{Rows: 1})
	_ = f.SetUnitPrice(1, "100")
	if err := f.RecomputeTotals(); err != nil {
		t.Fatal(err)
	}
	_ = f.SetUnitPrice(1, "200")
	_ = f.SetField(FieldDiscount, "ten")

	err := f.RecomputeTotals()
	if !ierr.IsCalculation(err) {
		t.Fatalf("expected calculation error, got %v", err)
	}
	if !f.Subtotal.Equal(dec("200")) {
		t.Errorf("Subtotal = %s, want refreshed 200", f.Subtotal)
	}
	if !f.Total.Equal(dec("100")) {
		t.Errorf("Total = %s, want previous 100", f.Total)
	}

	_ = f.SetField(FieldDiscount, "0")
	_ = f.SetField(FieldTaxRate, "5%")
	if err := f.RecomputeTotals(); !ierr.IsCalculation(err) {
		t.Fatalf("expected calculation error for tax, got %v", err)
	}
}

func TestClear(t *testing.T) {
	f := NewQuotationForm(testNow, Defaults{Rows: 3, ValidityDays: 7, Terms: "T"})
	f.AddItem()
	_ = f.SetField(FieldQuoteNumber, "Q-9")
	_ = f.SetField(FieldCustomerName, "Nimal")
	_ = f.SetField(FieldDiscount, "12")
	_ = f.SetField(FieldTerms, "changed")
	_ = f.SetField(FieldIssueDate, "yesterday")
	_ = f.SetDescription(2, "Gate")
	_ = f.SetQuantity(2, "5")
	_ = f.SetUnitPrice(2, "10")
	_ = f.RecomputeTotals()
	f.SetLogo("/tmp/logo.png")

	later := testNow.AddDate(0, 0, 1)
	f.Clear(later)

	if len(f.Items) != 4 {
		t.Fatalf("rows = %d, want 4", len(f.Items))
	}
	for _, item := range f.Items {
		if item.Description != "" || item.Quantity != "1" || item.UnitPrice != "0.00" || !item.Amount.IsZero() {
			t.Errorf("row not reset: %+v", item)
		}
	}
	if f.QuoteNumber != "" || f.CustomerName != "" || f.Discount != "0.00" || f.Terms != "T" {
		t.Errorf("scalars not reset: %+v", f)
	}
	if f.IssueDate != "2026-10-18" || f.ValidUntil != "2026-10-25" {
		t.Errorf("dates = %s / %s", f.IssueDate, f.ValidUntil)
	}
	if !f.Subtotal.IsZero() || !f.Total.IsZero() {
		t.Errorf("totals not reset")
	}
	if !f.HasLogo() {
		t.Errorf("logo selection should survive Clear")
	}
}

func TestSetField_Unknown(t *testing.T) {
	f := newTestForm()
	if err := f.SetField("colour", "red"); !ierr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSnapshot_IsIndependent(t *testing.T) {
	f := newTestForm()
	_ = f.SetDescription(1, "Gate")
	snap := f.Snapshot()
	_ = f.SetDescription(1, "Fence")
	f.AddItem()
	if snap.Items[0].Description != "Gate" || len(snap.Items) != DefaultRowCount {
		t.Errorf("snapshot changed: %+v", snap.Items[0])
	}
}

func TestParseDecimal(t *testing.T) {
	if d, err := ParseDecimal("  "); err != nil || !d.IsZero() {
		t.Errorf("blank: %s %v", d, err)
	}
	if _, err := ParseDecimal("1.2.3"); err == nil {
		t.Errorf("expected error")
	}
}
