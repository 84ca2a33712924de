// Package formfile seeds a quotation form from a YAML, JSON or TOML file,
// so a quotation can be generated without an interactive session.
//
//	quote_number: Q-001
//	customer_name: Nimal
//	tax_rate: 10
//	items:
//	  - description: Steel gate
//	    quantity: 2
//	    unit_price: 500.00
//
// Quoted values are used verbatim. Unquoted numbers are decoded by the
// file format, which drops trailing zeros, so prices, discount and tax
// rate written that way are printed back with two decimals.
package formfile

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	ierr "github.com/diewo77/go-quotations/internal/errors"
	"github.com/diewo77/go-quotations/internal/models"
)

// Item is one line item of the file, as text.
type Item struct {
	Description string
	Quantity    string
	UnitPrice   string
}

// File is a parsed form file. Fields holds only the keys present in
// the file, keyed by models.Field* names.
type File struct {
	Path   string
	Fields map[string]string
	Items  []Item
	Logo   string
}

// amountFields are printed with two decimals when written as bare numbers.
var amountFields = map[string]bool{
	models.FieldDiscount: true,
	models.FieldTaxRate:  true,
	"unit_price":         true,
}

func invalid(err error, path, hint string) error {
	return ierr.WithError(err).
		WithMessagef("form file %s", path).
		WithHint(hint).
		Mark(ierr.ErrValidation)
}

// Load parses path; the format follows its extension.
func Load(path string) (*File, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, ierr.WithError(err).
			WithMessagef("read form file %s", path).
			WithHintf("Could not read form file %s: %v", path, err).
			Mark(ierr.ErrValidation)
	}

	f := &File{Path: path, Fields: map[string]string{}}
	for _, name := range models.Fields {
		if v.IsSet(name) {
			f.Fields[name] = text(name, v.Get(name))
		}
	}
	if v.IsSet("logo") {
		f.Logo = v.GetString("logo")
	}

	items, err := decodeItems(v.Get("items"))
	if err != nil {
		return nil, invalid(err, path, "Invalid items in form file "+path)
	}
	f.Items = items
	return f, nil
}

func decodeItems(raw any) ([]Item, error) {
	var rows []map[string]any
	switch r := raw.(type) {
	case nil:
		return nil, nil
	case []map[string]any:
		rows = r
	case []any:
		for _, e := range r {
			m, err := cast.ToStringMapE(e)
			if err != nil {
				return nil, err
			}
			rows = append(rows, m)
		}
	default:
		return nil, ierr.NewErrorf("items is a %T, want a list", raw).Mark(ierr.ErrValidation)
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		var item Item
		for key, val := range row {
			key = strings.ToLower(key)
			switch key {
			case "description":
				item.Description = text(key, val)
			case "quantity":
				item.Quantity = text(key, val)
			case "unit_price":
				item.UnitPrice = text(key, val)
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// text renders a scalar the way the user would have typed it. Unquoted
// YAML and TOML dates arrive as time.Time.
func text(key string, val any) string {
	switch x := val.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		return x.Format(models.DateLayout)
	}
	if amountFields[key] {
		if n, err := cast.ToFloat64E(val); err == nil {
			return decimal.NewFromFloat(n).StringFixed(2)
		}
	}
	return cast.ToString(val)
}

// Apply copies the file onto form. Rows are added when the file lists
// more items than the form has; the remaining rows are left untouched.
func (f *File) Apply(form *models.QuotationForm) error {
	for _, name := range models.Fields {
		value, ok := f.Fields[name]
		if !ok {
			continue
		}
		if err := form.SetField(name, value); err != nil {
			return err
		}
	}
	if f.Logo != "" {
		form.SetLogo(f.Logo)
	}

	for len(form.Items) < len(f.Items) {
		form.AddItem()
	}
	for i, item := range f.Items {
		row := i + 1
		if err := form.SetDescription(row, item.Description); err != nil {
			return err
		}
		if item.Quantity != "" {
			if err := form.SetQuantity(row, item.Quantity); err != nil {
				return err
			}
		}
		if item.UnitPrice != "" {
			if err := form.SetUnitPrice(row, item.UnitPrice); err != nil {
				return err
			}
		}
	}
	return form.RecomputeTotals()
}
