package document

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/diewo77/go-quotations/i18n"
	ierr "github.com/diewo77/go-quotations/internal/errors"
	"github.com/diewo77/go-quotations/internal/models"
	"github.com/diewo77/go-quotations/validation"
)

const (
	signatureLine = "_______________________"
	sectionGap    = 5.0
)

// Company identifies the issuer printed in the header.
type Company struct {
	Name         string
	Tagline      string
	AddressLines []string
	ContactLines []string
}

// Settings configures a Composer.
type Settings struct {
	Company  Company
	Language string
	Currency string
}

// Input is what a quotation is composed from. Logo is nil when no logo
// is set or it could not be loaded.
type Input struct {
	Form *models.QuotationForm
	Logo *Image
}

// Composer builds the block sequence of a quotation.
type Composer struct {
	settings Settings
	numbers  i18n.NumberFormat
}

func NewComposer(s Settings) *Composer {
	if !i18n.Supported(s.Language) {
		s.Language = i18n.DefaultLanguage
	}
	if s.Company.Tagline == "" {
		s.Company.Tagline = i18n.T(s.Language, "quotation")
	}
	return &Composer{settings: s, numbers: i18n.Numbers(s.Language)}
}

func (c *Composer) t(code string) string {
	return i18n.T(c.settings.Language, code)
}

// Validate checks what must be present before anything is composed.
func (c *Composer) Validate(form *models.QuotationForm) error {
	v := validation.Violations{}
	validation.Required(models.FieldQuoteNumber, form.QuoteNumber, v)
	if v.Empty() {
		return nil
	}
	return ierr.NewErrorf("invalid quotation: %s", strings.Join(v.Fields(), ", ")).
		WithHint(c.t("quote_number_missing")).
		Mark(ierr.ErrValidation)
}

// Compose returns the blocks of the quotation in print order: header,
// metadata, customer, items, summary, terms, signatures.
func (c *Composer) Compose(in Input) ([]Block, error) {
	form := in.Form
	if err := c.Validate(form); err != nil {
		return nil, err
	}
	summary, err := form.Summary()
	if err != nil {
		return nil, err
	}

	blocks := []Block{
		c.header(in.Logo),
		Spacer{Height: sectionGap},
		c.metadata(form),
		Spacer{Height: sectionGap},
		Heading{Text: c.t("customer_details")},
		c.customer(form),
		Spacer{Height: sectionGap},
		Heading{Text: c.t("item_details")},
		c.items(form),
		Spacer{Height: sectionGap / 2},
		c.summary(summary),
		Spacer{Height: sectionGap},
		Heading{Text: c.t("terms")},
	}
	blocks = append(blocks, c.terms(form.Terms)...)
	blocks = append(blocks, Spacer{Height: sectionGap * 1.5}, c.signature())
	return blocks, nil
}

func (c *Composer) header(logo *Image) Header {
	co := c.settings.Company
	return Header{
		Company:      co.Name,
		Tagline:      co.Tagline,
		AddressLines: co.AddressLines,
		ContactLines: co.ContactLines,
		Logo:         logo,
	}
}

func label(text string) Cell {
	return Cell{Text: text, Shade: ShadeLight, Border: true}
}

func value(text string) Cell {
	return Cell{Text: text, Border: true}
}

func (c *Composer) metadata(f *models.QuotationForm) Table {
	return Table{
		Name:      "metadata",
		Widths:    []int{3, 3, 3, 3},
		RowHeight: 7,
		Rows: []Row{
			{Cells: []Cell{label(c.t("issue_date")), value(f.IssueDate), label(c.t("quote_number")), value(f.QuoteNumber)}},
			{Cells: []Cell{label(c.t("valid_until")), value(f.ValidUntil), label(c.t("customer_id")), value(f.CustomerID)}},
		},
	}
}

// customer lists only the customer fields that were filled in; with none
// of them a placeholder paragraph replaces the table.
func (c *Composer) customer(f *models.QuotationForm) Block {
	fields := []struct{ code, value string }{
		{"customer_name", f.CustomerName},
		{"phone", f.CustomerPhone},
		{"address", f.CustomerAddress},
	}
	var rows []Row
	for _, fld := range fields {
		if strings.TrimSpace(fld.value) == "" {
			continue
		}
		rows = append(rows, Row{Cells: []Cell{label(c.t(fld.code)), value(fld.value)}})
	}
	if len(rows) == 0 {
		return Paragraph{Text: c.t("no_customer_details")}
	}
	return Table{Name: "customer", Widths: []int{3, 7}, RowHeight: 7, Rows: rows}
}

// items prints the rows that have a description. Totals still include
// the others.
func (c *Composer) items(f *models.QuotationForm) Table {
	head := func(text string, a Align) Cell {
		return Cell{Text: text, Align: a, Shade: ShadeLight, Border: true}
	}
	body := func(text string, a Align) Cell {
		return Cell{Text: text, Align: a, Border: true}
	}
	cur := c.settings.Currency
	rows := []Row{{Cells: []Cell{
		head(c.t("col_no"), AlignCenter),
		head(c.t("col_description"), AlignLeft),
		head(c.t("col_qty"), AlignRight),
		head(fmt.Sprintf(c.t("col_unit_price"), cur), AlignRight),
		head(fmt.Sprintf(c.t("col_amount"), cur), AlignRight),
	}}}

	for _, item := range f.DescribedItems() {
		rows = append(rows, Row{Cells: []Cell{
			body(strconv.Itoa(item.Index), AlignCenter),
			body(item.Description, AlignLeft),
			body(item.Quantity, AlignRight),
			body(item.UnitPrice, AlignRight),
			body(item.AmountText(), AlignRight),
		}})
	}
	if len(rows) == 1 {
		rows = append(rows, Row{Cells: []Cell{
			body("", AlignCenter),
			body(c.t("no_items"), AlignLeft),
			body("", AlignRight),
			body("", AlignRight),
			body("", AlignRight),
		}})
	}
	return Table{Name: "items", Widths: []int{1, 5, 2, 2, 2}, Rows: rows}
}

func (c *Composer) summary(s models.Summary) Table {
	line := func(text string, amount string) Row {
		return Row{Cells: []Cell{
			{},
			{Text: text, Align: AlignRight, Shade: ShadeLight, Border: true},
			{Text: amount, Align: AlignRight, Border: true},
		}}
	}
	rows := []Row{
		line(c.t("subtotal"), FormatAmount(s.Subtotal, c.numbers)),
		line(c.t("discount"), FormatAmount(s.Discount, c.numbers)),
		line(c.t("net_amount"), FormatAmount(s.Net, c.numbers)),
		line(fmt.Sprintf(c.t("tax"), s.TaxRate.String()), FormatAmount(s.TaxAmount, c.numbers)),
		{Cells: []Cell{
			{},
			{Text: c.t("total"), Align: AlignRight, Shade: ShadeDark, Bold: true, Highlight: true, Border: true},
			{Text: FormatAmount(s.Total, c.numbers), Align: AlignRight, Bold: true, Highlight: true, Border: true},
		}},
	}
	return Table{Name: "summary", Widths: []int{6, 3, 3}, RowHeight: 7, Rows: rows}
}

// terms keeps the user's line breaks: one paragraph per non-blank line.
func (c *Composer) terms(text string) []Block {
	var out []Block
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, Paragraph{Text: line})
	}
	return out
}

func (c *Composer) signature() Signature {
	return Signature{
		Line:       signatureLine,
		LeftLabel:  c.t("authorized_signature"),
		RightLabel: c.t("customer_signature"),
		DateLine:   c.t("date_line"),
		LeftWidth:  5,
		GapWidth:   2,
		RightWidth: 5,
	}
}
