// Package session is a line-oriented front end for one quotation form.
// Every command maps onto a single form operation and then prints what
// changed; the form itself holds all state.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	ierr "github.com/diewo77/go-quotations/internal/errors"
	"github.com/diewo77/go-quotations/internal/logger"
	"github.com/diewo77/go-quotations/internal/models"
	"github.com/diewo77/go-quotations/internal/services"
	"github.com/diewo77/go-quotations/validation"
)

// Generator produces the quotation document for a form.
type Generator interface {
	Generate(ctx context.Context, form *models.QuotationForm) (*services.Result, error)
}

// termsEnd ends multi-line input of the terms command.
const termsEnd = "."

type Session struct {
	form  *models.QuotationForm
	gen   Generator
	logos services.LogoLoader
	out   io.Writer
	log   *logger.Logger
	now   func() time.Time

	lines chan string
}

func New(form *models.QuotationForm, gen Generator, logos services.LogoLoader, out io.Writer, log *logger.Logger) *Session {
	if log == nil {
		log = logger.NewNop()
	}
	return &Session{
		form:  form,
		gen:   gen,
		logos: logos,
		out:   out,
		log:   log,
		now:   time.Now,
	}
}

// Run reads commands from in until quit, end of input or ctx is done.
// Reported errors are printed and the session carries on.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	s.lines = make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(s.lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case s.lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	fmt.Fprintln(s.out, `Quotation session. Type "help" for commands.`)
	for {
		fmt.Fprint(s.out, "> ")
		line, ok := s.next(ctx)
		if !ok {
			fmt.Fprintln(s.out)
			select {
			case err := <-scanErr:
				return err
			default:
				return ctx.Err()
			}
		}
		quit, err := s.Execute(ctx, line)
		if err != nil {
			s.log.Debugw("command failed", "command", line, "error", err)
			fmt.Fprintf(s.out, "Error: %s\n", ierr.DisplayMessage(err))
		}
		if quit {
			return nil
		}
	}
}

func (s *Session) next(ctx context.Context) (string, bool) {
	select {
	case line, ok := <-s.lines:
		return line, ok
	case <-ctx.Done():
		return "", false
	}
}

func usageError(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return ierr.NewError(msg).WithHint(msg).Mark(ierr.ErrValidation)
}

// Execute runs one command line. quit is true for quit/exit.
func (s *Session) Execute(ctx context.Context, line string) (quit bool, err error) {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "":
		return false, nil
	case "quit", "exit":
		return true, nil
	case "help":
		s.help()
	case "show":
		s.show()
	case "set":
		name, value, _ := strings.Cut(rest, " ")
		if name == "" {
			return false, usageError("usage: set <field> <value>")
		}
		if err := s.form.SetField(name, strings.TrimSpace(value)); err != nil {
			return false, err
		}
		fmt.Fprintf(s.out, "%s = %s\n", name, strings.TrimSpace(value))
	case "desc", "qty", "price":
		return false, s.editRow(cmd, rest)
	case "add":
		item := s.form.AddItem()
		fmt.Fprintf(s.out, "Row %d added\n", item.Index)
	case "remove":
		if !s.form.RemoveLastItem() {
			fmt.Fprintln(s.out, "At least one row is kept")
			return false, nil
		}
		fmt.Fprintf(s.out, "%d rows\n", len(s.form.Items))
	case "total":
		err := s.form.RecomputeTotals()
		s.printTotals()
		return false, err
	case "clear":
		s.form.Clear(s.now())
		fmt.Fprintln(s.out, "Form cleared")
	case "terms":
		return false, s.readTerms(ctx)
	case "logo":
		return false, s.setLogo(rest)
	case "nologo":
		s.form.RemoveLogo()
		fmt.Fprintln(s.out, "No logo selected")
	case "generate":
		return false, s.generate(ctx)
	default:
		return false, usageError("Unknown command %q, type help for the list", cmd)
	}
	return false, nil
}

func (s *Session) editRow(cmd, rest string) error {
	rowText, text, _ := strings.Cut(rest, " ")
	row, err := strconv.Atoi(rowText)
	if err != nil {
		return usageError("usage: %s <row> <text>", cmd)
	}
	text = strings.TrimSpace(text)

	switch cmd {
	case "desc":
		err = s.form.SetDescription(row, text)
	case "qty":
		err = s.form.SetQuantity(row, text)
	case "price":
		err = s.form.SetUnitPrice(row, text)
	}
	if err != nil {
		return err
	}
	item, _ := s.form.Item(row)
	fmt.Fprintf(s.out, "Row %d: %s x %s = %s\n", item.Index, item.Quantity, item.UnitPrice, item.AmountText())
	return nil
}

func (s *Session) readTerms(ctx context.Context) error {
	fmt.Fprintf(s.out, "Enter terms, end with a line containing only %q\n", termsEnd)
	var lines []string
	for {
		line, ok := s.next(ctx)
		if !ok {
			return usageError("terms input ended before %q, terms unchanged", termsEnd)
		}
		if strings.TrimSpace(line) == termsEnd {
			break
		}
		lines = append(lines, line)
	}
	if err := s.form.SetField(models.FieldTerms, strings.Join(lines, "\n")); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Terms updated (%d lines)\n", len(lines))
	return nil
}

// setLogo keeps the path even when the preview fails; generation will
// warn again and fall back to the layout without a logo.
func (s *Session) setLogo(path string) error {
	if path == "" {
		return usageError("usage: logo <path>")
	}
	s.form.SetLogo(path)
	logo, err := s.logos.Load(s.form.LogoPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Logo: %s (%s, %dx%d)\n", logo.Name(), logo.Format, logo.Width, logo.Height)
	fmt.Fprint(s.out, logo.PreviewText())
	return nil
}

func (s *Session) generate(ctx context.Context) error {
	res, err := s.gen.Generate(ctx, s.form)
	if err != nil {
		return err
	}
	s.printTotals()
	if res.LogoErr != nil {
		fmt.Fprintf(s.out, "Warning: %s\n", ierr.DisplayMessage(res.LogoErr))
	}
	fmt.Fprintf(s.out, "Quotation generated successfully!\nSaved to: %s\n", res.Path)
	if res.OpenErr != nil {
		fmt.Fprintf(s.out, "Warning: %s\n", ierr.DisplayMessage(res.OpenErr))
	}
	return nil
}

func (s *Session) printTotals() {
	fmt.Fprintf(s.out, "Subtotal: %s\nTotal: %s\n", s.form.Subtotal.StringFixed(2), s.form.Total.StringFixed(2))
}

func (s *Session) show() {
	f := s.form
	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "issue_date\t%s\n", f.IssueDate)
	fmt.Fprintf(w, "valid_until\t%s\n", f.ValidUntil)
	fmt.Fprintf(w, "quote_number\t%s\n", f.QuoteNumber)
	fmt.Fprintf(w, "customer_id\t%s\n", f.CustomerID)
	fmt.Fprintf(w, "customer_name\t%s\n", f.CustomerName)
	fmt.Fprintf(w, "customer_phone\t%s\n", f.CustomerPhone)
	fmt.Fprintf(w, "customer_address\t%s\n", f.CustomerAddress)
	fmt.Fprintf(w, "logo\t%s\n", f.LogoPath)
	w.Flush()

	fmt.Fprintln(s.out)
	w = tabwriter.NewWriter(s.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "No.\tDescription\tQty\tUnit Price\tAmount\t")
	for _, item := range f.Items {
		v := validation.Violations{}
		validation.Decimal("qty", item.Quantity, v)
		validation.Decimal("price", item.UnitPrice, v)
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t\n",
			item.Index, item.Description,
			flagged(item.Quantity, v["qty"]), flagged(item.UnitPrice, v["price"]),
			item.AmountText())
	}
	w.Flush()

	fmt.Fprintln(s.out)
	fmt.Fprintf(s.out, "discount: %s  tax_rate: %s%%\n", f.Discount, f.TaxRate)
	s.printTotals()
	fmt.Fprintf(s.out, "terms:\n%s\n", f.Terms)
}

func flagged(text, violation string) string {
	if violation == "" {
		return text
	}
	return text + " (!)"
}

func (s *Session) help() {
	fmt.Fprintln(s.out, `Commands:
  show                      print the form
  set <field> <value>       set a field: `+strings.Join(models.Fields, ", ")+`
  desc <row> <text>         set a row description
  qty <row> <text>          set a row quantity
  price <row> <text>        set a row unit price
  add | remove              add a row, remove the last row
  total                     recalculate subtotal and total
  clear                     reset the form
  terms                     type new terms, end with "."
  logo <path> | nologo      choose or drop the logo
  generate                  write the PDF and open it
  quit`)
}
