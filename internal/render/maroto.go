// Package render serializes document blocks to PDF with maroto.
package render

import (
	"math"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/diewo77/go-quotations/internal/document"
	ierr "github.com/diewo77/go-quotations/internal/errors"
)

var (
	colorBlack     = &props.Color{Red: 0, Green: 0, Blue: 0}
	colorLightGrey = &props.Color{Red: 211, Green: 211, Blue: 211}
	colorGrey      = &props.Color{Red: 128, Green: 128, Blue: 128}
	colorRed       = &props.Color{Red: 255, Green: 0, Blue: 0}
)

// Settings configures the page.
type Settings struct {
	Title      string
	Author     string
	MarginMM   float64
	LogoSizeMM float64
}

// DefaultSettings mirrors a 1 inch margin on A4.
func DefaultSettings() Settings {
	return Settings{MarginMM: 25.4, LogoSizeMM: 18}
}

// Maroto renders blocks into an A4 PDF.
type Maroto struct {
	settings Settings
}

func NewMaroto(s Settings) *Maroto {
	if s.MarginMM <= 0 {
		s.MarginMM = DefaultSettings().MarginMM
	}
	if s.LogoSizeMM <= 0 {
		s.LogoSizeMM = DefaultSettings().LogoSizeMM
	}
	return &Maroto{settings: s}
}

// Render returns the PDF bytes of blocks.
func (r *Maroto) Render(blocks []document.Block) ([]byte, error) {
	mg := r.settings.MarginMM
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(mg).WithRightMargin(mg).
		WithTopMargin(mg).WithBottomMargin(mg).
		WithDefaultFont(&props.Font{Family: fontfamily.Helvetica, Size: 10}).
		WithTitle(r.settings.Title, true).
		WithAuthor(r.settings.Author, true).
		Build()

	m := maroto.New(cfg)
	for _, b := range blocks {
		rows, err := r.rows(b)
		if err != nil {
			return nil, err
		}
		m.AddRows(rows...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, ierr.WithError(err).
			WithMessage("generate pdf").
			WithHintf("Failed to generate quotation: %v", err).
			Mark(ierr.ErrRender)
	}
	return doc.GetBytes(), nil
}

func (r *Maroto) rows(b document.Block) ([]core.Row, error) {
	switch blk := b.(type) {
	case document.Header:
		return []core.Row{r.header(blk)}, nil
	case document.Heading:
		return []core.Row{row.New(10).Add(text.NewCol(12, blk.Text, props.Text{
			Size: 12, Style: fontstyle.Bold, Top: 4,
		}))}, nil
	case document.Paragraph:
		return []core.Row{row.New().Add(text.NewCol(12, blk.Text, props.Text{
			Size: 10, Top: 1,
		}))}, nil
	case document.Spacer:
		return []core.Row{row.New(blk.Height)}, nil
	case document.Table:
		return tableRows(blk), nil
	case document.Signature:
		return signatureRows(blk), nil
	}
	return nil, ierr.NewErrorf("unsupported block %T", b).
		WithHint("Failed to generate quotation: unsupported document content").
		Mark(ierr.ErrRender)
}

// header puts the logo (if any) in a narrow left column and the centred
// company block on the right.
func (r *Maroto) header(h document.Header) core.Row {
	center := func(size float64, style fontstyle.Type, top float64) props.Text {
		return props.Text{Size: size, Style: style, Align: align.Center, Top: top}
	}

	info := []core.Component{text.New(h.Company, center(18, fontstyle.Bold, 0))}
	top := 9.0
	if h.Tagline != "" {
		info = append(info, text.New(h.Tagline, center(14, fontstyle.Normal, top)))
		top += 8
	}
	for _, l := range h.AddressLines {
		info = append(info, text.New(l, center(10, fontstyle.Normal, top)))
		top += 4.5
	}
	top += 1.5
	for _, l := range h.ContactLines {
		info = append(info, text.New(l, center(10, fontstyle.Normal, top)))
		top += 4.5
	}

	height := math.Max(top+2, r.settings.LogoSizeMM)
	logo := col.New(3)
	if h.Logo != nil {
		logo.Add(image.NewFromBytes(h.Logo.Data, extension.Type(h.Logo.Extension), props.Rect{
			Center:  true,
			Percent: math.Min(100, r.settings.LogoSizeMM/height*100),
		}))
	}
	return row.New(height).Add(logo, col.New(9).Add(info...))
}

func tableRows(t document.Table) []core.Row {
	out := make([]core.Row, 0, len(t.Rows))
	for _, tr := range t.Rows {
		cols := make([]core.Col, 0, len(tr.Cells))
		for i, c := range tr.Cells {
			cl := col.New(t.Widths[i])
			if c.Text != "" {
				cl.Add(text.New(c.Text, cellText(c)))
			}
			if style := cellStyle(c); style != nil {
				cl = cl.WithStyle(style)
			}
			cols = append(cols, cl)
		}
		var r core.Row
		if t.RowHeight > 0 {
			r = row.New(t.RowHeight)
		} else {
			r = row.New()
		}
		out = append(out, r.Add(cols...))
	}
	return out
}

func cellText(c document.Cell) props.Text {
	p := props.Text{Size: 9, Top: 1.5, Left: 1.5, Right: 1.5, Align: alignOf(c.Align)}
	if c.Bold {
		p.Style = fontstyle.Bold
	}
	if c.Highlight {
		p.Color = colorRed
	}
	return p
}

func cellStyle(c document.Cell) *props.Cell {
	if !c.Border && c.Shade == document.ShadeNone {
		return nil
	}
	style := &props.Cell{}
	switch c.Shade {
	case document.ShadeLight:
		style.BackgroundColor = colorLightGrey
	case document.ShadeDark:
		style.BackgroundColor = colorGrey
	}
	if c.Border {
		style.BorderType = border.Full
		style.BorderColor = colorBlack
		style.BorderThickness = 0.2
	}
	return style
}

func alignOf(a document.Align) align.Type {
	switch a {
	case document.AlignCenter:
		return align.Center
	case document.AlignRight:
		return align.Right
	}
	return align.Left
}

func signatureRows(s document.Signature) []core.Row {
	centered := props.Text{Size: 10, Align: align.Center, Top: 1}
	line := func(left, right string) core.Row {
		return row.New(7).Add(
			text.NewCol(s.LeftWidth, left, centered),
			col.New(s.GapWidth),
			text.NewCol(s.RightWidth, right, centered),
		)
	}
	return []core.Row{
		line(s.Line, s.Line),
		line(s.LeftLabel, s.RightLabel),
		line(s.DateLine, s.DateLine),
	}
}
