// Package document turns a quotation form into an ordered list of layout
// blocks. It knows nothing about PDF; a Renderer serializes the blocks.
package document

// Kind identifies a block type.
type Kind int

const (
	KindHeader Kind = iota
	KindHeading
	KindParagraph
	KindTable
	KindSpacer
	KindSignature
)

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindTable:
		return "table"
	case KindSpacer:
		return "spacer"
	case KindSignature:
		return "signature"
	}
	return "unknown"
}

// Block is one self-contained unit of document content.
type Block interface {
	Kind() Kind
}

// Image is an already decoded and re-encoded picture.
type Image struct {
	Data      []byte
	Extension string // "png" or "jpg"
}

// Header is the company block at the top of the first page.
type Header struct {
	Company      string
	Tagline      string
	AddressLines []string
	ContactLines []string
	Logo         *Image
}

func (Header) Kind() Kind { return KindHeader }

// Heading is a section title.
type Heading struct {
	Text string
}

func (Heading) Kind() Kind { return KindHeading }

// Paragraph is a run of body text.
type Paragraph struct {
	Text string
}

func (Paragraph) Kind() Kind { return KindParagraph }

// Spacer is vertical blank space in millimetres.
type Spacer struct {
	Height float64
}

func (Spacer) Kind() Kind { return KindSpacer }

// Align is the horizontal alignment of a cell.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Shade is the background of a cell.
type Shade int

const (
	ShadeNone Shade = iota
	ShadeLight
	ShadeDark
)

// Cell is one table cell.
type Cell struct {
	Text      string
	Align     Align
	Shade     Shade
	Bold      bool
	Highlight bool // red text
	Border    bool
}

// Row is a table row.
type Row struct {
	Cells []Cell
}

// Table is a grid of cells. Widths are in 12-column grid units and apply
// to every row. RowHeight 0 lets the renderer size rows to their content.
type Table struct {
	Name      string
	Widths    []int
	RowHeight float64
	Rows      []Row
}

func (Table) Kind() Kind { return KindTable }

// Signature is the pair of signature lines at the end of the document.
type Signature struct {
	Line       string
	LeftLabel  string
	RightLabel string
	DateLine   string
	LeftWidth  int
	GapWidth   int
	RightWidth int
}

func (Signature) Kind() Kind { return KindSignature }
