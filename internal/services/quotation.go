package services

import (
	"context"

	"github.com/diewo77/go-quotations/internal/document"
	"github.com/diewo77/go-quotations/internal/imaging"
	"github.com/diewo77/go-quotations/internal/logger"
	"github.com/diewo77/go-quotations/internal/models"
	"github.com/diewo77/go-quotations/internal/shell"
)

// Renderer turns composed blocks into a PDF.
type Renderer interface {
	Render(blocks []document.Block) ([]byte, error)
}

// LogoLoader decodes the logo file chosen on the form.
type LogoLoader interface {
	Load(path string) (*imaging.Logo, error)
}

// DocumentWriter stores a rendered document and returns where it went.
type DocumentWriter interface {
	Write(quoteNumber string, data []byte) (string, error)
}

// Result describes a generated quotation. LogoErr and OpenErr are
// warnings: the file was written regardless.
type Result struct {
	Path    string
	Summary models.Summary
	LogoErr error
	OpenErr error
}

type QuotationService struct {
	composer *document.Composer
	renderer Renderer
	logos    LogoLoader
	writer   DocumentWriter
	opener   shell.Opener
	log      *logger.Logger
}

func NewQuotationService(
	composer *document.Composer,
	renderer Renderer,
	logos LogoLoader,
	writer DocumentWriter,
	opener shell.Opener,
	log *logger.Logger,
) *QuotationService {
	if opener == nil {
		opener = shell.NopOpener{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &QuotationService{
		composer: composer,
		renderer: renderer,
		logos:    logos,
		writer:   writer,
		opener:   opener,
		log:      log,
	}
}

// Generate refreshes the totals of form, then composes, renders, saves and
// opens the quotation. The form keeps the refreshed totals; everything
// after that works on a snapshot.
func (s *QuotationService) Generate(ctx context.Context, form *models.QuotationForm) (*Result, error) {
	if err := form.RecomputeTotals(); err != nil {
		return nil, err
	}
	snap := form.Snapshot()
	if err := s.composer.Validate(snap); err != nil {
		return nil, err
	}
	summary, err := snap.Summary()
	if err != nil {
		return nil, err
	}
	res := &Result{Summary: summary}

	in := document.Input{Form: snap}
	if snap.HasLogo() {
		logo, err := s.logos.Load(snap.LogoPath)
		if err != nil {
			s.log.Warnw("logo not loaded, continuing without it", "path", snap.LogoPath, "error", err)
			res.LogoErr = err
		} else {
			in.Logo = &document.Image{Data: logo.PNG, Extension: "png"}
		}
	}

	blocks, err := s.composer.Compose(in)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf, err := s.renderer.Render(blocks)
	if err != nil {
		return nil, err
	}
	path, err := s.writer.Write(snap.QuoteNumber, pdf)
	if err != nil {
		return nil, err
	}
	res.Path = path
	s.log.Infow("quotation generated",
		"quote_number", snap.QuoteNumber,
		"path", path,
		"total", summary.Total.StringFixed(2),
		"bytes", len(pdf))

	if err := s.opener.Open(ctx, path); err != nil {
		s.log.Warnw("could not open quotation", "path", path, "error", err)
		res.OpenErr = err
	}
	return res, nil
}
