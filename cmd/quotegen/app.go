package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/diewo77/go-quotations/internal/config"
	"github.com/diewo77/go-quotations/internal/document"
	ierr "github.com/diewo77/go-quotations/internal/errors"
	"github.com/diewo77/go-quotations/internal/formfile"
	"github.com/diewo77/go-quotations/internal/imaging"
	"github.com/diewo77/go-quotations/internal/logger"
	"github.com/diewo77/go-quotations/internal/models"
	"github.com/diewo77/go-quotations/internal/render"
	"github.com/diewo77/go-quotations/internal/services"
	"github.com/diewo77/go-quotations/internal/session"
	"github.com/diewo77/go-quotations/internal/shell"
	"github.com/diewo77/go-quotations/internal/storage"
)

// Options are the command line choices that are not configuration.
type Options struct {
	FormFile string
	NoOpen   bool
}

// App wires the form, the generation pipeline and its collaborators.
type App struct {
	cfg     *config.Config
	log     *logger.Logger
	form    *models.QuotationForm
	logos   *imaging.Loader
	service *services.QuotationService
}

func NewApp(cfg *config.Config, log *logger.Logger, opts Options) (*App, error) {
	form := models.NewQuotationForm(time.Now(), cfg.FormDefaults())
	if opts.FormFile != "" {
		ff, err := formfile.Load(opts.FormFile)
		if err != nil {
			return nil, err
		}
		if err := ff.Apply(form); err != nil {
			return nil, err
		}
		log.Infow("form loaded", "file", opts.FormFile, "items", len(ff.Items))
	}

	composer := document.NewComposer(document.Settings{
		Company: document.Company{
			Name:         cfg.Company.Name,
			Tagline:      cfg.Company.Tagline,
			AddressLines: cfg.Company.AddressLines,
			ContactLines: cfg.Company.ContactLines,
		},
		Language: cfg.Document.Language,
		Currency: cfg.Document.Currency,
	})
	renderer := render.NewMaroto(render.Settings{
		Title:      cfg.Company.Name,
		Author:     cfg.Company.Name,
		MarginMM:   cfg.Document.MarginMM,
		LogoSizeMM: cfg.Document.LogoSizeMM,
	})
	logos := imaging.NewLoader(cfg.Document.MaxLogoBytes)
	writer := storage.NewWriter(cfg.Output.Dir, cfg.Output.FilePrefix)

	var opener shell.Opener = shell.NewSystemOpener()
	if opts.NoOpen {
		opener = shell.NopOpener{}
	}

	return &App{
		cfg:     cfg,
		log:     log,
		form:    form,
		logos:   logos,
		service: services.NewQuotationService(composer, renderer, logos, writer, opener, log),
	}, nil
}

// GenerateOnce produces the quotation for the loaded form and reports
// where it was saved.
func (a *App) GenerateOnce(ctx context.Context, out io.Writer) error {
	res, err := a.service.Generate(ctx, a.form)
	if err != nil {
		return err
	}
	if res.LogoErr != nil {
		fmt.Fprintf(out, "Warning: %s\n", ierr.DisplayMessage(res.LogoErr))
	}
	fmt.Fprintf(out, "Saved to: %s\n", res.Path)
	if res.OpenErr != nil {
		fmt.Fprintf(out, "Warning: %s\n", ierr.DisplayMessage(res.OpenErr))
	}
	return nil
}

// Session starts an interactive session on the loaded form.
func (a *App) Session(out io.Writer) *session.Session {
	return session.New(a.form, a.service, a.logos, out, a.log)
}
