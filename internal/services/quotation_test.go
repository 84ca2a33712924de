package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/go-quotations/internal/document"
	ierr "github.com/diewo77/go-quotations/internal/errors"
	"github.com/diewo77/go-quotations/internal/imaging"
	"github.com/diewo77/go-quotations/internal/models"
)

type mockRenderer struct{ mock.Mock }

func (m *mockRenderer) Render(blocks []document.Block) ([]byte, error) {
	args := m.Called(blocks)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

type mockLogos struct{ mock.Mock }

func (m *mockLogos) Load(path string) (*imaging.Logo, error) {
	args := m.Called(path)
	logo, _ := args.Get(0).(*imaging.Logo)
	return logo, args.Error(1)
}

type mockWriter struct{ mock.Mock }

func (m *mockWriter) Write(quoteNumber string, data []byte) (string, error) {
	args := m.Called(quoteNumber, data)
	return args.String(0), args.Error(1)
}

type mockOpener struct{ mock.Mock }

func (m *mockOpener) Open(ctx context.Context, path string) error {
	return m.Called(path).Error(0)
}

type fixture struct {
	renderer *mockRenderer
	logos    *mockLogos
	writer   *mockWriter
	opener   *mockOpener
	svc      *QuotationService
}

func newFixture() *fixture {
	f := &fixture{
		renderer: &mockRenderer{},
		logos:    &mockLogos{},
		writer:   &mockWriter{},
		opener:   &mockOpener{},
	}
	composer := document.NewComposer(document.Settings{
		Company:  document.Company{Name: "Ajith Iron Works"},
		Language: "en",
		Currency: "Rs",
	})
	f.svc = NewQuotationService(composer, f.renderer, f.logos, f.writer, f.opener, nil)
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.renderer.AssertExpectations(t)
	f.logos.AssertExpectations(t)
	f.writer.AssertExpectations(t)
	f.opener.AssertExpectations(t)
}

func sampleForm(t *testing.T) *models.QuotationForm {
	t.Helper()
	form := models.NewQuotationForm(time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC), models.DefaultSettings())
	form.QuoteNumber = "Q-001"
	require.NoError(t, form.SetDescription(1, "Gate"))
	require.NoError(t, form.SetQuantity(1, "2"))
	require.NoError(t, form.SetUnitPrice(1, "1000"))
	form.Discount = "0"
	form.TaxRate = "10"
	return form
}

func headerOf(blocks []document.Block) document.Header {
	for _, b := range blocks {
		if h, ok := b.(document.Header); ok {
			return h
		}
	}
	return document.Header{}
}

func TestGenerate_HappyPath(t *testing.T) {
	f := newFixture()
	pdf := []byte("%PDF-1.3 fake")
	f.renderer.On("Render", mock.Anything).Return(pdf, nil)
	f.writer.On("Write", "Q-001", pdf).Return("/tmp/out/Q.pdf", nil)
	f.opener.On("Open", "/tmp/out/Q.pdf").Return(nil)

	form := sampleForm(t)
	res, err := f.svc.Generate(context.Background(), form)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/out/Q.pdf", res.Path)
	assert.Equal(t, "2200.00", res.Summary.Total.StringFixed(2))
	assert.NoError(t, res.LogoErr)
	assert.NoError(t, res.OpenErr)
	// totals are refreshed on the live form
	assert.Equal(t, "2000.00", form.Subtotal.StringFixed(2))
	assert.Equal(t, "2200.00", form.Total.StringFixed(2))
	f.logos.AssertNotCalled(t, "Load", mock.Anything)
	f.assertExpectations(t)
}

func TestGenerate_MissingQuoteNumber(t *testing.T) {
	f := newFixture()
	form := sampleForm(t)
	form.QuoteNumber = "   "

	_, err := f.svc.Generate(context.Background(), form)
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
	assert.Equal(t, "Quote number is required", ierr.DisplayMessage(err))
	f.renderer.AssertNotCalled(t, "Render", mock.Anything)
	f.writer.AssertNotCalled(t, "Write", mock.Anything, mock.Anything)
}

func TestGenerate_BadDiscount(t *testing.T) {
	f := newFixture()
	form := sampleForm(t)
	form.Discount = "ten"

	_, err := f.svc.Generate(context.Background(), form)
	require.Error(t, err)
	assert.True(t, ierr.IsCalculation(err))
	f.writer.AssertNotCalled(t, "Write", mock.Anything, mock.Anything)
}

func TestGenerate_LogoFailureIsWarning(t *testing.T) {
	f := newFixture()
	loadErr := ierr.NewError("not an image").Mark(ierr.ErrImage)
	f.logos.On("Load", "/tmp/logo.txt").Return(nil, loadErr)
	f.renderer.On("Render", mock.MatchedBy(func(blocks []document.Block) bool {
		return headerOf(blocks).Logo == nil
	})).Return([]byte("%PDF"), nil)
	f.writer.On("Write", "Q-001", mock.Anything).Return("/tmp/out/Q.pdf", nil)
	f.opener.On("Open", "/tmp/out/Q.pdf").Return(nil)

	form := sampleForm(t)
	form.SetLogo("/tmp/logo.txt")
	res, err := f.svc.Generate(context.Background(), form)
	require.NoError(t, err)
	assert.True(t, ierr.Is(res.LogoErr, ierr.ErrImage))
	f.assertExpectations(t)
}

func TestGenerate_LogoPassedToRenderer(t *testing.T) {
	f := newFixture()
	f.logos.On("Load", "/tmp/logo.png").Return(&imaging.Logo{PNG: []byte{0x89, 'P', 'N', 'G'}}, nil)
	f.renderer.On("Render", mock.MatchedBy(func(blocks []document.Block) bool {
		h := headerOf(blocks)
		return h.Logo != nil && h.Logo.Extension == "png" && len(h.Logo.Data) == 4
	})).Return([]byte("%PDF"), nil)
	f.writer.On("Write", "Q-001", mock.Anything).Return("/tmp/out/Q.pdf", nil)
	f.opener.On("Open", "/tmp/out/Q.pdf").Return(nil)

	form := sampleForm(t)
	form.SetLogo("/tmp/logo.png")
	_, err := f.svc.Generate(context.Background(), form)
	require.NoError(t, err)
	f.assertExpectations(t)
}

func TestGenerate_OpenFailureStillSucceeds(t *testing.T) {
	f := newFixture()
	openErr := ierr.NewError("xdg-open missing").Mark(ierr.ErrOpen)
	f.renderer.On("Render", mock.Anything).Return([]byte("%PDF"), nil)
	f.writer.On("Write", "Q-001", mock.Anything).Return("/tmp/out/Q.pdf", nil)
	f.opener.On("Open", "/tmp/out/Q.pdf").Return(openErr)

	res, err := f.svc.Generate(context.Background(), sampleForm(t))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out/Q.pdf", res.Path)
	assert.True(t, ierr.Is(res.OpenErr, ierr.ErrOpen))
	f.assertExpectations(t)
}

func TestGenerate_RenderAndWriteErrors(t *testing.T) {
	t.Run("render", func(t *testing.T) {
		f := newFixture()
		f.renderer.On("Render", mock.Anything).Return(nil, ierr.NewError("boom").Mark(ierr.ErrRender))
		_, err := f.svc.Generate(context.Background(), sampleForm(t))
		assert.True(t, ierr.Is(err, ierr.ErrRender))
		f.writer.AssertNotCalled(t, "Write", mock.Anything, mock.Anything)
	})
	t.Run("write", func(t *testing.T) {
		f := newFixture()
		f.renderer.On("Render", mock.Anything).Return([]byte("%PDF"), nil)
		f.writer.On("Write", "Q-001", mock.Anything).Return("", ierr.NewError("disk full").Mark(ierr.ErrStorage))
		_, err := f.svc.Generate(context.Background(), sampleForm(t))
		assert.True(t, ierr.Is(err, ierr.ErrStorage))
		f.opener.AssertNotCalled(t, "Open", mock.Anything)
	})
}

func TestGenerate_Cancelled(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.svc.Generate(ctx, sampleForm(t))
	assert.ErrorIs(t, err, context.Canceled)
	f.renderer.AssertNotCalled(t, "Render", mock.Anything)
}
