// Package storage writes generated quotations to the output directory.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	ierr "github.com/diewo77/go-quotations/internal/errors"
)

const (
	Extension    = ".pdf"
	suffixLength = 6
	maxAttempts  = 5
)

// Writer stores documents as <dir>/<prefix>_<quote>_<suffix>.pdf.
type Writer struct {
	dir    string
	prefix string
	suffix func() string
}

func NewWriter(dir, prefix string) *Writer {
	return &Writer{dir: dir, prefix: prefix, suffix: RandomSuffix}
}

// RandomSuffix returns 6 lowercase hex characters.
func RandomSuffix() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:suffixLength]
}

// FileName builds the file name for quoteNumber with the given suffix.
// Characters that cannot appear in a file name are replaced by '-'.
func (w *Writer) FileName(quoteNumber, suffix string) string {
	return fmt.Sprintf("%s_%s_%s%s", w.prefix, sanitize(quoteNumber), suffix, Extension)
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		if r < ' ' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}

func storageError(err error, msg string) error {
	return ierr.WithError(err).
		WithMessage(msg).
		WithHintf("Failed to generate quotation: %v", err).
		Mark(ierr.ErrStorage)
}

// Write stores data under a new unique name and returns its path. The
// directory is created when missing. Data goes to a temporary file that
// is renamed into place, so a failed write leaves nothing behind.
func (w *Writer) Write(quoteNumber string, data []byte) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", storageError(err, "create output directory")
	}

	target := ""
	for i := 0; i < maxAttempts; i++ {
		p := filepath.Join(w.dir, w.FileName(quoteNumber, w.suffix()))
		if _, err := os.Stat(p); os.IsNotExist(err) {
			target = p
			break
		}
	}
	if target == "" {
		return "", storageError(ierr.NewError("no free file name").Mark(ierr.ErrStorage), "pick file name")
	}

	tmp, err := os.CreateTemp(w.dir, ".quotation-*.tmp")
	if err != nil {
		return "", storageError(err, "create temporary file")
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", storageError(err, "write temporary file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", storageError(err, "close temporary file")
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", storageError(err, "move file into place")
	}
	return target, nil
}
