// Package shell asks the operating system to open a file with its
// default application.
package shell

import (
	"context"
	"os/exec"
	"strings"

	ierr "github.com/diewo77/go-quotations/internal/errors"
)

// Opener opens a file in the platform's default viewer.
type Opener interface {
	Open(ctx context.Context, path string) error
}

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRun(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// SystemOpener runs the platform's "open with default app" command.
type SystemOpener struct {
	run runFunc
}

func NewSystemOpener() *SystemOpener {
	return &SystemOpener{run: execRun}
}

// Open launches the default handler for path.
func (o *SystemOpener) Open(ctx context.Context, path string) error {
	name, args := openCommand(path)
	out, err := o.run(ctx, name, args...)
	if err != nil {
		detail := strings.TrimSpace(string(out))
		if detail == "" {
			detail = err.Error()
		}
		return ierr.WithError(err).
			WithMessagef("%s %s", name, strings.Join(args, " ")).
			WithHintf("The quotation was saved but could not be opened: %s", detail).
			Mark(ierr.ErrOpen)
	}
	return nil
}

// NopOpener leaves the file alone.
type NopOpener struct{}

func (NopOpener) Open(context.Context, string) error { return nil }
