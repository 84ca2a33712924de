// Package imaging loads the optional company logo and prepares it for
// the PDF renderer and the session preview.
package imaging

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
	"golang.org/x/image/draw"

	// decoders accepted for logos
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	ierr "github.com/diewo77/go-quotations/internal/errors"
)

// PreviewSize is the edge of the square session preview, in pixels.
const PreviewSize = 100

// Logo is a decoded logo. PNG holds the picture re-encoded as PNG, the
// only format handed to the renderer.
type Logo struct {
	Path   string
	Format string
	MIME   string
	Width  int
	Height int
	PNG    []byte

	img image.Image
}

// Name is the file name without its directory.
func (l *Logo) Name() string {
	return filepath.Base(l.Path)
}

// Loader reads logo files from disk.
type Loader struct {
	maxBytes int64
}

// NewLoader returns a Loader refusing files larger than maxBytes
// (0 means no limit).
func NewLoader(maxBytes int64) *Loader {
	return &Loader{maxBytes: maxBytes}
}

func loadError(err error, path, reason string) error {
	return ierr.WithError(err).
		WithMessagef("load logo %s", path).
		WithHintf("Failed to load image: %s", reason).
		Mark(ierr.ErrImage)
}

// Load reads, sniffs and decodes the image at path.
func (l *Loader) Load(path string) (*Logo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, loadError(err, path, err.Error())
	}
	if info.IsDir() {
		return nil, loadError(ierr.NewError("is a directory").Mark(ierr.ErrImage), path, "not a file")
	}
	if l.maxBytes > 0 && info.Size() > l.maxBytes {
		return nil, loadError(ierr.NewErrorf("%d bytes", info.Size()).Mark(ierr.ErrImage), path, "file too large")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, loadError(err, path, err.Error())
	}

	kind, err := filetype.Image(data)
	if err != nil || kind == filetype.Unknown {
		if err == nil {
			err = ierr.NewError("unknown image type").Mark(ierr.ErrImage)
		}
		return nil, loadError(err, path, "not an image file")
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, loadError(err, path, "unsupported "+kind.Extension+" image")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, loadError(err, path, err.Error())
	}

	b := img.Bounds()
	return &Logo{
		Path:   path,
		Format: format,
		MIME:   kind.MIME.Value,
		Width:  b.Dx(),
		Height: b.Dy(),
		PNG:    buf.Bytes(),
		img:    img,
	}, nil
}

// Thumbnail scales src to a size×size picture, ignoring aspect ratio.
func Thumbnail(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	scaleInto(dst, src)
	return dst
}

func scaleInto(dst *image.RGBA, src image.Image) {
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
}

// Preview is the fixed-size thumbnail shown next to the logo selector.
func (l *Logo) Preview() *image.RGBA {
	return Thumbnail(l.img, PreviewSize)
}
