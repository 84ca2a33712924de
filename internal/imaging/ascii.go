package imaging

import (
	"image"
	"strings"
)

// ramp runs from light to dark.
const ramp = " .:-=+*#%@"

// PreviewColumns is the width of the terminal rendering of a preview.
const PreviewColumns = 40

// ASCII draws src as text, cols characters wide. Terminal cells are about
// twice as tall as wide, so half as many lines are used. Transparent
// pixels count as white paper.
func ASCII(src image.Image, cols int) string {
	if cols < 1 {
		return ""
	}
	lines := max(cols/2, 1)
	small := image.NewRGBA(image.Rect(0, 0, cols, lines))
	scaleInto(small, src)

	var b strings.Builder
	for y := 0; y < lines; y++ {
		var line strings.Builder
		for x := 0; x < cols; x++ {
			line.WriteByte(ramp[shade(small, x, y)])
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// shade returns the ramp index for one pixel composited over white.
func shade(img *image.RGBA, x, y int) int {
	r, g, bl, a := img.At(x, y).RGBA()
	paper := 0xffff - a
	lum := (299*(r+paper) + 587*(g+paper) + 114*(bl+paper)) / 1000
	return int(((0xffff-lum)*uint32(len(ramp)-1) + 0x7fff) / 0xffff)
}

// PreviewText is the terminal form of the logo preview.
func (l *Logo) PreviewText() string {
	return ASCII(l.Preview(), PreviewColumns)
}
