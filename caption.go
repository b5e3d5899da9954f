package fractal

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// captionMargin is the gap in pixels between a caption and the pixmap edge.
const captionMargin = 4

// DrawCaption stamps a single line of text in the bottom-left corner of pm
// using a 7×13 bitmap face. Hosts use it to label a render with its
// parameters. Text that does not fit is cut off at the pixmap edge.
func DrawCaption(pm *Pixmap, text string, c RGBA) {
	if text == "" || pm.Width() == 0 {
		return
	}
	face := basicfont.Face7x13
	baseline := pm.Height() - captionMargin - face.Metrics().Descent.Ceil()

	d := &font.Drawer{
		Dst:  pm,
		Src:  image.NewUniform(c.Color()),
		Face: face,
		Dot:  fixed.P(captionMargin, baseline),
	}
	d.DrawString(text)
}

// CaptionWidth returns the advance of text in pixels when drawn by
// DrawCaption.
func CaptionWidth(text string) int {
	return font.MeasureString(basicfont.Face7x13, text).Ceil()
}
