package render

import (
	"image"
	"image/color"
	"image/color/palette"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// StackTop places top above img. The result is as wide as the wider of the
// two; uncovered pixels are transparent.
func StackTop(top, img image.Image) *image.NRGBA {
	tb, ib := top.Bounds(), img.Bounds()
	dst := imaging.New(max(tb.Dx(), ib.Dx()), tb.Dy()+ib.Dy(), color.Transparent)
	dst = imaging.Paste(dst, top, image.Pt(0, 0))
	return imaging.Paste(dst, img, image.Pt(0, tb.Dy()))
}

// ForWeb maps img onto the web-safe palette without dithering.
func ForWeb(img image.Image) *image.Paletted {
	b := img.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.WebSafe)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
