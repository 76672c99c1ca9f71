package render

import (
	"image"
	"image/color"
)

// TextColor returns a colour that stands out against the mean colour of box
// in img: each channel is 255 minus one and a half times the mean, floored
// at zero. The result is opaque. A box outside the image yields black.
func TextColor(img image.Image, box image.Rectangle) color.NRGBA {
	box = box.Canon().Intersect(img.Bounds())
	if box.Empty() {
		return color.NRGBA{A: 255}
	}

	var sum [3]float64
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			sum[0] += float64(c.R)
			sum[1] += float64(c.G)
			sum[2] += float64(c.B)
		}
	}
	n := float64(box.Dx() * box.Dy())
	channel := func(total float64) uint8 {
		return uint8(max(0, 255-total/n*1.5))
	}
	return color.NRGBA{R: channel(sum[0]), G: channel(sum[1]), B: channel(sum[2]), A: 255}
}
