package imageutil

import (
	"image"
	"image/color"
)

// Luminance returns the BT.601 luma of c: Y = 0.299*R + 0.587*G + 0.114*B,
// the weighting OpenCV uses for COLOR_BGR2GRAY.
func Luminance(c color.RGBA) uint8 {
	lum := (299*int(c.R) + 587*int(c.G) + 114*int(c.B) + 500) / 1000
	if lum > 255 {
		lum = 255
	}
	return uint8(lum)
}

// Lightness returns the HSL lightness of c in [0, 1]: the mean of the
// largest and smallest channel.
func Lightness(c color.RGBA) float64 {
	hi := max(c.R, c.G, c.B)
	lo := min(c.R, c.G, c.B)
	return (float64(hi) + float64(lo)) / (2 * 255)
}

// ToGrayscale converts an image to luma.
func ToGrayscale(img image.Image) *GrayImage {
	bounds := img.Bounds()
	gray := NewGrayImage(bounds.Dx(), bounds.Dy())

	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			c := color.RGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA)
			gray.Gray.SetGray(x, y, color.Gray{Y: Luminance(c)})
		}
	}
	return gray
}

// DistinctColors returns every colour of img with its pixel count, in the
// order the colours are first met scanning rows top to bottom.
func DistinctColors(img image.Image) *OrderedMap[color.RGBA, int] {
	bounds := img.Bounds()
	colors := NewOrderedMap[color.RGBA, int]()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			n, _ := colors.Get(c)
			colors.Set(c, n+1)
		}
	}
	return colors
}
