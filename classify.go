package dotfactory

import (
	"image"
	"image/color"

	"github.com/wbrown/dotfactory/imageutil"
)

// Classification decides which pixel colours are background. It is an
// immutable value: every constructor copies its input, so one
// Classification may be shared by concurrent workers.
type Classification struct {
	background map[color.RGBA]bool
	// unknown is the answer for colours missing from the table.
	unknown bool
}

// WhiteBackground classifies opaque white as background and everything
// else as foreground. Rendered glyphs and cropped bitmaps use it.
func WhiteBackground() Classification {
	return Classification{
		background: map[color.RGBA]bool{{R: 0xff, G: 0xff, B: 0xff, A: 0xff}: true},
	}
}

// NewClassification builds a classification from an explicit table.
// Colours absent from the table are foreground.
func NewClassification(table map[color.Color]bool) Classification {
	c := Classification{background: make(map[color.RGBA]bool, len(table))}
	for col, bg := range table {
		c.background[toRGBA(col)] = bg
	}
	return c
}

// BackgroundColors classifies exactly the listed colours as background.
func BackgroundColors(colors ...color.Color) Classification {
	table := make(map[color.Color]bool, len(colors))
	for _, col := range colors {
		table[col] = true
	}
	return NewClassification(table)
}

// AutoClassification classifies the colours of img by lightness: a
// colour is background when its HSL lightness is at least the mean
// lightness of all distinct colours. Fully transparent colours are always
// background.
func AutoClassification(img image.Image) Classification {
	palette := imageutil.DistinctColors(img)
	if palette.Len() == 0 {
		return WhiteBackground()
	}

	var sum float64
	palette.Iterate(func(col color.RGBA, _ int) {
		sum += imageutil.Lightness(col)
	})
	mean := sum / float64(palette.Len())

	c := Classification{background: make(map[color.RGBA]bool, palette.Len())}
	palette.Iterate(func(col color.RGBA, _ int) {
		c.background[col] = col.A == 0 || imageutil.Lightness(col) >= mean
	})
	return c
}

// ThresholdClassification classifies the colours of img by BT.601 luma:
// colours at or above level are background.
func ThresholdClassification(img image.Image, level uint8) Classification {
	palette := imageutil.DistinctColors(img)
	c := Classification{background: make(map[color.RGBA]bool, palette.Len())}
	palette.Iterate(func(col color.RGBA, _ int) {
		c.background[col] = col.A == 0 || imageutil.Luminance(col) >= level
	})
	return c
}

// Invert returns a classification with background and foreground
// swapped.
func (c Classification) Invert() Classification {
	inv := Classification{
		background: make(map[color.RGBA]bool, len(c.background)),
		unknown:    !c.unknown,
	}
	for col, bg := range c.background {
		inv.background[col] = !bg
	}
	return inv
}

// IsBackground reports whether col is a background colour.
func (c Classification) IsBackground(col color.Color) bool {
	if bg, ok := c.background[toRGBA(col)]; ok {
		return bg
	}
	return c.unknown
}

// Colors returns the number of colours with an explicit entry.
func (c Classification) Colors() int {
	return len(c.background)
}

func toRGBA(col color.Color) color.RGBA {
	return color.RGBAModel.Convert(col).(color.RGBA)
}
