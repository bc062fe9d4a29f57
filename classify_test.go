package dotfactory

import (
	"image/color"
	"testing"

	"github.com/wbrown/dotfactory/imageutil"
)

var (
	white       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	black       = color.RGBA{A: 0xff}
	darkGray    = color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}
	lightGray   = color.RGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff}
	transparent = color.RGBA{}
)

func TestClassifications(t *testing.T) {
	t.Parallel()

	img := imageutil.NewRGBAImage(4, 1)
	for x, c := range []color.RGBA{white, black, darkGray, lightGray} {
		img.SetRGBA(x, 0, c)
	}

	tests := []struct {
		name string
		cls  Classification
		want map[color.RGBA]bool // colour -> background
	}{
		{"white background", WhiteBackground(), map[color.RGBA]bool{
			white: true, black: false, lightGray: false, transparent: false,
		}},
		{"explicit colours", BackgroundColors(white, lightGray), map[color.RGBA]bool{
			white: true, lightGray: true, darkGray: false, black: false,
		}},
		{"auto by lightness", AutoClassification(img), map[color.RGBA]bool{
			white: true, lightGray: true, darkGray: false, black: false,
		}},
		{"threshold", ThresholdClassification(img, 0x30), map[color.RGBA]bool{
			white: true, lightGray: true, darkGray: true, black: false,
		}},
		{"inverted", WhiteBackground().Invert(), map[color.RGBA]bool{
			white: false, black: true, darkGray: true,
		}},
		{"table", NewClassification(map[color.Color]bool{color.Black: true, color.White: false}), map[color.RGBA]bool{
			black: true, white: false, darkGray: false,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for col, want := range tt.want {
				if got := tt.cls.IsBackground(col); got != want {
					t.Errorf("IsBackground(%v) = %v, want %v", col, got, want)
				}
			}
		})
	}
}

func TestAutoClassificationTransparent(t *testing.T) {
	t.Parallel()

	img := imageutil.NewRGBAImage(2, 1)
	img.SetRGBA(0, 0, transparent)
	img.SetRGBA(1, 0, white)
	cls := AutoClassification(img)
	// Transparent black is darker than the mean but still background.
	if !cls.IsBackground(transparent) {
		t.Error("transparent pixels should be background")
	}
	if cls.Colors() != 2 {
		t.Errorf("Colors = %d, want 2", cls.Colors())
	}
}

func TestAutoClassificationEmpty(t *testing.T) {
	t.Parallel()

	cls := AutoClassification(imageutil.NewRGBAImage(0, 0))
	if !cls.IsBackground(white) || cls.IsBackground(black) {
		t.Error("an empty image should fall back to a white background")
	}
}
