package dotfactory

import (
	"image"
	"strings"
	"testing"

	"github.com/wbrown/dotfactory/codepage"
	"github.com/wbrown/dotfactory/imageutil"
)

// asciiSource is a GlyphSource drawn from ASCII art, '#' being ink.
type asciiSource struct {
	name   FontName
	glyphs map[rune][]string
}

func (s asciiSource) Name() FontName                { return s.name }
func (s asciiSource) Classification() Classification { return WhiteBackground() }

func (s asciiSource) Measure(r rune, _ int) image.Point {
	rows := s.glyphs[r]
	w := 0
	for _, row := range rows {
		w = max(w, len(row))
	}
	return image.Pt(max(w, 1), max(len(rows), 1))
}

func (s asciiSource) Glyph(r rune, _ int, cell image.Point) (image.Image, error) {
	img := imageutil.CreateSolidImage(cell.X, cell.Y, imageutil.RGB{R: 255, G: 255, B: 255})
	for y, row := range s.glyphs[r] {
		for x := 0; x < len(row); x++ {
			if row[x] == '#' {
				img.SetRGB(x, y, imageutil.RGB{})
			}
		}
	}
	return img, nil
}

func mustPage(t *testing.T, id int) *codepage.Page {
	t.Helper()
	page, err := codepage.Lookup(id)
	if err != nil {
		t.Fatalf("Lookup(%d): %v", id, err)
	}
	return page
}

// mono builds a bitmap from ASCII art.
func mono(rows ...string) *imageutil.GrayImage {
	return imageutil.ToGrayscale(imageutil.CreateGlyphImage(rows...))
}

// diffLines reports the first differing line of two texts.
func diffLines(t *testing.T, got, want string) {
	t.Helper()
	if got == want {
		return
	}
	g, w := strings.Split(got, "\n"), strings.Split(want, "\n")
	for i := 0; i < max(len(g), len(w)); i++ {
		var gl, wl string
		if i < len(g) {
			gl = g[i]
		}
		if i < len(w) {
			wl = w[i]
		}
		if gl != wl {
			t.Errorf("line %d:\n got  %q\n want %q", i+1, gl, wl)
			return
		}
	}
}
