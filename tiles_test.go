package dotfactory

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/wbrown/dotfactory/codepage"
	"github.com/wbrown/dotfactory/imageutil"
)

// tileSheet is an 8x4 sheet. Cut into 2x2 tiles, tiles 1, 2, 4 and 6
// are blank.
func tileSheet() *imageutil.RGBAImage {
	return imageutil.CreateGlyphImage(
		"#.....#.",
		"#.....#.",
		"...#...#",
		"...#...#",
	)
}

func TestTileSheetGlyphs(t *testing.T) {
	t.Parallel()

	ts, err := NewTileSheet(tileSheet(), WhiteBackground(), "tiles", image.Pt(4, 2), 0)
	if err != nil {
		t.Fatal(err)
	}
	if ts.Tiles() != 4 {
		t.Fatalf("Tiles = %d, want 4", ts.Tiles())
	}
	if got := ts.Measure('x', 3); got != image.Pt(4, 2) {
		t.Errorf("Measure = %v, want 4x2", got)
	}

	want := []string{"#...", "..#.", "...#", "...#"}
	for i, row := range want {
		img, err := ts.Glyph(rune(i), i, image.Point{})
		if err != nil {
			t.Fatalf("Glyph(%d): %v", i, err)
		}
		got := imageutil.MonoString(imageutil.ToGrayscale(img))
		if got[0] != row {
			t.Errorf("tile %d first row = %q, want %q", i, got[0], row)
		}
	}
	if _, err := ts.Glyph('z', 4, image.Point{}); err == nil {
		t.Error("offset past the last tile should fail")
	}
}

func TestTileSheetDefaults(t *testing.T) {
	t.Parallel()

	ts, err := NewTileSheet(imageutil.NewRGBAImage(64, 32), WhiteBackground(), "grid", image.Point{}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := ts.Measure(0, 0); got != image.Pt(4, 2) {
		t.Errorf("default tile = %v, want 4x2", got)
	}
	if ts.Tiles() != 256 {
		t.Errorf("Tiles = %d, want 256", ts.Tiles())
	}

	_, err = NewTileSheet(imageutil.NewRGBAImage(8, 8), WhiteBackground(), "tiny", image.Point{}, 0)
	if !errors.Is(err, ErrUnsupportedConfig) {
		t.Errorf("err = %v, want ErrUnsupportedConfig", err)
	}
}

func TestGenerateFontFromTiles(t *testing.T) {
	t.Parallel()

	ts, err := NewTileSheet(tileSheet(), WhiteBackground(), "tiles", image.Pt(2, 2), 4)
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.CodePage = codepage.IBM437
	cfg.PaddingWidth = PaddingNone
	fd, err := NewGenerator(WithConfig(cfg)).GenerateFont(context.Background(), "<<1-7>>", ts)
	if err != nil {
		t.Fatal(err)
	}
	// Offset 0 is not a character. Blank tiles take the space width.
	if len(fd.Chars) != 7 {
		t.Fatalf("chars = %d, want 7", len(fd.Chars))
	}
	for _, c := range fd.Chars {
		if c.Glyph.Width() != 2 || c.Glyph.Height() != 2 {
			t.Errorf("offset %d is %dx%d, want 2x2", c.Offset, c.Glyph.Width(), c.Glyph.Height())
		}
	}
	if fd.Name.String() != "tiles" {
		t.Errorf("name = %q", fd.Name.String())
	}
}
