package dotfactory

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/wbrown/dotfactory/codepage"
)

var testSource = asciiSource{
	name: FontName{Family: "Test", Size: 5},
	glyphs: map[rune][]string{
		'A': {"....", ".##.", "#..#", "####", "#..#"},
		'B': {"....", "##..", "#.#.", "##..", "#.#."},
	},
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.CodePage = codepage.USASCII
	return cfg
}

func generate(t *testing.T, cfg Config, text string, src GlyphSource) *FontDescriptor {
	t.Helper()
	fd, err := NewGenerator(WithConfig(cfg), WithWorkers(2)).GenerateFont(context.Background(), text, src)
	if err != nil {
		t.Fatalf("GenerateFont: %v", err)
	}
	return fd
}

func TestGenerateFontOutput(t *testing.T) {
	t.Parallel()

	fd := generate(t, testConfig(), "BA", testSource)
	out, err := fd.Render()
	if err != nil {
		t.Fatal(err)
	}

	wantSource := strings.Join([]string{
		"// ",
		"//  Font data for Test 5pt",
		"// ",
		"",
		"// Character bitmaps for Test 5pt ",
		"const uint_8 test_5ptBitmaps[] = ",
		"{",
		"\t// @0 'A' (4 pixels wide)",
		"\t0x60, //  ## ",
		"\t0x90, // #  #",
		"\t0xF0, // ####",
		"\t0x90, // #  #",
		"",
		"\t// @4 'B' (3 pixels wide)",
		"\t0xC0, // ## ",
		"\t0xA0, // # #",
		"\t0xC0, // ## ",
		"\t0xA0, // # #",
		"};",
		"",
		"// Character descriptors for Test 5pt",
		"// { [Char width in bits], [Offset into test_5ptCharBitmaps in bytes] }",
		"const FONT_CHAR_INFO test_5ptDescriptors[] = ",
		"{",
		"\t{4, 0},       // A",
		"\t{3, 4},       // B",
		"};",
		"",
		"// Font information for Test 5pt ",
		"const FONT_INFO test_5ptFontInfo =",
		"{",
		"\t1, //  Character height",
		"\t65, //  First character 'A'",
		"\t66, //  Last character 'B'",
		"\t2, //  Width, in pixels, of space character",
		"\ttest_5ptDescriptors, //  Character descriptor array",
		"\ttest_5ptBitmaps, //  Character bitmap array",
		"\t20127, //  CodePage us-ascii",
		"};",
		"",
	}, "\n")
	wantHeader := "// Font data for Test 5pt \n" +
		"extern const FONT_INFO test_5ptFontInfo;\n" +
		"extern const FONT_CHAR_INFO test_5ptDescriptors[];\n"

	diffLines(t, out.Source, wantSource)
	diffLines(t, out.Header, wantHeader)
	if fd.BitmapBytes() != 8 {
		t.Errorf("BitmapBytes = %d, want 8", fd.BitmapBytes())
	}
}

func TestGenerateFontBlocks(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.GenerateLookupBlocks = true
	cfg.LookupBlocksNewAfterCharCount = 10
	cfg.CommentVariableName = false
	cfg.CommentCharVisualizer = false
	cfg.CommentCharDescriptor = false

	src := asciiSource{name: FontName{Family: "Gap"}, glyphs: map[rune][]string{
		'!': {"#"}, '#': {"#"}, 'z': {"#"},
	}}
	fd := generate(t, cfg, "!#z", src)
	if len(fd.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(fd.Blocks))
	}
	out, err := fd.Render()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"const FONT_CHAR_INFO gapDescriptorsBlock0[] = \n{\n\t{1, 0},       // !\n\t{0, 0},\n\t{1, 1},       // #\n};\n",
		"const FONT_CHAR_INFO gapDescriptorsBlock1[] = \n{\n\t{1, 2},       // z\n};\n",
		"const FONT_CHAR_INFO_LOOKUP gapBlockLookup[] = \n{\n\t{33, 35, &gapDescriptorsBlock0},\n\t{122, 122, &gapDescriptorsBlock1},\n};\n",
		"\tgapBlockLookup, //  Character block lookup\n\tNULL, //  Character descriptor array\n",
	} {
		if !strings.Contains(out.Source, want) {
			t.Errorf("source missing %q\n%s", want, out.Source)
		}
	}
	if want := "extern const FONT_CHAR_INFO_LOOKUP gapBlockLookup[];\n"; !strings.Contains(out.Header, want) {
		t.Errorf("header missing %q\n%s", want, out.Header)
	}
}

func TestGenerateFontSingleBlockLookup(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.GenerateLookupBlocks = true
	fd := generate(t, cfg, "AB", testSource)
	out, err := fd.Render()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.Source, "\tNULL, //  Character block lookup\n\ttest_5ptDescriptors, //  Character descriptor array\n") {
		t.Errorf("single block should point at the descriptor array:\n%s", out.Source)
	}
	if strings.Contains(out.Source, "BlockLookup") {
		t.Error("single block should not emit a lookup array")
	}
}

func TestGenerateFontSpace(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.GenerateSpaceCharacterBitmap = true
	cfg.SpaceGenerationPixels = 3
	fd := generate(t, cfg, "A A", testSource)

	if len(fd.Chars) != 2 || fd.First.Char != ' ' {
		t.Fatalf("chars = %d, first %q; want space then A", len(fd.Chars), fd.First.Char)
	}
	space := fd.First.Glyph
	// Fixed height removal gives the space the common height of 'A'.
	if space.Width() != 3 || space.Height() != 4 {
		t.Errorf("space is %dx%d, want 3x4", space.Width(), space.Height())
	}
	for i, b := range space.Pages {
		if b != 0 {
			t.Errorf("space byte %d = %#x, want 0", i, b)
		}
	}
	out, err := fd.Render()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.Source, "Width, in pixels, of space character") {
		t.Error("space width line should be omitted when the space has a bitmap")
	}
}

func TestGenerateFontRotatedDescriptors(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Rotation = Rotate90
	cfg.DescCharHeight = DisplayInBits
	fd := generate(t, cfg, "AB", testSource)

	b := fd.Last.Glyph
	if b.Size != (image.Point{3, 4}) || b.Width() != 4 || b.Height() != 3 {
		t.Fatalf("'B' size %v bitmap %dx%d, want size (3,4) bitmap 4x3", b.Size, b.Width(), b.Height())
	}
	out, err := fd.Render()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"\t// @0 'A' (4 pixels wide)\n",
		"\t// @4 'B' (3 pixels wide)\n",
		"\t{4, 4, 0},    // A\n",
		"\t{3, 4, 4},    // B\n",
	} {
		if !strings.Contains(out.Source, want) {
			t.Errorf("source missing %q", want)
		}
	}
	if fd.BitmapBytes() != 7 {
		t.Errorf("BitmapBytes = %d, want 7", fd.BitmapBytes())
	}
}

func TestGenerateFontDisplayName(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.DisplayName = "My Font"
	out, err := generate(t, cfg, "A", testSource).Render()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Font data for My Font", "const uint_8 my_FontBitmaps[]", "my_FontFontInfo"} {
		if !strings.Contains(out.Source, want) {
			t.Errorf("source missing %q", want)
		}
	}
}

func TestGenerateFontErrors(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.SpaceGenerationPixels = 0
	g := NewGenerator(WithConfig(cfg))
	tests := []struct {
		name string
		text string
		want error
	}{
		{"nothing encodable", "€\n\t", ErrNoCharacters},
		{"only blank glyphs", "x", ErrNoCharacters},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.GenerateFont(context.Background(), tt.text, testSource)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	bad := testConfig()
	bad.BitLayout = BitLayout(7)
	_, err := NewGenerator(WithConfig(bad)).GenerateFont(context.Background(), "A", testSource)
	if !errors.Is(err, ErrUnsupportedConfig) {
		t.Errorf("err = %v, want ErrUnsupportedConfig", err)
	}
}

func TestBuildFontDescriptorOrder(t *testing.T) {
	t.Parallel()

	page := mustPage(t, codepage.USASCII)
	glyph := func() *Glyph {
		g := &Glyph{Bitmap: mono("#"), Size: mono("#").Bounds().Size()}
		if err := g.Pack(RowMajor, true); err != nil {
			t.Fatal(err)
		}
		return g
	}
	chars := []*CharacterDescriptor{
		{Char: 'c', Offset: 99, Glyph: glyph()},
		{Char: 'a', Offset: 97, Glyph: glyph()},
		{Char: 'b', Offset: 98},
	}
	fd, err := BuildFontDescriptor(testConfig(), FontName{Family: "X"}, page, chars)
	if err != nil {
		t.Fatal(err)
	}
	if len(fd.Chars) != 2 || fd.First.Char != 'a' || fd.Last.Char != 'c' {
		t.Fatalf("chars = %v..%v (%d)", fd.First.Char, fd.Last.Char, len(fd.Chars))
	}
	if fd.Last.ByteOffset != 1 {
		t.Errorf("last byte offset = %d, want 1", fd.Last.ByteOffset)
	}
	if got := len(fd.Blocks[0].Entries); got != 3 {
		t.Errorf("block entries = %d, want 3 with a placeholder for 'b'", got)
	}
}
