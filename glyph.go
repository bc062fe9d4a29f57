package dotfactory

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/wbrown/dotfactory/imageutil"
	"github.com/zachomedia/go-bdf"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// GlyphSource supplies one bitmap per character. Every bitmap of a set
// is drawn into the same cell size so their borders share a coordinate
// system. Implementations must be safe for concurrent use.
type GlyphSource interface {
	Name() FontName
	// Classification tells foreground from background in the bitmaps
	// Glyph returns.
	Classification() Classification
	// Measure returns the cell r needs. offset is r's code-page offset.
	Measure(r rune, offset int) image.Point
	// Glyph draws r into a bitmap of size cell.
	Glyph(r rune, offset int, cell image.Point) (image.Image, error)
}

// alphaThreshold is the coverage above which an anti-aliased pixel
// becomes ink (25%).
const alphaThreshold = 64

// FaceSource draws characters with a font.Face.
type FaceSource struct {
	// font.Face implementations cache glyphs and are not safe for
	// concurrent use.
	mu   sync.Mutex
	face font.Face
	name FontName
}

// NewFaceSource wraps face. name is used for comments and variable names.
func NewFaceSource(face font.Face, name FontName) *FaceSource {
	return &FaceSource{face: face, name: name}
}

// Builtin returns the 7x13 fixed font of golang.org/x/image.
func Builtin() *FaceSource {
	return NewFaceSource(basicfont.Face7x13, FontName{Family: "Fixed", Size: 13})
}

// Name implements GlyphSource.
func (s *FaceSource) Name() FontName { return s.name }

// Classification implements GlyphSource.
func (s *FaceSource) Classification() Classification { return WhiteBackground() }

// Measure implements GlyphSource. The cell is as wide as the advance or
// the ink, whichever is wider, and as tall as the line.
func (s *FaceSource) Measure(r rune, _ int) image.Point {
	s.mu.Lock()
	defer s.mu.Unlock()

	str := string(r)
	m := s.face.Metrics()
	bounds, advance := font.BoundString(s.face, str)
	width := advance.Ceil()
	if inked := (bounds.Max.X - min(bounds.Min.X, 0)).Ceil(); inked > width {
		width = inked
	}
	return image.Pt(max(width, 1), max((m.Ascent+m.Descent).Ceil(), 1))
}

// Glyph implements GlyphSource. The baseline sits at the font ascent and
// ink left of the origin is shifted into the cell.
func (s *FaceSource) Glyph(r rune, _ int, cell image.Point) (image.Image, error) {
	dst := image.NewAlpha(image.Rect(0, 0, cell.X, cell.Y))

	s.mu.Lock()
	str := string(r)
	bounds, _ := font.BoundString(s.face, str)
	d := font.Drawer{
		Dst:  dst,
		Src:  image.Opaque,
		Face: s.face,
		Dot: fixed.Point26_6{
			X: -min(bounds.Min.X, 0),
			Y: s.face.Metrics().Ascent,
		},
	}
	d.DrawString(str)
	s.mu.Unlock()

	mono := imageutil.NewMonoImage(cell.X, cell.Y)
	for y := 0; y < cell.Y; y++ {
		for x := 0; x < cell.X; x++ {
			if dst.AlphaAt(x, y).A > alphaThreshold {
				mono.SetInk(x, y, true)
			}
		}
	}
	return mono, nil
}

// Close releases the face.
func (s *FaceSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.face.Close()
}

// LoadTrueType loads a TrueType font at size points and dpi.
func LoadTrueType(path string, size, dpi float64) (*FaceSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	f, err := freetype.ParseFont(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	name := FontName{
		Family: f.Name(truetype.NameIDFontFamily),
		Style:  f.Name(truetype.NameIDFontSubfamily),
		Size:   size,
	}
	if name.Family == "" {
		name.Family = baseName(path)
	}
	return NewFaceSource(face, name), nil
}

// LoadOpenType loads the first font of an OpenType file or collection
// (.otf, .ttf, .ttc) at size points and dpi.
func LoadOpenType(path string, size, dpi float64) (*FaceSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	f, err := coll.Font(0)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face for %s: %w", path, err)
	}

	var buf sfnt.Buffer
	name := FontName{Size: size}
	if name.Family, err = f.Name(&buf, sfnt.NameIDFamily); err != nil || name.Family == "" {
		name.Family = baseName(path)
	}
	name.Style, _ = f.Name(&buf, sfnt.NameIDSubfamily)
	return NewFaceSource(face, name), nil
}

// LoadBDF loads a bitmap font in Glyph Bitmap Distribution Format.
func LoadBDF(path string) (*FaceSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	f, err := bdf.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	name := xlfdName(f.Name)
	if name.Family == "" {
		name.Family = baseName(path)
	}
	name.Size = float64(f.Size)
	return NewFaceSource(f.NewFace(), name), nil
}

// LoadFont picks a loader by file extension. "builtin" selects Builtin.
func LoadFont(path string, size, dpi float64) (*FaceSource, error) {
	if path == "builtin" {
		return Builtin(), nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bdf":
		return LoadBDF(path)
	case ".ttf":
		return LoadTrueType(path, size, dpi)
	case ".otf", ".ttc", ".otc":
		return LoadOpenType(path, size, dpi)
	default:
		return nil, fmt.Errorf("%w: font format %q", ErrUnsupportedConfig, filepath.Ext(path))
	}
}

// xlfdName reads family and weight out of an X logical font description
// such as "-misc-fixed-bold-r-normal--13-120-75-75-c-70-iso10646-1".
// Other names are returned as the family.
func xlfdName(s string) FontName {
	if !strings.HasPrefix(s, "-") {
		return FontName{Family: s}
	}
	fields := strings.Split(s, "-")
	if len(fields) < 4 {
		return FontName{Family: s}
	}
	return FontName{Family: fields[2], Style: fields[3]}
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
