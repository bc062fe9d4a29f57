// Package dotfactory converts font glyphs and images into packed
// monochrome bitmaps, emitted as C source for pixel displays driven by
// microcontrollers.
package dotfactory

import (
	"context"
	"errors"
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/wbrown/dotfactory/charset"
	"github.com/wbrown/dotfactory/codepage"
	"github.com/wbrown/dotfactory/internal/debug"
)

// Generator runs the glyph pipeline. A Generator is safe for concurrent
// use; every call works on its own state.
type Generator struct {
	Config  Config
	Workers int

	debugSink debug.Sink
}

// GeneratorOption is a functional option for configuring a Generator.
type GeneratorOption func(*Generator)

// NewGenerator creates a Generator with DefaultConfig and one worker per
// CPU, then applies opts.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		Config:  DefaultConfig(),
		Workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// WithConfig sets the output configuration.
func WithConfig(cfg Config) GeneratorOption {
	return func(g *Generator) {
		g.Config = cfg
	}
}

// WithWorkers sets the number of glyphs processed in parallel.
func WithWorkers(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.Workers = n
		}
	}
}

// WithDebugSink traces every generation to sink while debug mode is on.
func WithDebugSink(sink debug.Sink) GeneratorOption {
	return func(g *Generator) {
		g.debugSink = sink
	}
}

// GenerateFont builds the font descriptor for the characters of text
// that the configured code page can encode. Text may contain
// <<start-end>> offset ranges.
//
// Glyphs are measured, drawn into a common cell and border-scanned in
// parallel. The union of their borders then drives a second parallel
// pass that crops and packs them. Glyphs without foreground pixels are
// dropped unless a space width gives them a size.
func (g *Generator) GenerateFont(ctx context.Context, text string, src GlyphSource) (*FontDescriptor, error) {
	start := time.Now()
	cfg := g.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	page, err := codepage.Lookup(cfg.CodePage)
	if err != nil {
		return nil, err
	}
	runes := charset.Build(text, page, cfg.GenerateSpaceCharacterBitmap)
	if len(runes) == 0 {
		return nil, ErrNoCharacters
	}

	session := debug.NewSession(g.debugSink)
	defer session.Close()
	session.Emit("generate", "Start", debug.GenerateStartData{
		Mode:       "font",
		Name:       src.Name().String(),
		CodePage:   page.ID(),
		Characters: len(runes),
		Workers:    g.Workers,
	})

	offsets := make([]int, len(runes))
	for i, r := range runes {
		offsets[i], _ = page.Encode(r)
	}

	sizes := make([]image.Point, len(runes))
	err = forEach(ctx, len(runes), g.Workers, func(i int) error {
		sizes[i] = src.Measure(runes[i], offsets[i])
		return nil
	})
	if err != nil {
		return nil, g.fail(session, err)
	}
	var cell image.Point
	for _, s := range sizes {
		cell.X, cell.Y = max(cell.X, s.X), max(cell.Y, s.Y)
	}
	session.Emit("generate", "Cell", debug.CellData{Width: cell.X, Height: cell.Y})

	cls := src.Classification()
	sources := make([]image.Image, len(runes))
	borders := make([]Border, len(runes))
	err = forEach(ctx, len(runes), g.Workers, func(i int) error {
		img, err := src.Glyph(runes[i], offsets[i], cell)
		if err != nil {
			return fmt.Errorf("failed to draw %q: %w", runes[i], err)
		}
		sources[i] = img
		borders[i] = DetectBorder(img, cls)
		b := borders[i]
		session.Emit("glyph", "Border", debug.BorderData{
			Index: i, Rune: runes[i],
			Left: b.Left, Top: b.Top, Right: b.Right, Bottom: b.Bottom,
			Blank: !b.HasContent(),
		})
		return nil
	})
	if err != nil {
		return nil, g.fail(session, err)
	}

	req := cropRequest(cfg)
	req.Common, req.HasCommon = CommonBorder(borders)
	req.MinSize = image.Pt(cfg.SpaceGenerationPixels, cell.Y)
	session.Emit("generate", "CommonBorder", debug.CommonBorderData{
		Found: req.HasCommon,
		Left:  req.Common.Left, Top: req.Common.Top,
		Right: req.Common.Right, Bottom: req.Common.Bottom,
	})

	chars := make([]*CharacterDescriptor, len(runes))
	err = forEach(ctx, len(runes), g.Workers, func(i int) error {
		chars[i] = &CharacterDescriptor{Char: runes[i], Offset: offsets[i]}
		glyph, err := Crop(sources[i], cls, borders[i], req)
		if errors.Is(err, ErrNoContent) {
			session.Emit("glyph", "Crop", debug.CropData{Index: i, Rune: runes[i], Skipped: "no content"})
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to crop %q: %w", runes[i], err)
		}
		if err := glyph.Pack(cfg.BitLayout, cfg.MSBFirst); err != nil {
			return err
		}
		chars[i].Glyph = glyph
		session.Emit("glyph", "Crop", debug.CropData{
			Index: i, Rune: runes[i],
			Width: glyph.Width(), Height: glyph.Height(), Bytes: len(glyph.Pages),
		})
		return nil
	})
	if err != nil {
		return nil, g.fail(session, err)
	}

	name := src.Name()
	fd, err := BuildFontDescriptor(cfg, name, page, chars)
	if err != nil {
		return nil, g.fail(session, err)
	}

	blocks := make([][]int, len(fd.Blocks))
	for i, b := range fd.Blocks {
		blocks[i] = []int{b.First().Offset, b.Last().Offset}
	}
	session.Emit("font", "Blocks", debug.BlocksData{Threshold: blockThreshold(cfg), Blocks: blocks})
	session.Emit("generate", "End", debug.GenerateEndData{
		Characters:  len(fd.Chars),
		BitmapBytes: fd.BitmapBytes(),
		ElapsedMs:   time.Since(start).Milliseconds(),
	})
	return fd, nil
}

// GenerateImage converts img, cropped to its own foreground, into a
// bitmap. A blank image yields ErrNoContent.
func (g *Generator) GenerateImage(ctx context.Context, img image.Image, cls Classification, name string) (*ImageDescriptor, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	session := debug.NewSession(g.debugSink)
	defer session.Close()
	session.Emit("generate", "Start", debug.GenerateStartData{Mode: "image", Name: name, Workers: 1})

	id, err := BuildImageDescriptor(g.Config, img, cls, name)
	if err != nil {
		return nil, g.fail(session, err)
	}
	session.Emit("generate", "End", debug.GenerateEndData{
		Characters:  1,
		BitmapBytes: len(id.Glyph.Pages),
		ElapsedMs:   time.Since(start).Milliseconds(),
	})
	return id, nil
}

func (g *Generator) fail(session *debug.Session, err error) error {
	kind := "error"
	switch {
	case errors.Is(err, ErrNoCharacters):
		kind = "no_characters"
	case errors.Is(err, ErrNoContent):
		kind = "no_content"
	case errors.Is(err, ErrUnsupportedConfig):
		kind = "unsupported_config"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		kind = "canceled"
	}
	session.Emit("generate", "Error", debug.ErrorData{Type: kind, Message: err.Error()})
	return err
}
