package dotfactory

import (
	"fmt"
	"image"
	"image/draw"
)

// TileSheet is a GlyphSource cut from one image holding a grid of
// equally sized tiles. The tile at index i (counted left to right, top to
// bottom) is the character at code-page offset i.
type TileSheet struct {
	sheet *image.RGBA
	cls   Classification
	name  FontName

	tile         image.Point
	tilesPerLine int
}

// NewTileSheet cuts img into tiles of size tile. A zero tile size splits
// the image into a 16x16 grid, and tilesPerLine <= 0 uses as many tiles
// as fit across the image.
func NewTileSheet(img image.Image, cls Classification, name string, tile image.Point, tilesPerLine int) (*TileSheet, error) {
	b := img.Bounds()
	if tile.X <= 0 {
		tile.X = b.Dx() / 16
	}
	if tile.Y <= 0 {
		tile.Y = b.Dy() / 16
	}
	if tile.X <= 0 || tile.Y <= 0 {
		return nil, fmt.Errorf("%w: tile size %v for a %dx%d sheet", ErrUnsupportedConfig, tile, b.Dx(), b.Dy())
	}
	if tilesPerLine <= 0 {
		tilesPerLine = b.Dx() / tile.X
	}

	sheet := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(sheet, sheet.Bounds(), img, b.Min, draw.Src)
	return &TileSheet{
		sheet:        sheet,
		cls:          cls,
		name:         FontName{Family: name},
		tile:         tile,
		tilesPerLine: tilesPerLine,
	}, nil
}

// Name implements GlyphSource.
func (t *TileSheet) Name() FontName { return t.name }

// Classification implements GlyphSource.
func (t *TileSheet) Classification() Classification { return t.cls }

// Measure implements GlyphSource. Every tile has the same size.
func (t *TileSheet) Measure(rune, int) image.Point { return t.tile }

// Tiles returns the number of whole tiles on the sheet.
func (t *TileSheet) Tiles() int {
	rows := t.sheet.Bounds().Dy() / t.tile.Y
	return rows * t.tilesPerLine
}

// Glyph implements GlyphSource. Offsets past the last tile are an error.
// Tiles are never resized, so cell is always the tile size.
func (t *TileSheet) Glyph(r rune, offset int, _ image.Point) (image.Image, error) {
	if offset < 0 || offset >= t.Tiles() {
		return nil, fmt.Errorf("failed to cut %q: offset %d outside %d tiles", r, offset, t.Tiles())
	}
	origin := image.Pt((offset%t.tilesPerLine)*t.tile.X, (offset/t.tilesPerLine)*t.tile.Y)
	dst := image.NewRGBA(image.Rectangle{Max: t.tile})
	draw.Draw(dst, dst.Bounds(), t.sheet, origin, draw.Src)
	return dst, nil
}
