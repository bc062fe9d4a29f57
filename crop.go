package dotfactory

import (
	"fmt"
	"image"

	"github.com/wbrown/dotfactory/imageutil"
)

// Glyph is one source bitmap on its way to bytes: the untouched source,
// how its colours are classified, where its foreground is, and the
// monochrome bitmap left after cropping, rotating and flipping.
type Glyph struct {
	Source         image.Image
	Classification Classification
	// Border is the foreground extent of Source.
	Border Border

	// Bitmap holds only imageutil.Ink and imageutil.Paper.
	Bitmap *imageutil.GrayImage
	// Size is the cropped size before rotation.
	Size image.Point
	// Pages is Bitmap packed by Pack. It is nil until packed.
	Pages []byte
}

// Width is the width of the encoded bitmap.
func (g *Glyph) Width() int { return g.Bitmap.Width() }

// Height is the height of the encoded bitmap.
func (g *Glyph) Height() int { return g.Bitmap.Height() }

// Pack packs the bitmap into g.Pages.
func (g *Glyph) Pack(layout BitLayout, msbFirst bool) error {
	pages, err := Pack(g.Bitmap, WhiteBackground(), layout, msbFirst)
	if err != nil {
		return err
	}
	g.Pages = pages
	return nil
}

// CropRequest describes how a bitmap is cut out of its source.
type CropRequest struct {
	// Common is the union border of every glyph in the set. It is used
	// by PaddingFixed when HasCommon is set.
	Common    Border
	HasCommon bool

	// MinSize is the extent a blank source falls back to. A zero
	// dimension makes blank sources an error.
	MinSize image.Point

	// Height trims rows, Width trims columns.
	Height, Width PaddingRemoval

	Rotation     Rotation
	FlipX, FlipY bool
}

func cropRequest(cfg Config) CropRequest {
	return CropRequest{
		Height:   cfg.PaddingHeight,
		Width:    cfg.PaddingWidth,
		Rotation: cfg.Rotation,
		FlipX:    cfg.FlipHorizontal,
		FlipY:    cfg.FlipVertical,
	}
}

// Crop cuts the region selected by req out of img, turns it into a
// monochrome bitmap and applies the rotation and flips. own is the border
// DetectBorder found for img.
//
// A blank img yields ErrNoContent unless req.MinSize is non-zero in both
// dimensions, in which case the blank region [0, MinSize) is kept.
func Crop(img image.Image, cls Classification, own Border, req CropRequest) (*Glyph, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if !own.Valid() && (req.MinSize.X == 0 || req.MinSize.Y == 0) {
		return nil, ErrNoContent
	}
	extent := own
	if extent.Right < extent.Left {
		extent.Left, extent.Right = 0, req.MinSize.X-1
	}
	if extent.Bottom < extent.Top {
		extent.Top, extent.Bottom = 0, req.MinSize.Y-1
	}

	var err error
	var r Border
	if r.Left, r.Right, err = cropAxis(req.Width, extent.Left, extent.Right,
		req.Common.Left, req.Common.Right, req.HasCommon, w); err != nil {
		return nil, err
	}
	if r.Top, r.Bottom, err = cropAxis(req.Height, extent.Top, extent.Bottom,
		req.Common.Top, req.Common.Bottom, req.HasCommon, h); err != nil {
		return nil, err
	}
	r.Left, r.Top = max(r.Left, 0), max(r.Top, 0)
	r.Right, r.Bottom = min(r.Right, w-1), min(r.Bottom, h-1)
	if !r.HasContent() {
		return nil, ErrNoContent
	}

	mono := imageutil.NewMonoImage(r.Width(), r.Height())
	for y := 0; y < r.Height(); y++ {
		for x := 0; x < r.Width(); x++ {
			col := img.At(bounds.Min.X+r.Left+x, bounds.Min.Y+r.Top+y)
			if !cls.IsBackground(col) {
				mono.SetInk(x, y, true)
			}
		}
	}

	degrees, err := req.Rotation.degrees()
	if err != nil {
		return nil, err
	}
	bitmap, err := imageutil.RotateFlip(mono, degrees, req.FlipX, req.FlipY)
	if err != nil {
		return nil, fmt.Errorf("failed to transform bitmap: %w", err)
	}

	return &Glyph{
		Source:         img,
		Classification: cls,
		Border:         own,
		Bitmap:         bitmap,
		Size:           image.Pt(r.Width(), r.Height()),
	}, nil
}

// cropAxis picks the first and last kept coordinate along one axis.
func cropAxis(p PaddingRemoval, ownLo, ownHi, commonLo, commonHi int, hasCommon bool, size int) (int, int, error) {
	switch p {
	case PaddingTightest:
		return ownLo, ownHi, nil
	case PaddingNone:
		return 0, size - 1, nil
	case PaddingFixed:
		if hasCommon {
			return commonLo, commonHi, nil
		}
		return ownLo, ownHi, nil
	default:
		return 0, 0, fmt.Errorf("%w: padding removal %d", ErrUnsupportedConfig, int(p))
	}
}
