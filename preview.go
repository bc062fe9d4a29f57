package dotfactory

import (
	"image"

	"github.com/wbrown/dotfactory/imageutil"
)

// previewColumns is the number of characters per preview row.
const previewColumns = 16

var (
	previewInk   = imageutil.RGB{R: 0, G: 0, B: 0}
	previewPaper = imageutil.RGB{R: 255, G: 255, B: 255}
	previewGrid  = imageutil.RGB{R: 192, G: 192, B: 192}
)

// Preview draws every character of fd into a contact sheet, 16 per row,
// separated by a one pixel grid and enlarged by scale. Pixels are read
// back out of the packed bytes, so the sheet shows exactly what was
// encoded.
func Preview(fd *FontDescriptor, scale int) (*imageutil.RGBAImage, error) {
	var cell image.Point
	for _, c := range fd.Chars {
		cell.X = max(cell.X, c.Glyph.Width())
		cell.Y = max(cell.Y, c.Glyph.Height())
	}
	cols := min(len(fd.Chars), previewColumns)
	rows := (len(fd.Chars) + previewColumns - 1) / previewColumns

	sheet := imageutil.CreateSolidImage(cols*(cell.X+1)+1, rows*(cell.Y+1)+1, previewGrid)
	for i, c := range fd.Chars {
		origin := image.Pt((i%previewColumns)*(cell.X+1)+1, (i/previewColumns)*(cell.Y+1)+1)
		fill(sheet, image.Rectangle{Min: origin, Max: origin.Add(cell)}, previewPaper)
		if err := drawPages(sheet, origin, c.Glyph, fd.Config); err != nil {
			return nil, err
		}
	}
	return scaled(sheet, scale), nil
}

// PreviewImage draws the encoded bitmap of id enlarged by scale.
func PreviewImage(id *ImageDescriptor, scale int) (*imageutil.RGBAImage, error) {
	g := id.Glyph
	sheet := imageutil.CreateSolidImage(g.Width(), g.Height(), previewPaper)
	if err := drawPages(sheet, image.Point{}, g, id.Config); err != nil {
		return nil, err
	}
	return scaled(sheet, scale), nil
}

func drawPages(dst *imageutil.RGBAImage, origin image.Point, g *Glyph, cfg Config) error {
	pixels, err := Unpack(g.Pages, g.Width(), g.Height(), cfg.BitLayout, cfg.MSBFirst)
	if err != nil {
		return err
	}
	for y, row := range pixels {
		for x, set := range row {
			if set {
				dst.SetRGB(origin.X+x, origin.Y+y, previewInk)
			}
		}
	}
	return nil
}

func fill(img *imageutil.RGBAImage, r image.Rectangle, c imageutil.RGB) {
	col := c.ToColor()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}

func scaled(img *imageutil.RGBAImage, scale int) *imageutil.RGBAImage {
	if scale <= 1 {
		return img
	}
	return imageutil.Scale(img, scale)
}
