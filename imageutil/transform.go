package imageutil

import (
	"fmt"
	"image"

	"github.com/disintegration/gift"
)

// RotateFlip rotates img clockwise by degrees (0, 90, 180 or 270) and then
// mirrors it horizontally (flipX) and/or vertically (flipY). The result is
// a new bitmap anchored at the origin.
func RotateFlip(img *GrayImage, degrees int, flipX, flipY bool) (*GrayImage, error) {
	var filters []gift.Filter
	switch degrees {
	case 0:
	case 90:
		filters = append(filters, gift.Rotate270()) // gift rotates counter-clockwise
	case 180:
		filters = append(filters, gift.Rotate180())
	case 270:
		filters = append(filters, gift.Rotate90())
	default:
		return nil, fmt.Errorf("unsupported rotation %d", degrees)
	}
	if flipX {
		filters = append(filters, gift.FlipHorizontal())
	}
	if flipY {
		filters = append(filters, gift.FlipVertical())
	}
	if len(filters) == 0 {
		return img.Clone(), nil
	}

	g := gift.New(filters...)
	dst := image.NewGray(g.Bounds(img.Bounds()))
	g.Draw(dst, img.Gray)
	if dst.Rect.Min != (image.Point{}) {
		return (&GrayImage{dst}).Clone(), nil
	}
	return &GrayImage{dst}, nil
}

// Scale enlarges img by an integer factor without smoothing, so every
// source pixel becomes a factor x factor square.
func Scale(img image.Image, factor int) *RGBAImage {
	b := img.Bounds()
	g := gift.New(gift.Resize(b.Dx()*factor, b.Dy()*factor, gift.NearestNeighborResampling))
	dst := NewRGBAImage(b.Dx()*factor, b.Dy()*factor)
	g.Draw(dst.RGBA, img)
	return dst
}
