package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationNearest copies the nearest source pixel. It keeps a
	// bitmap two-coloured and is the default for encoding.
	InterpolationNearest Interpolation = iota

	// InterpolationArea uses Catmull-Rom for smooth downscaling of
	// photographs before classification.
	InterpolationArea

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear
)

// Resize scales img to width x height with the given interpolation.
func Resize(img image.Image, width, height int, interp Interpolation) *RGBAImage {
	dst := NewRGBAImage(width, height)

	var scaler draw.Scaler
	switch interp {
	case InterpolationArea:
		scaler = draw.CatmullRom
	case InterpolationLinear:
		scaler = draw.BiLinear
	default:
		scaler = draw.NearestNeighbor
	}

	scaler.Scale(dst.RGBA, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// ResizeToWidth resizes img to width while maintaining aspect ratio.
func ResizeToWidth(img image.Image, width int, interp Interpolation) *RGBAImage {
	b := img.Bounds()
	height := max(1, int(float64(width)*float64(b.Dy())/float64(b.Dx())+0.5))
	return Resize(img, width, height, interp)
}
