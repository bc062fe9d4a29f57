package dotfactory

import (
	"fmt"
	"image"
)

// Border is the bounding box of the foreground pixels of a bitmap, in
// pixel coordinates relative to the bitmap origin. Right and Bottom are
// inclusive.
type Border struct {
	Left, Top, Right, Bottom int
}

// emptyBorder is the border of a bitmap without foreground pixels.
func emptyBorder(width, height int) Border {
	return Border{Left: width, Top: height, Right: -1, Bottom: -1}
}

// Valid reports whether b describes a (possibly zero-sized) extent. The
// inverted border of a blank bitmap is not valid.
func (b Border) Valid() bool {
	return b.Right >= b.Left-1 && b.Bottom >= b.Top-1
}

// HasContent reports whether b encloses at least one pixel.
func (b Border) HasContent() bool {
	return b.Right >= b.Left && b.Bottom >= b.Top
}

// Width returns the number of columns inside the border.
func (b Border) Width() int { return b.Right - b.Left + 1 }

// Height returns the number of rows inside the border.
func (b Border) Height() int { return b.Bottom - b.Top + 1 }

// Rect returns the border as a half-open rectangle.
func (b Border) Rect() image.Rectangle {
	return image.Rect(b.Left, b.Top, b.Right+1, b.Bottom+1)
}

func (b Border) String() string {
	return fmt.Sprintf("{left %d, top %d, right %d, bottom %d}", b.Left, b.Top, b.Right, b.Bottom)
}

// DetectBorder scans img for pixels cls does not classify as background.
// Each edge is found independently: Left is the first such column from
// the left, Right the first from the right, Top and Bottom likewise by
// row. A blank bitmap yields an invalid border.
func DetectBorder(img image.Image, cls Classification) Border {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	b := emptyBorder(w, h)

	foreground := func(x, y int) bool {
		return !cls.IsBackground(img.At(bounds.Min.X+x, bounds.Min.Y+y))
	}
	columnHasInk := func(x int) bool {
		for y := 0; y < h; y++ {
			if foreground(x, y) {
				return true
			}
		}
		return false
	}
	rowHasInk := func(y int) bool {
		for x := 0; x < w; x++ {
			if foreground(x, y) {
				return true
			}
		}
		return false
	}

	for x := 0; x < w; x++ {
		if columnHasInk(x) {
			b.Left = x
			break
		}
	}
	if b.Left == w {
		return b
	}
	for x := w - 1; x >= 0; x-- {
		if columnHasInk(x) {
			b.Right = x
			break
		}
	}
	for y := 0; y < h; y++ {
		if rowHasInk(y) {
			b.Top = y
			break
		}
	}
	for y := h - 1; y >= 0; y-- {
		if rowHasInk(y) {
			b.Bottom = y
			break
		}
	}
	return b
}

// CommonBorder is the reduce step over the borders of a character set:
// the smallest Left and Top and the largest Right and Bottom of all
// borders with content. It reports false when no border has content.
func CommonBorder(borders []Border) (Border, bool) {
	var common Border
	found := false
	for _, b := range borders {
		if !b.HasContent() {
			continue
		}
		if !found {
			common, found = b, true
			continue
		}
		common.Left = min(common.Left, b.Left)
		common.Top = min(common.Top, b.Top)
		common.Right = max(common.Right, b.Right)
		common.Bottom = max(common.Bottom, b.Bottom)
	}
	return common, found
}
