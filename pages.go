package dotfactory

import (
	"fmt"
	"image"
)

// Mask returns the bit selected by index i (0..7) under the given byte
// order: 0x01<<i when msbFirst, 0x80>>i otherwise. RowMajor packing
// indexes it with 7-col%8 and ColumnMajor with row%8.
func Mask(msbFirst bool, i int) byte {
	if msbFirst {
		return 0x01 << uint(i)
	}
	return 0x80 >> uint(i)
}

// PageCount returns the number of bytes a width x height bitmap packs
// into.
func PageCount(width, height int, layout BitLayout) (int, error) {
	switch layout {
	case RowMajor:
		return height * ((width + 7) / 8), nil
	case ColumnMajor:
		return width * ((height + 7) / 8), nil
	default:
		return 0, fmt.Errorf("%w: bit layout %d", ErrUnsupportedConfig, int(layout))
	}
}

// Pack converts the foreground pixels of img into bytes.
//
// RowMajor scans rows top to bottom and columns left to right, filling
// each byte from bit 7 down (msbFirst) or bit 0 up, and flushes a
// trailing partial byte per row. ColumnMajor transposes that result so
// each byte holds 8 vertically stacked pixels of one column, bands of 8
// rows following each other.
func Pack(img image.Image, cls Classification, layout BitLayout, msbFirst bool) ([]byte, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	rows := packRows(img, cls, msbFirst)
	switch layout {
	case RowMajor:
		return rows, nil
	case ColumnMajor:
		return transpose(rows, w, h, msbFirst), nil
	default:
		return nil, fmt.Errorf("%w: bit layout %d", ErrUnsupportedConfig, int(layout))
	}
}

func packRows(img image.Image, cls Classification, msbFirst bool) []byte {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pages := make([]byte, 0, h*((w+7)/8))

	for y := 0; y < h; y++ {
		var current byte
		bitsRead := 0
		for x := 0; x < w; x++ {
			if !cls.IsBackground(img.At(bounds.Min.X+x, bounds.Min.Y+y)) {
				bit := bitsRead
				if msbFirst {
					bit = 7 - bitsRead
				}
				current |= 1 << uint(bit)
			}
			bitsRead++
			if bitsRead == 8 {
				pages = append(pages, current)
				current, bitsRead = 0, 0
			}
		}
		if bitsRead != 0 {
			pages = append(pages, current)
		}
	}
	return pages
}

func transpose(rows []byte, w, h int, msbFirst bool) []byte {
	stride := (w + 7) / 8
	cols := make([]byte, w*((h+7)/8))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if rows[y*stride+x/8]&Mask(msbFirst, 7-x%8) == 0 {
				continue
			}
			cols[(y/8)*w+x] |= Mask(msbFirst, y%8)
		}
	}
	return cols
}

// Unpack is the inverse of Pack: it reports, per pixel, whether the bit
// for (x, y) is set. The result is indexed [y][x].
func Unpack(pages []byte, w, h int, layout BitLayout, msbFirst bool) ([][]bool, error) {
	want, err := PageCount(w, h, layout)
	if err != nil {
		return nil, err
	}
	if len(pages) != want {
		return nil, fmt.Errorf("failed to unpack %dx%d bitmap: have %d bytes, want %d", w, h, len(pages), want)
	}

	stride := (w + 7) / 8
	pixels := make([][]bool, h)
	for y := 0; y < h; y++ {
		pixels[y] = make([]bool, w)
		for x := 0; x < w; x++ {
			var set bool
			if layout == RowMajor {
				set = pages[y*stride+x/8]&Mask(msbFirst, 7-x%8) != 0
			} else {
				set = pages[(y/8)*w+x]&Mask(msbFirst, y%8) != 0
			}
			pixels[y][x] = set
		}
	}
	return pixels, nil
}
