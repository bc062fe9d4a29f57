package imageutil

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnknownFormat is returned by SaveImage for a file extension it has
// no encoder for.
var ErrUnknownFormat = errors.New("unknown image format")

type encoder func(w io.Writer, img image.Image) error

// encoders maps a lower-case file extension to its encoder. Bitmaps and
// previews hold few colours, so every format except JPEG is exact.
var encoders = map[string]encoder{
	".png": png.Encode,
	".bmp": bmp.Encode,
	".gif": func(w io.Writer, img image.Image) error {
		return gif.Encode(w, img, nil)
	},
	".jpg":  jpegEncode,
	".jpeg": jpegEncode,
	".tif":  tiffEncode,
	".tiff": tiffEncode,
}

func jpegEncode(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
}

func tiffEncode(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

// DecodeImage reads an image in any registered format and returns it
// with the format name. PNG, JPEG, GIF, BMP and TIFF are registered.
func DecodeImage(r io.Reader) (*RGBAImage, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	return RGBAImageFromImage(img), format, nil
}

// LoadImage loads an image from the specified path.
func LoadImage(path string) (*RGBAImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// SaveImage saves an image to path in the format named by its extension:
// png, bmp, gif, jpg/jpeg or tif/tiff. No file is created for an
// unknown extension.
func SaveImage(img image.Image, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	enc, ok := encoders[ext]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := enc(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
