package main

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/wbrown/dotfactory"
	"github.com/wbrown/dotfactory/imageutil"
)

// parseSize parses "WxH". Either side may be 0.
func parseSize(s string) (int, int, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q: want WxH", s)
	}
	wi, err := strconv.Atoi(w)
	if err != nil || wi < 0 {
		return 0, 0, fmt.Errorf("invalid width in %q", s)
	}
	hi, err := strconv.Atoi(h)
	if err != nil || hi < 0 {
		return 0, 0, fmt.Errorf("invalid height in %q", s)
	}
	if wi == 0 && hi == 0 {
		return 0, 0, fmt.Errorf("invalid size %q: both sides are 0", s)
	}
	return wi, hi, nil
}

// parseTiles parses a tile size; "auto" leaves it to the sheet.
func parseTiles(s string) (image.Point, error) {
	if strings.EqualFold(strings.TrimSpace(s), "auto") {
		return image.Point{}, nil
	}
	w, h, err := parseSize(s)
	return image.Pt(w, h), err
}

// resizeImage scales img to w x h with nearest-neighbour sampling. A zero
// side keeps the aspect ratio.
func resizeImage(img *imageutil.RGBAImage, w, h int) *imageutil.RGBAImage {
	switch {
	case h == 0:
		return imageutil.ResizeToWidth(img, w, imageutil.InterpolationNearest)
	case w == 0:
		w = max(1, int(float64(h)*float64(img.Width())/float64(img.Height())+0.5))
	}
	return imageutil.Resize(img, w, h, imageutil.InterpolationNearest)
}

// parseBackground parses the --background flag: "auto", "threshold:N"
// with N in 0..255, or a comma separated list of #rrggbb colours.
func parseBackground(s string, img *imageutil.RGBAImage) (dotfactory.Classification, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.EqualFold(s, "auto"):
		return dotfactory.AutoClassification(img), nil
	case strings.HasPrefix(strings.ToLower(s), "threshold:"):
		n, err := strconv.ParseUint(s[len("threshold:"):], 10, 8)
		if err != nil {
			return dotfactory.Classification{}, fmt.Errorf("invalid threshold in %q", s)
		}
		return dotfactory.ThresholdClassification(img, uint8(n)), nil
	}

	var colors []color.Color
	for _, part := range strings.Split(s, ",") {
		c, err := parseHexColor(part)
		if err != nil {
			return dotfactory.Classification{}, err
		}
		colors = append(colors, c)
	}
	return dotfactory.BackgroundColors(colors...), nil
}

func parseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
