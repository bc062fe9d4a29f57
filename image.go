package dotfactory

import (
	"fmt"
	"image"
	"strings"
)

// ImageDescriptor is a single image converted to a bitmap.
type ImageDescriptor struct {
	// Name is the variable-safe image name.
	Name   string
	Config Config
	Glyph  *Glyph
}

// BuildImageDescriptor crops img to its own foreground, transforms and
// packs it. A blank image yields ErrNoContent.
func BuildImageDescriptor(cfg Config, img image.Image, cls Classification, name string) (*ImageDescriptor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.DisplayName != "" {
		name = cfg.DisplayName
	}

	border := DetectBorder(img, cls)
	g, err := Crop(img, cls, border, cropRequest(cfg))
	if err != nil {
		return nil, err
	}
	if err := g.Pack(cfg.BitLayout, cfg.MSBFirst); err != nil {
		return nil, err
	}
	return &ImageDescriptor{Name: variableSafe(name), Config: cfg, Glyph: g}, nil
}

// Render produces the source and header text of the image.
func (id *ImageDescriptor) Render() (Output, error) {
	cfg, nl := id.Config, id.Config.Newline
	d, err := cfg.CommentStyle.delimiters()
	if err != nil {
		return Output{}, err
	}
	text, err := newBitmapText(cfg)
	if err != nil {
		return Output{}, err
	}
	g := id.Glyph

	var src, hdr strings.Builder
	if cfg.CommentVariableName {
		fmt.Fprintf(&src, "%s%s%s Image data for %s%s%s%s%s",
			d.start, nl, d.blockMiddle, id.Name, nl, d.blockEnd, nl, nl)
		fmt.Fprintf(&hdr, "%sBitmap info for %s%s%s", d.start, id.Name, d.end, nl)
	}

	bitmap := expand(cfg.VarImageBitmap, id.Name)
	fmt.Fprintf(&src, "%s[] =%s{%s", bitmap, nl, nl)
	body, err := text.Render(g.Pages, g.Width(), g.Height())
	if err != nil {
		return Output{}, err
	}
	src.WriteString(body)
	src.WriteString("};" + nl + nl)

	if cfg.CommentVariableName {
		fmt.Fprintf(&src, "%sBitmap sizes for %s%s%s", d.start, id.Name, d.end, nl)
	}
	info := expand(cfg.VarImageInfo, id.Name)
	fmt.Fprintf(&hdr, "extern %s;%s", info, nl)

	line := func(value any, comment string) {
		fmt.Fprintf(&src, "\t%v, %s %s%s%s", value, d.start, comment, d.end, nl)
	}
	fmt.Fprintf(&src, "%s =%s{%s", info, nl, nl)
	for _, dim := range []struct {
		f      DescriptorFormat
		pixels int
		name   string
	}{
		{cfg.DescImgWidth, g.Width(), "width"},
		{cfg.DescImgHeight, g.Height(), "height"},
	} {
		v, shown, err := dim.f.value(dim.pixels)
		if err != nil {
			return Output{}, err
		}
		if !shown {
			continue
		}
		if dim.f == DisplayInBytes {
			line(v, fmt.Sprintf("Image %s in bytes (pages)", dim.name))
		} else {
			line(v, fmt.Sprintf("Image %s in pixels", dim.name))
		}
	}
	line(VariableName(bitmap), "Image bitmap array")
	src.WriteString("};" + nl)

	return Output{Source: src.String(), Header: hdr.String()}, nil
}
