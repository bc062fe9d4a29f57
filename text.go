package dotfactory

import (
	"fmt"
	"strings"
)

// BitmapText formats packed bitmap bytes as source text.
type BitmapText struct {
	Layout   BitLayout
	MSBFirst bool
	Format   ByteFormat
	Leading  string
	Wrap     LineWrap

	// Visualizer enables the commented ASCII-art rows drawn with On and
	// Off between the comment delimiters.
	Visualizer bool
	On, Off    string
	Comments   comments
	Newline    string
}

func newBitmapText(cfg Config) (BitmapText, error) {
	delims, err := cfg.CommentStyle.delimiters()
	if err != nil {
		return BitmapText{}, err
	}
	return BitmapText{
		Layout:     cfg.BitLayout,
		MSBFirst:   cfg.MSBFirst,
		Format:     cfg.ByteFormat,
		Leading:    cfg.ByteLeadingString,
		Wrap:       cfg.LineWrap,
		Visualizer: cfg.CommentCharVisualizer,
		On:         cfg.VisualizerOn,
		Off:        cfg.VisualizerOff,
		Comments:   delims,
		Newline:    cfg.Newline,
	}, nil
}

func formatByte(b byte, format ByteFormat, leading string) (string, error) {
	switch format {
	case FormatHex:
		return fmt.Sprintf("%s%02X, ", leading, b), nil
	case FormatBinary:
		return fmt.Sprintf("%s%08b, ", leading, b), nil
	default:
		return "", fmt.Errorf("%w: byte format %d", ErrUnsupportedConfig, int(format))
	}
}

// DataRows renders the bytes of one logical row per entry: a pixel row
// for RowMajor, a band of 8 pixel rows for ColumnMajor.
func (t BitmapText) DataRows(pages []byte, w, h int) ([]string, error) {
	var perRow, rows int
	switch t.Layout {
	case RowMajor:
		perRow, rows = (w+7)/8, h
	case ColumnMajor:
		perRow, rows = w, (h+7)/8
	default:
		return nil, fmt.Errorf("%w: bit layout %d", ErrUnsupportedConfig, int(t.Layout))
	}
	if len(pages) != perRow*rows {
		return nil, fmt.Errorf("failed to render %dx%d bitmap: have %d bytes, want %d", w, h, len(pages), perRow*rows)
	}

	out := make([]string, rows)
	for r := 0; r < rows; r++ {
		var sb strings.Builder
		for _, b := range pages[r*perRow : (r+1)*perRow] {
			tok, err := formatByte(b, t.Format, t.Leading)
			if err != nil {
				return nil, err
			}
			sb.WriteString(tok)
		}
		out[r] = sb.String()
	}
	return out, nil
}

// VisualizerRows draws one commented row per pixel row, reading every
// pixel back out of the packed bytes.
func (t BitmapText) VisualizerRows(pages []byte, w, h int) ([]string, error) {
	pixels, err := Unpack(pages, w, h, t.Layout, t.MSBFirst)
	if err != nil {
		return nil, err
	}
	out := make([]string, h)
	for y, row := range pixels {
		var sb strings.Builder
		sb.WriteString(t.Comments.start)
		for _, set := range row {
			if set {
				sb.WriteString(t.On)
			} else {
				sb.WriteString(t.Off)
			}
		}
		sb.WriteString(t.Comments.end)
		out[y] = sb.String()
	}
	return out, nil
}

// Render assembles data and visualizer rows into source lines, each
// starting with a tab.
//
// RowMajor with WrapAtColumn puts a row's data and its drawing on the
// same line. WrapAtBitmap and every ColumnMajor layout print the drawing
// first and the data after it.
func (t BitmapText) Render(pages []byte, w, h int) (string, error) {
	data, err := t.DataRows(pages, w, h)
	if err != nil {
		return "", err
	}
	var vis []string
	if t.Visualizer {
		if vis, err = t.VisualizerRows(pages, w, h); err != nil {
			return "", err
		}
	}
	if t.Wrap != WrapAtColumn && t.Wrap != WrapAtBitmap {
		return "", fmt.Errorf("%w: line wrap %d", ErrUnsupportedConfig, int(t.Wrap))
	}

	var sb strings.Builder
	if t.Layout == RowMajor && t.Wrap == WrapAtColumn {
		for y, d := range data {
			sb.WriteString("\t" + d)
			if vis != nil {
				sb.WriteString(vis[y])
			}
			sb.WriteString(t.Newline)
		}
		return sb.String(), nil
	}

	for _, v := range vis {
		sb.WriteString("\t" + v + t.Newline)
	}
	if t.Wrap == WrapAtColumn {
		for _, d := range data {
			sb.WriteString("\t" + d + t.Newline)
		}
	} else {
		sb.WriteString("\t" + strings.Join(data, "") + t.Newline)
	}
	return sb.String(), nil
}
