package dotfactory

import (
	"errors"
	"testing"
)

func textFor(t *testing.T, mutate func(*Config)) BitmapText {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	text, err := newBitmapText(cfg)
	if err != nil {
		t.Fatalf("newBitmapText: %v", err)
	}
	return text
}

func TestBitmapTextRender(t *testing.T) {
	t.Parallel()

	// 3x2 bitmap: "#.#" / ".#."
	rowPages := []byte{0xA0, 0x40}
	// Same bitmap, column-major MSB first: one band of three columns.
	colPages := []byte{0x01, 0x02, 0x01}

	tests := []struct {
		name   string
		mutate func(*Config)
		pages  []byte
		want   string
	}{
		{
			name:  "row-major at column",
			pages: rowPages,
			want:  "\t0xA0, // # #\n\t0x40, //  # \n",
		},
		{
			name:   "row-major at bitmap",
			mutate: func(c *Config) { c.LineWrap = WrapAtBitmap },
			pages:  rowPages,
			want:   "\t// # #\n\t//  # \n\t0xA0, 0x40, \n",
		},
		{
			name:   "column-major at column",
			mutate: func(c *Config) { c.BitLayout = ColumnMajor },
			pages:  colPages,
			want:   "\t// # #\n\t//  # \n\t0x01, 0x02, 0x01, \n",
		},
		{
			name: "binary without visualizer",
			mutate: func(c *Config) {
				c.ByteFormat = FormatBinary
				c.ByteLeadingString = "0b"
				c.CommentCharVisualizer = false
			},
			pages: rowPages,
			want:  "\t0b10100000, \n\t0b01000000, \n",
		},
		{
			name: "c comments and custom visualizer",
			mutate: func(c *Config) {
				c.CommentStyle = CommentC
				c.VisualizerOn, c.VisualizerOff = "X", "."
			},
			pages: rowPages,
			want:  "\t0xA0, /* X.X*/\n\t0x40, /* .X.*/\n",
		},
		{
			name:   "crlf",
			mutate: func(c *Config) { c.Newline = "\r\n"; c.CommentCharVisualizer = false },
			pages:  rowPages,
			want:   "\t0xA0, \r\n\t0x40, \r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := textFor(t, tt.mutate).Render(tt.pages, 3, 2)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if got != tt.want {
				t.Errorf("Render =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestBitmapTextDataRowsPerBand(t *testing.T) {
	t.Parallel()

	text := textFor(t, func(c *Config) { c.BitLayout = ColumnMajor })
	rows, err := text.DataRows([]byte{1, 2, 3, 4}, 2, 10)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"0x01, 0x02, ", "0x03, 0x04, "}
	if len(rows) != len(want) || rows[0] != want[0] || rows[1] != want[1] {
		t.Errorf("DataRows = %q, want %q", rows, want)
	}
}

func TestBitmapTextUnsupported(t *testing.T) {
	t.Parallel()

	text := textFor(t, nil)
	text.Format = ByteFormat(9)
	if _, err := text.Render([]byte{0}, 1, 1); !errors.Is(err, ErrUnsupportedConfig) {
		t.Errorf("bad format: err = %v", err)
	}

	text = textFor(t, nil)
	text.Wrap = LineWrap(9)
	if _, err := text.Render([]byte{0}, 1, 1); !errors.Is(err, ErrUnsupportedConfig) {
		t.Errorf("bad wrap: err = %v", err)
	}
}
