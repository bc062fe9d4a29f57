package main

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/wbrown/dotfactory/imageutil"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{"128x64", 128, 64, false},
		{" 32X0 ", 32, 0, false},
		{"0x16", 0, 16, false},
		{"0x0", 0, 0, true},
		{"128", 0, 0, true},
		{"ax4", 0, 0, true},
		{"-1x4", 0, 0, true},
	}
	for _, tt := range tests {
		w, h, err := parseSize(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && (w != tt.w || h != tt.h) {
			t.Errorf("parseSize(%q) = %dx%d, want %dx%d", tt.in, w, h, tt.w, tt.h)
		}
	}
}

func TestParseBackground(t *testing.T) {
	img := imageutil.CreateGlyphImage(
		"#..",
		"...",
	)
	black := color.RGBA{A: 0xff}
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	tests := []struct {
		arg       string
		blackIsBG bool
		whiteIsBG bool
	}{
		{"auto", false, true},
		{"threshold:128", false, true},
		{"#000000", true, false},
		{"#ffffff,#000000", true, true},
	}
	for _, tt := range tests {
		cls, err := parseBackground(tt.arg, img)
		if err != nil {
			t.Fatalf("parseBackground(%q): %v", tt.arg, err)
		}
		if got := cls.IsBackground(black); got != tt.blackIsBG {
			t.Errorf("%q: black background = %v, want %v", tt.arg, got, tt.blackIsBG)
		}
		if got := cls.IsBackground(white); got != tt.whiteIsBG {
			t.Errorf("%q: white background = %v, want %v", tt.arg, got, tt.whiteIsBG)
		}
	}

	for _, bad := range []string{"#12345", "threshold:300", "#gg0000"} {
		if _, err := parseBackground(bad, img); err == nil {
			t.Errorf("parseBackground(%q) should fail", bad)
		}
	}
}

func TestResizeImageKeepsAspect(t *testing.T) {
	img := imageutil.CreateCheckerboardImage(40, 20, 4)

	if got := resizeImage(img, 20, 0); got.Width() != 20 || got.Height() != 10 {
		t.Errorf("width only: got %dx%d, want 20x10", got.Width(), got.Height())
	}
	if got := resizeImage(img, 0, 5); got.Width() != 10 || got.Height() != 5 {
		t.Errorf("height only: got %dx%d, want 10x5", got.Width(), got.Height())
	}
}

func TestPrintCodePages(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printCodePages(&buf)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("got %d code pages, want 8:\n%s", len(lines), buf.String())
	}
	for _, want := range []string{"   437  IBM437", "  1200  utf-16", " 20127  us-ascii"} {
		if !strings.Contains(buf.String(), want+"\n") {
			t.Errorf("listing missing %q", want)
		}
	}
	if lines[0] != "   437  IBM437" {
		t.Errorf("first line = %q, want IBM437 first", lines[0])
	}
}
