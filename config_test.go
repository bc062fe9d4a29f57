package dotfactory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigOverlay(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
comment_style: c
rotation: "270"
bit_layout: column-major
msb_first: false
padding_removal_height: tightest
desc_char_height: bytes
var_bitmaps: "static const uint8_t {0}_bitmaps"
code_page: 1252
newline: crlf
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := DefaultConfig()
	want.CommentStyle = CommentC
	want.Rotation = Rotate270
	want.BitLayout = ColumnMajor
	want.MSBFirst = false
	want.PaddingHeight = PaddingTightest
	want.DescCharHeight = DisplayInBytes
	want.VarBitmaps = "static const uint8_t {0}_bitmaps"
	want.CodePage = 1252
	want.Newline = "\r\n"
	if cfg != want {
		t.Errorf("LoadConfig =\n%+v\nwant\n%+v", cfg, want)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"unknown enum", "bit_layout: diagonal\n", ErrUnsupportedConfig},
		{"bad rotation", "rotation: \"45\"\n", ErrUnsupportedConfig},
		{"unknown code page", "code_page: 99999\n", ErrUnsupportedConfig},
		{"zero block threshold", "lookup_blocks_new_after_char_count: 0\n", ErrUnsupportedConfig},
		{"wide visualizer", "visualizer_on: \"##\"\n", ErrUnsupportedConfig},
		{"unknown newline", "newline: nel\n", ErrUnsupportedConfig},
		{"empty newline", "newline: \"\"\n", ErrUnsupportedConfig},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(path); !errors.Is(err, tt.want) {
				t.Errorf("case %d: err = %v, want %v", i, err, tt.want)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v, want os.ErrNotExist", err)
	}
}

func TestSaveConfigLoadsBack(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Rotation = Rotate90
	cfg.ByteFormat = FormatBinary
	cfg.DescFontHeight = DontDisplay
	cfg.DisplayName = "Custom"

	path := filepath.Join(t.TempDir(), "saved.yaml")
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got != cfg {
		t.Errorf("loaded %+v, want %+v", got, cfg)
	}
}

func TestSaveConfigNewline(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		newline string
		stored  string
	}{
		{"\n", "newline: lf\n"},
		{"\r\n", "newline: crlf\n"},
		{"\r", "newline: cr\n"},
	}
	for i, tt := range tests {
		cfg := DefaultConfig()
		cfg.Newline = tt.newline
		path := filepath.Join(dir, fmt.Sprintf("newline%d.yaml", i))
		if err := SaveConfig(cfg, path); err != nil {
			t.Fatalf("SaveConfig: %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), tt.stored) {
			t.Errorf("%q: saved YAML lacks %q:\n%s", tt.newline, tt.stored, data)
		}
		got, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig: %v", err)
		}
		if got.Newline != tt.newline {
			t.Errorf("Newline after reload = %q, want %q", got.Newline, tt.newline)
		}
	}

	cfg := DefaultConfig()
	cfg.Newline = ""
	if err := SaveConfig(cfg, filepath.Join(dir, "empty.yaml")); !errors.Is(err, ErrUnsupportedConfig) {
		t.Errorf("SaveConfig with empty newline: err = %v, want ErrUnsupportedConfig", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"comment style", func(c *Config) { c.CommentStyle = 3 }, false},
		{"rotation", func(c *Config) { c.Rotation = -1 }, false},
		{"padding", func(c *Config) { c.PaddingWidth = 9 }, false},
		{"descriptor format", func(c *Config) { c.DescImgHeight = 3 }, false},
		{"negative space", func(c *Config) { c.SpaceGenerationPixels = -1 }, false},
		{"empty visualizer", func(c *Config) { c.VisualizerOff = "" }, false},
		{"unicode visualizer", func(c *Config) { c.VisualizerOn = "█" }, true},
		{"empty newline", func(c *Config) { c.Newline = "" }, false},
		{"crlf newline", func(c *Config) { c.Newline = "\r\n" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrUnsupportedConfig) {
				t.Errorf("err = %v, want ErrUnsupportedConfig", err)
			}
		})
	}
}

func TestParseRotation(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Rotation{"0": Rotate0, "90": Rotate90, " 180 ": Rotate180, "270": Rotate270} {
		got, err := ParseRotation(in)
		if err != nil || got != want {
			t.Errorf("ParseRotation(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	for _, in := range []string{"45", "ninety", ""} {
		if _, err := ParseRotation(in); !errors.Is(err, ErrUnsupportedConfig) {
			t.Errorf("ParseRotation(%q) err = %v", in, err)
		}
	}
}

func TestVariableNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		decl, want string
	}{
		{"const uint_8 verdanaBitmaps[] =", "verdanaBitmaps"},
		{"const FONT_CHAR_INFO arial_12ptDescriptors", "arial_12ptDescriptors"},
		{"static const uint8_t *ptrs[4]", "ptrs"},
		{"x", "x"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := VariableName(tt.decl); got != tt.want {
			t.Errorf("VariableName(%q) = %q, want %q", tt.decl, got, tt.want)
		}
	}
}

func TestFontName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          FontName
		display, vari string
	}{
		{FontName{Family: "Verdana", Size: 12, Style: "Bold"}, "Verdana 12pt Bold", "verdana_12pt_Bold"},
		{FontName{Family: "DejaVu Sans", Size: 9.6, Style: "Regular"}, "DejaVu Sans 10pt", "dejaVu_Sans_10pt"},
		{FontName{Family: "logo-v2.png"}, "logo-v2.png", "logov2png"},
		{FontName{Family: "8bit"}, "8bit", "_8bit"},
		{FontName{Family: "日本"}, "日本", "_"},
	}
	for _, tt := range tests {
		if got := tt.name.String(); got != tt.display {
			t.Errorf("%+v String = %q, want %q", tt.name, got, tt.display)
		}
		if got := tt.name.Variable(); got != tt.vari {
			t.Errorf("%+v Variable = %q, want %q", tt.name, got, tt.vari)
		}
	}
}
