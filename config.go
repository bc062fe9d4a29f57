package dotfactory

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wbrown/dotfactory/codepage"
	"gopkg.in/yaml.v3"
)

// CommentStyle selects the comment delimiters of the generated source.
type CommentStyle int

const (
	CommentCpp CommentStyle = iota
	CommentC
	CommentPython
)

// Rotation is a clockwise rotation applied to every bitmap after cropping.
type Rotation int

const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

// PaddingRemoval selects how blank rows or columns around a bitmap are
// trimmed along one axis.
type PaddingRemoval int

const (
	// PaddingFixed trims to the tightest border shared by every
	// character, so all characters keep the same extent.
	PaddingFixed PaddingRemoval = iota
	// PaddingTightest trims each character to its own border.
	PaddingTightest
	// PaddingNone keeps the full rendered extent.
	PaddingNone
)

// LineWrap selects how data bytes are broken into source lines.
type LineWrap int

const (
	WrapAtColumn LineWrap = iota
	WrapAtBitmap
)

// BitLayout selects whether a byte holds horizontally or vertically
// adjacent pixels.
type BitLayout int

const (
	RowMajor BitLayout = iota
	ColumnMajor
)

// ByteFormat selects how data bytes are printed.
type ByteFormat int

const (
	FormatHex ByteFormat = iota
	FormatBinary
)

// DescriptorFormat selects how a dimension is printed in descriptor
// tables.
type DescriptorFormat int

const (
	DisplayInBits DescriptorFormat = iota
	DisplayInBytes
	DontDisplay
)

var (
	commentStyleNames     = []string{"cpp", "c", "python"}
	rotationNames         = []string{"0", "90", "180", "270"}
	paddingRemovalNames   = []string{"fixed", "tightest", "none"}
	lineWrapNames         = []string{"column", "bitmap"}
	bitLayoutNames        = []string{"row-major", "column-major"}
	byteFormatNames       = []string{"hex", "binary"}
	descriptorFormatNames = []string{"bits", "bytes", "none"}
)

func enumName(names []string, v int, kind string) (string, error) {
	if v < 0 || v >= len(names) {
		return "", fmt.Errorf("%w: %s %d", ErrUnsupportedConfig, kind, v)
	}
	return names[v], nil
}

func enumParse(names []string, text []byte, kind string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s %q (want one of %s)",
		ErrUnsupportedConfig, kind, s, strings.Join(names, ", "))
}

func (s CommentStyle) String() string {
	n, _ := enumName(commentStyleNames, int(s), "comment style")
	return n
}

// MarshalText implements encoding.TextMarshaler.
func (s CommentStyle) MarshalText() ([]byte, error) {
	n, err := enumName(commentStyleNames, int(s), "comment style")
	return []byte(n), err
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *CommentStyle) UnmarshalText(text []byte) error {
	v, err := enumParse(commentStyleNames, text, "comment style")
	*s = CommentStyle(v)
	return err
}

func (r Rotation) String() string {
	n, _ := enumName(rotationNames, int(r), "rotation")
	return n
}

// MarshalText implements encoding.TextMarshaler.
func (r Rotation) MarshalText() ([]byte, error) {
	n, err := enumName(rotationNames, int(r), "rotation")
	return []byte(n), err
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rotation) UnmarshalText(text []byte) error {
	v, err := enumParse(rotationNames, text, "rotation")
	*r = Rotation(v)
	return err
}

func (r Rotation) degrees() (int, error) {
	if _, err := enumName(rotationNames, int(r), "rotation"); err != nil {
		return 0, err
	}
	return int(r) * 90, nil
}

func (p PaddingRemoval) String() string {
	n, _ := enumName(paddingRemovalNames, int(p), "padding removal")
	return n
}

// MarshalText implements encoding.TextMarshaler.
func (p PaddingRemoval) MarshalText() ([]byte, error) {
	n, err := enumName(paddingRemovalNames, int(p), "padding removal")
	return []byte(n), err
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PaddingRemoval) UnmarshalText(text []byte) error {
	v, err := enumParse(paddingRemovalNames, text, "padding removal")
	*p = PaddingRemoval(v)
	return err
}

func (w LineWrap) String() string {
	n, _ := enumName(lineWrapNames, int(w), "line wrap")
	return n
}

// MarshalText implements encoding.TextMarshaler.
func (w LineWrap) MarshalText() ([]byte, error) {
	n, err := enumName(lineWrapNames, int(w), "line wrap")
	return []byte(n), err
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *LineWrap) UnmarshalText(text []byte) error {
	v, err := enumParse(lineWrapNames, text, "line wrap")
	*w = LineWrap(v)
	return err
}

func (l BitLayout) String() string {
	n, _ := enumName(bitLayoutNames, int(l), "bit layout")
	return n
}

// MarshalText implements encoding.TextMarshaler.
func (l BitLayout) MarshalText() ([]byte, error) {
	n, err := enumName(bitLayoutNames, int(l), "bit layout")
	return []byte(n), err
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *BitLayout) UnmarshalText(text []byte) error {
	v, err := enumParse(bitLayoutNames, text, "bit layout")
	*l = BitLayout(v)
	return err
}

func (f ByteFormat) String() string {
	n, _ := enumName(byteFormatNames, int(f), "byte format")
	return n
}

// MarshalText implements encoding.TextMarshaler.
func (f ByteFormat) MarshalText() ([]byte, error) {
	n, err := enumName(byteFormatNames, int(f), "byte format")
	return []byte(n), err
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *ByteFormat) UnmarshalText(text []byte) error {
	v, err := enumParse(byteFormatNames, text, "byte format")
	*f = ByteFormat(v)
	return err
}

func (f DescriptorFormat) String() string {
	n, _ := enumName(descriptorFormatNames, int(f), "descriptor format")
	return n
}

// MarshalText implements encoding.TextMarshaler.
func (f DescriptorFormat) MarshalText() ([]byte, error) {
	n, err := enumName(descriptorFormatNames, int(f), "descriptor format")
	return []byte(n), err
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *DescriptorFormat) UnmarshalText(text []byte) error {
	v, err := enumParse(descriptorFormatNames, text, "descriptor format")
	*f = DescriptorFormat(v)
	return err
}

// value converts a pixel count for display. The second result is false
// when the dimension is not displayed.
func (f DescriptorFormat) value(bits int) (int, bool, error) {
	switch f {
	case DisplayInBits:
		return bits, true, nil
	case DisplayInBytes:
		return (bits + 7) / 8, true, nil
	case DontDisplay:
		return 0, false, nil
	default:
		return 0, false, fmt.Errorf("%w: descriptor format %d", ErrUnsupportedConfig, int(f))
	}
}

// Config controls every aspect of the generated text. The zero value is
// not usable; start from DefaultConfig.
type Config struct {
	// DisplayName overrides the font or image name used in comments and
	// variable names.
	DisplayName string `yaml:"display_name,omitempty"`

	CommentVariableName   bool         `yaml:"comment_variable_name"`
	CommentCharVisualizer bool         `yaml:"comment_char_visualizer"`
	CommentCharDescriptor bool         `yaml:"comment_char_descriptor"`
	CommentStyle          CommentStyle `yaml:"comment_style"`
	VisualizerOn          string       `yaml:"visualizer_on"`
	VisualizerOff         string       `yaml:"visualizer_off"`

	Rotation       Rotation `yaml:"rotation"`
	FlipHorizontal bool     `yaml:"flip_horizontal"`
	FlipVertical   bool     `yaml:"flip_vertical"`

	// PaddingHeight trims blank rows, PaddingWidth blank columns.
	PaddingHeight PaddingRemoval `yaml:"padding_removal_height"`
	PaddingWidth  PaddingRemoval `yaml:"padding_removal_width"`

	LineWrap          LineWrap   `yaml:"line_wrap"`
	BitLayout         BitLayout  `yaml:"bit_layout"`
	MSBFirst          bool       `yaml:"msb_first"`
	ByteFormat        ByteFormat `yaml:"byte_format"`
	ByteLeadingString string     `yaml:"byte_leading_string"`

	GenerateLookupArray  bool             `yaml:"generate_lookup_array"`
	DescCharWidth        DescriptorFormat `yaml:"desc_char_width"`
	DescCharHeight       DescriptorFormat `yaml:"desc_char_height"`
	DescFontHeight       DescriptorFormat `yaml:"desc_font_height"`
	GenerateLookupBlocks bool             `yaml:"generate_lookup_blocks"`
	// LookupBlocksNewAfterCharCount is the offset gap at which a new
	// descriptor block starts.
	LookupBlocksNewAfterCharCount int              `yaml:"lookup_blocks_new_after_char_count"`
	DescImgWidth                  DescriptorFormat `yaml:"desc_img_width"`
	DescImgHeight                 DescriptorFormat `yaml:"desc_img_height"`
	AddCodePage                   bool             `yaml:"add_code_page"`

	GenerateSpaceCharacterBitmap bool `yaml:"generate_space_character_bitmap"`
	SpaceGenerationPixels        int  `yaml:"space_generation_pixels"`

	// Variable templates. {0} is replaced by the variable-safe name.
	VarBitmaps     string `yaml:"var_bitmaps"`
	VarCharInfo    string `yaml:"var_char_info"`
	VarFontInfo    string `yaml:"var_font_info"`
	VarImageBitmap string `yaml:"var_image_bitmap"`
	VarImageInfo   string `yaml:"var_image_info"`

	CodePage int `yaml:"code_page"`
	// Newline ends every generated line. It is stored in YAML by name,
	// see newlineNames.
	Newline string `yaml:"-"`
}

var newlineNames = []struct{ name, text string }{
	{"lf", "\n"},
	{"crlf", "\r\n"},
	{"cr", "\r"},
}

func newlineName(nl string) (string, error) {
	for _, n := range newlineNames {
		if n.text == nl {
			return n.name, nil
		}
	}
	return "", fmt.Errorf("%w: newline %q", ErrUnsupportedConfig, nl)
}

func parseNewline(name string) (string, error) {
	for _, n := range newlineNames {
		if strings.EqualFold(n.name, name) || n.text == name {
			return n.text, nil
		}
	}
	return "", fmt.Errorf("%w: newline %q", ErrUnsupportedConfig, name)
}

// plainConfig is Config without its YAML methods.
type plainConfig Config

type yamlConfig struct {
	plainConfig `yaml:",inline"`
	Newline     string `yaml:"newline"`
}

// MarshalYAML writes the newline by name, since a bare line break does
// not survive a YAML block scalar.
func (c Config) MarshalYAML() (any, error) {
	name, err := newlineName(c.Newline)
	if err != nil {
		return nil, err
	}
	return yamlConfig{plainConfig: plainConfig(c), Newline: name}, nil
}

// UnmarshalYAML decodes value over c. Keys that are absent keep the
// values already in c.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	name, err := newlineName(c.Newline)
	if err != nil {
		name = "lf"
	}
	aux := yamlConfig{plainConfig: plainConfig(*c), Newline: name}
	if err := value.Decode(&aux); err != nil {
		return err
	}
	nl, err := parseNewline(aux.Newline)
	if err != nil {
		return err
	}
	*c = Config(aux.plainConfig)
	c.Newline = nl
	return nil
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		CommentVariableName:   true,
		CommentCharVisualizer: true,
		CommentCharDescriptor: true,
		CommentStyle:          CommentCpp,
		VisualizerOn:          "#",
		VisualizerOff:         " ",

		Rotation:      Rotate0,
		PaddingHeight: PaddingFixed,
		PaddingWidth:  PaddingTightest,

		LineWrap:          WrapAtColumn,
		BitLayout:         RowMajor,
		MSBFirst:          true,
		ByteFormat:        FormatHex,
		ByteLeadingString: "0x",

		GenerateLookupArray:           true,
		DescCharWidth:                 DisplayInBits,
		DescCharHeight:                DontDisplay,
		DescFontHeight:                DisplayInBytes,
		GenerateLookupBlocks:          false,
		LookupBlocksNewAfterCharCount: 80,
		DescImgWidth:                  DisplayInBytes,
		DescImgHeight:                 DisplayInBits,
		AddCodePage:                   true,

		SpaceGenerationPixels: 2,

		VarBitmaps:     "const uint_8 {0}Bitmaps",
		VarCharInfo:    "const FONT_CHAR_INFO {0}Descriptors",
		VarFontInfo:    "const FONT_INFO {0}FontInfo",
		VarImageBitmap: "const uint_8 {0}Bitmap",
		VarImageInfo:   "const IMAGE_INFO {0}ImageInfo",

		CodePage: codepage.UTF16,
		Newline:  "\n",
	}
}

// LoadConfig reads a YAML file over DefaultConfig. Keys missing from the
// file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SaveConfig writes cfg as YAML.
func SaveConfig(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks every enumerated value and numeric limit.
func (c Config) Validate() error {
	checks := []struct {
		names []string
		v     int
		kind  string
	}{
		{commentStyleNames, int(c.CommentStyle), "comment style"},
		{rotationNames, int(c.Rotation), "rotation"},
		{paddingRemovalNames, int(c.PaddingHeight), "height padding removal"},
		{paddingRemovalNames, int(c.PaddingWidth), "width padding removal"},
		{lineWrapNames, int(c.LineWrap), "line wrap"},
		{bitLayoutNames, int(c.BitLayout), "bit layout"},
		{byteFormatNames, int(c.ByteFormat), "byte format"},
		{descriptorFormatNames, int(c.DescCharWidth), "char width format"},
		{descriptorFormatNames, int(c.DescCharHeight), "char height format"},
		{descriptorFormatNames, int(c.DescFontHeight), "font height format"},
		{descriptorFormatNames, int(c.DescImgWidth), "image width format"},
		{descriptorFormatNames, int(c.DescImgHeight), "image height format"},
	}
	for _, chk := range checks {
		if _, err := enumName(chk.names, chk.v, chk.kind); err != nil {
			return err
		}
	}
	if c.LookupBlocksNewAfterCharCount < 1 {
		return fmt.Errorf("%w: lookup block threshold %d", ErrUnsupportedConfig, c.LookupBlocksNewAfterCharCount)
	}
	if c.SpaceGenerationPixels < 0 {
		return fmt.Errorf("%w: space width %d", ErrUnsupportedConfig, c.SpaceGenerationPixels)
	}
	if utf8.RuneCountInString(c.VisualizerOn) != 1 || utf8.RuneCountInString(c.VisualizerOff) != 1 {
		return fmt.Errorf("%w: visualizer characters must be single characters", ErrUnsupportedConfig)
	}
	if _, err := codepage.Lookup(c.CodePage); err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedConfig, err)
	}
	if _, err := newlineName(c.Newline); err != nil {
		return err
	}
	return nil
}

// comments holds the delimiters of one CommentStyle.
type comments struct {
	start, end, blockMiddle, blockEnd string
}

func (s CommentStyle) delimiters() (comments, error) {
	switch s {
	case CommentC:
		return comments{start: "/* ", end: "*/", blockMiddle: "** ", blockEnd: "*/"}, nil
	case CommentCpp:
		return comments{start: "// ", end: "", blockMiddle: "// ", blockEnd: "// "}, nil
	case CommentPython:
		return comments{start: "# ", end: "", blockMiddle: "# ", blockEnd: "# "}, nil
	default:
		return comments{}, fmt.Errorf("%w: comment style %d", ErrUnsupportedConfig, int(s))
	}
}

// expand substitutes name into a variable template.
func expand(template, name string) string {
	return strings.ReplaceAll(template, "{0}", name)
}

// ParseRotation parses a rotation in degrees.
func ParseRotation(degrees string) (Rotation, error) {
	if _, err := strconv.Atoi(strings.TrimSpace(degrees)); err != nil {
		return Rotate0, fmt.Errorf("%w: rotation %q", ErrUnsupportedConfig, degrees)
	}
	var r Rotation
	err := r.UnmarshalText([]byte(degrees))
	return r, err
}
