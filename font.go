package dotfactory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wbrown/dotfactory/codepage"
)

// Output is generated C source and the matching header.
type Output struct {
	Source string
	Header string
}

// CharacterDescriptor is one character of a font with its packed bitmap.
type CharacterDescriptor struct {
	Char rune
	// Offset is the code-page offset of Char.
	Offset int
	Glyph  *Glyph
	// ByteOffset is the position of the bitmap in the font's bitmap
	// array. It is set by BuildFontDescriptor.
	ByteOffset int
	// Text is the rendered bitmap with its optional comment header.
	Text string
}

// FontDescriptor is a fully laid out font: characters in code-page
// order with byte offsets and descriptor blocks assigned.
type FontDescriptor struct {
	Name   FontName
	Config Config
	Page   *codepage.Page

	Chars       []*CharacterDescriptor
	First, Last *CharacterDescriptor
	// Height is the unrotated height of the first character. With
	// PaddingFixed height removal every character shares it.
	Height int
	Blocks []DescriptorBlock

	displayName, varName string
	comments             comments
}

// BuildFontDescriptor lays out chars, whose glyphs must already be
// packed. Characters without a glyph are dropped. ErrNoCharacters is
// returned when none remain.
func BuildFontDescriptor(cfg Config, name FontName, page *codepage.Page, chars []*CharacterDescriptor) (*FontDescriptor, error) {
	delims, err := cfg.CommentStyle.delimiters()
	if err != nil {
		return nil, err
	}
	text, err := newBitmapText(cfg)
	if err != nil {
		return nil, err
	}

	fd := &FontDescriptor{
		Name:        name,
		Config:      cfg,
		Page:        page,
		displayName: name.String(),
		varName:     name.Variable(),
		comments:    delims,
	}
	if cfg.DisplayName != "" {
		fd.displayName = cfg.DisplayName
		fd.varName = variableSafe(cfg.DisplayName)
	}

	for _, c := range chars {
		if c.Glyph != nil {
			fd.Chars = append(fd.Chars, c)
		}
	}
	if len(fd.Chars) == 0 {
		return nil, ErrNoCharacters
	}
	sort.SliceStable(fd.Chars, func(i, j int) bool { return fd.Chars[i].Offset < fd.Chars[j].Offset })
	fd.First, fd.Last = fd.Chars[0], fd.Chars[len(fd.Chars)-1]
	fd.Height = fd.First.Glyph.Size.Y

	offset := 0
	for _, c := range fd.Chars {
		c.ByteOffset = offset
		offset += len(c.Glyph.Pages)

		body, err := text.Render(c.Glyph.Pages, c.Glyph.Width(), c.Glyph.Height())
		if err != nil {
			return nil, fmt.Errorf("failed to render %q: %w", c.Char, err)
		}
		if cfg.CommentCharDescriptor {
			body = fmt.Sprintf("\t%s@%d '%c' (%d pixels wide)%s%s",
				delims.start, c.ByteOffset, c.Char, c.Glyph.Size.X, delims.end, cfg.Newline) + body
		}
		c.Text = body
	}

	fd.Blocks = BuildBlocks(fd.Chars, page, blockThreshold(cfg))
	return fd, nil
}

// BitmapBytes returns the total size of the bitmap array.
func (fd *FontDescriptor) BitmapBytes() int {
	last := fd.Last
	return last.ByteOffset + len(last.Glyph.Pages)
}

func (fd *FontDescriptor) lookupName() string {
	return fd.varName + "BlockLookup"
}

// Render produces the source and header text of the font.
func (fd *FontDescriptor) Render() (Output, error) {
	cfg, nl, d := fd.Config, fd.Config.Newline, fd.comments
	var src, hdr strings.Builder

	if cfg.CommentVariableName {
		fmt.Fprintf(&src, "%s%s%s Font data for %s%s%s%s%s",
			d.start, nl, d.blockMiddle, fd.displayName, nl, d.blockEnd, nl, nl)
		fmt.Fprintf(&src, "%sCharacter bitmaps for %s %s%s", d.start, fd.displayName, d.end, nl)
		fmt.Fprintf(&hdr, "%sFont data for %s %s%s", d.start, fd.displayName, d.end, nl)
	}

	bitmaps := expand(cfg.VarBitmaps, fd.varName)
	fmt.Fprintf(&src, "%s[] = %s{%s", bitmaps, nl, nl)
	for _, c := range fd.Chars {
		src.WriteString(c.Text)
		if cfg.CommentCharDescriptor && c != fd.Last {
			src.WriteString(nl)
		}
	}
	src.WriteString("};" + nl + nl)

	lookup := false
	if cfg.GenerateLookupArray {
		var err error
		if lookup, err = fd.renderBlocks(&src); err != nil {
			return Output{}, err
		}
	}

	if cfg.CommentVariableName {
		fmt.Fprintf(&src, "%sFont information for %s %s%s", d.start, fd.displayName, d.end, nl)
	}
	fontInfo := expand(cfg.VarFontInfo, fd.varName)
	fmt.Fprintf(&hdr, "extern %s;%s", fontInfo, nl)

	line := func(value any, comment string) {
		fmt.Fprintf(&src, "\t%v, %s %s%s%s", value, d.start, comment, d.end, nl)
	}
	fmt.Fprintf(&src, "%s =%s{%s", fontInfo, nl, nl)
	if h, shown, err := cfg.DescFontHeight.value(fd.Height); err != nil {
		return Output{}, err
	} else if shown {
		line(h, "Character height")
	}
	line(fd.First.Offset, fmt.Sprintf("First character '%c'", fd.First.Char))
	line(fd.Last.Offset, fmt.Sprintf("Last character '%c'", fd.Last.Char))
	if !cfg.GenerateSpaceCharacterBitmap {
		line(cfg.SpaceGenerationPixels, "Width, in pixels, of space character")
	}
	charInfo := VariableName(expand(cfg.VarCharInfo, fd.varName))
	if cfg.GenerateLookupBlocks {
		if lookup {
			line(fd.lookupName(), "Character block lookup")
			line("NULL", "Character descriptor array")
		} else {
			line("NULL", "Character block lookup")
			line(charInfo, "Character descriptor array")
		}
	} else {
		line(charInfo, "Character descriptor array")
	}
	line(VariableName(bitmaps), "Character bitmap array")
	if cfg.AddCodePage {
		line(fd.Page.ID(), "CodePage "+fd.Page.Name())
	}
	src.WriteString("};" + nl)

	if lookup {
		fmt.Fprintf(&hdr, "extern const FONT_CHAR_INFO_LOOKUP %s[];%s", fd.lookupName(), nl)
	} else {
		fmt.Fprintf(&hdr, "extern %s[];%s", expand(cfg.VarCharInfo, fd.varName), nl)
	}

	return Output{Source: src.String(), Header: hdr.String()}, nil
}
