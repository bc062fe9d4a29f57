package dotfactory

import (
	"fmt"
	"math"
	"strings"

	"github.com/wbrown/dotfactory/codepage"
)

// DescriptorBlock is a run of characters whose descriptors form one
// array. Characters missing between two entries are held by nil
// placeholders so that an entry can be found by offset alone.
type DescriptorBlock struct {
	Entries []*CharacterDescriptor
}

// First returns the first character of the block.
func (b DescriptorBlock) First() *CharacterDescriptor { return b.Entries[0] }

// Last returns the last character of the block.
func (b DescriptorBlock) Last() *CharacterDescriptor { return b.Entries[len(b.Entries)-1] }

// BuildBlocks splits chars, sorted by code-page offset, into descriptor
// blocks. A new block starts when the offset distance to the previous
// character is at least threshold; smaller gaps are filled with
// placeholders.
func BuildBlocks(chars []*CharacterDescriptor, page *codepage.Page, threshold int) []DescriptorBlock {
	var blocks []DescriptorBlock
	var prev *CharacterDescriptor
	for _, c := range chars {
		if prev == nil || page.Difference(prev.Char, c.Char) >= threshold {
			blocks = append(blocks, DescriptorBlock{})
		} else {
			for i := prev.Offset + 1; i < c.Offset; i++ {
				blocks[len(blocks)-1].Entries = append(blocks[len(blocks)-1].Entries, nil)
			}
		}
		cur := &blocks[len(blocks)-1]
		cur.Entries = append(cur.Entries, c)
		prev = c
	}
	return blocks
}

// blockThreshold returns the offset gap that starts a new block.
func blockThreshold(cfg Config) int {
	if !cfg.GenerateLookupBlocks {
		return math.MaxInt
	}
	return cfg.LookupBlocksNewAfterCharCount
}

// blockEntry renders one descriptor line: "\t{width, height, offset},"
// padded to 15 columns, then the character as a comment. Placeholders
// have no comment.
func blockEntry(c *CharacterDescriptor, cfg Config, delims comments) (string, error) {
	var w, h, offset int
	if c != nil {
		w, h, offset = c.Glyph.Size.X, c.Glyph.Size.Y, c.ByteOffset
	}
	var sb strings.Builder
	sb.WriteString("\t{")
	for _, dim := range []struct {
		f DescriptorFormat
		v int
	}{{cfg.DescCharWidth, w}, {cfg.DescCharHeight, h}} {
		v, shown, err := dim.f.value(dim.v)
		if err != nil {
			return "", err
		}
		if shown {
			fmt.Fprintf(&sb, "%d, ", v)
		}
	}
	fmt.Fprintf(&sb, "%d},", offset)
	if c == nil {
		return sb.String() + cfg.Newline, nil
	}

	char := string(c.Char)
	if c.Char == '\\' {
		char = `\ (backslash)`
	}
	return fmt.Sprintf("%-15s%s%s%s%s", sb.String(), delims.start, char, delims.end, cfg.Newline), nil
}

func descriptorHeading(name string, f DescriptorFormat) (string, error) {
	switch f {
	case DontDisplay:
		return "", nil
	case DisplayInBits:
		return fmt.Sprintf("[Char %s in bits], ", name), nil
	case DisplayInBytes:
		return fmt.Sprintf("[Char %s in bytes], ", name), nil
	default:
		return "", fmt.Errorf("%w: descriptor format %d", ErrUnsupportedConfig, int(f))
	}
}

// renderBlocks writes every descriptor block and, when there is more
// than one, the block lookup array. It reports whether a lookup array
// was written.
func (fd *FontDescriptor) renderBlocks(src *strings.Builder) (bool, error) {
	cfg, nl, d := fd.Config, fd.Config.Newline, fd.comments
	multiple := len(fd.Blocks) > 1
	charInfo := expand(cfg.VarCharInfo, fd.varName)

	widthHeading, err := descriptorHeading("width", cfg.DescCharWidth)
	if err != nil {
		return false, err
	}
	heightHeading, err := descriptorHeading("height", cfg.DescCharHeight)
	if err != nil {
		return false, err
	}

	for i, block := range fd.Blocks {
		if cfg.CommentVariableName {
			suffix := ""
			if multiple {
				suffix = fmt.Sprintf(" (block #%d)", i)
			}
			fmt.Fprintf(src, "%sCharacter descriptors for %s%s%s%s", d.start, fd.displayName, suffix, d.end, nl)
			fmt.Fprintf(src, "%s{ %s%s[Offset into %sCharBitmaps in bytes] }%s%s",
				d.start, widthHeading, heightHeading, fd.varName, d.end, nl)
		}
		name := charInfo
		if multiple {
			name += fmt.Sprintf("Block%d", i)
		}
		fmt.Fprintf(src, "%s[] = %s{%s", name, nl, nl)
		for _, c := range block.Entries {
			line, err := blockEntry(c, cfg, d)
			if err != nil {
				return false, err
			}
			src.WriteString(line)
		}
		src.WriteString("};" + nl + nl)
	}
	if !multiple {
		return false, nil
	}

	if cfg.CommentVariableName {
		fmt.Fprintf(src, "%sBlock lookup array for %s %s%s", d.start, fd.displayName, d.end, nl)
		fmt.Fprintf(src, "%s{ start character, end character, ptr to descriptor block array }%s%s", d.start, d.end, nl)
	}
	fmt.Fprintf(src, "const FONT_CHAR_INFO_LOOKUP %s[] = %s{%s", fd.lookupName(), nl, nl)
	charInfoVar := VariableName(charInfo)
	for i, block := range fd.Blocks {
		fmt.Fprintf(src, "\t{%d, %d, &%sBlock%d},%s", block.First().Offset, block.Last().Offset, charInfoVar, i, nl)
	}
	src.WriteString("};" + nl + nl)
	return true, nil
}
