package codepage

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// invalidRune marks a table slot with no character; charmap decodes
// undefined bytes to the same value.
const invalidRune = utf8.RuneError

// dosGlyphs replaces the control range of code page 437 with the glyphs a
// DOS screen shows for those bytes. Offset 0 stays NUL.
var dosGlyphs = [32]rune{
	0, '☺', '☻', '♥', '♦', '♣', '♠', '•', '◘', '○', '◙', '♂', '♀', '♪', '♫', '☼',
	'►', '◄', '↕', '‼', '¶', '§', '▬', '↨', '↑', '↓', '→', '←', '∟', '↔', '▲', '▼',
}

// fromCharmap returns a fresh 256 entry table decoded from cm.
func fromCharmap(cm *charmap.Charmap) []rune {
	table := make([]rune, 256)
	for b := 0; b < 256; b++ {
		table[b] = cm.DecodeByte(byte(b))
	}
	return table
}

// build437 returns the DOS code page 437 table with graphic glyphs in the
// control range and the house glyph at 0x7F.
func build437() []rune {
	table := fromCharmap(charmap.CodePage437)
	copy(table, dosGlyphs[:])
	table[0x7F] = '⌂'
	return table
}

// overlay437 copies the upper half of cm over a fresh 437 table. The
// lower half of the DOS locale pages is identical to 437.
func overlay437(cm *charmap.Charmap) []rune {
	table := build437()
	for b := 0x80; b < 0x100; b++ {
		table[b] = cm.DecodeByte(byte(b))
	}
	return table
}

func build850() []rune { return overlay437(charmap.CodePage850) }

func build852() []rune { return overlay437(charmap.CodePage852) }

// build858 is 850 with the euro sign at 0xD5.
func build858() []rune { return overlay437(charmap.CodePage858) }

func build1252() []rune { return fromCharmap(charmap.Windows1252) }

func buildLatin1() []rune { return fromCharmap(charmap.ISO8859_1) }

// buildASCII is the identity on 0..127.
func buildASCII() []rune {
	table := make([]rune, 128)
	for i := range table {
		table[i] = rune(i)
	}
	return table
}
