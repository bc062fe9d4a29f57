package codepage

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// utf16MaxOffset is the last enumerated UTF-16 code unit. 0xFFFF is a
// noncharacter and is left out.
const utf16MaxOffset = 0xFFFE

var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

func newUTF16Page() *Page {
	return &Page{id: UTF16, name: "utf-16"}
}

// encodeUTF16 returns the single code unit for r. Characters needing a
// surrogate pair have no offset.
func encodeUTF16(r rune) (int, bool) {
	if r < 0 || r > utf16MaxOffset || !utf8.ValidRune(r) {
		return 0, false
	}
	b, err := utf16LE.NewEncoder().Bytes([]byte(string(r)))
	if err != nil || len(b) != 2 {
		return 0, false
	}
	return int(b[0]) | int(b[1])<<8, true
}

// decodeUTF16 returns the character for a single code unit. Surrogate
// halves are rejected.
func decodeUTF16(offset int) (rune, bool) {
	if offset < 0 || offset > utf16MaxOffset || (offset >= 0xD800 && offset <= 0xDFFF) {
		return 0, false
	}
	b, err := utf16LE.NewDecoder().Bytes([]byte{byte(offset), byte(offset >> 8)})
	if err != nil {
		return 0, false
	}
	r, _ := utf8.DecodeRune(b)
	if r == utf8.RuneError && offset != 0xFFFD {
		return 0, false
	}
	return r, true
}
