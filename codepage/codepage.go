// Package codepage maps characters to the numeric offsets used to index
// generated font tables. Each supported code page is an immutable Page
// built once on first use.
package codepage

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// ErrUnknownCodePage is returned when a code page id or name is not
// supported.
var ErrUnknownCodePage = errors.New("unknown code page")

// Supported code page ids.
const (
	IBM437      = 437
	IBM850      = 850
	IBM852      = 852
	IBM858      = 858
	UTF16       = 1200
	Windows1252 = 1252
	USASCII     = 20127
	ISO88591    = 28591
)

// Page is an immutable offset<->character mapping. It is safe for
// concurrent use.
type Page struct {
	id   int
	name string

	// table is nil for UTF-16, which is computed rather than tabulated.
	table []rune
	index map[rune]int

	validOnce sync.Once
	valid     []rune
}

type pageDef struct {
	name    string
	aliases []string
	build   func() *Page
}

var definitions = map[int]pageDef{
	IBM437:      {"IBM437", []string{"cp437", "437"}, func() *Page { return newTablePage(IBM437, "IBM437", build437()) }},
	IBM850:      {"ibm850", []string{"cp850", "850"}, func() *Page { return newTablePage(IBM850, "ibm850", build850()) }},
	IBM852:      {"ibm852", []string{"cp852", "852"}, func() *Page { return newTablePage(IBM852, "ibm852", build852()) }},
	IBM858:      {"IBM00858", []string{"cp858", "858"}, func() *Page { return newTablePage(IBM858, "IBM00858", build858()) }},
	UTF16:       {"utf-16", []string{"utf16", "unicode", "1200"}, func() *Page { return newUTF16Page() }},
	Windows1252: {"Windows-1252", []string{"cp1252", "1252"}, func() *Page { return newTablePage(Windows1252, "Windows-1252", build1252()) }},
	USASCII:     {"us-ascii", []string{"ascii", "20127"}, func() *Page { return newTablePage(USASCII, "us-ascii", buildASCII()) }},
	ISO88591:    {"iso-8859-1", []string{"latin1", "28591"}, func() *Page { return newTablePage(ISO88591, "iso-8859-1", buildLatin1()) }},
}

var (
	cacheMu sync.Mutex
	cache   = map[int]*Page{}
)

// Lookup returns the page with the given id.
func Lookup(id int) (*Page, error) {
	def, ok := definitions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCodePage, id)
	}
	cacheMu.Lock()
	defer cacheMu.Unlock()
	if p, ok := cache[id]; ok {
		return p, nil
	}
	p := def.build()
	cache[id] = p
	return p, nil
}

// ByName resolves a page from its header name, an alias or a numeric id.
// Matching is case-insensitive.
func ByName(name string) (*Page, error) {
	name = strings.TrimSpace(name)
	if id, err := strconv.Atoi(name); err == nil {
		return Lookup(id)
	}
	for id, def := range definitions {
		if strings.EqualFold(def.name, name) {
			return Lookup(id)
		}
		for _, alias := range def.aliases {
			if strings.EqualFold(alias, name) {
				return Lookup(id)
			}
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCodePage, name)
}

// IDs returns the supported code page ids in ascending order.
func IDs() []int {
	ids := make([]int, 0, len(definitions))
	for id := range definitions {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Name returns the header name of a supported code page id, or an empty
// string.
func Name(id int) string {
	return definitions[id].name
}

func newTablePage(id int, name string, table []rune) *Page {
	p := &Page{
		id:    id,
		name:  name,
		table: table,
		index: make(map[rune]int, len(table)),
	}
	for offset, r := range table {
		if r == invalidRune {
			continue
		}
		if _, dup := p.index[r]; !dup {
			p.index[r] = offset
		}
	}
	return p
}

// ID returns the numeric code page id.
func (p *Page) ID() int { return p.id }

// Name returns the code page header name, e.g. "utf-16".
func (p *Page) Name() string { return p.name }

// Encode returns the offset of r in the page.
func (p *Page) Encode(r rune) (int, bool) {
	if p.table == nil {
		return encodeUTF16(r)
	}
	offset, ok := p.index[r]
	return offset, ok
}

// Decode returns the character stored at offset.
func (p *Page) Decode(offset int) (rune, bool) {
	if p.table == nil {
		return decodeUTF16(offset)
	}
	if offset < 0 || offset >= len(p.table) || p.table[offset] == invalidRune {
		return 0, false
	}
	return p.table[offset], true
}

// MaxOffset returns the largest offset the page can address.
func (p *Page) MaxOffset() int {
	if p.table == nil {
		return utf16MaxOffset
	}
	return len(p.table) - 1
}

// Contains reports whether r is one of the page's valid characters.
// Control characters are never valid.
func (p *Page) Contains(r rune) bool {
	if r < ' ' {
		return false
	}
	offset, ok := p.Encode(r)
	if !ok {
		return false
	}
	back, ok := p.Decode(offset)
	return ok && back == r
}

// ValidCharacters returns every character of the page in ascending offset
// order. Control characters are reported as a space and duplicates are
// dropped, keeping the first occurrence. The returned slice must not be
// modified.
func (p *Page) ValidCharacters() []rune {
	p.validOnce.Do(func() {
		seen := make(map[rune]bool)
		for offset := 0; offset <= p.MaxOffset(); offset++ {
			r, ok := p.Decode(offset)
			if !ok {
				continue
			}
			if r < ' ' {
				r = ' '
			}
			if seen[r] {
				continue
			}
			seen[r] = true
			p.valid = append(p.valid, r)
		}
	})
	return p.valid
}

// First returns the first valid character.
func (p *Page) First() rune {
	v := p.ValidCharacters()
	return v[0]
}

// Last returns the last valid character.
func (p *Page) Last() rune {
	v := p.ValidCharacters()
	return v[len(v)-1]
}

// Difference returns offset(b) - offset(a). Characters missing from the
// page count as offset 0.
func (p *Page) Difference(a, b rune) int {
	oa, _ := p.Encode(a)
	ob, _ := p.Encode(b)
	return ob - oa
}
