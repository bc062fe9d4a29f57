// Package charset resolves free text into the ordered set of characters a
// font is generated for.
package charset

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/wbrown/dotfactory/codepage"
)

// rangeToken matches <<start-end>>. Endpoints are validated separately so
// that a malformed token stays in the text.
var rangeToken = regexp.MustCompile(`<<([^<>]*?)-([^<>]*?)>>`)

// ExpandRanges replaces every well-formed <<start-end>> token with the
// characters found at offsets start..end of page. Endpoints are decimal or
// 0x-prefixed hex and may be surrounded by spaces. Offsets with no
// character are skipped. Tokens with unparsable endpoints are left as-is.
func ExpandRanges(text string, page *codepage.Page) string {
	return rangeToken.ReplaceAllStringFunc(text, func(token string) string {
		m := rangeToken.FindStringSubmatch(token)
		start, ok1 := parseEndpoint(m[1])
		end, ok2 := parseEndpoint(m[2])
		if !ok1 || !ok2 {
			return token
		}
		if end > page.MaxOffset() {
			end = page.MaxOffset()
		}
		var sb strings.Builder
		for offset := start; offset <= end; offset++ {
			if r, ok := page.Decode(offset); ok {
				sb.WriteRune(r)
			}
		}
		return sb.String()
	})
}

func parseEndpoint(s string) (int, bool) {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(s, base, 31)
	if err != nil {
		return 0, false
	}
	return int(v), true
}

// Build returns the characters of text to generate: ranges expanded,
// line breaks and tabs removed, spaces removed unless includeSpace,
// characters outside page dropped, duplicates removed and the result
// sorted by offset.
func Build(text string, page *codepage.Page, includeSpace bool) []rune {
	text = ExpandRanges(text, page)

	seen := make(map[rune]bool)
	var chars []rune
	for _, r := range text {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			continue
		case r == ' ' && !includeSpace:
			continue
		case seen[r] || !page.Contains(r):
			continue
		}
		seen[r] = true
		chars = append(chars, r)
	}

	sort.Slice(chars, func(i, j int) bool {
		return page.Difference(chars[i], chars[j]) > 0
	})
	return chars
}
