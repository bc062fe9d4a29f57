package dotfactory

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// FontName identifies the font a character set was generated from.
type FontName struct {
	Family string
	Style  string // empty for the regular style
	// Size in points; zero when the source has no meaningful size, as
	// with images and tile sheets.
	Size float64
}

// String returns the display form, for example "Verdana 12pt Bold".
func (n FontName) String() string {
	return strings.Join(n.parts(), " ")
}

// Variable returns the name in a form usable inside C identifiers, for
// example "verdana_12pt_Bold".
func (n FontName) Variable() string {
	return variableSafe(strings.Join(n.parts(), "_"))
}

func (n FontName) parts() []string {
	family := strings.TrimSpace(n.Family)
	if n.Size == 0 {
		return []string{family}
	}
	parts := []string{family, fmt.Sprintf("%dpt", int(math.Round(n.Size)))}
	if style := strings.TrimSpace(n.Style); style != "" && !strings.EqualFold(style, "regular") {
		parts = append(parts, style)
	}
	return parts
}

// variableSafe turns spaces into '_', drops every other character
// outside [A-Za-z0-9_], prefixes a
// leading digit with '_' and lower-cases the first letter.
func variableSafe(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == '_', r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			sb.WriteRune(r)
		case r == ' ':
			sb.WriteRune('_')
		}
	}
	out := []rune(sb.String())
	if len(out) == 0 {
		return "_"
	}
	if unicode.IsDigit(out[0]) {
		return "_" + string(out)
	}
	out[0] = unicode.ToLower(out[0])
	return string(out)
}

// VariableName extracts the identifier a declaration template declares:
// "const uint_8 verdanaBitmaps[] =" yields "verdanaBitmaps".
func VariableName(declaration string) string {
	var sb strings.Builder
	depth := 0
	for _, r := range declaration {
		switch {
		case r == '[':
			depth++
		case r == ']':
			depth = max(depth-1, 0)
		case depth == 0:
			sb.WriteRune(r)
		}
	}
	s := strings.TrimRight(sb.String(), " \t=")
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimLeft(fields[len(fields)-1], "*&")
}
