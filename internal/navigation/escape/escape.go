// Package escape provides the HTML escapers used when emitting menu markup.
package escape

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/a-h/templ"
)

// Escaper escapes text for HTML content and attribute contexts.
type Escaper interface {
	EscapeHTML(s string) string
	EscapeHTMLAttr(s string) string
}

// Standard escapes &, <, >, ' and " in both contexts, the same way templ does.
type Standard struct{}

// EscapeHTML escapes s for element content.
func (Standard) EscapeHTML(s string) string { return templ.EscapeString(s) }

// EscapeHTMLAttr escapes s for a double quoted attribute value.
func (Standard) EscapeHTMLAttr(s string) string { return templ.EscapeString(s) }

// Strict escapes content like Standard but encodes attribute values so that
// only [A-Za-z0-9,.-_] pass through unchanged, which keeps values safe even
// in unquoted attributes.
type Strict struct{}

// EscapeHTML escapes s for element content.
func (Strict) EscapeHTML(s string) string { return templ.EscapeString(s) }

// EscapeHTMLAttr encodes s for any attribute context.
func (Strict) EscapeHTMLAttr(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if isAttrSafe(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteString(attrEntity(r, size))
	}
	return b.String()
}

func isAttrSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == ',', r == '.', r == '-', r == '_':
		return true
	}
	return false
}

func attrEntity(r rune, size int) string {
	switch r {
	case '"':
		return "&quot;"
	case '&':
		return "&amp;"
	case '<':
		return "&lt;"
	case '>':
		return "&gt;"
	}
	if r == utf8.RuneError && size <= 1 {
		return "&#xFFFD;"
	}
	// Control characters other than tab, newline and carriage return have no
	// HTML representation.
	if (r <= 0x1f && r != '\t' && r != '\n' && r != '\r') || (r >= 0x7f && r <= 0x9f) {
		return "&#xFFFD;"
	}
	if r <= 0xff {
		return fmt.Sprintf("&#x%02X;", r)
	}
	return fmt.Sprintf("&#x%04X;", r)
}
