// Package htmlelement builds single HTML elements from a tag, ordered
// attributes and pre-rendered content.
package htmlelement

import (
	"strings"

	"finitefield.org/hanko-navigation/internal/navigation/escape"
)

// Attribute is a single HTML attribute. Boolean attributes render as a bare name.
type Attribute struct {
	Name    string
	Value   string
	Boolean bool
}

// Attributes keeps attributes in insertion order.
type Attributes []Attribute

// Set replaces the value of name in place, or appends it.
func (a Attributes) Set(name, value string) Attributes {
	for i := range a {
		if a[i].Name == name {
			a[i].Value = value
			a[i].Boolean = false
			return a
		}
	}
	return append(a, Attribute{Name: name, Value: value})
}

// SetBool adds or removes a boolean attribute.
func (a Attributes) SetBool(name string, on bool) Attributes {
	for i := range a {
		if a[i].Name == name {
			if !on {
				return append(a[:i], a[i+1:]...)
			}
			a[i] = Attribute{Name: name, Boolean: true}
			return a
		}
	}
	if !on {
		return a
	}
	return append(a, Attribute{Name: name, Boolean: true})
}

// Get returns the value stored for name.
func (a Attributes) Get(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Builder renders an element.
type Builder interface {
	Build(tag string, attrs Attributes, content string) string
}

// voidElements never carry content or a closing tag.
var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {}, "img": {},
	"input": {}, "link": {}, "meta": {}, "source": {}, "track": {}, "wbr": {},
}

// Element is the default Builder. Content is inserted verbatim; callers
// escape it beforehand.
type Element struct {
	escaper escape.Escaper
}

// New returns an Element escaping attribute values with esc (escape.Standard when nil).
func New(esc escape.Escaper) *Element {
	if esc == nil {
		esc = escape.Standard{}
	}
	return &Element{escaper: esc}
}

// Build renders <tag attrs>content</tag>. Attributes with an empty value are skipped.
func (e *Element) Build(tag string, attrs Attributes, content string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(tag)
	b.WriteString(e.Attribs(attrs))
	b.WriteByte('>')
	if _, void := voidElements[tag]; void {
		return b.String()
	}
	b.WriteString(content)
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteByte('>')
	return b.String()
}

// Attribs renders the attribute list with a leading space per attribute.
func (e *Element) Attribs(attrs Attributes) string {
	var b strings.Builder
	for _, attr := range attrs {
		name := strings.ToLower(strings.TrimSpace(attr.Name))
		if name == "" {
			continue
		}
		if attr.Boolean {
			b.WriteByte(' ')
			b.WriteString(e.escaper.EscapeHTML(name))
			continue
		}
		if attr.Value == "" {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(e.escaper.EscapeHTML(name))
		b.WriteString(`="`)
		b.WriteString(e.escaper.EscapeHTMLAttr(attr.Value))
		b.WriteByte('"')
	}
	return b.String()
}
