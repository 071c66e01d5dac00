package page

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type navigationDocument struct {
	Containers map[string][]pageDocument `yaml:"containers"`
}

type pageDocument struct {
	Label       string         `yaml:"label"`
	Title       string         `yaml:"title"`
	URI         string         `yaml:"uri"`
	Href        string         `yaml:"href"`
	ID          string         `yaml:"id"`
	Class       string         `yaml:"class"`
	Target      string         `yaml:"target"`
	LiClass     string         `yaml:"li_class"`
	ActiveClass string         `yaml:"active_class"`
	TextDomain  string         `yaml:"text_domain"`
	Resource    string         `yaml:"resource"`
	Privilege   string         `yaml:"privilege"`
	Order       *int           `yaml:"order"`
	Visible     *bool          `yaml:"visible"`
	Active      bool           `yaml:"active"`
	Pages       []pageDocument `yaml:"pages"`
	Extra       map[string]any `yaml:",inline"`
}

// LoadYAML parses a navigation document and registers each container it defines.
func LoadYAML(r io.Reader) (*Registry, error) {
	var doc navigationDocument
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("page: navigation document is empty")
		}
		return nil, fmt.Errorf("page: decode navigation: %w", err)
	}
	if len(doc.Containers) == 0 {
		return nil, fmt.Errorf("page: navigation document defines no containers")
	}

	reg := NewRegistry()
	for name, pages := range doc.Containers {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("page: container with empty name")
		}
		c := NewContainer()
		for i, pd := range pages {
			p, err := pd.toPage(fmt.Sprintf("%s[%d]", name, i))
			if err != nil {
				return nil, err
			}
			c.AddPage(p)
		}
		reg.Register(name, c)
	}
	return reg, nil
}

// LoadFile reads a navigation document from disk.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("page: open %s: %w", path, err)
	}
	defer f.Close()

	reg, err := LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, path)
	}
	return reg, nil
}

func (d pageDocument) toPage(where string) (*Page, error) {
	href := d.URI
	if href == "" {
		href = d.Href
	}
	if d.Label == "" && href == "" {
		return nil, fmt.Errorf("page: %s needs a label or uri", where)
	}
	p := &Page{
		Label:       d.Label,
		Title:       d.Title,
		Href:        href,
		ID:          d.ID,
		Class:       d.Class,
		Target:      d.Target,
		LiClass:     d.LiClass,
		ActiveClass: d.ActiveClass,
		TextDomain:  d.TextDomain,
		Resource:    d.Resource,
		Privilege:   d.Privilege,
		Order:       d.Order,
		Active:      d.Active,
	}
	if d.Visible != nil {
		p.Hidden = !*d.Visible
	}
	for key, value := range d.Extra {
		p.SetProperty(key, value)
	}
	for i, child := range d.Pages {
		cp, err := child.toPage(fmt.Sprintf("%s.pages[%d]", where, i))
		if err != nil {
			return nil, err
		}
		p.AddPage(cp)
	}
	return p, nil
}
