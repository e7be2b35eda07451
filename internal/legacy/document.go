// Package legacy reads the flat XML configuration documents written by
// older releases. The document is loaded whole and is read-only afterwards.
package legacy

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

// Element is one node of a parsed legacy document.
type Element struct {
	Name     string
	Attrs    map[string]string
	Children []*Element
	text     strings.Builder
}

// Text returns the concatenated character data directly inside e.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	return e.text.String()
}

// Attr returns the attribute value, or "" when absent.
func (e *Element) Attr(name string) string {
	if e == nil {
		return ""
	}
	return e.Attrs[name]
}

// HasAttr reports whether the attribute is present.
func (e *Element) HasAttr(name string) bool {
	if e == nil {
		return false
	}
	_, ok := e.Attrs[name]
	return ok
}

// Child returns the first direct child named name, or nil.
func (e *Element) Child(name string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// HasChild reports whether a direct child named name exists.
func (e *Element) HasChild(name string) bool {
	return e.Child(name) != nil
}

// Descendants returns every element below e named name, in document order.
func (e *Element) Descendants(name string) []*Element {
	if e == nil {
		return nil
	}
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
		out = append(out, c.Descendants(name)...)
	}
	return out
}

// Parse builds an element tree from a complete XML document. Trailing
// garbage or an unterminated document is an error. Documents declaring a
// non-UTF-8 encoding are transcoded.
func Parse(data []byte) (*Element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = true
	dec.CharsetReader = charset.NewReaderLabel

	var root *Element
	var stack []*Element

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing document: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name.Local, Attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				el.Attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("parsing document: multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("parsing document: no root element")
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("parsing document: unexpected end of input")
	}
	return root, nil
}

// BackupSuffix names the copy kept next to a document while it is rewritten.
const BackupSuffix = ".backup"

// Load reads and parses the document at path. When the file is missing or
// unreadable as XML the backup copy is tried before giving up.
func Load(path string) (*Element, error) {
	root, err := loadFile(path)
	if err == nil {
		return root, nil
	}
	if backup, berr := loadFile(path + BackupSuffix); berr == nil {
		return backup, nil
	}
	return nil, err
}

func loadFile(path string) (*Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return Parse(data)
}
