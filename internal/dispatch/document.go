package dispatch

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Element is one node of a tagged document: a namespace-qualified name,
// optional text content, and child elements. Leaves carry text, interior
// nodes carry children; the builder never mixes the two.
type Element struct {
	Space    string
	Local    string
	Text     string
	Children []*Element
}

// NewElement creates an empty element with the given namespace and local name.
func NewElement(space, local string) *Element {
	return &Element{Space: space, Local: local}
}

// TextElement creates a leaf element with text content.
func TextElement(space, local, text string) *Element {
	return &Element{Space: space, Local: local, Text: text}
}

// Append adds child elements and returns the receiver for chaining.
func (el *Element) Append(children ...*Element) *Element {
	el.Children = append(el.Children, children...)
	return el
}

// Find returns the first element matching (space, local) in document order,
// including the receiver itself, or nil if none matches.
func (el *Element) Find(space, local string) *Element {
	if el == nil {
		return nil
	}
	if el.Space == space && el.Local == local {
		return el
	}
	for _, child := range el.Children {
		if found := child.Find(space, local); found != nil {
			return found
		}
	}
	return nil
}

// Name returns the element's qualified name.
func (el *Element) Name() xml.Name {
	return xml.Name{Space: el.Space, Local: el.Local}
}

// Depth returns the height of the element tree; a childless element has depth 1.
func (el *Element) Depth() int {
	max := 0
	for _, child := range el.Children {
		if d := child.Depth(); d > max {
			max = d
		}
	}
	return max + 1
}

// MarshalXML implements [xml.Marshaler]. The namespace is declared once as a
// default-namespace attribute on the receiver; descendants inherit it.
func (el *Element) MarshalXML(enc *xml.Encoder, _ xml.StartElement) error {
	return el.encode(enc, true)
}

func (el *Element) encode(enc *xml.Encoder, declareNS bool) error {
	start := xml.StartElement{Name: xml.Name{Local: el.Local}}
	if declareNS && el.Space != "" {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: "xmlns"},
			Value: el.Space,
		})
	}

	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if el.Text != "" {
		if err := enc.EncodeToken(xml.CharData(el.Text)); err != nil {
			return err
		}
	}
	for _, child := range el.Children {
		if err := child.encode(enc, child.Space != el.Space); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// Marshal renders the element tree as an XML byte slice.
func Marshal(el *Element) ([]byte, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	if err := el.encode(enc, true); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// Parse reads an XML document into an [Element] tree. Namespace prefixes are
// resolved by the decoder, so Find works on (namespace, local) pairs no
// matter how the sender spelled them.
func Parse(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)

	var root *Element
	var stack []*Element
	var text strings.Builder

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse document: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := NewElement(t.Name.Space, t.Name.Local)
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("failed to parse document: multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
			text.Reset()

		case xml.CharData:
			text.Write(t)

		case xml.EndElement:
			el := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(el.Children) == 0 {
				el.Text = strings.TrimSpace(text.String())
			}
			text.Reset()
		}
	}

	if root == nil {
		return nil, fmt.Errorf("failed to parse document: no root element")
	}
	return root, nil
}

// ParseBytes is a convenience wrapper around [Parse].
func ParseBytes(data []byte) (*Element, error) {
	return Parse(bytes.NewReader(data))
}
