package markup

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Attr is a single element attribute. Attribute order is preserved on output.
type Attr struct {
	Name  string
	Value string
}

// A is shorthand for building an [Attr].
func A(name string, value any) Attr {
	return Attr{Name: name, Value: formatValue(value)}
}

// Node is an element, a text run, or a fragment.
type Node struct {
	Tag      string // empty for fragments and text
	Key      string // identity for fragments, not rendered
	Attrs    []Attr
	Children []*Node
	Handlers Handlers

	text   string
	isText bool
}

// El creates an element with the given attributes and children.
// Nil children are dropped.
func El(tag string, attrs []Attr, children ...*Node) *Node {
	n := &Node{Tag: tag, Attrs: attrs}
	n.Append(children...)
	return n
}

// Text creates an escaped text node.
func Text(s string) *Node {
	return &Node{text: s, isText: true}
}

// Fragment groups children without introducing an element.
func Fragment(key string, children ...*Node) *Node {
	n := &Node{Key: key}
	n.Append(children...)
	return n
}

// IsFragment reports whether n renders only its children.
func (n *Node) IsFragment() bool { return n.Tag == "" && !n.isText }

// IsText reports whether n is a text node.
func (n *Node) IsText() bool { return n.isText }

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.Walk(func(c *Node) bool {
		if c.isText {
			sb.WriteString(c.text)
		}
		return true
	})
	return sb.String()
}

// Append adds non-nil children to n.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute.
func (n *Node) SetAttr(name string, value any) *Node {
	v := formatValue(value)
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = v
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: v})
	return n
}

// ID returns the element's id attribute, if any.
func (n *Node) ID() string {
	id, _ := n.Attr("id")
	return id
}

// Walk visits n and its descendants depth-first in document order.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns the first node (document order) for which match returns true.
func (n *Node) Find(match func(*Node) bool) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if match(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindAll returns all nodes matching match, in document order.
func (n *Node) FindAll(match func(*Node) bool) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if match(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// FindByID returns the element whose id attribute equals id.
func (n *Node) FindByID(id string) *Node {
	return n.Find(func(c *Node) bool { return c.ID() == id })
}

// Render serializes n. Elements are always written with an explicit closing
// tag, which is valid for both SVG and HTML output.
func (n *Node) Render(w io.Writer) error {
	var buf bytes.Buffer
	n.render(&buf)
	_, err := w.Write(buf.Bytes())
	return err
}

// String returns the serialized markup.
func (n *Node) String() string {
	var buf bytes.Buffer
	n.render(&buf)
	return buf.String()
}

func (n *Node) render(buf *bytes.Buffer) {
	if n == nil {
		return
	}
	switch {
	case n.isText:
		_ = xml.EscapeText(buf, []byte(n.text))
	case n.Tag == "":
		for _, c := range n.Children {
			c.render(buf)
		}
	default:
		buf.WriteByte('<')
		buf.WriteString(n.Tag)
		for _, a := range n.Attrs {
			fmt.Fprintf(buf, ` %s="%s"`, a.Name, EscapeAttr(a.Value))
		}
		buf.WriteByte('>')
		for _, c := range n.Children {
			c.render(buf)
		}
		buf.WriteString("</")
		buf.WriteString(n.Tag)
		buf.WriteByte('>')
	}
}

// EscapeAttr escapes s for use inside a double-quoted attribute.
func EscapeAttr(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Num formats a float with at most two decimals and no trailing zeros.
func Num(f float64) string {
	s := strconv.FormatFloat(f, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return Num(t)
	case float32:
		return Num(float64(t))
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}
