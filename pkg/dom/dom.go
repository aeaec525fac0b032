// Package dom is a small in-memory HTML document model over golang.org/x/net/html:
// parsing, CSS queries through cascadia, attribute and text access, and
// rendering back.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed HTML page.
type Document struct {
	root *html.Node
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("could not parse html: %w", err)
	}

	return &Document{root: root}, nil
}

// ParseString is Parse for in-memory markup.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Root returns the document node.
func (d *Document) Root() *html.Node { return d.root }

// Body returns the body element or nil.
func (d *Document) Body() *html.Node {
	return First(d.root, MustCompile("body"))
}

// Find returns the first element matching sel in document order, or nil.
func (d *Document) Find(sel *Selector) *html.Node { return First(d.root, sel) }

// FindAll returns every element matching sel in document order.
func (d *Document) FindAll(sel *Selector) []*html.Node { return All(d.root, sel) }

// Render serializes the document.
func (d *Document) Render() string {
	var buf bytes.Buffer
	_ = html.Render(&buf, d.root)

	return buf.String()
}

// First returns the first descendant of root (root included) matching sel.
func First(root *html.Node, sel *Selector) *html.Node {
	return sel.sel.MatchFirst(root)
}

// All returns the descendants of root (root included) matching sel.
func All(root *html.Node, sel *Selector) []*html.Node {
	return sel.sel.MatchAll(root)
}

// Closest returns n or its nearest ancestor matching sel, or nil.
func Closest(n *html.Node, sel *Selector) *html.Node {
	for ; n != nil; n = n.Parent {
		if sel.Match(n) {
			return n
		}
	}

	return nil
}

// walk visits nodes depth first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}

	return true
}

// Attr returns the value of an attribute on a node.
func Attr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)

	return v
}

// HasAttr checks if a node has a specific attribute.
func HasAttr(n *html.Node, key string) bool {
	_, ok := lookupAttr(n, key)

	return ok
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}

	return "", false
}

// SetAttr sets or replaces an attribute.
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val

			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes an attribute if present.
func RemoveAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != key {
			out = append(out, a)
		}
	}
	n.Attr = out
}

// Text returns the concatenated text content of n.
func Text(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}

		return true
	})

	return sb.String()
}

// SetText replaces the children of n with a single text node.
func SetText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}
