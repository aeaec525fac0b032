package dom

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Selector is a compiled CSS selector.
type Selector struct {
	src string
	sel cascadia.Selector
}

// Compile parses sel.
func Compile(sel string) (*Selector, error) {
	compiled, err := cascadia.Compile(sel)
	if err != nil {
		return nil, fmt.Errorf("could not parse selector %q: %w", sel, err)
	}

	return &Selector{src: sel, sel: compiled}, nil
}

// MustCompile is Compile for selectors known at build time.
func MustCompile(sel string) *Selector {
	s, err := Compile(sel)
	if err != nil {
		panic(err)
	}

	return s
}

// String returns the source selector.
func (s *Selector) String() string { return s.src }

// Match reports whether n is an element matching the selector.
func (s *Selector) Match(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && s.sel.Match(n)
}
