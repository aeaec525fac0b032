package domain

import "strings"

// Username is a Letterboxd account handle in canonical form: no surrounding
// whitespace or slashes, lowercase.
type Username string

// Normalize returns the canonical form of a raw handle, profile path or
// profile href ("/Alice/", " alice ", "https://letterboxd.com/alice/").
// The last path segment wins for values carrying more than one segment.
func Normalize(raw string) Username {
	s := strings.Trim(strings.TrimSpace(raw), "/")
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		s = s[i+1:]
	}

	return Username(strings.ToLower(strings.TrimSpace(s)))
}

// NormalizeAll canonicalizes every entry and drops the empty ones.
func NormalizeAll(raw []string) []Username {
	out := make([]Username, 0, len(raw))
	for _, r := range raw {
		if u := Normalize(r); u != "" {
			out = append(out, u)
		}
	}

	return out
}

// String implements fmt.Stringer.
func (u Username) String() string { return string(u) }
