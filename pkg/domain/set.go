package domain

import (
	"encoding/json"
	"slices"
)

// Set is a set of canonical usernames. The zero value is not usable; create
// sets with NewSet.
type Set map[Username]struct{}

// NewSet builds a set from already canonical usernames.
func NewSet(users ...Username) Set {
	s := make(Set, len(users))
	for _, u := range users {
		s.Add(u)
	}

	return s
}

// ParseSet builds a set from raw strings, canonicalizing each entry.
func ParseSet(raw []string) Set {
	return NewSet(NormalizeAll(raw)...)
}

// Add inserts u. Empty usernames are ignored.
func (s Set) Add(u Username) {
	if u == "" {
		return
	}
	s[u] = struct{}{}
}

// Remove deletes u.
func (s Set) Remove(u Username) { delete(s, u) }

// Has reports whether u is in the set.
func (s Set) Has(u Username) bool {
	_, ok := s[u]

	return ok
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for u := range s {
		out[u] = struct{}{}
	}

	return out
}

// Sorted returns the members in ascending order.
func (s Set) Sorted() []Username {
	out := make([]Username, 0, len(s))
	for u := range s {
		out = append(out, u)
	}
	slices.Sort(out)

	return out
}

// Strings returns the sorted members as plain strings.
func (s Set) Strings() []string {
	out := make([]string, 0, len(s))
	for _, u := range s.Sorted() {
		out = append(out, string(u))
	}

	return out
}

// MarshalJSON encodes the set as a sorted list of strings, which is the
// persisted representation.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

// UnmarshalJSON decodes a list of strings, canonicalizing every entry.
func (s *Set) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseSet(raw)

	return nil
}
