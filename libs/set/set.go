// Package set provides an immutable string set, safe for concurrent readers
// once built.
package set

import (
	"sort"
	"strings"
)

// Frozen is a read-only set of strings
type Frozen struct {
	members map[string]struct{}
	folded  map[string]struct{}
	sorted  []string
}

// Empty is the set with no members
var Empty = Frozen{}

// Freeze builds a set from items, duplicates and empty strings are dropped
func Freeze(items ...string) Frozen {
	if len(items) == 0 {
		return Empty
	}
	members := make(map[string]struct{}, len(items))
	folded := make(map[string]struct{}, len(items))
	sorted := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" {
			continue
		}
		if _, ok := members[item]; ok {
			continue
		}
		members[item] = struct{}{}
		folded[strings.ToLower(item)] = struct{}{}
		sorted = append(sorted, item)
	}
	if len(sorted) == 0 {
		return Empty
	}
	sort.Strings(sorted)
	return Frozen{members: members, folded: folded, sorted: sorted}
}

// Contains returns true if the given item is in the set
func (f Frozen) Contains(item string) bool {
	_, ok := f.members[item]
	return ok
}

// ContainsFold is Contains under simple case folding
func (f Frozen) ContainsFold(item string) bool {
	_, ok := f.folded[strings.ToLower(item)]
	return ok
}

// Cardinality returns the number of elements in the set
func (f Frozen) Cardinality() int {
	return len(f.sorted)
}

// IsEmpty is true when the set has no members
func (f Frozen) IsEmpty() bool {
	return len(f.sorted) == 0
}

// Items returns the members in lexical order
func (f Frozen) Items() []string {
	out := make([]string, len(f.sorted))
	copy(out, f.sorted)
	return out
}
