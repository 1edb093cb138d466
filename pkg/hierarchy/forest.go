// Package hierarchy organizes a normalized vocabulary into a forest.
//
// Every term that contains another vocabulary term as a substring gets a
// parent ("cs olive oil" -> "olive"). Following parents ends at a root.
// Fixed points are canonical names that never get a parent.
//
// The forest is an arena of nodes indexed by term. Root resolution keeps
// a visited set per walk, so a cyclic parent map is reported as
// ErrMalformedHierarchy instead of looping.
package hierarchy

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedHierarchy reports a cycle in the parent map.
var ErrMalformedHierarchy = errors.New("malformed hierarchy")

// CycleError names the term whose parent chain loops and the chain walked.
type CycleError struct {
	Term string
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: cycle from %q through %s", ErrMalformedHierarchy, e.Term, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrMalformedHierarchy }

const noParent = -1

type node struct {
	term   string
	parent int
	fixed  bool
}

// Forest is a set of terms with optional parent links.
type Forest struct {
	nodes []node
	index map[string]int
}

// NewForest creates a forest holding terms, none linked yet. Duplicate
// terms collapse to one node. Terms listed in fixedPoints are marked fixed.
func NewForest(terms []string, fixedPoints []string) *Forest {
	fixed := toSet(fixedPoints)
	f := &Forest{
		nodes: make([]node, 0, len(terms)),
		index: make(map[string]int, len(terms)),
	}
	for _, t := range terms {
		f.add(t, fixed)
	}
	return f
}

func (f *Forest) add(term string, fixed map[string]struct{}) int {
	if i, ok := f.index[term]; ok {
		return i
	}
	_, isFixed := fixed[term]
	f.nodes = append(f.nodes, node{term: term, parent: noParent, fixed: isFixed})
	f.index[term] = len(f.nodes) - 1
	return len(f.nodes) - 1
}

// Len returns the number of terms.
func (f *Forest) Len() int { return len(f.nodes) }

// Has reports whether term is in the forest.
func (f *Forest) Has(term string) bool {
	_, ok := f.index[term]
	return ok
}

// IsFixed reports whether term is a fixed point.
func (f *Forest) IsFixed(term string) bool {
	i, ok := f.index[term]
	return ok && f.nodes[i].fixed
}

// Link sets parent as the parent of child, adding either term if missing.
// Fixed points cannot be given a parent. Link does not check for cycles;
// they surface at resolution time.
func (f *Forest) Link(child, parent string) error {
	if child == parent {
		return fmt.Errorf("%w: %q cannot be its own parent", ErrMalformedHierarchy, child)
	}
	ci := f.add(child, nil)
	if f.nodes[ci].fixed {
		return fmt.Errorf("fixed point %q cannot have a parent", child)
	}
	pi := f.add(parent, nil)
	f.nodes[ci].parent = pi
	return nil
}

// Parent returns the parent of term, if any.
func (f *Forest) Parent(term string) (string, bool) {
	i, ok := f.index[term]
	if !ok || f.nodes[i].parent == noParent {
		return "", false
	}
	return f.nodes[f.nodes[i].parent].term, true
}

// Parents returns the flat child -> parent map.
func (f *Forest) Parents() map[string]string {
	out := make(map[string]string)
	for _, n := range f.nodes {
		if n.parent != noParent {
			out[n.term] = f.nodes[n.parent].term
		}
	}
	return out
}

// Root follows parent links from term to a node without a parent.
// A term without a parent, or unknown to the forest, is its own root.
func (f *Forest) Root(term string) (string, error) {
	i, ok := f.index[term]
	if !ok {
		return term, nil
	}
	r, err := f.root(i)
	if err != nil {
		return "", err
	}
	return f.nodes[r].term, nil
}

func (f *Forest) root(start int) (int, error) {
	visited := map[int]struct{}{start: {}}
	path := []string{f.nodes[start].term}
	v := start
	for f.nodes[v].parent != noParent {
		v = f.nodes[v].parent
		path = append(path, f.nodes[v].term)
		if _, seen := visited[v]; seen {
			return 0, &CycleError{Term: f.nodes[start].term, Path: path}
		}
		visited[v] = struct{}{}
	}
	return v, nil
}

// Roots maps every term that has a parent to its root. Terms without a
// parent are absent. The first cycle found aborts the whole batch.
func (f *Forest) Roots() (map[string]string, error) {
	out := make(map[string]string)
	for i, n := range f.nodes {
		if n.parent == noParent {
			continue
		}
		r, err := f.root(i)
		if err != nil {
			return nil, err
		}
		out[n.term] = f.nodes[r].term
	}
	return out, nil
}

// Resolve returns the root of every child in an explicit parent map.
func Resolve(parents map[string]string) (map[string]string, error) {
	f := NewForest(nil, nil)
	for _, child := range sortedKeys(parents) {
		if err := f.Link(child, parents[child]); err != nil {
			return nil, err
		}
	}
	return f.Roots()
}
