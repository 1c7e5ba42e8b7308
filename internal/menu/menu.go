// Package menu holds the menu tree the navigator walks: loading from disk,
// key resolution, and label path lookup.
package menu

import "strings"

const pathSeparator = "/"

// Tree is a loaded menu definition. It is read-only once compiled.
type Tree struct {
	Root   *Node
	Source string
}

// Walk visits every node depth-first in display order. path holds the
// labels from below the root down to the visited node. Returning false
// skips the node's children.
func (t *Tree) Walk(fn func(path []string, n *Node) bool) {
	if t == nil || t.Root == nil {
		return
	}
	walk(nil, t.Root, fn)
}

func walk(path []string, n *Node, fn func([]string, *Node) bool) {
	if !fn(path, n) {
		return
	}
	for _, child := range n.Children {
		next := make([]string, len(path), len(path)+1)
		copy(next, path)
		walk(append(next, child.Label), child, fn)
	}
}

// Find resolves a "/" separated label path, matching labels
// case-insensitively. The empty path is the root.
func (t *Tree) Find(path string) (*Node, bool) {
	if t == nil || t.Root == nil {
		return nil, false
	}
	node := t.Root
	for _, segment := range splitPath(path) {
		next := child(node, segment)
		if next == nil {
			return nil, false
		}
		node = next
	}
	return node, true
}

// Subtree returns a tree rooted at the node named by path.
func (t *Tree) Subtree(path string) (*Tree, bool) {
	node, ok := t.Find(path)
	if !ok {
		return nil, false
	}
	return &Tree{Root: node, Source: t.Source}, true
}

// Count returns the number of nodes below the root.
func (t *Tree) Count() int {
	n := -1
	t.Walk(func([]string, *Node) bool {
		n++
		return true
	})
	if n < 0 {
		return 0
	}
	return n
}

func child(n *Node, label string) *Node {
	for _, c := range n.Children {
		if strings.EqualFold(strings.TrimSpace(c.Label), label) {
			return c
		}
	}
	return nil
}

func splitPath(path string) []string {
	parts := strings.Split(path, pathSeparator)
	out := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
