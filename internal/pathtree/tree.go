// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package pathtree implements a tree of dotted-path segments, used to detect
// colliding property paths before any events are emitted for them.
//
// Each property contributes one linear chain of nodes. A tree accepts a chain
// only if it does not make an existing leaf path composite, or an existing
// composite path a leaf:
//
//	a.b   then a.b.c   -- collision
//	a.b.c then a.b     -- collision
//	a.b   then a.c     -- OK
package pathtree

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCollision is reported by Add when a chain collides with a path already
// recorded in the tree.
var ErrCollision = errors.New("path collision")

// A Node is a single path segment. A node owns its children; the parent link
// is for navigation only.
type Node struct {
	name     string
	children []*Node
	parent   *Node
}

// Chain constructs a linear chain of nodes, one per segment, and returns its
// first node. It returns nil if there are no segments.
func Chain(segs ...string) *Node {
	var head, cur *Node
	for _, seg := range segs {
		n := &Node{name: seg}
		if cur == nil {
			head = n
		} else {
			cur.addChild(n)
		}
		cur = n
	}
	return head
}

// Name returns the segment name of n.
func (n *Node) Name() string { return n.name }

// Parent returns the parent of n, or nil if n is a top-level node.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the children of n. The caller must not modify the slice.
func (n *Node) Children() []*Node { return n.children }

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }

// Path returns the segments from the top of the tree down to n.
func (n *Node) Path() []string {
	var out []string
	for cur := n; cur != nil; cur = cur.parent {
		out = append(out, cur.name)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func (n *Node) String() string { return strings.Join(n.Path(), ".") }

func (n *Node) addChild(c *Node) {
	c.parent = n
	n.children = append(n.children, c)
}

func (n *Node) child(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// A Tree records the paths of the properties accepted so far for a single
// document. The zero value is ready for use. A Tree is not safe for
// concurrent use.
type Tree struct {
	root Node
}

// Roots returns the top-level nodes of t.
func (t *Tree) Roots() []*Node { return t.root.children }

// Add records the path described by chain in t. If chain collides with a
// path already in t, Add reports an error wrapping ErrCollision and t is not
// modified. The chain must be linear (each node has at most one child), as
// constructed by Chain; after a successful Add its nodes belong to t.
func (t *Tree) Add(chain *Node) error {
	if chain == nil {
		return errors.New("empty path")
	}
	full := chainString(chain)
	parent := &t.root
	for {
		cur := parent.child(chain.name)
		if cur == nil {
			// Detach chain from its original parent and attach it here.
			chain.parent = nil
			if parent != &t.root {
				parent.addChild(chain)
			} else {
				t.root.children = append(t.root.children, chain)
			}
			return nil
		}
		switch {
		case cur.IsLeaf() && chain.IsLeaf():
			return fmt.Errorf("%w: %q is already defined", ErrCollision, cur)
		case !chain.IsLeaf() && cur.IsLeaf():
			return fmt.Errorf("%w: %q is already a leaf, cannot extend to %q", ErrCollision, cur, full)
		case chain.IsLeaf():
			return fmt.Errorf("%w: %q already has children", ErrCollision, cur)
		}
		parent, chain = cur, chain.children[0]
	}
}

// chainString renders the segments of a linear chain starting at n.
func chainString(n *Node) string {
	var segs []string
	for ; n != nil; n = firstChild(n) {
		segs = append(segs, n.name)
	}
	return strings.Join(segs, ".")
}

func firstChild(n *Node) *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}
