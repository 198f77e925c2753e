// Copyright 2022 Sogang University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package rbtree implements in-memory red-black trees.
//
// Nodes are kept in an arena and linked by integer handles rather than
// pointers: each node owns its two children, and its parent handle is a
// plain back-reference.  The zero handle plays the role of the black leaf
// sentinel without ever being written.
//
// The tree maintains the usual invariants after every mutation: the root is
// black, a red node has two black children and every path from a node to a
// leaf crosses the same number of black nodes.
package rbtree

import (
	"fmt"

	"github.com/9rum/collections/internal/collection"
	"golang.org/x/exp/constraints"
)

// Tree is a red-black tree holding ordered keys.  Equal keys may be inserted
// more than once.
//
// Tree is not safe for concurrent use.
type Tree[K constraints.Ordered] struct {
	arena  *arena[K]
	root   ref
	length int
}

var _ collection.OrderedSet[int] = (*Tree[int])(nil)

// New creates an empty red-black tree.
func New[K constraints.Ordered]() *Tree[K] {
	return &Tree[K]{arena: newArena[K]()}
}

func (t *Tree[K]) n(r ref) *node[K] {
	return &t.arena.nodes[r]
}

// colorOf returns the color of the given node; the null handle is black.
func (t *Tree[K]) colorOf(r ref) color {
	if r == null {
		return black
	}
	return t.n(r).color
}

// paint sets the color of a real node.  Painting the null handle is a no-op
// so the sentinel slot stays untouched.
func (t *Tree[K]) paint(r ref, c color) {
	if r != null {
		t.n(r).color = c
	}
}

// sideOf returns on which side of its parent the given node hangs.
func (t *Tree[K]) sideOf(r ref) side {
	if t.n(t.n(r).parent).child[left] == r {
		return left
	}
	return right
}

// replace puts v where u hangs under u's parent (or at the root).
func (t *Tree[K]) replace(u, v ref) {
	parent := t.n(u).parent
	switch {
	case parent == null:
		t.root = v
	case t.n(parent).child[left] == u:
		t.n(parent).child[left] = v
	default:
		t.n(parent).child[right] = v
	}
	if v != null {
		t.n(v).parent = parent
	}
}

// rotate moves x down towards side s; its child on the opposite side takes
// its place.  rotate(x, left) is the classic left rotation.
//
//	    x                y
//	  a   y     =>     x   c
//	     b c          a b
func (t *Tree[K]) rotate(x ref, s side) {
	y := t.n(x).child[s.flip()]
	inner := t.n(y).child[s]
	t.n(x).child[s.flip()] = inner
	if inner != null {
		t.n(inner).parent = x
	}
	t.replace(x, y)
	t.n(y).child[s] = x
	t.n(x).parent = y
}

// find returns the handle of a node holding the given key, or null.
func (t *Tree[K]) find(key K) ref {
	r := t.root
	for r != null {
		n := t.n(r)
		switch {
		case key < n.key:
			r = n.child[left]
		case n.key < key:
			r = n.child[right]
		default:
			return r
		}
	}
	return null
}

// extreme returns the leftmost (s == left) or rightmost node of the subtree.
func (t *Tree[K]) extreme(r ref, s side) ref {
	for t.n(r).child[s] != null {
		r = t.n(r).child[s]
	}
	return r
}

// Insert adds the given key.  Equal keys are placed to the right of the
// keys already in the tree.
func (t *Tree[K]) Insert(key K) {
	parent, s := null, left
	for r := t.root; r != null; {
		parent = r
		if key < t.n(r).key {
			s = left
		} else {
			s = right
		}
		r = t.n(r).child[s]
	}
	z := t.arena.alloc(key)
	t.n(z).parent = parent
	if parent == null {
		t.root = z
	} else {
		t.n(parent).child[s] = z
	}
	t.length++
	t.fixInsert(z)
}

// fixInsert restores the invariants after z has been attached as a red leaf.
func (t *Tree[K]) fixInsert(z ref) {
	for z != t.root && t.colorOf(t.n(z).parent) == red {
		p := t.n(z).parent
		g := t.n(p).parent // p is red, hence not the root
		s := t.sideOf(p)
		uncle := t.n(g).child[s.flip()]
		if t.colorOf(uncle) == red {
			t.paint(p, black)
			t.paint(uncle, black)
			t.paint(g, red)
			z = g
			continue
		}
		if t.n(p).child[s.flip()] == z {
			// inner grandchild: turn it into an outer one
			z = p
			t.rotate(z, s)
			p = t.n(z).parent
		}
		t.paint(p, black)
		t.paint(g, red)
		t.rotate(g, s.flip())
	}
	t.paint(t.root, black)
}

// Read reports whether the given key is in the tree.
func (t *Tree[K]) Read(key K) bool {
	return t.find(key) != null
}

// Delete removes one occurrence of the given key.  If the key is absent it
// returns an error wrapping collection.ErrKeyNotFound and leaves the tree
// untouched.
func (t *Tree[K]) Delete(key K) error {
	z := t.find(key)
	if z == null {
		return fmt.Errorf("%w: %v", collection.ErrKeyNotFound, key)
	}
	t.remove(z)
	return nil
}

// remove unlinks the given node.  A node with two children takes the key of
// its in-order successor, which is unlinked instead.
func (t *Tree[K]) remove(z ref) {
	y := z
	if t.n(z).child[left] != null && t.n(z).child[right] != null {
		y = t.extreme(t.n(z).child[right], left)
		t.n(z).key = t.n(y).key
	}
	// y has at most one child
	x := t.n(y).child[left]
	if x == null {
		x = t.n(y).child[right]
	}
	parent := t.n(y).parent
	s := left
	if parent != null {
		s = t.sideOf(y)
	}
	t.replace(y, x)
	if t.colorOf(y) == black {
		t.fixDelete(x, parent, s)
	}
	t.arena.release(y)
	t.length--
}

// fixDelete restores the black height after a black node was removed from
// side s of parent, leaving x (possibly null) in its place.
func (t *Tree[K]) fixDelete(x, parent ref, s side) {
	for x != t.root && t.colorOf(x) == black {
		w := t.n(parent).child[s.flip()] // never null: x's side is one black short
		if t.colorOf(w) == red {
			t.paint(w, black)
			t.paint(parent, red)
			t.rotate(parent, s)
			w = t.n(parent).child[s.flip()]
		}
		near, far := t.n(w).child[s], t.n(w).child[s.flip()]
		if t.colorOf(near) == black && t.colorOf(far) == black {
			t.paint(w, red)
			x = parent
			parent = t.n(x).parent
			if parent != null {
				s = t.sideOf(x)
			}
			continue
		}
		if t.colorOf(far) == black {
			t.paint(near, black)
			t.paint(w, red)
			t.rotate(w, s.flip())
			w = t.n(parent).child[s.flip()]
		}
		t.paint(w, t.colorOf(parent))
		t.paint(parent, black)
		t.paint(t.n(w).child[s.flip()], black)
		t.rotate(parent, s)
		x = t.root
	}
	t.paint(x, black)
}

// Min returns the smallest key in the tree, or (zeroValue, false) if the tree is empty.
func (t *Tree[K]) Min() (_ K, _ bool) {
	if t.root == null {
		return
	}
	return t.n(t.extreme(t.root, left)).key, true
}

// Max returns the largest key in the tree, or (zeroValue, false) if the tree is empty.
func (t *Tree[K]) Max() (_ K, _ bool) {
	if t.root == null {
		return
	}
	return t.n(t.extreme(t.root, right)).key, true
}

// Len returns the number of keys currently in the tree.
func (t *Tree[K]) Len() int {
	return t.length
}

// Clear removes all keys from the tree.
func (t *Tree[K]) Clear() {
	t.arena.reset()
	t.root, t.length = null, 0
}
