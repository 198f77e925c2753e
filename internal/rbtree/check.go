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

package rbtree

import (
	"errors"
	"fmt"

	"github.com/xlab/treeprint"
)

// ErrInvariant signals a violated red-black invariant.
var ErrInvariant = errors.New("rbtree: invariant violated")

// Check validates the red-black invariants: the root is black, no red node
// has a red child, every root-to-leaf path crosses the same number of black
// nodes, parent handles match the child links and keys appear in order.
func (t *Tree[K]) Check() error {
	if t.colorOf(null) != black || t.arena.nodes[null] != (node[K]{}) {
		return fmt.Errorf("%w: sentinel slot written", ErrInvariant)
	}
	if t.root == null {
		if t.length != 0 {
			return fmt.Errorf("%w: empty tree with length %d", ErrInvariant, t.length)
		}
		return nil
	}
	if t.colorOf(t.root) != black {
		return fmt.Errorf("%w: red root", ErrInvariant)
	}
	if t.n(t.root).parent != null {
		return fmt.Errorf("%w: root has a parent", ErrInvariant)
	}
	var (
		count int
		prev  *K
	)
	if _, err := t.checkNode(t.root, &count, &prev); err != nil {
		return err
	}
	if count != t.length {
		return fmt.Errorf("%w: counted %d keys, length is %d", ErrInvariant, count, t.length)
	}
	if used := t.arena.used(); used != t.length {
		return fmt.Errorf("%w: %d live slots for %d keys", ErrInvariant, used, t.length)
	}
	return nil
}

// checkNode walks the subtree in order and returns its black height.
func (t *Tree[K]) checkNode(r ref, count *int, prev **K) (int, error) {
	if r == null {
		return 1, nil
	}
	n := t.n(r)
	for _, c := range n.child {
		if c == null {
			continue
		}
		if t.n(c).parent != r {
			return 0, fmt.Errorf("%w: child %v of %v points to another parent", ErrInvariant, t.n(c).key, n.key)
		}
		if n.color == red && t.colorOf(c) == red {
			return 0, fmt.Errorf("%w: red node %v has a red child", ErrInvariant, n.key)
		}
	}
	lh, err := t.checkNode(n.child[left], count, prev)
	if err != nil {
		return 0, err
	}
	if *prev != nil && n.key < **prev {
		return 0, fmt.Errorf("%w: key %v after %v", ErrInvariant, n.key, **prev)
	}
	key := n.key
	*prev = &key
	*count++
	rh, err := t.checkNode(n.child[right], count, prev)
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, fmt.Errorf("%w: black heights %d and %d under %v", ErrInvariant, lh, rh, n.key)
	}
	if n.color == black {
		lh++
	}
	return lh, nil
}

// String renders the tree with the color of every node.
func (t *Tree[K]) String() string {
	if t.root == null {
		return treeprint.NewWithRoot("(empty)").String()
	}
	tree := treeprint.NewWithRoot(t.label(t.root))
	t.print(tree, t.root)
	return tree.String()
}

func (t *Tree[K]) print(branch treeprint.Tree, r ref) {
	for _, c := range t.n(r).child {
		switch {
		case c == null:
			branch.AddNode("nil")
		case t.n(c).child == [2]ref{null, null}:
			branch.AddNode(t.label(c))
		default:
			t.print(branch.AddBranch(t.label(c)), c)
		}
	}
}

func (t *Tree[K]) label(r ref) string {
	return fmt.Sprintf("%v (%v)", t.n(r).key, t.n(r).color)
}
