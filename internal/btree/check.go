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

package btree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xlab/treeprint"
)

// ErrInvariant signals a violated structural invariant.
var ErrInvariant = errors.New("btree: invariant violated")

// Check validates the structural invariants of the tree: every non-root node
// holds between degree-1 and 2*degree-1 keys, an internal node with k keys
// owns exactly k+1 children, all leaves are at the same depth and the keys
// are globally sorted.  It is meant to be used by tests.
func (t *BTree[K]) Check() error {
	if t.root == nil {
		if t.length != 0 {
			return fmt.Errorf("%w: empty tree with length %d", ErrInvariant, t.length)
		}
		return nil
	}
	if len(t.root.keys) == 0 {
		return fmt.Errorf("%w: keyless root", ErrInvariant)
	}
	var (
		count int
		prev  *K
	)
	depth, err := t.checkNode(t.root, true, &count, &prev)
	if err != nil {
		return err
	}
	if depth != t.Height() {
		return fmt.Errorf("%w: height mismatch (%d != %d)", ErrInvariant, depth, t.Height())
	}
	if count != t.length {
		return fmt.Errorf("%w: counted %d keys, length is %d", ErrInvariant, count, t.length)
	}
	return nil
}

// checkNode walks the subtree in order and returns its height.
func (t *BTree[K]) checkNode(n *node[K], isRoot bool, count *int, prev **K) (int, error) {
	if t.maxKeys() < len(n.keys) {
		return 0, fmt.Errorf("%w: %d keys exceed %d", ErrInvariant, len(n.keys), t.maxKeys())
	}
	if !isRoot && len(n.keys) < t.minKeys() {
		return 0, fmt.Errorf("%w: %d keys below %d", ErrInvariant, len(n.keys), t.minKeys())
	}
	visit := func(i int) error {
		key := n.keys[i]
		if *prev != nil && key < **prev {
			return fmt.Errorf("%w: key %v after %v", ErrInvariant, key, **prev)
		}
		*prev = &n.keys[i]
		*count++
		return nil
	}
	if n.leaf() {
		for i := range n.keys {
			if err := visit(i); err != nil {
				return 0, err
			}
		}
		return 1, nil
	}
	if len(n.children) != len(n.keys)+1 {
		return 0, fmt.Errorf("%w: %d children for %d keys", ErrInvariant, len(n.children), len(n.keys))
	}
	var height int
	for i, child := range n.children {
		if child == nil {
			return 0, fmt.Errorf("%w: nil child at index %d", ErrInvariant, i)
		}
		h, err := t.checkNode(child, false, count, prev)
		if err != nil {
			return 0, err
		}
		if i == 0 {
			height = h
		} else if h != height {
			return 0, fmt.Errorf("%w: leaves at different depths", ErrInvariant)
		}
		if i < len(n.keys) {
			if err := visit(i); err != nil {
				return 0, err
			}
		}
	}
	return height + 1, nil
}

// String renders the node graph, one node per line with its keys.
func (t *BTree[K]) String() string {
	if t.root == nil {
		return treeprint.NewWithRoot("(empty)").String()
	}
	tree := treeprint.NewWithRoot(t.root.label())
	t.root.print(tree)
	return tree.String()
}

func (n *node[K]) print(branch treeprint.Tree) {
	for _, child := range n.children {
		if child.leaf() {
			branch.AddNode(child.label())
			continue
		}
		child.print(branch.AddBranch(child.label()))
	}
}

func (n *node[K]) label() string {
	labels := make([]string, 0, len(n.keys))
	for _, key := range n.keys {
		labels = append(labels, fmt.Sprint(key))
	}
	return "[" + strings.Join(labels, " ") + "]"
}
