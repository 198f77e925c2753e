// Adapted from https://github.com/google/btree/blob/v1.1.2/btree_generic.go
// Copyright 2022 Sogang University
// Copyright 2014 Google Inc.
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

// Package btree implements in-memory B-trees of arbitrary minimum degree.
//
// Each node holds a sorted slice of keys and, unless it is a leaf, a slice
// of children one longer than its keys.  Every node other than the root
// holds between degree-1 and 2*degree-1 keys and all leaves sit at the same
// depth.  Insertion splits full nodes on the way down and deletion grows
// minimal nodes on the way down, so both complete in a single root-to-leaf
// pass.
//
// Equal keys may be inserted more than once; the tree then holds every copy
// and Delete removes one of them.
package btree

import (
	"fmt"
	"sort"
	"sync"

	"github.com/9rum/collections/internal/collection"
	"golang.org/x/exp/constraints"
)

const DefaultFreeListSize = 32

// FreeList represents a free list of BTree nodes. By default each
// BTree has its own FreeList, but multiple BTrees can share the same
// FreeList.
// Two BTrees using the same freelist are safe for concurrent write access.
type FreeList[K constraints.Ordered] struct {
	mu       sync.Mutex
	freelist children[K]
}

// NewFreeList creates a new free list.
// size is the maximum size of the returned free list.
func NewFreeList[K constraints.Ordered](size int) *FreeList[K] {
	return &FreeList[K]{freelist: make(children[K], 0, size)}
}

func (f *FreeList[K]) newNode() (n *node[K]) {
	f.mu.Lock()
	index := len(f.freelist) - 1
	if index < 0 {
		f.mu.Unlock()
		return &node[K]{freelist: f}
	}
	n = f.freelist[index]
	f.freelist[index] = nil
	f.freelist = f.freelist[:index]
	f.mu.Unlock()
	n.freelist = f
	return
}

// freeNode clears the given node and adds it to the list, returning true if
// it was added and false if it was discarded.
func (f *FreeList[K]) freeNode(n *node[K]) (out bool) {
	n.keys.truncate(0)
	n.children.truncate(0)
	n.freelist = nil
	f.mu.Lock()
	if len(f.freelist) < cap(f.freelist) {
		f.freelist = append(f.freelist, n)
		out = true
	}
	f.mu.Unlock()
	return
}

// keys stores keys in a node.
type keys[K constraints.Ordered] []K

// insertAt inserts a value into the given index, pushing all subsequent values
// forward.
func (s *keys[K]) insertAt(index int, key K) {
	var zero K
	*s = append(*s, zero)
	if index < len(*s) {
		copy((*s)[index+1:], (*s)[index:])
	}
	(*s)[index] = key
}

// removeAt removes a value at a given index, pulling all subsequent values
// back.
func (s *keys[K]) removeAt(index int) K {
	key := (*s)[index]
	copy((*s)[index:], (*s)[index+1:])
	var zero K
	(*s)[len(*s)-1] = zero
	*s = (*s)[:len(*s)-1]
	return key
}

// pop removes and returns the last element in the list.
func (s *keys[K]) pop() (out K) {
	index := len(*s) - 1
	out = (*s)[index]
	var zero K
	(*s)[index] = zero
	*s = (*s)[:index]
	return
}

// truncate truncates this instance at index so that it contains only the
// first index keys. index must be less than or equal to length.
func (s *keys[K]) truncate(index int) {
	var toClear keys[K]
	*s, toClear = (*s)[:index], (*s)[index:]
	var zero K
	for i := 0; i < len(toClear); i++ {
		toClear[i] = zero
	}
}

// find returns the index of the first key greater than or equal to the given
// key.  'found' is true if the key at that index equals the given key.
func (s keys[K]) find(key K) (index int, found bool) {
	i := sort.Search(len(s), func(i int) bool {
		return !(s[i] < key)
	})
	return i, i < len(s) && s[i] == key
}

// upper returns the index of the first key strictly greater than the given
// key, i.e., the position after every equal key.
func (s keys[K]) upper(key K) int {
	return sort.Search(len(s), func(i int) bool {
		return key < s[i]
	})
}

// children stores child nodes in a node.
type children[K constraints.Ordered] []*node[K]

// insertAt inserts a value into the given index, pushing all subsequent values
// forward.
func (c *children[K]) insertAt(index int, n *node[K]) {
	*c = append(*c, nil)
	if index < len(*c) {
		copy((*c)[index+1:], (*c)[index:])
	}
	(*c)[index] = n
}

// removeAt removes a value at a given index, pulling all subsequent values
// back.
func (c *children[K]) removeAt(index int) *node[K] {
	n := (*c)[index]
	copy((*c)[index:], (*c)[index+1:])
	(*c)[len(*c)-1] = nil
	*c = (*c)[:len(*c)-1]
	return n
}

// pop removes and returns the last element in the list.
func (c *children[K]) pop() (out *node[K]) {
	index := len(*c) - 1
	out = (*c)[index]
	(*c)[index] = nil
	*c = (*c)[:index]
	return
}

// truncate truncates this instance at index so that it contains only the
// first index children. index must be less than or equal to length.
func (c *children[K]) truncate(index int) {
	var toClear children[K]
	*c, toClear = (*c)[:index], (*c)[index:]
	for i := 0; i < len(toClear); i++ {
		toClear[i] = nil
	}
}

// node is an internal node in a tree.
//
// It must at all times maintain the invariant that either
//   - len(children) == 0, len(keys) unconstrained
//   - len(children) == len(keys) + 1
type node[K constraints.Ordered] struct {
	keys     keys[K]
	children children[K]
	freelist *FreeList[K]
}

// leaf reports whether the node owns no children.
func (n *node[K]) leaf() bool {
	return len(n.children) == 0
}

// split splits the given node at the given index.  The current node shrinks,
// and this function returns the key that existed at that index and a new node
// containing all keys/children after it.
func (n *node[K]) split(i int) (K, *node[K]) {
	key := n.keys[i]
	next := n.freelist.newNode()
	next.keys = append(next.keys, n.keys[i+1:]...)
	n.keys.truncate(i)
	if !n.leaf() {
		next.children = append(next.children, n.children[i+1:]...)
		n.children.truncate(i + 1)
	}
	return key, next
}

// maybeSplitChild checks if a child should be split, and if so splits it.
// The median moves up to index i and the new sibling is placed right after
// the split child.  Returns whether or not a split occurred.
func (n *node[K]) maybeSplitChild(i, maxKeys int) bool {
	if len(n.children[i].keys) < maxKeys {
		return false
	}
	first := n.children[i]
	key, second := first.split(maxKeys / 2)
	n.keys.insertAt(i, key)
	n.children.insertAt(i+1, second)
	return true
}

// insert inserts a key into the subtree rooted at this node, making sure
// no nodes in the subtree exceed maxKeys keys.  The node itself must not be
// full.
func (n *node[K]) insert(key K, maxKeys int) {
	i := n.keys.upper(key)
	if n.leaf() {
		n.keys.insertAt(i, key)
		return
	}
	if n.maybeSplitChild(i, maxKeys) && !(key < n.keys[i]) {
		i++ // we want second split node
	}
	n.children[i].insert(key, maxKeys)
}

// has reports whether the given key is in the subtree.
func (n *node[K]) has(key K) bool {
	for {
		i, found := n.keys.find(key)
		if found {
			return true
		}
		if n.leaf() {
			return false
		}
		n = n.children[i]
	}
}

// min returns the first key in the subtree.
func min[K constraints.Ordered](n *node[K]) (_ K, found bool) {
	if n == nil {
		return
	}
	for !n.leaf() {
		n = n.children[0]
	}
	if len(n.keys) == 0 {
		return
	}
	return n.keys[0], true
}

// max returns the last key in the subtree.
func max[K constraints.Ordered](n *node[K]) (_ K, found bool) {
	if n == nil {
		return
	}
	for !n.leaf() {
		n = n.children[len(n.children)-1]
	}
	if len(n.keys) == 0 {
		return
	}
	return n.keys[len(n.keys)-1], true
}

// toRemove details what key to remove in a node.remove call.
type toRemove int

const (
	removeKey toRemove = iota // removes the given key
	removeMin                 // removes smallest key in the subtree
	removeMax                 // removes largest key in the subtree
)

// remove removes a key from the subtree rooted at this node and returns it.
// The caller guarantees that the node holds more than minKeys keys (or is
// the root) and, for removeKey, that the key is present in the subtree.
func (n *node[K]) remove(key K, minKeys int, typ toRemove) K {
	var i int
	switch typ {
	case removeMax:
		if n.leaf() {
			return n.keys.pop()
		}
		i = len(n.keys)
	case removeMin:
		if n.leaf() {
			return n.keys.removeAt(0)
		}
		i = 0
	case removeKey:
		var found bool
		i, found = n.keys.find(key)
		if n.leaf() {
			if !found {
				panic("btree: key vanished during removal")
			}
			return n.keys.removeAt(i)
		}
		if found {
			return n.removeInternal(i, minKeys)
		}
	default:
		panic("invalid type")
	}
	// The key is not in this node; make sure the child we descend into can
	// spare a key before going down.
	i = n.growChild(i, minKeys)
	return n.children[i].remove(key, minKeys, typ)
}

// removeInternal removes the key at index i of an internal node.
//
// The key is replaced by its predecessor if the left child can spare a key,
// or by its successor if the right child can.  Otherwise both children are
// merged around the key and the removal continues in the merged node.
func (n *node[K]) removeInternal(i, minKeys int) K {
	out := n.keys[i]
	var zero K
	switch {
	case minKeys < len(n.children[i].keys):
		n.keys[i] = n.children[i].remove(zero, minKeys, removeMax)
	case minKeys < len(n.children[i+1].keys):
		n.keys[i] = n.children[i+1].remove(zero, minKeys, removeMin)
	default:
		n.merge(i)
		n.children[i].remove(out, minKeys, removeKey)
	}
	return out
}

// growChild makes sure child i holds more than minKeys keys, stealing a key
// from an immediate sibling through the separating key or merging with a
// sibling.  It returns the index of the child that now covers the range of
// the original child i.
//
// A child can only be merged with its right sibling, except for the
// rightmost child which is merged into its left sibling; the merged node
// then lives at index i-1.
func (n *node[K]) growChild(i, minKeys int) int {
	if minKeys < len(n.children[i].keys) {
		return i
	}
	if 0 < i && minKeys < len(n.children[i-1].keys) {
		// steal from left child
		child := n.children[i]
		stealFrom := n.children[i-1]
		stolenKey := stealFrom.keys.pop()
		child.keys.insertAt(0, n.keys[i-1])
		n.keys[i-1] = stolenKey
		if !stealFrom.leaf() {
			child.children.insertAt(0, stealFrom.children.pop())
		}
		return i
	}
	if i < len(n.keys) && minKeys < len(n.children[i+1].keys) {
		// steal from right child
		child := n.children[i]
		stealFrom := n.children[i+1]
		stolenKey := stealFrom.keys.removeAt(0)
		child.keys = append(child.keys, n.keys[i])
		n.keys[i] = stolenKey
		if !stealFrom.leaf() {
			child.children = append(child.children, stealFrom.children.removeAt(0))
		}
		return i
	}
	if len(n.keys) <= i {
		i--
	}
	n.merge(i)
	return i
}

// merge merges child i+1 and the key separating it from child i into
// child i, and releases child i+1.
func (n *node[K]) merge(i int) {
	child := n.children[i]
	mergeKey := n.keys.removeAt(i)
	mergeChild := n.children.removeAt(i + 1)
	child.keys = append(child.keys, mergeKey)
	child.keys = append(child.keys, mergeChild.keys...)
	child.children = append(child.children, mergeChild.children...)
	n.freelist.freeNode(mergeChild)
}

// BTree is a generic implementation of a B-tree.
//
// BTree stores ordered keys, allowing easy insertion, removal and lookup.
//
// Write operations are not safe for concurrent mutation by multiple
// goroutines, but Read operations are.
type BTree[K constraints.Ordered] struct {
	degree   int
	length   int
	root     *node[K]
	freelist *FreeList[K]
}

var _ collection.OrderedSet[int] = (*BTree[int])(nil)

// New creates a new B-tree with the given minimum degree.
//
// New(2), for example, will create a 2-3-4 tree (each node contains 1-3 keys
// and 2-4 children).
func New[K constraints.Ordered](degree int) *BTree[K] {
	return NewWithFreeList(degree, NewFreeList[K](DefaultFreeListSize))
}

// NewWithFreeList creates a new B-tree that uses the given node free list.
func NewWithFreeList[K constraints.Ordered](degree int, f *FreeList[K]) *BTree[K] {
	if degree <= 1 {
		panic("bad degree")
	}
	return &BTree[K]{
		degree:   degree,
		freelist: f,
	}
}

// maxKeys returns the max number of keys to allow per node.
func (t *BTree[K]) maxKeys() int {
	return t.degree*2 - 1
}

// minKeys returns the min number of keys to allow per node
// (ignored for the root node).
func (t *BTree[K]) minKeys() int {
	return t.degree - 1
}

// Degree returns the minimum degree of the tree.
func (t *BTree[K]) Degree() int {
	return t.degree
}

// Insert adds the given key to the tree.  A full root is split first, which
// grows the tree by one level.
func (t *BTree[K]) Insert(key K) {
	t.length++
	if t.root == nil {
		t.root = t.freelist.newNode()
		t.root.keys = append(t.root.keys, key)
		return
	}
	if t.maxKeys() <= len(t.root.keys) {
		median, second := t.root.split(t.maxKeys() / 2)
		oldroot := t.root
		t.root = t.freelist.newNode()
		t.root.keys = append(t.root.keys, median)
		t.root.children = append(t.root.children, oldroot, second)
	}
	t.root.insert(key, t.maxKeys())
}

// Read reports whether the given key is in the tree.
func (t *BTree[K]) Read(key K) bool {
	if t.root == nil {
		return false
	}
	return t.root.has(key)
}

// Delete removes one occurrence of the given key from the tree.  If no such
// key exists, it returns an error wrapping collection.ErrKeyNotFound and
// leaves the tree untouched.
func (t *BTree[K]) Delete(key K) error {
	if !t.Read(key) {
		return fmt.Errorf("%w: %v", collection.ErrKeyNotFound, key)
	}
	t.root.remove(key, t.minKeys(), removeKey)
	t.length--
	t.shrink()
	return nil
}

// DeleteMin removes the smallest key in the tree and returns it.
// If the tree is empty, returns (zeroValue, false).
func (t *BTree[K]) DeleteMin() (_ K, _ bool) {
	return t.deleteEnd(removeMin)
}

// DeleteMax removes the largest key in the tree and returns it.
// If the tree is empty, returns (zeroValue, false).
func (t *BTree[K]) DeleteMax() (_ K, _ bool) {
	return t.deleteEnd(removeMax)
}

func (t *BTree[K]) deleteEnd(typ toRemove) (_ K, _ bool) {
	if t.root == nil {
		return
	}
	var zero K
	out := t.root.remove(zero, t.minKeys(), typ)
	t.length--
	t.shrink()
	return out, true
}

// shrink replaces a keyless root by its only child, reducing the height of
// the tree by one, and drops an empty leaf root.
func (t *BTree[K]) shrink() {
	if 0 < len(t.root.keys) {
		return
	}
	oldroot := t.root
	if oldroot.leaf() {
		t.root = nil
	} else {
		t.root = oldroot.children[0]
	}
	t.freelist.freeNode(oldroot)
}

// Min returns the smallest key in the tree, or (zeroValue, false) if the tree is empty.
func (t *BTree[K]) Min() (K, bool) {
	return min(t.root)
}

// Max returns the largest key in the tree, or (zeroValue, false) if the tree is empty.
func (t *BTree[K]) Max() (K, bool) {
	return max(t.root)
}

// Len returns the number of keys currently in the tree.
func (t *BTree[K]) Len() int {
	return t.length
}

// Height returns the number of levels in the tree; an empty tree has
// height 0.
func (t *BTree[K]) Height() (h int) {
	for n := t.root; n != nil; h++ {
		if n.leaf() {
			return h + 1
		}
		n = n.children[0]
	}
	return
}

// Clear removes all keys from the tree.  If addNodesToFreelist is true,
// t's nodes are added to its freelist as part of this call, until the freelist
// is full.  Otherwise, the root node is simply dereferenced and the subtree
// left to Go's normal GC processes.
func (t *BTree[K]) Clear(addNodesToFreelist bool) {
	if t.root != nil && addNodesToFreelist {
		t.root.reset(t.freelist)
	}
	t.root, t.length = nil, 0
}

// reset returns a subtree to the freelist.  It breaks out immediately if the
// freelist is full, since the only benefit of iterating is to fill that
// freelist up.  Returns true if parent reset call should continue.
func (n *node[K]) reset(f *FreeList[K]) bool {
	for _, child := range n.children {
		if !child.reset(f) {
			return false
		}
	}
	return f.freeNode(n)
}
