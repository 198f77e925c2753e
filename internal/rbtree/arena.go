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
	"math"

	"golang.org/x/exp/constraints"
)

// ref is a handle to a node in the arena.  The zero handle is reserved and
// stands for "no node"; its slot is never written.
type ref uint32

const null ref = 0

type color bool

const (
	red   color = false
	black color = true
)

func (c color) String() string {
	if c == black {
		return "black"
	}
	return "red"
}

// side selects a child of a node.  Mirrored cases of the balancing
// algorithms are expressed by flipping the side.
type side int

const (
	left  side = 0
	right side = 1
)

// flip returns the opposite side.
func (s side) flip() side {
	return 1 - s
}

// node is a single tree node.  Children are owned by the node; parent is a
// back-reference used only for rotations and fix-up walks.
type node[K constraints.Ordered] struct {
	key    K
	color  color
	parent ref
	child  [2]ref
}

// arena stores the nodes of a tree and recycles released slots.
type arena[K constraints.Ordered] struct {
	nodes []node[K]
	free  []ref
}

func newArena[K constraints.Ordered]() *arena[K] {
	// slot 0 backs the null handle
	return &arena[K]{nodes: make([]node[K], 1)}
}

// alloc returns a handle to a new red node holding the given key.
func (a *arena[K]) alloc(key K) (r ref) {
	if index := len(a.free) - 1; 0 <= index {
		r = a.free[index]
		a.free = a.free[:index]
	} else {
		if math.MaxUint32 <= uint64(len(a.nodes)) {
			panic("rbtree: arena exhausted")
		}
		r = ref(len(a.nodes))
		a.nodes = append(a.nodes, node[K]{})
	}
	a.nodes[r] = node[K]{key: key, color: red}
	return
}

// release clears the slot of the given handle and makes it available for
// reuse.
func (a *arena[K]) release(r ref) {
	if r == null {
		panic("rbtree: releasing the null handle")
	}
	a.nodes[r] = node[K]{}
	a.free = append(a.free, r)
}

// reset drops every node.
func (a *arena[K]) reset() {
	a.nodes = a.nodes[:1]
	a.free = a.free[:0]
}

// used returns the number of live nodes.
func (a *arena[K]) used() int {
	return len(a.nodes) - 1 - len(a.free)
}
