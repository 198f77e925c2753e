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

// Package xorlist implements a doubly traversable list that keeps a single
// link per node: the XOR of the handles of its two neighbors.
//
// Nodes live in an arena and are addressed by integer handles.  Handle 0 is
// never assigned and marks a missing neighbor, so the link of an end node is
// simply the handle of its only neighbor.  Walking the list only needs the
// handle of the node just left behind:
//
//	next = prev ^ link(current)
//
// which works in both directions.
package xorlist

import (
	"fmt"
	"math"

	"github.com/9rum/collections/internal/collection"
)

// handle identifies a live node.  Handles are stable for the lifetime of the
// node they name and unique among live nodes; released handles are reused.
type handle uint32

const none handle = 0

type node[V any] struct {
	value V
	link  handle // prev ^ next
}

// List is a compact doubly linked list.  The zero value is not usable; use
// New.
//
// List is not safe for concurrent use.
type List[V any] struct {
	nodes  []node[V]
	free   []handle
	head   handle
	tail   handle
	length int
}

var _ collection.Sequence[int] = (*List[int])(nil)

// New creates an empty list.
func New[V any]() *List[V] {
	// slot 0 backs the none handle
	return &List[V]{nodes: make([]node[V], 1)}
}

// alloc returns the handle of a new unlinked node holding the given value.
func (l *List[V]) alloc(value V) (h handle) {
	if index := len(l.free) - 1; 0 <= index {
		h = l.free[index]
		l.free = l.free[:index]
	} else {
		if math.MaxUint32 <= uint64(len(l.nodes)) {
			panic("xorlist: arena exhausted")
		}
		h = handle(len(l.nodes))
		l.nodes = append(l.nodes, node[V]{})
	}
	l.nodes[h] = node[V]{value: value}
	return
}

// release clears the slot of the given handle so that the value can be
// collected and the handle reused.
func (l *List[V]) release(h handle) V {
	value := l.nodes[h].value
	l.nodes[h] = node[V]{}
	l.free = append(l.free, h)
	return value
}

// relink replaces neighbor old by neighbor new in the link of h.  It is a
// no-op for the none handle.
func (l *List[V]) relink(h, old, new handle) {
	if h != none {
		l.nodes[h].link ^= old ^ new
	}
}

// Len returns the number of values in the list.
func (l *List[V]) Len() int {
	return l.length
}

// Append adds the given value at the tail of the list.
func (l *List[V]) Append(value V) {
	l.insertBetween(value, l.tail, none)
}

// Prepend adds the given value at the head of the list.
func (l *List[V]) Prepend(value V) {
	l.insertBetween(value, none, l.head)
}

// Insert places the given value at the given position.  Position 0 inserts
// at the head and position Len() appends at the tail.  Any other position
// outside [0, Len()] yields an error wrapping
// collection.ErrPositionOutOfRange and leaves the list unchanged.
func (l *List[V]) Insert(value V, position int) error {
	if position < 0 || l.length < position {
		return fmt.Errorf("%w: insert at %d into %d values", collection.ErrPositionOutOfRange, position, l.length)
	}
	if position == l.length {
		l.Append(value)
		return nil
	}
	prev, cur, _, err := l.walk(position)
	if err != nil {
		return err
	}
	l.insertBetween(value, prev, cur)
	return nil
}

// insertBetween links a new node between the adjacent nodes prev and next,
// either of which may be none at the ends of the list.
func (l *List[V]) insertBetween(value V, prev, next handle) {
	h := l.alloc(value)
	l.nodes[h].link = prev ^ next
	l.relink(prev, next, h)
	l.relink(next, prev, h)
	if prev == none {
		l.head = h
	}
	if next == none {
		l.tail = h
	}
	l.length++
}

// Read returns the value at the given position.
func (l *List[V]) Read(position int) (_ V, err error) {
	if err = l.check(position); err != nil {
		return
	}
	_, cur, _, err := l.walk(position)
	if err != nil {
		return
	}
	return l.nodes[cur].value, nil
}

// Delete removes the value at the given position and returns it.  The
// neighbors of the removed node are linked to each other.
func (l *List[V]) Delete(position int) (_ V, err error) {
	if err = l.check(position); err != nil {
		return
	}
	prev, cur, next, err := l.walk(position)
	if err != nil {
		return
	}
	l.relink(prev, cur, next)
	l.relink(next, cur, prev)
	if prev == none {
		l.head = next
	}
	if next == none {
		l.tail = prev
	}
	l.length--
	return l.release(cur), nil
}

// check validates a position for read and delete.
func (l *List[V]) check(position int) error {
	if l.length == 0 {
		return fmt.Errorf("%w: access at %d", collection.ErrEmptyCollection, position)
	}
	if position < 0 || l.length <= position {
		return fmt.Errorf("%w: access at %d in %d values", collection.ErrPositionOutOfRange, position, l.length)
	}
	return nil
}

// walk locates the node at the given position along with its neighbors.
// It starts from whichever end is nearer.
func (l *List[V]) walk(position int) (prev, cur, next handle, err error) {
	if position <= (l.length-1)/2 {
		prev, cur, err = l.step(l.head, position, position)
		next = prev ^ l.nodes[cur].link
		return
	}
	next, cur, err = l.step(l.tail, l.length-1-position, position)
	prev = next ^ l.nodes[cur].link
	return
}

// step moves count nodes away from the end node start and returns the node
// reached together with the one visited just before it.
func (l *List[V]) step(start handle, count, position int) (behind, cur handle, err error) {
	cur = start
	for ; 0 < count; count-- {
		ahead := behind ^ l.nodes[cur].link
		if ahead == none {
			return none, none, fmt.Errorf("%w: reached the end before %d", collection.ErrPositionOutOfRange, position)
		}
		behind, cur = cur, ahead
	}
	return
}

// Values returns a copy of the values from head to tail.
func (l *List[V]) Values() []V {
	out := make([]V, 0, l.length)
	var prev handle
	for cur := l.head; cur != none; {
		out = append(out, l.nodes[cur].value)
		prev, cur = cur, prev^l.nodes[cur].link
	}
	return out
}

// Clear removes all values from the list.
func (l *List[V]) Clear() {
	for i := range l.nodes {
		l.nodes[i] = node[V]{}
	}
	l.nodes = l.nodes[:1]
	l.free = l.free[:0]
	l.head, l.tail, l.length = none, none, 0
}
