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

// Package engine serves the collection engines over gRPC.  Every served
// engine is a single instance whose operations are serialized by a mutex,
// since none of the engines tolerate concurrent mutation.
package engine

import (
	"sync"

	"github.com/9rum/collections/internal/btree"
	"github.com/9rum/collections/internal/collection"
	"github.com/9rum/collections/internal/rbtree"
	"github.com/9rum/collections/internal/xorlist"
)

const (
	BTREE = iota
	REDBLACKTREE
)

// Set is an ordered set of keys shared by concurrent callers.
type Set struct {
	mu      sync.Mutex
	factory func() collection.OrderedSet[int64]
	set     collection.OrderedSet[int64]
}

// NewSet creates a new shared set of the given type.  The degree is the
// minimum degree of a B-tree and is ignored otherwise.
func NewSet(typ, degree int) *Set {
	var factory func() collection.OrderedSet[int64]
	switch typ {
	case BTREE:
		factory = func() collection.OrderedSet[int64] { return btree.New[int64](degree) }
	case REDBLACKTREE:
		factory = func() collection.OrderedSet[int64] { return rbtree.New[int64]() }
	default:
		panic("invalid type")
	}
	return &Set{factory: factory, set: factory()}
}

// Insert adds the given key.
func (s *Set) Insert(key int64) (length int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set.Insert(key)
	return s.set.Len()
}

// Read reports whether the given key is present.
func (s *Set) Read(key int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Read(key)
}

// Delete removes one occurrence of the given key.
func (s *Set) Delete(key int64) (length int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err = s.set.Delete(key)
	return s.set.Len(), err
}

// Len returns the number of keys.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Len()
}

// Reset replaces the set with an empty one.
func (s *Set) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = s.factory()
}

// List is a positional sequence of values shared by concurrent callers.
type List struct {
	mu   sync.Mutex
	list *xorlist.List[int64]
}

// NewList creates a new shared list.
func NewList() *List {
	return &List{list: xorlist.New[int64]()}
}

// Append adds the given value at the tail.
func (l *List) Append(value int64) (length int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.list.Append(value)
	return l.list.Len()
}

// Insert places the given value at the given position.
func (l *List) Insert(value int64, position int) (length int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	err = l.list.Insert(value, position)
	return l.list.Len(), err
}

// Read returns the value at the given position.
func (l *List) Read(position int) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.list.Read(position)
}

// Delete removes and returns the value at the given position.
func (l *List) Delete(position int) (value int64, length int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	value, err = l.list.Delete(position)
	return value, l.list.Len(), err
}

// Len returns the number of values.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.list.Len()
}

// Reset removes all values.
func (l *List) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.list.Clear()
}
