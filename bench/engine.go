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

// Package bench measures the collection engines against shared datasets:
// bulk operation timings, heap growth while inserting and per-insert latency
// as the engines grow.
package bench

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/9rum/collections/internal/btree"
	"github.com/9rum/collections/internal/collection"
	"github.com/9rum/collections/internal/rbtree"
	"github.com/9rum/collections/internal/xorlist"
)

// Names of the engines built by the default factories.
const (
	BTreeName        = "B-Tree"
	RedBlackTreeName = "Red-Black Tree"
	XORListName      = "XOR Linked List"
)

// Engine is the insert/read/delete view of a collection under measurement.
// Keyed engines use the value as the key; positional engines ignore it for
// reads and deletes.
type Engine interface {
	// Name identifies the engine in results.
	Name() string

	// Keyed reports whether the engine is addressed by key.  Keyed engines
	// delete a dataset in ascending order.
	Keyed() bool

	Insert(value int) error
	// Read fails with a caller-input error when nothing can be read.
	Read(value int) error
	Delete(value int) error
}

// Factory creates a fresh, empty engine.
type Factory func() Engine

// skippable reports whether the error is a caller-input error that a bulk
// phase skips over.
func skippable(err error) bool {
	return errors.Is(err, collection.ErrKeyNotFound) ||
		errors.Is(err, collection.ErrPositionOutOfRange) ||
		errors.Is(err, collection.ErrEmptyCollection)
}

type setEngine struct {
	name string
	set  collection.OrderedSet[int]
}

// NewSetEngine adapts an ordered set to Engine.
func NewSetEngine(name string, set collection.OrderedSet[int]) Engine {
	return &setEngine{name: name, set: set}
}

func (e *setEngine) Name() string { return e.name }
func (e *setEngine) Keyed() bool  { return true }

func (e *setEngine) Insert(value int) error {
	e.set.Insert(value)
	return nil
}

func (e *setEngine) Read(value int) error {
	if !e.set.Read(value) {
		return fmt.Errorf("%w: %d", collection.ErrKeyNotFound, value)
	}
	return nil
}

func (e *setEngine) Delete(value int) error {
	return e.set.Delete(value)
}

type sequenceEngine struct {
	name string
	seq  collection.Sequence[int]
}

// NewSequenceEngine adapts a sequence to Engine.  Every operation works on
// the head of the sequence.
func NewSequenceEngine(name string, seq collection.Sequence[int]) Engine {
	return &sequenceEngine{name: name, seq: seq}
}

func (e *sequenceEngine) Name() string { return e.name }
func (e *sequenceEngine) Keyed() bool  { return false }

func (e *sequenceEngine) Insert(value int) error {
	return e.seq.Insert(value, 0)
}

func (e *sequenceEngine) Read(int) error {
	_, err := e.seq.Read(0)
	return err
}

func (e *sequenceEngine) Delete(int) error {
	_, err := e.seq.Delete(0)
	return err
}

// BTreeFactory returns a factory of B-trees with the given minimum degree.
func BTreeFactory(degree int) Factory {
	return func() Engine {
		return NewSetEngine(BTreeName, btree.New[int](degree))
	}
}

// RedBlackTreeFactory returns a factory of red-black trees.
func RedBlackTreeFactory() Factory {
	return func() Engine {
		return NewSetEngine(RedBlackTreeName, rbtree.New[int]())
	}
}

// XORListFactory returns a factory of XOR linked lists.
func XORListFactory() Factory {
	return func() Engine {
		return NewSequenceEngine(XORListName, xorlist.New[int]())
	}
}

// DefaultFactories returns one factory per engine, the B-tree built with the
// given minimum degree.
func DefaultFactories(degree int) []Factory {
	return []Factory{BTreeFactory(degree), RedBlackTreeFactory(), XORListFactory()}
}

// Select returns the factories whose engine names are listed.  Names match
// case-insensitively ignoring anything but letters and digits, so "btree"
// selects "B-Tree".  An empty list selects all of them.
func Select(factories []Factory, names []string) []Factory {
	if len(names) == 0 {
		return factories
	}
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[normalize(name)] = true
	}
	selected := make([]Factory, 0, len(factories))
	for _, factory := range factories {
		if wanted[normalize(factory().Name())] {
			selected = append(selected, factory)
		}
	}
	return selected
}

func normalize(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, name)
}
