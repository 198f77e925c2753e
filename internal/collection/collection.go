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

// Package collection defines the contracts shared by the collection engines
// and the errors they report.  Every engine exposes the same three
// operations: insert, read and delete.
package collection

import (
	"errors"

	"golang.org/x/exp/constraints"
)

var (
	// ErrKeyNotFound is returned when deleting a key that is not in the tree.
	ErrKeyNotFound = errors.New("collection: key not found")
	// ErrPositionOutOfRange is returned when a position exceeds the current
	// bounds of a sequence.
	ErrPositionOutOfRange = errors.New("collection: position out of range")
	// ErrEmptyCollection is returned when reading from or deleting from a
	// sequence that holds no elements.
	ErrEmptyCollection = errors.New("collection: empty collection")
)

// OrderedSet represents an engine ordered by key.
//
// Implementations are not safe for concurrent use; callers sharing an
// instance across goroutines must serialize all operations on it.
type OrderedSet[K constraints.Ordered] interface {
	// Insert adds the given key.  Equal keys are kept side by side.
	Insert(key K)

	// Read reports whether the given key is present.
	Read(key K) bool

	// Delete removes one occurrence of the given key.  It returns an error
	// wrapping ErrKeyNotFound and leaves the engine untouched if the key is
	// absent.
	Delete(key K) error

	// Len returns the number of keys currently held.
	Len() int
}

// Sequence represents a position-indexed engine.  Positions are 0-based.
//
// Implementations are not safe for concurrent use.
type Sequence[V any] interface {
	// Append adds the given value at the tail.
	Append(value V)

	// Insert places the given value at the given position, shifting the
	// element currently there (if any) one position back.
	Insert(value V, position int) error

	// Read returns the value at the given position.
	Read(position int) (V, error)

	// Delete removes and returns the value at the given position.
	Delete(position int) (V, error)

	// Len returns the number of values currently held.
	Len() int
}
