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

package xorlist

import (
	"errors"
	"fmt"
)

// ErrInvariant is returned by Check when the links of the list are
// inconsistent.
var ErrInvariant = errors.New("xorlist: invariant violated")

// Check walks the list from both ends and verifies that every link decodes
// to live neighbors and that both walks agree with the recorded length.
func (l *List[V]) Check() error {
	if l.nodes[none].link != none {
		return fmt.Errorf("%w: reserved slot was linked", ErrInvariant)
	}
	if (l.head == none) != (l.tail == none) || (l.head == none) != (l.length == 0) {
		return fmt.Errorf("%w: head %d, tail %d with %d values", ErrInvariant, l.head, l.tail, l.length)
	}
	forward, err := l.trace(l.head)
	if err != nil {
		return err
	}
	backward, err := l.trace(l.tail)
	if err != nil {
		return err
	}
	if len(forward) != l.length || len(backward) != l.length {
		return fmt.Errorf("%w: walked %d forward and %d backward, want %d", ErrInvariant, len(forward), len(backward), l.length)
	}
	for i, h := range forward {
		if backward[l.length-1-i] != h {
			return fmt.Errorf("%w: walks disagree at position %d", ErrInvariant, i)
		}
	}
	if used := len(l.nodes) - 1 - len(l.free); used != l.length {
		return fmt.Errorf("%w: %d slots in use for %d values", ErrInvariant, used, l.length)
	}
	return nil
}

// trace follows links from one end and returns the handles visited.
func (l *List[V]) trace(start handle) (visited []handle, err error) {
	var prev handle
	for cur := start; cur != none; {
		if len(l.nodes) <= int(cur) {
			return nil, fmt.Errorf("%w: handle %d outside the arena", ErrInvariant, cur)
		}
		if l.length < len(visited) {
			return nil, fmt.Errorf("%w: cycle through handle %d", ErrInvariant, cur)
		}
		visited = append(visited, cur)
		prev, cur = cur, prev^l.nodes[cur].link
	}
	return
}
