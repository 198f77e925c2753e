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
	"math/rand"
	"reflect"
	"testing"

	"github.com/9rum/collections/internal/collection"
)

func mustCheck[V any](t *testing.T, l *List[V]) {
	t.Helper()
	if err := l.Check(); err != nil {
		t.Fatal(err)
	}
}

func ExampleList() {
	l := New[int]()
	l.Append(1)
	if err := l.Insert(2, 0); err != nil {
		fmt.Println(err)
	}
	first, _ := l.Read(0)
	second, _ := l.Read(1)
	fmt.Println(first, second)
	deleted, _ := l.Delete(0)
	fmt.Println(deleted)
	first, _ = l.Read(0)
	fmt.Println(first, l.Len())
	// Output:
	// 2 1
	// 2
	// 1 1
}

func TestEmpty(t *testing.T) {
	l := New[int]()
	if _, err := l.Read(0); !errors.Is(err, collection.ErrEmptyCollection) {
		t.Fatalf("read on empty list: got %v", err)
	}
	if _, err := l.Delete(0); !errors.Is(err, collection.ErrEmptyCollection) {
		t.Fatalf("delete on empty list: got %v", err)
	}
	if err := l.Insert(1, 1); !errors.Is(err, collection.ErrPositionOutOfRange) {
		t.Fatalf("insert past the end of an empty list: got %v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("len: got %d", l.Len())
	}
	mustCheck(t, l)
}

func TestInvalidPosition(t *testing.T) {
	l := New[int]()
	l.Append(1)
	if _, err := l.Read(1); !errors.Is(err, collection.ErrPositionOutOfRange) {
		t.Fatalf("read(1): got %v", err)
	}
	if _, err := l.Read(-1); !errors.Is(err, collection.ErrPositionOutOfRange) {
		t.Fatalf("read(-1): got %v", err)
	}
	if _, err := l.Delete(1); !errors.Is(err, collection.ErrPositionOutOfRange) {
		t.Fatalf("delete(1): got %v", err)
	}
	if err := l.Insert(2, 2); !errors.Is(err, collection.ErrPositionOutOfRange) {
		t.Fatalf("insert(2, 2): got %v", err)
	}
	if err := l.Insert(2, -1); !errors.Is(err, collection.ErrPositionOutOfRange) {
		t.Fatalf("insert(2, -1): got %v", err)
	}
	if got := l.Values(); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("failed operations changed the list: %v", got)
	}
	mustCheck(t, l)
}

func TestDelete(t *testing.T) {
	l := New[int]()
	for _, v := range []int{1, 2, 3, 4} {
		l.Append(v)
	}
	if v, err := l.Delete(1); err != nil || v != 2 {
		t.Fatalf("delete(1): got %v, %v", v, err)
	}
	if v, _ := l.Read(1); v != 3 {
		t.Fatalf("read(1): got %v", v)
	}
	if v, err := l.Delete(0); err != nil || v != 1 {
		t.Fatalf("delete(0): got %v, %v", v, err)
	}
	if v, _ := l.Read(0); v != 3 {
		t.Fatalf("read(0): got %v", v)
	}
	if v, err := l.Delete(l.Len() - 1); err != nil || v != 4 {
		t.Fatalf("delete tail: got %v, %v", v, err)
	}
	if l.head != l.tail {
		t.Fatalf("single value list has head %d and tail %d", l.head, l.tail)
	}
	mustCheck(t, l)
	if v, err := l.Delete(0); err != nil || v != 3 {
		t.Fatalf("delete last: got %v, %v", v, err)
	}
	if _, err := l.Read(0); !errors.Is(err, collection.ErrEmptyCollection) {
		t.Fatalf("read after deleting everything: got %v", err)
	}
	mustCheck(t, l)
}

// TestAgainstSlice applies random operations to a list and a slice and
// compares them after every step.
func TestAgainstSlice(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	l := New[int]()
	var want []int
	for i := 0; i < 5000; i++ {
		switch op := r.Intn(4); {
		case op == 0:
			l.Append(i)
			want = append(want, i)
		case op == 1:
			pos := r.Intn(len(want) + 1)
			if err := l.Insert(i, pos); err != nil {
				t.Fatalf("insert(%d, %d): %v", i, pos, err)
			}
			want = append(want[:pos], append([]int{i}, want[pos:]...)...)
		case len(want) == 0:
			if _, err := l.Delete(0); !errors.Is(err, collection.ErrEmptyCollection) {
				t.Fatalf("delete on empty list: got %v", err)
			}
		case op == 2:
			pos := r.Intn(len(want))
			got, err := l.Read(pos)
			if err != nil || got != want[pos] {
				t.Fatalf("read(%d): got %v, %v want %v", pos, got, err, want[pos])
			}
		default:
			pos := r.Intn(len(want))
			got, err := l.Delete(pos)
			if err != nil || got != want[pos] {
				t.Fatalf("delete(%d): got %v, %v want %v", pos, got, err, want[pos])
			}
			want = append(want[:pos], want[pos+1:]...)
		}
		if l.Len() != len(want) {
			t.Fatalf("len: got %d want %d", l.Len(), len(want))
		}
		if i%100 == 0 {
			mustCheck(t, l)
			if got := l.Values(); len(want) != 0 && !reflect.DeepEqual(got, want) {
				t.Fatalf("mismatch:\n got: %v\nwant: %v", got, want)
			}
		}
	}
	mustCheck(t, l)
}

func TestReadFromBothEnds(t *testing.T) {
	const size = 101
	l := New[int]()
	for i := 0; i < size; i++ {
		l.Append(i)
	}
	for i := 0; i < size; i++ {
		if v, err := l.Read(i); err != nil || v != i {
			t.Fatalf("read(%d): got %v, %v", i, v, err)
		}
	}
}

func TestPrepend(t *testing.T) {
	l := New[string]()
	for _, v := range []string{"c", "b", "a"} {
		l.Prepend(v)
	}
	if got, want := l.Values(), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	mustCheck(t, l)
}

func TestHandlesRecycled(t *testing.T) {
	l := New[int]()
	for i := 0; i < 64; i++ {
		l.Append(i)
	}
	size := len(l.nodes)
	for i := 0; i < 32; i++ {
		if _, err := l.Delete(0); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 32; i++ {
		if err := l.Insert(i, i); err != nil {
			t.Fatal(err)
		}
	}
	if len(l.nodes) != size {
		t.Fatalf("arena grew from %d to %d slots", size, len(l.nodes))
	}
	mustCheck(t, l)
}

func TestClear(t *testing.T) {
	l := New[int]()
	for i := 0; i < 10; i++ {
		l.Append(i)
	}
	l.Clear()
	if l.Len() != 0 || len(l.Values()) != 0 {
		t.Fatalf("clear left %d values", l.Len())
	}
	mustCheck(t, l)
	l.Append(7)
	if v, err := l.Read(0); err != nil || v != 7 {
		t.Fatalf("read after clear: got %v, %v", v, err)
	}
}

func TestCheckDetectsViolations(t *testing.T) {
	l := New[int]()
	for i := 0; i < 5; i++ {
		l.Append(i)
	}
	l.nodes[l.head].link ^= 1 << 10
	if err := l.Check(); !errors.Is(err, ErrInvariant) {
		t.Fatalf("corrupted link: got %v", err)
	}
}

const benchmarkListSize = 1000

func BenchmarkPrepend(b *testing.B) {
	b.StopTimer()
	l := New[int]()
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		if err := l.Insert(i, 0); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkReadMiddle(b *testing.B) {
	b.StopTimer()
	l := New[int]()
	for i := 0; i < benchmarkListSize; i++ {
		l.Append(i)
	}
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		if _, err := l.Read(benchmarkListSize / 2); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDeleteInsert(b *testing.B) {
	b.StopTimer()
	r := rand.New(rand.NewSource(0))
	l := New[int]()
	for i := 0; i < benchmarkListSize; i++ {
		l.Append(i)
	}
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		pos := r.Intn(benchmarkListSize)
		v, err := l.Delete(pos)
		if err != nil {
			b.Fatal(err)
		}
		if err := l.Insert(v, pos); err != nil {
			b.Fatal(err)
		}
	}
}
