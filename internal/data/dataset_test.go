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

package data

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReproducible(t *testing.T) {
	g := DefaultGenerator()
	first := g.Generate(1000, 42)
	second := g.Generate(1000, 42)
	assert.Len(t, first, 1000)
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, g.Generate(1000, 43))
}

func TestGenerateRange(t *testing.T) {
	g, err := NewGenerator(10, 20)
	require.NoError(t, err)
	for _, v := range g.Generate(5000, 7) {
		require.GreaterOrEqual(t, v, 10)
		require.LessOrEqual(t, v, 20)
	}

	g, err = NewGenerator(5, 5)
	require.NoError(t, err)
	assert.Equal(t, Dataset{5, 5, 5}, g.Generate(3, 0))

	_, err = NewGenerator(2, 1)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestGenerateEmpty(t *testing.T) {
	assert.Empty(t, DefaultGenerator().Generate(0, 1))
}

func TestSorted(t *testing.T) {
	d := Dataset{3, 1, 2}
	assert.Equal(t, Dataset{1, 2, 3}, d.Sorted())
	assert.Equal(t, Dataset{3, 1, 2}, d)
}

func TestStoreRoundTrip(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "datasets"))
	require.NoError(t, err)

	want := DefaultGenerator().Generate(100, 1)
	require.NoError(t, s.Save("sample", want))
	got, err := s.Load("sample")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = s.Load("missing")
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.Error(t, s.Save("", want))
	assert.Error(t, s.Save(filepath.Join("a", "b"), want))
}

func TestStoreRejectsGarbage(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "broken.json"), []byte("{"), 0o644))
	_, err = s.Load("broken")
	assert.Error(t, err)
}

func TestGenerateAndSave(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	names, err := s.GenerateAndSave(DefaultGenerator(), []int{10, 20}, "small", 42)
	require.NoError(t, err)
	assert.Equal(t, []string{"small_10", "small_20"}, names)

	listed, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, names, listed)

	d, err := s.Load("small_20")
	require.NoError(t, err)
	assert.Equal(t, DefaultGenerator().Generate(20, 42), d)
}

func TestStandardSizes(t *testing.T) {
	var total int
	for _, sizes := range StandardSizes {
		assert.True(t, sort.IntsAreSorted(sizes))
		total += len(sizes)
	}
	assert.Equal(t, 7, total)
	assert.Equal(t, []int{1000, 5000, 10000}, StandardSizes["small"])
}

func TestName(t *testing.T) {
	assert.Equal(t, "large_1000000", Name("large", 1000000))
}
