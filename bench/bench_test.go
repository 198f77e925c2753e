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

package bench

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/9rum/collections/internal/collection"
	"github.com/9rum/collections/internal/data"
)

// failing is an engine whose deletes fail with a fixed error.
type failing struct {
	Engine
	err error
}

func (f failing) Delete(int) error { return f.err }

func TestAdapters(t *testing.T) {
	for _, factory := range DefaultFactories(3) {
		e := factory()
		t.Run(e.Name(), func(t *testing.T) {
			require.NoError(t, e.Insert(5))
			require.NoError(t, e.Insert(7))
			require.NoError(t, e.Read(5))
			require.NoError(t, e.Delete(5))
			require.NoError(t, e.Delete(7))
			err := e.Delete(5)
			require.Error(t, err)
			assert.True(t, skippable(err), "unexpected error %v", err)
			err = e.Read(5)
			require.Error(t, err)
			assert.True(t, skippable(err), "unexpected error %v", err)
		})
	}
}

func TestSequenceEngineWorksAtHead(t *testing.T) {
	e := XORListFactory()()
	assert.False(t, e.Keyed())
	err := e.Read(1)
	assert.ErrorIs(t, err, collection.ErrEmptyCollection)
}

func TestRun(t *testing.T) {
	dataset := data.DefaultGenerator().Generate(2000, 42)
	for _, factory := range DefaultFactories(3) {
		result, err := Run(factory(), dataset)
		require.NoError(t, err)
		assert.Equal(t, len(dataset), result.Size)
		assert.Zero(t, result.Skipped, result.Engine)
		assert.True(t, result.Insert > 0, result.Engine)
	}
}

// dropping is an engine that discards every insert.
type dropping struct {
	Engine
}

func (dropping) Insert(int) error { return nil }

func TestRunCountsReadMisses(t *testing.T) {
	for _, factory := range []Factory{BTreeFactory(3), RedBlackTreeFactory()} {
		e := dropping{Engine: factory()}
		result, err := Run(e, data.Dataset{3, 1, 2})
		require.NoError(t, err)
		assert.Equal(t, 6, result.Skipped, e.Name())
	}
}

func TestRunSkipsCallerErrors(t *testing.T) {
	e := failing{Engine: RedBlackTreeFactory()(), err: collection.ErrKeyNotFound}
	result, err := Run(e, data.Dataset{3, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Skipped)
}

func TestRunAbortsOnOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	e := failing{Engine: RedBlackTreeFactory()(), err: boom}
	_, err := Run(e, data.Dataset{3, 1, 2})
	assert.ErrorIs(t, err, boom)
}

func TestSweep(t *testing.T) {
	results, err := Sweep(DefaultFactories(3), []int{100, 200}, data.DefaultGenerator(), 1)
	require.NoError(t, err)
	require.Len(t, results, 6)
	assert.Equal(t, BTreeName, results[0].Engine)
	assert.Equal(t, 100, results[0].Size)
	assert.Equal(t, XORListName, results[5].Engine)
	assert.Equal(t, 200, results[5].Size)
}

func TestSelect(t *testing.T) {
	factories := DefaultFactories(3)
	assert.Len(t, Select(factories, nil), 3)
	selected := Select(factories, []string{"btree", "XOR linked list"})
	require.Len(t, selected, 2)
	assert.Equal(t, BTreeName, selected[0]().Name())
	assert.Equal(t, XORListName, selected[1]().Name())
	assert.Empty(t, Select(factories, []string{"skiplist"}))
}

func TestSizes(t *testing.T) {
	assert.Equal(t, []int{100000, 200000, 300000}, Sizes(100000, 300000, 100000))
	assert.Nil(t, Sizes(10, 1, 1))
	assert.Nil(t, Sizes(1, 10, 0))
}

func TestMeasureMemory(t *testing.T) {
	dataset := data.DefaultGenerator().Generate(1000, 42)
	profile, err := MeasureMemory(BTreeFactory(3)(), dataset, 10)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 101, 201, 301, 401, 501, 601, 701, 801, 901, 1000}, profile.Points)
	assert.Len(t, profile.Bytes, len(profile.Points))

	_, err = MeasureMemory(BTreeFactory(3)(), dataset, 0)
	assert.Error(t, err)
}

func TestInsertionProfile(t *testing.T) {
	opts := DefaultProfileOptions()
	opts.Max, opts.Interval, opts.Repeat = 1000, 100, 10
	e := RedBlackTreeFactory()()
	profile, err := InsertionProfile(e, opts)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 100, 200, 300, 400, 500, 600, 700, 800, 900}, profile.Points)
	assert.Len(t, profile.Latency, len(profile.Points))

	opts.Interval = 0
	_, err = InsertionProfile(e, opts)
	assert.Error(t, err)
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]time.Duration{1, 2, 3, 4, 5, 6}, 3)
	assert.Equal(t, []time.Duration{1, 1, 2, 3, 4, 5}, got)
	assert.Equal(t, []time.Duration{4, 8}, MovingAverage([]time.Duration{4, 8}, 0))
	assert.Empty(t, MovingAverage(nil, 5))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResultsCSV(&buf, []Result{{Engine: BTreeName, Size: 10, Insert: time.Second}}))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"engine", "size", "insert_seconds", "read_seconds", "delete_seconds", "skipped"},
		{BTreeName, "10", "1.000000000", "0.000000000", "0.000000000", "0"},
	}, records)

	buf.Reset()
	require.NoError(t, WriteMemoryCSV(&buf, []MemoryProfile{{Engine: XORListName, Size: 2, Points: []int{1, 2}, Bytes: []int64{64, 128}}}))
	records, err = csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, []string{XORListName, "2", "2", "128"}, records[2])

	buf.Reset()
	require.NoError(t, WriteProfileCSV(&buf, []Profile{{Engine: RedBlackTreeName, Points: []int{0}, Latency: []time.Duration{250}}}))
	records, err = csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{RedBlackTreeName, "0", "250"}, records[1])
}
