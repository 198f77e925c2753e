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
	"fmt"
	"runtime"

	"github.com/golang/glog"

	"github.com/9rum/collections/internal/data"
)

// MemoryProfile records the live heap growth, in bytes, while a dataset is
// inserted into an engine.
type MemoryProfile struct {
	Engine string
	Size   int

	// Points are the number of inserted values at each sample.
	Points []int
	// Bytes are the heap growth at each sample relative to the empty engine.
	Bytes []int64
}

// Final returns the heap growth after the last insert.
func (p MemoryProfile) Final() int64 {
	if len(p.Bytes) == 0 {
		return 0
	}
	return p.Bytes[len(p.Bytes)-1]
}

func heapAlloc() int64 {
	runtime.GC()
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return int64(stats.HeapAlloc)
}

// MeasureMemory inserts the dataset into the engine and samples the heap
// every len(dataset)/samples inserts, starting after the first one, and once
// more after the last insert.
func MeasureMemory(engine Engine, dataset data.Dataset, samples int) (MemoryProfile, error) {
	if samples <= 0 {
		return MemoryProfile{}, fmt.Errorf("bench: invalid number of samples %d", samples)
	}
	interval := len(dataset) / samples
	if interval == 0 {
		interval = 1
	}
	profile := MemoryProfile{
		Engine: engine.Name(),
		Size:   len(dataset),
		Points: make([]int, 0, samples+2),
		Bytes:  make([]int64, 0, samples+2),
	}

	base := heapAlloc()
	for i, value := range dataset {
		if err := engine.Insert(value); err != nil {
			return profile, fmt.Errorf("%s: insert %d: %w", engine.Name(), value, err)
		}
		if i%interval == 0 {
			profile.Points = append(profile.Points, i+1)
			profile.Bytes = append(profile.Bytes, heapAlloc()-base)
		}
	}
	profile.Points = append(profile.Points, len(dataset))
	profile.Bytes = append(profile.Bytes, heapAlloc()-base)
	runtime.KeepAlive(engine)

	glog.Infof("%s with %d values: %d bytes", profile.Engine, profile.Size, profile.Final())
	return profile, nil
}

// MeasureMemorySweep measures every engine on one dataset per size.
func MeasureMemorySweep(factories []Factory, sizes []int, gen *data.Generator, seed int64, samples int) ([]MemoryProfile, error) {
	profiles := make([]MemoryProfile, 0, len(factories)*len(sizes))
	for _, size := range sizes {
		dataset := gen.Generate(size, seed)
		for _, factory := range factories {
			profile, err := MeasureMemory(factory(), dataset, samples)
			if err != nil {
				return profiles, err
			}
			profiles = append(profiles, profile)
		}
	}
	return profiles, nil
}
