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
	"time"

	"github.com/golang/glog"

	"github.com/9rum/collections/internal/data"
)

// Result holds the wall time of each bulk phase of a run.
type Result struct {
	Engine string
	Size   int
	Insert time.Duration
	Read   time.Duration
	Delete time.Duration

	// Skipped counts the reads and deletes that failed with a caller-input
	// error.
	Skipped int
}

// Run inserts every value of the dataset into the engine, reads every value
// back and finally deletes every value, timing each phase.  Keyed engines
// delete in ascending order.  Reads and deletes that fail with a caller-input
// error are skipped; any other error aborts the run.
func Run(engine Engine, dataset data.Dataset) (result Result, err error) {
	result.Engine, result.Size = engine.Name(), len(dataset)

	start := time.Now()
	for _, value := range dataset {
		if err = engine.Insert(value); err != nil {
			return result, fmt.Errorf("%s: insert %d: %w", engine.Name(), value, err)
		}
	}
	result.Insert = time.Since(start)

	start = time.Now()
	for _, value := range dataset {
		if err = engine.Read(value); err != nil {
			if !skippable(err) {
				return result, fmt.Errorf("%s: read %d: %w", engine.Name(), value, err)
			}
			result.Skipped++
		}
	}
	result.Read = time.Since(start)

	order := dataset
	if engine.Keyed() {
		order = dataset.Sorted()
	}
	start = time.Now()
	for _, value := range order {
		if err = engine.Delete(value); err != nil {
			if !skippable(err) {
				return result, fmt.Errorf("%s: delete %d: %w", engine.Name(), value, err)
			}
			result.Skipped++
		}
	}
	result.Delete = time.Since(start)

	return result, nil
}

// Sweep generates one dataset per size with the given seed and runs every
// engine against it on a fresh instance.
func Sweep(factories []Factory, sizes []int, gen *data.Generator, seed int64) ([]Result, error) {
	results := make([]Result, 0, len(factories)*len(sizes))
	for _, size := range sizes {
		dataset := gen.Generate(size, seed)
		for _, factory := range factories {
			result, err := Run(factory(), dataset)
			if err != nil {
				return results, err
			}
			glog.Infof("%s with %d values: insert %v, read %v, delete %v", result.Engine, size, result.Insert, result.Read, result.Delete)
			results = append(results, result)
		}
	}
	return results, nil
}

// Sizes returns the sizes from start to stop inclusive in the given steps.
func Sizes(start, stop, step int) []int {
	if step <= 0 || stop < start {
		return nil
	}
	sizes := make([]int, 0, (stop-start)/step+1)
	for size := start; size <= stop; size += step {
		sizes = append(sizes, size)
	}
	return sizes
}
