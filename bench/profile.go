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

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang/glog"

	"github.com/9rum/collections/internal/data"
)

// ProfileOptions configures InsertionProfile.
type ProfileOptions struct {
	// Max is the number of values inserted in total.
	Max int
	// Interval is the number of inserts between two measurements.
	Interval int
	// Repeat is the number of timed inserts averaged per measurement.
	Repeat int
	// Window is the moving average window applied to the measurements.
	Window int

	// Min and MaxValue bound the inserted values.
	Min, MaxValue int
	Seed          int64
}

// DefaultProfileOptions returns the options of a one million insert profile
// measured every ten thousand inserts.
func DefaultProfileOptions() ProfileOptions {
	return ProfileOptions{
		Max:      1000000,
		Interval: 10000,
		Repeat:   100,
		Window:   5,
		Min:      data.DefaultMin,
		MaxValue: data.DefaultMax,
		Seed:     42,
	}
}

// Profile holds the smoothed average latency of a single insert at each
// measured engine size.
type Profile struct {
	Engine  string
	Points  []int
	Latency []time.Duration
}

// InsertionProfile grows the engine one random value at a time up to
// opts.Max values.  Every opts.Interval inserts it times opts.Repeat single
// inserts and records their average, and finally smooths the averages with
// a moving average over opts.Window measurements.
func InsertionProfile(engine Engine, opts ProfileOptions) (Profile, error) {
	if opts.Max < 0 || opts.Interval <= 0 || opts.Repeat <= 0 || opts.Window <= 0 || opts.MaxValue < opts.Min {
		return Profile{}, fmt.Errorf("bench: invalid profile options %+v", opts)
	}
	faker := gofakeit.New(opts.Seed)
	profile := Profile{Engine: engine.Name()}
	var averages []time.Duration

	for size, next := 0, 0; size < opts.Max; {
		if size < next {
			if err := engine.Insert(faker.IntRange(opts.Min, opts.MaxValue)); err != nil {
				return profile, err
			}
			size++
			continue
		}
		var total time.Duration
		for i := 0; i < opts.Repeat; i++ {
			value := faker.IntRange(opts.Min, opts.MaxValue)
			start := time.Now()
			err := engine.Insert(value)
			total += time.Since(start)
			if err != nil {
				return profile, err
			}
		}
		profile.Points = append(profile.Points, size)
		averages = append(averages, total/time.Duration(opts.Repeat))
		size += opts.Repeat
		next += opts.Interval
		if next < size {
			next = size
		}
	}

	profile.Latency = MovingAverage(averages, opts.Window)
	glog.Infof("%s: %d measurements up to %d values", profile.Engine, len(profile.Points), opts.Max)
	return profile, nil
}

// MovingAverage returns the trailing average of each element over at most
// window elements ending at it.
func MovingAverage(values []time.Duration, window int) []time.Duration {
	if window <= 0 {
		window = 1
	}
	out := make([]time.Duration, len(values))
	var sum time.Duration
	for i, v := range values {
		sum += v
		if window <= i {
			sum -= values[i-window]
		}
		out[i] = sum / time.Duration(min(i+1, window))
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
