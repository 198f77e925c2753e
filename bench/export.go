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
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

func writeAll(w io.Writer, header []string, rows [][]string) error {
	out := csv.NewWriter(w)
	if err := out.Write(header); err != nil {
		return err
	}
	if err := out.WriteAll(rows); err != nil {
		return err
	}
	return out.Error()
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 9, 64)
}

// WriteResultsCSV writes one row per run with the phase times in seconds.
func WriteResultsCSV(w io.Writer, results []Result) error {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.Engine,
			strconv.Itoa(r.Size),
			seconds(r.Insert),
			seconds(r.Read),
			seconds(r.Delete),
			strconv.Itoa(r.Skipped),
		})
	}
	return writeAll(w, []string{"engine", "size", "insert_seconds", "read_seconds", "delete_seconds", "skipped"}, rows)
}

// WriteMemoryCSV writes one row per sample of every profile.
func WriteMemoryCSV(w io.Writer, profiles []MemoryProfile) error {
	var rows [][]string
	for _, p := range profiles {
		for i := range p.Points {
			rows = append(rows, []string{
				p.Engine,
				strconv.Itoa(p.Size),
				strconv.Itoa(p.Points[i]),
				strconv.FormatInt(p.Bytes[i], 10),
			})
		}
	}
	return writeAll(w, []string{"engine", "size", "inserted", "bytes"}, rows)
}

// WriteProfileCSV writes one row per measurement with the smoothed latency
// in nanoseconds.
func WriteProfileCSV(w io.Writer, profiles []Profile) error {
	var rows [][]string
	for _, p := range profiles {
		for i := range p.Points {
			rows = append(rows, []string{
				p.Engine,
				strconv.Itoa(p.Points[i]),
				strconv.FormatInt(p.Latency[i].Nanoseconds(), 10),
			})
		}
	}
	return writeAll(w, []string{"engine", "size", "latency_ns"}, rows)
}
