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

// Package data generates reproducible integer datasets and keeps them as
// JSON files so that every engine can be measured against the same input.
package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang/glog"
)

const (
	// DefaultMin is the smallest value produced by the default generator.
	DefaultMin = 1
	// DefaultMax is the largest value produced by the default generator.
	DefaultMax = 1000000
)

// StandardSizes groups the dataset sizes used for the quick, thorough and
// stress measurements.
var StandardSizes = map[string][]int{
	"small":  {1000, 5000, 10000},
	"medium": {50000, 100000},
	"large":  {500000, 1000000},
}

// ErrInvalidRange is returned when a generator is configured with an empty
// value range.
var ErrInvalidRange = errors.New("data: invalid value range")

// Dataset is a sequence of integer values fed to the engines in order.
type Dataset []int

// Sorted returns an ascending copy of the dataset.
func (d Dataset) Sorted() Dataset {
	sorted := make(Dataset, len(d))
	copy(sorted, d)
	sort.Ints(sorted)
	return sorted
}

// Generator produces datasets of uniformly distributed integers in a closed
// range.
type Generator struct {
	min, max int
}

// NewGenerator creates a new generator for values in [min, max].
func NewGenerator(min, max int) (*Generator, error) {
	if max < min {
		return nil, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, min, max)
	}
	return &Generator{min: min, max: max}, nil
}

// DefaultGenerator returns a generator for values in [DefaultMin, DefaultMax].
func DefaultGenerator() *Generator {
	return &Generator{min: DefaultMin, max: DefaultMax}
}

// Generate returns a dataset of the given size.  The same size and seed
// always yield the same dataset.
func (g *Generator) Generate(size int, seed int64) Dataset {
	faker := gofakeit.New(seed)
	dataset := make(Dataset, 0, size)
	for len(dataset) < cap(dataset) {
		dataset = append(dataset, faker.IntRange(g.min, g.max))
	}
	return dataset
}

// Store keeps datasets as <name>.json files in a single directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at the given directory, creating the
// directory if it does not exist.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory of the store.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Save writes the dataset under the given name, replacing any dataset of the
// same name.
func (s *Store) Save(name string, dataset Dataset) error {
	if name == "" || strings.ContainsRune(name, filepath.Separator) {
		return fmt.Errorf("data: invalid dataset name %q", name)
	}
	raw, err := json.Marshal(dataset)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(name), raw, 0o644)
}

// Load reads the dataset saved under the given name.
func (s *Store) Load(name string) (Dataset, error) {
	raw, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, err
	}
	var dataset Dataset
	if err := json.Unmarshal(raw, &dataset); err != nil {
		return nil, fmt.Errorf("data: decode %s: %w", name, err)
	}
	return dataset, nil
}

// List returns the names of the saved datasets in lexical order.
func (s *Store) List() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, match := range matches {
		names = append(names, strings.TrimSuffix(filepath.Base(match), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// Name returns the name under which GenerateAndSave stores a dataset.
func Name(prefix string, size int) string {
	return fmt.Sprintf("%s_%d", prefix, size)
}

// GenerateAndSave generates one dataset per size with the given seed and
// saves each as <prefix>_<size>.
func (s *Store) GenerateAndSave(g *Generator, sizes []int, prefix string, seed int64) ([]string, error) {
	names := make([]string, 0, len(sizes))
	for _, size := range sizes {
		name := Name(prefix, size)
		if err := s.Save(name, g.Generate(size, seed)); err != nil {
			return names, err
		}
		glog.Infof("saved dataset %s with %d values", name, size)
		names = append(names, name)
	}
	return names, nil
}

// GenerateStandard saves every dataset in StandardSizes, using the category
// as the name prefix.
func (s *Store) GenerateStandard(g *Generator, seed int64) ([]string, error) {
	categories := make([]string, 0, len(StandardSizes))
	for category := range StandardSizes {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var names []string
	for _, category := range categories {
		saved, err := s.GenerateAndSave(g, StandardSizes[category], category, seed)
		names = append(names, saved...)
		if err != nil {
			return names, err
		}
	}
	return names, nil
}
