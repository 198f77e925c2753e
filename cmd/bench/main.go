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

// Command bench generates datasets and measures the collection engines
// against them, writing the measurements as CSV.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	cli "github.com/urfave/cli/v2"

	"github.com/9rum/collections/bench"
	"github.com/9rum/collections/internal/data"
)

// logToStderr sends glog output to the terminal.  glog registers its flags
// on the standard flag set.
func logToStderr() error {
	return flag.Set("logtostderr", "true")
}

func main() {
	if err := logToStderr(); err != nil {
		fmt.Fprintf(os.Stderr, "bench: %v\n", err)
		os.Exit(1)
	}
	defer glog.Flush()

	app := cli.App{
		Name:  "bench",
		Usage: "measure the B-tree, red-black tree and XOR linked list engines",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:    "seed",
				Usage:   "seed of the generated datasets",
				Value:   42,
				EnvVars: []string{"COLLECTIONS_SEED"},
			},
			&cli.IntFlag{
				Name:    "min",
				Usage:   "smallest generated value",
				Value:   data.DefaultMin,
				EnvVars: []string{"COLLECTIONS_MIN"},
			},
			&cli.IntFlag{
				Name:    "max",
				Usage:   "largest generated value",
				Value:   data.DefaultMax,
				EnvVars: []string{"COLLECTIONS_MAX"},
			},
			&cli.IntFlag{
				Name:    "degree",
				Usage:   "minimum degree of the B-tree",
				Value:   3,
				EnvVars: []string{"COLLECTIONS_DEGREE"},
			},
			&cli.StringSliceFlag{
				Name:    "engine",
				Usage:   "engines to measure (btree, redblacktree, xorlinkedlist); all when omitted",
				EnvVars: []string{"COLLECTIONS_ENGINES"},
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "CSV output file, - for stdout",
				Value:   "-",
				EnvVars: []string{"COLLECTIONS_OUTPUT"},
			},
		},
		Commands: []*cli.Command{
			generateCmd,
			runCmd,
			memoryCmd,
			profileCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		glog.Errorf("bench: %v", err)
		glog.Flush()
		os.Exit(1)
	}
}

func generator(cctx *cli.Context) (*data.Generator, error) {
	return data.NewGenerator(cctx.Int("min"), cctx.Int("max"))
}

func factories(cctx *cli.Context) ([]bench.Factory, error) {
	degree := cctx.Int("degree")
	if degree < 2 {
		return nil, fmt.Errorf("invalid minimum degree: %d", degree)
	}
	selected := bench.Select(bench.DefaultFactories(degree), cctx.StringSlice("engine"))
	if len(selected) == 0 {
		return nil, fmt.Errorf("no engine matches %v", cctx.StringSlice("engine"))
	}
	return selected, nil
}

// output opens the CSV destination and hands it to write.
func output(cctx *cli.Context, write func(io.Writer) error) error {
	path := cctx.String("output")
	if path == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	glog.Infof("wrote %s", path)
	return f.Close()
}

var sizeFlags = []cli.Flag{
	&cli.IntFlag{
		Name:  "start",
		Usage: "smallest dataset size",
		Value: 100000,
	},
	&cli.IntFlag{
		Name:  "stop",
		Usage: "largest dataset size",
		Value: 1000000,
	},
	&cli.IntFlag{
		Name:  "step",
		Usage: "dataset size increment",
		Value: 100000,
	},
}

func sizes(cctx *cli.Context) ([]int, error) {
	s := bench.Sizes(cctx.Int("start"), cctx.Int("stop"), cctx.Int("step"))
	if len(s) == 0 {
		return nil, fmt.Errorf("empty size range %d..%d step %d", cctx.Int("start"), cctx.Int("stop"), cctx.Int("step"))
	}
	return s, nil
}

var generateCmd = &cli.Command{
	Name:  "generate",
	Usage: "generate the standard datasets as JSON files",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "dir",
			Usage:   "dataset directory",
			Value:   "datasets",
			EnvVars: []string{"COLLECTIONS_DATASETS"},
		},
		&cli.IntSliceFlag{
			Name:  "size",
			Usage: "dataset sizes; the standard sizes when omitted",
		},
		&cli.StringFlag{
			Name:  "prefix",
			Usage: "dataset name prefix for the given sizes",
			Value: "dataset",
		},
	},
	Action: func(cctx *cli.Context) error {
		gen, err := generator(cctx)
		if err != nil {
			return err
		}
		store, err := data.NewStore(cctx.String("dir"))
		if err != nil {
			return err
		}
		if s := cctx.IntSlice("size"); len(s) != 0 {
			_, err = store.GenerateAndSave(gen, s, cctx.String("prefix"), cctx.Int64("seed"))
		} else {
			_, err = store.GenerateStandard(gen, cctx.Int64("seed"))
		}
		if err != nil {
			return err
		}
		names, err := store.List()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var runCmd = &cli.Command{
	Name:  "run",
	Usage: "time bulk insert, read and delete over growing datasets",
	Flags: sizeFlags,
	Action: func(cctx *cli.Context) error {
		gen, err := generator(cctx)
		if err != nil {
			return err
		}
		selected, err := factories(cctx)
		if err != nil {
			return err
		}
		s, err := sizes(cctx)
		if err != nil {
			return err
		}
		results, err := bench.Sweep(selected, s, gen, cctx.Int64("seed"))
		if err != nil {
			return err
		}
		return output(cctx, func(w io.Writer) error {
			return bench.WriteResultsCSV(w, results)
		})
	},
}

var memoryCmd = &cli.Command{
	Name:  "memory",
	Usage: "sample heap growth while inserting datasets",
	Flags: []cli.Flag{
		&cli.IntSliceFlag{
			Name:  "size",
			Usage: "dataset sizes",
			Value: cli.NewIntSlice(1000, 10000, 100000, 1000000),
		},
		&cli.IntFlag{
			Name:  "samples",
			Usage: "number of samples per dataset",
			Value: 10,
		},
	},
	Action: func(cctx *cli.Context) error {
		gen, err := generator(cctx)
		if err != nil {
			return err
		}
		selected, err := factories(cctx)
		if err != nil {
			return err
		}
		profiles, err := bench.MeasureMemorySweep(selected, cctx.IntSlice("size"), gen, cctx.Int64("seed"), cctx.Int("samples"))
		if err != nil {
			return err
		}
		return output(cctx, func(w io.Writer) error {
			return bench.WriteMemoryCSV(w, profiles)
		})
	},
}

var profileCmd = &cli.Command{
	Name:  "profile",
	Usage: "measure single insert latency as the engines grow",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "size",
			Usage: "number of values inserted",
			Value: bench.DefaultProfileOptions().Max,
		},
		&cli.IntFlag{
			Name:  "interval",
			Usage: "inserts between two measurements",
			Value: bench.DefaultProfileOptions().Interval,
		},
		&cli.IntFlag{
			Name:  "repeat",
			Usage: "timed inserts per measurement",
			Value: bench.DefaultProfileOptions().Repeat,
		},
		&cli.IntFlag{
			Name:  "window",
			Usage: "moving average window",
			Value: bench.DefaultProfileOptions().Window,
		},
	},
	Action: func(cctx *cli.Context) error {
		selected, err := factories(cctx)
		if err != nil {
			return err
		}
		opts := bench.ProfileOptions{
			Max:      cctx.Int("size"),
			Interval: cctx.Int("interval"),
			Repeat:   cctx.Int("repeat"),
			Window:   cctx.Int("window"),
			Min:      cctx.Int("min"),
			MaxValue: cctx.Int("max"),
			Seed:     cctx.Int64("seed"),
		}
		profiles := make([]bench.Profile, 0, len(selected))
		for _, factory := range selected {
			profile, err := bench.InsertionProfile(factory(), opts)
			if err != nil {
				return err
			}
			profiles = append(profiles, profile)
		}
		return output(cctx, func(w io.Writer) error {
			return bench.WriteProfileCSV(w, profiles)
		})
	},
}
