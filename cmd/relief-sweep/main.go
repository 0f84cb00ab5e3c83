// Command relief-sweep renders the same seed under a grid of growth and
// sampling settings and ranks the results by how close their land share
// comes to a target.
package main

import (
	"context"
	"flag"
	"fmt"
	"maps"
	"math"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"tecto-relief/internal/logger"
	"tecto-relief/internal/world"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type paramSet struct {
	splits   int
	rays     int
	ageDecay float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("splits=%d rays=%d decay=%.2f", p.splits, p.rays, p.ageDecay)
}

type scenarioResult struct {
	params  paramSet
	plates  int
	minH    float64
	maxH    float64
	mean    float64
	land    float64
	elapsed time.Duration
	err     error
}

func main() {
	workers := flag.Int("workers", runtime.NumCPU(), "scenarios evaluated in parallel")
	width := flag.Int("width", 96, "world width for sweep runs")
	height := flag.Int("height", 96, "world height for sweep runs")
	seed := flag.Int64("seed", 1337, "seed shared by every scenario")
	target := flag.Float64("land", 0.3, "target fraction of cells above sea level")
	top := flag.Int("top", 5, "results to print")
	debug := flag.Bool("debug", false, "log every scenario")
	var overrides kvList
	flag.Var(&overrides, "set", "engine override in key=value form (repeatable)")
	flag.Parse()

	level := "warn"
	if *debug {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	raw := map[string]string{
		"w":       strconv.Itoa(*width),
		"h":       strconv.Itoa(*height),
		"seed":    strconv.FormatInt(*seed, 10),
		"workers": "1",
	}
	for _, kv := range overrides {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		raw[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	baseCfg := world.FromMap(raw)
	base := baseCfg.Parameters().Values()

	var sets []paramSet
	for _, splits := range []int{8, 16, 32, 64} {
		for _, rays := range []int{4, 6, 8, 12} {
			for _, decay := range []float64{0.25, 0.5, 0.75} {
				sets = append(sets, paramSet{splits: splits, rays: rays, ageDecay: decay})
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %dx%d, seed %d)\n",
		len(sets), *workers, baseCfg.Width, baseCfg.Height, baseCfg.Seed)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(base, params)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		if res.err != nil {
			logger.Warn("scenario failed", zap.Stringer("params", res.params), zap.Error(res.err))
			continue
		}
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool {
		return math.Abs(all[i].land-*target) < math.Abs(all[j].land-*target)
	})
	elapsed := time.Since(start)

	fmt.Printf("\nTop %d results for land %.2f (elapsed %s):\n", *top, *target, elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < *top; i++ {
		res := all[i]
		fmt.Printf("%2d) land=%.3f plates=%d h[%.3f,%.3f] mean=%.3f took=%s params=%s\n",
			i+1, res.land, res.plates, res.minH, res.maxH, res.mean, res.elapsed.Round(time.Millisecond), res.params)
	}
}

func runScenario(base map[string]string, params paramSet) scenarioResult {
	values := maps.Clone(base)
	values["rays"] = strconv.Itoa(params.rays)
	values["age_decay"] = strconv.FormatFloat(params.ageDecay, 'f', -1, 64)
	cfg := world.FromMap(values)

	res := scenarioResult{params: params}
	start := time.Now()
	w, err := world.New(cfg, world.WithLogger(logger.Named("sweep")))
	if err != nil {
		res.err = err
		return res
	}
	if _, err := w.Grow(params.splits); err != nil {
		res.err = err
		return res
	}
	grid, err := w.Render(context.Background(), params.rays)
	if err != nil {
		res.err = err
		return res
	}

	res.plates = w.Len()
	res.minH, res.maxH = grid.MinMax()
	res.mean = grid.Mean()
	res.land = grid.FractionAbove(0)
	res.elapsed = time.Since(start)
	return res
}
