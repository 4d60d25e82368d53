// Command sortlab is the example harness around sortengine: it resolves
// a Config, generates a random permutation of the configured size, runs
// the configured sort mode, and reports whether the result is sorted.
// Flag parsing, environment lookup, and general harness plumbing live
// here deliberately, outside the core sortengine/barrier/deque/merge
// packages they call into.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "go.uber.org/automaxprocs"

	"concursort/config"
	"concursort/sortengine"
	"concursort/waitpolicy"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Error().Err(err).Msg("sortlab: unrecognized argument")
		os.Exit(1)
	}

	strategy, ok := waitpolicy.Make(cfg.WaitPolicy)
	if !ok {
		log.Error().Str("wait_policy", cfg.WaitPolicy).Msg("sortlab: unresolvable wait policy")
		os.Exit(1)
	}

	n := 1 << cfg.DataShift
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	data := rnd.Perm(n)
	for i := range data {
		data[i]++
	}

	log.Info().
		Int("n", n).
		Int("segment_size", cfg.SegmentSize).
		Int("num_threads", cfg.NumThreads).
		Str("wait_policy", cfg.WaitPolicy).
		Str("barrier_variant", cfg.BarrierVariant).
		Msg("sortlab: starting sort")

	start := time.Now()
	sortengine.Sort(data, cfg.SortMode, cfg.NumThreads, cfg.SegmentSize, strategy, cfg.BarrierVariant)
	elapsed := time.Since(start)

	if !sort.IntsAreSorted(data) {
		log.Error().Msg("sortlab: result is not sorted")
		os.Exit(1)
	}

	fmt.Printf("sorted %d elements in %s\n", n, elapsed)
}
