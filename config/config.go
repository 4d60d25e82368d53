// Package config resolves the small set of tunables SortEngine needs from
// CLI flags or environment variables, falling back to defaults and
// emitting a non-fatal diagnostic on any parse failure.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"concursort/sortengine"
	"concursort/waitpolicy"
)

// Config is the fully-resolved set of knobs Sort needs.
type Config struct {
	DataShift      int
	SegmentSize    int
	NumThreads     int
	WaitPolicy     string
	SortMode       sortengine.Mode
	BarrierVariant string
}

// Default returns the baseline configuration in effect when nothing else
// is supplied: wait_policy=yield, barrier_variant=sense.
func Default() Config {
	return Config{
		DataShift:      10,
		SegmentSize:    8,
		NumThreads:     1,
		WaitPolicy:     waitpolicy.TagYield,
		SortMode:       sortengine.Sequential,
		BarrierVariant: "sense",
	}
}

// envNames maps each flag name to its environment-variable equivalent.
var envNames = map[string]string{
	"data_shift":      "DATA_SHIFT",
	"segment_size":    "SEGMENT_SIZE",
	"num_threads":     "NUM_THREADS",
	"wait_policy":     "WAIT_POLICY",
	"sort_mode":       "SORT_MODE",
	"barrier_variant": "BARRIER_VARIANT",
}

// Load resolves a Config from args (CLI flags of the form --name=value)
// layered over environment variables layered over Default.
//
// Two distinct failure kinds are handled differently: a malformed or
// out-of-range VALUE for a recognized flag is a parse failure — non-fatal,
// the field keeps its previous value, and a warning is logged via
// zerolog. An unrecognized flag NAME is returned as an error for the
// caller (cmd/sortlab) to turn into a nonzero exit code.
func Load(args []string) (Config, error) {
	cfg := Default()

	for name, env := range envNames {
		if raw, ok := os.LookupEnv(env); ok {
			applyField(&cfg, name, raw)
		}
	}

	fs := flag.NewFlagSet("concursort", flag.ContinueOnError)
	fs.SetOutput(discardWriter{})

	var dataShift, segmentSize, numThreads string
	var waitPolicy, sortMode, barrierVariant string
	fs.StringVar(&dataShift, "data_shift", "", "")
	fs.StringVar(&segmentSize, "segment_size", "", "")
	fs.StringVar(&numThreads, "num_threads", "", "")
	fs.StringVar(&waitPolicy, "wait_policy", "", "")
	fs.StringVar(&sortMode, "sort_mode", "", "")
	fs.StringVar(&barrierVariant, "barrier_variant", "", "")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	for name, raw := range map[string]string{
		"data_shift":      dataShift,
		"segment_size":    segmentSize,
		"num_threads":     numThreads,
		"wait_policy":     waitPolicy,
		"sort_mode":       sortMode,
		"barrier_variant": barrierVariant,
	} {
		if raw != "" {
			applyField(&cfg, name, raw)
		}
	}

	return cfg, nil
}

// applyField parses raw into the named field of cfg, leaving cfg
// untouched and logging a warning if raw is malformed or unrecognized.
func applyField(cfg *Config, name, raw string) {
	switch name {
	case "data_shift":
		if v, ok := parseInt(name, raw); ok {
			cfg.DataShift = v
		}
	case "segment_size":
		if v, ok := parseInt(name, raw); ok {
			cfg.SegmentSize = v
		}
	case "num_threads":
		if v, ok := parseInt(name, raw); ok {
			cfg.NumThreads = v
		}
	case "wait_policy":
		if _, ok := waitpolicy.Make(raw); ok {
			cfg.WaitPolicy = raw
		} else {
			log.Warn().Str("flag", name).Str("value", raw).Msg("config: unrecognized wait policy, keeping previous value")
		}
	case "sort_mode":
		if mode, ok := sortengine.ModeFromString(raw); ok {
			cfg.SortMode = mode
		} else {
			log.Warn().Str("flag", name).Str("value", raw).Msg("config: unrecognized sort mode, keeping previous value")
		}
	case "barrier_variant":
		if raw == "sense" || raw == "step" {
			cfg.BarrierVariant = raw
		} else {
			log.Warn().Str("flag", name).Str("value", raw).Msg("config: unrecognized barrier variant, keeping previous value")
		}
	}
}

func parseInt(name, raw string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		log.Warn().Str("flag", name).Str("value", raw).Err(err).Msg("config: failed to parse integer, keeping previous value")
		return 0, false
	}
	return v, true
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func init() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}
