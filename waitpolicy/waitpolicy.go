// Package waitpolicy provides the small set of spin-wait behaviors that
// every busy-wait loop in this module (barriers, lock-free stage counters,
// the stealing sort) can be parameterized with.
package waitpolicy

import (
	"runtime"

	"code.hybscloud.com/spin"
)

// Strategy is invoked once per spin-loop iteration by a waiting goroutine.
// It may capture arbitrary state — the stealing sort mode passes a closure
// that drains a peer's task queue between spins instead of one of the named
// strategies below.
type Strategy func()

// Burn spins at full CPU with no hint to the scheduler or the core. Lowest
// latency to notice a release, highest power draw.
func Burn() Strategy {
	return func() {}
}

// Yield asks the Go scheduler to deschedule the calling goroutine briefly,
// giving other runnable goroutines a chance to run.
func Yield() Strategy {
	return func() { runtime.Gosched() }
}

// Pause hints the core to relax the spin loop. spin.Wait implements an
// adaptive backoff (core-relax hint first, falling back to a scheduler
// yield under sustained contention) since a bare CPU PAUSE opcode isn't
// reachable from Go without cgo or assembly.
func Pause() Strategy {
	var w spin.Wait
	return func() { w.Once() }
}

// Named tags recognized by Make, mirrored by config.Config.WaitPolicy.
const (
	TagBurn  = "burn"
	TagYield = "yield"
	TagPause = "pause"
)

// Make resolves a symbolic tag to a fresh Strategy. An unrecognized
// tag returns (nil, false); callers must check ok rather than treat a nil
// Strategy as burn.
func Make(tag string) (Strategy, bool) {
	switch tag {
	case TagBurn:
		return Burn(), true
	case TagYield:
		return Yield(), true
	case TagPause:
		return Pause(), true
	default:
		return nil, false
	}
}
