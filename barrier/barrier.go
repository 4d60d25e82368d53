// Package barrier implements reusable N-thread rendezvous barriers.
//
// A Barrier blocks every caller of Wait until exactly numThreads distinct
// callers have arrived for the current phase, then releases all of them
// together. A single instance serves an unbounded sequence of phases,
// including phases that declare a different numThreads than the previous
// one, provided exactly that many callers arrive before any of them moves
// on to the next phase.
//
// Misuse — fewer than numThreads callers in a phase — hangs the barrier.
// There is no timeout and no error return; callers must preserve the
// invariant themselves.
package barrier

import "concursort/waitpolicy"

// cacheLineSize is the padding unit used to keep the two mutable words of
// each barrier implementation on distinct cache lines, so that one
// goroutine's arrival doesn't force a cache-line invalidation on whatever
// unrelated data happens to share a line with the barrier's counters.
const cacheLineSize = 64

// Barrier is the common contract for every barrier variant. Wait blocks the
// caller until numThreads total callers have reached this phase; strategy
// is invoked once per spin iteration while waiting.
type Barrier interface {
	Wait(numThreads int, strategy waitpolicy.Strategy)
}

// Variant tags recognized by Make.
const (
	VariantSense = "sense"
	VariantStep  = "step"
)

// Make resolves a symbolic tag to a fresh Barrier. An unrecognized tag
// returns (nil, false); it never panics.
func Make(variant string) (Barrier, bool) {
	switch variant {
	case VariantSense:
		return NewSense(), true
	case VariantStep:
		return NewStep(), true
	default:
		return nil, false
	}
}
