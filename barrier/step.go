package barrier

import (
	"code.hybscloud.com/atomix"

	"concursort/waitpolicy"
)

// Step is a step-counting central-counter barrier: instead of flipping a
// sense bit, the last arrival increments a monotonic step counter. Waiters
// spin while the step they observed on entry hasn't changed. uint64
// arithmetic wraps around by definition in Go, so an arbitrarily long
// sequence of phases never misbehaves on overflow.
type Step struct {
	spinning atomix.Int64
	_        [cacheLineSize - 8]byte
	step     atomix.Uint64
	_        [cacheLineSize - 8]byte
}

// NewStep returns a ready-to-use step barrier.
func NewStep() *Step { return &Step{} }

// Wait blocks until numThreads callers (including this one) have called
// Wait for the current phase.
func (b *Step) Wait(numThreads int, strategy waitpolicy.Strategy) {
	current := b.step.LoadRelaxed()
	if b.spinning.Add(1)-1 < int64(numThreads-1) {
		for b.step.LoadAcquire() == current {
			strategy()
		}
		return
	}
	b.spinning.StoreRelaxed(0)
	b.step.StoreRelease(current + 1)
}
