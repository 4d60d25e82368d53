package barrier

import (
	"code.hybscloud.com/atomix"

	"concursort/waitpolicy"
)

// Sense is a sense-reversing central-counter barrier. Each phase flips a
// shared "sense" word; waiters spin until the sense they observed on entry
// no longer matches the current one.
//
// Reuse across phases with a shrinking participant count works because
// each phase only ever depends on the sense value read at entry to *that*
// phase, never on a remembered numThreads.
type Sense struct {
	spinning atomix.Int64
	_        [cacheLineSize - 8]byte
	epoch    atomix.Uint64
	_        [cacheLineSize - 8]byte
}

// NewSense returns a ready-to-use sense barrier.
func NewSense() *Sense { return &Sense{} }

// Wait blocks until numThreads callers (including this one) have called
// Wait for the current phase.
func (b *Sense) Wait(numThreads int, strategy waitpolicy.Strategy) {
	local := b.epoch.LoadRelaxed()
	if b.spinning.Add(1)-1 < int64(numThreads-1) {
		for b.epoch.LoadAcquire() == local {
			strategy()
		}
		return
	}
	// Last arrival: reset the counter and release every waiter by flipping
	// the sense. The release here synchronizes-with every waiter's acquire
	// load above, so everything a waiter did before calling Wait in this
	// phase is visible to every other thread after its own Wait returns.
	b.spinning.StoreRelaxed(0)
	b.epoch.StoreRelease(^local)
}
