package sortengine

import (
	"sync"

	"code.hybscloud.com/atomix"

	"concursort/merge"
	"concursort/waitpolicy"
)

const lockFreeCacheLineSize = 64

// segStage holds one segment's progress through the network: the number
// of stages it has completed so far. Cache-line padded so that neighbor
// segments owned by other threads don't false-share the counter.
type segStage struct {
	done atomix.Uint64
	_    [lockFreeCacheLineSize - 8]byte
}

// sortLockFree implements the lock-free coordination mode: there is no
// shared barrier. Instead every segment carries its own atomic stage
// counter; a thread may merge segment
// pair (i, ij) at stage s only once both segments report having completed
// stage s-1, discovered by spinning on the pair's two counters with
// strategy. Work is partitioned across threads exactly as in the
// barrier-synchronized mode so that the two can be compared directly, but
// the two halves of every pair coordinate purely through the pair's own
// counters rather than a global rendezvous.
func sortLockFree(data []int, numThreads, segmentSize int, strategy waitpolicy.Strategy) {
	numSegments := len(data) / segmentSize
	stages := make([]segStage, numSegments)
	steps := kjSteps(numSegments)

	var wg sync.WaitGroup
	wg.Add(numThreads)
	for th := 0; th < numThreads; th++ {
		th := th
		go func() {
			defer wg.Done()

			lo, hi := chunkBounds(numSegments, numThreads, th)
			for id := lo; id < hi; id++ {
				localSortOne(segmentOf(data, segmentSize, id))
				stages[id].done.StoreRelease(1)
			}

			buf := make([]int, 2*segmentSize)
			for stageIdx, step := range steps {
				pairs := pairsForStep(numSegments, step.k, step.j)
				plo, phi := chunkBounds(len(pairs), numThreads, th)
				want := uint64(stageIdx + 1)
				for _, pair := range pairs[plo:phi] {
					for stages[pair.i].done.LoadAcquire() < want {
						strategy()
					}
					for stages[pair.ij].done.LoadAcquire() < want {
						strategy()
					}

					seg1 := segmentOf(data, segmentSize, pair.i)
					seg2 := segmentOf(data, segmentSize, pair.ij)
					if pair.up {
						merge.Up(seg1, seg2, buf)
					} else {
						merge.Dn(seg1, seg2, buf)
					}

					stages[pair.i].done.StoreRelease(want + 1)
					stages[pair.ij].done.StoreRelease(want + 1)
				}
			}
		}()
	}
	wg.Wait()
}
