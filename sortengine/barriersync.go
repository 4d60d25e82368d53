package sortengine

import (
	"sync"

	"concursort/barrier"
	"concursort/merge"
	"concursort/waitpolicy"
)

// sortBarrierSync implements the barrier-synchronized coordination mode:
// numThreads workers share one reusable barrier.Barrier and rendezvous on
// it after local-sort and after every network stage, so that no thread
// starts merging segments a later stage depends on before every earlier
// merge that stage depends on has completed globally. Work is partitioned
// per thread as a contiguous, round-up chunk of the work item list,
// joined with sync.WaitGroup.
func sortBarrierSync(data []int, numThreads, segmentSize int, strategy waitpolicy.Strategy, b barrier.Barrier) {
	numSegments := len(data) / segmentSize
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
			}
			b.Wait(numThreads, strategy)

			buf := make([]int, 2*segmentSize)
			for _, step := range steps {
				pairs := pairsForStep(numSegments, step.k, step.j)
				plo, phi := chunkBounds(len(pairs), numThreads, th)
				for _, pair := range pairs[plo:phi] {
					seg1 := segmentOf(data, segmentSize, pair.i)
					seg2 := segmentOf(data, segmentSize, pair.ij)
					if pair.up {
						merge.Up(seg1, seg2, buf)
					} else {
						merge.Dn(seg1, seg2, buf)
					}
				}
				b.Wait(numThreads, strategy)
			}
		}()
	}
	wg.Wait()
}

// chunkBounds splits [0, n) into numThreads contiguous, round-up chunks
// and returns the [lo, hi) bounds owned by thread th.
func chunkBounds(n, numThreads, th int) (int, int) {
	if numThreads < 1 {
		numThreads = 1
	}
	chunk := (n + numThreads - 1) / numThreads
	lo := th * chunk
	hi := lo + chunk
	if lo > n {
		lo = n
	}
	if hi > n {
		hi = n
	}
	return lo, hi
}
