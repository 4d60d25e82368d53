package sortengine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"concursort/merge"
)

// sortForkJoin implements the fork-join coordination mode: each stage of
// the network is split across numThreads workers via errgroup.Group,
// whose Wait acts as the implicit barrier between stages — no explicit
// barrier primitive is used; coordination is delegated to that external
// parallel runtime. Local-sort is itself farmed out the same way, one
// errgroup generation per phase.
func sortForkJoin(data []int, numThreads, segmentSize int) {
	numSegments := len(data) / segmentSize

	runSplit(numSegments, numThreads, func(lo, hi int) {
		for id := lo; id < hi; id++ {
			seg := segmentOf(data, segmentSize, id)
			localSortOne(seg)
		}
	})

	for _, step := range kjSteps(numSegments) {
		pairs := pairsForStep(numSegments, step.k, step.j)
		runSplit(len(pairs), numThreads, func(lo, hi int) {
			buf := make([]int, 2*segmentSize)
			for _, pair := range pairs[lo:hi] {
				seg1 := segmentOf(data, segmentSize, pair.i)
				seg2 := segmentOf(data, segmentSize, pair.ij)
				if pair.up {
					merge.Up(seg1, seg2, buf)
				} else {
					merge.Dn(seg1, seg2, buf)
				}
			}
		})
	}
}

// runSplit partitions [0, n) into up to numThreads contiguous chunks and
// runs fn on each chunk concurrently, joining via errgroup.Group.Wait.
func runSplit(n, numThreads int, fn func(lo, hi int)) {
	if numThreads > n {
		numThreads = n
	}
	if numThreads < 1 {
		numThreads = 1
	}
	g, _ := errgroup.WithContext(context.Background())
	chunk := (n + numThreads - 1) / numThreads
	for lo := 0; lo < n; lo += chunk {
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		lo, hi := lo, hi
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}
