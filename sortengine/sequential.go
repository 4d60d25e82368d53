package sortengine

import "concursort/merge"

// sortSequential implements the single-threaded coordination mode:
// local-sort every segment, then walk the bitonic-merging network on one
// goroutine.
func sortSequential(data []int, segmentSize int) {
	localSort(data, segmentSize)

	numSegments := len(data) / segmentSize
	buf := make([]int, 2*segmentSize)
	for _, step := range kjSteps(numSegments) {
		for _, pair := range pairsForStep(numSegments, step.k, step.j) {
			seg1 := segmentOf(data, segmentSize, pair.i)
			seg2 := segmentOf(data, segmentSize, pair.ij)
			if pair.up {
				merge.Up(seg1, seg2, buf)
			} else {
				merge.Dn(seg1, seg2, buf)
			}
		}
	}
}
