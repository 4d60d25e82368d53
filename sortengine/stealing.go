package sortengine

import (
	"sync"

	"code.hybscloud.com/atomix"

	"concursort/barrier"
	"concursort/deque"
	"concursort/merge"
	"concursort/taskqueue"
	"concursort/waitpolicy"
)

// sortStealing implements the stealing coordination mode. A worker never
// executes a merge inline: it enqueues the merge into a task queue and
// runs it from there, and a worker whose own queue is empty runs tasks
// taken from its peers' queues instead of idling.
//
// When waitFree is false, segment-range ownership is static, exactly as in
// the barrier-synchronized mode (chunkBounds over the per-stage pair
// list), every worker's task queue is a mutex-guarded taskqueue.Queue and
// every stage is bracketed by two barrier.Wait calls: a thread waits,
// enqueues its owned merges, drains its own queue, then waits again. Both
// calls use a steal-closure wait strategy that spends every spin
// iteration draining one round of peer queues round-robin starting at
// self+1 — the wait-strategy slot captures the caller's queue view rather
// than performing a fixed spin action. A thread counts as arrived before
// its steal closure runs, so a merge it stole can still be running when
// the closing Wait releases; the opening Wait of the next stage holds
// every thread until that merge has finished.
//
// When waitFree is true, there is no barrier: tasks are dealt to workers
// round-robin, every task across every
// stage is pushed up front into per-thread deque.Deque (lock-free
// Chase-Lev) queues and threads race ahead freely, gated per task by the
// same per-segment stage-counter device sortLockFree uses for
// correctness. A per-thread stage counter (one atomic counter per worker,
// incremented as that worker's own tasks complete) is layered on top
// purely to steer stealing: a thief prefers a victim whose counter shows
// it lagging behind the thief's own.
func sortStealing(data []int, numThreads, segmentSize int, strategy waitpolicy.Strategy, waitFree bool, b barrier.Barrier) {
	numSegments := len(data) / segmentSize
	steps := kjSteps(numSegments)

	if waitFree {
		sortStealingWaitFree(data, numThreads, segmentSize, strategy, numSegments, steps)
		return
	}
	sortStealingBarriered(data, numThreads, segmentSize, strategy, numSegments, steps, b)
}

func sortStealingBarriered(data []int, numThreads, segmentSize int, strategy waitpolicy.Strategy, numSegments int, steps []networkStep, b barrier.Barrier) {
	queues := make([]*taskqueue.Queue, numThreads)
	for i := range queues {
		queues[i] = taskqueue.New()
	}

	var wg sync.WaitGroup
	wg.Add(numThreads)
	for th := 0; th < numThreads; th++ {
		th := th
		go func() {
			defer wg.Done()
			stealStrategy := stealClosure(queues, th)

			lo, hi := chunkBounds(numSegments, numThreads, th)
			for id := lo; id < hi; id++ {
				localSortOne(segmentOf(data, segmentSize, id))
			}
			b.Wait(numThreads, stealStrategy)

			for _, step := range steps {
				b.Wait(numThreads, stealStrategy)
				pairs := pairsForStep(numSegments, step.k, step.j)
				plo, phi := chunkBounds(len(pairs), numThreads, th)
				for _, pair := range pairs[plo:phi] {
					pair := pair
					buf := make([]int, 2*segmentSize)
					queues[th].Push(func() {
						seg1 := segmentOf(data, segmentSize, pair.i)
						seg2 := segmentOf(data, segmentSize, pair.ij)
						if pair.up {
							merge.Up(seg1, seg2, buf)
						} else {
							merge.Dn(seg1, seg2, buf)
						}
					})
				}
				drainOwn(queues[th])
				b.Wait(numThreads, stealStrategy)
			}
		}()
	}
	wg.Wait()
}

// drainOwn executes every task currently in q, in FIFO order.
func drainOwn(q *taskqueue.Queue) {
	for {
		task := q.Pop()
		if task == nil {
			return
		}
		task()
	}
}

// stealClosure builds the wait strategy a barrier-synchronized stealing
// worker installs at every barrier.Wait: one call drains a single
// round-robin pass over every peer's queue, starting at self+1, executing
// whatever it finds along the way.
func stealClosure(queues []*taskqueue.Queue, self int) waitpolicy.Strategy {
	n := len(queues)
	return func() {
		for step := 1; step < n; step++ {
			peer := (self + step) % n
			for {
				task := queues[peer].Pop()
				if task == nil {
					break
				}
				task()
			}
		}
	}
}

const lockFreeStealTries = 10

func sortStealingWaitFree(data []int, numThreads, segmentSize int, strategy waitpolicy.Strategy, numSegments int, steps []networkStep) {
	stages := make([]segStage, numSegments)
	threadStage := make([]atomix.Uint64, numThreads)
	deques := make([]*deque.Deque, numThreads)
	perOwner := make([][]taskqueue.Task, numThreads)

	next := 0
	for id := 0; id < numSegments; id++ {
		id := id
		owner := next % numThreads
		next++
		perOwner[owner] = append(perOwner[owner], func() {
			localSortOne(segmentOf(data, segmentSize, id))
			stages[id].done.StoreRelease(1)
			threadStage[owner].Add(1)
		})
	}

	for stageIdx, step := range steps {
		want := uint64(stageIdx + 1)
		for _, pair := range pairsForStep(numSegments, step.k, step.j) {
			pair := pair
			owner := next % numThreads
			next++
			// Each task carries its own scratch buffer: a stolen task may
			// run on any thread, so the buffer cannot be thread-indexed.
			buf := make([]int, 2*segmentSize)
			perOwner[owner] = append(perOwner[owner], func() {
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
				threadStage[owner].Add(1)
			})
		}
	}

	// PopBottom is LIFO, so each owner's tasks are pushed in reverse of
	// their stage order: the earliest-stage task ends up at the bottom
	// and is the one the owner's own PopBottom sees first, draining its
	// queue in chronological order instead of starting from a task whose
	// precondition only the rest of the same queue can satisfy. A thief
	// stealing from the top takes the victim's latest-stage task instead,
	// which leaves the victim's own soon-ready work for the victim to
	// keep making progress on uninterrupted.
	for i, tasks := range perOwner {
		deques[i] = deque.New(len(tasks))
		for j := len(tasks) - 1; j >= 0; j-- {
			deques[i].PushBottom(tasks[j])
		}
	}

	var wg sync.WaitGroup
	wg.Add(numThreads)
	for th := 0; th < numThreads; th++ {
		th := th
		go func() {
			defer wg.Done()
			for {
				if task, ok := deques[th].PopBottom(); ok {
					task()
					continue
				}
				if task, ok := stealPreferLagging(deques, threadStage, th, numThreads); ok {
					task()
					continue
				}
				return
			}
		}()
	}
	wg.Wait()
}

// stealPreferLagging visits peers whose threadStage reports them behind
// the caller first, falling back to every remaining peer so that a thief
// never gives up while any deque still holds work.
func stealPreferLagging(deques []*deque.Deque, threadStage []atomix.Uint64, self, numThreads int) (taskqueue.Task, bool) {
	mine := threadStage[self].LoadAcquire()

	for attempt := 0; attempt < lockFreeStealTries; attempt++ {
		for victim := 0; victim < numThreads; victim++ {
			if victim == self {
				continue
			}
			if threadStage[victim].LoadAcquire() >= mine {
				continue
			}
			if task, ok := deques[victim].Steal(); ok {
				return task, true
			}
		}
	}
	for victim := 0; victim < numThreads; victim++ {
		if victim == self {
			continue
		}
		if task, ok := deques[victim].Steal(); ok {
			return task, true
		}
	}
	return nil, false
}
