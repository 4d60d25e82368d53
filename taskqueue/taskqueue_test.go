package taskqueue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFIFOOrder(t *testing.T) {
	q := New()
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		q.Push(func() { order = append(order, i) })
	}
	for i := 0; i < 5; i++ {
		task := q.Pop()
		require.NotNil(t, task)
		task()
	}
	require.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestPopEmptyReturnsNil(t *testing.T) {
	q := New()
	require.Nil(t, q.Pop())
}

func TestMakeUnknownVariant(t *testing.T) {
	q, ok := Make("lockfree")
	require.False(t, ok)
	require.Nil(t, q)
}

func TestConcurrentPushPopNeverDoubleDelivers(t *testing.T) {
	q := New()
	const n = 2000
	var produced sync.WaitGroup
	produced.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer produced.Done()
			q.Push(func() {})
		}()
	}
	produced.Wait()

	var mu sync.Mutex
	seen := 0
	var consumers sync.WaitGroup
	consumers.Add(4)
	for c := 0; c < 4; c++ {
		go func() {
			defer consumers.Done()
			for {
				task := q.Pop()
				if task == nil {
					return
				}
				mu.Lock()
				seen++
				mu.Unlock()
			}
		}()
	}
	consumers.Wait()
	require.Equal(t, n, seen)
}
