package ibl

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// workQueue hands out the unit indices [0, total) exactly once each.
// Every parallel phase uses a fresh queue.
type workQueue struct {
	next  atomic.Int64
	done  atomic.Int64
	total int64
}

func newWorkQueue(total int) *workQueue {
	return &workQueue{total: int64(total)}
}

func (q *workQueue) claim() (unit int, ok bool) {
	i := q.next.Add(1) - 1
	if i >= q.total {
		return 0, false
	}
	return int(i), true
}

func (q *workQueue) complete() int {
	return int(q.done.Add(1))
}

// runParallel calls work once for every unit in [0, units) using the given number
// of workers and waits for all of them. Workers pull the next unclaimed unit,
// so uneven unit costs balance out. onDone, if set, is called after each finished unit
// with the count of finished units; it may be called concurrently.
func runParallel(units, workers int, work func(unit int), onDone func(done int)) {
	if workers < 1 {
		workers = 1
	}
	if workers > units {
		workers = units
	}

	q := newWorkQueue(units)
	worker := func() {
		for {
			unit, ok := q.claim()
			if !ok {
				return
			}
			work(unit)
			done := q.complete()
			if onDone != nil {
				onDone(done)
			}
		}
	}

	if workers <= 1 {
		worker()
		return
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			worker()
		}()
	}
	wg.Wait()
}

func defaultThreads() int {
	return runtime.NumCPU()
}

// rowAddress converts a global row index into a face and the row within that face.
func rowAddress(cube *CubeMap, row int) (face CubeMapFace, y int) {
	for row >= cube.Faces[face].Height {
		row -= cube.Faces[face].Height
		face++
	}
	return face, row
}
