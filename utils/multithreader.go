package utils

import (
	"runtime"
	"sync"
)

// MultiThread runs an operation on a range of integers, spreading the work
// across goroutines. It blocks until the whole range has been handled, so
// callers remain sequential from the outside.
//
// The range includes 'start' and excludes 'end'; MultiThread assumes that
// end ≥ start. 'f' is the function run for each value in the range.
// 'opsPerThread' is the number of operations each goroutine handles before
// requesting another set, and 'threadsPerCPU' is the number of goroutines
// created per CPU.
func MultiThread(start, end int, f func(int), opsPerThread, threadsPerCPU int) {

	numThreads := runtime.NumCPU() * threadsPerCPU
	index := start
	var indexMux sync.Mutex

	var wg sync.WaitGroup

	wg.Add(numThreads)
	for thread := 0; thread < numThreads; thread++ {
		go func() {
			for {
				indexMux.Lock()
				if index >= end {
					indexMux.Unlock()
					break
				}

				i := index
				index += opsPerThread
				indexMux.Unlock()

				e := i + opsPerThread
				if e > end {
					e = end
				}

				for ; i < e; i++ {
					f(i)
				}
			}

			wg.Done()
		}()
	}

	wg.Wait()
}
