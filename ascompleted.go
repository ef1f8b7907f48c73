package tarn

import "sync"

// AsCompleted returns a channel that yields the result of each future as
// soon as it resolves, in completion order. Every future is consumed exactly
// once and the channel is closed after the last result has been delivered.
// The relative order of futures resolving at the same instant is
// unspecified.
func AsCompleted[R any](futures ...*Future[R]) <-chan Result[R] {
	results := make(chan Result[R])

	var waitGroup sync.WaitGroup
	waitGroup.Add(len(futures))

	for _, future := range futures {
		future := future
		go func() {
			defer waitGroup.Done()
			<-future.Done()
			results <- future.Result()
		}()
	}

	go func() {
		waitGroup.Wait()
		close(results)
	}()

	return results
}
