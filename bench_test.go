package tarn_test

import (
	"sync"
	"testing"
	"time"

	"github.com/gammazero/workerpool"
	"github.com/panjf2000/ants/v2"

	"github.com/tarnlib/tarn"
)

const (
	benchTaskCount    = 10000
	benchTaskDuration = 1 * time.Millisecond
	benchWorkerCount  = 100
)

func BenchmarkTarn(b *testing.B) {
	var wg sync.WaitGroup
	pool, _ := tarn.New[int](benchWorkerCount)
	defer pool.Shutdown(true)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		wg.Add(benchTaskCount)
		for j := 0; j < benchTaskCount; j++ {
			pool.Submit(func() {
				time.Sleep(benchTaskDuration)
				wg.Done()
			})
		}
		wg.Wait()
	}
	b.StopTimer()
}

func BenchmarkTarnMapOrdered(b *testing.B) {
	pool, _ := tarn.New[int](benchWorkerCount)
	defer pool.Shutdown(true)

	tasks := make([]any, benchTaskCount)
	for i := range tasks {
		i := i
		tasks[i] = func() int {
			time.Sleep(benchTaskDuration)
			return i
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.MapOrdered(tasks...)
	}
	b.StopTimer()
}

func BenchmarkGoroutines(b *testing.B) {
	var wg sync.WaitGroup

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		wg.Add(benchTaskCount)
		for j := 0; j < benchTaskCount; j++ {
			go func() {
				time.Sleep(benchTaskDuration)
				wg.Done()
			}()
		}
		wg.Wait()
	}
	b.StopTimer()
}

func BenchmarkGammazeroWorkerpool(b *testing.B) {
	var wg sync.WaitGroup
	pool := workerpool.New(benchWorkerCount)
	defer pool.StopWait()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		wg.Add(benchTaskCount)
		for j := 0; j < benchTaskCount; j++ {
			pool.Submit(func() {
				time.Sleep(benchTaskDuration)
				wg.Done()
			})
		}
		wg.Wait()
	}
	b.StopTimer()
}

func BenchmarkAnts(b *testing.B) {
	var wg sync.WaitGroup
	pool, _ := ants.NewPool(benchWorkerCount, ants.WithExpiryDuration(10*time.Second))
	defer pool.Release()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		wg.Add(benchTaskCount)
		for j := 0; j < benchTaskCount; j++ {
			pool.Submit(func() {
				time.Sleep(benchTaskDuration)
				wg.Done()
			})
		}
		wg.Wait()
	}
	b.StopTimer()
}
