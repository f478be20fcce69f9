package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_SameKeyRunsOnce(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var counter atomic.Int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			value, err, _ := g.Do("standings", func() (any, error) {
				counter.Add(1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
			if value != "ok" {
				t.Errorf("unexpected shared value: %v", value)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := counter.Load(); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	var counter atomic.Int32

	var wg sync.WaitGroup
	for _, key := range []string{"a", "b", "c"} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			_, _, shared := g.Do(key, func() (any, error) {
				counter.Add(1)
				time.Sleep(5 * time.Millisecond)
				return key, nil
			})
			if shared {
				t.Errorf("key %s must not share a result", key)
			}
		}(key)
	}
	wg.Wait()

	if got := counter.Load(); got != 3 {
		t.Fatalf("expected one run per key, got %d", got)
	}
}
