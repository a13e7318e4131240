package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_Do(t *testing.T) {
	var g SingleFlight
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err, _ := g.Do("page-key", func() (any, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
			if got, _ := v.(string); got != "ok" {
				t.Errorf("unexpected shared value: %v", v)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	var g SingleFlight
	var counter int32

	if _, err, shared := g.Do("a", func() (any, error) {
		atomic.AddInt32(&counter, 1)
		return nil, nil
	}); err != nil || shared {
		t.Fatalf("first call: err=%v shared=%t", err, shared)
	}

	if _, err, shared := g.Do("b", func() (any, error) {
		atomic.AddInt32(&counter, 1)
		return nil, nil
	}); err != nil || shared {
		t.Fatalf("second call: err=%v shared=%t", err, shared)
	}

	if got := atomic.LoadInt32(&counter); got != 2 {
		t.Fatalf("expected both functions to run, got %d", got)
	}
}
