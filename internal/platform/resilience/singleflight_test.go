package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentLoads(t *testing.T) {
	var g SingleFlight
	var loads int32

	const readers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(readers)

	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err, _ := g.Do("standings:1", func() (any, error) {
				atomic.AddInt32(&loads, 1)
				time.Sleep(20 * time.Millisecond)
				return "loaded", nil
			})
			if err != nil {
				t.Errorf("Do: %v", err)
			}
			if v != "loaded" {
				t.Errorf("v = %v, want shared load result", v)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&loads); got != 1 {
		t.Fatalf("loader ran %d times, want 1", got)
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	var g SingleFlight

	if _, err, shared := g.Do("team:1", func() (any, error) { return 1, nil }); err != nil || shared {
		t.Fatalf("first key: err=%v shared=%v", err, shared)
	}
	if _, err, shared := g.Do("team:2", func() (any, error) { return 2, nil }); err != nil || shared {
		t.Fatalf("second key: err=%v shared=%v", err, shared)
	}
}

func TestSingleFlight_ErrorReachesEveryCaller(t *testing.T) {
	var g SingleFlight
	loadErr := errors.New("db down")

	_, err, _ := g.Do("team:1", func() (any, error) { return nil, loadErr })
	if !errors.Is(err, loadErr) {
		t.Fatalf("err = %v, want loader error", err)
	}

	// The failed call must not stay registered; the next call runs fresh.
	v, err, _ := g.Do("team:1", func() (any, error) { return "ok", nil })
	if err != nil || v != "ok" {
		t.Fatalf("retry after failure: v=%v err=%v", v, err)
	}
}
