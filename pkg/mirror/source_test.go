package mirror

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sidecast/sidecast/pkg/logger"
)

func TestSourceSharesOnePipeline(t *testing.T) {
	var built, closed atomic.Int32
	src := NewSource(func() (*Producer, error) {
		built.Add(1)
		return testProducer(&stubBackend{w: 32, h: 24, closed: &closed}, 1.0), nil
	}, logger.Default())

	const n = 8
	var wg sync.WaitGroup
	release := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := src.Acquire(); err != nil {
				t.Error(err)
				return
			}
			<-release
			src.Release()
		}()
	}

	deadline := time.Now().Add(2 * time.Second)
	for src.Clients() != n && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if c := src.Clients(); c != n {
		t.Fatalf("got %v clients, want %v", c, n)
	}
	if b := built.Load(); b != 1 {
		t.Errorf("built %v pipelines for %v concurrent clients, want one", b, n)
	}

	close(release)
	wg.Wait()
	if c := src.Clients(); c != 0 {
		t.Errorf("got %v clients after all released, want none", c)
	}
	if c := closed.Load(); c != 1 {
		t.Errorf("pipeline torn down %v times, want exactly once", c)
	}

	// the next client gets a fresh pipeline
	if _, err := src.Acquire(); err != nil {
		t.Fatal(err)
	}
	if b := built.Load(); b != 2 {
		t.Errorf("built %v pipelines, want a fresh one after the drain", b)
	}
	src.Release()
	if c := closed.Load(); c != 2 {
		t.Errorf("pipeline torn down %v times, want two", c)
	}
}

func TestSourceReleaseWithoutAcquire(t *testing.T) {
	src := NewSource(func() (*Producer, error) {
		t.Error("build must not run on release")
		return nil, nil
	}, logger.Default())

	src.Release()
	if c := src.Clients(); c != 0 {
		t.Errorf("got %v clients, want the count clamped at zero", c)
	}
}

func TestSourceAcquireFailure(t *testing.T) {
	broken := errors.New("no usable backend")
	calls := 0
	src := NewSource(func() (*Producer, error) { calls++; return nil, broken }, logger.Default())

	if _, err := src.Acquire(); !errors.Is(err, broken) {
		t.Fatalf("got %v, want the build error", err)
	}
	if c := src.Clients(); c != 0 {
		t.Errorf("got %v clients after a failed acquire, want none", c)
	}

	// a later acquire retries the build instead of caching the failure
	_, _ = src.Acquire()
	if calls != 2 {
		t.Errorf("build ran %v times, want a retry per acquire", calls)
	}
}
