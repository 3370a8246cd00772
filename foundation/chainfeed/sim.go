package chainfeed

import (
	"sync"
	"sync/atomic"
	"time"
)

// Sim is a height source that advances on a local ticker instead of an
// explorer endpoint. Used for local runs and demos where no chain is
// available.
type Sim struct {
	height   atomic.Uint64
	wg       sync.WaitGroup
	shutdown chan struct{}
}

// NewSim constructs a simulated height source that increments the height
// once per interval.
func NewSim(start uint64, interval time.Duration) *Sim {
	s := Sim{
		shutdown: make(chan struct{}),
	}
	s.height.Store(start)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.height.Add(1)
			case <-s.shutdown:
				return
			}
		}
	}()

	return &s
}

// Shutdown stops the ticker goroutine and waits for it to finish.
func (s *Sim) Shutdown() {
	close(s.shutdown)
	s.wg.Wait()
}

// Height returns the current simulated height.
func (s *Sim) Height() uint64 {
	return s.height.Load()
}
