// Package chainfeed provides the external height the auction phases key
// off. The feed polls a block-explorer style endpoint for the latest block
// and caches the height; the engine only ever sees the cached value through
// the HeightSource interface, never the feed itself.
package chainfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// maxRetries is the number of attempts made against the explorer endpoint
// before a poll cycle is given up.
const maxRetries = 3

// EventHandler defines a function that is called when events occur during
// polling.
type EventHandler func(v string, args ...any)

// latestBlock is the piece of the explorer response the feed cares about.
type latestBlock struct {
	Height uint64 `json:"height"`
	Hash   string `json:"hash"`
}

// Feed polls an explorer endpoint on an interval and caches the latest
// external height.
type Feed struct {
	url       string
	interval  time.Duration
	client    *http.Client
	evHandler EventHandler

	height atomic.Uint64

	wg       sync.WaitGroup
	shutdown chan struct{}
}

// New constructs a feed, performs one synchronous poll so callers start
// with a real height, and begins polling in the background.
func New(url string, interval time.Duration, evHandler EventHandler) (*Feed, error) {
	f := Feed{
		url:       url,
		interval:  interval,
		client:    &http.Client{Timeout: 10 * time.Second},
		evHandler: evHandler,
		shutdown:  make(chan struct{}),
	}

	height, err := f.poll()
	if err != nil {
		return nil, fmt.Errorf("initial height poll: %w", err)
	}
	f.height.Store(height)

	f.wg.Add(1)
	go f.run()

	return &f, nil
}

// Shutdown stops the polling goroutine and waits for it to finish.
func (f *Feed) Shutdown() {
	close(f.shutdown)
	f.wg.Wait()
}

// Height returns the most recently observed external height. The height
// only ever moves forward; a stale or smaller reading from the endpoint is
// ignored.
func (f *Feed) Height() uint64 {
	return f.height.Load()
}

// =============================================================================

// run is the polling loop.
func (f *Feed) run() {
	defer f.wg.Done()

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			height, err := f.poll()
			if err != nil {
				f.evHandler("chainfeed: poll failed: %s", err)
				continue
			}

			// Never let the height move backwards.
			if current := f.height.Load(); height > current {
				f.height.Store(height)
				f.evHandler("chainfeed: height advanced: %d", height)
			}

		case <-f.shutdown:
			return
		}
	}
}

// poll requests the latest block from the explorer endpoint with bounded
// retries.
func (f *Feed) poll() (uint64, error) {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Second):
			case <-f.shutdown:
				return 0, lastErr
			}
		}

		block, err := f.request()
		if err != nil {
			lastErr = err
			continue
		}

		return block.Height, nil
	}

	return 0, lastErr
}

// request performs a single latest-block call.
func (f *Feed) request() (latestBlock, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return latestBlock{}, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return latestBlock{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return latestBlock{}, fmt.Errorf("explorer returned status %d", resp.StatusCode)
	}

	var block latestBlock
	if err := json.NewDecoder(resp.Body).Decode(&block); err != nil {
		return latestBlock{}, err
	}

	return block, nil
}
