package chainfeed_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ardanlabs/lupa/foundation/chainfeed"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_Feed(t *testing.T) {
	t.Log("Given the need to track the external height from an explorer endpoint.")
	{
		var height atomic.Uint64
		height.Store(500)

		mux := http.NewServeMux()
		mux.HandleFunc("/latestblock", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{"height": %d, "hash": "00000000000000000004a5"}`, height.Load())
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		t.Logf("\tTest 0:\tWhen the feed starts against a healthy endpoint.")
		{
			feed, err := chainfeed.New(srv.URL+"/latestblock", 10*time.Millisecond, func(v string, args ...any) {})
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to start the feed: %v", failed, err)
			}
			defer feed.Shutdown()

			if got := feed.Height(); got != 500 {
				t.Fatalf("\t%s\tTest 0:\tShould report the polled height, got %d.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould report the polled height immediately.", success)

			height.Store(501)
			deadline := time.Now().Add(2 * time.Second)
			for feed.Height() != 501 {
				if time.Now().After(deadline) {
					t.Fatalf("\t%s\tTest 0:\tShould observe the advanced height, still %d.", failed, feed.Height())
				}
				time.Sleep(5 * time.Millisecond)
			}
			t.Logf("\t%s\tTest 0:\tShould observe the advanced height.", success)

			height.Store(400)
			time.Sleep(50 * time.Millisecond)
			if got := feed.Height(); got != 501 {
				t.Fatalf("\t%s\tTest 0:\tShould never move the height backwards, got %d.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould never move the height backwards.", success)
		}

		t.Logf("\tTest 1:\tWhen the endpoint is unreachable at startup.")
		{
			bad := httptest.NewServer(http.NotFoundHandler())
			bad.Close()

			if _, err := chainfeed.New(bad.URL, 10*time.Millisecond, func(v string, args ...any) {}); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould refuse to start without a height.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould refuse to start without a height.", success)
		}
	}
}
