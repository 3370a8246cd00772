package events_test

import (
	"testing"
	"time"

	"github.com/ardanlabs/lupa/foundation/events"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_Events(t *testing.T) {
	t.Log("Given the need to fan auction events out to subscribers.")
	{
		evts := events.New()
		defer evts.Shutdown()

		t.Logf("\tTest 0:\tWhen a subscriber is registered.")
		{
			ch := evts.Acquire("sub-1")
			evts.Send("engine: auction finished")

			select {
			case event := <-ch:
				if event.Message != "engine: auction finished" {
					t.Fatalf("\t%s\tTest 0:\tShould deliver the message, got %q.", failed, event.Message)
				}
				if event.Time.IsZero() {
					t.Fatalf("\t%s\tTest 0:\tShould timestamp the event.", failed)
				}
				t.Logf("\t%s\tTest 0:\tShould deliver a timestamped event.", success)

			case <-time.After(time.Second):
				t.Fatalf("\t%s\tTest 0:\tShould deliver the event without blocking.", failed)
			}

			if err := evts.Release("sub-1"); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to release the subscriber: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to release the subscriber.", success)
		}

		t.Logf("\tTest 1:\tWhen sending with no subscribers.")
		{
			evts.Send("book: bucket updated")
			t.Logf("\t%s\tTest 1:\tShould not block without subscribers.", success)
		}

		t.Logf("\tTest 2:\tWhen releasing an unknown subscriber.")
		{
			if err := evts.Release("unknown"); err == nil {
				t.Fatalf("\t%s\tTest 2:\tShould reject an unknown subscriber.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould reject an unknown subscriber.", success)
		}
	}
}
