package bidbook_test

import (
	"testing"

	"github.com/ardanlabs/lupa/foundation/lupa/bidbook"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_Buckets(t *testing.T) {
	t.Log("Given the need to validate bid value aggregation.")
	{
		t.Logf("\tTest 0:\tWhen recording reveals of the same value.")
		{
			book := bidbook.New()

			bucket := book.Record(5)
			if bucket.Count != 1 || !bucket.Unmatched {
				t.Fatalf("\t%s\tTest 0:\tShould report the first reveal as unmatched: %+v", failed, bucket)
			}
			t.Logf("\t%s\tTest 0:\tShould report the first reveal as unmatched.", success)

			bucket = book.Record(5)
			if bucket.Count != 2 || bucket.Unmatched {
				t.Fatalf("\t%s\tTest 0:\tShould report the second reveal as matched: %+v", failed, bucket)
			}
			t.Logf("\t%s\tTest 0:\tShould report the second reveal as matched.", success)

			bucket = book.Record(5)
			if bucket.Count != 3 || bucket.Unmatched {
				t.Fatalf("\t%s\tTest 0:\tShould never return to unmatched: %+v", failed, bucket)
			}
			t.Logf("\t%s\tTest 0:\tShould never return to unmatched.", success)
		}

		t.Logf("\tTest 1:\tWhen recording reveals of distinct values.")
		{
			book := bidbook.New()

			book.Record(5)
			bucket := book.Record(7)
			if bucket.Count != 1 || !bucket.Unmatched {
				t.Fatalf("\t%s\tTest 1:\tShould keep distinct values in distinct buckets: %+v", failed, bucket)
			}
			t.Logf("\t%s\tTest 1:\tShould keep distinct values in distinct buckets.", success)

			if book.Len() != 2 {
				t.Fatalf("\t%s\tTest 1:\tShould report two distinct values, got %d.", failed, book.Len())
			}
			t.Logf("\t%s\tTest 1:\tShould report two distinct values.", success)
		}

		t.Logf("\tTest 2:\tWhen restoring a bucket after a failed operation.")
		{
			book := bidbook.New()

			prev, existed := book.Bucket(5)
			book.Record(5)
			book.Restore(5, prev, existed)

			if _, exists := book.Bucket(5); exists {
				t.Fatalf("\t%s\tTest 2:\tShould remove a bucket that did not exist before.", failed)
			}
			t.Logf("\t%s\tTest 2:\tShould remove a bucket that did not exist before.", success)

			book.Record(5)
			prev, existed = book.Bucket(5)
			book.Record(5)
			book.Restore(5, prev, existed)

			bucket, _ := book.Bucket(5)
			if bucket.Count != 1 || !bucket.Unmatched {
				t.Fatalf("\t%s\tTest 2:\tShould restore the exact prior bucket state: %+v", failed, bucket)
			}
			t.Logf("\t%s\tTest 2:\tShould restore the exact prior bucket state.", success)
		}
	}
}
