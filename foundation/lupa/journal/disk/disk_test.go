package disk_test

import (
	"testing"

	"github.com/ardanlabs/lupa/foundation/lupa/journal"
	"github.com/ardanlabs/lupa/foundation/lupa/journal/disk"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_Journal(t *testing.T) {
	t.Log("Given the need to persist and iterate journal entries on disk.")
	{
		store, err := disk.New(t.TempDir())
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the journal: %v", failed, err)
		}
		defer store.Close()

		ops := []journal.OpData{
			{Seq: 1, Height: 10, Type: journal.OpCreate, Account: "0xFef311483Cc040e1A89fb9bb469eeB8A70935EF8", Amount: 50000},
			{Seq: 2, Height: 12, Type: journal.OpBid, Account: "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4", Hash: "0x48c9bdf267e6096a3ba7ca8485ae67bb2bf894fe72f36e3cf1361d5f3af54fa5", Amount: 1000},
			{Seq: 3, Height: 115, Type: journal.OpReveal, Account: "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4", Nonce: 42, Value: 5},
		}

		t.Logf("\tTest 0:\tWhen writing entries in sequence.")
		{
			for _, op := range ops {
				if err := store.Write(op); err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to write entry %d: %v", failed, op.Seq, err)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould be able to write every entry.", success)
		}

		t.Logf("\tTest 1:\tWhen reading an entry back by sequence.")
		{
			op, err := store.GetOp(3)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to read the entry: %v", failed, err)
			}
			if op != ops[2] {
				t.Fatalf("\t%s\tTest 1:\tShould read back the written entry.\n\t\tgot:  %+v\n\t\twant: %+v", failed, op, ops[2])
			}
			t.Logf("\t%s\tTest 1:\tShould read back the written entry.", success)
		}

		t.Logf("\tTest 2:\tWhen iterating the whole journal.")
		{
			var read []journal.OpData
			iter := store.ForEach()
			for op, err := iter.Next(); !iter.Done(); op, err = iter.Next() {
				if err != nil {
					t.Fatalf("\t%s\tTest 2:\tShould be able to iterate: %v", failed, err)
				}
				read = append(read, op)
			}

			if len(read) != len(ops) {
				t.Fatalf("\t%s\tTest 2:\tShould iterate every entry, got %d want %d.", failed, len(read), len(ops))
			}
			for i := range ops {
				if read[i] != ops[i] {
					t.Fatalf("\t%s\tTest 2:\tShould iterate entries in order, entry %d differs.", failed, i+1)
				}
			}
			t.Logf("\t%s\tTest 2:\tShould iterate every entry in order.", success)
		}

		t.Logf("\tTest 3:\tWhen the journal is reset.")
		{
			if err := store.Reset(); err != nil {
				t.Fatalf("\t%s\tTest 3:\tShould be able to reset the journal: %v", failed, err)
			}

			iter := store.ForEach()
			if _, err := iter.Next(); !iter.Done() || err == nil {
				t.Fatalf("\t%s\tTest 3:\tShould report an empty journal after reset.", failed)
			}
			t.Logf("\t%s\tTest 3:\tShould report an empty journal after reset.", success)
		}
	}
}
