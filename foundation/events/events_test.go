package events_test

import (
	"errors"
	"testing"

	"github.com/ardanlabs/ledger/foundation/events"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestFanOut(t *testing.T) {
	t.Log("Given the need to send events to every subscriber.")
	{
		evts := events.New()

		id1, ch1 := evts.Subscribe()
		id2, ch2 := evts.Subscribe()

		if id1 == id2 {
			t.Fatalf("\t%s\tShould get back unique subscriber ids.", failed)
		}
		t.Logf("\t%s\tShould get back unique subscriber ids.", success)

		evts.Send("state: AddBlock: blk[%d]", 1)

		for _, ch := range []<-chan string{ch1, ch2} {
			if got := <-ch; got != "state: AddBlock: blk[1]" {
				t.Fatalf("\t%s\tShould receive the formatted event, got %q.", failed, got)
			}
		}
		t.Logf("\t%s\tShould receive the formatted event on every channel.", success)

		if err := evts.Unsubscribe(id1); err != nil {
			t.Fatalf("\t%s\tShould be able to unsubscribe: %s", failed, err)
		}
		if _, ok := <-ch1; ok {
			t.Fatalf("\t%s\tShould close the channel on unsubscribe.", failed)
		}
		t.Logf("\t%s\tShould close the channel on unsubscribe.", success)

		if err := evts.Unsubscribe(id1); !errors.Is(err, events.ErrUnknownSubscriber) {
			t.Fatalf("\t%s\tShould reject an unknown subscriber: %v", failed, err)
		}
		t.Logf("\t%s\tShould reject an unknown subscriber.", success)

		evts.Shutdown()
		if _, ok := <-ch2; ok {
			t.Fatalf("\t%s\tShould close every channel on shutdown.", failed)
		}
		t.Logf("\t%s\tShould close every channel on shutdown.", success)
	}
}

func TestDropped(t *testing.T) {
	evts := events.New()
	id, ch := evts.Subscribe()

	for i := 0; i < 105; i++ {
		evts.Send("event %d", i)
	}

	if n := evts.Dropped(id); n != 5 {
		t.Fatalf("Should count dropped events, got %d.", n)
	}

	if got := <-ch; got != "event 0" {
		t.Fatalf("Should keep the oldest events, got %q.", got)
	}
}
