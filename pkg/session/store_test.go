package session

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"diptab/pkg/dip"
	"diptab/pkg/events"
)

func TestAddNormalizesDIPMM(t *testing.T) {
	s := New(nil)
	s.Add(dip.Record{KG: 100, DIP: 2.5})

	got := s.Snapshot()
	if len(got) != 1 {
		t.Fatalf("Len = %d, want 1", len(got))
	}
	if got[0].DIPMM != 25 {
		t.Errorf("DIPMM = %v, want 25", got[0].DIPMM)
	}
}

func TestUpdateRederivesDIPMM(t *testing.T) {
	s := New(nil)
	s.Add(dip.Record{KG: 100, DIP: 2.5})

	if err := s.Update(0, dip.Record{KG: 100, DIP: 3.1}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := s.Snapshot()[0].DIPMM; got != 31 {
		t.Errorf("DIPMM = %v, want 31", got)
	}

	if err := s.Update(5, dip.Record{}); err == nil {
		t.Error("Update out of range did not fail")
	}
}

func TestDeleteAndClear(t *testing.T) {
	s := New(nil)
	s.Add(dip.Record{DIP: 1})
	s.Add(dip.Record{DIP: 2})
	s.Add(dip.Record{DIP: 3})

	if err := s.Delete(1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	want := []float64{1, 3}
	var got []float64
	for _, r := range s.Snapshot() {
		got = append(got, r.DIP)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records after delete (-want +got):\n%s", diff)
	}

	if err := s.Delete(7); err == nil {
		t.Error("Delete out of range did not fail")
	}

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", s.Len())
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := New(nil)
	s.Add(dip.Record{KG: 100, DIP: 2})

	snap := s.Snapshot()
	snap[0].KG = 999

	if got := s.Snapshot()[0].KG; got != 100 {
		t.Errorf("store KG = %v after mutating a snapshot, want 100", got)
	}
}

func TestMutationsPublishEvents(t *testing.T) {
	hub := events.NewHub()
	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	s := New(hub)
	s.Add(dip.Record{DIP: 2})

	select {
	case ev := <-ch:
		if ev.Name != events.RecordsChanged {
			t.Errorf("event name = %q, want %q", ev.Name, events.RecordsChanged)
		}
		payload, err := events.DecodeAs[events.RecordsChangedEvent](ev)
		if err != nil {
			t.Fatalf("DecodeAs: %v", err)
		}
		if payload.Count != 1 {
			t.Errorf("payload count = %d, want 1", payload.Count)
		}
	default:
		t.Fatal("no event published after Add")
	}
}
