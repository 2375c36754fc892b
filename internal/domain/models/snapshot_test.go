package models

import "testing"

func TestSnapshotTrades_ReturnsCopy(t *testing.T) {
	s := &Snapshot{Records: []TradeRecord{{ID: "trade-a.csv-0", Asset: "WINFUT"}}}
	out := s.Trades()
	out[0].Asset = "CHANGED"
	if s.Records[0].Asset != "WINFUT" {
		t.Fatalf("snapshot mutated through Trades(): %+v", s.Records[0])
	}
	if s.Len() != 1 {
		t.Fatalf("len=%d", s.Len())
	}
}

func TestSnapshotNil(t *testing.T) {
	var s *Snapshot
	if s.Trades() != nil || s.Len() != 0 {
		t.Fatalf("nil snapshot should be empty")
	}
}

func TestEmptySnapshot(t *testing.T) {
	a := EmptySnapshot(TriggerWatch)
	b := EmptySnapshot(TriggerWatch)
	if a.Len() != 0 || a.Records == nil || a.Trigger != TriggerWatch {
		t.Fatalf("unexpected empty snapshot: %+v", a)
	}
	if a.ID == "" || a.ID >= b.ID {
		t.Fatalf("ids must be non-empty and increasing: %q %q", a.ID, b.ID)
	}
}
