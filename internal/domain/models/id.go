package models

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	idMu   sync.Mutex
	idMono io.Reader
)

func init() {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	// Monotonic entropy keeps ids produced within the same millisecond ordered.
	idMono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// NewSnapshotID returns a time-sortable ULID for a snapshot produced at t.
func NewSnapshotID(t time.Time) string {
	idMu.Lock()
	defer idMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), idMono).String()
}

// EmptySnapshot returns a snapshot with no records, produced now.
func EmptySnapshot(trigger Trigger) *Snapshot {
	now := time.Now().UTC()
	return &Snapshot{
		ID:         NewSnapshotID(now),
		ProducedAt: now,
		Trigger:    trigger,
		Files:      []FileSummary{},
		Records:    []TradeRecord{},
	}
}
