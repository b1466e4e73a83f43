package service

import (
	"strconv"
	"sync"
	"time"
)

// TimestampIDs generates ids from the creation time in epoch milliseconds,
// the same shape the site has always stored. Two ids requested within one
// millisecond are kept distinct by bumping the later one.
type TimestampIDs struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewTimestampIDs returns a generator reading the given clock; nil means
// time.Now.
func NewTimestampIDs(now func() time.Time) *TimestampIDs {
	if now == nil {
		now = time.Now
	}
	return &TimestampIDs{now: now}
}

// Next returns a new id, strictly greater than any id returned before.
func (g *TimestampIDs) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}
