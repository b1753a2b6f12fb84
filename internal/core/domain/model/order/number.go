package order

import (
	"fmt"
	"sync/atomic"
	"time"
)

// numberSeq disambiguates order numbers generated within the same millisecond.
// The store additionally enforces a unique index on the column.
var numberSeq atomic.Uint64

// NextOrderNumber generates a human-facing order code of the form
// ORD-<unixMillis>-<4-digit-sequence>. Two calls within the same millisecond
// still produce distinct codes because the sequence advances on every call.
func NextOrderNumber(now time.Time) string {
	seq := numberSeq.Add(1) % 10000
	return fmt.Sprintf("ORD-%d-%04d", now.UnixMilli(), seq)
}
