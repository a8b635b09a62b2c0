package engine

import "sync/atomic"

// tracker sums bytes hashed across all concurrently running hashers of one
// job set. The counter only grows; the reported fraction is clamped so a
// file that grew mid-run cannot push progress past 1.0.
type tracker struct {
	total int64
	done  atomic.Int64
}

// add records n freshly hashed bytes and returns the aggregate fraction.
func (t *tracker) add(n int64) float64 {
	if t.total <= 0 {
		return 1.0
	}
	done := t.done.Add(n)
	fraction := float64(done) / float64(t.total)
	if fraction > 1.0 {
		fraction = 1.0
	}
	return fraction
}
