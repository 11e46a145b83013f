// Package analytics derives habit streaks, completion rollups, and trading
// performance statistics from the Record Store. Every query is a stateless
// read-reduce over the store's contents at call time: the range is fetched
// once and reduced in memory, nothing is cached across calls, and results
// depend only on the stored records plus the caller-supplied reference
// dates.
package analytics

import (
	"math"

	"disciplina/internal/store"
)

// maxStreakDays bounds the backward streak walk. Realistic habit histories
// run months, not centuries; the cap only guards pathological data.
const maxStreakDays = 365

type Aggregator struct {
	store store.Store
}

func New(s store.Store) *Aggregator {
	return &Aggregator{store: s}
}

// roundPct returns round(n/d*100), or 0 when the denominator is empty.
func roundPct(n, d int) int {
	if d == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(d) * 100))
}
