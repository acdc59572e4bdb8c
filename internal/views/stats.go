package views

import (
	"fmt"
	"time"

	"gagyebu/internal/cache"
	"gagyebu/internal/core"
)

// StatsView memoizes monthly aggregates between recomputations. The store
// bumps its version on every collection change, so a (version, month) key
// is valid for as long as the collection it was computed from.
type StatsView struct {
	months *cache.LRU[map[string]DayStat]
}

// NewStatsView creates a stats view keeping up to maxMonths month buckets
// for at most ttl each.
func NewStatsView(maxMonths int, ttl time.Duration) *StatsView {
	return &StatsView{months: cache.NewLRU[map[string]DayStat](maxMonths, ttl)}
}

// Month returns the daily aggregates for the given month of the collection
// identified by version, computing and caching them on first use.
func (v *StatsView) Month(version uint64, records []core.Transaction, year, month int) map[string]DayStat {
	key := fmt.Sprintf("%d:%04d-%02d", version, year, month)
	if stats, ok := v.months.Get(key); ok {
		return stats
	}
	stats := MonthlyStats(records, year, month)
	v.months.Set(key, stats)
	return stats
}
