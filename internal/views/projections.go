// Package views computes derived read models over the transaction
// collection. Everything here is a pure function of its inputs: nothing
// mutates the records, and recomputing on every render is always safe.
package views

import (
	"gagyebu/internal/core"
)

// DateGroup is one date bucket of the grouped list view.
type DateGroup struct {
	Date    string
	Records []core.Transaction
}

// GroupByDate partitions records by their exact date string. Group order is
// the first-seen order of each date key in the input, which matches the
// order the backend returned; records within a group keep input order.
func GroupByDate(records []core.Transaction) []DateGroup {
	idx := make(map[string]int, len(records))
	groups := make([]DateGroup, 0, len(records))
	for _, r := range records {
		i, ok := idx[r.Date]
		if !ok {
			i = len(groups)
			idx[r.Date] = i
			groups = append(groups, DateGroup{Date: r.Date})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// DailyTotal sums the amounts of records of the given kind. Records are
// canonical, so the kind check is a plain type match.
func DailyTotal(records []core.Transaction, kind core.TxType) int64 {
	var sum int64
	for _, r := range records {
		if r.Type == kind {
			sum += r.Amount
		}
	}
	return sum
}

// Totals holds the whole-collection income and expense sums.
type Totals struct {
	Income  int64
	Expense int64
}

// Sum computes income and expense totals over the whole collection.
func Sum(records []core.Transaction) Totals {
	return Totals{
		Income:  DailyTotal(records, core.TypeIncome),
		Expense: DailyTotal(records, core.TypeExpense),
	}
}

// DayStat is one calendar-day aggregate. Total is the signed net:
// income minus expense.
type DayStat struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
	Total   int64 `json:"total"`
}

// MonthlyStats buckets the records of the given year and month by day,
// keyed "YYYY-MM-DD". Records whose date fails to parse are skipped.
func MonthlyStats(records []core.Transaction, year, month int) map[string]DayStat {
	stats := make(map[string]DayStat)
	for _, r := range records {
		d, err := core.ParseLedgerDate(r.Date)
		if err != nil {
			continue
		}
		if d.Year() != year || int(d.Month()) != month {
			continue
		}
		key := core.DayKey(year, month, d.Day())
		s := stats[key]
		switch r.Type {
		case core.TypeIncome:
			s.Income += r.Amount
			s.Total += r.Amount
		case core.TypeExpense:
			s.Expense += r.Amount
			s.Total -= r.Amount
		}
		stats[key] = s
	}
	return stats
}

// VisibleRecords filters by the two independent visibility toggles. Both
// toggles off yields an empty result, not an error.
func VisibleRecords(records []core.Transaction, showIncome, showExpense bool) []core.Transaction {
	out := make([]core.Transaction, 0, len(records))
	for _, r := range records {
		if r.Type == core.TypeIncome && !showIncome {
			continue
		}
		if r.Type == core.TypeExpense && !showExpense {
			continue
		}
		out = append(out, r)
	}
	return out
}
