package insights

import (
	"time"

	"github.com/shopspring/decimal"
)

// Window selects the trailing period for revenue bucketing.
type Window string

const (
	WindowMonth     Window = "month"
	WindowSixMonths Window = "6months"
	WindowYear      Window = "year"
)

// DefaultYearCap bounds the "year" window at twelve months. The UI this
// replaces applied no upper bound to "year"; the cap is the documented
// intent and can be overridden through RevenueCapped.
const DefaultYearCap = 12

// Valid reports whether w names a known window.
func (w Window) Valid() bool {
	switch w {
	case WindowMonth, WindowSixMonths, WindowYear:
		return true
	}
	return false
}

func (w Window) maxMonthsAgo(yearCap int) int {
	switch w {
	case WindowMonth:
		return 1
	case WindowSixMonths:
		return 6
	default:
		return yearCap
	}
}

// BudgetedEvent pairs an event date with the client's allocated budget
// (zero when absent).
type BudgetedEvent struct {
	Date   time.Time
	Budget decimal.Decimal
}

// RevenuePoint is one (year, month) bucket in a revenue series.
type RevenuePoint struct {
	Period string          `json:"period"` // e.g. "Jan 2024"
	Total  decimal.Decimal `json:"total"`
}

// Revenue buckets budgets by the (year, month) of each event date. An event
// is included when it falls at most the window's bound in whole months
// before now; future events are always inside any window. Buckets are keyed
// by year and month so same-named months of different years never merge,
// and appear in first-seen order.
func Revenue(events []BudgetedEvent, w Window, now time.Time) []RevenuePoint {
	return RevenueCapped(events, w, now, DefaultYearCap)
}

// RevenueCapped is Revenue with an explicit bound, in months, for the
// "year" window.
func RevenueCapped(events []BudgetedEvent, w Window, now time.Time, yearCap int) []RevenuePoint {
	bound := w.maxMonthsAgo(yearCap)

	type bucket struct {
		year  int
		month time.Month
	}
	idx := make(map[bucket]int)
	var series []RevenuePoint
	for _, ev := range events {
		monthsAgo := (now.Year()-ev.Date.Year())*12 + int(now.Month()) - int(ev.Date.Month())
		if monthsAgo > bound {
			continue
		}
		k := bucket{ev.Date.Year(), ev.Date.Month()}
		if i, ok := idx[k]; ok {
			series[i].Total = series[i].Total.Add(ev.Budget)
			continue
		}
		idx[k] = len(series)
		series = append(series, RevenuePoint{
			Period: ev.Date.Format("Jan 2006"),
			Total:  ev.Budget,
		})
	}
	return series
}
