// Package analytics holds the pure computations behind the dashboard:
// date filtering, joins, group-bys, hexagonal binning and t-intervals.
// Nothing here performs I/O.
package analytics

import (
	"fmt"
	"time"

	"github.com/samirrijal/olistboard/internal/core/domain"
)

// DateBounds returns the calendar days of the earliest and latest approval
// timestamps. Orders without an approval timestamp are ignored.
func DateBounds(orders []domain.Order) (domain.DateRange, error) {
	var lo, hi time.Time
	for _, o := range orders {
		if !o.Approved() {
			continue
		}
		if lo.IsZero() || o.ApprovedAt.Before(lo) {
			lo = o.ApprovedAt
		}
		if hi.IsZero() || o.ApprovedAt.After(hi) {
			hi = o.ApprovedAt
		}
	}
	if lo.IsZero() {
		return domain.DateRange{}, domain.ErrNoData
	}
	return domain.DateRange{Start: Day(lo), End: Day(hi)}, nil
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDay parses a YYYY-MM-DD string as midnight UTC.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return t, nil
}

// FilterOrders keeps approved orders whose approval timestamp lies in
// [r.Start 00:00, r.End 00:00]. Both bounds are compared as midnight
// timestamps, so approvals later on the end day fall outside the range.
// An inverted range yields no orders.
func FilterOrders(orders []domain.Order, r domain.DateRange) []domain.Order {
	start, end := Day(r.Start), Day(r.End)
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if !o.Approved() {
			continue
		}
		if o.ApprovedAt.Before(start) || o.ApprovedAt.After(end) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// SubMonths steps t back n calendar months, clamping the day to the last
// day of the target month (May 31 minus three months is Feb 28/29).
func SubMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m-time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// RecentWindow returns the orders approved within n months of the latest
// approval in the whole table.
func RecentWindow(orders []domain.Order, months int) []domain.Order {
	var latest time.Time
	for _, o := range orders {
		if o.Approved() && o.ApprovedAt.After(latest) {
			latest = o.ApprovedAt
		}
	}
	if latest.IsZero() {
		return nil
	}
	threshold := SubMonths(latest, months)
	out := make([]domain.Order, 0, len(orders)/4)
	for _, o := range orders {
		if o.Approved() && !o.ApprovedAt.Before(threshold) {
			out = append(out, o)
		}
	}
	return out
}
