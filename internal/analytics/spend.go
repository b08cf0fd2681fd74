package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samirrijal/olistboard/internal/core/domain"
)

// ConfidenceLevel is the two-sided level of the per-state intervals.
const ConfidenceLevel = 0.95

// spendRow is one row of orders ⟗ payments ⟗ customers that carries a
// customer. hasValue is false when the customer has no payment among the
// given orders.
type spendRow struct {
	uniqueID string
	state    string
	value    float64
	hasValue bool
}

// joinSpend full-outer-joins orders, payments and customers and keeps the
// rows that reached a customer. Every customer appears at least once: a
// customer without orders (or an order without payments) yields a row
// without a value. Payments of other orders never reach a customer and are
// dropped, as are orders whose customer is unknown.
func joinSpend(ds *domain.Dataset, orders []domain.Order) []spendRow {
	custByOrder := make(map[string]string, len(orders))
	for _, o := range orders {
		custByOrder[o.OrderID] = o.CustomerID
	}

	type cell struct {
		value    float64
		hasValue bool
	}
	byCustomer := make(map[string][]cell)
	paid := make(map[string]bool, len(orders))
	for _, p := range ds.Payments {
		cid, ok := custByOrder[p.OrderID]
		if !ok {
			continue
		}
		paid[p.OrderID] = true
		byCustomer[cid] = append(byCustomer[cid], cell{value: p.Value, hasValue: true})
	}
	for _, o := range orders {
		if !paid[o.OrderID] {
			byCustomer[o.CustomerID] = append(byCustomer[o.CustomerID], cell{})
		}
	}

	rows := make([]spendRow, 0, len(ds.Customers))
	for _, c := range ds.Customers {
		cells := byCustomer[c.CustomerID]
		if len(cells) == 0 {
			cells = []cell{{}}
		}
		for _, x := range cells {
			rows = append(rows, spendRow{uniqueID: c.UniqueID, state: c.State, value: x.value, hasValue: x.hasValue})
		}
	}
	return rows
}

// RegionSpends groups payment values of the given orders by customer state
// and attaches a Student's t interval around each mean. The mean and std
// cover the payments only, while n counts every customer row of the state,
// paying or not. States with fewer than two payments get no interval and
// states without any payment are left out. The result is sorted by mean
// ascending.
func RegionSpends(ds *domain.Dataset, orders []domain.Order) []domain.RegionSpend {
	values := make(map[string][]float64)
	counts := make(map[string]int)
	for _, r := range joinSpend(ds, orders) {
		if r.state == "" {
			continue
		}
		counts[r.state]++
		if r.hasValue {
			values[r.state] = append(values[r.state], r.value)
		}
	}

	out := make([]domain.RegionSpend, 0, len(values))
	for state, vs := range values {
		out = append(out, summarize(state, vs, counts[state]))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mean != out[j].Mean {
			return out[i].Mean < out[j].Mean
		}
		return out[i].State < out[j].State
	})
	return out
}

func summarize(state string, values []float64, n int) domain.RegionSpend {
	rs := domain.RegionSpend{State: state, Count: n}
	if len(values) < 2 {
		rs.Mean = stat.Mean(values, nil)
		return rs
	}
	rs.Mean, rs.StdDev = stat.MeanStdDev(values, nil)
	lo, hi := TInterval(rs.Mean, rs.StdDev, n, ConfidenceLevel)
	rs.CILow, rs.CIHigh = &lo, &hi
	return rs
}

// TInterval returns mean ± t(level, n−1)·std/√n. Callers must ensure n ≥ 2.
func TInterval(mean, std float64, n int, level float64) (lo, hi float64) {
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	q := t.Quantile(1 - (1-level)/2)
	half := q * std / math.Sqrt(float64(n))
	return mean - half, mean + half
}

// TopSpenders totals payment values per unique customer over the given
// orders, largest first. Customers without a payment are listed with a
// zero total. limit ≤ 0 returns every customer.
func TopSpenders(ds *domain.Dataset, orders []domain.Order, limit int) []domain.CustomerSpend {
	idx := make(map[string]int)
	var out []domain.CustomerSpend
	for _, r := range joinSpend(ds, orders) {
		i, ok := idx[r.uniqueID]
		if !ok {
			i = len(out)
			idx[r.uniqueID] = i
			out = append(out, domain.CustomerSpend{CustomerUniqueID: r.uniqueID, State: r.state})
		}
		out[i].Total += r.value
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].CustomerUniqueID < out[j].CustomerUniqueID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
