package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/olistboard/internal/analytics"
	"github.com/samirrijal/olistboard/internal/core/domain"
)

func TestTInterval(t *testing.T) {
	// t(0.975, 4) = 2.7764451
	lo, hi := analytics.TInterval(10, 2, 5, 0.95)
	assert.InDelta(t, 10-2.4833, lo, 1e-3)
	assert.InDelta(t, 10+2.4833, hi, 1e-3)
}

func TestRegionSpends(t *testing.T) {
	ds := fixture()
	got := analytics.RegionSpends(ds, analytics.RecentWindow(ds.Orders, 3))
	require.Len(t, got, 2)

	rj := got[0]
	assert.Equal(t, "RJ", rj.State)
	assert.Equal(t, 2, rj.Count, "c2 has no window order but still counts")
	assert.InDelta(t, 30, rj.Mean, 1e-9)
	assert.Nil(t, rj.CILow, "a single payment has no interval")
	assert.Nil(t, rj.CIHigh)

	sp := got[1]
	assert.Equal(t, "SP", sp.State)
	// c3 pays twice; c1 and c5 have no window payment.
	assert.Equal(t, 4, sp.Count)
	assert.InDelta(t, 75, sp.Mean, 1e-9)
	assert.InDelta(t, 35.3553, sp.StdDev, 1e-3)
	require.NotNil(t, sp.CILow)
	require.NotNil(t, sp.CIHigh)
	// t(0.975, 3) = 3.18245; half-width = 3.18245 * 35.3553 / sqrt(4) = 56.258
	assert.InDelta(t, 75-56.258, *sp.CILow, 1e-2)
	assert.InDelta(t, 75+56.258, *sp.CIHigh, 1e-2)
}

func TestRegionSpends_CustomerWithoutWindowOrderCounts(t *testing.T) {
	ds := &domain.Dataset{
		Orders: []domain.Order{
			{OrderID: "o1", CustomerID: "c1", ApprovedAt: ts("2018-06-01 10:00:00")},
			{OrderID: "o2", CustomerID: "c2", ApprovedAt: ts("2017-01-01 10:00:00")},
		},
		Payments: []domain.Payment{
			{OrderID: "o1", Value: 100},
			{OrderID: "o1", Value: 200},
			{OrderID: "o2", Value: 999},
		},
		Customers: []domain.Customer{
			{CustomerID: "c1", UniqueID: "u1", State: "SP"},
			{CustomerID: "c2", UniqueID: "u2", State: "SP"},
		},
	}
	window := analytics.RecentWindow(ds.Orders, 3)

	got := analytics.RegionSpends(ds, window)
	require.Len(t, got, 1)
	sp := got[0]
	assert.Equal(t, 3, sp.Count)
	assert.InDelta(t, 150, sp.Mean, 1e-9)
	assert.InDelta(t, 70.7107, sp.StdDev, 1e-3)
	require.NotNil(t, sp.CILow)
	// t(0.975, 2) = 4.30265; half-width = 4.30265 * 70.7107 / sqrt(3) = 175.655
	assert.InDelta(t, -25.655, *sp.CILow, 1e-2)
	assert.InDelta(t, 325.655, *sp.CIHigh, 1e-2)

	top := analytics.TopSpenders(ds, window, 0)
	require.Len(t, top, 2)
	assert.Equal(t, "u1", top[0].CustomerUniqueID)
	assert.InDelta(t, 300, top[0].Total, 1e-9)
	assert.Equal(t, "u2", top[1].CustomerUniqueID)
	assert.Zero(t, top[1].Total)
}

func TestRegionSpends_NoOrders(t *testing.T) {
	assert.Empty(t, analytics.RegionSpends(fixture(), nil))
}

func TestTopSpenders(t *testing.T) {
	ds := fixture()
	got := analytics.TopSpenders(ds, analytics.RecentWindow(ds.Orders, 3), 0)
	require.Len(t, got, 4)
	assert.Equal(t, "u3", got[0].CustomerUniqueID)
	assert.InDelta(t, 150, got[0].Total, 1e-9)
	assert.Equal(t, "u4", got[1].CustomerUniqueID)
	// Non-paying customers trail with zero, ties by id.
	assert.Equal(t, "u1", got[2].CustomerUniqueID)
	assert.Zero(t, got[2].Total)
	assert.Equal(t, "u2", got[3].CustomerUniqueID)

	limited := analytics.TopSpenders(ds, ds.Orders, 1)
	require.Len(t, limited, 1)
	assert.Equal(t, "u1", limited[0].CustomerUniqueID)
	assert.InDelta(t, 999, limited[0].Total, 1e-9)
}
