package domain

import (
	"time"
)

// DateRange is an inclusive pair of calendar days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Key renders the range as "YYYY-MM-DD_YYYY-MM-DD", used in cache keys.
func (r DateRange) Key() string {
	return r.Start.Format(DateLayout) + "_" + r.End.Format(DateLayout)
}

// DateLayout is the calendar-day format accepted on every surface.
const DateLayout = "2006-01-02"

// TimestampLayout is the timestamp format of the source tables.
const TimestampLayout = "2006-01-02 15:04:05"

// ProductRevenue aggregates sold items of one product inside a date range.
type ProductRevenue struct {
	ProductID       string  `json:"product_id"`
	CategoryName    string  `json:"product_category_name,omitempty"`
	TotalRevenue    float64 `json:"total_revenue"`
	OrderCount      int     `json:"order_count"`
	SellProbability float64 `json:"sell_probability"`
}

// RegionSpend summarises payment values of one customer state.
// CILow and CIHigh are nil when the sample is too small for an interval.
type RegionSpend struct {
	State  string   `json:"customer_state"`
	Mean   float64  `json:"mean"`
	StdDev float64  `json:"std"`
	Count  int      `json:"count"`
	CILow  *float64 `json:"ci_low"`
	CIHigh *float64 `json:"ci_high"`
}

// CustomerSpend is the total paid by one customer.
type CustomerSpend struct {
	CustomerUniqueID string  `json:"customer_unique_id"`
	State            string  `json:"customer_state,omitempty"`
	Total            float64 `json:"total_spent"`
}

// CustomerLocation is a de-duplicated customer resolved to coordinates
// through the zip-code prefix.
type CustomerLocation struct {
	CustomerUniqueID string   `json:"customer_unique_id"`
	ZipCodePrefix    int      `json:"zip_code_prefix"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	Location         GeoPoint `json:"location"`
}

// StateDensity counts located customers per state.
type StateDensity struct {
	State     string `json:"state"`
	Customers int    `json:"customers"`
}

// Snapshot bundles every analysis for one date range.
type Snapshot struct {
	ID           string          `json:"id"`
	Range        DateRange       `json:"range"`
	GeneratedAt  time.Time       `json:"generated_at"`
	Orders       int             `json:"orders"`
	TopProduct   *ProductRevenue `json:"top_product,omitempty"`
	RegionSpend  []RegionSpend   `json:"region_spend"`
	TopSpenders  []CustomerSpend `json:"top_spenders"`
	StateDensity []StateDensity  `json:"state_density"`
	Located      int             `json:"located_customers"`
}

// Chart names, used in URLs, cache keys and metrics.
const (
	ChartRevenueHexbin = "revenue-hexbin"
	ChartRegionSpend   = "region-spend"
	ChartCustomerMap   = "customer-map"
)

// Charts lists every chart name in page order.
var Charts = []string{ChartRevenueHexbin, ChartRegionSpend, ChartCustomerMap}
