package telemetry

// Span attribute keys shared by the usecases.
const (
	AttrRangeStart = "dashboard.range.start"
	AttrRangeEnd   = "dashboard.range.end"
	AttrChart      = "dashboard.chart"
	AttrOrders     = "dashboard.orders"
	AttrCacheHit   = "dashboard.cache_hit"
)
