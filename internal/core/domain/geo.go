package domain

// GeoPoint represents a geographic coordinate (WGS 84, degrees).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// BoundingBox is the geographic extent assumed to map exactly onto the
// pixel frame of a background image.
type BoundingBox struct {
	LatMin float64 `json:"lat_min" mapstructure:"lat_min"`
	LatMax float64 `json:"lat_max" mapstructure:"lat_max"`
	LonMin float64 `json:"lon_min" mapstructure:"lon_min"`
	LonMax float64 `json:"lon_max" mapstructure:"lon_max"`
}

// BrazilBounds is the extent of the bundled background map.
var BrazilBounds = BoundingBox{
	LatMin: -34,
	LatMax: 6,
	LonMin: -74,
	LonMax: -32,
}

// PixelPoint is a projected position in image space. Row 0 is the top edge.
type PixelPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
