package geospatial

import (
	"github.com/samirrijal/olistboard/internal/core/domain"
)

// Project maps p onto a width×height pixel frame that exactly covers bbox.
// Longitude grows to the right and latitude grows upwards, so row 0 is the
// northern edge. Points outside bbox are neither clamped nor rejected; they
// land outside the frame.
func Project(p domain.GeoPoint, bbox domain.BoundingBox, width, height int) domain.PixelPoint {
	w, h := float64(width), float64(height)
	x := (p.Lon - bbox.LonMin) / (bbox.LonMax - bbox.LonMin) * w
	y := h - (p.Lat-bbox.LatMin)/(bbox.LatMax-bbox.LatMin)*h
	return domain.PixelPoint{X: x, Y: y}
}

// ProjectAll projects every point, preserving order.
func ProjectAll(points []domain.GeoPoint, bbox domain.BoundingBox, width, height int) []domain.PixelPoint {
	out := make([]domain.PixelPoint, len(points))
	for i, p := range points {
		out[i] = Project(p, bbox, width, height)
	}
	return out
}
