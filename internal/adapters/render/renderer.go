package render

import (
	"image"

	"github.com/samirrijal/olistboard/internal/core/domain"
)

// Renderer implements ports.ChartRenderer.
type Renderer struct {
	overlay *Overlay
}

// NewRenderer creates a Renderer drawing the customer map with overlay.
func NewRenderer(overlay *Overlay) *Renderer {
	return &Renderer{overlay: overlay}
}

func (r *Renderer) RevenueHexbin(revenues []domain.ProductRevenue) ([]byte, error) {
	return RevenueHexbin(revenues)
}

func (r *Renderer) RegionSpend(spends []domain.RegionSpend) ([]byte, error) {
	return RegionSpendChart(spends)
}

func (r *Renderer) CustomerMap(background image.Image, points []domain.GeoPoint) ([]byte, error) {
	return r.overlay.Render(background, points)
}
