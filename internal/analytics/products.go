package analytics

import (
	"sort"

	"github.com/samirrijal/olistboard/internal/core/domain"
)

// ProductRevenues joins items with the product catalogue and the given
// (already filtered) orders, then aggregates per product. The result is
// sorted by total revenue descending, ties broken by product id.
func ProductRevenues(ds *domain.Dataset, orders []domain.Order) []domain.ProductRevenue {
	if len(orders) == 0 {
		return nil
	}

	category := make(map[string]string, len(ds.Products))
	for _, p := range ds.Products {
		category[p.ProductID] = p.CategoryName
	}
	inRange := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		inRange[o.OrderID] = struct{}{}
	}

	byProduct := make(map[string]*domain.ProductRevenue)
	for _, it := range ds.Items {
		cat, known := category[it.ProductID]
		if !known {
			continue
		}
		if _, ok := inRange[it.OrderID]; !ok {
			continue
		}
		pr, ok := byProduct[it.ProductID]
		if !ok {
			pr = &domain.ProductRevenue{ProductID: it.ProductID, CategoryName: cat}
			byProduct[it.ProductID] = pr
		}
		pr.TotalRevenue += it.Price
		pr.OrderCount++
	}

	total := float64(len(orders))
	out := make([]domain.ProductRevenue, 0, len(byProduct))
	for _, pr := range byProduct {
		pr.SellProbability = float64(pr.OrderCount) / total
		out = append(out, *pr)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalRevenue != out[j].TotalRevenue {
			return out[i].TotalRevenue > out[j].TotalRevenue
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out
}

// TopProduct returns the highest-revenue product of a ProductRevenues result.
func TopProduct(revenues []domain.ProductRevenue) (*domain.ProductRevenue, error) {
	if len(revenues) == 0 {
		return nil, domain.ErrNoData
	}
	top := revenues[0]
	for _, r := range revenues[1:] {
		if r.TotalRevenue > top.TotalRevenue ||
			(r.TotalRevenue == top.TotalRevenue && r.ProductID < top.ProductID) {
			top = r
		}
	}
	return &top, nil
}
