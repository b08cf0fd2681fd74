package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/samirrijal/olistboard/internal/core/domain"
	"github.com/samirrijal/olistboard/internal/core/usecases"
)

func TestAnalyticsService_ResolveRange_Defaults(t *testing.T) {
	svc := usecases.NewAnalyticsService(testDataset())

	r, err := svc.ResolveRange("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := r.Key(); got != "2018-01-10_2018-03-20" {
		t.Errorf("expected bounds 2018-01-10_2018-03-20, got %s", got)
	}
}

func TestAnalyticsService_ResolveRange_Partial(t *testing.T) {
	svc := usecases.NewAnalyticsService(testDataset())

	r, err := svc.ResolveRange("2018-02-01", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := r.Key(); got != "2018-02-01_2018-03-20" {
		t.Errorf("expected 2018-02-01_2018-03-20, got %s", got)
	}
}

func TestAnalyticsService_ResolveRange_OutOfBoundsAccepted(t *testing.T) {
	svc := usecases.NewAnalyticsService(testDataset())

	r, err := svc.ResolveRange("2020-01-01", "2019-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len(svc.Orders(context.Background(), r)); n != 0 {
		t.Errorf("expected no orders for inverted range, got %d", n)
	}
}

func TestAnalyticsService_ResolveRange_Invalid(t *testing.T) {
	svc := usecases.NewAnalyticsService(testDataset())

	_, err := svc.ResolveRange("10/01/2018", "")
	if !errors.Is(err, usecases.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestAnalyticsService_Bounds_NoApprovedOrders(t *testing.T) {
	svc := usecases.NewAnalyticsService(&domain.Dataset{
		Orders: []domain.Order{{OrderID: "o1"}},
	})

	_, err := svc.Bounds()
	if !errors.Is(err, domain.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestAnalyticsService_TopProduct(t *testing.T) {
	svc := usecases.NewAnalyticsService(testDataset())
	r, _ := svc.ResolveRange("", "")

	top, err := svc.TopProduct(context.Background(), r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if top.ProductID != "p2" {
		t.Errorf("expected p2, got %s", top.ProductID)
	}
	if top.SellProbability != 0.5 {
		t.Errorf("expected sell probability 0.5, got %v", top.SellProbability)
	}
}

func TestAnalyticsService_TopProduct_EmptyRange(t *testing.T) {
	svc := usecases.NewAnalyticsService(testDataset())
	r, _ := svc.ResolveRange("2019-01-01", "2019-12-31")

	_, err := svc.TopProduct(context.Background(), r)
	if !errors.Is(err, domain.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestAnalyticsService_RegionSpend(t *testing.T) {
	svc := usecases.NewAnalyticsService(testDataset())

	spends := svc.RegionSpend(context.Background())
	if len(spends) != 2 {
		t.Fatalf("expected 2 states, got %d", len(spends))
	}
	if spends[0].State != "SP" || spends[1].State != "RJ" {
		t.Errorf("expected SP then RJ, got %s then %s", spends[0].State, spends[1].State)
	}
	if spends[0].CILow != nil {
		t.Error("expected no interval for a single payment")
	}
}

func TestAnalyticsService_TopSpenders_Limit(t *testing.T) {
	svc := usecases.NewAnalyticsService(testDataset())

	top := svc.TopSpenders(context.Background(), 1)
	if len(top) != 1 {
		t.Fatalf("expected 1 spender, got %d", len(top))
	}
	if top[0].CustomerUniqueID != "u2" {
		t.Errorf("expected u2, got %s", top[0].CustomerUniqueID)
	}
}

func TestAnalyticsService_Summary(t *testing.T) {
	svc := usecases.NewAnalyticsService(testDataset())
	r, _ := svc.ResolveRange("", "")

	snap := svc.Summary(context.Background(), r)
	if snap.Orders != 2 {
		t.Errorf("expected 2 orders, got %d", snap.Orders)
	}
	if snap.Located != 2 {
		t.Errorf("expected 2 located customers, got %d", snap.Located)
	}
	if snap.TopProduct == nil || snap.TopProduct.ProductID != "p2" {
		t.Errorf("expected top product p2, got %+v", snap.TopProduct)
	}
	if len(snap.StateDensity) != 2 {
		t.Errorf("expected 2 states, got %d", len(snap.StateDensity))
	}
	if snap.ID != "" {
		t.Errorf("expected summary without ID, got %s", snap.ID)
	}
}
