package analytics_test

import (
	"time"

	"github.com/samirrijal/olistboard/internal/core/domain"
)

func ts(s string) time.Time {
	t, err := time.Parse(domain.TimestampLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func fixture() *domain.Dataset {
	return &domain.Dataset{
		Orders: []domain.Order{
			{OrderID: "o1", CustomerID: "c1", ApprovedAt: ts("2018-01-10 10:00:00")},
			{OrderID: "o2", CustomerID: "c2", ApprovedAt: ts("2018-02-01 00:00:00")},
			{OrderID: "o3", CustomerID: "c3", ApprovedAt: ts("2018-03-15 12:00:00")},
			{OrderID: "o4", CustomerID: "c1"},
			{OrderID: "o5", CustomerID: "c4", ApprovedAt: ts("2018-05-31 08:00:00")},
		},
		Items: []domain.OrderItem{
			{OrderID: "o1", ProductID: "p1", Price: 10},
			{OrderID: "o1", ProductID: "p2", Price: 5},
			{OrderID: "o2", ProductID: "p1", Price: 10},
			{OrderID: "o3", ProductID: "p3", Price: 100},
			{OrderID: "o4", ProductID: "p3", Price: 1000},
			{OrderID: "o5", ProductID: "p9", Price: 50},
		},
		Products: []domain.Product{
			{ProductID: "p1", CategoryName: "toys"},
			{ProductID: "p2", CategoryName: "books"},
			{ProductID: "p3", CategoryName: "watches"},
		},
		Payments: []domain.Payment{
			{OrderID: "o3", Value: 100},
			{OrderID: "o3", Value: 50},
			{OrderID: "o5", Value: 30},
			{OrderID: "o1", Value: 999},
			{OrderID: "o2", Value: 7},
			{OrderID: "o404", Value: 1},
		},
		Customers: []domain.Customer{
			{CustomerID: "c1", UniqueID: "u1", ZipCodePrefix: 1000, State: "SP"},
			{CustomerID: "c2", UniqueID: "u2", ZipCodePrefix: 2000, State: "RJ"},
			{CustomerID: "c3", UniqueID: "u3", ZipCodePrefix: 9999, State: "SP"},
			{CustomerID: "c4", UniqueID: "u4", ZipCodePrefix: 2000, State: "RJ"},
			{CustomerID: "c5", UniqueID: "u1", ZipCodePrefix: 2000, State: "SP"},
		},
		Geolocations: []domain.Geolocation{
			{ZipCodePrefix: 1000, City: "sao paulo", State: "SP", Lat: -23.5, Lng: -46.6},
			{ZipCodePrefix: 1000, City: "sao paulo", State: "SP", Lat: -23.7, Lng: -46.8},
			{ZipCodePrefix: 2000, City: "rio de janeiro", State: "RJ", Lat: -22.9, Lng: -43.2},
			{ZipCodePrefix: 2000, City: "niteroi", State: "RJ", Lat: -22.88, Lng: -43.1},
			{ZipCodePrefix: 2000, City: "barueri", State: "SP", Lat: -23.5, Lng: -46.8},
		},
	}
}
