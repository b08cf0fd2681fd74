// Package csvsource loads the six dashboard tables from delimited files.
package csvsource

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/samirrijal/olistboard/internal/core/domain"
)

// FileName returns the conventional file name of a table inside the data
// directory, e.g. "orders" → "orders_dataset.csv".
func FileName(table string) string {
	return table + "_dataset.csv"
}

// Loader implements ports.DatasetSource over a directory of CSV files.
type Loader struct {
	dir string
}

// NewLoader creates a Loader reading from dir.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load reads every table. Any missing file, missing required column or
// malformed required value aborts the load.
func (l *Loader) Load(ctx context.Context) (*domain.Dataset, error) {
	ds := &domain.Dataset{}
	steps := []struct {
		table string
		read  func(name string, r io.Reader, ds *domain.Dataset) error
	}{
		{domain.TableOrderItems, readItems},
		{domain.TableProducts, readProducts},
		{domain.TableOrders, readOrders},
		{domain.TablePayments, readPayments},
		{domain.TableCustomers, readCustomers},
		{domain.TableGeolocation, readGeolocation},
	}
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(l.dir, FileName(s.table))
		if err := readFile(path, ds, s.read); err != nil {
			return nil, fmt.Errorf("load %s: %w", s.table, err)
		}
	}
	slog.Info("dataset loaded", "dir", l.dir, "rows", ds.RowCounts())
	return ds, nil
}

func readFile(path string, ds *domain.Dataset, read func(string, io.Reader, *domain.Dataset) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return read(filepath.Base(path), f, ds)
}

func readItems(name string, src io.Reader, ds *domain.Dataset) error {
	cols := []string{"order_id", "order_item_id", "product_id", "seller_id", "shipping_limit_date", "price", "freight_value"}
	return readTable(name, src, cols, func(r *row) error {
		var it domain.OrderItem
		var err error
		it.OrderID = r.str("order_id")
		it.ProductID = r.str("product_id")
		it.SellerID = r.str("seller_id")
		if it.OrderItemID, err = r.int("order_item_id"); err != nil {
			return err
		}
		if it.ShippingLimit, err = r.time("shipping_limit_date"); err != nil {
			return err
		}
		if it.Price, err = r.float("price"); err != nil {
			return err
		}
		if it.FreightValue, err = r.optFloat("freight_value"); err != nil {
			return err
		}
		ds.Items = append(ds.Items, it)
		return nil
	})
}

func readProducts(name string, src io.Reader, ds *domain.Dataset) error {
	return readTable(name, src, []string{"product_id", "product_category_name"}, func(r *row) error {
		p := domain.Product{
			ProductID:    r.str("product_id"),
			CategoryName: r.str("product_category_name"),
		}
		var err error
		if p.PhotosQty, err = r.optInt("product_photos_qty"); err != nil {
			return err
		}
		if p.WeightGrams, err = r.optFloat("product_weight_g"); err != nil {
			return err
		}
		if p.LengthCm, err = r.optFloat("product_length_cm"); err != nil {
			return err
		}
		if p.HeightCm, err = r.optFloat("product_height_cm"); err != nil {
			return err
		}
		if p.WidthCm, err = r.optFloat("product_width_cm"); err != nil {
			return err
		}
		ds.Products = append(ds.Products, p)
		return nil
	})
}

func readOrders(name string, src io.Reader, ds *domain.Dataset) error {
	cols := []string{
		"order_id", "customer_id", "order_status", "order_purchase_timestamp", "order_approved_at",
		"order_delivered_carrier_date", "order_delivered_customer_date", "order_estimated_delivery_date",
	}
	return readTable(name, src, cols, func(r *row) error {
		o := domain.Order{
			OrderID:    r.str("order_id"),
			CustomerID: r.str("customer_id"),
			Status:     r.str("order_status"),
		}
		var err error
		if o.PurchasedAt, err = r.time("order_purchase_timestamp"); err != nil {
			return err
		}
		if o.ApprovedAt, err = r.time("order_approved_at"); err != nil {
			return err
		}
		if o.DeliveredCarrierAt, err = r.time("order_delivered_carrier_date"); err != nil {
			return err
		}
		if o.DeliveredCustomerAt, err = r.time("order_delivered_customer_date"); err != nil {
			return err
		}
		if o.EstimatedDeliveryAt, err = r.time("order_estimated_delivery_date"); err != nil {
			return err
		}
		ds.Orders = append(ds.Orders, o)
		return nil
	})
}

func readPayments(name string, src io.Reader, ds *domain.Dataset) error {
	cols := []string{"order_id", "payment_sequential", "payment_type", "payment_installments", "payment_value"}
	return readTable(name, src, cols, func(r *row) error {
		p := domain.Payment{OrderID: r.str("order_id"), Type: r.str("payment_type")}
		var err error
		if p.Sequential, err = r.int("payment_sequential"); err != nil {
			return err
		}
		if p.Installments, err = r.int("payment_installments"); err != nil {
			return err
		}
		if p.Value, err = r.float("payment_value"); err != nil {
			return err
		}
		ds.Payments = append(ds.Payments, p)
		return nil
	})
}

func readCustomers(name string, src io.Reader, ds *domain.Dataset) error {
	cols := []string{"customer_id", "customer_unique_id", "customer_zip_code_prefix", "customer_city", "customer_state"}
	return readTable(name, src, cols, func(r *row) error {
		c := domain.Customer{
			CustomerID: r.str("customer_id"),
			UniqueID:   r.str("customer_unique_id"),
			City:       r.str("customer_city"),
			State:      r.str("customer_state"),
		}
		var err error
		if c.ZipCodePrefix, err = r.int("customer_zip_code_prefix"); err != nil {
			return err
		}
		ds.Customers = append(ds.Customers, c)
		return nil
	})
}

func readGeolocation(name string, src io.Reader, ds *domain.Dataset) error {
	cols := []string{"geolocation_zip_code_prefix", "geolocation_lat", "geolocation_lng", "geolocation_city", "geolocation_state"}
	return readTable(name, src, cols, func(r *row) error {
		g := domain.Geolocation{City: r.str("geolocation_city"), State: r.str("geolocation_state")}
		var err error
		if g.ZipCodePrefix, err = r.int("geolocation_zip_code_prefix"); err != nil {
			return err
		}
		if g.Lat, err = r.float("geolocation_lat"); err != nil {
			return err
		}
		if g.Lng, err = r.float("geolocation_lng"); err != nil {
			return err
		}
		ds.Geolocations = append(ds.Geolocations, g)
		return nil
	})
}
