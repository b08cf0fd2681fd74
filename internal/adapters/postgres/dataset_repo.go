package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/olistboard/internal/core/domain"
)

// DatasetRepo implements ports.DatasetStore with pgx.
type DatasetRepo struct {
	db *DB
}

// NewDatasetRepo creates a new DatasetRepo.
func NewDatasetRepo(db *DB) *DatasetRepo {
	return &DatasetRepo{db: db}
}

var columns = map[string][]string{
	domain.TableOrderItems: {"order_id", "order_item_id", "product_id", "seller_id", "shipping_limit_date", "price", "freight_value"},
	domain.TableProducts: {"product_id", "product_category_name", "product_photos_qty", "product_weight_g",
		"product_length_cm", "product_height_cm", "product_width_cm"},
	domain.TableOrders: {"order_id", "customer_id", "order_status", "order_purchase_timestamp", "order_approved_at",
		"order_delivered_carrier_date", "order_delivered_customer_date", "order_estimated_delivery_date"},
	domain.TablePayments:    {"order_id", "payment_sequential", "payment_type", "payment_installments", "payment_value"},
	domain.TableCustomers:   {"customer_id", "customer_unique_id", "customer_zip_code_prefix", "customer_city", "customer_state"},
	domain.TableGeolocation: {"geolocation_zip_code_prefix", "geolocation_lat", "geolocation_lng", "geolocation_city", "geolocation_state"},
}

// rowNoColumn holds each row's position in the imported slice; Load orders
// by it.
const rowNoColumn = "row_no"

// numbered appends the slice index as row_no to every copied row.
func numbered(n int, row func(i int) []any) pgx.CopyFromSource {
	return pgx.CopyFromSlice(n, func(i int) ([]any, error) {
		return append(row(i), int64(i)), nil
	})
}

// nullTime maps the zero time onto SQL NULL.
func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func fromNull(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.UTC()
}

// Import truncates the six tables and bulk-loads ds with COPY inside a
// single transaction.
func (r *DatasetRepo) Import(ctx context.Context, ds *domain.Dataset) (map[string]int64, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `TRUNCATE order_items, products, orders, order_payments, customers, geolocation`); err != nil {
		return nil, fmt.Errorf("truncate: %w", err)
	}

	sources := map[string]pgx.CopyFromSource{
		domain.TableOrderItems: numbered(len(ds.Items), func(i int) []any {
			it := ds.Items[i]
			return []any{it.OrderID, it.OrderItemID, it.ProductID, it.SellerID, nullTime(it.ShippingLimit), it.Price, it.FreightValue}
		}),
		domain.TableProducts: numbered(len(ds.Products), func(i int) []any {
			p := ds.Products[i]
			return []any{p.ProductID, p.CategoryName, p.PhotosQty, p.WeightGrams, p.LengthCm, p.HeightCm, p.WidthCm}
		}),
		domain.TableOrders: numbered(len(ds.Orders), func(i int) []any {
			o := ds.Orders[i]
			return []any{o.OrderID, o.CustomerID, o.Status, nullTime(o.PurchasedAt), nullTime(o.ApprovedAt),
				nullTime(o.DeliveredCarrierAt), nullTime(o.DeliveredCustomerAt), nullTime(o.EstimatedDeliveryAt)}
		}),
		domain.TablePayments: numbered(len(ds.Payments), func(i int) []any {
			p := ds.Payments[i]
			return []any{p.OrderID, p.Sequential, p.Type, p.Installments, p.Value}
		}),
		domain.TableCustomers: numbered(len(ds.Customers), func(i int) []any {
			c := ds.Customers[i]
			return []any{c.CustomerID, c.UniqueID, c.ZipCodePrefix, c.City, c.State}
		}),
		domain.TableGeolocation: numbered(len(ds.Geolocations), func(i int) []any {
			g := ds.Geolocations[i]
			return []any{g.ZipCodePrefix, g.Lat, g.Lng, g.City, g.State}
		}),
	}

	written := make(map[string]int64, len(domain.Tables))
	for _, table := range domain.Tables {
		cols := append(append([]string(nil), columns[table]...), rowNoColumn)
		n, err := tx.CopyFrom(ctx, pgx.Identifier{table}, cols, sources[table])
		if err != nil {
			return nil, fmt.Errorf("copy %s: %w", table, err)
		}
		written[table] = n
		slog.Debug("table imported", "table", table, "rows", n)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return written, nil
}

// Load reads every table into memory.
func (r *DatasetRepo) Load(ctx context.Context) (*domain.Dataset, error) {
	ds := &domain.Dataset{}

	if err := r.query(ctx, domain.TableOrderItems, func(rows pgx.Rows) error {
		var it domain.OrderItem
		var limit *time.Time
		if err := rows.Scan(&it.OrderID, &it.OrderItemID, &it.ProductID, &it.SellerID, &limit, &it.Price, &it.FreightValue); err != nil {
			return err
		}
		it.ShippingLimit = fromNull(limit)
		ds.Items = append(ds.Items, it)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := r.query(ctx, domain.TableProducts, func(rows pgx.Rows) error {
		var p domain.Product
		if err := rows.Scan(&p.ProductID, &p.CategoryName, &p.PhotosQty, &p.WeightGrams, &p.LengthCm, &p.HeightCm, &p.WidthCm); err != nil {
			return err
		}
		ds.Products = append(ds.Products, p)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := r.query(ctx, domain.TableOrders, func(rows pgx.Rows) error {
		var o domain.Order
		var purchased, approved, carrier, customer, estimated *time.Time
		if err := rows.Scan(&o.OrderID, &o.CustomerID, &o.Status, &purchased, &approved, &carrier, &customer, &estimated); err != nil {
			return err
		}
		o.PurchasedAt = fromNull(purchased)
		o.ApprovedAt = fromNull(approved)
		o.DeliveredCarrierAt = fromNull(carrier)
		o.DeliveredCustomerAt = fromNull(customer)
		o.EstimatedDeliveryAt = fromNull(estimated)
		ds.Orders = append(ds.Orders, o)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := r.query(ctx, domain.TablePayments, func(rows pgx.Rows) error {
		var p domain.Payment
		if err := rows.Scan(&p.OrderID, &p.Sequential, &p.Type, &p.Installments, &p.Value); err != nil {
			return err
		}
		ds.Payments = append(ds.Payments, p)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := r.query(ctx, domain.TableCustomers, func(rows pgx.Rows) error {
		var c domain.Customer
		if err := rows.Scan(&c.CustomerID, &c.UniqueID, &c.ZipCodePrefix, &c.City, &c.State); err != nil {
			return err
		}
		ds.Customers = append(ds.Customers, c)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := r.query(ctx, domain.TableGeolocation, func(rows pgx.Rows) error {
		var g domain.Geolocation
		if err := rows.Scan(&g.ZipCodePrefix, &g.Lat, &g.Lng, &g.City, &g.State); err != nil {
			return err
		}
		ds.Geolocations = append(ds.Geolocations, g)
		return nil
	}); err != nil {
		return nil, err
	}

	slog.Info("dataset loaded", "source", "postgres", "rows", ds.RowCounts())
	return ds, nil
}

// query selects the known columns of table in import order and hands each
// row to scan.
func (r *DatasetRepo) query(ctx context.Context, table string, scan func(pgx.Rows) error) error {
	sql := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		joinColumns(columns[table]), pgx.Identifier{table}.Sanitize(), pgx.Identifier{rowNoColumn}.Sanitize())
	rows, err := r.db.Pool.Query(ctx, sql)
	if err != nil {
		return fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("scan %s: %w", table, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read %s: %w", table, err)
	}
	return nil
}

func joinColumns(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = pgx.Identifier{c}.Sanitize()
	}
	return strings.Join(quoted, ", ")
}
