package domain

import (
	"time"
)

// OrderItem is one line of an order (order_items table).
type OrderItem struct {
	OrderID       string    `json:"order_id"`
	OrderItemID   int       `json:"order_item_id"`
	ProductID     string    `json:"product_id"`
	SellerID      string    `json:"seller_id"`
	ShippingLimit time.Time `json:"shipping_limit_date"`
	Price         float64   `json:"price"`
	FreightValue  float64   `json:"freight_value"`
}

// Product is a catalogue entry (products table).
type Product struct {
	ProductID    string  `json:"product_id"`
	CategoryName string  `json:"product_category_name,omitempty"`
	PhotosQty    int     `json:"product_photos_qty"`
	WeightGrams  float64 `json:"product_weight_g"`
	LengthCm     float64 `json:"product_length_cm"`
	HeightCm     float64 `json:"product_height_cm"`
	WidthCm      float64 `json:"product_width_cm"`
}

// Order is a purchase header (orders table). Zero times mean the
// timestamp was missing in the source.
type Order struct {
	OrderID             string    `json:"order_id"`
	CustomerID          string    `json:"customer_id"`
	Status              string    `json:"order_status"`
	PurchasedAt         time.Time `json:"order_purchase_timestamp"`
	ApprovedAt          time.Time `json:"order_approved_at"`
	DeliveredCarrierAt  time.Time `json:"order_delivered_carrier_date"`
	DeliveredCustomerAt time.Time `json:"order_delivered_customer_date"`
	EstimatedDeliveryAt time.Time `json:"order_estimated_delivery_date"`
}

// Approved reports whether the order carries an approval timestamp.
func (o Order) Approved() bool {
	return !o.ApprovedAt.IsZero()
}

// Payment is one payment instalment of an order (order_payments table).
type Payment struct {
	OrderID      string  `json:"order_id"`
	Sequential   int     `json:"payment_sequential"`
	Type         string  `json:"payment_type"`
	Installments int     `json:"payment_installments"`
	Value        float64 `json:"payment_value"`
}

// Customer maps an order-level customer id onto a stable customer.
type Customer struct {
	CustomerID    string `json:"customer_id"`
	UniqueID      string `json:"customer_unique_id"`
	ZipCodePrefix int    `json:"customer_zip_code_prefix"`
	City          string `json:"customer_city"`
	State         string `json:"customer_state"`
}

// Geolocation is one raw zip-prefix coordinate sample.
type Geolocation struct {
	ZipCodePrefix int     `json:"geolocation_zip_code_prefix"`
	Lat           float64 `json:"geolocation_lat"`
	Lng           float64 `json:"geolocation_lng"`
	City          string  `json:"geolocation_city"`
	State         string  `json:"geolocation_state"`
}

// Dataset owns every table the dashboard works on. It is loaded once at
// startup and treated as read-only afterwards.
type Dataset struct {
	Items        []OrderItem
	Products     []Product
	Orders       []Order
	Payments     []Payment
	Customers    []Customer
	Geolocations []Geolocation
}

// RowCounts returns the number of rows per table, keyed by table name.
func (d *Dataset) RowCounts() map[string]int {
	return map[string]int{
		TableOrderItems:  len(d.Items),
		TableProducts:    len(d.Products),
		TableOrders:      len(d.Orders),
		TablePayments:    len(d.Payments),
		TableCustomers:   len(d.Customers),
		TableGeolocation: len(d.Geolocations),
	}
}

// Table names, shared by the CSV loader, the Postgres schema and metrics.
const (
	TableOrderItems  = "order_items"
	TableProducts    = "products"
	TableOrders      = "orders"
	TablePayments    = "order_payments"
	TableCustomers   = "customers"
	TableGeolocation = "geolocation"
)

// Tables lists the table names in load order.
var Tables = []string{
	TableOrderItems,
	TableProducts,
	TableOrders,
	TablePayments,
	TableCustomers,
	TableGeolocation,
}
