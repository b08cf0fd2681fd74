package csvsource_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/samirrijal/olistboard/internal/adapters/csvsource"
	"github.com/samirrijal/olistboard/internal/core/domain"
)

var sample = map[string]string{
	domain.TableOrderItems: `order_id,order_item_id,product_id,seller_id,shipping_limit_date,price,freight_value
o1,1,p1,s1,2018-01-15 10:00:00,58.90,13.29
o1,2,p2,s1,2018-01-15 10:00:00,10.00,
`,
	domain.TableProducts: `product_id,product_category_name,product_name_lenght,product_description_lenght,product_photos_qty,product_weight_g,product_length_cm,product_height_cm,product_width_cm
p1,perfumaria,40,287,1,225,16,10,14
p2,,,,,,,,
`,
	domain.TableOrders: `order_id,customer_id,order_status,order_purchase_timestamp,order_approved_at,order_delivered_carrier_date,order_delivered_customer_date,order_estimated_delivery_date
o1,c1,delivered,2018-01-10 09:00:00,2018-01-10 10:30:00,2018-01-12 08:00:00,2018-01-20 17:00:00,2018-02-01 00:00:00
o2,c2,canceled,2018-01-11 09:00:00,,,,2018-02-02 00:00:00
`,
	domain.TablePayments: `order_id,payment_sequential,payment_type,payment_installments,payment_value
o1,1,credit_card,8,99.33
`,
	domain.TableCustomers: `customer_id,customer_unique_id,customer_zip_code_prefix,customer_city,customer_state
c1,u1,01409,sao paulo,SP
c2,u2,22790,rio de janeiro,RJ
`,
	domain.TableGeolocation: `geolocation_zip_code_prefix,geolocation_lat,geolocation_lng,geolocation_city,geolocation_state
01037,-23.545621,-46.639292,sao paulo,SP
`,
}

func writeDataset(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for table, body := range files {
		if err := os.WriteFile(filepath.Join(dir, csvsource.FileName(table)), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", table, err)
		}
	}
	return dir
}

func TestLoader_Load(t *testing.T) {
	dir := writeDataset(t, sample)

	ds, err := csvsource.NewLoader(dir).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	counts := ds.RowCounts()
	want := map[string]int{
		domain.TableOrderItems: 2, domain.TableProducts: 2, domain.TableOrders: 2,
		domain.TablePayments: 1, domain.TableCustomers: 2, domain.TableGeolocation: 1,
	}
	for table, n := range want {
		if counts[table] != n {
			t.Errorf("%s: expected %d rows, got %d", table, n, counts[table])
		}
	}

	if ds.Items[0].Price != 58.90 || ds.Items[1].FreightValue != 0 {
		t.Errorf("unexpected item values: %+v", ds.Items)
	}
	if ds.Customers[0].ZipCodePrefix != 1409 {
		t.Errorf("expected zip prefix 1409 (leading zero dropped), got %d", ds.Customers[0].ZipCodePrefix)
	}
	wantApproved := time.Date(2018, 1, 10, 10, 30, 0, 0, time.UTC)
	if !ds.Orders[0].ApprovedAt.Equal(wantApproved) {
		t.Errorf("expected approved_at %s, got %s", wantApproved, ds.Orders[0].ApprovedAt)
	}
	if ds.Orders[1].Approved() {
		t.Error("empty approval timestamp must be treated as missing")
	}
	if ds.Geolocations[0].Lat != -23.545621 {
		t.Errorf("unexpected latitude %v", ds.Geolocations[0].Lat)
	}
	if ds.Products[1].CategoryName != "" || ds.Products[0].WeightGrams != 225 {
		t.Errorf("unexpected products: %+v", ds.Products)
	}
}

func TestLoader_MissingFile(t *testing.T) {
	files := map[string]string{}
	for k, v := range sample {
		if k != domain.TableGeolocation {
			files[k] = v
		}
	}
	_, err := csvsource.NewLoader(writeDataset(t, files)).Load(context.Background())
	if err == nil || !strings.Contains(err.Error(), "load geolocation") {
		t.Fatalf("expected geolocation load error, got %v", err)
	}
}

func TestLoader_MissingColumn(t *testing.T) {
	files := map[string]string{}
	for k, v := range sample {
		files[k] = v
	}
	files[domain.TablePayments] = "order_id,payment_type\no1,boleto\n"

	_, err := csvsource.NewLoader(writeDataset(t, files)).Load(context.Background())
	if err == nil || !strings.Contains(err.Error(), "missing columns: payment_sequential") {
		t.Fatalf("expected missing column error, got %v", err)
	}
}

func TestLoader_MalformedNumber(t *testing.T) {
	files := map[string]string{}
	for k, v := range sample {
		files[k] = v
	}
	files[domain.TableOrderItems] = "order_id,order_item_id,product_id,seller_id,shipping_limit_date,price,freight_value\no1,1,p1,s1,,abc,1\n"

	_, err := csvsource.NewLoader(writeDataset(t, files)).Load(context.Background())
	if err == nil || !strings.Contains(err.Error(), "order_items_dataset.csv:2: column price") {
		t.Fatalf("expected positioned parse error, got %v", err)
	}
}

func TestLoader_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := csvsource.NewLoader(writeDataset(t, sample)).Load(ctx); err == nil {
		t.Fatal("expected context error")
	}
}

func TestLoader_ErrorLineCountsQuotedNewlines(t *testing.T) {
	files := map[string]string{}
	for k, v := range sample {
		files[k] = v
	}
	// p1's category spans two physical lines, so the bad row sits on line 4.
	files[domain.TableProducts] = "product_id,product_category_name,product_weight_g\n" +
		"p1,\"cama mesa\nbanho\",225\n" +
		"p2,perfumaria,heavy\n"

	_, err := csvsource.NewLoader(writeDataset(t, files)).Load(context.Background())
	if err == nil || !strings.Contains(err.Error(), "products_dataset.csv:4: column product_weight_g") {
		t.Fatalf("expected error on physical line 4, got %v", err)
	}
}
