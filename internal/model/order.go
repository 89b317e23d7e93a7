package model

// NA marks a field the upstream feed did not provide in a usable form.
const NA = "N/A"

// Order is the four-field extraction of one feed entry. Field order matters:
// JSON and CSV output follow it.
type Order struct {
	Date                string `json:"date"`
	Status              string `json:"order_status"`
	OrderNo             string `json:"order_no"`
	PurchaseOrderNumber string `json:"purchaseOrderNumber"`
}

// CSVHeader lists the export columns in record field order.
func CSVHeader() []string {
	return []string{"date", "order_status", "order_no", "purchaseOrderNumber"}
}

// CSVRow returns the order's values in header order.
func (o Order) CSVRow() []string {
	return []string{o.Date, o.Status, o.OrderNo, o.PurchaseOrderNumber}
}

// AllNA reports whether every field carries the N/A sentinel.
func (o Order) AllNA() bool {
	return o.Date == NA && o.Status == NA && o.OrderNo == NA && o.PurchaseOrderNumber == NA
}
