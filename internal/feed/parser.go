// Package feed extracts order records from the commerce backend's Atom/OData
// XML responses. It performs no network or authentication work.
package feed

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"orderdash/internal/model"
)

// Field paths are resolved relative to one <entry> element. Paths match local
// names, so the upstream's d:/m:/atom: prefixes are irrelevant. The status
// code lives in a sub-entry inlined under the link titled "status".
var fieldPaths = map[string]string{
	"date":                "./content/properties/date",
	"order_no":            "./content/properties/code",
	"order_status":        "./link[@title='status']/inline/entry/content/properties/code",
	"purchaseOrderNumber": "./content/properties/purchaseOrderNumber",
}

// Parse converts a raw feed response into order records in document order.
// Every <entry> element in the document counts, including entries inlined
// under links; the trailing filter drops the odd-indexed all-N/A records
// those inline entries tend to produce.
func Parse(data []byte) ([]model.Order, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}

	var orders []model.Order
	for _, entry := range collectEntries(doc.Root()) {
		orders = append(orders, parseEntry(entry))
	}

	return filterDuplicates(orders), nil
}

// collectEntries walks the element tree depth-first and returns every element
// with local name "entry" in document order. Each order's hollow inline
// sub-entry must stay interleaved right after it: the trailing filter's index
// parity depends on that ordering.
func collectEntries(root *etree.Element) []*etree.Element {
	if root == nil {
		return nil
	}
	var entries []*etree.Element
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		if e.Tag == "entry" {
			entries = append(entries, e)
		}
		for _, child := range e.ChildElements() {
			walk(child)
		}
	}
	walk(root)
	return entries
}

func parseEntry(entry *etree.Element) model.Order {
	return model.Order{
		Date:                normalizeDate(fieldText(entry, "date")),
		Status:              orStatus(fieldText(entry, "order_status")),
		OrderNo:             orderNumber(fieldText(entry, "order_no")),
		PurchaseOrderNumber: orStatus(fieldText(entry, "purchaseOrderNumber")),
	}
}

func fieldText(entry *etree.Element, field string) string {
	if el := entry.FindElement(fieldPaths[field]); el != nil {
		return el.Text()
	}
	return ""
}

// normalizeDate handles the two formats the feed emits: a legacy
// "/Date(<millis>)/" epoch wrapper and ISO-8601 date-times. Anything else,
// including unparsable text, degrades to N/A.
func normalizeDate(text string) string {
	switch {
	case strings.HasPrefix(text, "/Date("):
		raw := strings.TrimPrefix(text, "/Date(")
		raw = strings.TrimSuffix(strings.TrimSuffix(raw, "/"), ")")
		millis, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return model.NA
		}
		return time.UnixMilli(millis).UTC().Format("2006-01-02")
	case strings.Contains(text, "T"):
		day := strings.SplitN(text, "T", 2)[0]
		if _, err := time.Parse("2006-01-02", day); err != nil {
			return model.NA
		}
		return day
	default:
		return model.NA
	}
}

// orderNumber accepts the code field only when it is non-empty all-digit text.
func orderNumber(text string) string {
	if text == "" {
		return model.NA
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return model.NA
		}
	}
	return text
}

func orStatus(text string) string {
	if text == "" {
		return model.NA
	}
	return text
}

// filterDuplicates retains the record at index i when i is even or the record
// carries at least one real field. The upstream feed interleaves hollow rows
// at odd positions; only those are dropped.
func filterDuplicates(orders []model.Order) []model.Order {
	filtered := make([]model.Order, 0, len(orders))
	for i, o := range orders {
		if i%2 == 0 || !o.AllNA() {
			filtered = append(filtered, o)
		}
	}
	return filtered
}
