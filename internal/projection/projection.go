// Package projection derives dashboard and list views from an in-memory set
// of orders. Nothing here performs I/O; a record whose document cannot be
// decoded is reported in a RecordError and left out of the affected view.
package projection

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"gitlab.com/umaxship/console/internal/apperrors"
	"gitlab.com/umaxship/console/internal/order"
)

type RecordError struct {
	OrderID string `json:"order_id"`
	Err     error  `json:"-"`
	Message string `json:"error"`
}

func NewRecordError(orderID string, err error) RecordError {
	return RecordError{OrderID: orderID, Err: err, Message: err.Error()}
}

// Bucket partitions orders by exact status. Orders whose status is outside
// the vocabulary are in no bucket.
func Bucket(orders []order.Order) map[order.Status][]order.Order {
	buckets := make(map[order.Status][]order.Order, len(order.Statuses))
	for _, o := range orders {
		if !o.CurrentStatus.Known() {
			continue
		}
		buckets[o.CurrentStatus] = append(buckets[o.CurrentStatus], o)
	}
	return buckets
}

// CountByStatus always carries every status of the vocabulary, zero
// included.
func CountByStatus(orders []order.Order) map[order.Status]int {
	counts := make(map[order.Status]int, len(order.Statuses))
	for _, s := range order.Statuses {
		counts[s] = 0
	}
	for _, o := range orders {
		if o.CurrentStatus.Known() {
			counts[o.CurrentStatus]++
		}
	}
	return counts
}

type Windows struct {
	Today      int `json:"today"`
	Yesterday  int `json:"yesterday"`
	Last30Days int `json:"last_30_days"`
}

// CountWindows counts orders created today, yesterday and in the last 30
// days relative to now, using now's location for midnight. Windows are
// half-open [start, end); the 30 day window runs from now-30d to the next
// midnight. Pending orders count as created at now, so they fall in today
// and the last 30 days.
func CountWindows(orders []order.Order, now time.Time) Windows {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)
	yesterday := today.AddDate(0, 0, -1)
	monthAgo := now.Add(-30 * 24 * time.Hour)

	var w Windows
	for _, o := range orders {
		ts := o.CreatedAt(now)
		if within(ts, today, tomorrow) {
			w.Today++
		}
		if within(ts, yesterday, today) {
			w.Yesterday++
		}
		if within(ts, monthAgo, tomorrow) {
			w.Last30Days++
		}
	}
	return w
}

func within(ts, start, end time.Time) bool {
	return !ts.Before(start) && ts.Before(end)
}

// ShipmentWeight is the chargeable weight of a decoded payload: weight for
// B2C, the stored totalWeight for B2B.
func ShipmentWeight(p order.Payload) decimal.Decimal {
	switch v := p.(type) {
	case *order.B2CPayload:
		return v.Weight.Decimal
	case *order.B2BPayload:
		return v.TotalWeight.Decimal
	default:
		return decimal.Zero
	}
}

// TotalWeight sums shipment weights. Missing weights count as zero; records
// that fail to decode, including non-numeric weights, are skipped and
// reported.
func TotalWeight(orders []order.Order) (decimal.Decimal, []RecordError) {
	total := decimal.Zero
	var errs []RecordError
	for _, o := range orders {
		p, err := o.Decode()
		if err != nil {
			errs = append(errs, NewRecordError(o.ID, err))
			continue
		}
		total = total.Add(ShipmentWeight(p))
	}
	return total, errs
}

// SortByTimestamp returns a copy of orders, newest first. Pending records
// sort as now; equal timestamps keep their input order.
func SortByTimestamp(orders []order.Order, now time.Time) []order.Order {
	sorted := make([]order.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt(now).After(sorted[j].CreatedAt(now))
	})
	return sorted
}

// Paginate returns the 1-based page of items. Pages past the end, and a
// non-positive page or size, are empty.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 || page > PageCount(len(items), size) {
		return []T{}
	}
	start := (page - 1) * size
	return items[start : start+min(size, len(items)-start)]
}

func PageCount(total, size int) int {
	if size < 1 || total <= 0 {
		return 0
	}
	return (total-1)/size + 1
}

type Dashboard struct {
	Total       int                  `json:"total"`
	Counts      map[order.Status]int `json:"counts"`
	Windows     Windows              `json:"windows"`
	TotalWeight decimal.Decimal      `json:"total_weight"`
	Errors      []RecordError        `json:"errors,omitempty"`
}

func Summarize(orders []order.Order, now time.Time) Dashboard {
	weight, errs := TotalWeight(orders)
	return Dashboard{
		Total:       len(orders),
		Counts:      CountByStatus(orders),
		Windows:     CountWindows(orders, now),
		TotalWeight: weight,
		Errors:      errs,
	}
}

// InvalidRecords counts record errors caused by undecodable documents.
func InvalidRecords(errs []RecordError) int {
	n := 0
	for _, e := range errs {
		if errors.Is(e.Err, apperrors.ErrInvalidPayload) {
			n++
		}
	}
	return n
}
