package projection

import (
	"strings"
	"time"
	"unicode"

	"gitlab.com/umaxship/console/internal/order"
)

type Mode string

const (
	// ModeFirstMatch applies only the first non-empty predicate, in the
	// order id, awb, phone, date range.
	ModeFirstMatch Mode = "first"
	// ModeAllOf applies every non-empty predicate conjunctively.
	ModeAllOf Mode = "all"
)

type Filter struct {
	ID    string
	AWB   string
	Phone string
	From  time.Time
	To    time.Time
	Mode  Mode
}

type predicate func(o order.Order) (bool, error)

func (f Filter) predicates() []predicate {
	var preds []predicate

	if id := stripSpaces(f.ID); id != "" {
		needle := strings.ToLower(id)
		preds = append(preds, func(o order.Order) (bool, error) {
			return strings.Contains(strings.ToLower(o.ID), needle), nil
		})
	}

	if awb := strings.TrimSpace(f.AWB); awb != "" {
		preds = append(preds, func(o order.Order) (bool, error) {
			return o.AWB != "" && strings.Contains(o.AWB, awb), nil
		})
	}

	if phone := strings.TrimSpace(f.Phone); phone != "" {
		preds = append(preds, func(o order.Order) (bool, error) {
			p, err := o.Decode()
			if err != nil {
				return false, err
			}
			return strings.Contains(p.Billing().Phone, phone), nil
		})
	}

	if !f.From.IsZero() || !f.To.IsZero() {
		from, to := f.From, f.To
		preds = append(preds, func(o order.Order) (bool, error) {
			if o.Pending() {
				return false, nil
			}
			if !from.IsZero() && o.Timestamp.Before(from) {
				return false, nil
			}
			if !to.IsZero() && o.Timestamp.After(to) {
				return false, nil
			}
			return true, nil
		})
	}

	return preds
}

// Active reports whether any predicate is set.
func (f Filter) Active() bool {
	return len(f.predicates()) > 0
}

// Apply keeps the orders matching the filter. Records whose document is
// needed but cannot be decoded are dropped and reported.
func (f Filter) Apply(orders []order.Order) ([]order.Order, []RecordError) {
	preds := f.predicates()
	if len(preds) == 0 {
		out := make([]order.Order, len(orders))
		copy(out, orders)
		return out, nil
	}
	if f.Mode != ModeAllOf {
		preds = preds[:1]
	}

	var (
		out  []order.Order
		errs []RecordError
	)
	for _, o := range orders {
		keep := true
		for _, pred := range preds {
			ok, err := pred(o)
			if err != nil {
				errs = append(errs, NewRecordError(o.ID, err))
				keep = false
				break
			}
			if !ok {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, o)
		}
	}
	return out, errs
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

type Page struct {
	Orders []order.Order `json:"orders"`
	Page   int           `json:"page"`
	Size   int           `json:"size"`
	Total  int           `json:"total"`
	Pages  int           `json:"pages"`
	Errors []RecordError `json:"errors,omitempty"`
}

// List filters, sorts newest first and slices one page.
func List(orders []order.Order, f Filter, page, size int, now time.Time) Page {
	filtered, errs := f.Apply(orders)
	sorted := SortByTimestamp(filtered, now)
	return Page{
		Orders: Paginate(sorted, page, size),
		Page:   page,
		Size:   size,
		Total:  len(sorted),
		Pages:  PageCount(len(sorted), size),
		Errors: errs,
	}
}
