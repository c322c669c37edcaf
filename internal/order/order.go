package order

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"gitlab.com/umaxship/console/internal/apperrors"
	"gitlab.com/umaxship/console/internal/validation"
	"gitlab.com/umaxship/console/internal/warehouse"
)

// Order is one shipment record. Data and ReturnLocation are kept as the raw
// documents they were stored as; Decode and ReturnWarehouse interpret them.
type Order struct {
	ID             string              `json:"id"`
	UserID         string              `json:"user_id"`
	Type           Type                `json:"order_type,omitempty"`
	CurrentStatus  Status              `json:"current_status"`
	Timestamp      time.Time           `json:"timestamp"`
	Data           json.RawMessage     `json:"data"`
	ReturnLocation json.RawMessage     `json:"returnLocation"`
	AWB            string              `json:"awb_id,omitempty"`
	CourierCharges decimal.NullDecimal `json:"courier_charges"`
}

// Pending reports whether the store has not assigned a creation time yet.
func (o Order) Pending() bool {
	return o.Timestamp.IsZero()
}

// CreatedAt is the timestamp with pending records read as now.
func (o Order) CreatedAt(now time.Time) time.Time {
	if o.Pending() {
		return now
	}
	return o.Timestamp
}

var (
	errEmptyDocument = errors.New("empty document")
	errNoItems       = errors.New("order_items is empty")
	errNoBoxes       = errors.New("boxes is empty")
)

// Decode interprets Data according to the order type. Any failure is an
// *apperrors.InvalidPayloadError for this record only.
func (o Order) Decode() (Payload, error) {
	if len(bytes.TrimSpace(o.Data)) == 0 {
		return nil, o.invalid("data", errEmptyDocument)
	}

	switch o.Type.Normalize() {
	case TypeB2C:
		var p B2CPayload
		if err := json.Unmarshal(o.Data, &p); err != nil {
			return nil, o.invalid("data", err)
		}
		if len(p.OrderItems) == 0 {
			return nil, o.invalid("data", errNoItems)
		}
		return &p, nil
	case TypeB2B:
		var p B2BPayload
		if err := json.Unmarshal(o.Data, &p); err != nil {
			return nil, o.invalid("data", err)
		}
		if len(p.Boxes) == 0 {
			return nil, o.invalid("data", errNoBoxes)
		}
		return &p, nil
	default:
		return nil, o.invalid("order_type", fmt.Errorf("unknown order type %q", o.Type))
	}
}

// ReturnWarehouse decodes the warehouse snapshot taken at creation.
func (o Order) ReturnWarehouse() (warehouse.Warehouse, error) {
	var w warehouse.Warehouse
	if len(bytes.TrimSpace(o.ReturnLocation)) == 0 {
		return w, o.invalid("returnLocation", errEmptyDocument)
	}
	if err := json.Unmarshal(o.ReturnLocation, &w); err != nil {
		return w, o.invalid("returnLocation", err)
	}
	return w, nil
}

func (o Order) invalid(field string, err error) error {
	return &apperrors.InvalidPayloadError{RecordID: o.ID, Field: field, Err: err}
}

// NewID returns a client-style key: unix milliseconds followed by a
// four digit random suffix.
func NewID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10) + strconv.Itoa(1000+rand.IntN(9000))
}

var validate = validation.New(validation.WithCustomType(measureValue, Measure{}))

// Draft is an order as submitted for creation. Exactly one of B2C and B2B is
// set, matching Type.
type Draft struct {
	Type           Type        `json:"order_type"`
	PickupLocation string      `json:"pickup_location"`
	B2C            *B2CPayload `json:"b2c,omitempty"`
	B2B            *B2BPayload `json:"b2b,omitempty"`
}

func (d Draft) Validate() error {
	var missing []string
	if d.PickupLocation == "" {
		missing = append(missing, "pickup_location")
	}

	var payload any
	switch d.Type.Normalize() {
	case TypeB2C:
		if d.B2C == nil {
			missing = append(missing, "b2c")
		} else {
			payload = d.B2C
		}
	case TypeB2B:
		if d.B2B == nil {
			missing = append(missing, "b2b")
		} else {
			payload = d.B2B
		}
	default:
		missing = append(missing, "order_type")
	}

	if payload != nil {
		if err := validate.Struct(payload); err != nil {
			var verr *apperrors.ValidationError
			if !errors.As(err, &verr) {
				return err
			}
			missing = append(missing, verr.Fields...)
		}
	}

	if len(missing) > 0 {
		return apperrors.NewValidationError(missing...)
	}
	return nil
}

// Build turns a validated draft into an UNSHIPPED order owned by userID,
// shipping from and returning to snapshot.
func (d Draft) Build(id, userID string, snapshot warehouse.Warehouse) (Order, error) {
	var payload Payload
	switch d.Type.Normalize() {
	case TypeB2B:
		p := *d.B2B
		p.ComputeTotals()
		payload = &p
	default:
		payload = d.B2C
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return Order{}, fmt.Errorf("encode order data: %w", err)
	}
	location, err := json.Marshal(snapshot)
	if err != nil {
		return Order{}, fmt.Errorf("encode return location: %w", err)
	}

	return Order{
		ID:             id,
		UserID:         userID,
		Type:           d.Type.Normalize(),
		CurrentStatus:  StatusUnshipped,
		Data:           data,
		ReturnLocation: location,
	}, nil
}
