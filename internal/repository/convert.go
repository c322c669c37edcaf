package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"gitlab.com/umaxship/console/internal/apperrors"
	"gitlab.com/umaxship/console/internal/complaint"
	"gitlab.com/umaxship/console/internal/order"
	"gitlab.com/umaxship/console/internal/payment"
	"gitlab.com/umaxship/console/internal/warehouse"
)

func FromOrder(o order.Order) *Order {
	row := &Order{
		ID:             o.ID,
		UserID:         o.UserID,
		OrderType:      string(o.Type.Normalize()),
		CurrentStatus:  string(o.CurrentStatus),
		Data:           o.Data,
		ReturnLocation: o.ReturnLocation,
	}
	if !o.Pending() {
		ts := o.Timestamp
		row.CreatedAt = &ts
	}
	if o.AWB != "" {
		awb := o.AWB
		row.AWB = &awb
	}
	if o.CourierCharges.Valid {
		charges := o.CourierCharges.Decimal.String()
		row.CourierCharges = &charges
	}
	return row
}

// ToOrder keeps the documents undecoded; a bad document only surfaces when
// a projection reads it.
func (r *Order) ToOrder() (order.Order, error) {
	o := order.Order{
		ID:             r.ID,
		UserID:         r.UserID,
		Type:           order.Type(r.OrderType),
		CurrentStatus:  order.Status(r.CurrentStatus),
		Data:           json.RawMessage(r.Data),
		ReturnLocation: json.RawMessage(r.ReturnLocation),
	}
	if r.CreatedAt != nil {
		o.Timestamp = *r.CreatedAt
	}
	if r.AWB != nil {
		o.AWB = *r.AWB
	}
	if r.CourierCharges != nil {
		d, err := decimal.NewFromString(*r.CourierCharges)
		if err != nil {
			return order.Order{}, &apperrors.InvalidPayloadError{RecordID: r.ID, Field: "courier_charges", Err: err}
		}
		o.CourierCharges = decimal.NewNullDecimal(d)
	}
	return o, nil
}

func FromWarehouse(w warehouse.Warehouse, createdAt time.Time) *Warehouse {
	return &Warehouse{
		PickupLocation: w.PickupLocation,
		UserID:         w.UserID,
		Name:           w.Name,
		Email:          w.Email,
		Phone:          w.Phone,
		Address:        w.Address,
		Address2:       w.Address2,
		City:           w.City,
		State:          w.State,
		Country:        w.Country,
		PinCode:        w.PinCode,
		CreatedAt:      createdAt,
	}
}

func (r *Warehouse) ToWarehouse() warehouse.Warehouse {
	return warehouse.Warehouse{
		PickupLocation: r.PickupLocation,
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		Address:        r.Address,
		Address2:       r.Address2,
		City:           r.City,
		State:          r.State,
		Country:        r.Country,
		PinCode:        r.PinCode,
		UserID:         r.UserID,
	}
}

func FromComplaint(c complaint.Complaint) (*Complaint, error) {
	replies := c.Replies
	if replies == nil {
		replies = []complaint.Reply{}
	}
	raw, err := json.Marshal(replies)
	if err != nil {
		return nil, fmt.Errorf("encode replies: %w", err)
	}
	return &Complaint{
		ID:        c.ID,
		UserID:    c.UserID,
		AWBNumber: c.AWBNumber,
		Issue:     c.Issue,
		Status:    string(c.Status),
		Replies:   raw,
		CreatedAt: c.Timestamp,
	}, nil
}

func (r *Complaint) ToComplaint() (complaint.Complaint, error) {
	c := complaint.Complaint{
		ID:        r.ID,
		UserID:    r.UserID,
		AWBNumber: r.AWBNumber,
		Issue:     r.Issue,
		Timestamp: r.CreatedAt,
		Status:    complaint.Status(r.Status),
		Replies:   []complaint.Reply{},
	}
	if len(r.Replies) > 0 {
		if err := json.Unmarshal(r.Replies, &c.Replies); err != nil {
			return complaint.Complaint{}, &apperrors.InvalidPayloadError{RecordID: r.ID, Field: "replies", Err: err}
		}
	}
	return c, nil
}

func (r *Wallet) ToWallet() (payment.Wallet, error) {
	balance, err := decimal.NewFromString(r.Balance)
	if err != nil {
		return payment.Wallet{}, fmt.Errorf("wallet %s balance %q: %w", r.UserID, r.Balance, err)
	}
	return payment.Wallet{UserID: r.UserID, Balance: balance, Plan: r.Plan}, nil
}

func (r *Recharge) ToRecharge() (payment.Recharge, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return payment.Recharge{}, fmt.Errorf("recharge %s amount %q: %w", r.ID, r.Amount, err)
	}
	return payment.Recharge{
		ID:               r.ID,
		Amount:           amount,
		Status:           string(r.Status),
		PaymentSessionID: r.PaymentSessionID,
		CreatedAt:        r.CreatedAt,
	}, nil
}
