package repository

import (
	"errors"
	"time"
)

var (
	ErrObjectNotFound = errors.New("not found")
	ErrDuplicateKey   = errors.New("duplicate key")
)

// Order is a row of the orders table. Data and ReturnLocation are JSONB;
// created_at is NULL until the order is acknowledged.
type Order struct {
	ID             string     `db:"id"`
	UserID         string     `db:"user_id"`
	OrderType      string     `db:"order_type"`
	CurrentStatus  string     `db:"current_status"`
	CreatedAt      *time.Time `db:"created_at"`
	Data           []byte     `db:"data"`
	ReturnLocation []byte     `db:"return_location"`
	AWB            *string    `db:"awb_id"`
	CourierCharges *string    `db:"courier_charges"`
}

type Warehouse struct {
	PickupLocation string    `db:"pickup_location"`
	UserID         string    `db:"user_id"`
	Name           string    `db:"name"`
	Email          string    `db:"email"`
	Phone          string    `db:"phone"`
	Address        string    `db:"address"`
	Address2       string    `db:"address_2"`
	City           string    `db:"city"`
	State          string    `db:"state"`
	Country        string    `db:"country"`
	PinCode        string    `db:"pin_code"`
	CreatedAt      time.Time `db:"created_at"`
}

// Complaint is a row of the complaints table; Replies is a JSONB array.
type Complaint struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	AWBNumber string    `db:"awb_number"`
	Issue     string    `db:"issue"`
	Status    string    `db:"status"`
	Replies   []byte    `db:"replies"`
	CreatedAt time.Time `db:"created_at"`
}

type User struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	DisplayName  string `db:"display_name"`
	PasswordHash string `db:"password_hash"`
}

type Wallet struct {
	UserID  string `db:"user_id"`
	Balance string `db:"balance"`
	Plan    string `db:"plan"`
}

type RechargeStatus string

const (
	RechargeStatusPending RechargeStatus = "PENDING"
	RechargeStatusPaid    RechargeStatus = "PAID"
	RechargeStatusFailed  RechargeStatus = "FAILED"
)

type Recharge struct {
	ID               string         `db:"id"`
	UserID           string         `db:"user_id"`
	Amount           string         `db:"amount"`
	Status           RechargeStatus `db:"status"`
	PaymentSessionID string         `db:"payment_session_id"`
	CreatedAt        time.Time      `db:"created_at"`
}
