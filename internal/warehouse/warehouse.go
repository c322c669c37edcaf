package warehouse

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"gitlab.com/umaxship/console/internal/validation"
)

const keyPrefix = "wr_"

// Warehouse is a pickup location. Records are created and deleted, never
// edited; orders keep their own snapshot of the one they ship from.
type Warehouse struct {
	PickupLocation string `json:"pickup_location"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Address2       string `json:"address_2"`
	City           string `json:"city"`
	State          string `json:"state"`
	Country        string `json:"country"`
	PinCode        string `json:"pin_code"`
	UserID         string `json:"user_id"`
}

// Form is what the user submits. City, state and country come from the
// postal lookup.
type Form struct {
	Name     string `json:"name" validate:"required,addressline"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,phone"`
	Address  string `json:"address" validate:"required,addressline"`
	Address2 string `json:"address_2" validate:"omitempty,addressline"`
	PinCode  string `json:"pin_code" validate:"required,pincode"`
}

type Locality struct {
	City    string
	State   string
	Country string
}

type Resolver interface {
	Resolve(ctx context.Context, pincode string) (Locality, error)
}

var validate = validation.New()

// NewKey returns wr_ followed by unix milliseconds and a four digit random
// suffix.
func NewKey(now time.Time) string {
	return keyPrefix + strconv.FormatInt(now.UnixMilli(), 10) + strconv.Itoa(1000+rand.IntN(9000))
}

func IsKey(s string) bool {
	return strings.HasPrefix(s, keyPrefix)
}

func (f Form) Validate() error {
	return validate.Struct(f)
}

// Prepare validates the form, resolves its pin code and returns the record
// ready to be stored.
func Prepare(ctx context.Context, f Form, userID string, resolver Resolver, now time.Time) (Warehouse, error) {
	f = f.trimmed()
	if err := f.Validate(); err != nil {
		return Warehouse{}, err
	}

	loc, err := resolver.Resolve(ctx, f.PinCode)
	if err != nil {
		return Warehouse{}, fmt.Errorf("resolve pin code %s: %w", f.PinCode, err)
	}

	return Warehouse{
		PickupLocation: NewKey(now),
		Name:           f.Name,
		Email:          f.Email,
		Phone:          f.Phone,
		Address:        f.Address,
		Address2:       f.Address2,
		City:           loc.City,
		State:          loc.State,
		Country:        loc.Country,
		PinCode:        f.PinCode,
		UserID:         userID,
	}, nil
}

func (f Form) trimmed() Form {
	return Form{
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
		Phone:    strings.TrimSpace(f.Phone),
		Address:  strings.TrimSpace(f.Address),
		Address2: strings.TrimSpace(f.Address2),
		PinCode:  strings.TrimSpace(f.PinCode),
	}
}
