package payment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"gitlab.com/umaxship/console/internal/apperrors"
	"gitlab.com/umaxship/console/internal/validation"
)

// PlanEarlyCOD remits cash-on-delivery collections ahead of the usual cycle.
const PlanEarlyCOD = "Early COD"

var minRecharge = decimal.NewFromInt(1)

type Wallet struct {
	UserID    string          `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	Plan      string          `json:"plan"`
	Recharges []Recharge      `json:"recharges"`
}

type Recharge struct {
	ID               string          `json:"id"`
	Amount           decimal.Decimal `json:"amount"`
	Status           string          `json:"status"`
	PaymentSessionID string          `json:"payment_session_id"`
	CreatedAt        time.Time       `json:"created_at"`
}

// RechargeRequest is a wallet top-up as the user submits it.
type RechargeRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Phone  string          `json:"phone" validate:"required,phone"`
}

var validate = validation.New()

func (r RechargeRequest) Validate() error {
	var invalid []string
	if r.Amount.LessThan(minRecharge) {
		invalid = append(invalid, "amount")
	}
	if err := validate.Struct(r); err != nil {
		var verr *apperrors.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		invalid = append(invalid, verr.Fields...)
	}
	if len(invalid) > 0 {
		return apperrors.NewValidationError(invalid...)
	}
	return nil
}
