package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gitlab.com/umaxship/console/internal/db"
	"gitlab.com/umaxship/console/internal/metrics"
	"gitlab.com/umaxship/console/internal/payment"
	"gitlab.com/umaxship/console/internal/repository"
	"gitlab.com/umaxship/console/internal/session"
)

// GetWallet returns the balance, plan and recharge history. A user without
// a wallet row has an empty wallet.
func (s *Storage) GetWallet(ctx context.Context, userID string) (payment.Wallet, error) {
	wallet := payment.Wallet{UserID: userID, Balance: decimal.Zero}
	row, err := s.walletRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		if wallet, err = row.ToWallet(); err != nil {
			return payment.Wallet{}, s.fail("get_wallet", err)
		}
	case !errors.Is(err, repository.ErrObjectNotFound):
		return payment.Wallet{}, s.fail("get_wallet", fmt.Errorf("failed to get wallet: %w", err))
	}

	rows, err := s.walletRepo.GetRecharges(ctx, userID)
	if err != nil {
		return payment.Wallet{}, s.fail("get_wallet", fmt.Errorf("failed to get recharges: %w", err))
	}
	wallet.Recharges = make([]payment.Recharge, 0, len(rows))
	for _, r := range rows {
		rc, err := r.ToRecharge()
		if err != nil {
			return payment.Wallet{}, s.fail("get_wallet", err)
		}
		wallet.Recharges = append(wallet.Recharges, rc)
	}
	return wallet, nil
}

// RechargeWallet opens a payment session for the amount and records the
// recharge as pending until the provider confirms it.
func (s *Storage) RechargeWallet(ctx context.Context, sess session.Session, req payment.RechargeRequest) (payment.Session, error) {
	if err := req.Validate(); err != nil {
		return payment.Session{}, err
	}

	now := s.timeNow().UTC()
	rechargeID := uuid.NewString()
	ps, err := s.payments.CreateSession(ctx, payment.SessionRequest{
		OrderID: rechargeID,
		Amount:  req.Amount,
		Customer: payment.Customer{
			ID:    sess.UID,
			Name:  sess.DisplayName,
			Email: sess.Email,
			Phone: req.Phone,
		},
	})
	if err != nil {
		return payment.Session{}, s.fail("recharge_wallet", err)
	}
	ps.OrderID = rechargeID

	err = s.inTx(ctx, func(tx db.Tx) error {
		rc := &repository.Recharge{
			ID:               rechargeID,
			UserID:           sess.UID,
			Amount:           req.Amount.String(),
			Status:           repository.RechargeStatusPending,
			PaymentSessionID: ps.PaymentSessionID,
			CreatedAt:        now,
		}
		if err := s.walletRepo.CreateRechargeTx(ctx, tx, rc); err != nil {
			return fmt.Errorf("failed to record recharge: %w", err)
		}
		return s.enqueueTx(ctx, tx, repository.EventPayload{
			Type:       repository.EventWalletRechargeOpen,
			Timestamp:  now,
			UserID:     sess.UID,
			EntityID:   rechargeID,
			EntityType: "recharge",
			Details:    req.Amount.String(),
		})
	})
	if err != nil {
		return payment.Session{}, s.fail("recharge_wallet", err)
	}

	metrics.WalletRechargesTotal.Inc()
	s.logger.Info("wallet recharge opened", zap.String("user_id", sess.UID), zap.String("recharge_id", rechargeID))
	return ps, nil
}
