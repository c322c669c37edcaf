package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gitlab.com/umaxship/console/internal/apperrors"
	"gitlab.com/umaxship/console/internal/complaint"
	"gitlab.com/umaxship/console/internal/db"
	"gitlab.com/umaxship/console/internal/payment"
	"gitlab.com/umaxship/console/internal/repository"
	"gitlab.com/umaxship/console/internal/session"
	"gitlab.com/umaxship/console/internal/warehouse"
)

func delhi(_ context.Context, pincode string) (warehouse.Locality, error) {
	if pincode != "110001" {
		return warehouse.Locality{}, fmt.Errorf("lookup: %w", apperrors.ErrExternalService)
	}
	return warehouse.Locality{City: "New Delhi", State: "Delhi", Country: "India"}, nil
}

func warehouseForm(pin string) warehouse.Form {
	return warehouse.Form{
		Name:    "Main Hub",
		Email:   "hub@umaxship.in",
		Phone:   "9876543210",
		Address: "Plot 4, Sector 2",
		PinCode: pin,
	}
}

func TestStorage_CreateWarehouse(t *testing.T) {
	ctx := context.Background()

	t.Run("locality filled from lookup", func(t *testing.T) {
		f := newFixture(t, resolverFunc(delhi))

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.warehouses.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ db.Tx, w *repository.Warehouse) error {
				assert.Equal(t, "New Delhi", w.City)
				assert.Equal(t, fixedTime, w.CreatedAt)
				return nil
			})
		f.outbox.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).Return(nil)
		f.tx.EXPECT().Commit(ctx).Return(nil)

		w, err := f.storage.CreateWarehouse(ctx, "u1", warehouseForm("110001"))
		require.NoError(t, err)
		assert.True(t, warehouse.IsKey(w.PickupLocation))
		assert.Equal(t, "Delhi", w.State)
		assert.Equal(t, "u1", w.UserID)
	})

	t.Run("taken key retried with a fresh one", func(t *testing.T) {
		f := newFixture(t, resolverFunc(delhi))

		var keys []string
		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil).Times(2)
		gomock.InOrder(
			f.warehouses.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).DoAndReturn(
				func(_ context.Context, _ db.Tx, w *repository.Warehouse) error {
					keys = append(keys, w.PickupLocation)
					return repository.ErrDuplicateKey
				}),
			f.warehouses.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).DoAndReturn(
				func(_ context.Context, _ db.Tx, w *repository.Warehouse) error {
					keys = append(keys, w.PickupLocation)
					return nil
				}),
		)
		f.tx.EXPECT().Rollback(ctx).Return(nil)
		f.outbox.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).Return(nil)
		f.tx.EXPECT().Commit(ctx).Return(nil)

		w, err := f.storage.CreateWarehouse(ctx, "u1", warehouseForm("110001"))
		require.NoError(t, err)
		require.Len(t, keys, 2)
		assert.Equal(t, keys[1], w.PickupLocation)
	})

	t.Run("gives up after repeated key clashes", func(t *testing.T) {
		f := newFixture(t, resolverFunc(delhi))

		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil).Times(maxKeyAttempts)
		f.warehouses.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).Return(repository.ErrDuplicateKey).Times(maxKeyAttempts)
		f.tx.EXPECT().Rollback(ctx).Return(nil).Times(maxKeyAttempts)

		_, err := f.storage.CreateWarehouse(ctx, "u1", warehouseForm("110001"))
		assert.ErrorIs(t, err, repository.ErrDuplicateKey)
	})

	t.Run("lookup failure stores nothing", func(t *testing.T) {
		f := newFixture(t, resolverFunc(delhi))

		_, err := f.storage.CreateWarehouse(ctx, "u1", warehouseForm("560001"))
		assert.ErrorIs(t, err, apperrors.ErrExternalService)
	})

	t.Run("invalid form", func(t *testing.T) {
		f := newFixture(t, resolverFunc(delhi))

		_, err := f.storage.CreateWarehouse(ctx, "u1", warehouseForm("0123"))
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestStorage_DeleteWarehouse(t *testing.T) {
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		f := newFixture(t, nil)
		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.warehouses.EXPECT().DeleteTx(ctx, f.tx, "u1", "wr_1").Return(nil)
		f.outbox.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).Return(nil)
		f.tx.EXPECT().Commit(ctx).Return(nil)

		assert.NoError(t, f.storage.DeleteWarehouse(ctx, "u1", "wr_1"))
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t, nil)
		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.warehouses.EXPECT().DeleteTx(ctx, f.tx, "u1", "wr_9").Return(repository.ErrObjectNotFound)
		f.tx.EXPECT().Rollback(ctx).Return(nil)

		assert.ErrorIs(t, f.storage.DeleteWarehouse(ctx, "u1", "wr_9"), apperrors.ErrNotFound)
	})
}

func TestStorage_CreateComplaint(t *testing.T) {
	ctx := context.Background()

	t.Run("created as new", func(t *testing.T) {
		f := newFixture(t, nil)
		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.complaints.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ db.Tx, c *repository.Complaint) error {
				assert.Equal(t, "", c.Status)
				assert.JSONEq(t, `[]`, string(c.Replies))
				return nil
			})
		f.outbox.EXPECT().CreateTx(ctx, f.tx, gomock.Any()).Return(nil)
		f.tx.EXPECT().Commit(ctx).Return(nil)

		c, err := f.storage.CreateComplaint(ctx, "u1", " AWB1 ", "parcel damaged")
		require.NoError(t, err)
		assert.Equal(t, "AWB1", c.AWBNumber)
		assert.Equal(t, "new", c.Status.Display())
	})

	t.Run("missing issue", func(t *testing.T) {
		f := newFixture(t, nil)

		_, err := f.storage.CreateComplaint(ctx, "u1", "AWB1", " ")
		var verr *apperrors.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"issue"}, verr.Fields)
	})
}

func TestStorage_AddReply(t *testing.T) {
	ctx := context.Background()

	t.Run("appended", func(t *testing.T) {
		f := newFixture(t, nil)
		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.complaints.EXPECT().AppendReplyTx(ctx, f.tx, "u1", "c1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ db.Tx, _, _ string, raw []byte) error {
				assert.JSONEq(t, `{"replyText":"on it","user":"Support","timestamp":"2025-01-15T12:00:00Z"}`, string(raw))
				return nil
			})
		f.expectCommitTail(t, ctx, repository.EventComplaintReplied)

		r, err := f.storage.AddReply(ctx, "u1", "c1", "on it", "Support")
		require.NoError(t, err)
		assert.Equal(t, fixedTime, r.Timestamp)
	})

	t.Run("unknown complaint", func(t *testing.T) {
		f := newFixture(t, nil)
		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.complaints.EXPECT().AppendReplyTx(ctx, f.tx, "u1", "c9", gomock.Any()).Return(repository.ErrObjectNotFound)
		f.tx.EXPECT().Rollback(ctx).Return(nil)

		_, err := f.storage.AddReply(ctx, "u1", "c9", "hello", "Support")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("empty text", func(t *testing.T) {
		f := newFixture(t, nil)

		_, err := f.storage.AddReply(ctx, "u1", "c1", "  ", "Support")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestStorage_SetComplaintStatus(t *testing.T) {
	ctx := context.Background()
	row := func(status string) *repository.Complaint {
		return &repository.Complaint{ID: "c1", UserID: "u1", AWBNumber: "AWB1", Issue: "late", Status: status, Replies: []byte(`[]`)}
	}

	t.Run("open to resolved", func(t *testing.T) {
		f := newFixture(t, nil)
		f.complaints.EXPECT().GetByID(ctx, "u1", "c1").Return(row("OPEN"), nil)
		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.complaints.EXPECT().UpdateStatusTx(ctx, f.tx, "u1", "c1", "OPEN", "RESOLVED").Return(nil)
		f.expectCommitTail(t, ctx, repository.EventComplaintStatus)

		c, err := f.storage.SetComplaintStatus(ctx, "u1", "c1", complaint.StatusResolved)
		require.NoError(t, err)
		assert.Equal(t, complaint.StatusResolved, c.Status)
	})

	t.Run("resolved is terminal", func(t *testing.T) {
		f := newFixture(t, nil)
		f.complaints.EXPECT().GetByID(ctx, "u1", "c1").Return(row("RESOLVED"), nil)

		_, err := f.storage.SetComplaintStatus(ctx, "u1", "c1", complaint.StatusOpen)
		assert.ErrorIs(t, err, complaint.ErrInvalidTransition)
	})

	t.Run("changed concurrently", func(t *testing.T) {
		f := newFixture(t, nil)
		f.complaints.EXPECT().GetByID(ctx, "u1", "c1").Return(row(""), nil)
		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.complaints.EXPECT().UpdateStatusTx(ctx, f.tx, "u1", "c1", "", "OPEN").Return(repository.ErrObjectNotFound)
		f.tx.EXPECT().Rollback(ctx).Return(nil)

		_, err := f.storage.SetComplaintStatus(ctx, "u1", "c1", complaint.StatusOpen)
		assert.ErrorIs(t, err, complaint.ErrInvalidTransition)
	})

	t.Run("unknown complaint", func(t *testing.T) {
		f := newFixture(t, nil)
		f.complaints.EXPECT().GetByID(ctx, "u1", "c9").Return(nil, repository.ErrObjectNotFound)

		_, err := f.storage.SetComplaintStatus(ctx, "u1", "c9", complaint.StatusOpen)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestStorage_GetWallet(t *testing.T) {
	ctx := context.Background()

	t.Run("no wallet row", func(t *testing.T) {
		f := newFixture(t, nil)
		f.wallets.EXPECT().GetByUserID(ctx, "u1").Return(nil, repository.ErrObjectNotFound)
		f.wallets.EXPECT().GetRecharges(ctx, "u1").Return(nil, nil)

		w, err := f.storage.GetWallet(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, w.Balance.IsZero())
		assert.Empty(t, w.Recharges)
	})

	t.Run("with history", func(t *testing.T) {
		f := newFixture(t, nil)
		f.wallets.EXPECT().GetByUserID(ctx, "u1").Return(&repository.Wallet{UserID: "u1", Balance: "500", Plan: payment.PlanEarlyCOD}, nil)
		f.wallets.EXPECT().GetRecharges(ctx, "u1").Return([]*repository.Recharge{{ID: "r1", Amount: "500", Status: repository.RechargeStatusPaid}}, nil)

		w, err := f.storage.GetWallet(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, payment.PlanEarlyCOD, w.Plan)
		require.Len(t, w.Recharges, 1)
		assert.Equal(t, "PAID", w.Recharges[0].Status)
	})

	t.Run("database error", func(t *testing.T) {
		f := newFixture(t, nil)
		f.wallets.EXPECT().GetByUserID(ctx, "u1").Return(nil, errors.New("db down"))

		_, err := f.storage.GetWallet(ctx, "u1")
		assert.Error(t, err)
	})
}

func TestStorage_RechargeWallet(t *testing.T) {
	ctx := context.Background()
	sess := session.Session{UID: "u1", Email: "ops@umaxship.in", DisplayName: "Ops"}

	t.Run("session opened and recorded", func(t *testing.T) {
		f := newFixture(t, nil)
		f.payments.EXPECT().CreateSession(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, req payment.SessionRequest) (payment.Session, error) {
				assert.Equal(t, "9876543210", req.Customer.Phone)
				assert.Equal(t, "u1", req.Customer.ID)
				return payment.Session{PaymentSessionID: "sess_1"}, nil
			})
		f.db.EXPECT().BeginTx(ctx).Return(f.tx, nil)
		f.wallets.EXPECT().CreateRechargeTx(ctx, f.tx, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ db.Tx, rc *repository.Recharge) error {
				assert.Equal(t, "250.5", rc.Amount)
				assert.Equal(t, repository.RechargeStatusPending, rc.Status)
				assert.Equal(t, "sess_1", rc.PaymentSessionID)
				return nil
			})
		f.expectCommitTail(t, ctx, repository.EventWalletRechargeOpen)

		ps, err := f.storage.RechargeWallet(ctx, sess, payment.RechargeRequest{Amount: decimal.RequireFromString("250.50"), Phone: "9876543210"})
		require.NoError(t, err)
		assert.Equal(t, "sess_1", ps.PaymentSessionID)
		assert.NotEmpty(t, ps.OrderID)
	})

	t.Run("invalid request", func(t *testing.T) {
		f := newFixture(t, nil)

		_, err := f.storage.RechargeWallet(ctx, sess, payment.RechargeRequest{Amount: decimal.Zero, Phone: "12"})
		var verr *apperrors.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.ElementsMatch(t, []string{"amount", "phone"}, verr.Fields)
	})

	t.Run("provider failure", func(t *testing.T) {
		f := newFixture(t, nil)
		f.payments.EXPECT().CreateSession(ctx, gomock.Any()).Return(payment.Session{}, fmt.Errorf("%w: HTTP 500", apperrors.ErrExternalService))

		_, err := f.storage.RechargeWallet(ctx, sess, payment.RechargeRequest{Amount: decimal.NewFromInt(100), Phone: "9876543210"})
		assert.ErrorIs(t, err, apperrors.ErrExternalService)
	})
}
