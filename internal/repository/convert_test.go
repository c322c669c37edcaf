package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/umaxship/console/internal/apperrors"
	"gitlab.com/umaxship/console/internal/complaint"
	"gitlab.com/umaxship/console/internal/order"
)

func TestOrderRow_RoundTrip(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	o := order.Order{
		ID:             "1",
		UserID:         "u1",
		Type:           order.TypeB2B,
		CurrentStatus:  order.StatusInTransit,
		Timestamp:      ts,
		Data:           []byte(`{"boxes":[]}`),
		ReturnLocation: []byte(`{}`),
		AWB:            "AWB9",
		CourierCharges: decimal.NewNullDecimal(decimal.RequireFromString("120.50")),
	}

	row := FromOrder(o)
	require.NotNil(t, row.CreatedAt)
	assert.Equal(t, "120.5", *row.CourierCharges)

	back, err := row.ToOrder()
	require.NoError(t, err)
	assert.Equal(t, o.ID, back.ID)
	assert.Equal(t, o.Timestamp, back.Timestamp)
	assert.Equal(t, "AWB9", back.AWB)
	assert.True(t, o.CourierCharges.Decimal.Equal(back.CourierCharges.Decimal))
}

func TestOrderRow_PendingAndEmptyType(t *testing.T) {
	row := FromOrder(order.Order{ID: "1", CurrentStatus: order.StatusUnshipped})
	assert.Nil(t, row.CreatedAt)
	assert.Nil(t, row.AWB)
	assert.Nil(t, row.CourierCharges)
	assert.Equal(t, "B2C", row.OrderType)

	back, err := row.ToOrder()
	require.NoError(t, err)
	assert.True(t, back.Pending())
}

func TestOrderRow_BadCharges(t *testing.T) {
	charges := "abc"
	_, err := (&Order{ID: "7", CourierCharges: &charges}).ToOrder()

	var perr *apperrors.InvalidPayloadError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "7", perr.RecordID)
	assert.Equal(t, "courier_charges", perr.Field)
}

func TestComplaintRow(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	c, err := complaint.New("c1", "u1", "AWB1", "late", now)
	require.NoError(t, err)

	row, err := FromComplaint(c)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(row.Replies))

	row.Replies = []byte(`[{"replyText":"a","user":"Support","timestamp":"2025-03-01T10:00:00Z"}]`)
	back, err := row.ToComplaint()
	require.NoError(t, err)
	require.Len(t, back.Replies, 1)
	assert.Equal(t, "a", back.Replies[0].ReplyText)

	row.Replies = []byte(`{`)
	_, err = row.ToComplaint()
	assert.ErrorIs(t, err, apperrors.ErrInvalidPayload)
}

func TestWalletRow(t *testing.T) {
	w, err := (&Wallet{UserID: "u1", Balance: "99.90", Plan: "Early COD"}).ToWallet()
	require.NoError(t, err)
	assert.Equal(t, "99.9", w.Balance.String())

	_, err = (&Wallet{UserID: "u1", Balance: "x"}).ToWallet()
	assert.Error(t, err)
}
