package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gitlab.com/umaxship/console/internal/apperrors"
	"gitlab.com/umaxship/console/internal/complaint"
	"gitlab.com/umaxship/console/internal/db"
	"gitlab.com/umaxship/console/internal/metrics"
	"gitlab.com/umaxship/console/internal/repository"
)

func (s *Storage) CreateComplaint(ctx context.Context, userID, awb, issue string) (complaint.Complaint, error) {
	now := s.timeNow().UTC()
	c, err := complaint.New(uuid.NewString(), userID, awb, issue, now)
	if err != nil {
		return complaint.Complaint{}, err
	}
	row, err := repository.FromComplaint(c)
	if err != nil {
		return complaint.Complaint{}, s.fail("create_complaint", err)
	}

	err = s.inTx(ctx, func(tx db.Tx) error {
		if err := s.complaintRepo.CreateTx(ctx, tx, row); err != nil {
			return fmt.Errorf("failed to add complaint: %w", err)
		}
		return s.enqueueTx(ctx, tx, repository.EventPayload{
			Type:       repository.EventComplaintCreated,
			Timestamp:  now,
			UserID:     userID,
			EntityID:   c.ID,
			EntityType: "complaint",
			Details:    c.AWBNumber,
		})
	})
	if err != nil {
		return complaint.Complaint{}, s.fail("create_complaint", err)
	}
	return c, nil
}

func (s *Storage) GetComplaint(ctx context.Context, userID, id string) (complaint.Complaint, error) {
	row, err := s.complaintRepo.GetByID(ctx, userID, id)
	if err != nil {
		return complaint.Complaint{}, lookupErr("complaint", id, err)
	}
	return row.ToComplaint()
}

// ListComplaints returns the user's threads newest first. Threads with an
// unreadable reply list are skipped and logged.
func (s *Storage) ListComplaints(ctx context.Context, userID string) ([]complaint.Complaint, error) {
	rows, err := s.complaintRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, s.fail("list_complaints", err)
	}
	list := make([]complaint.Complaint, 0, len(rows))
	for _, row := range rows {
		c, err := row.ToComplaint()
		if err != nil {
			metrics.InvalidRecordsTotal.Inc()
			s.logger.Warn("skipping unreadable complaint", zap.String("complaint_id", row.ID), zap.Error(err))
			continue
		}
		list = append(list, c)
	}
	return list, nil
}

// AddReply appends a reply to the end of the thread. Replies are accepted in
// every status, resolved included.
func (s *Storage) AddReply(ctx context.Context, userID, id, text, author string) (complaint.Reply, error) {
	now := s.timeNow().UTC()
	reply, err := complaint.NewReply(text, author, now)
	if err != nil {
		return complaint.Reply{}, err
	}
	raw, err := json.Marshal(reply)
	if err != nil {
		return complaint.Reply{}, s.fail("add_reply", fmt.Errorf("encode reply: %w", err))
	}

	err = s.inTx(ctx, func(tx db.Tx) error {
		if err := s.complaintRepo.AppendReplyTx(ctx, tx, userID, id, raw); err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return fmt.Errorf("complaint %s: %w", id, apperrors.ErrNotFound)
			}
			return fmt.Errorf("failed to append reply: %w", err)
		}
		return s.enqueueTx(ctx, tx, repository.EventPayload{
			Type:       repository.EventComplaintReplied,
			Timestamp:  now,
			UserID:     userID,
			EntityID:   id,
			EntityType: "complaint",
			Details:    author,
		})
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return complaint.Reply{}, err
		}
		return complaint.Reply{}, s.fail("add_reply", err)
	}

	metrics.ComplaintRepliesTotal.Inc()
	return reply, nil
}

// SetComplaintStatus moves the complaint to status to. The update only
// applies if nobody changed the status since it was read.
func (s *Storage) SetComplaintStatus(ctx context.Context, userID, id string, to complaint.Status) (complaint.Complaint, error) {
	c, err := s.GetComplaint(ctx, userID, id)
	if err != nil {
		return complaint.Complaint{}, err
	}
	from := c.Status
	if err := c.Transition(to); err != nil {
		return complaint.Complaint{}, err
	}

	err = s.inTx(ctx, func(tx db.Tx) error {
		if err := s.complaintRepo.UpdateStatusTx(ctx, tx, userID, id, string(from), string(to)); err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return fmt.Errorf("complaint %s changed concurrently: %w", id, complaint.ErrInvalidTransition)
			}
			return fmt.Errorf("failed to update complaint status: %w", err)
		}
		return s.enqueueTx(ctx, tx, repository.EventPayload{
			Type:       repository.EventComplaintStatus,
			Timestamp:  s.timeNow().UTC(),
			UserID:     userID,
			EntityID:   id,
			EntityType: "complaint",
			OldStatus:  from.Display(),
			NewStatus:  to.Display(),
		})
	})
	if err != nil {
		if errors.Is(err, complaint.ErrInvalidTransition) {
			return complaint.Complaint{}, err
		}
		return complaint.Complaint{}, s.fail("set_complaint_status", err)
	}
	return c, nil
}
