package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"gitlab.com/umaxship/console/internal/db"
	"gitlab.com/umaxship/console/internal/repository"
)

const complaintColumns = `id, user_id, awb_number, issue, status, replies, created_at`

type ComplaintRepo struct {
	db db.DB
}

func NewComplaintRepo(db db.DB) *ComplaintRepo {
	return &ComplaintRepo{db: db}
}

func (r *ComplaintRepo) CreateTx(ctx context.Context, tx db.Tx, c *repository.Complaint) error {
	_, err := tx.Exec(ctx, `
        INSERT INTO complaints (id, user_id, awb_number, issue, status, replies, created_at)
        VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7)
    `, c.ID, c.UserID, c.AWBNumber, c.Issue, c.Status, c.Replies, c.CreatedAt)
	return err
}

func (r *ComplaintRepo) GetByID(ctx context.Context, userID, id string) (*repository.Complaint, error) {
	var c repository.Complaint
	err := r.db.Get(ctx, &c, "SELECT "+complaintColumns+" FROM complaints WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ComplaintRepo) GetByUserID(ctx context.Context, userID string) ([]*repository.Complaint, error) {
	var list []*repository.Complaint
	err := r.db.Select(ctx, &list, "SELECT "+complaintColumns+" FROM complaints WHERE user_id = $1 ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("select complaints of %s: %w", userID, err)
	}
	return list, nil
}

// AppendReplyTx appends reply, a JSON object, to the end of the thread in a
// single statement so concurrent writers never lose each other's replies.
func (r *ComplaintRepo) AppendReplyTx(ctx context.Context, tx db.Tx, userID, id string, reply []byte) error {
	tag, err := tx.Exec(ctx, `
        UPDATE complaints
        SET replies = replies || jsonb_build_array($3::jsonb)
        WHERE id = $1 AND user_id = $2
    `, id, userID, reply)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}

// UpdateStatusTx sets the status only if it still equals from. It reports
// ErrObjectNotFound when no row matched.
func (r *ComplaintRepo) UpdateStatusTx(ctx context.Context, tx db.Tx, userID, id, from, to string) error {
	tag, err := tx.Exec(ctx, `
        UPDATE complaints
        SET status = $4
        WHERE id = $1 AND user_id = $2 AND status = $3
    `, id, userID, from, to)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}
