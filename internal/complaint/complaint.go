package complaint

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gitlab.com/umaxship/console/internal/apperrors"
)

type Status string

const (
	StatusNew      Status = ""
	StatusOpen     Status = "OPEN"
	StatusResolved Status = "RESOLVED"
)

// Display renders the unset status as "new".
func (s Status) Display() string {
	if s == StatusNew {
		return "new"
	}
	return string(s)
}

func ParseStatus(raw string) (Status, bool) {
	switch s := Status(strings.ToUpper(strings.TrimSpace(raw))); s {
	case StatusOpen, StatusResolved:
		return s, true
	default:
		return "", false
	}
}

var ErrInvalidTransition = errors.New("invalid complaint status transition")

// CanTransition allows new→OPEN, new→RESOLVED and OPEN→RESOLVED.
// RESOLVED is final.
func CanTransition(from, to Status) error {
	switch {
	case from == StatusNew && (to == StatusOpen || to == StatusResolved):
		return nil
	case from == StatusOpen && to == StatusResolved:
		return nil
	default:
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from.Display(), to.Display())
	}
}

type Reply struct {
	ReplyText string    `json:"replyText"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}

type Complaint struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	AWBNumber string    `json:"awbNumber"`
	Issue     string    `json:"issue"`
	Timestamp time.Time `json:"timestamp"`
	Status    Status    `json:"status"`
	Replies   []Reply   `json:"replies"`
}

// Transition moves the complaint to status to.
func (c *Complaint) Transition(to Status) error {
	if err := CanTransition(c.Status, to); err != nil {
		return err
	}
	c.Status = to
	return nil
}

// Append adds r at the end of the thread. Replies are never removed or
// reordered.
func (c *Complaint) Append(r Reply) {
	c.Replies = append(c.Replies, r)
}

func New(id, userID, awb, issue string, now time.Time) (Complaint, error) {
	awb = strings.TrimSpace(awb)
	issue = strings.TrimSpace(issue)

	var missing []string
	if awb == "" {
		missing = append(missing, "awbNumber")
	}
	if issue == "" {
		missing = append(missing, "issue")
	}
	if len(missing) > 0 {
		return Complaint{}, apperrors.NewValidationError(missing...)
	}

	return Complaint{
		ID:        id,
		UserID:    userID,
		AWBNumber: awb,
		Issue:     issue,
		Timestamp: now,
		Status:    StatusNew,
		Replies:   []Reply{},
	}, nil
}

func NewReply(text, user string, now time.Time) (Reply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Reply{}, apperrors.NewValidationError("replyText")
	}
	return Reply{ReplyText: text, User: user, Timestamp: now}, nil
}
