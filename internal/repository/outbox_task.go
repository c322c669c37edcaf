package repository

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusCreated    TaskStatus = "CREATED"
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusFailed     TaskStatus = "FAILED"
	TaskStatusDone       TaskStatus = "DONE"
)

type OutboxTask struct {
	ID          uuid.UUID       `db:"id"`
	Status      TaskStatus      `db:"status"`
	Payload     json.RawMessage `db:"payload"`
	Topic       string          `db:"topic"`
	Attempts    int             `db:"attempts"`
	LastError   *string         `db:"last_error"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	CompletedAt *time.Time      `db:"completed_at"`
}

type EventType string

const (
	EventOrderCreated       EventType = "order.created"
	EventWarehouseCreated   EventType = "warehouse.created"
	EventWarehouseDeleted   EventType = "warehouse.deleted"
	EventComplaintCreated   EventType = "complaint.created"
	EventComplaintReplied   EventType = "complaint.replied"
	EventComplaintStatus    EventType = "complaint.status_changed"
	EventWalletRechargeOpen EventType = "wallet.recharge_opened"
)

// EventPayload is the message body published for every state change.
type EventPayload struct {
	Type       EventType `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	UserID     string    `json:"user_id"`
	EntityID   string    `json:"entity_id"`
	EntityType string    `json:"entity_type"`
	OldStatus  string    `json:"old_status,omitempty"`
	NewStatus  string    `json:"new_status,omitempty"`
	Details    string    `json:"details,omitempty"`
}
