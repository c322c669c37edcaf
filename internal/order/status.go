package order

import "strings"

type Status string

const (
	StatusUnshipped       Status = "UNSHIPPED"
	StatusReadyToShip     Status = "READY TO SHIP"
	StatusPickupScheduled Status = "PICKUP SCHEDULED"
	StatusManifested      Status = "MANIFESTED"
	StatusPickupException Status = "PICKUP EXCEPTION"
	StatusShipped         Status = "SHIPPED"
	StatusInTransit       Status = "IN TRANSIT"
	StatusDelivered       Status = "DELIVERED"
	StatusRTO             Status = "RTO"
	StatusCancelled       Status = "CANCELLED"
)

// Statuses is the fixed vocabulary in display order.
var Statuses = []Status{
	StatusUnshipped,
	StatusReadyToShip,
	StatusPickupScheduled,
	StatusManifested,
	StatusPickupException,
	StatusShipped,
	StatusInTransit,
	StatusDelivered,
	StatusRTO,
	StatusCancelled,
}

func (s Status) Known() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether fulfilment will not move the order any further.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusRTO || s == StatusCancelled
}

// ParseStatus accepts the vocabulary case-insensitively and with
// underscores in place of spaces ("in_transit").
func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), "_", " ")))
	return s, s.Known()
}

type Type string

const (
	TypeB2C Type = "B2C"
	TypeB2B Type = "B2B"
)

// Normalize maps the absent tag to B2C.
func (t Type) Normalize() Type {
	if t == "" {
		return TypeB2C
	}
	return t
}
