// Package orderflow defines the fixed order-status set and the legal
// transitions between statuses. History entries are append-only; every
// append is validated against this table.
package orderflow

import "foodcourt/internal/domain"

// Order statuses, in nominal lifecycle order
const (
	StatusPlaced        = "placed"
	StatusAccepted      = "accepted"
	StatusInPreparation = "in_preparation"
	StatusReady         = "ready"
	StatusDelivered     = "delivered"
	StatusCancelled     = "cancelled"
)

// transitions maps a status to the statuses that may legally follow it.
// Delivered and cancelled are terminal.
var transitions = map[string][]string{
	StatusPlaced:        {StatusAccepted, StatusCancelled},
	StatusAccepted:      {StatusInPreparation, StatusCancelled},
	StatusInPreparation: {StatusReady},
	StatusReady:         {StatusDelivered},
	StatusDelivered:     {},
	StatusCancelled:     {},
}

// IsStatus reports whether s is a known status name
func IsStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// NextStatuses returns the statuses that may legally follow from
func NextStatuses(from string) []string {
	return transitions[from]
}

// CanTransition validates a single step of the lifecycle
func CanTransition(from, to string) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return domain.ErrInvalidTransition
}
