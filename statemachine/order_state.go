package statemachine

import (
	"errors"
	"strings"

	"hostel-shop-api/models"
)

// Transition defines a state change of the guest order lifecycle
type Transition struct {
	From models.OrderStatus `json:"from"`
	To   models.OrderStatus `json:"to"`
}

// validTransitions is the documented lifecycle. Status updates are not
// rejected when they fall outside it; see services.OrderService.UpdateStatus.
var validTransitions = []Transition{
	// Staff accepts the order
	{From: models.StatusPending, To: models.StatusConfirmed},
	{From: models.StatusPending, To: models.StatusCancelled},
	// Delivered to the room
	{From: models.StatusConfirmed, To: models.StatusCompleted},
	{From: models.StatusConfirmed, To: models.StatusCancelled},
}

var knownStatuses = []models.OrderStatus{
	models.StatusPending,
	models.StatusConfirmed,
	models.StatusCompleted,
	models.StatusCancelled,
}

type transitionKey struct {
	From models.OrderStatus
	To   models.OrderStatus
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To}] = true
	}
	return m
}()

// IsKnown reports whether status is one of the four lifecycle states.
func IsKnown(status models.OrderStatus) bool {
	for _, s := range knownStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// KnownStatuses returns the lifecycle states in lifecycle order.
func KnownStatuses() []models.OrderStatus {
	return append([]models.OrderStatus(nil), knownStatuses...)
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	nexts := []models.OrderStatus{}
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

func IsTerminal(status models.OrderStatus) bool {
	return IsKnown(status) && len(ValidTransitionsFrom(status)) == 0
}

// CanTransition checks the lifecycle table for from -> to
func CanTransition(from, to models.OrderStatus) error {
	if transitionMap[transitionKey{From: from, To: to}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " → " + string(to) +
			". Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
