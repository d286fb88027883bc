package statemachine

import (
	"fmt"

	"food-ordering-api/models"
)

// Transition defines a forward step of the order lifecycle
type Transition struct {
	From models.OrderStatus `json:"from"`
	To   models.OrderStatus `json:"to"`
}

// sequence is the conventional order of statuses walked by the dashboard.
var sequence = []models.OrderStatus{
	models.StatusPending,
	models.StatusConfirmed,
	models.StatusPreparing,
	models.StatusReady,
	models.StatusOutForDelivery,
	models.StatusDelivered,
}

var terminal = map[models.OrderStatus]bool{
	models.StatusDelivered: true,
	models.StatusCancelled: true,
}

// validTransitions is built from the sequence plus a cancel edge from every
// non-terminal state.
var validTransitions = func() []Transition {
	var ts []Transition
	for i := 0; i < len(sequence)-1; i++ {
		ts = append(ts, Transition{From: sequence[i], To: sequence[i+1]})
		ts = append(ts, Transition{From: sequence[i], To: models.StatusCancelled})
	}
	return ts
}()

var transitionMap = func() map[Transition]bool {
	m := make(map[Transition]bool, len(validTransitions))
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

// Valid reports whether s is a member of the status enum.
func Valid(s models.OrderStatus) bool {
	if s == models.StatusCancelled {
		return true
	}
	for _, v := range sequence {
		if v == s {
			return true
		}
	}
	return false
}

// AllStatuses lists every status, lifecycle order first, cancelled last.
func AllStatuses() []models.OrderStatus {
	out := make([]models.OrderStatus, 0, len(sequence)+1)
	out = append(out, sequence...)
	return append(out, models.StatusCancelled)
}

// IsTerminal reports whether s ends the lifecycle.
func IsTerminal(s models.OrderStatus) bool { return terminal[s] }

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransition checks the strict lifecycle: one step forward, or cancel
// from a non-terminal state.
func CanTransition(from, to models.OrderStatus) error {
	if transitionMap[Transition{From: from, To: to}] {
		return nil
	}
	return fmt.Errorf("invalid transition: %s → %s. Valid transitions from %s are: %s",
		from, to, from, describeValidFrom(from))
}

func describeValidFrom(status models.OrderStatus) string {
	if IsTerminal(status) {
		return "none (terminal state)"
	}
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (unknown state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}

// TerminalStatuses lists statuses with no outgoing transitions.
func TerminalStatuses() []models.OrderStatus {
	var out []models.OrderStatus
	for _, st := range AllStatuses() {
		if IsTerminal(st) {
			out = append(out, st)
		}
	}
	return out
}
