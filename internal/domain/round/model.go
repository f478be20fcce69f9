package round

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	StatusSetup     = "SETUP"
	StatusOpen      = "OPEN"
	StatusClosed    = "CLOSED"
	StatusCompleted = "COMPLETED"
)

var ErrInvalidTransition = errors.New("invalid round transition")

// Round groups fixtures into one scored batch. Status only moves forward
// through the SETUP -> OPEN -> CLOSED -> COMPLETED chain.
type Round struct {
	ID        string
	Name      string
	Status    string
	Deadline  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusSetup
	}
	return status
}

func IsTerminalStatus(status string) bool {
	return NormalizeStatus(status) == StatusCompleted
}

// next returns the only status reachable from the given one.
func next(status string) (string, bool) {
	switch NormalizeStatus(status) {
	case StatusSetup:
		return StatusOpen, true
	case StatusOpen:
		return StatusClosed, true
	case StatusClosed:
		return StatusCompleted, true
	default:
		return "", false
	}
}

// ValidateTransition checks a lifecycle move against the chain and its guards.
// SETUP -> OPEN additionally requires a deadline to have been set.
func ValidateTransition(r Round, target string) error {
	target = NormalizeStatus(target)
	expected, ok := next(r.Status)
	if !ok || expected != target {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, NormalizeStatus(r.Status), target)
	}
	if target == StatusOpen && r.Deadline == nil {
		return fmt.Errorf("%w: round %s has no deadline", ErrInvalidTransition, r.ID)
	}
	return nil
}
