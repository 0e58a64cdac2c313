package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hatchlab/hatchery-backend/models"
)

// ErrNotFound is returned when a lookup target does not exist. It is a
// client error, not a system fault.
var ErrNotFound = errors.New("not found")

// ValidationError is a structured rejection of a request, carrying one
// or more human-readable reasons. Always recoverable and surfaced to
// the requester.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Reasons, "; ")
}

func newValidationError(reasons ...string) *ValidationError {
	return &ValidationError{Reasons: reasons}
}

// AsValidation unwraps a ValidationError if err carries one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// ScheduleConflict describes one active schedule a candidate collides
// with: the shared days and the overlapping slice of the date ranges.
type ScheduleConflict struct {
	Schedule     models.Schedule `json:"schedule"`
	OverlapDays  []string        `json:"overlap_days"`
	OverlapStart string          `json:"overlap_start"`
	OverlapEnd   string          `json:"overlap_end"`
}

// ConflictError refuses a schedule activation, enumerating every
// conflicting active schedule.
type ConflictError struct {
	Name      string
	Conflicts []ScheduleConflict
}

func (e *ConflictError) Error() string {
	parts := []string{fmt.Sprintf("cannot activate schedule %q due to conflicts:", e.Name)}
	for _, c := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("conflicts with %q on %s from %s to %s",
			c.Schedule.Name, strings.Join(c.OverlapDays, ", "), c.OverlapStart, c.OverlapEnd))
	}
	return strings.Join(parts, " ")
}

// AsConflict unwraps a ConflictError if err carries one.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
