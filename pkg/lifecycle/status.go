package lifecycle

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Status is where a culture is in its cycle.
type Status string

const (
	StatusPlanted   Status = "planted"
	StatusGrowing   Status = "growing"
	StatusReady     Status = "ready"
	StatusHarvested Status = "harvested"
)

// InitialStatus is assigned to every culture at creation.
const InitialStatus = StatusPlanted

var ErrInvalidStatus = errors.New("invalid status")

var statuses = []Status{StatusPlanted, StatusGrowing, StatusReady, StatusHarvested}

// Statuses returns the vocabulary in cycle order.
func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses)
	return out
}

// ParseStatus validates a raw status coming from a request or a database row.
func ParseStatus(s string) (Status, error) {
	st := Status(normalize(s))
	if !st.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// normalize trims and case-folds raw input. A Caser is stateful, so one is
// built per call.
func normalize(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPlanted, StatusGrowing, StatusReady, StatusHarvested:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

// Transition returns requested when it belongs to the vocabulary. Any status
// may follow any other, backward moves included; current is not inspected.
func Transition(current, requested Status) (Status, error) {
	if !requested.IsValid() {
		return current, fmt.Errorf("%w: %q", ErrInvalidStatus, string(requested))
	}
	return requested, nil
}

// TransitionString is Transition for raw input.
func TransitionString(current Status, requested string) (Status, error) {
	st, err := ParseStatus(requested)
	if err != nil {
		return current, err
	}
	return Transition(current, st)
}
