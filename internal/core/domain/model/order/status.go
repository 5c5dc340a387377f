package order

import (
	"fmt"
	"strings"

	"movers/internal/pkg/errs"
)

type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	Confirmed
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Confirmed: "confirmed",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// ParseStatus is the inverse of String for every valid status.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

func (s Status) Confirm() (Status, error) {
	if s != Pending {
		return s, errs.NewInvalidTransitionError(s.String(), Confirmed.String())
	}
	return Confirmed, nil
}

func (s Status) Complete() (Status, error) {
	if s != Confirmed {
		return s, errs.NewInvalidTransitionError(s.String(), Completed.String())
	}
	return Completed, nil
}

func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Confirmed {
		return s, errs.NewInvalidTransitionError(s.String(), Cancelled.String())
	}
	return Cancelled, nil
}
