package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kingrain94/tenancy-api/internal/saga"
)

var (
	// Caller errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("unauthorized")

	// ErrUpstreamFailure means the store or the identity provider failed;
	// the request may be retried.
	ErrUpstreamFailure = errors.New("upstream failure")

	// ErrPartiallyRolledBack means a failed provisioning could not undo all
	// of its work. An operator has to clean up the reported orphans.
	ErrPartiallyRolledBack = errors.New("provisioning partially rolled back")

	// ErrAmbiguousRole is returned when membership and role records disagree
	ErrAmbiguousRole = errors.New("ambiguous role state")
)

func invalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

func conflict(msg string) error {
	return fmt.Errorf("%w: %s", ErrConflict, msg)
}

func upstream(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUpstreamFailure, op, err)
}

// ProvisioningError describes a failed provisioning run.
type ProvisioningError struct {
	Step  string
	State saga.State
	Cause error

	// CompensationErr and Orphans are set when State is partially_rolled_back
	CompensationErr error
	Orphans         []string
}

func (e *ProvisioningError) Error() string {
	msg := fmt.Sprintf("provisioning failed at %s: %v", e.Step, e.Cause)
	if e.PartiallyRolledBack() {
		msg += fmt.Sprintf("; rollback incomplete, orphaned: %s", strings.Join(e.Orphans, ", "))
	}
	return msg
}

func (e *ProvisioningError) PartiallyRolledBack() bool {
	return e.State == saga.StatePartiallyRolledBack
}

func (e *ProvisioningError) Unwrap() []error {
	if e.PartiallyRolledBack() {
		return []error{ErrPartiallyRolledBack, e.Cause}
	}
	return []error{e.Cause}
}
