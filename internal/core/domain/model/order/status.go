package order

import (
	"fmt"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a strictly
// forward-only state machine modeling the physical kitchen pipeline:
//
//	Placed ──> Preparing ──> Ready ──┬──> Served ──> Completed
//	                                 │                  ▲
//	                                 └──────────────────┘
//	                          (payment straight from Ready)
//
// Each edge is additionally gated by the actor role allowed to drive it:
// the kitchen starts and finishes preparation, the waiter serves, and the
// cashier completes. Requesting the status an order is already in is a no-op
// success, which tolerates duplicate retries from polling clients.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status set at order creation. Line items may
	// still be replaced while the order is Placed.
	Placed

	// Preparing indicates the kitchen has started cooking. Line items are
	// locked from here on.
	Preparing

	// Ready indicates the kitchen has finished and the order awaits serving.
	Ready

	// Served indicates the waiter has delivered the order to the table.
	Served

	// Completed indicates payment has been collected. Terminal state.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Placed:    "placed",
		Preparing: "preparing",
		Ready:     "ready",
		Served:    "served",
		Completed: "completed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Placed:    "placed",
		Preparing: "preparing",
		Ready:     "ready",
		Served:    "served",
		Completed: "completed",
	}
}

// StatusFromString parses the canonical lowercase status name used on the
// wire and in storage. Returns an error for anything outside the valid set.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status value is one of the five defined lifecycle
// states. Unknown and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical lowercase name of the status, or "unknown"
// for invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed
}

// transitionGates maps each legal edge to the single role allowed to drive it.
// Ready -> Completed is the cashier collecting payment before an explicit
// serve was recorded; it implies serving.
func transitionGates() map[[2]Status]kernel.Role {
	return map[[2]Status]kernel.Role{
		{Placed, Preparing}: kernel.RoleKitchen,
		{Preparing, Ready}:  kernel.RoleKitchen,
		{Ready, Served}:     kernel.RoleWaiter,
		{Served, Completed}: kernel.RoleCashier,
		{Ready, Completed}:  kernel.RoleCashier,
	}
}

// Advance validates the transition from s to target for the given role and
// returns the resulting status.
//
// Rules:
//   - target == s is an idempotent replay: returns s with no error.
//   - Otherwise the edge (s, target) must exist in the forward-only graph
//     and the role must match its gate.
//   - Everything else fails with IllegalTransitionError and leaves the
//     caller's state untouched.
func (s Status) Advance(target Status, role kernel.Role) (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if err := target.Validate(); err != nil {
		return Unknown, err
	}

	if target == s {
		return s, nil
	}

	gate, ok := transitionGates()[[2]Status{s, target}]
	if !ok || gate != role {
		return Unknown, errs.NewIllegalTransitionError(s.String(), target.String(), role.String())
	}

	return target, nil
}
