package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the order's internal lifecycle state.
//
// State transitions:
//
//	created_pending ──┬──> needs_manual_verification ──┐
//	                  └────────────────────────────────┴──> approved ──┬──> shipped ──> in_transit ──> out_for_delivery ──> delivered
//	                                                                    ├──> rejected                                              │
//	                                                                    └──> cancelled <── (any state before delivered)            │
//	                                                                                     delivered ──> return_initiated ──> returned
//	                                                                                     delivered ──────────────────────> returned
//
// shipped, in_transit and out_for_delivery are driven by the carrier tracking feed.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota
	CreatedPending
	NeedsManualVerification
	Approved
	Shipped
	InTransit
	OutForDelivery
	Delivered
	Cancelled
	Rejected
	ReturnInitiated
	Returned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                 "unknown",
		CreatedPending:          "created_pending",
		NeedsManualVerification: "needs_manual_verification",
		Approved:                "approved",
		Shipped:                 "shipped",
		InTransit:               "in_transit",
		OutForDelivery:          "out_for_delivery",
		Delivered:               "delivered",
		Cancelled:               "cancelled",
		Rejected:                "rejected",
		ReturnInitiated:         "return_initiated",
		Returned:                "returned",
	}
}

// getTransitions lists, for every state, the states it may move to.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal states have no outgoing transitions
	return map[Status][]Status{
		CreatedPending:          {NeedsManualVerification, Approved, Cancelled},
		NeedsManualVerification: {Approved, Cancelled},
		Approved:                {Shipped, Cancelled, Rejected},
		Shipped:                 {InTransit, Cancelled},
		InTransit:               {OutForDelivery, Cancelled},
		OutForDelivery:          {Delivered, Cancelled},
		Delivered:               {ReturnInitiated, Returned},
		ReturnInitiated:         {Returned},
	}
}

// ParseStatus converts the persisted/wire name back into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s <= Unknown || s > Returned {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name used in storage, mirrors and notifications.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the order has reached an end state. Delivered is
// included even though a return may still follow it.
func (s Status) IsTerminal() bool {
	switch s { //nolint:exhaustive // only end states listed
	case Delivered, Cancelled, Rejected, Returned:
		return true
	default:
		return false
	}
}

// IsPreDelivery reports whether the order can still be cancelled.
func (s Status) IsPreDelivery() bool {
	switch s { //nolint:exhaustive // only pre-delivery states listed
	case CreatedPending, NeedsManualVerification, Approved, Shipped, InTransit, OutForDelivery:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range getTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo returns next if the move is allowed.
//
// Returns:
//   - (next, nil) on a valid transition
//   - (0, error) otherwise
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return 0, err
	}
	if !s.CanTransitionTo(next) {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s cannot transition to %s", s.String(), next.String()),
		)
	}
	return next, nil
}
