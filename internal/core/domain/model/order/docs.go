// Package order holds the Order aggregate and its lifecycle state machine.
//
// An order is created in created_pending, gets its package weight and
// dimensions resolved, is approved automatically or by an operator, and is
// then shipped and tracked to a terminal state. The aggregate guards the
// shipping invariants: payment settled (or cash on delivery) and weight and
// dimensions present.
package order
