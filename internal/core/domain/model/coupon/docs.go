// Package coupon models discount codes, their redemption ledger and the
// stable reason codes used when a code is refused.
package coupon
