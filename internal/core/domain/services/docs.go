// Package services holds stateless domain services that combine several
// aggregates or value objects:
//   - PackageAggregator: parcel weight and box size from resolved order lines
//   - DiscountCalculator: coupon discount amount
//   - CouponPolicy: ordered coupon eligibility rules with stable reason codes
//   - ApprovalPolicy: auto-approval gates
//
// None of them perform I/O; callers load the inputs and persist the results.
package services
