// Package combination models the verified combination cache: human-confirmed
// package weight and dimensions for a multiset of (sku, quantity) pairs.
//
// Records are addressed by HashItems and are soft-deleted with Deactivate;
// readers must check IsActive before trusting a record.
package combination
