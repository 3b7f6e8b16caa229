// Package customer holds the Customer aggregate: lifetime order metrics, a
// trust score clamped to [0,100] and a loyalty tier derived from the order count.
package customer
