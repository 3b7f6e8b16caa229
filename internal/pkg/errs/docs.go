// Package errs holds the error kinds shared by the fulfillment core.
//
// Every kind is a sentinel plus a struct that unwraps to it, so callers
// classify with errors.Is and read details with errors.As:
//
//	if errors.Is(err, errs.ErrObjectNotFound) { ... }
//
// ObjectNotFoundError, ValueIsInvalidError, ValueIsOutOfRangeError and
// ValueIsRequiredError cover lookups and input checks. VersionIsInvalidError
// is an optimistic update that lost to a concurrent writer.
// InvariantViolationError is a business rule that blocks the operation.
// ExternalServiceError wraps a carrier, catalog or messaging failure.
//
// Constructors that validate several fields return them through errors.Join.
package errs
