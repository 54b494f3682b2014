// Package errs provides standardized error types for the tableside application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes generic error types for common scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//
// and domain error types for the order/table coordination core:
//   - ScopeViolationError: cross-tenant access attempt
//   - ItemUnavailableError: menu item missing or disabled at order time
//   - IllegalTransitionError: non-adjacent or unauthorized status change
//   - TableOccupiedError: check-in race loser
//   - OrderLockedError: line-item mutation after the order left "placed"
//   - StorageUnavailableError: persistence failure, retriable by gateways
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrTableOccupied)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// This standardized approach lets gateways classify failures with errors.Is
// and map them to transport-level responses without string matching.
package errs
