// Package errs provides standardized error types for the marketplace application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Each error kind follows the same shape:
//   - A sentinel error variable (e.g. ErrObjectNotFound) used with errors.Is
//   - A struct type carrying the error details
//   - Constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() pointing at the sentinel
//
// The kinds cover the failure taxonomy of the order core: missing entities,
// invalid or missing values, authorization failures, stock shortages, unique
// field collisions, and optimistic concurrency conflicts. The HTTP layer maps
// each sentinel to a transport status code; nothing in the core retries.
package errs
