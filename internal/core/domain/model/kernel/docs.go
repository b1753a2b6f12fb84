// Package kernel contains the shared value objects of the domain model:
// identifiers (UUID), monetary amounts (Money), and delivery destinations
// (Address with optional GeoPoint coordinates).
//
// All kernel types are immutable value objects constructed through factory
// functions that validate their invariants. Zero values are invalid where a
// constructor exists and fail Validate().
package kernel
