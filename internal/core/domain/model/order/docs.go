// Package order provides the Order aggregate root and its lifecycle state
// machine for the tableside coordination core.
//
// The package includes:
//   - Order: the aggregate root owning line items, the derived total, and the status
//   - Status: a forward-only state machine with role-gated transitions
//   - LineItem: a value object carrying the immutable unit-price snapshot
//
// Key business rules:
//   - Orders are created with at least one line item and status "placed"
//   - Status follows placed -> preparing -> ready -> served -> completed with
//     no skipping and no regression; payment may also fire from "ready"
//   - Each transition edge is owned by a single actor role
//   - Line items freeze once the order leaves "placed"
//   - The total is always derived from the lines, never stored authority
package order
