// Package listing contains the normalized product ranking model shared by every upstream
// integration.
//
// Key concepts:
//   - Listing: one ranked product record, immutable once built
//   - Batch: the outcome of a single adapter call (ok, fallback or configuration error)
//   - Price text: display-ready, Korean formatted, never a raw number
package listing
