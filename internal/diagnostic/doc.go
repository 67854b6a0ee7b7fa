// Package diagnostic collects per-type errors and warnings raised while
// preparing cube/roll generation, so that one run reports every problem at
// once instead of stopping at the first.
//
// Key capabilities:
//   - Error codes derived from the introspection sentinel errors
//   - Field-level warnings (e.g., variant not usable as a map key)
//   - Combined error preserving errors.Is against every collected cause
package diagnostic
