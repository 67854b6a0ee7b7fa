// Package match provides fuzzy identifier matching used to suggest type names
// when a requested record type cannot be found.
//
// Key functions:
//   - NormalizeIdent: case-folds and strips separators
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks known names by similarity to a requested one
package match
