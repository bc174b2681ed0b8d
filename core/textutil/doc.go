// Package textutil provides the text normalization primitives used to
// compare names and column headers across independently-maintained data
// sources.
//
// The upstream billing API and the credentials roster spell the same
// client differently ("García, Juan" vs "JUAN GARCIA"), so all matching
// in the service goes through one of three normal forms:
//
//   - Fold: accent-stripped uppercase, for substring keyword tests.
//   - CollapseKey: accent-stripped lowercase with separators removed,
//     for tolerant header/column-name matching.
//   - TokenSignature: multiset of alphanumeric tokens, for order- and
//     accent-insensitive name equality.
//
// All fuzziness lives in these normal forms; comparison itself is exact.
// There is intentionally no similarity scoring.
package textutil
