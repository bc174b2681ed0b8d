// Package grid abstracts the tabular data source holding the
// credentials roster.
//
// Two backends implement the Source interface:
//
//   - grid/sheets: a Google-Sheets-style REST API (values get/update
//     plus a batchUpdate call for clearing row highlights).
//   - grid/object: a CSV object in S3-compatible storage, rewritten
//     whole on every cell update. Formatting calls are no-ops there.
//
// The roster feature is written against Source only; grid/mocks provides
// a testify mock for its tests.
package grid
