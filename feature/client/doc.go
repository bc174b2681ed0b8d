// Package client resolves external subscriber identifiers (IDA) to
// normalized billing records.
//
// The raw upstream record is a loosely-typed map with inconsistent
// field names; transform.go projects it onto models.Record, deriving
// the onboarding password, extracting an email address out of free
// text when necessary, and normalizing product flags and status.
//
// Lookups are cached per identifier with a TTL+LRU bound, and the HTTP
// handler enriches each record with the roster reconciliation outcome.
package client
