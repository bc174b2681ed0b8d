// Package storage wraps the S3-compatible object storage client.
//
// The only consumer is the object-backed roster grid, which keeps the
// credentials roster as a single CSV object and rewrites it on every
// cell update. The Client interface is intentionally narrow (exists,
// get, put) and mocked in storage/mocks for tests.
package storage
