// Package errs defines the error taxonomy shared by all features.
//
// Three error classes cover the failure modes of the service:
//
//   - ConfigError: required configuration is missing. Fatal, not retried.
//   - UpstreamError: the external record API or grid source failed or
//     returned nothing usable. Surfaced with context, no automatic retry.
//   - NotFoundError: a write targeted a row that does not exist.
//
// Handlers map these onto HTTP statuses with errors.As: NotFoundError
// becomes 404, everything else a 500. Column-discovery ambiguity is
// deliberately NOT an error anywhere in the service; sources vary their
// headers, so absence of a column is a legitimate outcome and is
// reported as an absent value instead.
package errs
