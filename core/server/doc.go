// Package server holds the HTTP server configuration: listen port,
// session signing secret, the two built-in accounts (read-only lookups
// and write access for marking roster rows), and the optional
// self-heartbeat settings.
package server
