// Package middleware groups the Fiber middleware of the service:
// rayid assigns per-request correlation IDs, auth implements the
// session login with read/write roles.
package middleware
