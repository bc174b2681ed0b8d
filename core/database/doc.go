// Package database manages the optional audit database connection.
//
// When configured, every roster write is recorded there so the desk has
// a history of which credentials were handed to which subscriber. The
// service runs fine without it; startup only logs a warning when the
// connection fails. Tests use the sqlite driver with :memory:.
package database
