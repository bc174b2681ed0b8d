// Package logger provides structured logging based on Zap.
//
// Production deployments log JSON at info level; the console format with
// colored levels is intended for local development and the operator CLI
// commands.
//
// Request handlers use WithRayID to stamp every entry with the request's
// ray ID, set by the rayid middleware, so a lookup and the upstream
// calls it triggered can be correlated in the log stream.
package logger
