// Package errors defines error types for the pingpong exchange.
//
// This package provides structured error types that wrap the different
// failure scenarios of a round trip: allocating the pipes, spawning the
// worker, and moving the payload across a pipe. All error types support
// error unwrapping and can be checked using errors.Is, errors.As, and errors.AsType.
package errors
