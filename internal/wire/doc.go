// Package wire defines the fixed-size payload exchanged between the
// initiator and the responder.
//
// A payload is exactly PayloadWidth raw bytes holding one Value in the
// platform's native byte order. There is no framing, header, or version:
// both roles read and write the same width, so they must agree on this
// package's constants.
package wire
