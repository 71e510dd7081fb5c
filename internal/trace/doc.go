// Package trace reports the progress of a round trip for a human reader.
//
// The Observer receives one call per milestone. Printer renders them as the
// indented text trace written to standard output by the pingpong binary;
// Nop discards them. Observers do not take part in the exchange: a failing
// writer never affects the protocol.
package trace
