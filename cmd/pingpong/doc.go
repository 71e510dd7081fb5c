// Package main is the pingpong demo binary.
//
// It creates two pipes, starts itself again as a child process, sends a
// random integer to the child on the first pipe, and reads it back from the
// second. Both processes print a trace of their pid, parent pid, the value
// and the descriptors they used.
//
// Usage:
//
//	# Child process, random value
//	./pingpong
//
//	# Fixed value, debug logs on stderr
//	./pingpong -value 123456 -debug
//
//	# Responder in a goroutine instead of a child process
//	./pingpong -in-process
//
// Exit codes:
//   - 0: the round trip completed, even if the echo differs from the value sent
//   - 2: invalid flags
//   - 255: pipes could not be created, the child could not be started, or
//     the value could not be transferred
package main
