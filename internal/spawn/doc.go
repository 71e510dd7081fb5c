// Package spawn starts the responder side of a round trip.
//
// Process re-executes the current binary as a child process. The child
// receives only its two endpoints, as descriptors 3 and 4, and a
// PINGPONG_ROLE=responder marker in its environment; the initiator closes its
// copies of those endpoints as soon as the child is running.
//
// Goroutine runs the responder inside the initiator process, over the same
// pipes, supervised by an errgroup.
//
// SpawnFunc adapts a plain function, which is how tests inject failures.
package spawn
