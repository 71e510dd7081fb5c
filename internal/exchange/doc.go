// Package exchange implements the round trip between an initiator and a
// responder.
//
// SpawnAndRun allocates the fwd and back pipes, starts a worker through a
// config.Spawner, and drives the initiator side with RunInitiator. The worker,
// wherever it runs, drives the responder side with RunResponder.
//
// Initiator:
//
//	INIT -> ENDPOINTS_TRIMMED -> SENT -> WAIT_FOR_CHILD -> RECEIVED -> CHANNEL_CLOSED -> TERMINATED
//
// Responder:
//
//	INIT -> ENDPOINTS_TRIMMED -> RECEIVED -> SENT -> CHANNEL_CLOSED -> TERMINATED
//
// Each transition is logged at debug level with a "state" attribute.
package exchange
