// Package channel provides the two unidirectional pipes of a round trip and
// the per-role views of their endpoints.
//
// A Pair holds the fwd channel (initiator to responder) and the back channel
// (responder to initiator). Split hands out two capability structs,
// InitiatorEnds and ResponderEnds, each holding exactly one read endpoint and
// one write endpoint. A role never sees an endpoint it does not own, so
// trimming the unused ends is a matter of giving each side its struct and
// closing whatever is handed off.
//
// Endpoints are created close-on-exec. A responder running in a child
// process receives its two endpoints at fixed descriptor numbers
// (ResponderRecvFD and ResponderSendFD) and reopens them with
// InheritedResponderEnds.
package channel
