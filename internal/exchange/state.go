package exchange

// State is a step of the round trip in one role.
type State string

const (
	StateInit             State = "INIT"
	StateEndpointsTrimmed State = "ENDPOINTS_TRIMMED"
	StateSent             State = "SENT"
	StateWaitForChild     State = "WAIT_FOR_CHILD"
	StateReceived         State = "RECEIVED"
	StateChannelClosed    State = "CHANNEL_CLOSED"
	StateTerminated       State = "TERMINATED"
)
