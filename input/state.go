package input

// Parser capacities, fixed by the wire formats handled
const (
	maxParms           = 32  // CSI parameters kept per sequence, extras dropped
	maxPendingReleases = 16  // keys with an auto-release in flight
	maxKeyCode         = 256 // held-key bitmap range
)

// parserState tracks where the escape-sequence parser is within a sequence
type parserState uint8

const (
	stateGround parserState = iota // No sequence in progress, bytes are keys
	stateEsc                       // Got ESC, awaiting introducer or timeout
	stateSS3                       // Got ESC O, awaiting function-key byte
	stateCSI                       // Got ESC [, accumulating parameters
)
