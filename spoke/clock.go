package spoke

import "time"

// Clock returns the unix time in seconds used for every deadline check of a call.
type Clock interface {
	Now() uint32
}

type SystemClock struct{}

func (SystemClock) Now() uint32 {
	// nolint:gosec
	return uint32(time.Now().Unix())
}
