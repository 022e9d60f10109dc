package timer

import "time"

// Clock supplies the current time in epoch milliseconds. The timer never
// reads the wall clock directly so tests can drive it deterministically.
type Clock interface {
	NowMillis() int64
}

type systemClock struct{}

func (systemClock) NowMillis() int64 {
	return time.Now().UnixMilli()
}

// SystemClock returns the wall-clock implementation used in production.
func SystemClock() Clock {
	return systemClock{}
}
