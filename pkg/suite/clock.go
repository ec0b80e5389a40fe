package suite

import "time"

// Clock starts stopwatches for suites and tests
type Clock interface {
	Start() (Stopwatch, error)
}

// Stopwatch reports the time elapsed since it was started
type Stopwatch interface {
	Elapsed() time.Duration
}

type systemClock struct{}

type monotonicStopwatch struct {
	start time.Time
}

// SystemClock returns a clock backed by the monotonic reading of time.Now
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Start() (Stopwatch, error) {
	return monotonicStopwatch{start: time.Now()}, nil
}

func (s monotonicStopwatch) Elapsed() time.Duration {
	return time.Since(s.start)
}

type stoppedStopwatch struct{}

func (stoppedStopwatch) Elapsed() time.Duration { return 0 }

// startOrZero starts a stopwatch, falling back to one that always reads zero
func startOrZero(c Clock) Stopwatch {
	sw, err := c.Start()
	if err != nil || sw == nil {
		return stoppedStopwatch{}
	}
	return sw
}
