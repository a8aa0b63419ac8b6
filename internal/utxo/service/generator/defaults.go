package generator

import "time"

const (
	defaultWindowSize uint64 = 1000
	defaultFlushSize         = 10_000

	windowQueueSize    = 2
	flushInterval      = 5 * time.Second
	flushRatePerSecond = 20
)
