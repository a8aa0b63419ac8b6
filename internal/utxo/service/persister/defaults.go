package persister

import "time"

const (
	defaultWorkerCount = 1

	defaultRetryInitialInterval = 500 * time.Millisecond
	defaultRetryMaxInterval     = 10 * time.Second
	defaultMaxRetries           = 5

	// LabelSeparator joins labels of merged entities.
	LabelSeparator = "+"
)
