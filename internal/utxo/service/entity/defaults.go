package entity

import "time"

const (
	defaultBatchSize       uint64 = 1000
	defaultQueueSize              = 4
	defaultCheckpointEvery        = 50

	restartInitialInterval = 1 * time.Second
	restartMaxInterval     = 1 * time.Minute
)
