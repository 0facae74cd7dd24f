package engine

import "time"

// Options represents configuration options for the Engine.
type Options struct {
	SnapshotInterval     time.Duration
	SnapshotCommandDelta int64
	ExpirySweepInterval  time.Duration
	DepthLevels          int
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		SnapshotInterval:     30 * time.Second,
		SnapshotCommandDelta: 1000,
		ExpirySweepInterval:  time.Second,
		DepthLevels:          10,
	}
}
