package scheduler

import "errors"

// ErrInvalidConfig is returned by Start when the sweeper configuration is unusable
var ErrInvalidConfig = errors.New("invalid overdue sweeper configuration")
