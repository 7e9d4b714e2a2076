package tablesim

import (
	"errors"
)

var ErrTooFewPhilosophers = errors.New("at least two philosophers are required")
var ErrNoServings = errors.New("every philosopher needs at least one serving")
var ErrInvalidThinkDelay = errors.New("think delay bounds must be positive and ordered")
var ErrInvalidDineDelay = errors.New("dine delay bounds must be positive and ordered")
var ErrInvalidAcquireTimeout = errors.New("acquire timeout must be positive")
var ErrInvalidRetryDelay = errors.New("retry delay must be positive")
var ErrInvalidPollInterval = errors.New("supervisor poll interval must be positive")
var ErrBrokenRing = errors.New("fork ring is not fully connected")
var ErrInvalidFeedCapacityHint = errors.New("feed capacity hint must not be negative")
var ErrTableAlreadyRunning = errors.New("table run was already started")
var ErrFeedDrained = errors.New("event feed is closed and fully drained")

// NoOwner is the owner value of a fork that is not held by any philosopher.
const NoOwner = -1
