// Package tablesim provides the coordination core of a dining-table
// contention simulation: N philosophers compete for N forks arranged in a
// ring, each philosopher needing its two neighboring forks at once to eat.
//
// The package implements a deadlock-avoiding acquisition protocol and
// surfaces every state transition as a stream of observable events.
//
// Key types:
//   - Fork: exclusive-access primitive with bounded-wait acquisition
//   - Philosopher: independently scheduled actor with a finite serving budget
//   - Feed: unbounded many-producer single-consumer event conduit
//   - Table: composition root, run loop and termination supervisor
//
// Common usage pattern:
//
//	table, err := tablesim.NewTable(tablesim.DefaultConfig())
//	if err != nil {
//		// handle configuration error
//	}
//
//	go func() {
//		_ = table.Run(ctx)
//	}()
//
//	for {
//		envelope, nextErr := table.Feed().Next(ctx)
//		if nextErr != nil {
//			break // feed drained or ctx cancelled
//		}
//		// observe envelope.Event
//	}
package tablesim
