// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package msgq provides MessageQueue, a blocking multi-producer,
// multi-consumer handoff, with pluggable containers and post hooks.
//
// The default container is the unbounded FIFO, which allocates. For
// allocation-free steady-state operation build the queue with
// WithCapacity(n), sized for the worst-case backlog:
//
//	q := msgq.New[Reading](msgq.WithCapacity[Reading](64))
package msgq
