package query

import (
	"sync"
	"time"
)

// Event is the interface implemented by all query lifecycle events.
type Event interface {
	isEvent()
}

// EventEmitter is the interface for receiving query lifecycle events.
// Emitting events never changes query results; it only adds observability.
type EventEmitter interface {
	Emit(event Event)
}

// QueryStarted is emitted once when a terminal operation begins driving a
// traversal.
type QueryStarted struct {
	Roots     []string
	Recursive bool
	Filters   int
}

func (QueryStarted) isEvent() {}

// QueryProgress is emitted at a fixed cadence (every N visited entries).
type QueryProgress struct {
	Visited int
	Matched int
}

func (QueryProgress) isEvent() {}

// QueryError is emitted when a root is missing, a directory cannot be
// listed, or a caller-supplied predicate fails on one entry. None of these
// abort the traversal; the offending entry or subtree is skipped.
type QueryError struct {
	Path string
	Err  error
}

func (QueryError) isEvent() {}

// QueryCompleted is emitted once when the traversal finishes or the consumer
// stops pulling through one of the early-terminating operations.
type QueryCompleted struct {
	Visited int
	Matched int
	Elapsed time.Duration
}

func (QueryCompleted) isEvent() {}

// DefaultProgressInterval is the number of visited entries between
// QueryProgress events when no interval is configured.
const DefaultProgressInterval = 1000

// Process-wide default emitter. This is layered configuration, not traversal
// state: a per-query emitter set with Query.Events takes precedence, and the
// default must not be swapped while queries are running.
var (
	defaultEmitterMu sync.RWMutex
	defaultEmitter   EventEmitter
)

// SetDefaultEmitter installs a process-wide emitter used by queries that
// have no per-query emitter. Passing nil removes it.
func SetDefaultEmitter(emitter EventEmitter) {
	defaultEmitterMu.Lock()
	defer defaultEmitterMu.Unlock()
	defaultEmitter = emitter
}

// DefaultEmitter returns the process-wide emitter, or nil if none is set.
func DefaultEmitter() EventEmitter {
	defaultEmitterMu.RLock()
	defer defaultEmitterMu.RUnlock()
	return defaultEmitter
}
