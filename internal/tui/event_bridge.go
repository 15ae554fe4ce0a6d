package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/pathq/internal/query"
)

// QueryEventMsg wraps a query.Event for use as a tea.Msg.
type QueryEventMsg struct {
	Event query.Event
}

// EventBridge adapts query events to bubble tea messages.
// It implements query.EventEmitter and provides a channel for TUI consumption.
// The query runs on its own goroutine, so Emit and Close may race; the mutex
// keeps a late Emit from sending on the closed channel.
type EventBridge struct {
	mu        sync.Mutex
	eventChan chan tea.Msg
	closed    bool
}

// NewEventBridge creates a new event bridge.
func NewEventBridge() *EventBridge {
	return &EventBridge{
		eventChan: make(chan tea.Msg, 100), // Buffer to prevent blocking the query
	}
}

// Emit implements query.EventEmitter.
// It wraps the event in QueryEventMsg and sends to the channel.
func (b *EventBridge) Emit(event query.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	// Non-blocking send so a stalled TUI never stalls the traversal
	select {
	case b.eventChan <- QueryEventMsg{Event: event}:
	default:
		// Channel full, event dropped
	}
}

// Subscribe returns the event channel for receiving events.
func (b *EventBridge) Subscribe() <-chan tea.Msg {
	return b.eventChan
}

// ListenCmd returns a tea.Cmd that blocks until an event is received.
// Use this in Init() or after processing an event to continue listening.
func (b *EventBridge) ListenCmd() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-b.eventChan
		if !ok {
			return nil // Channel closed
		}
		return msg
	}
}

// Close closes the event channel. Safe to call while an emitter is still
// running; subsequent emits are dropped.
func (b *EventBridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.closed {
		b.closed = true
		close(b.eventChan)
	}
}
