// Package events provides types and interfaces for an event-driven architecture.
//
// This package defines event types and handler interfaces that allow for loose coupling
// between components in the system. A suggestion session emits an event every time its
// visible state changes, without knowing which presentation layer consumes it.
//
// The primary components are:
// - StateChangedEvent: A snapshot of a session's visible state after a change
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
