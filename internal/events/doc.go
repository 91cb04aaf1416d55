// Package events carries domain events from the directory to interested
// components without coupling them.
//
// The directory emits an Event after every successful mutation (an entity
// created, a student enrolled or withdrawn, a teacher assigned, attendance
// recorded, a grade assigned). Handlers such as the metrics recorder and
// the audit log subscribe through EventHandler.
//
// The primary components are:
// - Event: a typed, JSON-encoded record of what happened
// - EventHandler: interface for components that can handle events
// - EventEmitter: interface for components that can emit events
package events
