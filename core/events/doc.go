// Package events defines the planning events emitted on the event bus.
//
// Available event types:
//   - PlanComputed: a production plan was computed for a request
//   - PlanRejected: a request could not be planned
package events
