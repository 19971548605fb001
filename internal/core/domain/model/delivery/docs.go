// Package delivery contains the delivery lifecycle domain model.
//
// The central aggregates are DeliveryState, which tracks an order's
// progress through the delivery status machine, and Assignment, which
// binds an order to the courier and store serving it together with the
// promised ETA window.
//
// Status flow for instant deliveries:
//
//	assigned ──> picked_up ──> in_transit ──> arrived ──> delivered
//
// Home trial deliveries insert a trial window after pickup:
//
//	assigned ──> picked_up ──> trial_wait ──> in_transit ──> arrived ──> delivered
//
// Any non-terminal status may transition to cancelled. Delivered and
// cancelled are terminal.
package delivery
