// Package fleet contains the domain model for the delivery fleet: partner
// stores (immutable reference data loaded at startup) and couriers (status
// bearing aggregates owned by the dispatch ledger).
//
// Courier status follows a strict transition graph:
//
//	available ──> reserved ──> busy ──> available
//	     │            │                    ▲
//	     │            └────────────────────┘
//	     └──> offline ──> available
//
// Only the dispatch ledger mutates courier status; everything else reads
// snapshots. The available→reserved transition is the atomicity boundary
// that prevents double-booking a courier between concurrent assignments.
package fleet
