// Package services contains the stateless and in-memory domain services
// the dispatch flow is built from.
//
// GeoIndex answers spatial queries over the fleet: the nearest store for
// a customer and the ranked available couriers in a zone. ETACalculator
// turns zones and a service mode into the delivery window promised at
// assignment time. DispatchLedger is the authoritative record of courier
// availability and the single place reservation races are decided.
package services
