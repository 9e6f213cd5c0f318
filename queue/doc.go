// Package queue provides the discrete-event simulation engine for a single
// multi-class queueing node: several patient classes arrive according to
// class-specific exponential processes and compete for one shared bank of
// identical servers, first-come-first-served.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - customer.go: Customer lifecycle (waiting → in_service → completed)
//   - event.go: Event types that drive the simulation (Arrival, ServiceCompletion)
//   - simulator.go: The event heap and the event loop
//
// Supporting pieces:
//   - servers.go: the fixed server bank with busy-time accounting
//   - distribution.go: seeded Exponential / ShiftedExponential samplers
//   - estimator.go: class parameters estimated from historical stay records
//   - metrics.go: utilisation and steady-state system-time tables
//
// A run is strictly single-goroutine. Independent runs with their own
// Simulator instances may execute concurrently; see the replicate
// sub-package for fan-out of many scenarios.
package queue
