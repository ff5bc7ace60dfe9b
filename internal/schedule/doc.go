// Package schedule translates a validated precedence graph into a solver
// model, drives the engine's time-limited search, collects the feasible
// schedules streamed back through the solution callback, and shapes the
// best of them for serialization and chart rendering.
package schedule
