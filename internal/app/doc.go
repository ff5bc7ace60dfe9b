// Package app wires the application together: it loads the plan, builds the
// precedence graph and the scheduling model, drives the engine, and writes
// one record and one chart artifact per retained solution. It owns the
// logger and the top-level success/failure reporting.
package app
