// Package graph builds a validated precedence graph from a project plan.
// Construction fails if a dependency names a task that does not exist or if
// the dependency edges form a cycle; a graph that builds successfully is
// acyclic and carries a deterministic topological order of its tasks.
package graph
