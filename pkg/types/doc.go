// Package types defines the task tree data model (Task, Category, State),
// the actions that advance it, the Snapshotter interface for persistence
// backends, and the standard error values shared across tasktree.
//
// State values are treated as immutable. Functions that produce a new State
// copy every level they touch and share the rest.
package types
