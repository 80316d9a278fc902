// Package resource provides ordered acquisition of hardware resource locks.
//
// A Resource is a named mutual-exclusion handle (a laser, a positioning
// stage) with a fixed ordinal assigned at creation. With and WithAll acquire
// every requested resource in ascending ordinal order, run the critical
// section and release on every exit path, panics included. Because all
// callers acquire in the same global order, a cycle in the wait-for graph
// cannot form: circular wait, the cheapest of the classical deadlock
// preconditions to break, is impossible by construction.
//
// WithUnordered deliberately violates the ordering rule. It exists only so
// the stress harness can manufacture an observable deadlock and must never
// be used outside tests and demonstrations.
package resource
