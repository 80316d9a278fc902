// Package stress exercises the resource lock coordinator under concurrent
// load.
//
// A Runner drives N workers, each repeating an acquire / trivial critical
// section / release cycle against one pair of resources for a fixed
// iteration count. RunSafe uses the ordered acquisition path and completes
// in time proportional to the iteration count. The unsafe entry points use
// resource.WithUnordered with mixed acquisition orders; a run of those is
// expected to deadlock, which the watchdog surfaces as the terminal
// TimedOutSuspectedDeadlock outcome instead of hanging the caller forever.
//
// Deadlocked workers cannot be aborted: a goroutine blocked in a mutex
// acquire has no cancellation point. The watchdog abandons them and leaves
// process exit to reclaim the stack; the outcome is diagnostic only.
package stress
