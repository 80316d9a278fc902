package resource

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// ordinals is the process-wide ordinal source. Every Resource gets a
// unique, strictly increasing ordinal at creation; the ordinal defines
// the global acquisition order.
var ordinals atomic.Uint64

// Resource is a named mutual-exclusion handle for one piece of shared
// hardware. Resources live for the whole process; they are never
// destroyed while workers may still acquire them.
type Resource struct {
	name string
	ord  uint64
	mu   sync.Mutex
}

// New creates a resource and assigns its acquisition ordinal.
func New(name string) *Resource {
	return &Resource{
		name: name,
		ord:  ordinals.Add(1),
	}
}

// Name returns the resource name.
func (r *Resource) Name() string { return r.name }

// Ordinal returns the fixed position of this resource in the global
// acquisition order.
func (r *Resource) Ordinal() uint64 { return r.ord }

// With acquires a and b in ascending ordinal order regardless of argument
// order, runs fn while holding both, and releases both on every exit path
// including a panic in fn.
func With(a, b *Resource, fn func()) {
	if a.ord > b.ord {
		a, b = b, a
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	b.mu.Lock()
	defer b.mu.Unlock()

	fn()
}

// WithAll generalizes With to any number of resources: the requested set is
// sorted by ordinal before acquisition, so every caller walks the same
// global order. Duplicate handles are acquired once. Release is guaranteed
// on every exit path.
func WithAll(rs []*Resource, fn func()) {
	sorted := make([]*Resource, len(rs))
	copy(sorted, rs)
	// Insertion sort: the sets passed here are tiny.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].ord < sorted[j-1].ord; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	locked := 0
	defer func() {
		for i := locked - 1; i >= 0; i-- {
			sorted[i].mu.Unlock()
		}
	}()

	var prev *Resource
	n := 0
	for _, r := range sorted {
		if r == prev {
			continue
		}
		prev = r
		sorted[n] = r
		n++
	}
	sorted = sorted[:n]

	for _, r := range sorted {
		r.mu.Lock()
		locked++
	}

	fn()
}

// unsafeHandoffPause is the deliberate scheduling window between the two
// acquisitions of WithUnordered. Long enough that a context switch is
// likely, short enough that the stress loop still spins quickly.
const unsafeHandoffPause = time.Microsecond

// WithUnordered acquires first then second in exactly the order given,
// with a yield point between the two acquisitions to maximize the chance
// of the interleaving that produces circular wait. Two goroutines calling
// this with opposite argument order will eventually deadlock.
//
// Demonstration and testing only. Never a substitute for With.
func WithUnordered(first, second *Resource, fn func()) {
	first.mu.Lock()
	defer first.mu.Unlock()

	// Invite a context switch while holding exactly one lock.
	time.Sleep(unsafeHandoffPause)
	runtime.Gosched()

	second.mu.Lock()
	defer second.mu.Unlock()

	fn()
}
