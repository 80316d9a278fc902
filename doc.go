// Package slicekit provides the computational kernels of a micro-fabrication
// print pipeline: layer-overlap scanning and hardware lock coordination.
//
// The scanner counts, for a batch of per-triangle z-extents in SoA layout,
// how many closed intervals [mins[i], maxs[i]] contain a layer height. The
// vectorized path is branchless (lane masks combined with a bitwise AND,
// hits accumulated via population count); the scalar path is the
// correctness oracle. Both always return identical counts.
//
// The lock coordinator guards two hardware resources (laser, stage) and
// acquires them in one global ordinal order, which makes circular wait
// impossible. A deliberately unsafe acquisition path and a stress harness
// with a watchdog exist to demonstrate the deadlock the ordered path
// prevents.
//
// # Quick Start
//
//	engine, err := slicekit.New()
//	if err != nil {
//	    panic(err)
//	}
//
//	hits, err := engine.ScanOverlaps(mins, maxs, 5.0)
//
//	// Lock coordination under load; completes in bounded time.
//	err = engine.RunSafeStress(ctx, 100_000)
//
//	// Deadlock demonstration, bounded by the configured watchdog timeout.
//	outcome, err := engine.WatchUnsafeStress(1000)
//	if outcome == stress.TimedOutSuspectedDeadlock {
//	    // circular wait reproduced
//	}
//
// Scanning is pure and safe for concurrent use on independent batches. The
// stress entry points block the calling goroutine for the duration of the
// run; RunUnsafeStress may never return and must be supervised externally.
package slicekit
