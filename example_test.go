package slicekit_test

import (
	"context"
	"fmt"

	"github.com/hupe1980/slicekit"
)

func Example() {
	engine, err := slicekit.New()
	if err != nil {
		panic(err)
	}

	// Three triangles with z-extents [0,2], [5,6] and [9,10]; only the
	// second one intersects the layer at z=5.5.
	mins := []float32{0, 5, 9}
	maxs := []float32{2, 6, 10}

	hits, err := engine.ScanOverlaps(mins, maxs, 5.5)
	if err != nil {
		panic(err)
	}
	fmt.Println(hits)
	// Output: 1
}

func ExampleEngine_ScanOverlapSet() {
	engine, err := slicekit.New()
	if err != nil {
		panic(err)
	}

	set, err := engine.ScanOverlapSet([]float32{0, 5, 9}, []float32{2, 6, 10}, 5.5)
	if err != nil {
		panic(err)
	}
	fmt.Println(set.ToArray())
	// Output: [1]
}

func ExampleEngine_RunSafeStress() {
	engine, err := slicekit.New(slicekit.WithStressWorkers(2))
	if err != nil {
		panic(err)
	}

	// Ordered acquisition: completes in bounded time, never deadlocks.
	if err := engine.RunSafeStress(context.Background(), 1000); err != nil {
		panic(err)
	}
	fmt.Println("completed")
	// Output: completed
}
