package slicekit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/slicekit/fixture"
	"github.com/hupe1980/slicekit/stress"
)

func TestNewDefaults(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	isa, width := engine.KernelInfo()
	assert.NotEmpty(t, isa)
	assert.Contains(t, []int{1, 8}, width)
}

func TestNewInvalidWorkers(t *testing.T) {
	_, err := New(WithStressWorkers(-2))
	require.ErrorIs(t, err, ErrInvalidWorkers)
}

func TestScanOverlaps(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	engine, err := New(WithMetrics(metrics))
	require.NoError(t, err)

	mins := []float32{0, 5, 9}
	maxs := []float32{2, 6, 10}

	vec, err := engine.ScanOverlaps(mins, maxs, 5.5)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), vec)

	scalar, err := engine.ScanOverlapsScalar(mins, maxs, 5.5)
	require.NoError(t, err)
	assert.Equal(t, vec, scalar)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.ScanCount)
	assert.Equal(t, int64(0), stats.ScanErrors)
	assert.Equal(t, int64(6), stats.ScanElements)
}

func TestScanOverlapsLengthMismatch(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	engine, err := New(WithMetrics(metrics))
	require.NoError(t, err)

	_, err = engine.ScanOverlaps([]float32{0, 1}, []float32{9}, 5)
	var lm *ErrLengthMismatch
	require.ErrorAs(t, err, &lm)
	assert.Equal(t, 2, lm.Mins)
	assert.Equal(t, 1, lm.Maxs)

	_, err = engine.ScanOverlapsScalar([]float32{0, 1}, []float32{9}, 5)
	require.ErrorAs(t, err, &lm)

	_, err = engine.ScanOverlapSet([]float32{0, 1}, []float32{9}, 5)
	require.ErrorAs(t, err, &lm)

	assert.Equal(t, int64(2), metrics.GetStats().ScanErrors)
}

func TestScanOverlapSet(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	set, err := engine.ScanOverlapSet([]float32{0, 5, 9}, []float32{2, 6, 10}, 5.5)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), set.GetCardinality())
	assert.True(t, set.Contains(1))
}

func TestScanWithConcurrencyLimit(t *testing.T) {
	engine, err := New(WithMaxConcurrentScans(1))
	require.NoError(t, err)

	b := fixture.Generate(1003, 3, 0.5)
	for i := 0; i < 4; i++ {
		_, err := engine.ScanOverlaps(b.Mins, b.Maxs, 5)
		require.NoError(t, err)
	}
}

func TestRunSafeStress(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	engine, err := New(WithMetrics(metrics), WithStressWorkers(4))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	require.NoError(t, engine.RunSafeStress(ctx, 25000))

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.StressCount)
	assert.Equal(t, int64(0), stats.StressDeadlocks)
}

func TestRunSafeStressInvalidIterations(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	require.ErrorIs(t, engine.RunSafeStress(context.Background(), 0), ErrInvalidIterations)
}

func TestWatchUnsafeStress(t *testing.T) {
	if testing.Short() {
		t.Skip("leaks deadlocked goroutines")
	}

	metrics := &BasicMetricsCollector{}
	engine, err := New(
		WithMetrics(metrics),
		WithStressTimeout(2*time.Second),
	)
	require.NoError(t, err)

	outcome, err := engine.WatchUnsafeStress(100000)
	require.NoError(t, err)

	// Deadlock depends on scheduler interleaving; a lucky completion is
	// possible, never a hang.
	assert.Contains(t, []stress.Outcome{stress.Completed, stress.TimedOutSuspectedDeadlock}, outcome)
	assert.Equal(t, int64(1), metrics.GetStats().StressCount)
}

func TestWatchUnsafeStressInvalidIterations(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	_, err = engine.WatchUnsafeStress(-1)
	require.ErrorIs(t, err, ErrInvalidIterations)
}

func BenchmarkScanOverlaps(b *testing.B) {
	engine, err := New()
	if err != nil {
		b.Fatal(err)
	}
	batch := fixture.Generate(1_000_000, 1, 0.1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.ScanOverlaps(batch.Mins, batch.Maxs, 5.0); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkScanOverlapsScalar(b *testing.B) {
	engine, err := New()
	if err != nil {
		b.Fatal(err)
	}
	batch := fixture.Generate(1_000_000, 1, 0.1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.ScanOverlapsScalar(batch.Mins, batch.Maxs, 5.0); err != nil {
			b.Fatal(err)
		}
	}
}
