package slice

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountOverlaps(t *testing.T) {
	tests := []struct {
		name      string
		mins      []float32
		maxs      []float32
		threshold float32
		expected  uint64
	}{
		{"Empty", nil, nil, 5, 0},
		{"Contract example", []float32{0, 5, 9}, []float32{2, 6, 10}, 5.5, 1},
		{"All hit", []float32{0, 1, 2}, []float32{9, 9, 9}, 5, 3},
		{"None hit", []float32{6, 7, 8}, []float32{9, 9, 9}, 5, 0},
		{"Negative threshold", []float32{-10, -4}, []float32{-6, -2}, -3, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			vec, err := CountOverlaps(tc.mins, tc.maxs, tc.threshold)
			require.NoError(t, err)
			scalar, err := CountOverlapsScalar(tc.mins, tc.maxs, tc.threshold)
			require.NoError(t, err)

			assert.Equal(t, tc.expected, vec)
			assert.Equal(t, vec, scalar)
		})
	}
}

func TestCountOverlapsLengthMismatch(t *testing.T) {
	mins := []float32{0, 1, 2}
	maxs := []float32{9, 9}

	_, err := CountOverlaps(mins, maxs, 5)
	var lm *ErrLengthMismatch
	require.ErrorAs(t, err, &lm)
	assert.Equal(t, 3, lm.Mins)
	assert.Equal(t, 2, lm.Maxs)

	_, err = CountOverlapsScalar(mins, maxs, 5)
	require.ErrorAs(t, err, &lm)

	_, err = OverlapSet(mins, maxs, 5)
	require.ErrorAs(t, err, &lm)
}

// Both paths must agree on every density regime and remainder length,
// including a length that is not a multiple of the lane width.
func TestCountOverlapsPathsAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for _, size := range []int{1, 7, 8, 9, 64, 1003} {
		mins := make([]float32, size)
		maxs := make([]float32, size)
		for i := range mins {
			mins[i] = rng.Float32() * 10
			maxs[i] = mins[i] + rng.Float32()
		}
		if size > 2 {
			mins[size-1] = float32(math.NaN())
		}

		for _, threshold := range []float32{0, 3.3, 5, 10.5} {
			vec, err := CountOverlaps(mins, maxs, threshold)
			require.NoError(t, err)
			scalar, err := CountOverlapsScalar(mins, maxs, threshold)
			require.NoError(t, err)
			assert.Equalf(t, scalar, vec, "size=%d threshold=%v", size, threshold)
		}
	}
}

func TestOverlapSet(t *testing.T) {
	mins := []float32{0, 5, 9}
	maxs := []float32{2, 6, 10}

	set, err := OverlapSet(mins, maxs, 5.5)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), set.GetCardinality())
	assert.True(t, set.Contains(1))

	count, err := CountOverlaps(mins, maxs, 5.5)
	require.NoError(t, err)
	assert.Equal(t, count, set.GetCardinality())
}

func TestKernelInfo(t *testing.T) {
	assert.NotEmpty(t, KernelISA())
	assert.Contains(t, []int{1, 8}, KernelWidth())
}
