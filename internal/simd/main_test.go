package simd

import (
	"fmt"
	"os"
	"runtime"
	"testing"
)

// TestMain runs before all tests and prints ISA diagnostic information.
// This helps CI identify which kernel is actually being exercised.
func TestMain(m *testing.M) {
	fmt.Printf("=== SIMD ISA Diagnostics ===\n")
	fmt.Printf("GOOS=%s GOARCH=%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("SLICEKIT_SIMD=%q\n", os.Getenv("SLICEKIT_SIMD"))
	fmt.Printf("Active ISA: %s\n", ActiveISA())
	fmt.Printf("Override: %v\n", IsOverridden())
	fmt.Printf("Kernel width: %d\n", Width())

	switch runtime.GOARCH {
	case "arm64":
		fmt.Printf("ASIMD (NEON): %v\n", HasASIMD())
	case "amd64":
		fmt.Printf("AVX2: %v AVX-512 (F+BW): %v\n", HasAVX2(), HasAVX512())
	}

	fmt.Printf("============================\n\n")

	os.Exit(m.Run())
}

func TestParseISA(t *testing.T) {
	tests := []struct {
		input string
		isa   ISA
		ok    bool
	}{
		{"generic", Generic, true},
		{"NEON", NEON, true},
		{" avx2 ", AVX2, true},
		{"AVX512", AVX512, true},
		{"sse42", Generic, false},
		{"", Generic, false},
	}
	for _, tc := range tests {
		isa, ok := ParseISA(tc.input)
		if isa != tc.isa || ok != tc.ok {
			t.Errorf("ParseISA(%q) = (%v, %v), want (%v, %v)", tc.input, isa, ok, tc.isa, tc.ok)
		}
	}
}

func TestISAString(t *testing.T) {
	for _, isa := range []ISA{Generic, NEON, AVX2, AVX512} {
		if isa.String() == "unknown" {
			t.Errorf("ISA %d has no string representation", isa)
		}
	}
	if ISA(250).String() != "unknown" {
		t.Errorf("out-of-range ISA should be unknown")
	}
}
