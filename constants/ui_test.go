package constants

import "testing"

// TestGridLimits verifies the grow/shrink step walks the full size range
func TestGridLimits(t *testing.T) {
	if MinGridSize > DefaultGridSize || DefaultGridSize > MaxGridSize {
		t.Errorf("Expected default size %d within [%d,%d]", DefaultGridSize, MinGridSize, MaxGridSize)
	}
	if (MaxGridSize-MinGridSize)%GridSizeStep != 0 {
		t.Errorf("Expected size range %d..%d to be a multiple of step %d", MinGridSize, MaxGridSize, GridSizeStep)
	}
	if (DefaultGridSize-MinGridSize)%GridSizeStep != 0 {
		t.Errorf("Expected default size %d reachable by step %d", DefaultGridSize, GridSizeStep)
	}
}
