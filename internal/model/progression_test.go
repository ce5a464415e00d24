package model

import "testing"

func TestToExperience_NonPositiveLevels_ReturnZero(t *testing.T) {
	t.Parallel()

	if got := ToExperience(0); got != 0 {
		t.Errorf("expected 0 for level 0, got %f", got)
	}
	if got := ToExperience(-3); got != 0 {
		t.Errorf("expected 0 for negative level, got %f", got)
	}
}

func TestToExperience_KnownValues(t *testing.T) {
	t.Parallel()

	// floor(1^(2.2+1/3) + 1000) = 1001
	if got := ToExperience(1); got != 1001 {
		t.Errorf("expected 1001 for level 1, got %f", got)
	}
	// floor(2^(2.2+2/3) + 2000) = 2007
	if got := ToExperience(2); got != 2007 {
		t.Errorf("expected 2007 for level 2, got %f", got)
	}
}

func TestToExperience_StrictlyIncreasing(t *testing.T) {
	t.Parallel()

	for level := 1; level < 50; level++ {
		if ToExperience(level) >= ToExperience(level + 1) {
			t.Fatalf("requirement not increasing between levels %d and %d", level, level+1)
		}
	}
}

func TestToLevel_InvertsToExperience(t *testing.T) {
	t.Parallel()

	for level := 0; level <= 30; level++ {
		if got := ToLevel(ToExperience(level)); got != level {
			t.Errorf("round trip of level %d returned %d", level, got)
		}
	}
}

func TestToLevel_BetweenThresholds_ReportsLowerLevel(t *testing.T) {
	t.Parallel()

	justBelow := ToExperience(2) - 1
	if got := ToLevel(justBelow); got != 1 {
		t.Errorf("expected level 1 just below the level 2 threshold, got %d", got)
	}
}

func TestToLevel_NonPositiveExperience_ReturnsZero(t *testing.T) {
	t.Parallel()

	if got := ToLevel(0); got != 0 {
		t.Errorf("expected level 0 at zero experience, got %d", got)
	}
	if got := ToLevel(-500); got != 0 {
		t.Errorf("expected level 0 at negative experience, got %d", got)
	}
}
