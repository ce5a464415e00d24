package model

import "math"

// ToExperience returns the total experience required to hold the given
// level. Levels at or below zero require nothing.
func ToExperience(level int) float64 {
	if level <= 0 {
		return 0
	}
	l := float64(level)
	return math.Floor(math.Pow(l, 2.2+l/3) + 1000*l)
}

// ToLevel returns the largest level whose experience requirement the
// given total satisfies. It inverts ToExperience, so
// ToLevel(ToExperience(l)) == l for any non-negative l.
func ToLevel(experience float64) int {
	if experience <= 0 {
		return 0
	}
	level := 0
	for ToExperience(level+1) <= experience {
		level++
	}
	return level
}
