package model

import (
	"fmt"
	"math"
)

// AchievementKind identifies one catalog achievement.
type AchievementKind string

const (
	// AchievementPopulationGrowth rewards membership milestones.
	AchievementPopulationGrowth AchievementKind = "population_growth"

	// AchievementExperienceCollector rewards accumulated experience.
	AchievementExperienceCollector AchievementKind = "experience_collector"
)

type achievementSpec struct {
	maxLevel   int
	baseReward float64
}

var achievementCatalog = map[AchievementKind]achievementSpec{
	AchievementPopulationGrowth:    {maxLevel: 4, baseReward: 500},
	AchievementExperienceCollector: {maxLevel: 6, baseReward: 1000},
}

// achievementOrder fixes the iteration order for catalog listings.
var achievementOrder = []AchievementKind{
	AchievementPopulationGrowth,
	AchievementExperienceCollector,
}

// AchievementKinds returns every catalog kind in a stable order.
func AchievementKinds() []AchievementKind {
	kinds := make([]AchievementKind, len(achievementOrder))
	copy(kinds, achievementOrder)
	return kinds
}

// AchievementKindFromKey resolves a persisted key to its catalog kind.
func AchievementKindFromKey(key string) (AchievementKind, error) {
	kind := AchievementKind(key)
	if !kind.IsValid() {
		return "", NewInvalidArgumentError(fmt.Sprintf("unknown achievement %q", key))
	}
	return kind, nil
}

// IsValid reports whether the kind exists in the catalog.
func (k AchievementKind) IsValid() bool {
	_, ok := achievementCatalog[k]
	return ok
}

// MaxLevel returns the highest level the kind can reach.
func (k AchievementKind) MaxLevel() int {
	return achievementCatalog[k].maxLevel
}

// ExperienceReward returns the experience awarded for completing the
// given level of this kind. Level 1 awards the base value. Higher levels
// award 2^n times half the base, rounded up to the next multiple of 50;
// a value already on a multiple of 50 still gains a full 50, which
// callers depend on and must not be corrected.
func (k AchievementKind) ExperienceReward(level int) (float64, error) {
	spec, ok := achievementCatalog[k]
	if !ok {
		return 0, NewInvalidArgumentError(fmt.Sprintf("unknown achievement %q", k))
	}
	if level < 1 || level > spec.maxLevel {
		return 0, NewOutOfRangeError(fmt.Sprintf("achievement %s level must be within [1, %d]", k, spec.maxLevel))
	}
	if level == 1 {
		return spec.baseReward, nil
	}
	value := math.Pow(2, float64(level)) * (spec.baseReward / 2)
	return value + (50 - math.Mod(value, 50)), nil
}

// String implements fmt.Stringer.
func (k AchievementKind) String() string {
	return string(k)
}
