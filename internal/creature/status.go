package creature

// Status is an explicit, non hit point derived condition of a creature.
// Statuses are ordered by severity; the most severe active one is reported
// by Instance.Status.
type Status int

const (
	StatusGood Status = iota
	StatusPoisoned
	StatusSleeping
	StatusDead
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusGood:
		return "good"
	case StatusPoisoned:
		return "poisoned"
	case StatusSleeping:
		return "sleeping"
	case StatusDead:
		return "dead"
	default:
		return "unknown"
	}
}

// WoundTier is the severity bucket derived from current and base hit points.
// Lower values are more severe.
type WoundTier int

const (
	Dead WoundTier = iota
	Fleeing
	Critical
	HeavilyWounded
	LightlyWounded
	BarelyWounded
)

// String returns a human-readable tier name.
func (t WoundTier) String() string {
	switch t {
	case Dead:
		return "dead"
	case Fleeing:
		return "fleeing"
	case Critical:
		return "critical"
	case HeavilyWounded:
		return "heavily_wounded"
	case LightlyWounded:
		return "lightly_wounded"
	case BarelyWounded:
		return "barely_wounded"
	default:
		return "unknown"
	}
}

// TierFor derives the wound tier for hp out of baseHP.
//
// Thresholds, all strict "below":
//
//	fleeing         baseHP/8
//	critical        baseHP/4
//	heavily wounded baseHP/2
//	lightly wounded baseHP/4 + baseHP/2
func TierFor(hp, baseHP int) WoundTier {
	crit := baseHP / 4
	heavy := baseHP / 2
	light := crit + heavy

	switch {
	case hp <= 0:
		return Dead
	case hp < FleeThreshold(baseHP):
		return Fleeing
	case hp < crit:
		return Critical
	case hp < heavy:
		return HeavilyWounded
	case hp < light:
		return LightlyWounded
	default:
		return BarelyWounded
	}
}

// FleeThreshold is the hit point value below which a creature flees.
func FleeThreshold(baseHP int) int {
	return baseHP / 8
}

// Condition is the derived state of an instance: either dead, or alive with a
// wound tier and an orthogonal sleeping flag. A dead condition is never asleep.
type Condition struct {
	Tier   WoundTier
	Asleep bool
}

// Dead reports whether the condition is terminal.
func (c Condition) Dead() bool {
	return c.Tier == Dead
}

// String returns e.g. "lightly_wounded+asleep".
func (c Condition) String() string {
	if c.Asleep {
		return c.Tier.String() + "+asleep"
	}
	return c.Tier.String()
}
