package bot

// Tuning collects the probability knobs for the non-deterministic tiers.
type Tuning struct {
	// EasyRandomChance is the probability that the easy tier picks uniformly
	// at random among playable cards instead of preferring a non-8.
	EasyRandomChance float64
}

// DefaultTuning matches the shipped difficulty balance.
var DefaultTuning = Tuning{
	EasyRandomChance: 0.5,
}
