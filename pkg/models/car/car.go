package car

import (
	"image/color"
	"math"
)

// Stat identifies one field of a StatBlock
type Stat int

const (
	StatTopSpeed Stat = iota
	StatAcceleration
	StatHandling
	StatBoost
	StatDurability
	StatEarnings
)

// String returns the stat name as it appears in the vehicle tables
func (s Stat) String() string {
	switch s {
	case StatTopSpeed:
		return "topSpeed"
	case StatAcceleration:
		return "acceleration"
	case StatHandling:
		return "handling"
	case StatBoost:
		return "boost"
	case StatDurability:
		return "durability"
	case StatEarnings:
		return "earnings"
	}
	return "unknown"
}

// StatBlock holds a vehicle's performance ratings.
// Integer ratings are percentages where 100 is the reference car.
type StatBlock struct {
	TopSpeed           int     `json:"topSpeed"`
	Acceleration       int     `json:"acceleration"`
	Handling           int     `json:"handling"`
	Boost              int     `json:"boost"`
	Durability         int     `json:"durability"`
	EarningsMultiplier float64 `json:"earnings"`
}

// Get returns the value of a stat as a float
func (s StatBlock) Get(stat Stat) float64 {
	switch stat {
	case StatTopSpeed:
		return float64(s.TopSpeed)
	case StatAcceleration:
		return float64(s.Acceleration)
	case StatHandling:
		return float64(s.Handling)
	case StatBoost:
		return float64(s.Boost)
	case StatDurability:
		return float64(s.Durability)
	case StatEarnings:
		return s.EarningsMultiplier
	}
	return 0
}

// Scaled returns a copy with one stat multiplied by factor.
// Integer ratings are floored; the earnings multiplier is kept fractional.
func (s StatBlock) Scaled(stat Stat, factor float64) StatBlock {
	floor := func(v int) int {
		return int(math.Floor(float64(v) * factor))
	}
	switch stat {
	case StatTopSpeed:
		s.TopSpeed = floor(s.TopSpeed)
	case StatAcceleration:
		s.Acceleration = floor(s.Acceleration)
	case StatHandling:
		s.Handling = floor(s.Handling)
	case StatBoost:
		s.Boost = floor(s.Boost)
	case StatDurability:
		s.Durability = floor(s.Durability)
	case StatEarnings:
		s.EarningsMultiplier *= factor
	}
	return s
}

// Definition is a purchasable vehicle archetype
type Definition struct {
	ID          string     // Stable id used in save files
	Name        string     // Display name
	Description string     // Garage blurb
	Color       color.RGBA // Body color
	BaseStats   StatBlock  // Stats before upgrades
	UnlockCost  int        // Price in the garage
	Unlocked    bool       // Owned in a fresh profile
}
