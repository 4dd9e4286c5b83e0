package data

import (
	"fmt"

	"github.com/golangdaddy/cutup/pkg/models/car"
)

// UpgradeID names an upgrade in save files
type UpgradeID string

const (
	UpgradeEngine       UpgradeID = "engine"
	UpgradeTransmission UpgradeID = "transmission"
	UpgradeHandling     UpgradeID = "handling"
	UpgradeNitro        UpgradeID = "nitro"
)

// MaxUpgradeLevel is shared by every upgrade
const MaxUpgradeLevel = 5

// Upgrade describes a purchasable per-vehicle upgrade track
type Upgrade struct {
	ID             UpgradeID
	Name           string
	Description    string
	Stat           car.Stat // Stat multiplied by this upgrade
	MaxLevel       int
	BaseCost       int
	CostMultiplier float64 // Geometric growth per level
	BonusPerLevel  float64 // Fraction added to the stat per level
}

// Upgrades lists the upgrade tracks in display order
var Upgrades = []Upgrade{
	{ID: UpgradeEngine, Name: "Engine", Description: "Increases top speed", Stat: car.StatTopSpeed, MaxLevel: MaxUpgradeLevel, BaseCost: 500, CostMultiplier: 1.8, BonusPerLevel: 0.10},
	{ID: UpgradeTransmission, Name: "Transmission", Description: "Faster acceleration", Stat: car.StatAcceleration, MaxLevel: MaxUpgradeLevel, BaseCost: 400, CostMultiplier: 1.7, BonusPerLevel: 0.12},
	{ID: UpgradeHandling, Name: "Handling", Description: "Quicker lane changes", Stat: car.StatHandling, MaxLevel: MaxUpgradeLevel, BaseCost: 300, CostMultiplier: 1.6, BonusPerLevel: 0.15},
	{ID: UpgradeNitro, Name: "Nitro", Description: "Better boost performance", Stat: car.StatBoost, MaxLevel: MaxUpgradeLevel, BaseCost: 600, CostMultiplier: 1.9, BonusPerLevel: 0.10},
}

// LookupUpgrade finds an upgrade by id
func LookupUpgrade(id UpgradeID) (Upgrade, bool) {
	for _, u := range Upgrades {
		if u.ID == id {
			return u, true
		}
	}
	return Upgrade{}, false
}

// ValidateUpgrades checks that no two upgrades target the same stat,
// which keeps stat resolution independent of application order.
func ValidateUpgrades(upgrades []Upgrade) error {
	seen := make(map[car.Stat]UpgradeID, len(upgrades))
	for _, u := range upgrades {
		if other, ok := seen[u.Stat]; ok {
			return fmt.Errorf("upgrades %q and %q both target %s", other, u.ID, u.Stat)
		}
		seen[u.Stat] = u.ID
	}
	return nil
}
