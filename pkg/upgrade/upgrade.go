// Package upgrade resolves effective vehicle stats and handles garage
// purchases against a save profile.
package upgrade

import (
	"errors"
	"math"

	"github.com/golangdaddy/cutup/pkg/data"
	"github.com/golangdaddy/cutup/pkg/models/car"
	"github.com/golangdaddy/cutup/pkg/models/profile"
)

var (
	ErrMaxLevel       = errors.New("max_level")
	ErrNotEnoughMoney = errors.New("not_enough_money")
	ErrAlreadyOwned   = errors.New("already_owned")
	ErrInvalidVehicle = errors.New("invalid_vehicle")
	ErrInvalidUpgrade = errors.New("invalid_upgrade")
	ErrVehicleLocked  = errors.New("vehicle_locked")
)

// UpgradeResult describes a successful upgrade purchase
type UpgradeResult struct {
	NewLevel int
	Cost     int
	NewMoney int
}

// VehicleResult describes a successful vehicle purchase
type VehicleResult struct {
	Cost     int
	NewMoney int
}

// CostOf returns the price of buying the next level of an upgrade
func CostOf(id data.UpgradeID, currentLevel int) (int, error) {
	u, ok := data.LookupUpgrade(id)
	if !ok {
		return 0, ErrInvalidUpgrade
	}
	if currentLevel >= u.MaxLevel {
		return 0, ErrMaxLevel
	}
	if currentLevel < 0 {
		currentLevel = 0
	}
	return int(math.Floor(float64(u.BaseCost) * math.Pow(u.CostMultiplier, float64(currentLevel)))), nil
}

// EffectiveStats applies purchased upgrade levels to a vehicle's base stats
func EffectiveStats(def car.Definition, levels map[data.UpgradeID]int) car.StatBlock {
	stats := def.BaseStats
	for _, u := range data.Upgrades {
		level := levels[u.ID]
		if level <= 0 {
			continue
		}
		stats = stats.Scaled(u.Stat, 1+u.BonusPerLevel*float64(level))
	}
	return stats
}

// Levels returns a copy of the upgrade levels bought for a vehicle
func Levels(save *profile.SaveProfile, vehicleID string) map[data.UpgradeID]int {
	levels := make(map[data.UpgradeID]int, len(data.Upgrades))
	if rec, ok := save.Vehicles[vehicleID]; ok && rec != nil {
		for id, l := range rec.Upgrades {
			levels[id] = l
		}
	}
	return levels
}

// StatsFor resolves the effective stats of a vehicle in a profile
func StatsFor(save *profile.SaveProfile, vehicleID string) (car.StatBlock, error) {
	def, ok := data.Vehicle(vehicleID)
	if !ok {
		return car.StatBlock{}, ErrInvalidVehicle
	}
	return EffectiveStats(def, Levels(save, vehicleID)), nil
}

// PurchaseUpgrade buys the next level of an upgrade for an owned vehicle.
// The save is only modified when the purchase succeeds.
func PurchaseUpgrade(save *profile.SaveProfile, vehicleID string, upgradeID data.UpgradeID) (UpgradeResult, error) {
	if _, ok := data.Vehicle(vehicleID); !ok {
		return UpgradeResult{}, ErrInvalidVehicle
	}
	if !save.Owns(vehicleID) {
		return UpgradeResult{}, ErrVehicleLocked
	}

	current := save.Level(vehicleID, upgradeID)
	cost, err := CostOf(upgradeID, current)
	if err != nil {
		return UpgradeResult{}, err
	}
	if save.Money < cost {
		return UpgradeResult{}, ErrNotEnoughMoney
	}

	rec := save.Vehicles[vehicleID]
	if rec.Upgrades == nil {
		rec.Upgrades = make(map[data.UpgradeID]int, len(data.Upgrades))
	}
	save.Money -= cost
	rec.Upgrades[upgradeID] = current + 1

	return UpgradeResult{NewLevel: current + 1, Cost: cost, NewMoney: save.Money}, nil
}

// PurchaseVehicle unlocks a vehicle
func PurchaseVehicle(save *profile.SaveProfile, vehicleID string) (VehicleResult, error) {
	def, ok := data.Vehicle(vehicleID)
	if !ok {
		return VehicleResult{}, ErrInvalidVehicle
	}
	if save.Owns(vehicleID) {
		return VehicleResult{}, ErrAlreadyOwned
	}
	if save.Money < def.UnlockCost {
		return VehicleResult{}, ErrNotEnoughMoney
	}

	if save.Vehicles == nil {
		save.Vehicles = make(map[string]*profile.VehicleRecord, len(data.Vehicles))
	}
	rec := save.Vehicles[vehicleID]
	if rec == nil {
		rec = &profile.VehicleRecord{Upgrades: make(map[data.UpgradeID]int, len(data.Upgrades))}
		for _, u := range data.Upgrades {
			rec.Upgrades[u.ID] = 0
		}
		save.Vehicles[vehicleID] = rec
	}
	save.Money -= def.UnlockCost
	rec.Owned = true

	return VehicleResult{Cost: def.UnlockCost, NewMoney: save.Money}, nil
}

// SelectVehicle makes an owned vehicle the one used for the next run
func SelectVehicle(save *profile.SaveProfile, vehicleID string) error {
	if _, ok := data.Vehicle(vehicleID); !ok {
		return ErrInvalidVehicle
	}
	if !save.Owns(vehicleID) {
		return ErrVehicleLocked
	}
	save.SelectedVehicleID = vehicleID
	return nil
}
