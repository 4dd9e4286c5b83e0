package profile

import (
	"encoding/json"
	"fmt"

	"github.com/golangdaddy/cutup/pkg/data"
)

// VehicleRecord is the per-vehicle part of a save
type VehicleRecord struct {
	Owned    bool                   `json:"owned"`
	Upgrades map[data.UpgradeID]int `json:"upgrades"`
}

// SaveProfile represents a player's persisted progress
type SaveProfile struct {
	Money             int                       `json:"money"`         // Wallet
	HighScore         int                       `json:"highScore"`     // Best single-run earnings
	TotalRuns         int                       `json:"totalRuns"`     // Runs finished
	TotalEarnings     int                       `json:"totalEarnings"` // Lifetime run earnings
	SelectedVehicleID string                    `json:"selectedVehicleId"`
	Vehicles          map[string]*VehicleRecord `json:"vehicles"`
}

// Default creates the profile of a brand new player
func Default() *SaveProfile {
	p := &SaveProfile{
		SelectedVehicleID: data.DefaultVehicleID,
		Vehicles:          make(map[string]*VehicleRecord, len(data.Vehicles)),
	}
	for _, v := range data.Vehicles {
		p.Vehicles[v.ID] = defaultRecord(v.Unlocked)
	}
	return p
}

func defaultRecord(owned bool) *VehicleRecord {
	rec := &VehicleRecord{
		Owned:    owned,
		Upgrades: make(map[data.UpgradeID]int, len(data.Upgrades)),
	}
	for _, u := range data.Upgrades {
		rec.Upgrades[u.ID] = 0
	}
	return rec
}

// Decode parses a persisted profile. Fields absent from raw keep their
// default values. On malformed input a fresh default profile is returned
// together with the parse error, so callers can log it and carry on.
func Decode(raw []byte) (*SaveProfile, error) {
	p := Default()
	if err := json.Unmarshal(raw, p); err != nil {
		return Default(), fmt.Errorf("malformed save data: %w", err)
	}
	p.Backfill()
	return p, nil
}

// Encode serializes the profile in its persisted shape
func (p *SaveProfile) Encode() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// Backfill repairs a profile so every invariant holds again:
// counters are non-negative, every known vehicle has a record, upgrade
// levels are within range and the selected vehicle is owned.
// It reports whether anything had to change.
func (p *SaveProfile) Backfill() bool {
	changed := false
	for _, n := range []*int{&p.Money, &p.HighScore, &p.TotalRuns, &p.TotalEarnings} {
		if *n < 0 {
			*n = 0
			changed = true
		}
	}

	if p.Vehicles == nil {
		p.Vehicles = make(map[string]*VehicleRecord, len(data.Vehicles))
		changed = true
	}
	for _, v := range data.Vehicles {
		if p.Vehicles[v.ID] == nil {
			p.Vehicles[v.ID] = defaultRecord(v.Unlocked)
			changed = true
		}
	}

	for _, rec := range p.Vehicles {
		if rec == nil {
			continue
		}
		if rec.Upgrades == nil {
			rec.Upgrades = make(map[data.UpgradeID]int, len(data.Upgrades))
		}
		for id := range rec.Upgrades {
			if _, ok := data.LookupUpgrade(id); !ok {
				delete(rec.Upgrades, id)
				changed = true
			}
		}
		for _, u := range data.Upgrades {
			level, ok := rec.Upgrades[u.ID]
			switch {
			case !ok:
				rec.Upgrades[u.ID] = 0
				changed = true
			case level < 0:
				rec.Upgrades[u.ID] = 0
				changed = true
			case level > u.MaxLevel:
				rec.Upgrades[u.ID] = u.MaxLevel
				changed = true
			}
		}
	}
	// Unknown ids may come from a newer build; nil entries carry nothing.
	for id, rec := range p.Vehicles {
		if rec == nil {
			delete(p.Vehicles, id)
			changed = true
		}
	}

	if _, ok := data.Vehicle(p.SelectedVehicleID); !ok || !p.Owns(p.SelectedVehicleID) {
		p.SelectedVehicleID = data.DefaultVehicleID
		p.Vehicles[data.DefaultVehicleID].Owned = true
		changed = true
	}
	return changed
}

// Owns reports whether the vehicle is in the player's garage
func (p *SaveProfile) Owns(vehicleID string) bool {
	rec, ok := p.Vehicles[vehicleID]
	return ok && rec != nil && rec.Owned
}

// Level returns the purchased level of an upgrade on a vehicle
func (p *SaveProfile) Level(vehicleID string, upgradeID data.UpgradeID) int {
	rec, ok := p.Vehicles[vehicleID]
	if !ok || rec == nil {
		return 0
	}
	return rec.Upgrades[upgradeID]
}

// Clone returns a deep copy of the profile
func (p *SaveProfile) Clone() *SaveProfile {
	c := *p
	c.Vehicles = make(map[string]*VehicleRecord, len(p.Vehicles))
	for id, rec := range p.Vehicles {
		if rec == nil {
			continue
		}
		r := &VehicleRecord{Owned: rec.Owned, Upgrades: make(map[data.UpgradeID]int, len(rec.Upgrades))}
		for u, l := range rec.Upgrades {
			r.Upgrades[u] = l
		}
		c.Vehicles[id] = r
	}
	return &c
}
