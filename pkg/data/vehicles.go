package data

import (
	"image/color"

	"github.com/golangdaddy/cutup/pkg/models/car"
)

// Vehicles is the garage lineup in display order
var Vehicles = []car.Definition{
	{
		ID:          "compact_sedan",
		Name:        "Compact Sedan",
		Description: "Reliable and balanced. Perfect for beginners.",
		Color:       color.RGBA{0x34, 0x98, 0xdb, 255},
		BaseStats:   car.StatBlock{TopSpeed: 55, Acceleration: 50, Handling: 85, Boost: 100, Durability: 100, EarningsMultiplier: 1.0},
		UnlockCost:  0,
		Unlocked:    true,
	},
	{
		ID:          "economy_hatch",
		Name:        "Economy Hatchback",
		Description: "Nimble and quick. Great handling for tight squeezes.",
		Color:       color.RGBA{0x2e, 0xcc, 0x71, 255},
		BaseStats:   car.StatBlock{TopSpeed: 60, Acceleration: 55, Handling: 100, Boost: 100, Durability: 75, EarningsMultiplier: 1.1},
		UnlockCost:  0,
		Unlocked:    true,
	},
	{
		ID:          "sports_coupe",
		Name:        "Sports Coupe",
		Description: "Fast and flashy. Higher risk, higher reward.",
		Color:       color.RGBA{0xe7, 0x4c, 0x3c, 255},
		BaseStats:   car.StatBlock{TopSpeed: 70, Acceleration: 65, Handling: 80, Boost: 100, Durability: 65, EarningsMultiplier: 1.3},
		UnlockCost:  5000,
	},
	{
		ID:          "muscle_car",
		Name:        "Muscle Car",
		Description: "Raw American power. Fast but harder to handle.",
		Color:       color.RGBA{0xff, 0x66, 0x00, 255},
		BaseStats:   car.StatBlock{TopSpeed: 80, Acceleration: 75, Handling: 65, Boost: 100, Durability: 80, EarningsMultiplier: 1.5},
		UnlockCost:  15000,
	},
	{
		ID:          "supercar",
		Name:        "Supercar",
		Description: "European precision. Blazing speed with great control.",
		Color:       color.RGBA{0xff, 0xcc, 0x00, 255},
		BaseStats:   car.StatBlock{TopSpeed: 90, Acceleration: 85, Handling: 85, Boost: 100, Durability: 50, EarningsMultiplier: 2.0},
		UnlockCost:  50000,
	},
	{
		ID:          "hypercar",
		Name:        "Hypercar",
		Description: "Ultimate speed machine. For true masters only.",
		Color:       color.RGBA{0x99, 0x00, 0xff, 255},
		BaseStats:   car.StatBlock{TopSpeed: 100, Acceleration: 95, Handling: 90, Boost: 100, Durability: 40, EarningsMultiplier: 3.0},
		UnlockCost:  150000,
	},
}

// DefaultVehicleID is selected in a fresh profile
const DefaultVehicleID = "compact_sedan"

// Vehicle looks up a vehicle definition by id
func Vehicle(id string) (car.Definition, bool) {
	for _, v := range Vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return car.Definition{}, false
}
