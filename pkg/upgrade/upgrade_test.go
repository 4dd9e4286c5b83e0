package upgrade

import (
	"testing"

	"github.com/golangdaddy/cutup/pkg/data"
	"github.com/golangdaddy/cutup/pkg/models/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encoded(t *testing.T, p *profile.SaveProfile) string {
	t.Helper()
	raw, err := p.Encode()
	require.NoError(t, err)
	return string(raw)
}

func TestCostOf_StrictlyIncreasing(t *testing.T) {
	for _, u := range data.Upgrades {
		prev := -1
		for level := 0; level < u.MaxLevel; level++ {
			cost, err := CostOf(u.ID, level)
			require.NoError(t, err)
			assert.Greater(t, cost, prev, "%s level %d", u.ID, level)
			prev = cost
		}
	}
}

func TestCostOf_Values(t *testing.T) {
	cost, err := CostOf(data.UpgradeEngine, 0)
	require.NoError(t, err)
	assert.Equal(t, 500, cost)

	cost, err = CostOf(data.UpgradeEngine, 1)
	require.NoError(t, err)
	assert.Equal(t, 900, cost)

	cost, err = CostOf(data.UpgradeHandling, 0)
	require.NoError(t, err)
	assert.Equal(t, 300, cost)
}

func TestCostOf_MaxLevelAndUnknown(t *testing.T) {
	_, err := CostOf(data.UpgradeNitro, data.MaxUpgradeLevel)
	assert.ErrorIs(t, err, ErrMaxLevel)

	_, err = CostOf("spoiler", 0)
	assert.ErrorIs(t, err, ErrInvalidUpgrade)
}

func TestEffectiveStats_LevelZeroIsBase(t *testing.T) {
	for _, v := range data.Vehicles {
		levels := map[data.UpgradeID]int{}
		for _, u := range data.Upgrades {
			levels[u.ID] = 0
		}
		assert.Equal(t, v.BaseStats, EffectiveStats(v, levels), v.ID)
		assert.Equal(t, v.BaseStats, EffectiveStats(v, nil), v.ID)
	}
}

func TestEffectiveStats_AppliesBonuses(t *testing.T) {
	sedan, ok := data.Vehicle("compact_sedan")
	require.True(t, ok)

	stats := EffectiveStats(sedan, map[data.UpgradeID]int{
		data.UpgradeEngine:   2, // 55 * 1.2 = 66
		data.UpgradeHandling: 1, // 85 * 1.15 = 97.75
		data.UpgradeNitro:    5, // 100 * 1.5 = 150
	})

	assert.Equal(t, 66, stats.TopSpeed)
	assert.Equal(t, 50, stats.Acceleration)
	assert.Equal(t, 97, stats.Handling)
	assert.Equal(t, 150, stats.Boost)
	assert.Equal(t, 100, stats.Durability)
	assert.Equal(t, 1.0, stats.EarningsMultiplier)
}

func TestPurchaseUpgrade_DeductsQuotedCost(t *testing.T) {
	save := profile.Default()
	save.Money = 2000

	quote, err := CostOf(data.UpgradeEngine, 0)
	require.NoError(t, err)

	res, err := PurchaseUpgrade(save, "compact_sedan", data.UpgradeEngine)
	require.NoError(t, err)

	assert.Equal(t, quote, res.Cost)
	assert.Equal(t, 1, res.NewLevel)
	assert.Equal(t, 2000-quote, save.Money)
	assert.Equal(t, save.Money, res.NewMoney)
	assert.Equal(t, 1, save.Level("compact_sedan", data.UpgradeEngine))
}

func TestPurchaseUpgrade_FailuresLeaveSaveUntouched(t *testing.T) {
	t.Run("not enough money", func(t *testing.T) {
		save := profile.Default()
		save.Money = 100
		before := encoded(t, save)

		_, err := PurchaseUpgrade(save, "compact_sedan", data.UpgradeEngine)
		assert.ErrorIs(t, err, ErrNotEnoughMoney)
		assert.Equal(t, before, encoded(t, save))
	})

	t.Run("max level", func(t *testing.T) {
		save := profile.Default()
		save.Money = 1_000_000
		save.Vehicles["compact_sedan"].Upgrades[data.UpgradeNitro] = data.MaxUpgradeLevel
		before := encoded(t, save)

		_, err := PurchaseUpgrade(save, "compact_sedan", data.UpgradeNitro)
		assert.ErrorIs(t, err, ErrMaxLevel)
		assert.Equal(t, before, encoded(t, save))
	})

	t.Run("locked vehicle", func(t *testing.T) {
		save := profile.Default()
		save.Money = 1_000_000
		before := encoded(t, save)

		_, err := PurchaseUpgrade(save, "hypercar", data.UpgradeEngine)
		assert.ErrorIs(t, err, ErrVehicleLocked)
		assert.Equal(t, before, encoded(t, save))
	})

	t.Run("unknown ids", func(t *testing.T) {
		save := profile.Default()
		save.Money = 1_000_000
		before := encoded(t, save)

		_, err := PurchaseUpgrade(save, "batmobile", data.UpgradeEngine)
		assert.ErrorIs(t, err, ErrInvalidVehicle)
		_, err = PurchaseUpgrade(save, "compact_sedan", "spoiler")
		assert.ErrorIs(t, err, ErrInvalidUpgrade)
		assert.Equal(t, before, encoded(t, save))
	})
}

func TestPurchaseUpgrade_UpToMaxLevel(t *testing.T) {
	save := profile.Default()
	save.Money = 1_000_000

	total := 0
	for i := 1; i <= data.MaxUpgradeLevel; i++ {
		res, err := PurchaseUpgrade(save, "economy_hatch", data.UpgradeHandling)
		require.NoError(t, err)
		assert.Equal(t, i, res.NewLevel)
		total += res.Cost
	}
	assert.Equal(t, 1_000_000-total, save.Money)

	_, err := PurchaseUpgrade(save, "economy_hatch", data.UpgradeHandling)
	assert.ErrorIs(t, err, ErrMaxLevel)
}

func TestPurchaseVehicle(t *testing.T) {
	save := profile.Default()
	save.Money = 6000

	_, err := PurchaseVehicle(save, "compact_sedan")
	assert.ErrorIs(t, err, ErrAlreadyOwned)

	_, err = PurchaseVehicle(save, "batmobile")
	assert.ErrorIs(t, err, ErrInvalidVehicle)

	before := encoded(t, save)
	_, err = PurchaseVehicle(save, "muscle_car")
	assert.ErrorIs(t, err, ErrNotEnoughMoney)
	assert.Equal(t, before, encoded(t, save))

	res, err := PurchaseVehicle(save, "sports_coupe")
	require.NoError(t, err)
	assert.Equal(t, 5000, res.Cost)
	assert.Equal(t, 1000, save.Money)
	assert.True(t, save.Owns("sports_coupe"))
}

func TestPurchaseVehicle_ZeroValueProfile(t *testing.T) {
	save := &profile.SaveProfile{Money: 100000}

	res, err := PurchaseVehicle(save, "sports_coupe")
	require.NoError(t, err)
	assert.Equal(t, 5000, res.Cost)
	assert.Equal(t, 95000, save.Money)
	assert.True(t, save.Owns("sports_coupe"))
	assert.Equal(t, 0, save.Level("sports_coupe", data.UpgradeEngine))

	_, err = PurchaseUpgrade(save, "sports_coupe", data.UpgradeEngine)
	require.NoError(t, err)
	assert.Equal(t, 1, save.Level("sports_coupe", data.UpgradeEngine))

	_, err = PurchaseUpgrade(&profile.SaveProfile{Money: 100000}, "compact_sedan", data.UpgradeEngine)
	assert.ErrorIs(t, err, ErrVehicleLocked)
}

func TestSelectVehicle(t *testing.T) {
	save := profile.Default()

	assert.ErrorIs(t, SelectVehicle(save, "supercar"), ErrVehicleLocked)
	assert.ErrorIs(t, SelectVehicle(save, "batmobile"), ErrInvalidVehicle)
	assert.Equal(t, data.DefaultVehicleID, save.SelectedVehicleID)

	require.NoError(t, SelectVehicle(save, "economy_hatch"))
	assert.Equal(t, "economy_hatch", save.SelectedVehicleID)
}

func TestStatsFor(t *testing.T) {
	save := profile.Default()
	save.Vehicles["compact_sedan"].Upgrades[data.UpgradeTransmission] = 1

	stats, err := StatsFor(save, "compact_sedan")
	require.NoError(t, err)
	assert.Equal(t, 56, stats.Acceleration) // 50 * 1.12

	_, err = StatsFor(save, "batmobile")
	assert.ErrorIs(t, err, ErrInvalidVehicle)
}
