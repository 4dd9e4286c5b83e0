package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/golangdaddy/cutup/pkg/data"
	"github.com/golangdaddy/cutup/pkg/models/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterClosePass_ThreePassesScenario(t *testing.T) {
	e := New(data.DefaultTuning(), 1.0)

	rewards := []int{}
	for i := 0; i < 3; i++ {
		rewards = append(rewards, e.RegisterClosePass(0).Reward)
		e.Advance(500 * time.Millisecond)
	}

	assert.Equal(t, []int{50, 75, 100}, rewards)
	assert.Equal(t, 225, e.RunMoney())
}

func TestRegisterClosePass_MultiplierSaturates(t *testing.T) {
	e := New(data.DefaultTuning(), 1.0)

	got := []float64{}
	for i := 0; i < 8; i++ {
		got = append(got, e.RegisterClosePass(10).Multiplier)
	}
	assert.Equal(t, []float64{1, 1.5, 2, 3, 5, 5, 5, 5}, got)
	assert.Equal(t, 8, e.Combo())
}

func TestRegisterClosePass_Closeness(t *testing.T) {
	tun := data.DefaultTuning()

	e := New(tun, 1.0)
	assert.Equal(t, 50, e.RegisterClosePass(0).Reward)

	e = New(tun, 1.0)
	assert.Equal(t, 25, e.RegisterClosePass(tun.ClosePassDistance).Reward)

	e = New(tun, 1.0)
	assert.Equal(t, 37, e.RegisterClosePass(tun.ClosePassDistance/2).Reward, "floor(50*0.75)")
}

func TestRegisterClosePass_EarningsMultiplier(t *testing.T) {
	e := New(data.DefaultTuning(), 1.5)

	assert.Equal(t, 75, e.RegisterClosePass(0).Reward)
	assert.Equal(t, 112, e.RegisterClosePass(0).Reward, "floor(50*1.5*1.5)")
}

func TestRegisterClosePass_NewMax(t *testing.T) {
	e := New(data.DefaultTuning(), 1.0)

	assert.False(t, e.RegisterClosePass(0).NewMax, "a single pass is not a combo")
	assert.True(t, e.RegisterClosePass(0).NewMax)

	e.Advance(data.DefaultTuning().ComboTimeout)
	assert.False(t, e.RegisterClosePass(0).NewMax)
	assert.True(t, e.RegisterClosePass(0).NewMax, "matching the run best counts")
	assert.True(t, e.RegisterClosePass(0).NewMax)
	assert.Equal(t, 3, e.Summary().MaxCombo)
}

func TestComboTimeout(t *testing.T) {
	tun := data.DefaultTuning()
	e := New(tun, 1.0)

	e.RegisterClosePass(0)
	e.RegisterClosePass(0)
	assert.Equal(t, 1.5, e.Multiplier())
	assert.Equal(t, tun.ComboTimeout, e.ComboRemaining())

	e.Advance(tun.ComboTimeout - time.Millisecond)
	assert.Equal(t, 2, e.Combo())

	// a pass restarts the single deadline
	e.RegisterClosePass(0)
	e.Advance(tun.ComboTimeout - time.Millisecond)
	assert.Equal(t, 3, e.Combo())

	e.Advance(time.Millisecond)
	assert.Equal(t, 0, e.Combo())
	assert.Equal(t, 1.0, e.Multiplier())
	assert.Equal(t, time.Duration(0), e.ComboRemaining())

	assert.Equal(t, 50, e.RegisterClosePass(0).Reward, "multiplier starts over")
}

func TestAddSpeedBonus_Accumulates(t *testing.T) {
	tun := data.DefaultTuning()
	e := New(tun, 1.0)

	assert.Equal(t, 0, e.AddSpeedBonus(tun.SpeedBonusThreshold, 10))
	assert.Equal(t, 0, e.AddSpeedBonus(100, 10))

	// 510 px/s accrues 1 unit per second
	total := 0
	for i := 0; i < 59; i++ {
		got := e.AddSpeedBonus(510, 1.0/60)
		assert.Equal(t, 0, got)
		total += got
	}
	for i := 0; i < 61; i++ {
		total += e.AddSpeedBonus(510, 1.0/60)
	}

	expected := 1.0 * 120 / 60
	assert.InDelta(t, expected, float64(total)+e.SpeedFraction(), 1e-9)
	assert.GreaterOrEqual(t, total, 1)
	assert.Equal(t, total, e.RunMoney())
	assert.Equal(t, total, e.Summary().SpeedBonus)
}

func TestAddSpeedBonus_IntegralMatches(t *testing.T) {
	tun := data.DefaultTuning()
	e := New(tun, 1.0)

	sum := 0
	integral := 0.0
	for i := 0; i < 1000; i++ {
		speed := 500 + math.Mod(float64(i)*7.3, 400)
		dt := 0.016
		integral += (speed - tun.SpeedBonusThreshold) * tun.SpeedBonusRate * dt
		sum += e.AddSpeedBonus(speed, dt)
		assert.Less(t, e.SpeedFraction(), 1.0)
	}
	assert.InDelta(t, integral, float64(sum)+e.SpeedFraction(), 1e-6)
}

func TestFinalizeRun_Idempotent(t *testing.T) {
	e := New(data.DefaultTuning(), 1.0)
	e.RegisterClosePass(0)
	e.RegisterClosePass(0)

	save := profile.Default()
	save.Money = 1000
	save.HighScore = 100

	require.True(t, e.FinalizeRun(save))
	assert.Equal(t, 1125, save.Money)
	assert.Equal(t, 125, save.TotalEarnings)
	assert.Equal(t, 1, save.TotalRuns)
	assert.Equal(t, 125, save.HighScore)
	assert.True(t, e.Finalized())

	assert.False(t, e.FinalizeRun(save))
	assert.Equal(t, 1125, save.Money)
	assert.Equal(t, 1, save.TotalRuns)

	assert.Equal(t, 0, e.RegisterClosePass(0).Reward, "finalized runs earn nothing")
	assert.Equal(t, 125, e.Summary().Money)
}

func TestFinalizeRun_HighScoreOnlyWhenBeaten(t *testing.T) {
	e := New(data.DefaultTuning(), 1.0)
	e.RegisterClosePass(0)

	save := profile.Default()
	save.HighScore = 50

	assert.False(t, e.FinalizeRun(save), "equal is not a new high score")
	assert.Equal(t, 50, save.HighScore)
	assert.Equal(t, 50, save.Money)
}
