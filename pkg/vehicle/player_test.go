package vehicle

import (
	"testing"
	"time"

	"github.com/golangdaddy/cutup/pkg/data"
	"github.com/golangdaddy/cutup/pkg/models/car"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sedan = car.StatBlock{TopSpeed: 55, Acceleration: 50, Handling: 85, Boost: 100, Durability: 100, EarningsMultiplier: 1.0}

// Verify Player implements Controls
var _ Controls = (*Player)(nil)

func TestNewPerformance(t *testing.T) {
	perf := NewPerformance(sedan, data.DefaultTuning())

	assert.InDelta(t, 495.0, perf.MaxSpeed, 1e-9)
	assert.InDelta(t, 25.0, perf.AccelerationRate, 1e-9)
	assert.InDelta(t, 340.0, perf.LaneChangeSpeed, 1e-9)
	assert.Equal(t, 80*time.Millisecond, perf.LaneChangeDuration)
	assert.InDelta(t, 1.8, perf.BoostMultiplier, 1e-9)
}

func TestNewPerformance_HandlingShortensLaneChange(t *testing.T) {
	tun := data.DefaultTuning()

	quick := sedan
	quick.Handling = 200
	assert.Equal(t, 50*time.Millisecond, NewPerformance(quick, tun).LaneChangeDuration)

	stuck := sedan
	stuck.Handling = 0
	assert.Equal(t, tun.LaneChangeMax, NewPerformance(stuck, tun).LaneChangeDuration)
}

func TestNewPerformance_NitroRaisesBoost(t *testing.T) {
	tuned := sedan
	tuned.Boost = 150
	assert.InDelta(t, 2.2, NewPerformance(tuned, data.DefaultTuning()).BoostMultiplier, 1e-9)
}

func TestNewPlayer_StartState(t *testing.T) {
	tun := data.DefaultTuning()
	p := NewPlayer(sedan, tun)

	s := p.State()
	assert.Equal(t, 2, s.Lane)
	assert.Equal(t, 2, s.TargetLane)
	assert.Equal(t, tun.LaneCenterX(2), s.X)
	assert.Equal(t, tun.BaseScrollSpeed, s.Speed)
	assert.InDelta(t, 495.0, s.TargetSpeed, 1e-9)
	assert.False(t, s.Boosting || s.CoolingDown || s.Braking || s.ChangingLane)
}

func TestLaneNeverEscapesRoad(t *testing.T) {
	tun := data.DefaultTuning()
	p := NewPlayer(sedan, tun)

	for i := 0; i < 50; i++ {
		p.MoveLeft()
		p.Advance(10 * time.Millisecond)
		assert.GreaterOrEqual(t, p.TargetLane(), 0)
	}
	p.Advance(time.Second)
	assert.Equal(t, 0, p.Lane())

	for i := 0; i < 50; i++ {
		p.MoveRight()
		assert.LessOrEqual(t, p.TargetLane(), tun.Lanes-1)
	}
	p.Advance(time.Second)
	assert.Equal(t, tun.Lanes-1, p.Lane())

	assert.False(t, p.MoveToLane(99), "clamped to the lane already targeted")
	assert.True(t, p.MoveToLane(-7))
	assert.Equal(t, 0, p.TargetLane())
}

func TestMoveToLane_Transition(t *testing.T) {
	tun := data.DefaultTuning()
	p := NewPlayer(sedan, tun)

	require.True(t, p.MoveToLane(3))
	assert.False(t, p.MoveToLane(3), "same target is a no-op")

	p.Advance(40 * time.Millisecond)
	s := p.State()
	assert.True(t, s.ChangingLane)
	assert.Equal(t, 2, s.Lane)
	assert.Greater(t, s.X, tun.LaneCenterX(2))
	assert.Less(t, s.X, tun.LaneCenterX(3))

	p.Advance(40 * time.Millisecond)
	s = p.State()
	assert.False(t, s.ChangingLane)
	assert.Equal(t, 3, s.Lane)
	assert.Equal(t, tun.LaneCenterX(3), s.X)
}

func TestMoveToLane_RedirectMidTransition(t *testing.T) {
	tun := data.DefaultTuning()
	p := NewPlayer(sedan, tun)

	p.MoveRight()
	p.Advance(40 * time.Millisecond)
	mid := p.X()

	p.MoveLeft() // back toward lane 2
	assert.Equal(t, 2, p.TargetLane())
	assert.Equal(t, mid, p.X(), "a redirected transition starts from the current position")

	p.Advance(80 * time.Millisecond)
	assert.Equal(t, tun.LaneCenterX(2), p.X())
}

func TestBoostLifecycle(t *testing.T) {
	tun := data.DefaultTuning()
	p := NewPlayer(sedan, tun)
	maxSpeed := p.Performance().MaxSpeed

	require.True(t, p.Boost())
	assert.False(t, p.Boost(), "already boosting")
	assert.InDelta(t, maxSpeed*1.8, p.State().TargetSpeed, 1e-9)
	assert.Equal(t, 1.0, p.BoostCharge())

	p.Advance(tun.BoostDuration)
	s := p.State()
	assert.False(t, s.Boosting)
	assert.True(t, s.CoolingDown)
	assert.Equal(t, maxSpeed, s.TargetSpeed)
	assert.False(t, p.Boost(), "cooling down")
	assert.Equal(t, 0.0, p.BoostCharge())

	p.Advance(tun.BoostCooldown / 2)
	assert.InDelta(t, 0.5, p.BoostCharge(), 1e-9)

	p.Advance(tun.BoostCooldown / 2)
	assert.False(t, p.State().CoolingDown)
	assert.Equal(t, 1.0, p.BoostCharge())
	assert.True(t, p.Boost())
}

func TestBoost_LongFrameFiresBothDeadlines(t *testing.T) {
	tun := data.DefaultTuning()
	p := NewPlayer(sedan, tun)

	require.True(t, p.Boost())
	p.Advance(tun.BoostDuration + tun.BoostCooldown)

	s := p.State()
	assert.False(t, s.Boosting)
	assert.False(t, s.CoolingDown)
}

func TestBrakeAndRelease(t *testing.T) {
	tun := data.DefaultTuning()
	p := NewPlayer(sedan, tun)
	maxSpeed := p.Performance().MaxSpeed

	p.Brake()
	assert.InDelta(t, 90.0, p.State().TargetSpeed, 1e-9)
	p.ReleaseBrake()
	assert.Equal(t, maxSpeed, p.State().TargetSpeed)

	p.Boost()
	p.Brake()
	assert.InDelta(t, 90.0, p.State().TargetSpeed, 1e-9)
	p.ReleaseBrake()
	assert.InDelta(t, maxSpeed*1.8, p.State().TargetSpeed, 1e-9)

	// boost ending while the brake is held keeps braking
	p.Brake()
	p.Advance(tun.BoostDuration)
	assert.InDelta(t, 90.0, p.State().TargetSpeed, 1e-9)
}

func TestAdvance_ApproachesTargetWithoutOvershoot(t *testing.T) {
	tun := data.DefaultTuning()
	p := NewPlayer(sedan, tun) // 150 -> 495 at 25 px/s²

	p.Advance(time.Second)
	assert.InDelta(t, 175.0, p.Speed(), 1e-9)

	for i := 0; i < 2000; i++ {
		p.Advance(16 * time.Millisecond)
		assert.LessOrEqual(t, p.Speed(), p.Performance().MaxSpeed+1e-9)
	}
	assert.Equal(t, p.Performance().MaxSpeed, p.Speed(), "snaps to target")

	p.Brake()
	for i := 0; i < 2000; i++ {
		p.Advance(16 * time.Millisecond)
		assert.GreaterOrEqual(t, p.Speed(), 90.0-1e-9)
	}
	assert.InDelta(t, 90.0, p.Speed(), 1e-9)
}

func TestPassMemoryExpires(t *testing.T) {
	tun := data.DefaultTuning()
	p := NewPlayer(sedan, tun)

	assert.False(t, p.HasPassed(7))
	p.MarkPassed(7)
	assert.True(t, p.HasPassed(7))
	assert.True(t, p.HasPassed(7))

	p.Advance(tun.PassMemory - time.Millisecond)
	assert.True(t, p.HasPassed(7))

	p.Advance(time.Millisecond)
	assert.False(t, p.HasPassed(7))
	assert.Empty(t, p.passed, "expired entries are purged")
}
