package vehicle

import (
	"math"
	"time"

	"github.com/golangdaddy/cutup/pkg/data"
	"github.com/golangdaddy/cutup/pkg/models/car"
)

// Performance holds the handling figures derived from effective stats.
// It is computed once when a run starts.
type Performance struct {
	MaxSpeed           float64       // Cruising top speed (px/s)
	AccelerationRate   float64       // Speed change per second (px/s²)
	LaneChangeSpeed    float64       // Lateral speed (px/s)
	LaneChangeDuration time.Duration // Length of one lane transition
	BoostMultiplier    float64       // Applied to MaxSpeed while boosting
}

// NewPerformance derives run handling from effective stats
func NewPerformance(stats car.StatBlock, t data.Tuning) Performance {
	laneChange := t.LaneChangeMax
	if stats.Handling > 0 {
		scaled := time.Duration(float64(t.LaneChangeBase) * (100 / float64(stats.Handling)))
		laneChange = min(t.LaneChangeMax, scaled)
	}

	return Performance{
		MaxSpeed:           t.MaxScrollSpeed * (float64(stats.TopSpeed) / 100),
		AccelerationRate:   t.BaseAccelerationRate * (float64(stats.Acceleration) / 100),
		LaneChangeSpeed:    t.BaseLaneChangeSpeed * (float64(stats.Handling) / 100),
		LaneChangeDuration: laneChange,
		// Nitro upgrades stretch the boost gain; a stock car gets exactly the tuning value.
		BoostMultiplier: 1 + (t.BoostMultiplier-1)*(float64(stats.Boost)/100),
	}
}

// State is a read-only snapshot of the player's car
type State struct {
	Lane         int     // Lane the car is settled in
	TargetLane   int     // Lane the car is heading to
	X            float64 // Lateral center in play-area pixels
	Speed        float64
	TargetSpeed  float64
	ChangingLane bool
	Boosting     bool
	CoolingDown  bool
	Braking      bool
}

// Player simulates the player's car for one run
type Player struct {
	tuning data.Tuning
	perf   Performance
	now    time.Duration // Run clock, advanced by Advance

	// Lanes
	lane       int
	targetLane int
	fromX      float64
	shiftStart time.Duration
	shifting   bool

	// Speed
	speed       float64
	targetSpeed float64

	// Boost and brake
	boosting       bool
	coolingDown    bool
	braking        bool
	boostEndsAt    time.Duration
	cooldownEndsAt time.Duration

	// Traffic ids already credited, with their expiry
	passed map[int64]time.Duration
}

// NewPlayer creates a player car in the middle lane at base scroll speed,
// accelerating toward its top speed
func NewPlayer(stats car.StatBlock, t data.Tuning) *Player {
	perf := NewPerformance(stats, t)
	start := t.Lanes / 2
	return &Player{
		tuning:      t,
		perf:        perf,
		lane:        start,
		targetLane:  start,
		fromX:       t.LaneCenterX(start),
		speed:       t.BaseScrollSpeed,
		targetSpeed: perf.MaxSpeed,
		passed:      make(map[int64]time.Duration),
	}
}

// Performance returns the handling figures fixed for this run
func (p *Player) Performance() Performance {
	return p.perf
}

// MoveToLane starts a lane change toward index, clamped to the road.
// It reports whether a new transition started.
func (p *Player) MoveToLane(index int) bool {
	index = p.tuning.ClampLane(index)
	if index == p.targetLane {
		return false
	}

	// Restart from wherever the car is right now
	p.fromX = p.X()
	p.targetLane = index
	p.shiftStart = p.now
	p.shifting = true
	return true
}

// MoveLeft moves one lane to the left
func (p *Player) MoveLeft() {
	p.MoveToLane(p.targetLane - 1)
}

// MoveRight moves one lane to the right
func (p *Player) MoveRight() {
	p.MoveToLane(p.targetLane + 1)
}

// Boost fires the nitro. It fails while boosting or cooling down.
func (p *Player) Boost() bool {
	if p.boosting || p.coolingDown {
		return false
	}
	p.boosting = true
	p.boostEndsAt = p.now + p.tuning.BoostDuration
	p.targetSpeed = p.boostedSpeed()
	return true
}

// Brake slows the car toward a fraction of the base scroll speed
func (p *Player) Brake() {
	p.braking = true
	p.targetSpeed = p.brakeSpeed()
}

// ReleaseBrake restores the cruising or boosted target speed
func (p *Player) ReleaseBrake() {
	p.braking = false
	if p.boosting {
		p.targetSpeed = p.boostedSpeed()
		return
	}
	p.targetSpeed = p.perf.MaxSpeed
}

// Advance moves the simulation forward by dt
func (p *Player) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	p.now += dt

	if p.boosting && p.now >= p.boostEndsAt {
		p.boosting = false
		p.coolingDown = true
		p.cooldownEndsAt = p.boostEndsAt + p.tuning.BoostCooldown
		if p.braking {
			p.targetSpeed = p.brakeSpeed()
		} else {
			p.targetSpeed = p.perf.MaxSpeed
		}
	}
	if p.coolingDown && p.now >= p.cooldownEndsAt {
		p.coolingDown = false
	}

	step := p.perf.AccelerationRate * dt.Seconds()
	diff := p.targetSpeed - p.speed
	if math.Abs(diff) <= step {
		p.speed = p.targetSpeed
	} else if diff > 0 {
		p.speed += step
	} else {
		p.speed -= step
	}

	if p.shifting && p.now-p.shiftStart >= p.perf.LaneChangeDuration {
		p.shifting = false
		p.lane = p.targetLane
		p.fromX = p.tuning.LaneCenterX(p.lane)
	}

	for id, expires := range p.passed {
		if p.now >= expires {
			delete(p.passed, id)
		}
	}
}

// X returns the lateral center of the car, easing out during lane changes
func (p *Player) X() float64 {
	toX := p.tuning.LaneCenterX(p.targetLane)
	if !p.shifting || p.perf.LaneChangeDuration <= 0 {
		return toX
	}
	t := float64(p.now-p.shiftStart) / float64(p.perf.LaneChangeDuration)
	if t >= 1 {
		return toX
	}
	eased := 1 - (1-t)*(1-t)
	return p.fromX + (toX-p.fromX)*eased
}

// Speed returns the current scroll speed
func (p *Player) Speed() float64 {
	return p.speed
}

// Lane returns the lane the car is settled in
func (p *Player) Lane() int {
	return p.lane
}

// TargetLane returns the lane the car is heading to
func (p *Player) TargetLane() int {
	return p.targetLane
}

// MarkPassed remembers a traffic car as credited for the pass memory window
func (p *Player) MarkPassed(id int64) {
	p.passed[id] = p.now + p.tuning.PassMemory
}

// HasPassed reports whether a traffic car was credited recently
func (p *Player) HasPassed(id int64) bool {
	expires, ok := p.passed[id]
	return ok && p.now < expires
}

// BoostCharge returns the boost meter: 1 when ready or boosting,
// rising from 0 to 1 during cooldown
func (p *Player) BoostCharge() float64 {
	if !p.coolingDown || p.tuning.BoostCooldown <= 0 {
		return 1
	}
	started := p.cooldownEndsAt - p.tuning.BoostCooldown
	return math.Min(1, math.Max(0, float64(p.now-started)/float64(p.tuning.BoostCooldown)))
}

// State returns a snapshot for renderers and tests
func (p *Player) State() State {
	return State{
		Lane:         p.lane,
		TargetLane:   p.targetLane,
		X:            p.X(),
		Speed:        p.speed,
		TargetSpeed:  p.targetSpeed,
		ChangingLane: p.shifting,
		Boosting:     p.boosting,
		CoolingDown:  p.coolingDown,
		Braking:      p.braking,
	}
}

func (p *Player) boostedSpeed() float64 {
	return p.perf.MaxSpeed * p.perf.BoostMultiplier
}

func (p *Player) brakeSpeed() float64 {
	return p.tuning.BaseScrollSpeed * p.tuning.BrakeFactor
}
