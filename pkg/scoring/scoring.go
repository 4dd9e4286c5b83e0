package scoring

import (
	"math"
	"time"

	"github.com/golangdaddy/cutup/pkg/data"
	"github.com/golangdaddy/cutup/pkg/models/profile"
)

// ClosePass describes the reward for one close pass
type ClosePass struct {
	Reward     int
	Combo      int
	Multiplier float64
	NewMax     bool // Combo is above 1 and equals the run best
}

// Summary is the run outcome shown on the game over screen
type Summary struct {
	Money       int     `json:"money"`
	ClosePasses int     `json:"closePasses"`
	MaxCombo    int     `json:"maxCombo"`
	Multiplier  float64 `json:"multiplier"`
	SpeedBonus  int     `json:"speedBonus"` // Portion of Money earned from speed
}

// Engine tracks combo and earnings for one run
type Engine struct {
	tuning   data.Tuning
	earnings float64 // Vehicle earnings multiplier

	now         time.Duration
	comboEndsAt time.Duration
	lastPassAt  time.Duration

	runMoney      int
	speedMoney    int
	combo         int
	maxCombo      int
	closePasses   int
	speedFraction float64

	finalized bool
}

// New creates a scoring engine for a run in a vehicle with the given earnings multiplier
func New(t data.Tuning, earningsMultiplier float64) *Engine {
	return &Engine{
		tuning:   t,
		earnings: earningsMultiplier,
	}
}

// Advance moves the run clock forward and drops the combo once its timeout passes
func (e *Engine) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	e.now += dt
	if e.combo > 0 && e.now >= e.comboEndsAt {
		e.combo = 0
	}
}

// RegisterClosePass awards money for passing traffic at the given lateral distance.
// The caller has already checked distance against the close pass range.
func (e *Engine) RegisterClosePass(distance float64) ClosePass {
	if e.finalized {
		return ClosePass{Multiplier: e.Multiplier()}
	}

	maxDistance := e.tuning.ClosePassDistance
	closeness := 0.0
	if maxDistance > 0 {
		closeness = 1 - math.Min(math.Max(distance, 0), maxDistance)/maxDistance
	}
	base := math.Floor(float64(e.tuning.ClosePassReward) * (0.5 + closeness*0.5))

	e.combo++
	e.closePasses++
	if e.combo > e.maxCombo {
		e.maxCombo = e.combo
	}

	multiplier := e.Multiplier()
	reward := int(math.Floor(base * multiplier * e.earnings))
	e.runMoney += reward

	// One deadline, restarted on every pass
	e.comboEndsAt = e.now + e.tuning.ComboTimeout
	e.lastPassAt = e.now

	return ClosePass{
		Reward:     reward,
		Combo:      e.combo,
		Multiplier: multiplier,
		NewMax:     e.combo == e.maxCombo && e.combo > 1,
	}
}

// AddSpeedBonus accrues money for driving above the bonus threshold and
// returns the whole units credited by this call
func (e *Engine) AddSpeedBonus(speed, dtSeconds float64) int {
	if e.finalized || speed <= e.tuning.SpeedBonusThreshold || dtSeconds <= 0 {
		return 0
	}

	e.speedFraction += (speed - e.tuning.SpeedBonusThreshold) * e.tuning.SpeedBonusRate * dtSeconds
	if e.speedFraction < 1 {
		return 0
	}

	whole := math.Floor(e.speedFraction)
	e.speedFraction -= whole
	e.runMoney += int(whole)
	e.speedMoney += int(whole)
	return int(whole)
}

// Multiplier returns the combo multiplier, saturating at the last tier
func (e *Engine) Multiplier() float64 {
	levels := e.tuning.ComboLevels
	if e.combo == 0 || len(levels) == 0 {
		return 1
	}
	return levels[min(e.combo-1, len(levels)-1)]
}

// Combo returns the live combo counter
func (e *Engine) Combo() int {
	return e.combo
}

// ComboRemaining returns the time left before the combo resets
func (e *Engine) ComboRemaining() time.Duration {
	if e.combo == 0 {
		return 0
	}
	return max(0, e.comboEndsAt-e.now)
}

// SinceLastPass returns the run time elapsed since the latest close pass
func (e *Engine) SinceLastPass() time.Duration {
	return e.now - e.lastPassAt
}

// RunMoney returns the money earned so far this run
func (e *Engine) RunMoney() int {
	return e.runMoney
}

// SpeedFraction returns the uncredited part of the speed bonus
func (e *Engine) SpeedFraction() float64 {
	return e.speedFraction
}

// Summary returns the run outcome so far
func (e *Engine) Summary() Summary {
	return Summary{
		Money:       e.runMoney,
		ClosePasses: e.closePasses,
		MaxCombo:    e.maxCombo,
		Multiplier:  e.Multiplier(),
		SpeedBonus:  e.speedMoney,
	}
}

// Finalized reports whether the run has been folded into a profile
func (e *Engine) Finalized() bool {
	return e.finalized
}

// FinalizeRun folds the run into the profile and reports a new high score.
// Only the first call has any effect; later calls return false.
func (e *Engine) FinalizeRun(save *profile.SaveProfile) bool {
	if e.finalized || save == nil {
		return false
	}
	e.finalized = true

	save.Money += e.runMoney
	save.TotalEarnings += e.runMoney
	save.TotalRuns++

	if e.runMoney > save.HighScore {
		save.HighScore = e.runMoney
		return true
	}
	return false
}
