package data

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidTuning is returned when tuning values cannot drive a run
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning holds every gameplay constant that shapes game feel and economy.
// Distances are in pixels and speeds in pixels per second.
type Tuning struct {
	// Road layout
	Lanes      int     `mapstructure:"lanes"`
	LaneWidth  float64 `mapstructure:"laneWidth"`
	RoadMargin float64 `mapstructure:"roadMargin"`
	GameWidth  float64 `mapstructure:"gameWidth"`
	GameHeight float64 `mapstructure:"gameHeight"`

	// Player kinematics
	BaseScrollSpeed      float64       `mapstructure:"baseScrollSpeed"`
	MaxScrollSpeed       float64       `mapstructure:"maxScrollSpeed"`
	BaseAccelerationRate float64       `mapstructure:"baseAccelerationRate"`
	BaseLaneChangeSpeed  float64       `mapstructure:"baseLaneChangeSpeed"`
	LaneChangeBase       time.Duration `mapstructure:"laneChangeBase"`
	LaneChangeMax        time.Duration `mapstructure:"laneChangeMax"`
	BrakeFactor          float64       `mapstructure:"brakeFactor"`
	BoostDuration        time.Duration `mapstructure:"boostDuration"`
	BoostCooldown        time.Duration `mapstructure:"boostCooldown"`
	BoostMultiplier      float64       `mapstructure:"boostMultiplier"`
	PassMemory           time.Duration `mapstructure:"passMemory"`
	PlayerOffsetY        float64       `mapstructure:"playerOffsetY"` // Distance from the bottom edge
	PlayerWidth          float64       `mapstructure:"playerWidth"`
	PlayerHeight         float64       `mapstructure:"playerHeight"`

	// Scoring
	ClosePassDistance   float64       `mapstructure:"closePassDistance"`
	ClosePassReward     int           `mapstructure:"closePassReward"`
	PassLineOffset      float64       `mapstructure:"passLineOffset"` // Traffic must be this far below the player to count as passed
	ComboTimeout        time.Duration `mapstructure:"comboTimeout"`
	ComboLevels         []float64     `mapstructure:"comboLevels"`
	SpeedBonusThreshold float64       `mapstructure:"speedBonusThreshold"`
	SpeedBonusRate      float64       `mapstructure:"speedBonusRate"`

	// Traffic
	SpawnInterval        time.Duration `mapstructure:"spawnInterval"`
	SpawnJitter          float64       `mapstructure:"spawnJitter"`
	MultiSpawnChance     float64       `mapstructure:"multiSpawnChance"`
	MultiSpawnDifficulty float64       `mapstructure:"multiSpawnDifficulty"`
	MaxDifficulty        float64       `mapstructure:"maxDifficulty"`
	DifficultyStep       float64       `mapstructure:"difficultyStep"`
	DifficultyInterval   time.Duration `mapstructure:"difficultyInterval"`
	TrafficSpeedMin      float64       `mapstructure:"trafficSpeedMin"`
	TrafficSpeedSpread   float64       `mapstructure:"trafficSpeedSpread"`
	SpawnY               float64       `mapstructure:"spawnY"`
	DespawnMargin        float64       `mapstructure:"despawnMargin"`
}

// DefaultTuning returns the shipped balance
func DefaultTuning() Tuning {
	return Tuning{
		Lanes:      5,
		LaneWidth:  70,
		RoadMargin: 40,
		GameWidth:  450,
		GameHeight: 800,

		BaseScrollSpeed:      150,
		MaxScrollSpeed:       900,
		BaseAccelerationRate: 50,
		BaseLaneChangeSpeed:  400,
		LaneChangeBase:       100 * time.Millisecond,
		LaneChangeMax:        80 * time.Millisecond,
		BrakeFactor:          0.6,
		BoostDuration:        2 * time.Second,
		BoostCooldown:        5 * time.Second,
		BoostMultiplier:      1.8,
		PassMemory:           2 * time.Second,
		PlayerOffsetY:        150,
		PlayerWidth:          36,
		PlayerHeight:         65,

		ClosePassDistance:   60,
		ClosePassReward:     50,
		PassLineOffset:      40,
		ComboTimeout:        2 * time.Second,
		ComboLevels:         []float64{1, 1.5, 2, 3, 5},
		SpeedBonusThreshold: 500,
		SpeedBonusRate:      0.1,

		SpawnInterval:        800 * time.Millisecond,
		SpawnJitter:          0.3,
		MultiSpawnChance:     0.3,
		MultiSpawnDifficulty: 2.0,
		MaxDifficulty:        3.0,
		DifficultyStep:       0.1,
		DifficultyInterval:   10 * time.Second,
		TrafficSpeedMin:      0.7,
		TrafficSpeedSpread:   0.3,
		SpawnY:               -100,
		DespawnMargin:        100,
	}
}

// LaneCenterX returns the horizontal center of a lane in play-area pixels
func (t Tuning) LaneCenterX(lane int) float64 {
	return t.RoadMargin + float64(lane)*t.LaneWidth + t.LaneWidth/2
}

// PlayerY returns the fixed vertical center of the player's car
func (t Tuning) PlayerY() float64 {
	return t.GameHeight - t.PlayerOffsetY
}

// ClampLane keeps a lane index on the road
func (t Tuning) ClampLane(lane int) int {
	if lane < 0 {
		return 0
	}
	if lane > t.Lanes-1 {
		return t.Lanes - 1
	}
	return lane
}

// LaneAt returns the lane under a lateral position, clamped to the road
func (t Tuning) LaneAt(x float64) int {
	if t.LaneWidth <= 0 {
		return 0
	}
	return t.ClampLane(int(math.Floor((x - t.RoadMargin) / t.LaneWidth)))
}

// Validate checks the values a run cannot work without
func (t Tuning) Validate() error {
	switch {
	case t.Lanes < 1:
		return fmt.Errorf("%w: lanes must be at least 1, got %d", ErrInvalidTuning, t.Lanes)
	case t.LaneWidth <= 0:
		return fmt.Errorf("%w: laneWidth must be positive", ErrInvalidTuning)
	case t.SpawnInterval <= 0:
		return fmt.Errorf("%w: spawnInterval must be positive", ErrInvalidTuning)
	case t.SpawnJitter < 0 || t.SpawnJitter >= 1:
		return fmt.Errorf("%w: spawnJitter must be in [0, 1)", ErrInvalidTuning)
	case t.MaxDifficulty < 1:
		return fmt.Errorf("%w: maxDifficulty must be at least 1", ErrInvalidTuning)
	case len(t.ComboLevels) == 0:
		return fmt.Errorf("%w: comboLevels must not be empty", ErrInvalidTuning)
	case t.ClosePassDistance <= 0:
		return fmt.Errorf("%w: closePassDistance must be positive", ErrInvalidTuning)
	}
	return nil
}
