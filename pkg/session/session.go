package session

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/golangdaddy/cutup/pkg/data"
	"github.com/golangdaddy/cutup/pkg/models/car"
	"github.com/golangdaddy/cutup/pkg/models/profile"
	"github.com/golangdaddy/cutup/pkg/road"
	"github.com/golangdaddy/cutup/pkg/scoring"
	"github.com/golangdaddy/cutup/pkg/upgrade"
	"github.com/golangdaddy/cutup/pkg/vehicle"
	"github.com/rs/zerolog"
)

// ErrNoVehicle is returned when the profile has no drivable vehicle selected
var ErrNoVehicle = errors.New("no drivable vehicle selected")

// EventKind identifies what happened during a tick
type EventKind int

const (
	EventClosePass EventKind = iota
	EventSpeedBonus
	EventDifficultyUp
	EventCrash
)

func (k EventKind) String() string {
	switch k {
	case EventClosePass:
		return "close_pass"
	case EventSpeedBonus:
		return "speed_bonus"
	case EventDifficultyUp:
		return "difficulty_up"
	case EventCrash:
		return "crash"
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is something the frame driver may want to show
type Event struct {
	Kind       EventKind
	Amount     int     // Money credited
	Combo      int     // Close pass only
	Multiplier float64 // Close pass only
	NewMax     bool    // Close pass only
	TrafficID  int64   // Close pass and crash
	X, Y       float64 // Where it happened
	Difficulty float64 // Difficulty up only
}

// Result is the outcome of a finished run
type Result struct {
	scoring.Summary
	VehicleID    string
	Duration     time.Duration
	Crashed      bool
	NewHighScore bool
}

// Option configures a Session
type Option func(*Session)

// WithRand sets the random source used for traffic
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		s.rng = rng
	}
}

// WithLogger sets the session logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// Session drives one run: the player's car, traffic and scoring
type Session struct {
	save    *profile.SaveProfile
	tuning  data.Tuning
	def     car.Definition
	stats   car.StatBlock
	rng     *rand.Rand
	logger  zerolog.Logger
	player  *vehicle.Player
	spawner *road.Spawner
	score   *scoring.Engine

	elapsed          time.Duration
	nextDifficultyAt time.Duration

	crashed bool
	ended   bool
	result  Result
}

// Verify Session implements vehicle.Controls
var _ vehicle.Controls = (*Session)(nil)

// New starts a run in the profile's selected vehicle
func New(save *profile.SaveProfile, t data.Tuning, opts ...Option) (*Session, error) {
	if save == nil || !save.Owns(save.SelectedVehicleID) {
		return nil, ErrNoVehicle
	}
	def, ok := data.Vehicle(save.SelectedVehicleID)
	if !ok {
		return nil, ErrNoVehicle
	}
	stats, err := upgrade.StatsFor(save, def.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoVehicle, err)
	}

	s := &Session{
		save:   save,
		tuning: t,
		def:    def,
		stats:  stats,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	s.player = vehicle.NewPlayer(stats, t)
	s.spawner = road.NewSpawner(t, s.rng)
	s.score = scoring.New(t, stats.EarningsMultiplier)
	s.nextDifficultyAt = t.DifficultyInterval
	s.spawner.Start()

	s.logger.Info().
		Str("vehicle", def.ID).
		Int("topSpeed", stats.TopSpeed).
		Int("handling", stats.Handling).
		Float64("earnings", stats.EarningsMultiplier).
		Msg("Run started")

	return s, nil
}

// MoveLeft changes one lane to the left
func (s *Session) MoveLeft() {
	if s.crashed {
		return
	}
	s.player.MoveLeft()
}

// MoveRight changes one lane to the right
func (s *Session) MoveRight() {
	if s.crashed {
		return
	}
	s.player.MoveRight()
}

// Boost fires the nitro. Boost is ignored while the brake is held.
func (s *Session) Boost() bool {
	if s.crashed || s.player.State().Braking {
		return false
	}
	return s.player.Boost()
}

// Brake holds the brake
func (s *Session) Brake() {
	if s.crashed {
		return
	}
	s.player.Brake()
}

// ReleaseBrake lets go of the brake
func (s *Session) ReleaseBrake() {
	if s.crashed {
		return
	}
	s.player.ReleaseBrake()
}

// Tick advances the run by dt and returns what happened.
// A crash ends the run and finalizes it into the profile.
func (s *Session) Tick(dt time.Duration) []Event {
	if s.crashed || s.ended {
		return nil
	}
	if dt < 0 {
		dt = 0
	}
	s.elapsed += dt

	s.player.Advance(dt)
	scroll := s.player.Speed()
	s.spawner.Advance(scroll, dt)
	s.score.Advance(dt)

	var events []Event

	if tc := s.collision(); tc != nil {
		s.crashed = true
		s.spawner.Stop()
		events = append(events, Event{Kind: EventCrash, TrafficID: tc.ID, X: tc.X, Y: tc.Y})
		s.logger.Info().
			Int64("traffic", tc.ID).
			Str("type", tc.Archetype.Type).
			Int("lane", tc.Lane).
			Dur("elapsed", s.elapsed).
			Msg("Crashed")
		s.End()
		return events
	}

	events = append(events, s.checkClosePasses()...)

	if bonus := s.score.AddSpeedBonus(scroll, dt.Seconds()); bonus > 0 {
		events = append(events, Event{Kind: EventSpeedBonus, Amount: bonus, X: s.player.X(), Y: s.tuning.PlayerY()})
	}

	for s.tuning.DifficultyInterval > 0 && s.elapsed >= s.nextDifficultyAt {
		s.spawner.IncreaseDifficulty(s.tuning.DifficultyStep)
		s.nextDifficultyAt += s.tuning.DifficultyInterval
		events = append(events, Event{Kind: EventDifficultyUp, Difficulty: s.spawner.Difficulty()})
		s.logger.Debug().Float64("difficulty", s.spawner.Difficulty()).Msg("Difficulty increased")
	}

	return events
}

// PlayerBounds returns the player's hitbox
func (s *Session) PlayerBounds() road.Box {
	return road.BoxAt(s.player.X(), s.tuning.PlayerY(), s.tuning.PlayerWidth, s.tuning.PlayerHeight)
}

func (s *Session) collision() *road.TrafficCar {
	player := s.PlayerBounds()
	for _, tc := range s.spawner.Traffic() {
		if player.Overlaps(tc.Bounds()) {
			return tc
		}
	}
	return nil
}

func (s *Session) checkClosePasses() []Event {
	var events []Event
	playerX := s.player.X()
	passLine := s.tuning.PlayerY() + s.tuning.PassLineOffset

	for _, tc := range s.spawner.Traffic() {
		if tc.IsCounted() || tc.Y <= passLine {
			continue
		}
		tc.MarkPassed()

		distance := math.Abs(tc.X - playerX)
		if distance >= s.tuning.ClosePassDistance || s.player.HasPassed(tc.ID) {
			continue
		}
		tc.MarkCounted()
		s.player.MarkPassed(tc.ID)

		pass := s.score.RegisterClosePass(distance)
		events = append(events, Event{
			Kind:       EventClosePass,
			Amount:     pass.Reward,
			Combo:      pass.Combo,
			Multiplier: pass.Multiplier,
			NewMax:     pass.NewMax,
			TrafficID:  tc.ID,
			X:          tc.X,
			Y:          tc.Y,
		})
		s.logger.Debug().
			Int64("traffic", tc.ID).
			Float64("distance", distance).
			Int("reward", pass.Reward).
			Int("combo", pass.Combo).
			Msg("Close pass")
	}
	return events
}

// End finishes the run and folds it into the profile. The first call
// finalizes and reports true; later calls return the same result and false.
func (s *Session) End() (Result, bool) {
	if s.ended {
		return s.result, false
	}
	s.ended = true
	s.spawner.Stop()

	summary := s.score.Summary()
	newHigh := s.score.FinalizeRun(s.save)
	s.result = Result{
		Summary:      summary,
		VehicleID:    s.def.ID,
		Duration:     s.elapsed,
		Crashed:      s.crashed,
		NewHighScore: newHigh,
	}

	s.logger.Info().
		Str("vehicle", s.def.ID).
		Int("money", summary.Money).
		Int("closePasses", summary.ClosePasses).
		Int("maxCombo", summary.MaxCombo).
		Bool("newHighScore", newHigh).
		Dur("duration", s.elapsed).
		Msg("Run finished")

	return s.result, true
}

// Over reports whether the run has ended
func (s *Session) Over() bool {
	return s.ended
}

// Crashed reports whether the run ended in a collision
func (s *Session) Crashed() bool {
	return s.crashed
}

// Player returns a snapshot of the player's car
func (s *Session) Player() vehicle.State {
	return s.player.State()
}

// BoostCharge returns the boost meter between 0 and 1
func (s *Session) BoostCharge() float64 {
	return s.player.BoostCharge()
}

// Traffic returns the live traffic
func (s *Session) Traffic() []*road.TrafficCar {
	return s.spawner.Traffic()
}

// InLane returns the live traffic in one lane
func (s *Session) InLane(lane int) []*road.TrafficCar {
	return s.spawner.InLane(lane)
}

// Difficulty returns the traffic difficulty scalar
func (s *Session) Difficulty() float64 {
	return s.spawner.Difficulty()
}

// Scoring returns the run's scoring engine for read access
func (s *Session) Scoring() *scoring.Engine {
	return s.score
}

// Elapsed returns the run time so far
func (s *Session) Elapsed() time.Duration {
	return s.elapsed
}

// Vehicle returns the definition of the car being driven
func (s *Session) Vehicle() car.Definition {
	return s.def
}

// Stats returns the effective stats fixed at run start
func (s *Session) Stats() car.StatBlock {
	return s.stats
}

// Tuning returns the gameplay constants for this run
func (s *Session) Tuning() data.Tuning {
	return s.tuning
}
