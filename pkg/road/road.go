package road

import (
	"math/rand/v2"
	"time"

	"github.com/golangdaddy/cutup/pkg/data"
)

// Spawner introduces, moves and retires traffic for one run
type Spawner struct {
	tuning data.Tuning
	types  []data.TrafficArchetype
	rng    *rand.Rand

	now         time.Duration // Run clock, advanced by Advance
	difficulty  float64       // Spawn frequency multiplier, starts at 1
	running     bool
	nextSpawnAt time.Duration
	nextID      int64

	traffic []*TrafficCar
}

// NewSpawner creates a stopped spawner using the shipped traffic table
func NewSpawner(t data.Tuning, rng *rand.Rand) *Spawner {
	return &Spawner{
		tuning:     t,
		types:      data.TrafficTypes,
		rng:        rng,
		difficulty: 1,
		traffic:    make([]*TrafficCar, 0, 16),
	}
}

// Start begins spawning traffic
func (s *Spawner) Start() {
	if s.running {
		return
	}
	s.running = true
	s.nextSpawnAt = s.now + s.NextSpawnDelay()
}

// Stop cancels the pending spawn. Existing traffic is left in place.
func (s *Spawner) Stop() {
	s.running = false
	s.nextSpawnAt = 0
}

// Running reports whether the spawner will introduce more traffic
func (s *Spawner) Running() bool {
	return s.running
}

// NextSpawnDelay draws the gap before the next spawn:
// the base interval divided by difficulty, with uniform jitter
func (s *Spawner) NextSpawnDelay() time.Duration {
	interval := float64(s.tuning.SpawnInterval) / s.difficulty
	variance := interval * s.tuning.SpawnJitter
	delay := time.Duration(interval + (s.rng.Float64()*variance*2 - variance))
	if delay <= 0 {
		delay = time.Millisecond
	}
	return delay
}

// SelectLanes picks distinct lanes for one spawn event.
// Above the multi-spawn difficulty two lanes are sometimes filled at once.
func (s *Spawner) SelectLanes() []int {
	count := 1
	if s.difficulty > s.tuning.MultiSpawnDifficulty && s.rng.Float64() < s.tuning.MultiSpawnChance {
		count = 2
	}
	if count > s.tuning.Lanes {
		count = s.tuning.Lanes
	}
	return s.rng.Perm(s.tuning.Lanes)[:count]
}

// SpawnTraffic spawns one wave of traffic above the visible area
func (s *Spawner) SpawnTraffic() []*TrafficCar {
	lanes := s.SelectLanes()
	spawned := make([]*TrafficCar, 0, len(lanes))
	for _, lane := range lanes {
		spawned = append(spawned, s.spawnInLane(lane))
	}
	return spawned
}

func (s *Spawner) spawnInLane(lane int) *TrafficCar {
	archetype := s.types[s.rng.IntN(len(s.types))]
	tc := &TrafficCar{
		ID:            s.nextID,
		Archetype:     archetype,
		Lane:          lane,
		RelativeSpeed: archetype.SpeedMod * (s.tuning.TrafficSpeedMin + s.rng.Float64()*s.tuning.TrafficSpeedSpread),
		X:             s.tuning.LaneCenterX(lane),
		Y:             s.tuning.SpawnY,
	}
	s.nextID++
	s.traffic = append(s.traffic, tc)
	return tc
}

// Advance fires due spawns, moves traffic relative to the scroll speed and
// retires cars that left the play area. It returns the cars spawned.
func (s *Spawner) Advance(scrollSpeed float64, dt time.Duration) []*TrafficCar {
	if dt < 0 {
		dt = 0
	}
	s.now += dt

	var spawned []*TrafficCar
	for s.running && s.now >= s.nextSpawnAt {
		spawned = append(spawned, s.SpawnTraffic()...)
		s.nextSpawnAt += s.NextSpawnDelay()
	}

	seconds := dt.Seconds()
	bottom := s.tuning.GameHeight + s.tuning.DespawnMargin
	top := s.tuning.SpawnY - s.tuning.DespawnMargin

	active := s.traffic[:0]
	for _, tc := range s.traffic {
		// Cars slower than the player drift down the screen, faster ones pull away upward
		tc.Y += scrollSpeed * (1 - tc.RelativeSpeed) * seconds
		if tc.Y > bottom || tc.Y < top {
			continue
		}
		active = append(active, tc)
	}
	for i := len(active); i < len(s.traffic); i++ {
		s.traffic[i] = nil
	}
	s.traffic = active

	return spawned
}

// IncreaseDifficulty raises the difficulty scalar, capped at the tuning maximum
func (s *Spawner) IncreaseDifficulty(amount float64) {
	s.difficulty = min(s.difficulty+amount, s.tuning.MaxDifficulty)
}

// Difficulty returns the current difficulty scalar
func (s *Spawner) Difficulty() float64 {
	return s.difficulty
}

// Traffic returns the live traffic cars
func (s *Spawner) Traffic() []*TrafficCar {
	return s.traffic
}

// InLane returns the live traffic cars in one lane
func (s *Spawner) InLane(lane int) []*TrafficCar {
	var cars []*TrafficCar
	for _, tc := range s.traffic {
		if tc.Lane == lane {
			cars = append(cars, tc)
		}
	}
	return cars
}

// Clear stops the spawner and removes all traffic
func (s *Spawner) Clear() {
	s.Stop()
	s.traffic = s.traffic[:0]
}
