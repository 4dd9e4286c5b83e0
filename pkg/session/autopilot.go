package session

import (
	"math"
	"time"
)

// Autopilot is a scripted driver used by the headless simulator.
// It steers toward the lane with the most time before contact.
type Autopilot struct {
	Lookahead      time.Duration // React to traffic closer than this
	BoostClearance time.Duration // Boost only when the lane is clear for this long
	MoveCooldown   time.Duration // Minimum gap between lane changes

	lastMove time.Duration
	moved    bool
}

// NewAutopilot creates an autopilot with cautious defaults
func NewAutopilot() *Autopilot {
	return &Autopilot{
		Lookahead:      900 * time.Millisecond,
		BoostClearance: 3 * time.Second,
		MoveCooldown:   100 * time.Millisecond,
	}
}

// Drive issues commands for the current frame
func (a *Autopilot) Drive(s *Session) {
	if s.Over() {
		return
	}
	t := s.Tuning()
	st := s.Player()
	lane := st.TargetLane

	current := a.timeToContact(s, lane)
	best, bestTime := lane, current

	canMove := !a.moved || s.Elapsed()-a.lastMove >= a.MoveCooldown
	if current < a.Lookahead.Seconds() && canMove {
		for _, candidate := range []int{lane - 1, lane + 1} {
			if candidate < 0 || candidate >= t.Lanes || !a.laneOpen(s, candidate) {
				continue
			}
			if ttc := a.timeToContact(s, candidate); ttc > bestTime {
				best, bestTime = candidate, ttc
			}
		}
	}

	switch {
	case best < lane:
		s.MoveLeft()
	case best > lane:
		s.MoveRight()
	}
	if best != lane {
		a.lastMove = s.Elapsed()
		a.moved = true
	}

	if bestTime < a.Lookahead.Seconds()/3 {
		if !st.Braking {
			s.Brake()
		}
		return
	}
	if st.Braking {
		s.ReleaseBrake()
	}
	if bestTime > a.BoostClearance.Seconds() && !st.Boosting {
		s.Boost()
	}
}

// timeToContact returns the seconds until the nearest car ahead in a lane
// reaches the player, or +Inf when nothing is closing
func (a *Autopilot) timeToContact(s *Session, lane int) float64 {
	t := s.Tuning()
	playerTop := t.PlayerY() - t.PlayerHeight/2
	scroll := s.Player().Speed

	best := math.Inf(1)
	for _, tc := range s.InLane(lane) {
		box := tc.Bounds()
		if box.MinY > playerTop+t.PlayerHeight {
			continue // already behind
		}
		gap := playerTop - box.MaxY
		if gap <= 0 {
			return 0
		}
		closing := scroll * (1 - tc.RelativeSpeed)
		if closing <= 0 {
			continue
		}
		best = math.Min(best, gap/closing)
	}
	return best
}

// laneOpen reports whether the side of the player is free in a lane
func (a *Autopilot) laneOpen(s *Session, lane int) bool {
	t := s.Tuning()
	player := s.PlayerBounds()
	for _, tc := range s.InLane(lane) {
		box := tc.Bounds()
		if box.MaxY+t.PlayerHeight/2 > player.MinY && box.MinY-t.PlayerHeight/2 < player.MaxY {
			return false
		}
	}
	return true
}
