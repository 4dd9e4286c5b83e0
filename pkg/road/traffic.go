package road

import "github.com/golangdaddy/cutup/pkg/data"

// hitboxInset trims traffic hitboxes so grazing paint is not a crash
const hitboxInset = 4

// Box is an axis-aligned rectangle in play-area pixels
type Box struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// BoxAt returns a box of the given size centered on (x, y)
func BoxAt(x, y, width, height float64) Box {
	return Box{
		MinX: x - width/2,
		MinY: y - height/2,
		MaxX: x + width/2,
		MaxY: y + height/2,
	}
}

// Overlaps reports whether two boxes intersect
func (b Box) Overlaps(o Box) bool {
	return b.MinX < o.MaxX && o.MinX < b.MaxX && b.MinY < o.MaxY && o.MinY < b.MaxY
}

// TrafficCar represents an AI vehicle on the road
type TrafficCar struct {
	ID            int64 // Unique for the run, assigned in spawn order
	Archetype     data.TrafficArchetype
	Lane          int     // Lane index (0-based)
	RelativeSpeed float64 // Fraction of the scroll speed the car drives at
	X             float64 // Lane center
	Y             float64 // Vertical center, grows toward the bottom of the screen
	Passed        bool    // Car is behind the player
	Counted       bool    // Car has been scored
}

// MarkPassed records that the car dropped behind the player
func (tc *TrafficCar) MarkPassed() {
	tc.Passed = true
}

// MarkCounted records that the car has been scored
func (tc *TrafficCar) MarkCounted() {
	tc.Counted = true
}

// IsCounted reports whether the car has already been scored
func (tc *TrafficCar) IsCounted() bool {
	return tc.Counted
}

// Bounds returns the car's hitbox
func (tc *TrafficCar) Bounds() Box {
	return BoxAt(tc.X, tc.Y, tc.Archetype.Width-hitboxInset, tc.Archetype.Height-hitboxInset)
}
