package vehicle

// Controls is the logical command surface an input handler drives.
// Implementations treat commands that cannot apply as no-ops.
type Controls interface {
	MoveLeft()
	MoveRight()
	Boost() bool
	Brake()
	ReleaseBrake()
}
