package material

import "github.com/go-gl/mathgl/mgl32"

// DefaultStep is how far a single Nudge moves the scroll speed.
const DefaultStep float32 = 0.5

// Direction is a discrete input direction applied to a scroll speed.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionLeft
	DirectionRight
	DirectionUp
	DirectionDown
)

// Vec2 returns the unit vector for the direction. Up is +Y.
func (d Direction) Vec2() mgl32.Vec2 {
	switch d {
	case DirectionLeft:
		return mgl32.Vec2{-1, 0}
	case DirectionRight:
		return mgl32.Vec2{1, 0}
	case DirectionUp:
		return mgl32.Vec2{0, 1}
	case DirectionDown:
		return mgl32.Vec2{0, -1}
	default:
		return mgl32.Vec2{}
	}
}

func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "none"
	}
}

// ScrollState holds the texture coordinate scroll speed of one material
// instance, in UV units per second. Any float pair is valid; wrapping is
// left to the sampler.
type ScrollState struct {
	Speed mgl32.Vec2 // Current scroll speed uploaded to the shader
	Step  float32    // Distance moved by Nudge
}

// NewScrollState returns a state starting at the given speed with the default step.
func NewScrollState(speed mgl32.Vec2) *ScrollState {
	return &ScrollState{
		Speed: speed,
		Step:  DefaultStep,
	}
}

// Add moves the speed by delta.
func (s *ScrollState) Add(delta mgl32.Vec2) {
	s.Speed = s.Speed.Add(delta)
}

// Nudge moves the speed one step in the given direction. This is the
// discrete update used for key presses and is not scaled by frame time.
func (s *ScrollState) Nudge(dir Direction) {
	s.Add(dir.Vec2().Mul(s.Step))
}

// Advance moves the speed by rate*dt, for continuous changes that must not
// depend on the frame rate.
func (s *ScrollState) Advance(rate mgl32.Vec2, dt float32) {
	s.Add(rate.Mul(dt))
}

// Value returns the speed as it will be uploaded.
func (s *ScrollState) Value() mgl32.Vec2 {
	return s.Speed
}

// Set replaces the speed.
func (s *ScrollState) Set(speed mgl32.Vec2) {
	s.Speed = speed
}

// Offset returns the UV displacement after elapsed seconds at the current speed.
// The shader computes the same value from the uploaded speed and its time uniform.
func (s *ScrollState) Offset(elapsed float32) mgl32.Vec2 {
	return s.Speed.Mul(elapsed)
}
