package renderer

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a free-flying perspective camera. Orientation is kept as yaw and
// pitch in degrees; Front, Right and Up are derived from them.
type Camera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3
	Right    mgl32.Vec3
	WorldUp  mgl32.Vec3
	Yaw      float32
	Pitch    float32

	Speed       float32 // World units per second
	Sensitivity float32 // Degrees per pixel of mouse movement
	InvertMouse bool

	Fov         float32 // Vertical, degrees
	Near, Far   float32
	AspectRatio float32
	Projection  mgl32.Mat4
}

// MoveInput is one frame of movement intent, each axis in [-1,1].
type MoveInput struct {
	Forward float32
	Right   float32
	Up      float32
	Boost   bool
}

// boostFactor multiplies the speed while shift is held.
const boostFactor = 2.5

func NewDefaultCamera(width int32, height int32) *Camera {
	c := &Camera{
		Position:    mgl32.Vec3{0, 0, 10},
		WorldUp:     mgl32.Vec3{0, 1, 0},
		Yaw:         -90,
		Speed:       10,
		Sensitivity: 0.1,
		Fov:         45,
		Near:        0.1,
		Far:         1000,
		AspectRatio: float32(width) / float32(height),
	}
	c.updateCameraVectors()
	c.UpdateProjection()
	return c
}

func (c *Camera) UpdateProjection() {
	c.Projection = mgl32.Perspective(mgl32.DegToRad(c.Fov), c.AspectRatio, c.Near, c.Far)
	SetFrustumDirty()
}

// SetAspectRatio follows window resizes.
func (c *Camera) SetAspectRatio(aspectRatio float32) {
	c.AspectRatio = aspectRatio
	c.UpdateProjection()
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.ViewMatrix())
}

// LookAt turns the camera towards target without moving it.
func (c *Camera) LookAt(target mgl32.Vec3) {
	direction := target.Sub(c.Position)
	if direction.Len() == 0 {
		return
	}
	direction = direction.Normalize()
	c.Yaw = mgl32.RadToDeg(float32(math.Atan2(float64(direction.Z()), float64(direction.X()))))
	c.Pitch = mgl32.RadToDeg(float32(math.Asin(float64(direction.Y()))))
	c.updateCameraVectors()
}

// ProcessKeyboard moves the camera with WASD, Q/E for down/up and shift to
// go faster.
func (c *Camera) ProcessKeyboard(window *glfw.Window, deltaTime float32) {
	pressed := func(keys ...glfw.Key) bool {
		for _, key := range keys {
			if window.GetKey(key) == glfw.Press {
				return true
			}
		}
		return false
	}
	axis := func(negative, positive glfw.Key) float32 {
		var v float32
		if pressed(positive) {
			v++
		}
		if pressed(negative) {
			v--
		}
		return v
	}
	c.Move(MoveInput{
		Forward: axis(glfw.KeyS, glfw.KeyW),
		Right:   axis(glfw.KeyA, glfw.KeyD),
		Up:      axis(glfw.KeyQ, glfw.KeyE),
		Boost:   pressed(glfw.KeyLeftShift, glfw.KeyRightShift),
	}, deltaTime)
}

// Move applies one frame of movement relative to where the camera faces.
// Up moves along the world up axis.
func (c *Camera) Move(in MoveInput, deltaTime float32) {
	step := c.Speed * deltaTime
	if in.Boost {
		step *= boostFactor
	}
	delta := c.Front.Mul(in.Forward).Add(c.Right.Mul(in.Right)).Add(c.WorldUp.Mul(in.Up))
	if delta.Len() == 0 || step == 0 {
		return
	}
	c.Position = c.Position.Add(delta.Mul(step))
	SetFrustumDirty()
}

// ProcessMouseMovement turns the camera by a mouse offset in pixels. Pitch is
// kept short of straight up or down.
func (c *Camera) ProcessMouseMovement(xoffset, yoffset float32) {
	if c.InvertMouse {
		yoffset = -yoffset
	}
	c.Yaw += xoffset * c.Sensitivity
	c.Pitch = mgl32.Clamp(c.Pitch+yoffset*c.Sensitivity, -89, 89)
	c.updateCameraVectors()
}

func (c *Camera) updateCameraVectors() {
	yaw, pitch := float64(mgl32.DegToRad(c.Yaw)), float64(mgl32.DegToRad(c.Pitch))
	c.Front = mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
	SetFrustumDirty()
}

type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

func (p Plane) DistanceToPoint(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) + p.Distance
}

// Frustum planes face inward: left, right, bottom, top, near, far.
type Frustum struct {
	Planes [6]Plane
}

// CalculateFrustum extracts the clip planes from the view-projection matrix
// (Gribb/Hartmann).
func (c *Camera) CalculateFrustum() Frustum {
	vp := c.ViewProjection()
	w := vp.Row(3)
	var f Frustum
	for axis := 0; axis < 3; axis++ {
		row := vp.Row(axis)
		f.Planes[axis*2] = planeFrom(w.Add(row))
		f.Planes[axis*2+1] = planeFrom(w.Sub(row))
	}
	return f
}

func planeFrom(v mgl32.Vec4) Plane {
	n := v.Vec3()
	length := n.Len()
	if length == 0 {
		return Plane{}
	}
	return Plane{Normal: n.Mul(1 / length), Distance: v.W() / length}
}

// IntersectsSphere reports whether any part of the sphere is inside.
func (f *Frustum) IntersectsSphere(center mgl32.Vec3, radius float32) bool {
	for _, plane := range f.Planes {
		if plane.DistanceToPoint(center) < -radius {
			return false
		}
	}
	return true
}
