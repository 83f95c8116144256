package scripts

import (
	"ScrollMat/internal/behaviour"

	"github.com/go-gl/mathgl/mgl32"
)

// RotateScript spins its object around the world Axis at Speed radians per
// second, whatever its current orientation.
type RotateScript struct {
	behaviour.BaseComponent
	Axis  mgl32.Vec3
	Speed float32
}

func init() {
	behaviour.RegisterScript("RotateScript", func() behaviour.Component {
		return NewRotateScript(0.5)
	})
}

func NewRotateScript(speed float32) *RotateScript {
	return &RotateScript{Axis: mgl32.Vec3{0, 1, 0}, Speed: speed}
}

func (r *RotateScript) Update() {
	angle := r.Speed * r.Time().Delta
	if angle == 0 {
		return
	}
	r.GetGameObject().Transform.RotateWorld(r.Axis, angle)
}
