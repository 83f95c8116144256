package scripts

import (
	"ScrollMat/internal/behaviour"
	"ScrollMat/internal/logger"
	"ScrollMat/internal/material"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// KeySource reports presses since the previous frame.
type KeySource interface {
	JustPressed(key glfw.Key) bool
}

// ArrowKeys maps the arrow keys to scroll directions.
var ArrowKeys = map[glfw.Key]material.Direction{
	glfw.KeyLeft:  material.DirectionLeft,
	glfw.KeyRight: material.DirectionRight,
	glfw.KeyUp:    material.DirectionUp,
	glfw.KeyDown:  material.DirectionDown,
}

// ScrollInputScript nudges a scroll state once per key press.
type ScrollInputScript struct {
	behaviour.BaseComponent
	Keys     KeySource
	Scroll   *material.ScrollState
	Bindings map[glfw.Key]material.Direction
	OnChange func(speed mgl32.Vec2)
}

func init() {
	behaviour.RegisterScript("ScrollInputScript", func() behaviour.Component {
		return &ScrollInputScript{Bindings: ArrowKeys}
	})
}

func NewScrollInputScript(keys KeySource, scroll *material.ScrollState) *ScrollInputScript {
	return &ScrollInputScript{Keys: keys, Scroll: scroll, Bindings: ArrowKeys}
}

func (s *ScrollInputScript) Update() {
	if s.Keys == nil || s.Scroll == nil {
		return
	}
	changed := false
	for key, dir := range s.Bindings {
		if s.Keys.JustPressed(key) {
			s.Scroll.Nudge(dir)
			changed = true
		}
	}
	if !changed {
		return
	}
	speed := s.Scroll.Value()
	logger.Log.Info("Scroll speed changed",
		zap.Float32("x", speed.X()),
		zap.Float32("y", speed.Y()))
	if s.OnChange != nil {
		s.OnChange(speed)
	}
}
