package behaviour

import (
	"ScrollMat/internal/material"

	"github.com/go-gl/mathgl/mgl32"
)

// ScrollComponent changes a material's scroll speed continuously, by Rate
// UV/s every second. With MaxSpeed set the rate reverses when the speed
// magnitude passes it while still growing, so the drift swings back and forth.
type ScrollComponent struct {
	BaseComponent
	Scroll   *material.ScrollState
	Rate     mgl32.Vec2
	MaxSpeed float32
}

func NewScrollComponent(scroll *material.ScrollState, rate mgl32.Vec2) *ScrollComponent {
	return &ScrollComponent{Scroll: scroll, Rate: rate}
}

func (s *ScrollComponent) Update() {
	if s.Scroll == nil {
		return
	}
	s.Scroll.Advance(s.Rate, s.Time().Delta)

	speed := s.Scroll.Value()
	if s.MaxSpeed > 0 && speed.Len() > s.MaxSpeed && speed.Dot(s.Rate) > 0 {
		s.Rate = s.Rate.Mul(-1)
	}
}

// ScriptComponent wraps a registered script so it can be found by name
type ScriptComponent struct {
	BaseComponent
	ScriptName string
	Script     Component
}

func NewScriptComponent(scriptName string, script Component) *ScriptComponent {
	return &ScriptComponent{
		ScriptName: scriptName,
		Script:     script,
	}
}

// AttachScript creates the script registered under name and attaches it to obj.
func AttachScript(obj *GameObject, name string) (*ScriptComponent, bool) {
	script := CreateScript(name)
	if script == nil {
		return nil, false
	}
	sc := NewScriptComponent(name, script)
	obj.AddComponent(sc)
	return sc, true
}

func (s *ScriptComponent) Awake() {
	if s.Script != nil {
		s.Script.SetGameObject(s.GetGameObject())
		s.Script.SetEnabled(true)
		s.Script.Awake()
	}
}

func (s *ScriptComponent) Start() {
	if s.Script != nil {
		s.Script.Start()
	}
}

func (s *ScriptComponent) Update() {
	if s.Script != nil && s.Script.GetEnabled() {
		s.Script.Update()
	}
}

func (s *ScriptComponent) FixedUpdate() {
	if s.Script != nil && s.Script.GetEnabled() {
		s.Script.FixedUpdate()
	}
}

func (s *ScriptComponent) OnDestroy() {
	if s.Script != nil {
		s.Script.OnDestroy()
	}
}
