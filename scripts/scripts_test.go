package scripts

import (
	"ScrollMat/internal/behaviour"
	"ScrollMat/internal/material"
	"math"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

type fakeKeys map[glfw.Key]bool

func (f fakeKeys) JustPressed(key glfw.Key) bool { return f[key] }

func spawn(cm *behaviour.ComponentManager, comp behaviour.Component) *behaviour.GameObject {
	obj := behaviour.NewGameObject("Test")
	obj.AddComponent(comp)
	cm.RegisterGameObject(obj)
	return obj
}

func TestRotateScriptHalfRadianPerSecond(t *testing.T) {
	cm := behaviour.NewComponentManager()
	obj := spawn(cm, NewRotateScript(0.5))

	cm.Step(1)
	cm.Step(1)

	want := mgl32.QuatRotate(1, mgl32.Vec3{0, 1, 0})
	if !obj.Transform.Rotation.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("Expected rotation %v after 2s, got %v", want, obj.Transform.Rotation)
	}
}

func TestRotateScriptSpinsAboutWorldAxis(t *testing.T) {
	cm := behaviour.NewComponentManager()
	tilt := mgl32.QuatRotate(-math.Pi/4, mgl32.Vec3{1, 0, 0})
	obj := behaviour.NewGameObject("Tilted")
	obj.Transform.SetRotation(tilt)
	obj.AddComponent(NewRotateScript(0.5))
	cm.RegisterGameObject(obj)

	cm.Step(2)

	want := mgl32.QuatRotate(1, mgl32.Vec3{0, 1, 0}).Mul(tilt)
	if !obj.Transform.Rotation.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("Expected rotation %v about world Y, got %v", want, obj.Transform.Rotation)
	}
	// The tilted object's local up must keep its angle to world Y
	up := obj.Transform.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
	if d := up.Dot(mgl32.Vec3{0, 1, 0}); math.Abs(float64(d)-math.Sqrt2/2) > 1e-5 {
		t.Errorf("Expected tilt to stay at 45 degrees, got cos %f", d)
	}
}

func TestRotateScriptRegistered(t *testing.T) {
	comp := behaviour.CreateScript("RotateScript")
	rs, ok := comp.(*RotateScript)
	if !ok {
		t.Fatalf("Expected *RotateScript, got %T", comp)
	}
	if rs.Speed != 0.5 {
		t.Errorf("Expected default speed 0.5, got %f", rs.Speed)
	}
}

func TestScrollInputRightPresses(t *testing.T) {
	cm := behaviour.NewComponentManager()
	scroll := material.NewScrollState(mgl32.Vec2{0, 1})
	keys := fakeKeys{glfw.KeyRight: true}
	spawn(cm, NewScrollInputScript(keys, scroll))

	for i := 0; i < 4; i++ {
		cm.Step(0.016)
	}

	if scroll.Value() != (mgl32.Vec2{2, 1}) {
		t.Errorf("Expected (2,1), got %v", scroll.Value())
	}
}

func TestScrollInputDownPress(t *testing.T) {
	cm := behaviour.NewComponentManager()
	scroll := material.NewScrollState(mgl32.Vec2{0, 1})
	var reported []mgl32.Vec2
	script := NewScrollInputScript(fakeKeys{glfw.KeyDown: true}, scroll)
	script.OnChange = func(speed mgl32.Vec2) { reported = append(reported, speed) }
	spawn(cm, script)

	cm.Step(0.016)

	if scroll.Value() != (mgl32.Vec2{0, 0.5}) {
		t.Errorf("Expected (0,0.5), got %v", scroll.Value())
	}
	if len(reported) != 1 || reported[0] != (mgl32.Vec2{0, 0.5}) {
		t.Errorf("Expected one change report of (0,0.5), got %v", reported)
	}
}

func TestScrollInputNoKeys(t *testing.T) {
	cm := behaviour.NewComponentManager()
	scroll := material.NewScrollState(mgl32.Vec2{})
	called := false
	script := NewScrollInputScript(fakeKeys{}, scroll)
	script.OnChange = func(mgl32.Vec2) { called = true }
	spawn(cm, script)

	cm.Step(0.016)

	if scroll.Value() != (mgl32.Vec2{}) {
		t.Errorf("Expected (0,0), got %v", scroll.Value())
	}
	if called {
		t.Error("OnChange should not fire without presses")
	}
}

func TestScriptsCreatedByName(t *testing.T) {
	names := behaviour.GetAvailableScripts()
	found := map[string]bool{}
	for _, name := range names {
		found[name] = true
	}
	for _, name := range []string{"RotateScript", "ScrollInputScript"} {
		if !found[name] {
			t.Errorf("Expected %q in %v", name, names)
		}
	}

	input, ok := behaviour.CreateScript("ScrollInputScript").(*ScrollInputScript)
	if !ok {
		t.Fatal("Expected *ScrollInputScript")
	}
	if input.Bindings[glfw.KeyUp] != material.DirectionUp || len(input.Bindings) != 4 {
		t.Errorf("Expected arrow key bindings, got %v", input.Bindings)
	}
}

func TestScrollInputWithoutKeySource(t *testing.T) {
	comp := behaviour.CreateScript("ScrollInputScript")
	if comp == nil {
		t.Fatal("Expected ScrollInputScript to be registered")
	}
	cm := behaviour.NewComponentManager()
	spawn(cm, comp)
	cm.Step(0.016)
}
