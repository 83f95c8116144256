package behaviour

import (
	"ScrollMat/internal/material"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestScrollComponentAdvancesWithTime(t *testing.T) {
	cm := NewComponentManager()
	scroll := material.NewScrollState(mgl32.Vec2{0, 0})
	obj := NewGameObject("Lava")
	obj.AddComponent(NewScrollComponent(scroll, mgl32.Vec2{0.2, 0}))
	cm.RegisterGameObject(obj)

	// Same total time, different frame rates, same result
	for i := 0; i < 4; i++ {
		cm.Step(0.25)
	}
	if !scroll.Value().ApproxEqualThreshold(mgl32.Vec2{0.2, 0}, 1e-5) {
		t.Errorf("Expected speed (0.2,0) after 1s, got %v", scroll.Value())
	}

	for i := 0; i < 10; i++ {
		cm.Step(0.1)
	}
	if !scroll.Value().ApproxEqualThreshold(mgl32.Vec2{0.4, 0}, 1e-5) {
		t.Errorf("Expected speed (0.4,0) after 2s, got %v", scroll.Value())
	}
}

func TestScrollComponentReversesAtMaxSpeed(t *testing.T) {
	cm := NewComponentManager()
	scroll := material.NewScrollState(mgl32.Vec2{0, 0.9})
	comp := NewScrollComponent(scroll, mgl32.Vec2{0, 1})
	comp.MaxSpeed = 1
	obj := NewGameObject("Lava")
	obj.AddComponent(comp)
	cm.RegisterGameObject(obj)

	cm.Step(0.5)
	if comp.Rate != (mgl32.Vec2{0, -1}) {
		t.Errorf("Rate should reverse past MaxSpeed, got %v", comp.Rate)
	}

	cm.Step(0.5)
	if !scroll.Value().ApproxEqualThreshold(mgl32.Vec2{0, 0.9}, 1e-5) {
		t.Errorf("Expected speed back at (0,0.9), got %v", scroll.Value())
	}
}

func TestScrollComponentLongFrameDoesNotStick(t *testing.T) {
	cm := NewComponentManager()
	scroll := material.NewScrollState(mgl32.Vec2{0.29, 0})
	comp := NewScrollComponent(scroll, mgl32.Vec2{0.02, 0})
	comp.MaxSpeed = 0.3
	obj := NewGameObject("Lava")
	obj.AddComponent(comp)
	cm.RegisterGameObject(obj)

	// One long frame overshoots MaxSpeed by more than a normal frame's step
	cm.Step(1.0)
	if comp.Rate != (mgl32.Vec2{-0.02, 0}) {
		t.Fatalf("Rate should reverse after overshooting, got %v", comp.Rate)
	}

	flips := 0
	last := comp.Rate
	for i := 0; i < 600; i++ {
		cm.Step(1.0 / 60.0)
		if comp.Rate != last {
			flips++
			last = comp.Rate
		}
	}

	if flips != 0 {
		t.Errorf("Expected the rate to stay reversed while returning, got %d flips", flips)
	}
	if speed := scroll.Value().X(); speed > comp.MaxSpeed || math.Abs(float64(speed)-0.11) > 1e-3 {
		t.Errorf("Expected speed back near 0.11 after 10s, got %f", speed)
	}
}

func TestScrollComponentWithoutState(t *testing.T) {
	comp := &ScrollComponent{Rate: mgl32.Vec2{1, 1}}
	comp.Update()
}

func TestAttachScript(t *testing.T) {
	withRegistry(t)
	RegisterScript("Mock", func() Component { return &MockComponent{} })

	obj := NewGameObject("Scripted")
	sc, ok := AttachScript(obj, "Mock")
	if !ok {
		t.Fatal("AttachScript should find the registered script")
	}

	cm := NewComponentManager()
	cm.RegisterGameObject(obj)
	cm.UpdateAll()

	mock := sc.Script.(*MockComponent)
	if !mock.startCalled || !mock.updateCalled {
		t.Error("Wrapped script should be started and updated")
	}
	if mock.GetGameObject() != obj {
		t.Error("Wrapped script should see the owning object")
	}

	if _, ok := AttachScript(obj, "Missing"); ok {
		t.Error("AttachScript should fail for an unknown script")
	}
}
