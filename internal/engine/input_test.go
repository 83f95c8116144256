package engine

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestKeyInputJustPressed(t *testing.T) {
	k := NewKeyInput()
	k.Handle(glfw.KeyRight, glfw.Press)

	if !k.JustPressed(glfw.KeyRight) {
		t.Error("Expected right to be just pressed")
	}
	if k.JustPressed(glfw.KeyLeft) {
		t.Error("Left was never pressed")
	}

	k.EndFrame()
	if k.JustPressed(glfw.KeyRight) {
		t.Error("Expected press to clear at end of frame")
	}
	if !k.Held(glfw.KeyRight) {
		t.Error("Expected right to still be held")
	}
}

func TestKeyInputRepeatIsNotAPress(t *testing.T) {
	k := NewKeyInput()
	k.Handle(glfw.KeyUp, glfw.Press)
	k.EndFrame()
	k.Handle(glfw.KeyUp, glfw.Repeat)

	if k.JustPressed(glfw.KeyUp) {
		t.Error("Repeat should not count as a new press")
	}

	k.Handle(glfw.KeyUp, glfw.Release)
	if k.Held(glfw.KeyUp) {
		t.Error("Expected key to be released")
	}
}

func TestKeyInputListeners(t *testing.T) {
	k := NewKeyInput()
	var got []glfw.Key
	k.OnPressed(func(key glfw.Key) { got = append(got, key) })

	k.Handle(glfw.KeyDown, glfw.Press)
	k.Handle(glfw.KeyDown, glfw.Release)
	k.Handle(glfw.KeyLeft, glfw.Press)

	if len(got) != 2 || got[0] != glfw.KeyDown || got[1] != glfw.KeyLeft {
		t.Errorf("Expected [Down Left], got %v", got)
	}
}
