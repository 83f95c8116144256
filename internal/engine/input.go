package engine

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// KeyInput records key presses delivered by the window between two frames.
// It is only touched from the render thread.
type KeyInput struct {
	justPressed map[glfw.Key]bool
	held        map[glfw.Key]bool
	listeners   []func(glfw.Key)
}

func NewKeyInput() *KeyInput {
	return &KeyInput{
		justPressed: make(map[glfw.Key]bool),
		held:        make(map[glfw.Key]bool),
	}
}

// Handle feeds one key event. Repeats do not count as new presses.
func (k *KeyInput) Handle(key glfw.Key, action glfw.Action) {
	switch action {
	case glfw.Press:
		k.justPressed[key] = true
		k.held[key] = true
		for _, fn := range k.listeners {
			fn(key)
		}
	case glfw.Release:
		delete(k.held, key)
	}
}

// OnPressed registers fn to run on every press.
func (k *KeyInput) OnPressed(fn func(glfw.Key)) {
	k.listeners = append(k.listeners, fn)
}

// JustPressed reports whether key went down since the last frame.
func (k *KeyInput) JustPressed(key glfw.Key) bool {
	return k.justPressed[key]
}

// Held reports whether key is currently down.
func (k *KeyInput) Held(key glfw.Key) bool {
	return k.held[key]
}

// EndFrame forgets the presses of the frame that just finished.
func (k *KeyInput) EndFrame() {
	for key := range k.justPressed {
		delete(k.justPressed, key)
	}
}
