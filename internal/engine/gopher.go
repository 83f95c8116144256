package engine

import (
	behaviour "ScrollMat/internal/behaviour"
	"ScrollMat/internal/config"
	"ScrollMat/internal/logger"
	"ScrollMat/internal/material"
	"ScrollMat/internal/renderer"
	"fmt"
	"runtime"

	mgl "github.com/go-gl/mathgl/mgl32"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// Initialize to the center of the window
var lastX, lastY float64
var firstMouse bool = true

// Enum for rendererAPIs. Only OpenGL is implemented.
type rendAPI int

const (
	OPENGL rendAPI = iota
)

// Option configures a Gopher before the window is created.
type Option func(*Gopher)

// WithConfig applies window, logging and renderer settings from cfg.
func WithConfig(cfg config.Config) Option {
	return func(g *Gopher) {
		g.Width, g.Height = cfg.Window.Width, cfg.Window.Height
		g.Title = cfg.Window.Title
		g.debugLog = cfg.Debug
		renderer.DeferredShadingEnabled = cfg.Render.DeferredShading
		renderer.FaceCullingEnabled = cfg.Render.FaceCulling
		renderer.FrustumCullingEnabled = cfg.Render.FrustumCulling
		renderer.Debug = cfg.Render.Wireframe
	}
}

func WithWindowSize(width, height int32) Option {
	return func(g *Gopher) {
		g.Width, g.Height = width, height
	}
}

func WithTitle(title string) Option {
	return func(g *Gopher) {
		g.Title = title
	}
}

type Gopher struct {
	Width             int32
	Height            int32
	Title             string
	Light             *renderer.Light
	Camera            *renderer.Camera
	Input             *KeyInput
	EnableCameraInput bool // Control whether camera processes keyboard/mouse input
	rendererAPI       renderer.Render
	window            *glfw.Window
	plugins           []material.Plugin
	pending           []*renderer.Model // Added before the renderer was initialized
	debugLog          bool
	onRenderCallback  func(deltaTime float64)
}

func NewGopher(rendererAPI rendAPI, options ...Option) *Gopher {
	gopher := &Gopher{
		Width:             1024,
		Height:            768,
		Title:             "ScrollMat",
		Input:             NewKeyInput(),
		EnableCameraInput: true,
	}
	for _, opt := range options {
		opt(gopher)
	}
	logger.InitWithLevel(gopher.debugLog)
	logger.Log.Info("Engine initializing...")

	switch rendererAPI {
	case OPENGL:
		gopher.rendererAPI = &renderer.OpenGLRenderer{}
	default:
		logger.Log.Warn("Unknown renderer API, falling back to OpenGL", zap.Int("api", int(rendererAPI)))
		gopher.rendererAPI = &renderer.OpenGLRenderer{}
	}
	// Camera exists before Render so scenes can place it up front
	gopher.Camera = renderer.NewDefaultCamera(gopher.Width, gopher.Height)
	return gopher
}

// AddPlugin queues a material plugin. Plugins are built against the
// renderer's material pipeline when Render starts.
func (gopher *Gopher) AddPlugin(plugin material.Plugin) {
	gopher.plugins = append(gopher.plugins, plugin)
}

// BuildPlugins registers every queued plugin. Render calls it before opening
// the window; calling it directly makes the types usable right away.
func (gopher *Gopher) BuildPlugins() error {
	reg := gopher.rendererAPI.Materials()
	for _, plugin := range gopher.plugins {
		if err := plugin.Build(reg); err != nil {
			return fmt.Errorf("plugin %q: %w", plugin.Name(), err)
		}
		logger.Log.Debug("Plugin built", zap.String("plugin", plugin.Name()))
	}
	gopher.plugins = nil
	return nil
}

// Gopher API
func (gopher *Gopher) Render(x, y int) {
	defer logger.Sync()
	if err := gopher.BuildPlugins(); err != nil {
		logger.Log.Fatal("Plugin registration failed", zap.Error(err))
	}

	lastX, lastY = float64(gopher.Width/2), float64(gopher.Height/2)
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		logger.Log.Fatal("Could not initialize glfw", zap.Error(err))
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 32)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var err error
	gopher.window, err = glfw.CreateWindow(int(gopher.Width), int(gopher.Height), gopher.Title, nil, nil)
	if err != nil {
		logger.Log.Fatal("Could not create glfw window", zap.Error(err))
	}

	gopher.window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		logger.Log.Fatal("Could not initialize OpenGL", zap.Error(err))
	}
	gl.ClearColor(renderer.ClearColorR, renderer.ClearColorG, renderer.ClearColorB, 1.0)

	gopher.window.SetPos(x, y)
	gopher.rendererAPI.Init(gopher.Width, gopher.Height, gopher.window)

	for _, model := range gopher.pending {
		gopher.rendererAPI.AddModel(model)
	}
	gopher.pending = nil

	gopher.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	gopher.window.SetCursorPosCallback(gopher.mouseCallback)
	gopher.window.SetKeyCallback(gopher.keyCallback)

	gopher.RenderLoop()
}

func (gopher *Gopher) RenderLoop() {
	var lastTime = glfw.GetTime()
	var startTime = lastTime
	var lastWidth, lastHeight int32 = gopher.Width, gopher.Height

	for !gopher.window.ShouldClose() {
		currentTime := glfw.GetTime()
		deltaTime := currentTime - lastTime
		lastTime = currentTime

		actualWidth, actualHeight := gopher.window.GetSize()
		gopher.Width, gopher.Height = int32(actualWidth), int32(actualHeight)
		if gopher.Width != lastWidth || gopher.Height != lastHeight {
			gopher.rendererAPI.UpdateViewport(gopher.Width, gopher.Height)
			gopher.Camera.SetAspectRatio(float32(gopher.Width) / float32(gopher.Height))
			lastWidth, lastHeight = gopher.Width, gopher.Height
		}

		if gopher.EnableCameraInput {
			gopher.Camera.ProcessKeyboard(gopher.window, float32(deltaTime))
		}

		behaviour.GlobalBehaviourManager.Step(float32(deltaTime))

		gopher.rendererAPI.SetTime(float32(currentTime - startTime))
		gopher.rendererAPI.Render(*gopher.Camera, gopher.Light)

		if gopher.onRenderCallback != nil {
			gopher.onRenderCallback(deltaTime)
		}

		gopher.window.SwapBuffers()
		gopher.Input.EndFrame()
		glfw.PollEvents()
	}
	gopher.rendererAPI.Cleanup()
}

// SetOnRenderCallback sets a callback that will be called each frame after the 3D scene is rendered
func (gopher *Gopher) SetOnRenderCallback(callback func(deltaTime float64)) {
	gopher.onRenderCallback = callback
}

// OnKeyPressed registers fn to run once for every key press.
func (gopher *Gopher) OnKeyPressed(fn func(key glfw.Key)) {
	gopher.Input.OnPressed(fn)
}

// SetTitle changes the window title, or the title used when it opens.
func (gopher *Gopher) SetTitle(title string) {
	gopher.Title = title
	if gopher.window != nil {
		gopher.window.SetTitle(title)
	}
}

func (gopher *Gopher) SetDebugMode(debug bool) {
	renderer.Debug = debug
}

func (gopher *Gopher) SetFrustumCulling(enabled bool) {
	renderer.FrustumCullingEnabled = enabled
}

func (gopher *Gopher) SetFaceCulling(enabled bool) {
	renderer.FaceCullingEnabled = enabled
}

func (gopher *Gopher) AddModel(model *renderer.Model) {
	if gopher.window == nil {
		gopher.pending = append(gopher.pending, model)
		return
	}
	gopher.rendererAPI.AddModel(model)
}

func (gopher *Gopher) RemoveModel(model *renderer.Model) {
	for i, m := range gopher.pending {
		if m == model {
			gopher.pending = append(gopher.pending[:i], gopher.pending[i+1:]...)
			return
		}
	}
	gopher.rendererAPI.RemoveModel(model)
}

func (gopher *Gopher) AddModelBatch(models []*renderer.Model) {
	for _, model := range models {
		gopher.AddModel(model)
	}
}

// SpawnExtended attaches ext on top of base and adds the model to the scene.
// The extension's type must already be registered.
func (gopher *Gopher) SpawnExtended(model *renderer.Model, base *renderer.Material, ext material.Extension) error {
	if model == nil {
		return fmt.Errorf("spawn extended: nil model")
	}
	if err := gopher.rendererAPI.Materials().Validate(ext); err != nil {
		return fmt.Errorf("spawn %q: %w", model.Name, err)
	}
	model.SetExtendedMaterial(base, ext)
	gopher.AddModel(model)
	logger.Log.Debug("Spawned extended model",
		zap.String("model", model.Name),
		zap.String("type", ext.TypeName()))
	return nil
}

// Materials exposes the extended material registry.
func (gopher *Gopher) Materials() *renderer.MaterialPipeline {
	return gopher.rendererAPI.Materials()
}

func (g *Gopher) GetMousePosition() mgl.Vec2 {
	x, y := g.window.GetCursorPos()
	return mgl.Vec2{float32(x), float32(y)}
}

// GetWindow returns the GLFW window, nil before Render
func (gopher *Gopher) GetWindow() *glfw.Window {
	return gopher.window
}

func (gopher *Gopher) GetRenderer() renderer.Render {
	return gopher.rendererAPI
}

func (gopher *Gopher) keyCallback(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	gopher.Input.Handle(key, action)
}

// Mouse callback function
func (gopher *Gopher) mouseCallback(w *glfw.Window, xpos, ypos float64) {
	// Only rotate while the right mouse button is held on a focused window
	if gopher.EnableCameraInput && w.GetAttrib(glfw.Focused) == glfw.True && w.GetMouseButton(glfw.MouseButtonRight) == glfw.Press {
		if firstMouse {
			lastX = xpos
			lastY = ypos
			firstMouse = false
			return
		}

		xoffset := xpos - lastX
		yoffset := lastY - ypos // Reversed since y-coordinates go from bottom to top
		lastX = xpos
		lastY = ypos

		gopher.Camera.ProcessMouseMovement(float32(xoffset), float32(yoffset))
	} else {
		firstMouse = true
	}
}
