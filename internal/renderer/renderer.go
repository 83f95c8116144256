package renderer

import (
	"image"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

type LightType int

var FrustumCullingEnabled bool = false
var FaceCullingEnabled bool = false
var Debug bool = false
var DepthTestEnabled bool = true
var DeferredShadingEnabled bool = false // Draw extended materials with their deferred fragment stage
var ClearColorR float32 = 0.0
var ClearColorG float32 = 0.0
var ClearColorB float32 = 0.0

const (
	STATIC_LIGHT LightType = iota
	DYNAMIC_LIGHT
)

type Light struct {
	Name      string
	Position  mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
	Type      LightType // "static", "dynamic"
	Mode      string    // "directional", "point"

	AmbientStrength float32
	Direction       mgl32.Vec3

	ConstantAtten  float32
	LinearAtten    float32
	QuadraticAtten float32
}

type Render interface {
	Init(width, height int32, window *glfw.Window)
	Render(camera Camera, light *Light)
	AddModel(model *Model)
	RemoveModel(model *Model)
	LoadTexture(path string) (uint32, error)
	CreateTextureFromImage(img image.Image) (uint32, error)
	UpdateViewport(width, height int32)
	SetTime(seconds float32)
	Materials() *MaterialPipeline
	Cleanup()
}
