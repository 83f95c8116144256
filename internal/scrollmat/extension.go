package scrollmat

import (
	"ScrollMat/internal/material"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// TypeName is the material type the plugin registers.
	TypeName = "scrollmat"

	// BlockName is the GLSL uniform block holding the scroll speed.
	BlockName = "ScrollMat"

	// Binding is the uniform buffer binding point of the scroll block.
	Binding uint32 = 4

	// FragmentShaderRef resolves to the scroll fragment shader for both passes.
	FragmentShaderRef material.ShaderRef = "scrollmat://shaders/scrollmat.frag"
)

// Extension adds a scrolling texture coordinate offset to a base material.
// Each material instance owns its own scroll state.
type Extension struct {
	Scroll *material.ScrollState
}

var _ material.Extension = &Extension{}

// NewExtension returns an extension scrolling at speed.
func NewExtension(speed mgl32.Vec2) *Extension {
	return &Extension{Scroll: material.NewScrollState(speed)}
}

func (e *Extension) TypeName() string {
	return TypeName
}

func (e *Extension) UniformBlock() material.UniformBlock {
	return block()
}

func (e *Extension) MarshalUniforms() []byte {
	params := GPUScrollParams{ScrollSpeed: e.ScrollSpeed()}
	return params.Marshal()
}

// ScrollSpeed returns the current speed, (0,0) when no state is attached.
func (e *Extension) ScrollSpeed() mgl32.Vec2 {
	if e.Scroll == nil {
		return mgl32.Vec2{}
	}
	return e.Scroll.Value()
}

// Descriptor is the type registered with the host.
func Descriptor() material.TypeDescriptor {
	return material.TypeDescriptor{
		Name:                   TypeName,
		Block:                  block(),
		FragmentShader:         FragmentShaderRef,
		DeferredFragmentShader: FragmentShaderRef,
	}
}

func block() material.UniformBlock {
	var params GPUScrollParams
	return material.UniformBlock{
		Name:    BlockName,
		Binding: Binding,
		Size:    params.Size(),
	}
}
