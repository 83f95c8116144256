package material

// Pass identifies the render pass a fragment shader is used for.
type Pass int

const (
	PassForward Pass = iota
	PassDeferred
)

func (p Pass) String() string {
	switch p {
	case PassForward:
		return "forward"
	case PassDeferred:
		return "deferred"
	default:
		return "unknown"
	}
}

// ShaderRef names a shader asset registered with the host. It is fixed once
// registered; hosts do not support swapping the source behind a ref.
type ShaderRef string

// Extension is the per-instance data a material extension adds on top of the
// host's base material: a type name resolving to a registered descriptor and
// the bytes of its uniform block.
type Extension interface {
	// TypeName is the name the extension type was registered under.
	TypeName() string

	// UniformBlock describes the block MarshalUniforms fills.
	UniformBlock() UniformBlock

	// MarshalUniforms encodes the current uniform values for upload.
	MarshalUniforms() []byte
}

// TypeDescriptor is what an extension registers with the host so that
// models carrying it are drawn with its fragment stage.
type TypeDescriptor struct {
	Name                   string
	Block                  UniformBlock
	FragmentShader         ShaderRef
	DeferredFragmentShader ShaderRef
}

// Shader returns the fragment shader used for pass. The deferred shader falls
// back to the forward one when not set.
func (d TypeDescriptor) Shader(pass Pass) ShaderRef {
	if pass == PassDeferred && d.DeferredFragmentShader != "" {
		return d.DeferredFragmentShader
	}
	return d.FragmentShader
}

// Registrar is the host capability a plugin needs to install a material
// extension. Registration happens once at startup.
type Registrar interface {
	// RegisterShaderAsset makes source resolvable through ref.
	RegisterShaderAsset(ref ShaderRef, source string) error

	// RegisterMaterialType installs an extended material type. Registering a
	// name twice is an error reported by the host.
	RegisterMaterialType(desc TypeDescriptor) error
}

// Plugin is anything that installs itself into a host through a Registrar.
type Plugin interface {
	Name() string
	Build(reg Registrar) error
}
