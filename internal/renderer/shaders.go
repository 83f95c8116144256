package renderer

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// =============================================================
//
//	Shaders
//
// =============================================================
type Shader struct {
	vertexSource   string
	fragmentSource string
	program        uint32
	isCompiled     bool
	uniforms       *UniformCache
}

// NewShader pairs a vertex and a fragment source. Nothing touches GL until Compile.
func NewShader(vertexSource, fragmentSource string) Shader {
	return Shader{
		vertexSource:   vertexSource,
		fragmentSource: fragmentSource,
	}
}

// IsValid reports whether both stages have a source.
func (shader *Shader) IsValid() bool {
	return strings.TrimSpace(strings.TrimRight(shader.vertexSource, "\x00")) != "" &&
		strings.TrimSpace(strings.TrimRight(shader.fragmentSource, "\x00")) != ""
}

func (shader *Shader) IsCompiled() bool {
	return shader.isCompiled
}

func (shader *Shader) Program() uint32 {
	return shader.program
}

func (shader *Shader) Compile() error {
	if shader.isCompiled {
		return nil
	}
	if !shader.IsValid() {
		return fmt.Errorf("compile shader: %w", ErrEmptyShaderSource)
	}

	vertex, err := GenShader(shader.vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return err
	}
	fragment, err := GenShader(shader.fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertex)
		return err
	}
	program, err := GenShaderProgram(vertex, fragment)
	if err != nil {
		return err
	}

	shader.program = program
	shader.uniforms = NewUniformCache(program)
	shader.isCompiled = true
	return nil
}

func (shader *Shader) Use() {
	gl.UseProgram(shader.program)
}

func (shader *Shader) Delete() {
	if shader.isCompiled {
		gl.DeleteProgram(shader.program)
	}
	shader.program = 0
	shader.uniforms = nil
	shader.isCompiled = false
}

func (shader *Shader) cache() *UniformCache {
	if shader.uniforms == nil {
		shader.uniforms = NewUniformCache(shader.program)
	}
	return shader.uniforms
}

func (shader *Shader) SetVec2(name string, value mgl32.Vec2) {
	shader.cache().SetVec2(name, value.X(), value.Y())
}

func (shader *Shader) SetVec3(name string, value mgl32.Vec3) {
	shader.cache().SetVec3(name, value.X(), value.Y(), value.Z())
}

func (shader *Shader) SetFloat(name string, value float32) {
	shader.cache().SetFloat(name, value)
}

func (shader *Shader) SetInt(name string, value int32) {
	shader.cache().SetInt(name, value)
}

func (shader *Shader) SetBool(name string, value bool) {
	var v int32
	if value {
		v = 1
	}
	shader.cache().SetInt(name, v)
}

func (shader *Shader) SetMat4(name string, value mgl32.Mat4) {
	shader.cache().SetMat4(name, value)
}

// glslSource returns src terminated the way gl.Strs expects.
func glslSource(src string) string {
	if strings.HasSuffix(src, "\x00") {
		return src
	}
	return src + "\x00"
}

// injectDefines inserts one #define line per name right after the #version
// directive, or at the top when the source has none.
func injectDefines(src string, defines ...string) string {
	if len(defines) == 0 {
		return src
	}
	var block strings.Builder
	for _, d := range defines {
		block.WriteString("#define ")
		block.WriteString(d)
		block.WriteString("\n")
	}

	idx := strings.Index(src, "#version")
	if idx < 0 {
		return block.String() + src
	}
	eol := strings.IndexByte(src[idx:], '\n')
	if eol < 0 {
		return src + "\n" + block.String()
	}
	cut := idx + eol + 1
	return src[:cut] + block.String() + src[cut:]
}

var vertexShaderSource = `#version 330 core

layout(location = 0) in vec3 inPosition; // Vertex position
layout(location = 1) in vec2 inTexCoord; // Texture Coordinate
layout(location = 2) in vec3 inNormal;   // Vertex normal

uniform mat4 model;
uniform mat4 viewProjection;

out vec2 fragTexCoord;
out vec3 Normal;
out vec3 FragPos;

void main() {
    FragPos = vec3(model * vec4(inPosition, 1.0));
    Normal = mat3(model) * inNormal; // Use this if the model matrix has no non-uniform scaling
    fragTexCoord = inTexCoord;

    gl_Position = viewProjection * model * vec4(inPosition, 1.0);
}
`

var fragmentShaderSource = `#version 330 core
in vec2 fragTexCoord;
in vec3 Normal;
in vec3 FragPos;

uniform sampler2D textureSampler;
uniform struct Light {
    vec3 position;
    vec3 color;
    float intensity;
    float ambientStrength;
    int isDirectional;
    vec3 direction;
    float constantAtten;
    float linearAtten;
    float quadraticAtten;
} light;
uniform vec3 viewPos;
uniform vec3 diffuseColor;
uniform vec3 specularColor;
uniform float shininess;
uniform float alpha;

out vec4 FragColor;

void main() {
    vec4 texColor = texture(textureSampler, fragTexCoord);

    vec3 ambient = light.ambientStrength * light.color * diffuseColor;

    vec3 norm = normalize(Normal);
    vec3 lightDir;
    float attenuation = 1.0;
    if (light.isDirectional == 1) {
        lightDir = normalize(-light.direction);
    } else {
        lightDir = normalize(light.position - FragPos);
        float dist = length(light.position - FragPos);
        attenuation = 1.0 / (light.constantAtten + light.linearAtten * dist + light.quadraticAtten * dist * dist);
    }
    float diff = max(dot(norm, lightDir), 0.0);
    vec3 diffuse = diff * light.color * diffuseColor;

    vec3 viewDir = normalize(viewPos - FragPos);
    vec3 reflectDir = reflect(-lightDir, norm);
    float spec = pow(max(dot(viewDir, reflectDir), 0.0), shininess);
    vec3 specular = spec * light.color * specularColor;

    vec3 result = (ambient + (diffuse + specular) * attenuation) * light.intensity;
    FragColor = vec4(result, alpha) * texColor;
}
`

func InitShader() Shader {
	return NewShader(vertexShaderSource, fragmentShaderSource)
}
