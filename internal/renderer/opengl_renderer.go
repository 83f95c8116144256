package renderer

import (
	"ScrollMat/internal/logger"
	"ScrollMat/internal/material"
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

var currentTextureID uint32 = ^uint32(0) // Initialize with an invalid value
var frustum Frustum
var frustumDirty = true

// SetFrustumDirty forces the frustum to be recalculated on the next frame.
func SetFrustumDirty() {
	frustumDirty = true
}

type OpenGLRenderer struct {
	defaultShader        Shader
	Models               []*Model
	currentShaderProgram uint32 // Track currently bound shader to avoid unnecessary switches
	textures             *TextureManager
	materials            *MaterialPipeline
	time                 float32
	broken               map[string]bool // Extended types that failed to build, logged once
}

func (rend *OpenGLRenderer) Init(width, height int32, _ *glfw.Window) {
	if err := gl.Init(); err != nil {
		logger.Log.Error("OpenGL initialization failed", zap.Error(err))
		return
	}
	logger.Log.Info("OpenGL version", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	if Debug {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	rend.textures = NewTextureManager()
	rend.broken = make(map[string]bool)
	SetDefaultTexture(rend)
	gl.Viewport(0, 0, width, height)
	rend.InitShader()
	logger.Log.Info("OpenGL render initialized")
}

func (rend *OpenGLRenderer) InitShader() {
	rend.defaultShader = InitShader()
	if err := rend.defaultShader.Compile(); err != nil {
		logger.Log.Error("Default shader failed to compile", zap.Error(err))
	}
}

// Materials returns the extended material registry. It is usable before Init,
// registration does not touch GL.
func (rend *OpenGLRenderer) Materials() *MaterialPipeline {
	if rend.materials == nil {
		rend.materials = NewMaterialPipeline()
	}
	return rend.materials
}

// SetTime sets the value of the time uniform, in seconds since start.
func (rend *OpenGLRenderer) SetTime(seconds float32) {
	rend.time = seconds
}

func (rend *OpenGLRenderer) AddModel(model *Model) {
	if model.Material != nil && model.Material.TexturePath != "" && model.Material.TextureID == 0 {
		textureID, err := rend.LoadTexture(model.Material.TexturePath)
		if err != nil {
			logger.Log.Error("Failed to load model texture", zap.String("path", model.Material.TexturePath), zap.Error(err))
		} else {
			model.Material.TextureID = textureID
		}
	}

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(model.InterleavedData)*4, gl.Ptr(model.InterleavedData), gl.STATIC_DRAW)

	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(model.Faces)*4, gl.Ptr(model.Faces), gl.STATIC_DRAW)

	stride := int32((8) * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, gl.PtrOffset(5*4))
	gl.EnableVertexAttribArray(2)
	gl.BindVertexArray(0)

	model.VAO = vao
	model.VBO = vbo
	model.EBO = ebo
	model.updateModelMatrix()

	rend.Models = append(rend.Models, model)
}

func (rend *OpenGLRenderer) RemoveModel(model *Model) {
	for i, m := range rend.Models {
		if m == model {
			rend.Models = append(rend.Models[:i], rend.Models[i+1:]...)
			gl.DeleteVertexArrays(1, &model.VAO)
			gl.DeleteBuffers(1, &model.VBO)
			gl.DeleteBuffers(1, &model.EBO)
			break
		}
	}
}

func (rend *OpenGLRenderer) Render(camera Camera, light *Light) {
	gl.ClearColor(ClearColorR, ClearColorG, ClearColorB, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if DepthTestEnabled {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthMask(true)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	viewProjection := camera.ViewProjection()

	// Culling : https://learnopengl.com/Advanced-OpenGL/Face-culling
	if FaceCullingEnabled {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
		gl.FrontFace(gl.CCW)
	}

	if FrustumCullingEnabled && frustumDirty {
		frustum = camera.CalculateFrustum()
		frustumDirty = false
	}

	pass := material.PassForward
	if DeferredShadingEnabled {
		pass = material.PassDeferred
	}

	gl.ActiveTexture(gl.TEXTURE0)
	for _, model := range rend.Models {
		if FrustumCullingEnabled && !frustum.IntersectsSphere(model.BoundingSphereCenter, model.BoundingSphereRadius) {
			continue
		}

		if model.IsDirty {
			model.calculateModelMatrix()
			model.IsDirty = false
		}

		shader := rend.shaderFor(model, pass)
		if shader == nil {
			continue
		}

		if rend.currentShaderProgram != shader.program {
			shader.Use()
			rend.currentShaderProgram = shader.program
		}

		rend.setCommonUniforms(shader, viewProjection, model, light, camera)
		rend.setMaterialUniforms(shader, model)
		rend.setShaderSpecificUniforms(shader, model)

		if model.Extension != nil && !rend.uploadExtension(model.Extension) {
			continue
		}

		if model.Material.TextureID != currentTextureID {
			gl.BindTexture(gl.TEXTURE_2D, model.Material.TextureID)
			currentTextureID = model.Material.TextureID
		}
		shader.SetInt("textureSampler", 0)

		gl.BindVertexArray(model.VAO)
		gl.DrawElements(gl.TRIANGLES, int32(len(model.Faces)), gl.UNSIGNED_INT, nil)
		gl.BindVertexArray(0)
	}
	gl.Disable(gl.BLEND)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
}

// shaderFor picks the program a model is drawn with: its extended material's
// program for pass, its custom shader, or the default shader.
func (rend *OpenGLRenderer) shaderFor(model *Model, pass material.Pass) *Shader {
	if model.Extension != nil {
		name := model.Extension.TypeName()
		if rend.broken[name] {
			return nil
		}
		shader, err := rend.Materials().Program(name, pass)
		if err != nil {
			rend.markBroken(name, err)
			return nil
		}
		return shader
	}

	if model.Shader.IsValid() {
		if !model.Shader.isCompiled {
			if err := model.Shader.Compile(); err != nil {
				logger.Log.Error("Custom shader failed to compile", zap.String("model", model.Name), zap.Error(err))
				model.Shader = Shader{}
				return &rend.defaultShader
			}
		}
		return &model.Shader
	}
	return &rend.defaultShader
}

// uploadExtension writes the extension's uniform block right before its draw.
func (rend *OpenGLRenderer) uploadExtension(ext material.Extension) bool {
	name := ext.TypeName()
	ub, err := rend.Materials().Buffer(name)
	if err != nil {
		rend.markBroken(name, err)
		return false
	}
	if err := ub.Upload(ext.MarshalUniforms()); err != nil {
		rend.markBroken(name, err)
		return false
	}
	ub.Bind()
	return true
}

func (rend *OpenGLRenderer) markBroken(name string, err error) {
	if rend.broken == nil {
		rend.broken = make(map[string]bool)
	}
	if !rend.broken[name] {
		logger.Log.Error("Extended material cannot be drawn", zap.String("type", name), zap.Error(err))
	}
	rend.broken[name] = true
}

func (rend *OpenGLRenderer) setCommonUniforms(shader *Shader, viewProjection mgl32.Mat4, model *Model, light *Light, camera Camera) {
	shader.SetMat4("viewProjection", viewProjection)
	shader.SetMat4("model", model.ModelMatrix)
	shader.SetFloat("time", rend.time)
	shader.SetVec3("viewPos", camera.Position)

	if light != nil {
		shader.SetVec3("light.position", light.Position)
		shader.SetVec3("light.color", light.Color)
		shader.SetFloat("light.intensity", light.Intensity)
		shader.SetFloat("light.ambientStrength", light.AmbientStrength)
		shader.SetBool("light.isDirectional", light.Mode == "directional")
		shader.SetVec3("light.direction", light.Direction)
		shader.SetFloat("light.constantAtten", light.ConstantAtten)
		shader.SetFloat("light.linearAtten", light.LinearAtten)
		shader.SetFloat("light.quadraticAtten", light.QuadraticAtten)
	}
}

func (rend *OpenGLRenderer) setMaterialUniforms(shader *Shader, model *Model) {
	if model.Material == nil {
		model.Material = DefaultMaterial
	}
	mat := model.Material
	if mat.TextureID == 0 {
		mat.TextureID = DefaultMaterial.TextureID
	}

	shader.SetVec3("diffuseColor", mgl32.Vec3(mat.DiffuseColor))
	shader.SetVec3("specularColor", mgl32.Vec3(mat.SpecularColor))
	shader.SetFloat("shininess", mat.Shininess)
	shader.SetFloat("metallic", mat.Metallic)
	shader.SetFloat("roughness", mat.Roughness)
	shader.SetFloat("exposure", mat.Exposure)
	shader.SetFloat("alpha", mat.Alpha)
}

// setShaderSpecificUniforms allows models to set custom uniforms for their shaders
func (rend *OpenGLRenderer) setShaderSpecificUniforms(shader *Shader, model *Model) {
	for name, value := range model.CustomUniforms {
		switch v := value.(type) {
		case float32:
			shader.SetFloat(name, v)
		case int32:
			shader.SetInt(name, v)
		case bool:
			shader.SetBool(name, v)
		case mgl32.Vec2:
			shader.SetVec2(name, v)
		case mgl32.Vec3:
			shader.SetVec3(name, v)
		default:
			logger.Log.Debug("Unsupported custom uniform type", zap.String("name", name), zap.String("type", fmt.Sprintf("%T", value)))
		}
	}
}

func (rend *OpenGLRenderer) Cleanup() {
	for _, model := range rend.Models {
		gl.DeleteVertexArrays(1, &model.VAO)
		gl.DeleteBuffers(1, &model.VBO)
		gl.DeleteBuffers(1, &model.EBO)
		if model.Shader.isCompiled {
			model.Shader.Delete()
		}
	}
	rend.Models = nil
	if rend.materials != nil {
		rend.materials.Cleanup()
	}
	if rend.textures != nil {
		rend.textures.Clear()
	}
	rend.defaultShader.Delete()
}

func (rend *OpenGLRenderer) LoadTexture(filePath string) (uint32, error) {
	return rend.textures.LoadTexture(filePath)
}

func (rend *OpenGLRenderer) CreateTextureFromImage(img image.Image) (uint32, error) {
	return rend.textures.CreateTextureFromImage(img, "")
}

// CreateNamedTexture uploads img once per name.
func (rend *OpenGLRenderer) CreateNamedTexture(name string, img image.Image) (uint32, error) {
	return rend.textures.CreateTextureFromImage(img, name)
}

func GenShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(glslSource(source))
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	shaderTypeName := "vertex"
	if shaderType == gl.FRAGMENT_SHADER {
		shaderTypeName = "fragment"
	}

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		logger.Log.Error("Failed to compile", zap.String("shader type", shaderTypeName), zap.String("log", log))
		return 0, fmt.Errorf("compile %s shader: %s", shaderTypeName, strings.TrimRight(log, "\x00"))
	}

	logger.Log.Debug("Shader compiled", zap.String("shader type", shaderTypeName))
	return shader, nil
}

func GenShaderProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DetachShader(program, vertexShader)
	gl.DeleteShader(vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		logger.Log.Error("Failed to link program", zap.String("log", log))
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(log, "\x00"))
	}

	logger.Log.Debug("Shader program linked", zap.Uint32("program", program))
	return program, nil
}

func CreateLight() *Light {
	return &Light{
		Name:            "light",
		Position:        mgl32.Vec3{0.0, 1500.0, 0.0},
		Color:           mgl32.Vec3{1.0, 1.0, 1.0},
		Intensity:       1.0,
		Mode:            "point",
		AmbientStrength: 0.1,
		Direction:       mgl32.Vec3{0, -1, 0},
		ConstantAtten:   1.0,
		LinearAtten:     0.0001,
		QuadraticAtten:  0.0000001,
	}
}

// CreateDirectionalLight creates a directional light (like the sun)
func CreateDirectionalLight(direction mgl32.Vec3, color mgl32.Vec3, intensity float32) *Light {
	light := CreateLight()
	light.Mode = "directional"
	light.Direction = direction.Normalize()
	light.Color = color
	light.Intensity = intensity
	light.AmbientStrength = 0.15
	return light
}

// CreatePointLight creates a point light reaching roughly range_ units
func CreatePointLight(position mgl32.Vec3, color mgl32.Vec3, intensity float32, range_ float32) *Light {
	light := CreateLight()
	light.Mode = "point"
	light.Position = position
	light.Color = color
	light.Intensity = intensity

	light.ConstantAtten = 1.0
	light.LinearAtten = 2.0 / range_
	light.QuadraticAtten = 1.0 / (range_ * range_)
	return light
}

// UpdateViewport updates the OpenGL viewport to match the current window size
func (rend *OpenGLRenderer) UpdateViewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}
