package renderer

import (
	"ScrollMat/internal/logger"
	"ScrollMat/internal/material"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// DefaultMaterial provides a basic material to fall back on
var DefaultMaterial = &Material{
	Name:          "default",
	DiffuseColor:  [3]float32{1.0, 1.0, 1.0}, // White color
	SpecularColor: [3]float32{1.0, 1.0, 1.0},
	Shininess:     32.0,
	TextureID:     0,
	Metallic:      0.0,
	Roughness:     0.5,
	Exposure:      1.0,
	Alpha:         1.0,
}

type Model struct {
	// HOT DATA - Accessed every frame in render loop
	ModelMatrix mgl32.Mat4
	Position    mgl32.Vec3
	Scale       mgl32.Vec3
	Rotation    mgl32.Quat
	Material    *Material
	Extension   material.Extension // Extended material drawn through the MaterialPipeline
	VAO         uint32
	VBO         uint32
	EBO         uint32
	IsDirty     bool

	// MEDIUM DATA
	BoundingSphereCenter mgl32.Vec3
	BoundingSphereRadius float32
	Shader               Shader                 // Custom shader for this model
	CustomUniforms       map[string]interface{} // Custom uniforms for this model

	// COLD DATA
	Id              int
	Name            string
	Vertices        []float32 // Vertex position data
	Faces           []int32   // Face indices
	InterleavedData []float32 // pos3 uv2 normal3
}

type Material struct {
	DiffuseColor  [3]float32 // Base color for lighting
	SpecularColor [3]float32 // Specular highlight color
	Shininess     float32    // Specular exponent
	Metallic      float32    // 0.0 = dielectric, 1.0 = metallic
	Roughness     float32    // 0.0 = mirror, 1.0 = completely rough
	Exposure      float32    // HDR exposure control
	Alpha         float32    // Transparency (0.0 = transparent, 1.0 = opaque)
	TextureID     uint32     // OpenGL texture ID

	Name        string
	TexturePath string // Loaded when the model is added to the renderer
}

// NewMaterial returns a material with the default shading parameters and the given base color.
func NewMaterial(name string, r, g, b float32) *Material {
	m := *DefaultMaterial
	m.Name = name
	m.DiffuseColor = [3]float32{r, g, b}
	m.TextureID = 0
	return &m
}

// MaterialFromRGB8 builds a material from an 8-bit sRGB color.
func MaterialFromRGB8(name string, c color.RGBA) *Material {
	return NewMaterial(name, float32(c.R)/255, float32(c.G)/255, float32(c.B)/255)
}

func (mat *Material) Clone() *Material {
	c := *mat
	return &c
}

func (m *Model) X() float32 {
	return m.Position[0]
}

func (m *Model) Y() float32 {
	return m.Position[1]
}

func (m *Model) Z() float32 {
	return m.Position[2]
}

func (m *Model) GetPosition() mgl32.Vec3 {
	return m.Position
}

func (m *Model) GetRotation() mgl32.Quat {
	return m.Rotation
}

func (m *Model) GetScale() mgl32.Vec3 {
	return m.Scale
}

func (m *Model) SetPositionVec(position mgl32.Vec3) {
	m.Position = position
	m.updateModelMatrix()
	m.IsDirty = true
}

func (m *Model) SetRotationQuat(rotation mgl32.Quat) {
	m.Rotation = rotation
	m.updateModelMatrix()
	m.IsDirty = true
}

func (m *Model) SetScaleVec(scale mgl32.Vec3) {
	m.Scale = scale
	m.updateModelMatrix()
	m.IsDirty = true
}

// Rotate applies a rotation in degrees around X, Y and Z.
func (m *Model) Rotate(angleX, angleY, angleZ float32) {
	if m.Rotation == (mgl32.Quat{}) {
		m.Rotation = mgl32.QuatIdent()
	}
	rotationX := mgl32.QuatRotate(mgl32.DegToRad(angleX), mgl32.Vec3{1, 0, 0})
	rotationY := mgl32.QuatRotate(mgl32.DegToRad(angleY), mgl32.Vec3{0, 1, 0})
	rotationZ := mgl32.QuatRotate(mgl32.DegToRad(angleZ), mgl32.Vec3{0, 0, 1})
	m.Rotation = m.Rotation.Mul(rotationX).Mul(rotationY).Mul(rotationZ)
	m.updateModelMatrix()
	m.IsDirty = true
}

// RotateAxis applies a rotation of angle radians around axis.
func (m *Model) RotateAxis(angle float32, axis mgl32.Vec3) {
	if m.Rotation == (mgl32.Quat{}) {
		m.Rotation = mgl32.QuatIdent()
	}
	m.Rotation = mgl32.QuatRotate(angle, axis.Normalize()).Mul(m.Rotation).Normalize()
	m.updateModelMatrix()
	m.IsDirty = true
}

// SetPosition sets the position of the model
func (m *Model) SetPosition(x, y, z float32) {
	m.Position = mgl32.Vec3{x, y, z}
	m.updateModelMatrix()
	m.IsDirty = true
}

func (m *Model) SetScale(x, y, z float32) {
	m.Scale = mgl32.Vec3{x, y, z}
	m.updateModelMatrix()
	m.IsDirty = true
}

func (m *Model) CalculateBoundingSphere() {
	numVertices := len(m.Vertices) / 3
	if numVertices == 0 {
		return
	}

	var center mgl32.Vec3
	var maxDistanceSq float32
	for i := 0; i < numVertices; i++ {
		vertex := mgl32.Vec3{m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]}
		center = center.Add(ApplyModelTransformation(vertex, m.Position, m.Scale, m.Rotation))
	}
	center = center.Mul(1.0 / float32(numVertices))

	for i := 0; i < numVertices; i++ {
		vertex := mgl32.Vec3{m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]}
		distanceSq := ApplyModelTransformation(vertex, m.Position, m.Scale, m.Rotation).Sub(center).LenSqr()
		if distanceSq > maxDistanceSq {
			maxDistanceSq = distanceSq
		}
	}

	m.BoundingSphereCenter = center
	m.BoundingSphereRadius = float32(math.Sqrt(float64(maxDistanceSq)))
}

func (m *Model) updateModelMatrix() {
	m.calculateModelMatrix()
	if FrustumCullingEnabled {
		m.CalculateBoundingSphere()
	}
}

// calculateModelMatrix builds Translation * Rotation * Scale
func (m *Model) calculateModelMatrix() {
	scaleMatrix := mgl32.Scale3D(m.Scale.X(), m.Scale.Y(), m.Scale.Z())
	rotationMatrix := m.Rotation.Mat4()
	translationMatrix := mgl32.Translate3D(m.Position.X(), m.Position.Y(), m.Position.Z())
	m.ModelMatrix = translationMatrix.Mul4(rotationMatrix).Mul4(scaleMatrix)
}

func ApplyModelTransformation(vertex, position, scale mgl32.Vec3, rotation mgl32.Quat) mgl32.Vec3 {
	scaledVertex := mgl32.Vec3{vertex[0] * scale[0], vertex[1] * scale[1], vertex[2] * scale[2]}
	// mgl32.Quat doesn't multiply with Vec3 directly
	rotatedVertex := rotation.Mat4().Mul4x1(scaledVertex.Vec4(1)).Vec3()
	return rotatedVertex.Add(position)
}

// ensureMaterial gives the model its own material instance
func (m *Model) ensureMaterial() {
	if m.Material == nil {
		m.Material = NewMaterial("default", 1, 1, 1)
	} else if m.Material == DefaultMaterial {
		// Never mutate the shared default
		m.Material = DefaultMaterial.Clone()
	}
}

func (m *Model) SetDiffuseColor(r, g, b float32) {
	m.ensureMaterial()
	m.Material.DiffuseColor = [3]float32{r, g, b}
}

func (m *Model) SetSpecularColor(r, g, b float32) {
	m.ensureMaterial()
	m.Material.SpecularColor = [3]float32{r, g, b}
}

func (m *Model) SetMaterialPBR(metallic, roughness float32) {
	m.ensureMaterial()
	m.Material.Metallic = metallic
	m.Material.Roughness = roughness
}

func (m *Model) SetAlpha(alpha float32) {
	m.ensureMaterial()
	m.Material.Alpha = alpha
}

func (m *Model) SetTexture(texturePath string) {
	m.ensureMaterial()
	m.Material.TexturePath = texturePath
	logger.Log.Debug("Texture path set for model",
		zap.String("path", texturePath),
		zap.String("material", m.Material.Name))
}

// SetExtendedMaterial replaces the model's material with base extended by ext.
// The pairing is only drawable once ext's type is registered with the renderer.
func (m *Model) SetExtendedMaterial(base *Material, ext material.Extension) {
	if base == nil {
		base = DefaultMaterial
	}
	m.Material = base
	m.Extension = ext
}

func SetDefaultTexture(RendererAPI Render) {
	textureID, err := RendererAPI.CreateTextureFromImage(SolidImage(1, 1, color.RGBA{255, 255, 255, 255}))
	if err != nil {
		logger.Log.Error("Failed to create default texture", zap.Error(err))
		return
	}
	DefaultMaterial.TextureID = textureID
}

func CreateModel(vertices []mgl32.Vec3, indices []int32) *Model {
	interleavedData := make([]float32, 0, len(vertices)*8)
	for _, v := range vertices {
		interleavedData = append(interleavedData, v.X(), v.Y(), v.Z())
		// Placeholder UV and normal
		interleavedData = append(interleavedData, 0.0, 0.0)
		interleavedData = append(interleavedData, 0.0, 1.0, 0.0)
	}
	return CreateModelFromInterleaved(interleavedData, indices)
}

// CreateModelFromInterleaved builds a model from pos3 uv2 normal3 vertex data.
func CreateModelFromInterleaved(interleaved []float32, indices []int32) *Model {
	numVertices := len(interleaved) / 8
	positions := make([]float32, 0, numVertices*3)
	for i := 0; i < numVertices; i++ {
		positions = append(positions, interleaved[i*8], interleaved[i*8+1], interleaved[i*8+2])
	}

	m := &Model{
		Position:        mgl32.Vec3{0, 0, 0},
		Rotation:        mgl32.QuatIdent(),
		Scale:           mgl32.Vec3{1.0, 1.0, 1.0},
		Vertices:        positions,
		Faces:           indices,
		InterleavedData: interleaved,
	}
	m.calculateModelMatrix()
	return m
}
