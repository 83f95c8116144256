package loader

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func checkIndices(t *testing.T, m *Mesh) {
	t.Helper()
	if len(m.InterleavedData)%floatsPerVertex != 0 {
		t.Fatalf("%s: interleaved data length %d is not a multiple of %d", m.Name, len(m.InterleavedData), floatsPerVertex)
	}
	if len(m.Indices) == 0 || len(m.Indices)%3 != 0 {
		t.Fatalf("%s: expected whole triangles, got %d indices", m.Name, len(m.Indices))
	}
	for _, idx := range m.Indices {
		if idx < 0 || int(idx) >= m.VertexCount() {
			t.Fatalf("%s: index %d out of range [0,%d)", m.Name, idx, m.VertexCount())
		}
	}
}

func checkNormalsAndUVs(t *testing.T, m *Mesh) {
	t.Helper()
	for i := 0; i < m.VertexCount(); i++ {
		if l := m.Normal(i).Len(); math.Abs(float64(l)-1) > 1e-3 {
			t.Fatalf("%s: normal %d has length %f", m.Name, i, l)
		}
		uv := m.UV(i)
		if uv.X() < -1e-5 || uv.X() > 1+1e-5 || uv.Y() < -1e-5 || uv.Y() > 1+1e-5 {
			t.Fatalf("%s: uv %d out of [0,1]: %v", m.Name, i, uv)
		}
	}
}

// checkFacesOutward asserts every triangle of a convex mesh around the origin
// is wound counter clockwise seen from outside.
func checkFacesOutward(t *testing.T, m *Mesh) {
	t.Helper()
	for i := 0; i < len(m.Indices); i += 3 {
		p0 := m.Position(int(m.Indices[i]))
		p1 := m.Position(int(m.Indices[i+1]))
		p2 := m.Position(int(m.Indices[i+2]))
		face := p1.Sub(p0).Cross(p2.Sub(p0))
		if face.Len() < 1e-7 {
			continue
		}
		center := p0.Add(p1).Add(p2).Mul(1.0 / 3)
		if face.Dot(center) <= 0 {
			t.Fatalf("%s: triangle %d faces inward (face %v, center %v)", m.Name, i/3, face, center)
		}
	}
}

func TestConvexPrimitives(t *testing.T) {
	hexagon, err := Extrude("Hexagon", RegularPolygonOutline(1, 6), 0.5)
	if err != nil {
		t.Fatalf("Extrude failed: %v", err)
	}
	stadium, err := Extrude("Stadium", CapsuleOutline(0.5, 0.5, 8), 0.5)
	if err != nil {
		t.Fatalf("Extrude failed: %v", err)
	}

	meshes := []*Mesh{
		Cuboid(1, 2, 3),
		UVSphere(1, 16, 8),
		Cylinder(1, 2, 12),
		Cone(1, 2, 12),
		ConicalFrustum(1, 0.5, 1, 12),
		Capsule(0.5, 1, 12, 4),
		Tetrahedron(1),
		hexagon,
		stadium,
	}
	for _, m := range meshes {
		checkIndices(t, m)
		checkNormalsAndUVs(t, m)
		checkFacesOutward(t, m)
	}
}

func TestIcoSphere(t *testing.T) {
	for subdivisions, faces := range []int{20, 80, 320} {
		m := IcoSphere(2, subdivisions)
		checkIndices(t, m)
		checkFacesOutward(t, m)

		if got := len(m.Indices) / 3; got != faces {
			t.Errorf("subdivisions %d: expected %d triangles, got %d", subdivisions, faces, got)
		}
		for i := 0; i < m.VertexCount(); i++ {
			if r := m.Position(i).Len(); math.Abs(float64(r)-2) > 1e-4 {
				t.Fatalf("vertex %d at radius %f, expected 2", i, r)
			}
			if !m.Normal(i).ApproxEqualThreshold(m.Position(i).Normalize(), 1e-4) {
				t.Fatalf("vertex %d normal %v does not point outward", i, m.Normal(i))
			}
			uv := m.UV(i)
			if uv.Y() < 0 || uv.Y() > 1 || uv.X() < 0 || uv.X() > 1.5 {
				t.Fatalf("vertex %d uv %v out of range", i, uv)
			}
		}
	}
}

func TestIcoSphereSeamTrianglesAreNarrow(t *testing.T) {
	m := IcoSphere(1, 2)
	for i := 0; i < len(m.Indices); i += 3 {
		u0 := m.UV(int(m.Indices[i])).X()
		u1 := m.UV(int(m.Indices[i+1])).X()
		u2 := m.UV(int(m.Indices[i+2])).X()
		span := max(u0, u1, u2) - min(u0, u1, u2)
		if span > 0.5 {
			t.Fatalf("triangle %d spans %f in U, expected the seam to be unwrapped", i/3, span)
		}
	}
}

func TestCuboidShape(t *testing.T) {
	m := Cuboid(2, 4, 6)

	if m.VertexCount() != 24 {
		t.Errorf("Expected 24 vertices, got %d", m.VertexCount())
	}
	if len(m.Indices) != 36 {
		t.Errorf("Expected 36 indices, got %d", len(m.Indices))
	}
	for i := 0; i < m.VertexCount(); i++ {
		p := m.Position(i)
		if math.Abs(float64(p.X())) != 1 || math.Abs(float64(p.Y())) != 2 || math.Abs(float64(p.Z())) != 3 {
			t.Fatalf("Vertex %d not on a corner: %v", i, p)
		}
	}
}

func TestPlaneFacesUp(t *testing.T) {
	m := Plane(50, 50, 4)
	checkIndices(t, m)
	checkNormalsAndUVs(t, m)

	if m.VertexCount() != 25 {
		t.Errorf("Expected 25 vertices, got %d", m.VertexCount())
	}
	for i := 0; i < len(m.Indices); i += 3 {
		p0 := m.Position(int(m.Indices[i]))
		p1 := m.Position(int(m.Indices[i+1]))
		p2 := m.Position(int(m.Indices[i+2]))
		if face := p1.Sub(p0).Cross(p2.Sub(p0)); face.Y() <= 0 {
			t.Fatalf("Triangle %d should face +Y, got %v", i/3, face)
		}
	}

	if Plane(1, 1, 0).VertexCount() != 4 {
		t.Error("Zero subdivisions should fall back to a single quad")
	}
}

func TestTorusFacesAwayFromTube(t *testing.T) {
	m := Torus(1, 0.25, 24, 12)
	checkIndices(t, m)
	checkNormalsAndUVs(t, m)

	for i := 0; i < len(m.Indices); i += 3 {
		p0 := m.Position(int(m.Indices[i]))
		p1 := m.Position(int(m.Indices[i+1]))
		p2 := m.Position(int(m.Indices[i+2]))
		face := p1.Sub(p0).Cross(p2.Sub(p0))
		center := p0.Add(p1).Add(p2).Mul(1.0 / 3)
		ring := mgl32.Vec3{center.X(), 0, center.Z()}.Normalize()
		if face.Dot(center.Sub(ring)) <= 0 {
			t.Fatalf("Torus triangle %d faces into the tube", i/3)
		}
	}
}

func TestExtrudeAnnulus(t *testing.T) {
	m := ExtrudeAnnulus(0.5, 1, 0.25, 16)
	checkIndices(t, m)
	checkNormalsAndUVs(t, m)

	for i := 0; i < m.VertexCount(); i++ {
		p := m.Position(i)
		r := mgl32.Vec2{p.X(), p.Y()}.Len()
		if r < 0.5-1e-4 || r > 1+1e-4 {
			t.Fatalf("Vertex %d outside the ring: radius %f", i, r)
		}
	}
}

func TestExtrudeRejectsDegenerateOutline(t *testing.T) {
	if _, err := Extrude("Line", []mgl32.Vec2{{0, 0}, {1, 0}}, 1); err == nil {
		t.Error("Expected error for an outline with two points")
	}
}

func TestOutlines(t *testing.T) {
	rect := RectangleOutline(2, 1)
	if len(rect) != 4 || rect[2] != (mgl32.Vec2{1, 0.5}) {
		t.Errorf("Unexpected rectangle outline %v", rect)
	}

	poly := RegularPolygonOutline(1, 6)
	if !poly[0].ApproxEqualThreshold(mgl32.Vec2{0, 1}, 1e-6) {
		t.Errorf("First polygon vertex should point up, got %v", poly[0])
	}

	for _, p := range CircleOutline(2, 32) {
		if math.Abs(float64(p.Len())-2) > 1e-5 {
			t.Fatalf("Circle point %v not on radius 2", p)
		}
	}
}

func TestMeshModel(t *testing.T) {
	model := Cuboid(1, 1, 1).Model()

	if model.Name != "Cuboid" {
		t.Errorf("Expected model name Cuboid, got %s", model.Name)
	}
	if len(model.Faces) != 36 || len(model.InterleavedData) != 24*floatsPerVertex {
		t.Errorf("Model geometry does not match mesh: %d faces, %d floats", len(model.Faces), len(model.InterleavedData))
	}
}
