package loader

import (
	"ScrollMat/internal/renderer"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// floatsPerVertex is the interleaved layout the renderer expects: pos3 uv2 normal3.
const floatsPerVertex = 8

// Mesh is procedurally generated geometry in the renderer's interleaved layout.
type Mesh struct {
	Name            string
	InterleavedData []float32
	Indices         []int32
}

func (m *Mesh) VertexCount() int {
	return len(m.InterleavedData) / floatsPerVertex
}

func (m *Mesh) Position(i int) mgl32.Vec3 {
	o := i * floatsPerVertex
	return mgl32.Vec3{m.InterleavedData[o], m.InterleavedData[o+1], m.InterleavedData[o+2]}
}

func (m *Mesh) UV(i int) mgl32.Vec2 {
	o := i*floatsPerVertex + 3
	return mgl32.Vec2{m.InterleavedData[o], m.InterleavedData[o+1]}
}

func (m *Mesh) Normal(i int) mgl32.Vec3 {
	o := i*floatsPerVertex + 5
	return mgl32.Vec3{m.InterleavedData[o], m.InterleavedData[o+1], m.InterleavedData[o+2]}
}

// Model uploads nothing; it wraps the mesh in a renderer model ready for AddModel.
func (m *Mesh) Model() *renderer.Model {
	model := renderer.CreateModelFromInterleaved(m.InterleavedData, m.Indices)
	model.Name = m.Name
	return model
}

type meshBuilder struct {
	name    string
	data    []float32
	indices []int32
}

func (b *meshBuilder) vertex(p mgl32.Vec3, uv mgl32.Vec2, n mgl32.Vec3) int32 {
	idx := int32(len(b.data) / floatsPerVertex)
	b.data = append(b.data, p[0], p[1], p[2], uv[0], uv[1], n[0], n[1], n[2])
	return idx
}

func (b *meshBuilder) at(i int32, offset int) mgl32.Vec3 {
	o := int(i)*floatsPerVertex + offset
	return mgl32.Vec3{b.data[o], b.data[o+1], b.data[o+2]}
}

// triangle adds a face wound counter clockwise when seen from the side its
// vertex normals point to.
func (b *meshBuilder) triangle(i0, i1, i2 int32) {
	p0, p1, p2 := b.at(i0, 0), b.at(i1, 0), b.at(i2, 0)
	face := p1.Sub(p0).Cross(p2.Sub(p0))
	normal := b.at(i0, 5).Add(b.at(i1, 5)).Add(b.at(i2, 5))
	if face.Dot(normal) < 0 {
		i1, i2 = i2, i1
	}
	b.indices = append(b.indices, i0, i1, i2)
}

func (b *meshBuilder) quad(i0, i1, i2, i3 int32) {
	b.triangle(i0, i1, i2)
	b.triangle(i0, i2, i3)
}

func (b *meshBuilder) mesh() *Mesh {
	return &Mesh{Name: b.name, InterleavedData: b.data, Indices: b.indices}
}

// grid connects a (rows+1) x (cols+1) block of vertices starting at first.
func (b *meshBuilder) grid(first int32, rows, cols int) {
	stride := int32(cols + 1)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := first + int32(r)*stride + int32(c)
			b.quad(i, i+1, i+stride+1, i+stride)
		}
	}
}

// Cuboid is a box centered at the origin.
func Cuboid(width, height, depth float32) *Mesh {
	b := &meshBuilder{name: "Cuboid"}
	half := mgl32.Vec3{width / 2, height / 2, depth / 2}

	faces := []struct{ n, u, v mgl32.Vec3 }{
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	}
	for _, f := range faces {
		center := mul3(f.n, half)
		u := mul3(f.u, half)
		v := mul3(f.v, half)
		i0 := b.vertex(center.Sub(u).Sub(v), mgl32.Vec2{0, 0}, f.n)
		i1 := b.vertex(center.Add(u).Sub(v), mgl32.Vec2{1, 0}, f.n)
		i2 := b.vertex(center.Add(u).Add(v), mgl32.Vec2{1, 1}, f.n)
		i3 := b.vertex(center.Sub(u).Add(v), mgl32.Vec2{0, 1}, f.n)
		b.quad(i0, i1, i2, i3)
	}
	return b.mesh()
}

// Plane is a flat XZ grid facing +Y with UVs spanning [0,1] once.
func Plane(width, depth float32, subdivisions int) *Mesh {
	if subdivisions < 1 {
		subdivisions = 1
	}
	b := &meshBuilder{name: "Plane"}
	up := mgl32.Vec3{0, 1, 0}
	for r := 0; r <= subdivisions; r++ {
		v := float32(r) / float32(subdivisions)
		for c := 0; c <= subdivisions; c++ {
			u := float32(c) / float32(subdivisions)
			p := mgl32.Vec3{(u - 0.5) * width, 0, (0.5 - v) * depth}
			b.vertex(p, mgl32.Vec2{u, v}, up)
		}
	}
	b.grid(0, subdivisions, subdivisions)
	return b.mesh()
}

// UVSphere is a latitude/longitude sphere.
func UVSphere(radius float32, sectors, stacks int) *Mesh {
	sectors, stacks = atLeast(sectors, 3), atLeast(stacks, 2)
	b := &meshBuilder{name: "Sphere"}
	for i := 0; i <= stacks; i++ {
		phi := math.Pi * float64(i) / float64(stacks)
		for j := 0; j <= sectors; j++ {
			theta := 2 * math.Pi * float64(j) / float64(sectors)
			n := mgl32.Vec3{
				float32(math.Sin(phi) * math.Cos(theta)),
				float32(math.Cos(phi)),
				float32(math.Sin(phi) * math.Sin(theta)),
			}
			b.vertex(n.Mul(radius), mgl32.Vec2{float32(j) / float32(sectors), float32(i) / float32(stacks)}, n)
		}
	}
	b.grid(0, stacks, sectors)
	return b.mesh()
}

// IcoSphere is a subdivided icosahedron. Every subdivision splits each face
// in four. Triangles crossing the longitude seam get U past 1, which the
// REPEAT wrap turns back into the same texels.
func IcoSphere(radius float32, subdivisions int) *Mesh {
	subdivisions = atLeast(subdivisions, 0)
	g := float32((1 + math.Sqrt(5)) / 2)
	points := []mgl32.Vec3{
		{-1, g, 0}, {1, g, 0}, {-1, -g, 0}, {1, -g, 0},
		{0, -1, g}, {0, 1, g}, {0, -1, -g}, {0, 1, -g},
		{g, 0, -1}, {g, 0, 1}, {-g, 0, -1}, {-g, 0, 1},
	}
	for i := range points {
		points[i] = points[i].Normalize()
	}
	faces := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	for s := 0; s < subdivisions; s++ {
		midpoints := make(map[[2]int]int)
		midpoint := func(a, b int) int {
			key := [2]int{min(a, b), max(a, b)}
			if i, ok := midpoints[key]; ok {
				return i
			}
			points = append(points, points[a].Add(points[b]).Normalize())
			midpoints[key] = len(points) - 1
			return len(points) - 1
		}
		next := make([][3]int, 0, len(faces)*4)
		for _, f := range faces {
			ab, bc, ca := midpoint(f[0], f[1]), midpoint(f[1], f[2]), midpoint(f[2], f[0])
			next = append(next,
				[3]int{f[0], ab, ca}, [3]int{f[1], bc, ab},
				[3]int{f[2], ca, bc}, [3]int{ab, bc, ca})
		}
		faces = next
	}

	b := &meshBuilder{name: "IcoSphere"}
	for _, f := range faces {
		var uvs [3]mgl32.Vec2
		var pole [3]bool
		for k, i := range f {
			n := points[i]
			u := 0.5 + math.Atan2(float64(n.Z()), float64(n.X()))/(2*math.Pi)
			v := math.Acos(float64(mgl32.Clamp(n.Y(), -1, 1))) / math.Pi
			uvs[k] = mgl32.Vec2{float32(u), float32(v)}
			pole[k] = math.Abs(float64(n.Y())) > 1-1e-6
		}
		for k := range uvs {
			for j := range uvs {
				if !pole[k] && !pole[j] && uvs[j].X()-uvs[k].X() > 0.5 {
					uvs[k][0]++
				}
			}
		}
		// Poles have no longitude; take the middle of the other two corners
		for k := range uvs {
			if pole[k] {
				uvs[k][0] = (uvs[(k+1)%3].X() + uvs[(k+2)%3].X()) / 2
			}
		}
		i0 := b.vertex(points[f[0]].Mul(radius), uvs[0], points[f[0]])
		i1 := b.vertex(points[f[1]].Mul(radius), uvs[1], points[f[1]])
		i2 := b.vertex(points[f[2]].Mul(radius), uvs[2], points[f[2]])
		b.triangle(i0, i1, i2)
	}
	return b.mesh()
}

// Torus lies in the XZ plane around the Y axis.
func Torus(majorRadius, minorRadius float32, majorSegments, minorSegments int) *Mesh {
	majorSegments, minorSegments = atLeast(majorSegments, 3), atLeast(minorSegments, 3)
	b := &meshBuilder{name: "Torus"}
	for i := 0; i <= majorSegments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(majorSegments)
		dir := mgl32.Vec3{float32(math.Cos(theta)), 0, float32(math.Sin(theta))}
		center := dir.Mul(majorRadius)
		for j := 0; j <= minorSegments; j++ {
			phi := 2 * math.Pi * float64(j) / float64(minorSegments)
			n := dir.Mul(float32(math.Cos(phi))).Add(mgl32.Vec3{0, float32(math.Sin(phi)), 0})
			uv := mgl32.Vec2{float32(i) / float32(majorSegments), float32(j) / float32(minorSegments)}
			b.vertex(center.Add(n.Mul(minorRadius)), uv, n)
		}
	}
	b.grid(0, majorSegments, minorSegments)
	return b.mesh()
}

// ConicalFrustum is a capped truncated cone along Y, centered at the origin.
// A zero radius leaves that end as a point without a cap.
func ConicalFrustum(bottomRadius, topRadius, height float32, segments int) *Mesh {
	segments = atLeast(segments, 3)
	b := &meshBuilder{name: "ConicalFrustum"}
	half := height / 2
	slope := bottomRadius - topRadius

	for i := 0; i <= 1; i++ {
		y := -half + float32(i)*height
		r := bottomRadius + float32(i)*(topRadius-bottomRadius)
		for j := 0; j <= segments; j++ {
			theta := 2 * math.Pi * float64(j) / float64(segments)
			c, s := float32(math.Cos(theta)), float32(math.Sin(theta))
			n := mgl32.Vec3{c * height, slope, s * height}.Normalize()
			b.vertex(mgl32.Vec3{c * r, y, s * r}, mgl32.Vec2{float32(j) / float32(segments), float32(i)}, n)
		}
	}
	b.grid(0, 1, segments)

	if bottomRadius > 0 {
		capDisc(b, bottomRadius, -half, mgl32.Vec3{0, -1, 0}, segments)
	}
	if topRadius > 0 {
		capDisc(b, topRadius, half, mgl32.Vec3{0, 1, 0}, segments)
	}
	return b.mesh()
}

func Cylinder(radius, height float32, segments int) *Mesh {
	m := ConicalFrustum(radius, radius, height, segments)
	m.Name = "Cylinder"
	return m
}

func Cone(radius, height float32, segments int) *Mesh {
	m := ConicalFrustum(radius, 0, height, segments)
	m.Name = "Cone"
	return m
}

func capDisc(b *meshBuilder, radius, y float32, n mgl32.Vec3, segments int) {
	center := b.vertex(mgl32.Vec3{0, y, 0}, mgl32.Vec2{0.5, 0.5}, n)
	first := center + 1
	for j := 0; j <= segments; j++ {
		theta := 2 * math.Pi * float64(j) / float64(segments)
		c, s := float32(math.Cos(theta)), float32(math.Sin(theta))
		b.vertex(mgl32.Vec3{c * radius, y, s * radius}, mgl32.Vec2{0.5 + c/2, 0.5 + s/2}, n)
	}
	for j := 0; j < segments; j++ {
		b.triangle(center, first+int32(j), first+int32(j)+1)
	}
}

// Capsule is a cylinder of the given length capped by two hemispheres, along Y.
func Capsule(radius, length float32, segments, rings int) *Mesh {
	segments, rings = atLeast(segments, 3), atLeast(rings, 1)
	b := &meshBuilder{name: "Capsule"}
	half := length / 2
	total := 2*radius + length

	for hemi := 0; hemi < 2; hemi++ {
		offset := half
		if hemi == 1 {
			offset = -half
		}
		for i := 0; i <= rings; i++ {
			phi := math.Pi / 2 * (float64(hemi) + float64(i)/float64(rings))
			for j := 0; j <= segments; j++ {
				theta := 2 * math.Pi * float64(j) / float64(segments)
				n := mgl32.Vec3{
					float32(math.Sin(phi) * math.Cos(theta)),
					float32(math.Cos(phi)),
					float32(math.Sin(phi) * math.Sin(theta)),
				}
				p := n.Mul(radius).Add(mgl32.Vec3{0, offset, 0})
				v := (half + radius - p.Y()) / total
				b.vertex(p, mgl32.Vec2{float32(j) / float32(segments), v}, n)
			}
		}
	}
	b.grid(0, 2*rings+1, segments)
	return b.mesh()
}

// Tetrahedron is a regular tetrahedron with flat faces and the given edge length.
func Tetrahedron(edge float32) *Mesh {
	b := &meshBuilder{name: "Tetrahedron"}
	s := edge / (2 * float32(math.Sqrt2))
	corners := [4]mgl32.Vec3{
		{s, s, s},
		{s, -s, -s},
		{-s, s, -s},
		{-s, -s, s},
	}
	faces := [4][3]int{{0, 1, 2}, {0, 3, 1}, {0, 2, 3}, {1, 3, 2}}
	uvs := [3]mgl32.Vec2{{0.5, 1}, {0, 0}, {1, 0}}
	for _, f := range faces {
		p0, p1, p2 := corners[f[0]], corners[f[1]], corners[f[2]]
		n := p0.Add(p1).Add(p2).Normalize()
		i0 := b.vertex(p0, uvs[0], n)
		i1 := b.vertex(p1, uvs[1], n)
		i2 := b.vertex(p2, uvs[2], n)
		b.triangle(i0, i1, i2)
	}
	return b.mesh()
}

// Extrude turns a convex outline in the XY plane into a prism of the given
// depth along Z, centered at the origin.
func Extrude(name string, outline []mgl32.Vec2, depth float32) (*Mesh, error) {
	if len(outline) < 3 {
		return nil, fmt.Errorf("extrude %s: outline needs at least 3 points, got %d", name, len(outline))
	}
	b := &meshBuilder{name: name}
	half := depth / 2

	minP, maxP := bounds(outline)
	size := maxP.Sub(minP)
	uvOf := func(p mgl32.Vec2) mgl32.Vec2 {
		return mgl32.Vec2{(p.X() - minP.X()) / nonZero(size.X()), (p.Y() - minP.Y()) / nonZero(size.Y())}
	}

	var centroid mgl32.Vec2
	for _, p := range outline {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Mul(1 / float32(len(outline)))

	for _, side := range []float32{1, -1} {
		n := mgl32.Vec3{0, 0, side}
		center := b.vertex(mgl32.Vec3{centroid.X(), centroid.Y(), half * side}, uvOf(centroid), n)
		for i := range outline {
			p := outline[i]
			b.vertex(mgl32.Vec3{p.X(), p.Y(), half * side}, uvOf(p), n)
		}
		for i := range outline {
			next := (i + 1) % len(outline)
			b.triangle(center, center+1+int32(i), center+1+int32(next))
		}
	}

	// Sides get their own vertices for hard edges
	var perimeter float32
	for i := range outline {
		perimeter += outline[(i+1)%len(outline)].Sub(outline[i]).Len()
	}
	var run float32
	for i := range outline {
		p, q := outline[i], outline[(i+1)%len(outline)]
		edge := q.Sub(p)
		n := mgl32.Vec3{edge.Y(), -edge.X(), 0}.Normalize()
		if n.Dot(mgl32.Vec3{p.X() - centroid.X(), p.Y() - centroid.Y(), 0}) < 0 {
			n = n.Mul(-1)
		}
		u0 := run / nonZero(perimeter)
		run += edge.Len()
		u1 := run / nonZero(perimeter)
		i0 := b.vertex(mgl32.Vec3{p.X(), p.Y(), -half}, mgl32.Vec2{u0, 0}, n)
		i1 := b.vertex(mgl32.Vec3{q.X(), q.Y(), -half}, mgl32.Vec2{u1, 0}, n)
		i2 := b.vertex(mgl32.Vec3{q.X(), q.Y(), half}, mgl32.Vec2{u1, 1}, n)
		i3 := b.vertex(mgl32.Vec3{p.X(), p.Y(), half}, mgl32.Vec2{u0, 1}, n)
		b.quad(i0, i1, i2, i3)
	}
	return b.mesh(), nil
}

// ExtrudeAnnulus extrudes a ring between two radii along Z.
func ExtrudeAnnulus(innerRadius, outerRadius, depth float32, segments int) *Mesh {
	segments = atLeast(segments, 3)
	b := &meshBuilder{name: "Annulus"}
	half := depth / 2

	ring := func(radius, z float32, normal func(c, s float32) mgl32.Vec3, v float32, uvDisc bool) int32 {
		first := int32(-1)
		for j := 0; j <= segments; j++ {
			theta := 2 * math.Pi * float64(j) / float64(segments)
			c, s := float32(math.Cos(theta)), float32(math.Sin(theta))
			uv := mgl32.Vec2{float32(j) / float32(segments), v}
			if uvDisc {
				uv = mgl32.Vec2{0.5 + c*radius/(2*outerRadius), 0.5 + s*radius/(2*outerRadius)}
			}
			idx := b.vertex(mgl32.Vec3{c * radius, s * radius, z}, uv, normal(c, s))
			if first < 0 {
				first = idx
			}
		}
		return first
	}
	facing := func(n mgl32.Vec3) func(c, s float32) mgl32.Vec3 {
		return func(c, s float32) mgl32.Vec3 { return n }
	}
	outward := func(c, s float32) mgl32.Vec3 { return mgl32.Vec3{c, s, 0} }
	inward := func(c, s float32) mgl32.Vec3 { return mgl32.Vec3{-c, -s, 0} }

	for _, side := range []float32{1, -1} {
		n := mgl32.Vec3{0, 0, side}
		inner := ring(innerRadius, half*side, facing(n), 0, true)
		outer := ring(outerRadius, half*side, facing(n), 0, true)
		for j := int32(0); j < int32(segments); j++ {
			b.quad(inner+j, outer+j, outer+j+1, inner+j+1)
		}
	}
	for _, wall := range []struct {
		radius float32
		normal func(c, s float32) mgl32.Vec3
	}{{outerRadius, outward}, {innerRadius, inward}} {
		back := ring(wall.radius, -half, wall.normal, 0, false)
		front := ring(wall.radius, half, wall.normal, 1, false)
		for j := int32(0); j < int32(segments); j++ {
			b.quad(back+j, back+j+1, front+j+1, front+j)
		}
	}
	return b.mesh()
}

func RectangleOutline(width, height float32) []mgl32.Vec2 {
	w, h := width/2, height/2
	return []mgl32.Vec2{{-w, -h}, {w, -h}, {w, h}, {-w, h}}
}

func EllipseOutline(halfWidth, halfHeight float32, segments int) []mgl32.Vec2 {
	segments = atLeast(segments, 3)
	outline := make([]mgl32.Vec2, segments)
	for i := range outline {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		outline[i] = mgl32.Vec2{halfWidth * float32(math.Cos(theta)), halfHeight * float32(math.Sin(theta))}
	}
	return outline
}

func CircleOutline(radius float32, segments int) []mgl32.Vec2 {
	return EllipseOutline(radius, radius, segments)
}

// RegularPolygonOutline has its first vertex pointing up.
func RegularPolygonOutline(circumradius float32, sides int) []mgl32.Vec2 {
	sides = atLeast(sides, 3)
	outline := make([]mgl32.Vec2, sides)
	for i := range outline {
		theta := math.Pi/2 + 2*math.Pi*float64(i)/float64(sides)
		outline[i] = mgl32.Vec2{circumradius * float32(math.Cos(theta)), circumradius * float32(math.Sin(theta))}
	}
	return outline
}

// CapsuleOutline is a 2D stadium: two half circles joined along X.
func CapsuleOutline(radius, halfLength float32, segments int) []mgl32.Vec2 {
	segments = atLeast(segments, 2)
	outline := make([]mgl32.Vec2, 0, 2*(segments+1))
	for _, end := range []struct{ cx, start float64 }{{float64(halfLength), -math.Pi / 2}, {-float64(halfLength), math.Pi / 2}} {
		for i := 0; i <= segments; i++ {
			theta := end.start + math.Pi*float64(i)/float64(segments)
			outline = append(outline, mgl32.Vec2{
				float32(end.cx) + radius*float32(math.Cos(theta)),
				radius * float32(math.Sin(theta)),
			})
		}
	}
	return outline
}

func TriangleOutline(a, b, c mgl32.Vec2) []mgl32.Vec2 {
	return []mgl32.Vec2{a, b, c}
}

func mul3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func bounds(points []mgl32.Vec2) (mgl32.Vec2, mgl32.Vec2) {
	minP, maxP := points[0], points[0]
	for _, p := range points[1:] {
		minP = mgl32.Vec2{float32(math.Min(float64(minP.X()), float64(p.X()))), float32(math.Min(float64(minP.Y()), float64(p.Y())))}
		maxP = mgl32.Vec2{float32(math.Max(float64(maxP.X()), float64(p.X()))), float32(math.Max(float64(maxP.Y()), float64(p.Y())))}
	}
	return minP, maxP
}

func nonZero(v float32) float32 {
	if v == 0 {
		return 1
	}
	return v
}

func atLeast(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}
