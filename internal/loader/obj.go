package loader

import (
	"ScrollMat/internal/logger"
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// faceVertex holds zero-based OBJ indices, -1 when the element is absent.
type faceVertex struct {
	vertex, texCoord, normal int32
}

// LoadOBJ reads a Wavefront OBJ file into a Mesh named after the file.
func LoadOBJ(path string) (*Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseOBJ(file, name)
}

// ParseOBJ reads positions, texture coordinates, normals and polygon faces.
// Polygons are fan-triangulated. Missing normals are recalculated, smoothed
// over faces sharing a position. Materials and groups are ignored.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	var positions []mgl32.Vec3
	var texCoords []mgl32.Vec2
	var normals []mgl32.Vec3
	var corners []faceVertex

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 || strings.HasPrefix(parts[0], "#") {
			continue
		}
		switch parts[0] {
		case "v":
			v, err := parseFloats(parts[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: vertex: %w", name, lineNo, err)
			}
			positions = append(positions, mgl32.Vec3{v[0], v[1], v[2]})
		case "vt":
			v, err := parseFloats(parts[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: texture coordinate: %w", name, lineNo, err)
			}
			texCoords = append(texCoords, mgl32.Vec2{v[0], v[1]})
		case "vn":
			v, err := parseFloats(parts[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: normal: %w", name, lineNo, err)
			}
			normals = append(normals, mgl32.Vec3{v[0], v[1], v[2]})
		case "f":
			face, err := parseFace(parts[1:], len(positions), len(texCoords), len(normals))
			if err != nil {
				return nil, fmt.Errorf("%s:%d: face: %w", name, lineNo, err)
			}
			if len(face) > 4 {
				logger.Log.Debug("Fan triangulating polygon", zap.String("mesh", name), zap.Int("vertexCount", len(face)))
			}
			for i := 1; i+1 < len(face); i++ {
				corners = append(corners, face[0], face[i], face[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(corners) == 0 {
		return nil, fmt.Errorf("%s: no faces", name)
	}

	smooth := smoothNormals(positions, corners)
	b := &meshBuilder{name: name}
	seen := make(map[faceVertex]int32, len(corners))
	for _, c := range corners {
		if idx, ok := seen[c]; ok {
			b.indices = append(b.indices, idx)
			continue
		}
		var uv mgl32.Vec2
		if c.texCoord >= 0 {
			uv = texCoords[c.texCoord]
		}
		n := smooth[c.vertex]
		if c.normal >= 0 {
			n = normals[c.normal]
		}
		idx := b.vertex(positions[c.vertex], uv, n)
		seen[c] = idx
		b.indices = append(b.indices, idx)
	}
	return b.mesh(), nil
}

func parseFloats(parts []string, want int) ([]float32, error) {
	if len(parts) < want {
		return nil, fmt.Errorf("expected %d values, got %d", want, len(parts))
	}
	out := make([]float32, want)
	for i := 0; i < want; i++ {
		f, err := strconv.ParseFloat(parts[i], 32)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", parts[i], err)
		}
		out[i] = float32(f)
	}
	return out, nil
}

func parseFace(parts []string, nv, nt, nn int) ([]faceVertex, error) {
	if len(parts) < 3 {
		return nil, fmt.Errorf("needs at least 3 vertices, got %d", len(parts))
	}
	face := make([]faceVertex, 0, len(parts))
	for _, part := range parts {
		vals := strings.Split(part, "/")
		fv := faceVertex{vertex: -1, texCoord: -1, normal: -1}
		var err error
		if fv.vertex, err = resolveIndex(vals[0], nv); err != nil {
			return nil, err
		}
		if len(vals) > 1 && vals[1] != "" {
			if fv.texCoord, err = resolveIndex(vals[1], nt); err != nil {
				return nil, err
			}
		}
		if len(vals) > 2 && vals[2] != "" {
			if fv.normal, err = resolveIndex(vals[2], nn); err != nil {
				return nil, err
			}
		}
		face = append(face, fv)
	}
	return face, nil
}

// resolveIndex converts a one-based or negative (relative) OBJ index.
func resolveIndex(s string, count int) (int32, error) {
	i, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return -1, fmt.Errorf("invalid index %q: %w", s, err)
	}
	if i < 0 {
		i += int64(count) + 1
	}
	if i < 1 || i > int64(count) {
		return -1, fmt.Errorf("index %s out of range 1..%d", s, count)
	}
	return int32(i - 1), nil
}

// smoothNormals averages the face normals around each position.
func smoothNormals(positions []mgl32.Vec3, corners []faceVertex) []mgl32.Vec3 {
	acc := make([]mgl32.Vec3, len(positions))
	for i := 0; i+2 < len(corners); i += 3 {
		a, b, c := corners[i].vertex, corners[i+1].vertex, corners[i+2].vertex
		n := positions[b].Sub(positions[a]).Cross(positions[c].Sub(positions[a]))
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}
	for i, n := range acc {
		if n.Len() > 0 {
			acc[i] = n.Normalize()
		} else {
			acc[i] = mgl32.Vec3{0, 1, 0}
		}
	}
	return acc
}
