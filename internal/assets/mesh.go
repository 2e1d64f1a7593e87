package assets

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh - развёрнутая геометрия: по одной вершине на угол треугольника.
type Mesh struct {
	Name      string
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint16
}

// Triangles возвращает число треугольников.
func (m *Mesh) Triangles() int { return len(m.Indices) / 3 }

// LoadOBJ reads a Wavefront OBJ file. See ParseOBJ for the supported subset.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mesh: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	mesh.Name = path
	return mesh, nil
}

// ParseOBJ supports only triangulated, fully indexed exports: every face is
// exactly three "v/vt/vn" references. Quads, polygons and faces missing uv or
// normal indices are rejected.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	var (
		positions []mgl32.Vec3
		normals   []mgl32.Vec3
		uvs       []mgl32.Vec2
		mesh      = &Mesh{}
	)

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v", "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			vec := mgl32.Vec3{v[0], v[1], v[2]}
			if fields[0] == "v" {
				positions = append(positions, vec)
			} else {
				normals = append(normals, vec)
			}
		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			uvs = append(uvs, mgl32.Vec2{v[0], v[1]})
		case "f":
			if len(fields) != 4 {
				return nil, fmt.Errorf("line %d: only triangulated faces are supported, got %d vertices", lineNo, len(fields)-1)
			}
			for _, ref := range fields[1:] {
				vi, ti, ni, err := parseFaceRef(ref, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				if len(mesh.Positions) >= math.MaxUint16 {
					return nil, fmt.Errorf("line %d: mesh exceeds %d vertices", lineNo, math.MaxUint16)
				}
				mesh.Indices = append(mesh.Indices, uint16(len(mesh.Positions)))
				mesh.Positions = append(mesh.Positions, positions[vi])
				mesh.UVs = append(mesh.UVs, uvs[ti])
				mesh.Normals = append(mesh.Normals, normals[ni])
			}
		default:
			// o, g, s, usemtl, mtllib - не нужны
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mesh: %w", err)
	}
	if len(mesh.Indices) == 0 {
		return nil, fmt.Errorf("mesh has no faces")
	}
	return mesh, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d components, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("bad number %q: %w", fields[i], err)
		}
		out[i] = float32(f)
	}
	return out, nil
}

func parseFaceRef(ref string, nv, nt, nn int) (int, int, int, error) {
	parts := strings.Split(ref, "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return 0, 0, 0, fmt.Errorf("face vertex %q must be v/vt/vn", ref)
	}
	var idx [3]int
	for i, limit := range [3]int{nv, nt, nn} {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return 0, 0, 0, fmt.Errorf("face vertex %q: %w", ref, err)
		}
		if n < 1 || n > limit {
			return 0, 0, 0, fmt.Errorf("face vertex %q: index %d out of range 1..%d", ref, n, limit)
		}
		idx[i] = n - 1
	}
	return idx[0], idx[1], idx[2], nil
}
