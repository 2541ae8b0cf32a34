// OBJ (Wavefront) reader producing indexed source meshes.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/wiresoup/pkg/wireframe"
)

// ErrInvalidOBJ is returned for OBJ data that cannot be turned into a mesh.
var ErrInvalidOBJ = errors.New("invalid OBJ data")

// objCorner is one v/vt/vn reference of a face, 0-based, -1 when absent.
type objCorner struct {
	v, vt, vn int
}

// ParseOBJ reads positions, texture coordinates, normals and faces from OBJ
// data. Polygons are split into triangle fans. Corners that reference the
// same v/vt/vn triple share one vertex, so the result is a welded mesh.
//
// Normals and texture coordinates are kept only when every face corner
// references them; a partially attributed file drops that stream.
func ParseOBJ(data []byte) (*wireframe.SourceMesh, error) {
	var (
		positions []mgl32.Vec3
		texCoords []mgl32.Vec2
		normals   []mgl32.Vec3
		faces     [][3]objCorner
		name      string
	)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "o":
			if name == "" && len(fields) > 1 {
				name = strings.Join(fields[1:], " ")
			}
		case "v":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidOBJ, lineNo, err)
			}
			positions = append(positions, mgl32.Vec3{p[0], p[1], p[2]})
		case "vn":
			p, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidOBJ, lineNo, err)
			}
			normals = append(normals, mgl32.Vec3{p[0], p[1], p[2]})
		case "vt":
			p, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidOBJ, lineNo, err)
			}
			texCoords = append(texCoords, mgl32.Vec2{p[0], p[1]})
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: face needs at least 3 vertices", ErrInvalidOBJ, lineNo)
			}
			corners := make([]objCorner, len(fields)-1)
			for i, ref := range fields[1:] {
				c, err := parseCorner(ref, len(positions), len(texCoords), len(normals))
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidOBJ, lineNo, err)
				}
				corners[i] = c
			}
			for i := 1; i+1 < len(corners); i++ {
				faces = append(faces, [3]objCorner{corners[0], corners[i], corners[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOBJ, err)
	}

	return weldOBJ(name, positions, texCoords, normals, faces), nil
}

// LoadOBJ reads an OBJ file. The file name is used when the data has no object name.
func LoadOBJ(path string) (*wireframe.SourceMesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	mesh, err := ParseOBJ(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if mesh.Name == "" {
		mesh.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return mesh, nil
}

func weldOBJ(name string, positions []mgl32.Vec3, texCoords []mgl32.Vec2, normals []mgl32.Vec3,
	faces [][3]objCorner) *wireframe.SourceMesh {

	useTex, useNorm := len(texCoords) > 0, len(normals) > 0
	for _, f := range faces {
		for _, c := range f {
			useTex = useTex && c.vt >= 0
			useNorm = useNorm && c.vn >= 0
		}
	}

	mesh := &wireframe.SourceMesh{Name: name}
	known := make(map[objCorner]uint32)

	for _, f := range faces {
		for _, c := range f {
			if !useTex {
				c.vt = -1
			}
			if !useNorm {
				c.vn = -1
			}
			idx, ok := known[c]
			if !ok {
				idx = uint32(len(mesh.Positions))
				known[c] = idx
				mesh.Positions = append(mesh.Positions, positions[c.v])
				if useTex {
					mesh.TexCoords = append(mesh.TexCoords, texCoords[c.vt])
				}
				if useNorm {
					mesh.Normals = append(mesh.Normals, normals[c.vn])
				}
			}
			mesh.Indices = append(mesh.Indices, idx)
		}
	}

	return mesh
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d components, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseCorner parses "v", "v/vt", "v//vn" or "v/vt/vn". OBJ indices are
// 1-based; negative values count back from the latest element.
func parseCorner(ref string, nv, nvt, nvn int) (objCorner, error) {
	parts := strings.Split(ref, "/")
	c := objCorner{v: -1, vt: -1, vn: -1}

	var err error
	if c.v, err = resolveIndex(parts[0], nv); err != nil {
		return c, fmt.Errorf("vertex %q: %v", ref, err)
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.vt, err = resolveIndex(parts[1], nvt); err != nil {
			return c, fmt.Errorf("texcoord %q: %v", ref, err)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.vn, err = resolveIndex(parts[2], nvn); err != nil {
			return c, fmt.Errorf("normal %q: %v", ref, err)
		}
	}
	return c, nil
}

func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return -1, err
	}
	switch {
	case i > 0 && i <= count:
		return i - 1, nil
	case i < 0 && -i <= count:
		return count + i, nil
	default:
		return -1, fmt.Errorf("index %d out of range (have %d)", i, count)
	}
}
