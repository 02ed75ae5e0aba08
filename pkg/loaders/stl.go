// Package loaders parses triangle mesh files into geometry the renderer can
// consume.
package loaders

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/tmayer/go-stl-raytracer/pkg/core"
	"github.com/tmayer/go-stl-raytracer/pkg/geometry"
)

// ErrMalformedSTL is wrapped by every parse failure in this package
var ErrMalformedSTL = errors.New("malformed STL")

const (
	binarySTLHeaderSize = 80
	binarySTLRecordSize = 50 // 4 x 3 float32 vectors plus a uint16 attribute
)

// LoadSTL reads an STL file, binary or ASCII, and returns its triangles as a
// mesh. STL stores one normal per facet; the normal is replicated across the
// facet's three vertices, so vertices shared between facets are duplicated
// rather than merged.
func LoadSTL(filename string) (*geometry.Mesh, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read STL file: %w", err)
	}
	return ParseSTL(data)
}

// ParseSTL parses STL bytes, detecting the binary layout by its exact size
// arithmetic and falling back to the ASCII grammar.
func ParseSTL(data []byte) (*geometry.Mesh, error) {
	if isBinarySTL(data) {
		return parseBinarySTL(data)
	}
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return parseASCIISTL(data)
	}
	return nil, fmt.Errorf("%w: neither binary layout nor ascii solid", ErrMalformedSTL)
}

// isBinarySTL checks whether the declared triangle count exactly accounts
// for the file size. ASCII files that happen to start with "solid" never
// satisfy this arithmetic.
func isBinarySTL(data []byte) bool {
	if len(data) < binarySTLHeaderSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[binarySTLHeaderSize:])
	expected := uint64(binarySTLHeaderSize) + 4 + uint64(count)*binarySTLRecordSize
	return uint64(len(data)) == expected
}

func parseBinarySTL(data []byte) (*geometry.Mesh, error) {
	count := int(binary.LittleEndian.Uint32(data[binarySTLHeaderSize:]))
	records := data[binarySTLHeaderSize+4:]

	b := newMeshBuilder(count)
	for i := 0; i < count; i++ {
		record := records[i*binarySTLRecordSize:]
		normal := readVec3f32(record)
		v0 := readVec3f32(record[12:])
		v1 := readVec3f32(record[24:])
		v2 := readVec3f32(record[36:])
		b.addFacet(normal, v0, v1, v2)
	}
	return b.build()
}

func readVec3f32(data []byte) core.Vec3 {
	return core.NewVec3(
		float64(math.Float32frombits(binary.LittleEndian.Uint32(data))),
		float64(math.Float32frombits(binary.LittleEndian.Uint32(data[4:]))),
		float64(math.Float32frombits(binary.LittleEndian.Uint32(data[8:]))),
	)
}

// parseASCIISTL consumes the token grammar
//
//	solid <name>
//	  facet normal nx ny nz
//	    outer loop
//	      vertex x y z  (exactly three)
//	    endloop
//	  endfacet
//	endsolid <name>
//
// ignoring the solid name and treating any structural deviation as a parse
// error.
func parseASCIISTL(data []byte) (*geometry.Mesh, error) {
	tokens := bytes.Fields(data)
	b := newMeshBuilder(0)

	i := 0
	next := func() (string, bool) {
		if i >= len(tokens) {
			return "", false
		}
		tok := string(tokens[i])
		i++
		return tok, true
	}
	expect := func(want string) error {
		tok, ok := next()
		if !ok {
			return fmt.Errorf("%w: unexpected end of file, want %q", ErrMalformedSTL, want)
		}
		if tok != want {
			return fmt.Errorf("%w: got %q, want %q", ErrMalformedSTL, tok, want)
		}
		return nil
	}
	readVec3 := func() (core.Vec3, error) {
		var coords [3]float64
		for c := range coords {
			tok, ok := next()
			if !ok {
				return core.Vec3{}, fmt.Errorf("%w: unexpected end of file in coordinate triple", ErrMalformedSTL)
			}
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return core.Vec3{}, fmt.Errorf("%w: bad coordinate %q", ErrMalformedSTL, tok)
			}
			coords[c] = v
		}
		return core.NewVec3(coords[0], coords[1], coords[2]), nil
	}

	if err := expect("solid"); err != nil {
		return nil, err
	}
	// Skip the optional solid name up to the first facet or endsolid.
	for i < len(tokens) {
		tok := string(tokens[i])
		if tok == "facet" || tok == "endsolid" {
			break
		}
		i++
	}

	for {
		tok, ok := next()
		if !ok {
			return nil, fmt.Errorf("%w: missing endsolid", ErrMalformedSTL)
		}
		if tok == "endsolid" {
			break
		}
		if tok != "facet" {
			return nil, fmt.Errorf("%w: got %q, want \"facet\" or \"endsolid\"", ErrMalformedSTL, tok)
		}

		if err := expect("normal"); err != nil {
			return nil, err
		}
		normal, err := readVec3()
		if err != nil {
			return nil, err
		}
		if err := expect("outer"); err != nil {
			return nil, err
		}
		if err := expect("loop"); err != nil {
			return nil, err
		}

		var verts [3]core.Vec3
		for v := range verts {
			if err := expect("vertex"); err != nil {
				return nil, err
			}
			if verts[v], err = readVec3(); err != nil {
				return nil, err
			}
		}

		if err := expect("endloop"); err != nil {
			return nil, err
		}
		if err := expect("endfacet"); err != nil {
			return nil, err
		}

		b.addFacet(normal, verts[0], verts[1], verts[2])
	}

	return b.build()
}

// meshBuilder accumulates facets into flat vertex arrays, three fresh
// vertices per facet.
type meshBuilder struct {
	positions []core.Vec3
	normals   []core.Vec3
	indices   [][3]int
}

func newMeshBuilder(facetHint int) *meshBuilder {
	return &meshBuilder{
		positions: make([]core.Vec3, 0, facetHint*3),
		normals:   make([]core.Vec3, 0, facetHint*3),
		indices:   make([][3]int, 0, facetHint),
	}
}

func (b *meshBuilder) addFacet(normal, v0, v1, v2 core.Vec3) {
	// Files frequently store a zero facet normal; derive it from the
	// vertex winding instead.
	if normal.LengthSquared() == 0 {
		normal = v1.Subtract(v0).Cross(v2.Subtract(v0))
		if normal.LengthSquared() == 0 {
			normal = core.NewVec3(0, 0, 1) // degenerate facet
		}
	}
	normal = normal.Normalize()

	base := len(b.positions)
	b.positions = append(b.positions, v0, v1, v2)
	b.normals = append(b.normals, normal, normal, normal)
	b.indices = append(b.indices, [3]int{base, base + 1, base + 2})
}

func (b *meshBuilder) build() (*geometry.Mesh, error) {
	return geometry.NewMesh(b.positions, b.normals, nil, b.indices)
}
