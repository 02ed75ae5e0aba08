package geometry

import (
	"errors"
	"fmt"

	"github.com/tmayer/go-stl-raytracer/pkg/core"
)

// ErrEmptyMesh is returned when an operation requires a mesh with at least
// one vertex
var ErrEmptyMesh = errors.New("mesh is empty")

// Mesh is a triangle mesh. All triangles reference the shared vertex arrays
// by index; the arrays are allocated once and never reallocated during
// rendering.
type Mesh struct {
	// Positions contains a position for each vertex in the mesh
	Positions []core.Vec3

	// Normals contains a normal for each vertex; it has the same length
	// as Positions
	Normals []core.Vec3

	// UVs optionally contains a parameterization coordinate for each
	// vertex; nil when the mesh has none
	UVs []core.Vec2

	// Indices describes each triangle as three indices into the vertex
	// arrays
	Indices [][3]int

	// SwapsHandedness records whether the accumulated transformations
	// applied to the mesh have flipped the handedness of its coordinate
	// system
	SwapsHandedness bool

	// ReverseOrientation requests that geometric normals point opposite
	// the direction implied by the vertex winding
	ReverseOrientation bool
}

// NewMesh validates the vertex and index arrays and returns a mesh over them
func NewMesh(positions, normals []core.Vec3, uvs []core.Vec2, indices [][3]int) (*Mesh, error) {
	if len(normals) != len(positions) {
		return nil, fmt.Errorf("mesh has %d positions but %d normals", len(positions), len(normals))
	}
	if uvs != nil && len(uvs) != len(positions) {
		return nil, fmt.Errorf("mesh has %d positions but %d uvs", len(positions), len(uvs))
	}
	for i, tri := range indices {
		for _, v := range tri {
			if v < 0 || v >= len(positions) {
				return nil, fmt.Errorf("triangle %d references vertex %d, mesh has %d vertices", i, v, len(positions))
			}
		}
	}
	return &Mesh{
		Positions: positions,
		Normals:   normals,
		UVs:       uvs,
		Indices:   indices,
	}, nil
}

// Transform applies the transformation to every vertex position and normal
func (m *Mesh) Transform(t core.Matrix4) {
	for i, p := range m.Positions {
		m.Positions[i] = t.TransformPoint(p)
	}
	for i, n := range m.Normals {
		m.Normals[i] = t.TransformVector(n).Normalize()
	}
}

// TransformSwappingHandedness applies the transformation and flips the
// mesh's handedness flag
func (m *Mesh) TransformSwappingHandedness(t core.Matrix4) {
	m.Transform(t)
	m.SwapsHandedness = !m.SwapsHandedness
}

// BoundingBox returns the axis-aligned bounding box around the mesh. The
// second return value is false for an empty mesh, which has no bounding box.
func (m *Mesh) BoundingBox() (AABB, bool) {
	if len(m.Positions) == 0 {
		return AABB{}, false
	}
	return NewAABBFromPoints(m.Positions...), true
}

// MeshHandle identifies a mesh inside a MeshStore
type MeshHandle int

// MeshStore owns every mesh used by a scene. Primitives refer to meshes by
// handle, so nothing outside the store holds a direct reference whose
// lifetime the renderer would have to track.
type MeshStore struct {
	meshes []*Mesh
}

// NewMeshStore creates an empty mesh store
func NewMeshStore() *MeshStore {
	return &MeshStore{}
}

// Add takes ownership of the mesh and returns its handle
func (s *MeshStore) Add(m *Mesh) MeshHandle {
	s.meshes = append(s.meshes, m)
	return MeshHandle(len(s.meshes) - 1)
}

// Mesh returns the mesh for the given handle
func (s *MeshStore) Mesh(h MeshHandle) *Mesh {
	return s.meshes[h]
}

// Len returns the number of meshes in the store
func (s *MeshStore) Len() int {
	return len(s.meshes)
}
