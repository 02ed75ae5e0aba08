// Package scene holds the immutable world a render runs against: the mesh
// store, the primitive aggregate, and the light set. A scene is built once
// before any worker starts and is never mutated during rendering.
package scene

import (
	"errors"

	"github.com/tmayer/go-stl-raytracer/pkg/core"
	"github.com/tmayer/go-stl-raytracer/pkg/geometry"
	"github.com/tmayer/go-stl-raytracer/pkg/lights"
)

// ErrEmptyScene is returned when a scene has no primitives and therefore no
// bounding box. It must be reported before rendering starts rather than
// silently producing a blank image.
var ErrEmptyScene = errors.New("scene contains no primitives")

// Scene is the world being rendered
type Scene struct {
	Meshes     *geometry.MeshStore
	Primitives *geometry.Aggregate
	Lights     []lights.Light
}

// NewScene validates the aggregate and returns a scene over it
func NewScene(meshes *geometry.MeshStore, primitives *geometry.Aggregate, lightSet []lights.Light) (*Scene, error) {
	if _, ok := primitives.BoundingBox(); !ok {
		return nil, ErrEmptyScene
	}
	return &Scene{
		Meshes:     meshes,
		Primitives: primitives,
		Lights:     lightSet,
	}, nil
}

// RayIntersection returns the nearest hit in the scene, or false if the ray
// escapes
func (s *Scene) RayIntersection(ray core.Ray) (geometry.Hit, bool) {
	return s.Primitives.RayIntersection(ray)
}
