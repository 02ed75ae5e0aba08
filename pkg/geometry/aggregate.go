package geometry

import (
	"github.com/tmayer/go-stl-raytracer/pkg/core"
	"github.com/tmayer/go-stl-raytracer/pkg/material"
)

// Primitive binds one triangle of a mesh to a material
type Primitive struct {
	Mesh     MeshHandle
	Triangle int
	Material *material.Material
}

// before reports whether p comes before o in the canonical primitive
// order. Exact intersection-distance ties resolve to the earlier
// primitive so every aggregate variant reports the same hit.
func (p Primitive) before(o Primitive) bool {
	if p.Mesh != o.Mesh {
		return p.Mesh < o.Mesh
	}
	return p.Triangle < o.Triangle
}

// Hit is the result of a nearest-intersection query
type Hit struct {
	T           float64
	Primitive   Primitive
	Interaction core.SurfaceInteraction
}

type aggregateKind uint8

const (
	aggregateList aggregateKind = iota
	aggregateBVH
)

// Aggregate is a collection of primitives answering nearest-ray-intersection
// queries. It is a closed two-variant type: a flat list that tests every
// primitive exhaustively, and a bounding-volume-hierarchy index that prunes
// subtrees the ray cannot reach. Both variants report the same nearest hit
// for any given ray; the hierarchy is purely a performance optimization.
type Aggregate struct {
	kind  aggregateKind
	store *MeshStore
	prims []Primitive
	root  *bvhNode
}

// NewListAggregate creates the exhaustive-search variant over the primitives
func NewListAggregate(store *MeshStore, prims []Primitive) *Aggregate {
	return &Aggregate{
		kind:  aggregateList,
		store: store,
		prims: prims,
	}
}

// NewBVHAggregate creates the accelerated variant, building a bounding
// volume hierarchy over the primitives once, up front
func NewBVHAggregate(store *MeshStore, prims []Primitive) *Aggregate {
	a := &Aggregate{
		kind:  aggregateBVH,
		store: store,
		prims: prims,
	}
	if len(prims) > 0 {
		// Copy so that building does not reorder the caller's slice.
		primsCopy := make([]Primitive, len(prims))
		copy(primsCopy, prims)
		a.root = buildBVH(store, primsCopy, 0)
	}
	return a
}

// MeshPrimitives creates one primitive per triangle of the mesh
func MeshPrimitives(store *MeshStore, h MeshHandle, mat *material.Material) []Primitive {
	mesh := store.Mesh(h)
	prims := make([]Primitive, len(mesh.Indices))
	for i := range mesh.Indices {
		prims[i] = Primitive{Mesh: h, Triangle: i, Material: mat}
	}
	return prims
}

// RayIntersection returns the nearest hit with t in (0, ray.TMax), or false
// if the ray hits no primitive. Exact-distance ties go to the primitive
// earliest in canonical order, independent of the aggregate variant.
func (a *Aggregate) RayIntersection(ray core.Ray) (Hit, bool) {
	var hit Hit
	var ok bool
	switch a.kind {
	case aggregateBVH:
		if a.root == nil {
			return Hit{}, false
		}
		hit, ok = a.root.intersect(a.store, ray)
	default:
		hit, ok = intersectPrimitives(a.store, a.prims, ray)
	}
	// The triangle test is inclusive at TMax so that ties surface during
	// the search; the query interval itself is open at TMax.
	if ok && hit.T >= ray.TMax {
		return Hit{}, false
	}
	return hit, ok
}

// BoundingBox returns the bounds of all primitives. The second return value
// is false when the aggregate is empty.
func (a *Aggregate) BoundingBox() (AABB, bool) {
	if len(a.prims) == 0 {
		return AABB{}, false
	}
	bounds := primitiveBounds(a.store, a.prims[0])
	for _, p := range a.prims[1:] {
		bounds = bounds.Union(primitiveBounds(a.store, p))
	}
	return bounds, true
}

// Len returns the number of primitives in the aggregate
func (a *Aggregate) Len() int {
	return len(a.prims)
}

func primitiveBounds(store *MeshStore, p Primitive) AABB {
	return store.Mesh(p.Mesh).TriangleBounds(p.Triangle)
}

// intersectPrimitives finds the nearest hit among the primitives by testing
// each in turn, shrinking the ray's TMax as closer hits are found. An
// equal-distance hit replaces the current closest only when its primitive
// is earlier in canonical order.
func intersectPrimitives(store *MeshStore, prims []Primitive, ray core.Ray) (Hit, bool) {
	var closest Hit
	found := false
	for _, p := range prims {
		t, interaction, ok := store.Mesh(p.Mesh).IntersectTriangle(p.Triangle, ray)
		if !ok {
			continue
		}
		if found && t == closest.T && !p.before(closest.Primitive) {
			continue
		}
		ray.TMax = t
		closest = Hit{T: t, Primitive: p, Interaction: interaction}
		found = true
	}
	return closest, found
}
