package geometry

import (
	"sort"

	"github.com/tmayer/go-stl-raytracer/pkg/core"
)

// Below this many primitives a node stores them directly and searches
// linearly.
const leafThreshold = 4

// bvhNode is a node of the bounding volume hierarchy. Leaf nodes hold
// primitives; internal nodes hold two children.
type bvhNode struct {
	bounds AABB
	left   *bvhNode
	right  *bvhNode
	prims  []Primitive
}

// buildBVH recursively builds the hierarchy with a median split along the
// longest axis of the node's bounds
func buildBVH(store *MeshStore, prims []Primitive, depth int) *bvhNode {
	bounds := primitiveBounds(store, prims[0])
	for _, p := range prims[1:] {
		bounds = bounds.Union(primitiveBounds(store, p))
	}

	if len(prims) <= leafThreshold {
		return &bvhNode{bounds: bounds, prims: prims}
	}

	axis := bounds.LongestAxis()
	sort.Slice(prims, func(i, j int) bool {
		ci := primitiveBounds(store, prims[i]).Center()
		cj := primitiveBounds(store, prims[j]).Center()
		return ci.Component(axis) < cj.Component(axis)
	})

	mid := len(prims) / 2
	return &bvhNode{
		bounds: bounds,
		left:   buildBVH(store, prims[:mid], depth+1),
		right:  buildBVH(store, prims[mid:], depth+1),
	}
}

// intersect returns the nearest hit below this node, pruning subtrees whose
// bounds the ray cannot reach. The ray's TMax shrinks as closer hits are
// found so later subtrees are tested against the tightened bound, which
// keeps the result identical to exhaustive search. Equal-distance hits from
// the second subtree win only when their primitive is earlier in canonical
// order, matching the tie rule of the exhaustive search.
func (n *bvhNode) intersect(store *MeshStore, ray core.Ray) (Hit, bool) {
	if !n.bounds.Hit(ray, 0, ray.TMax) {
		return Hit{}, false
	}

	if n.prims != nil {
		return intersectPrimitives(store, n.prims, ray)
	}

	var closest Hit
	found := false
	if hit, ok := n.left.intersect(store, ray); ok {
		closest = hit
		found = true
		ray.TMax = hit.T
	}
	if hit, ok := n.right.intersect(store, ray); ok {
		if !found || hit.T < closest.T || (hit.T == closest.T && hit.Primitive.before(closest.Primitive)) {
			closest = hit
		}
		found = true
	}
	return closest, found
}
