package geometry

import (
	"math"

	"github.com/tmayer/go-stl-raytracer/pkg/core"
)

// Sphere is a unit sphere centered at the origin of its object space,
// positioned in the world by an object-to-world transform. It is the
// reference analytic shape for validating ray intersection arithmetic.
type Sphere struct {
	ObjectToWorld core.Matrix4
	WorldToObject core.Matrix4
}

// NewUnitSphere creates a unit sphere at the world origin
func NewUnitSphere() *Sphere {
	return &Sphere{ObjectToWorld: core.Identity(), WorldToObject: core.Identity()}
}

// RayIntersections returns both parametric roots of the ray against the
// sphere, in ascending order, including roots behind the ray origin. The
// second return value is false when the ray misses.
func (s *Sphere) RayIntersections(ray core.Ray) ([2]float64, bool) {
	r := s.WorldToObject.TransformRay(ray)

	sphereToRay := r.Origin
	a := r.Direction.Dot(r.Direction)
	b := 2.0 * r.Direction.Dot(sphereToRay)
	c := sphereToRay.Dot(sphereToRay) - 1.0

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return [2]float64{}, false
	}

	sqrtDisc := math.Sqrt(discriminant)
	t1 := (-b - sqrtDisc) / (2 * a)
	t2 := (-b + sqrtDisc) / (2 * a)
	return [2]float64{t1, t2}, true
}
