package core

import "math"

// SurfaceGeometry describes the local geometry at a specific point on a
// surface: a normal and the partial derivatives of position with respect to
// the two surface parameters.
type SurfaceGeometry struct {
	Normal Vec3

	// Dpdu is the partial derivative of the position with respect to u
	Dpdu Vec3

	// Dpdv is the partial derivative of the position with respect to v
	Dpdv Vec3
}

// SurfaceInteraction is the geometric record produced at a ray/primitive hit
// point.
type SurfaceInteraction struct {
	// Point is the world space position where the interaction occurs
	Point Vec3

	// PointError is a conservative bound on the floating point error
	// accumulated in Point by the intersection computation
	PointError Vec3

	// NegRayDirection is the direction of the negated (outgoing) ray
	NegRayDirection Vec3

	// Original is the true geometry of the surface at the intersection
	// point. Self-intersection avoidance relies on its normal, so it must
	// never be perturbed.
	Original SurfaceGeometry

	// Shading starts out identical to Original but may be perturbed (by
	// bump mapping, for example) before shading calculations use it.
	Shading SurfaceGeometry
}

// NewSurfaceInteraction creates a surface interaction whose normal is derived
// from the cross product of the partial derivatives
func NewSurfaceInteraction(point, pointError, negRayDirection, dpdu, dpdv Vec3) SurfaceInteraction {
	normal := dpdu.Cross(dpdv)
	geom := SurfaceGeometry{Normal: normal, Dpdu: dpdu, Dpdv: dpdv}
	return SurfaceInteraction{
		Point:           point,
		PointError:      pointError,
		NegRayDirection: negRayDirection,
		Original:        geom,
		Shading:         geom,
	}
}

// NewSurfaceInteractionWithNormal creates a surface interaction with an
// explicitly supplied normal, e.g. one interpolated from vertex normals
func NewSurfaceInteractionWithNormal(point, pointError, negRayDirection, dpdu, dpdv, normal Vec3) SurfaceInteraction {
	geom := SurfaceGeometry{Normal: normal, Dpdu: dpdu, Dpdv: dpdv}
	return SurfaceInteraction{
		Point:           point,
		PointError:      pointError,
		NegRayDirection: negRayDirection,
		Original:        geom,
		Shading:         geom,
	}
}

// OffsetRayOrigin returns a point offset from the interaction point along the
// original geometric normal, far enough outside the accumulated floating
// point error bound that a ray spawned from it in the given direction cannot
// re-intersect the surface it left.
func (si *SurfaceInteraction) OffsetRayOrigin(direction Vec3) Vec3 {
	normal := si.Original.Normal
	d := normal.Abs().Dot(si.PointError)
	offset := normal.Multiply(d)
	if direction.Dot(normal) < 0 {
		offset = offset.Negate()
	}
	p := si.Point.Add(offset)

	// Round the offset point away from the surface
	p.X = nudge(p.X, offset.X)
	p.Y = nudge(p.Y, offset.Y)
	p.Z = nudge(p.Z, offset.Z)
	return p
}

func nudge(v, offset float64) float64 {
	if offset > 0 {
		return math.Nextafter(v, math.Inf(1))
	}
	if offset < 0 {
		return math.Nextafter(v, math.Inf(-1))
	}
	return v
}
