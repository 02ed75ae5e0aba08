package core

// Ray represents a ray with an origin, a direction and an upper parametric
// bound. The ray's parametric equation is r(t) = origin + t*direction for
// 0 < t <= TMax, which limits the ray to a finite segment.
//
// Direction is intentionally not required to be normalized: keeping its raw
// length lets a transformed ray shrink or grow when a scaling transform is
// applied to an object.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMax      float64
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3, tMax float64) Ray {
	return Ray{Origin: origin, Direction: direction, TMax: tMax}
}

// At returns the position along the ray for the given parametric value t
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// RayDifferential contains the origin and direction of two auxiliary rays
// for some primary ray. The auxiliary rays are offset from the primary by one
// pixel in the x and y directions, respectively, on the film plane. They are
// used to estimate texture-space derivatives.
type RayDifferential struct {
	// DxOrigin and DxDirection describe a ray offset from the primary ray
	// by one pixel in the film x direction.
	DxOrigin    Vec3
	DxDirection Vec3

	// DyOrigin and DyDirection describe a ray offset from the primary ray
	// by one pixel in the film y direction.
	DyOrigin    Vec3
	DyDirection Vec3
}

// TransformRayDifferential applies the transformation to both auxiliary rays
func (m Matrix4) TransformRayDifferential(rd RayDifferential) RayDifferential {
	return RayDifferential{
		DxOrigin:    m.TransformPoint(rd.DxOrigin),
		DxDirection: m.TransformVector(rd.DxDirection),
		DyOrigin:    m.TransformPoint(rd.DyOrigin),
		DyDirection: m.TransformVector(rd.DyDirection),
	}
}
