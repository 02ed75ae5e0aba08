package geometry

import (
	"math"

	"github.com/tmayer/go-stl-raytracer/pkg/core"
)

// Near-parallel ray/triangle configurations are treated as misses rather
// than risking a division by a vanishing determinant.
const determinantEpsilon = 1e-8

// TriangleBounds returns the bounding box of triangle tri
func (m *Mesh) TriangleBounds(tri int) AABB {
	idx := m.Indices[tri]
	return NewAABBFromPoints(m.Positions[idx[0]], m.Positions[idx[1]], m.Positions[idx[2]])
}

// IntersectTriangle tests the ray against triangle tri using the
// Moller-Trumbore algorithm. On a hit it returns the parametric distance t in
// (0, ray.TMax) and a surface interaction whose point error conservatively
// bounds the floating point round-off of the intersection arithmetic.
func (m *Mesh) IntersectTriangle(tri int, ray core.Ray) (float64, core.SurfaceInteraction, bool) {
	idx := m.Indices[tri]
	p0 := m.Positions[idx[0]]
	p1 := m.Positions[idx[1]]
	p2 := m.Positions[idx[2]]

	edge1 := p1.Subtract(p0)
	edge2 := p2.Subtract(p0)

	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)
	if det > -determinantEpsilon && det < determinantEpsilon {
		return 0, core.SurfaceInteraction{}, false
	}

	invDet := 1.0 / det
	s := ray.Origin.Subtract(p0)
	u := invDet * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, core.SurfaceInteraction{}, false
	}

	q := s.Cross(edge1)
	v := invDet * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, core.SurfaceInteraction{}, false
	}

	t := invDet * edge2.Dot(q)
	if t <= 0 || t > ray.TMax {
		return 0, core.SurfaceInteraction{}, false
	}

	// Compute the hit point from the barycentric combination of the
	// vertices rather than ray.At(t); its round-off growth has the known
	// bound gamma(7).
	b0 := 1 - u - v
	point := p0.Multiply(b0).Add(p1.Multiply(u)).Add(p2.Multiply(v))
	pointError := p0.Abs().Multiply(math.Abs(b0)).
		Add(p1.Abs().Multiply(math.Abs(u))).
		Add(p2.Abs().Multiply(math.Abs(v))).
		Multiply(core.Gamma(7))

	dpdu, dpdv := m.partialDerivatives(tri, edge1, edge2)

	normal := m.Normals[idx[0]].Multiply(b0).
		Add(m.Normals[idx[1]].Multiply(u)).
		Add(m.Normals[idx[2]].Multiply(v)).
		Normalize()
	if m.ReverseOrientation != m.SwapsHandedness {
		normal = normal.Negate()
	}

	interaction := core.NewSurfaceInteractionWithNormal(
		point, pointError, ray.Direction.Negate(), dpdu, dpdv, normal)
	return t, interaction, true
}

// partialDerivatives solves for dp/du and dp/dv from the triangle's UV
// parameterization, falling back to an arbitrary frame around the face
// normal when the parameterization is degenerate
func (m *Mesh) partialDerivatives(tri int, edge1, edge2 core.Vec3) (core.Vec3, core.Vec3) {
	uv0, uv1, uv2 := m.triangleUVs(tri)

	duv10 := uv1.Subtract(uv0)
	duv20 := uv2.Subtract(uv0)
	det := duv10.X*duv20.Y - duv10.Y*duv20.X
	if math.Abs(det) < 1e-12 {
		return coordinateSystem(edge1.Cross(edge2).Normalize())
	}

	invDet := 1.0 / det
	dpdu := edge1.Multiply(duv20.Y).Subtract(edge2.Multiply(duv10.Y)).Multiply(invDet)
	dpdv := edge2.Multiply(duv10.X).Subtract(edge1.Multiply(duv20.X)).Multiply(invDet)
	return dpdu, dpdv
}

// triangleUVs returns the UV coordinates of the triangle's vertices, using
// the canonical (0,0), (1,0), (1,1) parameterization when the mesh has none
func (m *Mesh) triangleUVs(tri int) (core.Vec2, core.Vec2, core.Vec2) {
	if m.UVs == nil {
		return core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(1, 1)
	}
	idx := m.Indices[tri]
	return m.UVs[idx[0]], m.UVs[idx[1]], m.UVs[idx[2]]
}

// coordinateSystem builds two vectors that form an orthonormal frame with v
func coordinateSystem(v core.Vec3) (core.Vec3, core.Vec3) {
	var tangent core.Vec3
	if math.Abs(v.X) > math.Abs(v.Y) {
		tangent = core.NewVec3(-v.Z, 0, v.X).Multiply(1 / math.Sqrt(v.X*v.X+v.Z*v.Z))
	} else {
		tangent = core.NewVec3(0, v.Z, -v.Y).Multiply(1 / math.Sqrt(v.Y*v.Y+v.Z*v.Z))
	}
	return tangent, v.Cross(tangent)
}
