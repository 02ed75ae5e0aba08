package core

import "math"

// Matrix4 is a 4x4 transformation matrix in row-major order. It is used to
// express object-to-world and camera-to-world transforms.
type Matrix4 [4][4]float64

// Identity returns the identity matrix
func Identity() Matrix4 {
	return Matrix4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translate returns a matrix that translates by the given offset
func Translate(offset Vec3) Matrix4 {
	return Matrix4{
		{1, 0, 0, offset.X},
		{0, 1, 0, offset.Y},
		{0, 0, 1, offset.Z},
		{0, 0, 0, 1},
	}
}

// Scale returns a matrix that scales uniformly by s
func Scale(s float64) Matrix4 {
	return NonuniformScale(s, s, s)
}

// NonuniformScale returns a matrix that scales each axis independently
func NonuniformScale(sx, sy, sz float64) Matrix4 {
	return Matrix4{
		{sx, 0, 0, 0},
		{0, sy, 0, 0},
		{0, 0, sz, 0},
		{0, 0, 0, 1},
	}
}

// RotateX returns a matrix that rotates by the given angle (radians) around the X axis
func RotateX(angle float64) Matrix4 {
	sin, cos := math.Sin(angle), math.Cos(angle)
	return Matrix4{
		{1, 0, 0, 0},
		{0, cos, -sin, 0},
		{0, sin, cos, 0},
		{0, 0, 0, 1},
	}
}

// RotateZ returns a matrix that rotates by the given angle (radians) around the Z axis
func RotateZ(angle float64) Matrix4 {
	sin, cos := math.Sin(angle), math.Cos(angle)
	return Matrix4{
		{cos, -sin, 0, 0},
		{sin, cos, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Multiply returns the matrix product m * other
func (m Matrix4) Multiply(other Matrix4) Matrix4 {
	var result Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += m[i][k] * other[k][j]
			}
			result[i][j] = sum
		}
	}
	return result
}

// TransformPoint applies the transformation to a point, including translation
func (m Matrix4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3],
		Y: m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3],
		Z: m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3],
	}
}

// TransformVector applies the transformation to a direction vector,
// ignoring translation
func (m Matrix4) TransformVector(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// TransformRay applies the transformation to a ray's origin and direction.
// The direction is left unnormalized so that scaling transforms are
// representable.
func (m Matrix4) TransformRay(r Ray) Ray {
	return Ray{
		Origin:    m.TransformPoint(r.Origin),
		Direction: m.TransformVector(r.Direction),
		TMax:      r.TMax,
	}
}

// SwapsHandedness reports whether the transformation changes the handedness
// of the coordinate system (the determinant of the upper-left 3x3 submatrix
// is negative)
func (m Matrix4) SwapsHandedness() bool {
	det := m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
	return det < 0
}
