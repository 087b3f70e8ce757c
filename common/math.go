package common

import (
	"math"
	"unsafe"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (WebGPU convention).
// Result: out = a * b. The output slice may alias either input.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective creates a perspective projection matrix targeting the
// WebGPU clip space depth range [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// LookTo creates a right-handed view matrix from a camera position and a view
// direction (not a target point). The resulting matrix transforms world
// coordinates to view/camera space.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eyeX, eyeY, eyeZ: camera position in world space
//   - dirX, dirY, dirZ: view direction (does not need to be normalized)
//   - upX, upY, upZ: up vector defining camera orientation (typically 0,1,0)
func LookTo(out []float32, eyeX, eyeY, eyeZ, dirX, dirY, dirZ, upX, upY, upZ float32) {
	fx, fy, fz := Normalize3(dirX, dirY, dirZ)

	// s = normalize(cross(f, up)), u = cross(s, f)
	sx, sy, sz := Normalize3(Cross3(fx, fy, fz, upX, upY, upZ))
	ux, uy, uz := Cross3(sx, sy, sz, fx, fy, fz)

	out[0], out[4], out[8], out[12] = sx, sy, sz, -(sx*eyeX + sy*eyeY + sz*eyeZ)
	out[1], out[5], out[9], out[13] = ux, uy, uz, -(ux*eyeX + uy*eyeY + uz*eyeZ)
	out[2], out[6], out[10], out[14] = -fx, -fy, -fz, fx*eyeX+fy*eyeY+fz*eyeZ
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// AxisRotation creates a rotation matrix of angle radians around an arbitrary
// axis. The axis is normalized and the angle is reduced modulo 2π before the
// matrix is built.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - axisX, axisY, axisZ: rotation axis (does not need to be normalized)
//   - angle: rotation angle in radians
func AxisRotation(out []float32, axisX, axisY, axisZ, angle float32) {
	x, y, z := Normalize3(axisX, axisY, axisZ)
	a := math.Mod(float64(angle), 2*math.Pi)
	c := float32(math.Cos(a))
	s := float32(math.Sin(a))
	t := 1 - c

	out[0] = t*x*x + c
	out[1] = t*x*y + s*z
	out[2] = t*x*z - s*y
	out[3] = 0

	out[4] = t*x*y - s*z
	out[5] = t*y*y + c
	out[6] = t*y*z + s*x
	out[7] = 0

	out[8] = t*x*z + s*y
	out[9] = t*y*z - s*x
	out[10] = t*z*z + c
	out[11] = 0

	out[12], out[13], out[14], out[15] = 0, 0, 0, 1
}

// Translation creates a translation matrix.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - x, y, z: translation components
func Translation(out []float32, x, y, z float32) {
	Identity(out)
	out[12] = x
	out[13] = y
	out[14] = z
}

// Scale creates a non-uniform scale matrix.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - x, y, z: scale factors along each axis
func Scale(out []float32, x, y, z float32) {
	Identity(out)
	out[0] = x
	out[5] = y
	out[10] = z
}

// Invert4 computes the inverse of a 4x4 column-major matrix using the Laplace
// expansion (cofactor) method. If the matrix is singular (determinant ≈ 0) the
// output is left unchanged and the function returns false.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - m: source matrix (16 elements, column-major)
//
// Returns:
//   - bool: true if the matrix was successfully inverted, false if singular
func Invert4(out, m []float32) bool {
	s0 := m[0]*m[5] - m[4]*m[1]
	s1 := m[0]*m[6] - m[4]*m[2]
	s2 := m[0]*m[7] - m[4]*m[3]
	s3 := m[1]*m[6] - m[5]*m[2]
	s4 := m[1]*m[7] - m[5]*m[3]
	s5 := m[2]*m[7] - m[6]*m[3]

	c5 := m[10]*m[15] - m[14]*m[11]
	c4 := m[9]*m[15] - m[13]*m[11]
	c3 := m[9]*m[14] - m[13]*m[10]
	c2 := m[8]*m[15] - m[12]*m[11]
	c1 := m[8]*m[14] - m[12]*m[10]
	c0 := m[8]*m[13] - m[12]*m[9]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return false
	}

	invDet := 1.0 / det

	out[0] = (m[5]*c5 - m[6]*c4 + m[7]*c3) * invDet
	out[1] = (-m[1]*c5 + m[2]*c4 - m[3]*c3) * invDet
	out[2] = (m[13]*s5 - m[14]*s4 + m[15]*s3) * invDet
	out[3] = (-m[9]*s5 + m[10]*s4 - m[11]*s3) * invDet

	out[4] = (-m[4]*c5 + m[6]*c2 - m[7]*c1) * invDet
	out[5] = (m[0]*c5 - m[2]*c2 + m[3]*c1) * invDet
	out[6] = (-m[12]*s5 + m[14]*s2 - m[15]*s1) * invDet
	out[7] = (m[8]*s5 - m[10]*s2 + m[11]*s1) * invDet

	out[8] = (m[4]*c4 - m[5]*c2 + m[7]*c0) * invDet
	out[9] = (-m[0]*c4 + m[1]*c2 - m[3]*c0) * invDet
	out[10] = (m[12]*s4 - m[13]*s2 + m[15]*s0) * invDet
	out[11] = (-m[8]*s4 + m[9]*s2 - m[11]*s0) * invDet

	out[12] = (-m[4]*c3 + m[5]*c1 - m[6]*c0) * invDet
	out[13] = (m[0]*c3 - m[1]*c1 + m[2]*c0) * invDet
	out[14] = (-m[12]*s3 + m[13]*s1 - m[14]*s0) * invDet
	out[15] = (m[8]*s3 - m[9]*s1 + m[10]*s0) * invDet

	return true
}

// NormalFromModelView computes the normal matrix for a model-view matrix:
// the inverse-transpose of its upper-left 3x3 block. The result is written in
// the GPU-aligned mat3x3<f32> layout (three columns, each padded to 16 bytes,
// 12 floats total). Falls back to identity when the 3x3 block is singular.
// When flip is true every element is negated, which inverts the direction of
// all transformed normals.
//
// Parameters:
//   - out: destination slice (must be at least 12 elements)
//   - mv: source model-view matrix (16 elements, column-major)
//   - flip: negate the resulting matrix (inward-facing normal meshes)
func NormalFromModelView(out, mv []float32, flip bool) {
	a, b, c := mv[0], mv[1], mv[2]
	d, e, f := mv[4], mv[5], mv[6]
	g, h, i := mv[8], mv[9], mv[10]

	ca := e*i - f*h
	cb := f*g - d*i
	cc := d*h - e*g
	det := a*ca + b*cb + c*cc

	var n [9]float32
	if det == 0 {
		n[0], n[4], n[8] = 1, 1, 1
	} else {
		invDet := 1.0 / det
		// The rows of inverse(M), stored column by column, give
		// transpose(inverse(M)) directly in column-major order.
		n[0] = ca * invDet
		n[1] = cb * invDet
		n[2] = cc * invDet
		n[3] = (c*h - b*i) * invDet
		n[4] = (a*i - c*g) * invDet
		n[5] = (b*g - a*h) * invDet
		n[6] = (b*f - c*e) * invDet
		n[7] = (c*d - a*f) * invDet
		n[8] = (a*e - b*d) * invDet
	}

	sign := float32(1)
	if flip {
		sign = -1
	}
	for col := 0; col < 3; col++ {
		out[col*4] = sign * n[col*3]
		out[col*4+1] = sign * n[col*3+1]
		out[col*4+2] = sign * n[col*3+2]
		out[col*4+3] = 0
	}
}

// TransformVec4 multiplies a 4-component vector by a 4x4 column-major matrix.
//
// Parameters:
//   - m: the matrix (16 elements, column-major)
//   - x, y, z, w: the vector components
//
// Returns:
//   - ox, oy, oz, ow: the transformed vector components
func TransformVec4(m []float32, x, y, z, w float32) (ox, oy, oz, ow float32) {
	ox = m[0]*x + m[4]*y + m[8]*z + m[12]*w
	oy = m[1]*x + m[5]*y + m[9]*z + m[13]*w
	oz = m[2]*x + m[6]*y + m[10]*z + m[14]*w
	ow = m[3]*x + m[7]*y + m[11]*z + m[15]*w
	return
}

// Cross3 computes the cross product of two 3-component vectors.
//
// Parameters:
//   - ax, ay, az: left-hand vector components
//   - bx, by, bz: right-hand vector components
//
// Returns:
//   - x, y, z: the cross product components
func Cross3(ax, ay, az, bx, by, bz float32) (x, y, z float32) {
	return ay*bz - az*by, az*bx - ax*bz, ax*by - ay*bx
}

// Normalize3 normalizes a 3-component vector. A zero vector is returned
// unchanged rather than producing NaNs.
//
// Parameters:
//   - x, y, z: vector components
//
// Returns:
//   - nx, ny, nz: the unit vector components
func Normalize3(x, y, z float32) (nx, ny, nz float32) {
	lenSq := float64(x*x + y*y + z*z)
	if lenSq == 0 {
		return x, y, z
	}
	invLen := float32(1.0 / math.Sqrt(lenSq))
	return x * invLen, y * invLen, z * invLen
}

// RotateVec3 rotates a 3-component vector by angle radians around an axis
// using Rodrigues' rotation formula. The axis is normalized internally.
//
// Parameters:
//   - x, y, z: vector to rotate
//   - axisX, axisY, axisZ: rotation axis (does not need to be normalized)
//   - angle: rotation angle in radians
//
// Returns:
//   - rx, ry, rz: the rotated vector components
func RotateVec3(x, y, z, axisX, axisY, axisZ, angle float32) (rx, ry, rz float32) {
	kx, ky, kz := Normalize3(axisX, axisY, axisZ)
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))

	cx, cy, cz := Cross3(kx, ky, kz, x, y, z)
	dot := kx*x + ky*y + kz*z

	rx = x*c + cx*s + kx*dot*(1-c)
	ry = y*c + cy*s + ky*dot*(1-c)
	rz = z*c + cz*s + kz*dot*(1-c)
	return
}
