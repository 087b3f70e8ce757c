package model

import "math"

// SphereMesh holds the vertex and index data of a UV sphere tessellation.
// Vertices run pole to pole: laps of constant latitude, each lap sharing
// a duplicated seam column so texture coordinates wrap cleanly.
type SphereMesh struct {
	Vertices []GPUVertex
	Indices  []uint32
}

// BuildSphere tessellates a UV sphere of the given radius centered at the origin.
// Latitude angles sweep 0..pi from the north pole, longitude angles sweep 0..2pi,
// with one duplicated vertex column at the seam and duplicated pole rows so every
// vertex carries a unique texture coordinate. Normals point radially outward.
//
// Parameters:
//   - radius: the sphere radius in model units, must be positive
//   - latSegments: the number of latitude bands, must be at least 2
//   - longSegments: the number of longitude bands, must be at least 3
//
// Returns:
//   - SphereMesh: the tessellated vertex and index data
func BuildSphere(radius float32, latSegments, longSegments int) SphereMesh {
	if latSegments < 2 {
		latSegments = 2
	}
	if longSegments < 3 {
		longSegments = 3
	}

	vertexCount := (latSegments + 1) * (longSegments + 1)
	vertices := make([]GPUVertex, 0, vertexCount)

	for y := 0; y <= latSegments; y++ {
		theta := math.Pi * float64(y) / float64(latSegments)
		sinTheta := math.Sin(theta)
		cosTheta := math.Cos(theta)

		for x := 0; x <= longSegments; x++ {
			phi := 2.0 * math.Pi * float64(x) / float64(longSegments)

			nx := float32(sinTheta * math.Cos(phi))
			ny := float32(cosTheta)
			nz := float32(sinTheta * math.Sin(phi))

			vertices = append(vertices, GPUVertex{
				Position: [3]float32{radius * nx, radius * ny, radius * nz},
				Normal:   [3]float32{nx, ny, nz},
				TexCoord: [2]float32{
					float32(x) / float32(longSegments),
					1.0 - float32(y)/float32(latSegments),
				},
			})
		}
	}

	indices := make([]uint32, 0, latSegments*longSegments*6)
	stride := uint32(longSegments + 1)

	for y := 0; y < latSegments; y++ {
		for x := 0; x < longSegments; x++ {
			i0 := uint32(y)*stride + uint32(x)
			i1 := i0 + 1
			i2 := i0 + stride
			i3 := i2 + 1

			indices = append(indices, i0, i2, i1)
			indices = append(indices, i1, i2, i3)
		}
	}

	return SphereMesh{Vertices: vertices, Indices: indices}
}
