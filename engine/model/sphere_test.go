package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gonum/floats"
)

const sphereTol = 1e-5

func TestBuildSphereVertexCount(t *testing.T) {
	mesh := BuildSphere(1.0, 8, 16)

	wantVertices := (8 + 1) * (16 + 1)
	if len(mesh.Vertices) != wantVertices {
		t.Fatalf("expected %d vertices, got %d", wantVertices, len(mesh.Vertices))
	}

	wantIndices := 8 * 16 * 6
	if len(mesh.Indices) != wantIndices {
		t.Fatalf("expected %d indices, got %d", wantIndices, len(mesh.Indices))
	}
}

func TestBuildSpherePoles(t *testing.T) {
	mesh := BuildSphere(2.0, 4, 8)

	// The first row collapses onto the north pole, the last onto the south pole.
	for x := 0; x <= 8; x++ {
		north := mesh.Vertices[x].Position
		if !floats.EqualWithinAbs(float64(north[1]), 2.0, sphereTol) {
			t.Fatalf("north pole vertex %d has y=%v, want 2", x, north[1])
		}
		if !floats.EqualWithinAbs(float64(north[0]), 0, sphereTol) || !floats.EqualWithinAbs(float64(north[2]), 0, sphereTol) {
			t.Fatalf("north pole vertex %d not on axis: %v", x, north)
		}

		south := mesh.Vertices[4*9+x].Position
		if !floats.EqualWithinAbs(float64(south[1]), -2.0, sphereTol) {
			t.Fatalf("south pole vertex %d has y=%v, want -2", x, south[1])
		}
	}
}

func TestBuildSphereVerticesOnSurface(t *testing.T) {
	const radius = 3.5
	mesh := BuildSphere(radius, 6, 12)

	for i, v := range mesh.Vertices {
		p := v.Position
		dist := math.Sqrt(float64(p[0]*p[0] + p[1]*p[1] + p[2]*p[2]))
		if !floats.EqualWithinAbs(dist, radius, 1e-4) {
			t.Fatalf("vertex %d at distance %v from origin, want %v", i, dist, radius)
		}
	}
}

func TestBuildSphereNormals(t *testing.T) {
	const radius = 2.0
	mesh := BuildSphere(radius, 6, 12)

	for i, v := range mesh.Vertices {
		n := v.Normal
		length := math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2]))
		if !floats.EqualWithinAbs(length, 1.0, sphereTol) {
			t.Fatalf("vertex %d normal has length %v, want 1", i, length)
		}

		// Radial normals: normal must equal position scaled back to unit length.
		for axis := 0; axis < 3; axis++ {
			if !floats.EqualWithinAbs(float64(v.Position[axis]/radius), float64(n[axis]), sphereTol) {
				t.Fatalf("vertex %d normal %v not radial for position %v", i, n, v.Position)
			}
		}
	}
}

func TestBuildSphereTexCoords(t *testing.T) {
	mesh := BuildSphere(1.0, 4, 8)

	for i, v := range mesh.Vertices {
		u, vv := v.TexCoord[0], v.TexCoord[1]
		if u < 0 || u > 1 || vv < 0 || vv > 1 {
			t.Fatalf("vertex %d uv out of range: (%v, %v)", i, u, vv)
		}
	}

	// The seam duplicates positions but spans the full u range.
	first := mesh.Vertices[9] // row 1, x=0
	last := mesh.Vertices[9+8]
	for axis := 0; axis < 3; axis++ {
		if !floats.EqualWithinAbs(float64(first.Position[axis]), float64(last.Position[axis]), sphereTol) {
			t.Fatalf("seam vertices diverge at axis %d: %v vs %v", axis, first.Position, last.Position)
		}
	}
	if first.TexCoord[0] != 0 || last.TexCoord[0] != 1 {
		t.Fatalf("seam u coordinates are (%v, %v), want (0, 1)", first.TexCoord[0], last.TexCoord[0])
	}

	// v runs from 1 at the north pole to 0 at the south pole.
	if mesh.Vertices[0].TexCoord[1] != 1 {
		t.Fatalf("north pole v = %v, want 1", mesh.Vertices[0].TexCoord[1])
	}
	if mesh.Vertices[len(mesh.Vertices)-1].TexCoord[1] != 0 {
		t.Fatalf("south pole v = %v, want 0", mesh.Vertices[len(mesh.Vertices)-1].TexCoord[1])
	}
}

func TestBuildSphereIndicesInBounds(t *testing.T) {
	mesh := BuildSphere(1.0, 8, 16)

	limit := uint32(len(mesh.Vertices))
	for i, idx := range mesh.Indices {
		if idx >= limit {
			t.Fatalf("index %d references vertex %d, only %d vertices exist", i, idx, limit)
		}
	}
}

func TestBuildSphereConsistentWinding(t *testing.T) {
	mesh := BuildSphere(1.0, 8, 16)

	// Every non-degenerate triangle must wind the same way relative to the
	// outward direction at its centroid.
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a := mesh.Vertices[mesh.Indices[i]].Position
		b := mesh.Vertices[mesh.Indices[i+1]].Position
		c := mesh.Vertices[mesh.Indices[i+2]].Position

		ab := [3]float64{float64(b[0] - a[0]), float64(b[1] - a[1]), float64(b[2] - a[2])}
		ac := [3]float64{float64(c[0] - a[0]), float64(c[1] - a[1]), float64(c[2] - a[2])}
		cross := [3]float64{
			ab[1]*ac[2] - ab[2]*ac[1],
			ab[2]*ac[0] - ab[0]*ac[2],
			ab[0]*ac[1] - ab[1]*ac[0],
		}

		area := math.Sqrt(cross[0]*cross[0] + cross[1]*cross[1] + cross[2]*cross[2])
		if area < 1e-9 {
			continue // degenerate pole triangle
		}

		centroid := [3]float64{
			float64(a[0]+b[0]+c[0]) / 3,
			float64(a[1]+b[1]+c[1]) / 3,
			float64(a[2]+b[2]+c[2]) / 3,
		}
		dot := cross[0]*centroid[0] + cross[1]*centroid[1] + cross[2]*centroid[2]
		if dot >= 0 {
			t.Fatalf("triangle at index %d winds opposite to the rest", i)
		}
	}
}

func TestBuildSphereClampsSegments(t *testing.T) {
	mesh := BuildSphere(1.0, 0, 0)

	wantVertices := (2 + 1) * (3 + 1)
	if len(mesh.Vertices) != wantVertices {
		t.Fatalf("expected segment clamping to yield %d vertices, got %d", wantVertices, len(mesh.Vertices))
	}
}

func TestGPUVertexMarshal(t *testing.T) {
	v := GPUVertex{
		Position: [3]float32{1, 2, 3},
		Normal:   [3]float32{0, 1, 0},
		TexCoord: [2]float32{0.25, 0.75},
	}

	if v.Size() != 32 {
		t.Fatalf("expected 32-byte vertex, got %d", v.Size())
	}

	buf := v.Marshal()
	if len(buf) != 32 {
		t.Fatalf("expected 32-byte buffer, got %d", len(buf))
	}

	got := math.Float32frombits(binary.LittleEndian.Uint32(buf[24:28]))
	if got != 0.25 {
		t.Fatalf("texcoord u round-tripped to %v, want 0.25", got)
	}
}

func TestMarshalVertices(t *testing.T) {
	vertices := []GPUVertex{
		{Position: [3]float32{1, 0, 0}},
		{Position: [3]float32{0, 1, 0}},
	}

	buf := MarshalVertices(vertices)
	if len(buf) != 64 {
		t.Fatalf("expected 64 bytes for two vertices, got %d", len(buf))
	}

	second := math.Float32frombits(binary.LittleEndian.Uint32(buf[36:40]))
	if second != 1 {
		t.Fatalf("second vertex y position round-tripped to %v, want 1", second)
	}
}

func TestMarshalIndices(t *testing.T) {
	buf := MarshalIndices([]uint32{7, 42, 1<<20 + 3})
	if len(buf) != 12 {
		t.Fatalf("expected 12 bytes for three indices, got %d", len(buf))
	}
	if got := binary.LittleEndian.Uint32(buf[8:12]); got != 1<<20+3 {
		t.Fatalf("third index round-tripped to %d", got)
	}
}
