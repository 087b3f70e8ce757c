package solar

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gonum/floats"
)

func writeDefinitions(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "definitions.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validDefinitions = `
[[body]]
name = "Sun"
radius_km = 696340.0
rotation_period_hours = 609.12
axis = [0.0, 1.0, 0.0]
color = [1.0, 0.85, 0.3]
inverse_normals = true

[[body]]
name = "Earth"
parent = "Sun"
radius_km = 6371.0
avg_distance_km = 149600000.0
orbital_period_days = 365.25
rotation_period_hours = 24.0
axis = [0.398, 0.917, 0.0]
color = [0.2, 0.4, 0.8]

[[body]]
name = "Moon"
parent = "Earth"
radius_km = 1737.4
avg_distance_km = 384400.0
orbital_period_days = 27.3
rotation_period_hours = 655.2
axis = [0.0, 1.0, 0.0]
color = [0.5, 0.5, 0.5]
`

func TestLoadBodiesResolvesTree(t *testing.T) {
	path := writeDefinitions(t, validDefinitions)
	root, err := LoadBodies(path)
	if err != nil {
		t.Fatalf("LoadBodies: %v", err)
	}

	if root.Name != "Sun" {
		t.Errorf("root = %q, want Sun", root.Name)
	}
	if root.Count() != 3 {
		t.Fatalf("body count = %d, want 3", root.Count())
	}
	if len(root.Children) != 1 || root.Children[0].Name != "Earth" {
		t.Fatalf("sun children = %v", root.Children)
	}
	earth := root.Children[0]
	if len(earth.Children) != 1 || earth.Children[0].Name != "Moon" {
		t.Fatalf("earth children = %v", earth.Children)
	}
	if !root.InverseNormals {
		t.Error("sun should carry the inverse normals flag")
	}
	if earth.InverseNormals {
		t.Error("earth should not carry the inverse normals flag")
	}
}

func TestLoadBodiesConvertsUnits(t *testing.T) {
	path := writeDefinitions(t, validDefinitions)
	root, err := LoadBodies(path)
	if err != nil {
		t.Fatalf("LoadBodies: %v", err)
	}
	earth := root.Children[0]

	if !floats.EqualWithinAbs(earth.RadiusKm, 6371.0/10000.0, 1e-9) {
		t.Errorf("earth radius = %v, want %v", earth.RadiusKm, 6371.0/10000.0)
	}
	if !floats.EqualWithinAbs(earth.DistanceFromParentKm, 149600000.0/10000.0, 1e-6) {
		t.Errorf("earth distance = %v", earth.DistanceFromParentKm)
	}
	if !floats.EqualWithinAbs(earth.RotationPeriodDays, 1.0, 1e-9) {
		t.Errorf("earth rotation period = %v days, want 1", earth.RotationPeriodDays)
	}
	if root.OrbitalPeriodDays != 0 {
		t.Errorf("sun orbital period = %v, want 0 (no orbit)", root.OrbitalPeriodDays)
	}
}

func TestLoadBodiesGeneratesProceduralTextures(t *testing.T) {
	path := writeDefinitions(t, validDefinitions)
	root, err := LoadBodies(path)
	if err != nil {
		t.Fatalf("LoadBodies: %v", err)
	}

	for _, body := range []*Body{root, root.Children[0], root.Children[0].Children[0]} {
		tex := body.Texture
		if tex.Width == 0 || tex.Height == 0 {
			t.Errorf("%s: texture has zero dimensions", body.Name)
		}
		if len(tex.Pixels) != int(tex.Width)*int(tex.Height)*4 {
			t.Errorf("%s: pixel buffer length %d does not match %dx%d RGBA", body.Name, len(tex.Pixels), tex.Width, tex.Height)
		}
	}

	// The sun's base color is dominated by red, and so must its texture be.
	sunTex := root.Texture
	if sunTex.Pixels[0] <= sunTex.Pixels[2] {
		t.Errorf("sun texture R=%d should exceed B=%d", sunTex.Pixels[0], sunTex.Pixels[2])
	}
}

func TestLoadBodiesDecodesTextureFiles(t *testing.T) {
	dir := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < 4; i++ {
		img.Set(i%2, i/2, color.RGBA{R: 255, A: 255})
	}
	f, err := os.Create(filepath.Join(dir, "red.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	path := filepath.Join(dir, "definitions.toml")
	def := `
[[body]]
name = "Sun"
radius_km = 1000.0
rotation_period_hours = 24.0
axis = [0.0, 1.0, 0.0]
texture = "red.png"
`
	if err := os.WriteFile(path, []byte(def), 0o644); err != nil {
		t.Fatal(err)
	}

	root, err := LoadBodies(path)
	if err != nil {
		t.Fatalf("LoadBodies: %v", err)
	}
	if root.Texture.Width != 2 || root.Texture.Height != 2 {
		t.Errorf("texture dims = %dx%d, want 2x2", root.Texture.Width, root.Texture.Height)
	}
	if root.Texture.Pixels[0] != 255 {
		t.Errorf("texture R = %d, want 255", root.Texture.Pixels[0])
	}
}

func TestLoadBodiesFailures(t *testing.T) {
	cases := []struct {
		name    string
		def     string
		wantErr string
	}{
		{
			name: "undefined parent",
			def: `
[[body]]
name = "Sun"
radius_km = 1.0
rotation_period_hours = 1.0
axis = [0.0, 1.0, 0.0]

[[body]]
name = "Earth"
parent = "Jupiter"
radius_km = 1.0
rotation_period_hours = 1.0
axis = [0.0, 1.0, 0.0]
`,
			wantErr: "undefined parent",
		},
		{
			name: "multiple roots",
			def: `
[[body]]
name = "Sun"
radius_km = 1.0
rotation_period_hours = 1.0
axis = [0.0, 1.0, 0.0]

[[body]]
name = "OtherSun"
radius_km = 1.0
rotation_period_hours = 1.0
axis = [0.0, 1.0, 0.0]
`,
			wantErr: "multiple parentless",
		},
		{
			name: "parent cycle",
			def: `
[[body]]
name = "Sun"
radius_km = 1.0
rotation_period_hours = 1.0
axis = [0.0, 1.0, 0.0]

[[body]]
name = "A"
parent = "B"
radius_km = 1.0
rotation_period_hours = 1.0
axis = [0.0, 1.0, 0.0]

[[body]]
name = "B"
parent = "A"
radius_km = 1.0
rotation_period_hours = 1.0
axis = [0.0, 1.0, 0.0]
`,
			wantErr: "unreachable",
		},
		{
			name: "duplicate name",
			def: `
[[body]]
name = "Sun"
radius_km = 1.0
rotation_period_hours = 1.0
axis = [0.0, 1.0, 0.0]

[[body]]
name = "Sun"
parent = "Sun"
radius_km = 1.0
rotation_period_hours = 1.0
axis = [0.0, 1.0, 0.0]
`,
			wantErr: "duplicate",
		},
		{
			name: "zero rotation period",
			def: `
[[body]]
name = "Sun"
radius_km = 1.0
rotation_period_hours = 0.0
axis = [0.0, 1.0, 0.0]
`,
			wantErr: "rotation_period_hours",
		},
		{
			name: "bad axis",
			def: `
[[body]]
name = "Sun"
radius_km = 1.0
rotation_period_hours = 1.0
axis = [0.0, 1.0]
`,
			wantErr: "axis",
		},
		{
			name: "missing texture file",
			def: `
[[body]]
name = "Sun"
radius_km = 1.0
rotation_period_hours = 1.0
axis = [0.0, 1.0, 0.0]
texture = "does_not_exist.png"
`,
			wantErr: "does_not_exist.png",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeDefinitions(t, tc.def)
			_, err := LoadBodies(path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadBodiesMissingFile(t *testing.T) {
	if _, err := LoadBodies(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
