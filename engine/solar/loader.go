package solar

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/spf13/viper"

	"github.com/orrery3d/orrery/common"
)

// rawBody mirrors one [[body]] table in the definition file before unit
// conversion and tree resolution.
type rawBody struct {
	Name                string    `mapstructure:"name"`
	Parent              string    `mapstructure:"parent"`
	RadiusKm            float64   `mapstructure:"radius_km"`
	AvgDistanceKm       float64   `mapstructure:"avg_distance_km"`
	OrbitalPeriodDays   float64   `mapstructure:"orbital_period_days"`
	RotationPeriodHours float64   `mapstructure:"rotation_period_hours"`
	Axis                []float64 `mapstructure:"axis"`
	Texture             string    `mapstructure:"texture"`
	Color               []float64 `mapstructure:"color"`
	InverseNormals      bool      `mapstructure:"inverse_normals"`
}

// loaderConfig holds LoadBodies settings applied through LoaderOptions.
type loaderConfig struct {
	textureDir string
	workers    int
	logger     *slog.Logger
}

// LoaderOption is a functional option for configuring LoadBodies.
type LoaderOption func(*loaderConfig)

// WithTextureDir sets the directory texture paths in the definition file are
// resolved against. Defaults to the definition file's directory.
//
// Parameters:
//   - dir: the texture base directory
//
// Returns:
//   - LoaderOption: functional option to set the texture directory
func WithTextureDir(dir string) LoaderOption {
	return func(c *loaderConfig) {
		c.textureDir = dir
	}
}

// WithTextureWorkers sets the number of workers decoding textures in
// parallel. Defaults to 4.
//
// Parameters:
//   - n: the worker count (minimum 1)
//
// Returns:
//   - LoaderOption: functional option to set the worker count
func WithTextureWorkers(n int) LoaderOption {
	return func(c *loaderConfig) {
		if n < 1 {
			n = 1
		}
		c.workers = n
	}
}

// WithLogger sets the structured logger used for load progress. Defaults to
// slog.Default().
//
// Parameters:
//   - logger: the logger to use
//
// Returns:
//   - LoaderOption: functional option to set the logger
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(c *loaderConfig) {
		c.logger = logger
	}
}

// LoadBodies reads a TOML body definition file and resolves it into a
// celestial body tree. Radii and distances are divided by 10^4, rotation
// periods are converted from hours to days, and every body's texture is
// decoded (or synthesized from its base color) before the function returns.
//
// Any fault in the definitions is an error: the caller receives either a
// fully resolved tree or nothing. Callers are expected to treat a load
// failure as fatal at startup.
//
// Parameters:
//   - path: path to the TOML definition file
//   - options: functional options to configure loading
//
// Returns:
//   - *Body: the root of the resolved body tree
//   - error: error if the file is unreadable, malformed, or inconsistent
func LoadBodies(path string, options ...LoaderOption) (*Body, error) {
	cfg := &loaderConfig{
		textureDir: filepath.Dir(path),
		workers:    4,
		logger:     slog.Default(),
	}
	for _, option := range options {
		option(cfg)
	}

	start := time.Now()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read body definitions %s: %w", path, err)
	}

	var raws []rawBody
	if err := v.UnmarshalKey("body", &raws); err != nil {
		return nil, fmt.Errorf("failed to parse body definitions %s: %w", path, err)
	}
	if len(raws) == 0 {
		return nil, fmt.Errorf("body definitions %s contain no bodies", path)
	}

	root, bodies, err := resolveTree(raws)
	if err != nil {
		return nil, fmt.Errorf("invalid body definitions %s: %w", path, err)
	}

	if err := loadTextures(raws, bodies, cfg); err != nil {
		return nil, err
	}

	cfg.logger.Info("loaded body definitions",
		slog.String("path", path),
		slog.String("root", root.Name),
		slog.Int("bodies", root.Count()),
		slog.Duration("elapsed", time.Since(start)),
	)
	return root, nil
}

// resolveTree validates the raw bodies and links them into a tree. Exactly
// one body may be parentless (the root) and every other body must reach the
// root through its parent chain.
func resolveTree(raws []rawBody) (*Body, map[string]*Body, error) {
	bodies := make(map[string]*Body, len(raws))
	var root *Body

	for _, raw := range raws {
		if raw.Name == "" {
			return nil, nil, fmt.Errorf("body without a name")
		}
		if _, exists := bodies[raw.Name]; exists {
			return nil, nil, fmt.Errorf("duplicate body %q", raw.Name)
		}
		if raw.RadiusKm <= 0 {
			return nil, nil, fmt.Errorf("body %q: radius_km must be positive", raw.Name)
		}
		if raw.RotationPeriodHours == 0 {
			return nil, nil, fmt.Errorf("body %q: rotation_period_hours must be non-zero", raw.Name)
		}
		if len(raw.Axis) != 3 {
			return nil, nil, fmt.Errorf("body %q: axis must have exactly 3 components", raw.Name)
		}

		body := &Body{
			Name:                 raw.Name,
			RadiusKm:             raw.RadiusKm / 10000.0,
			DistanceFromParentKm: raw.AvgDistanceKm / 10000.0,
			OrbitalPeriodDays:    raw.OrbitalPeriodDays,
			RotationPeriodDays:   raw.RotationPeriodHours / 24.0,
			Axis:                 [3]float64{raw.Axis[0], raw.Axis[1], raw.Axis[2]},
			InverseNormals:       raw.InverseNormals,
		}
		bodies[raw.Name] = body

		if raw.Parent == "" {
			if root != nil {
				return nil, nil, fmt.Errorf("multiple parentless bodies: %q and %q", root.Name, raw.Name)
			}
			root = body
		}
	}
	if root == nil {
		return nil, nil, fmt.Errorf("no parentless root body")
	}

	for _, raw := range raws {
		if raw.Parent == "" {
			continue
		}
		parent, ok := bodies[raw.Parent]
		if !ok {
			return nil, nil, fmt.Errorf("body %q references undefined parent %q", raw.Name, raw.Parent)
		}
		if raw.Parent == raw.Name {
			return nil, nil, fmt.Errorf("body %q is its own parent", raw.Name)
		}
		parent.Children = append(parent.Children, bodies[raw.Name])
	}

	// A parent cycle leaves its members disconnected from the root.
	if reachable := root.Count(); reachable != len(raws) {
		return nil, nil, fmt.Errorf("%d bodies unreachable from root %q (parent cycle?)", len(raws)-reachable, root.Name)
	}
	return root, bodies, nil
}

// loadTextures decodes or synthesizes every body's texture on a worker pool.
// Decoding image files dominates startup time, so the work is spread across
// workers and joined with a WaitGroup barrier.
func loadTextures(raws []rawBody, bodies map[string]*Body, cfg *loaderConfig) error {
	pool := worker.NewDynamicWorkerPool(cfg.workers, 256, 1*time.Second)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i, raw := range raws {
		body := bodies[raw.Name]

		wg.Add(1)
		rawCap := raw // capture for closure
		pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()

				if rawCap.Texture == "" {
					body.Texture = proceduralTexture(baseColor(rawCap.Color))
					return nil, nil
				}

				staged, err := common.DecodeTextureFile(filepath.Join(cfg.textureDir, rawCap.Texture))
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("body %q: %w", rawCap.Name, err)
					}
					mu.Unlock()
					return nil, err
				}
				body.Texture = staged
				return nil, nil
			},
		})
	}
	wg.Wait()

	return firstErr
}

// baseColor normalizes an optional color triple, defaulting to a neutral
// grey when the definition omits it.
func baseColor(color []float64) [3]float64 {
	if len(color) != 3 {
		return [3]float64{0.6, 0.6, 0.6}
	}
	return [3]float64{color[0], color[1], color[2]}
}
