package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/orrery3d/orrery/engine"
	"github.com/orrery3d/orrery/engine/camera"
	"github.com/orrery3d/orrery/engine/input"
	"github.com/orrery3d/orrery/engine/renderer"
	"github.com/orrery3d/orrery/engine/scene"
	"github.com/orrery3d/orrery/engine/solar"
	"github.com/orrery3d/orrery/engine/window"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg := loadConfig(logger)

	root, err := solar.LoadBodies(cfg.GetString("data.definitions"),
		solar.WithTextureDir(cfg.GetString("data.textures")),
		solar.WithLogger(logger),
	)
	if err != nil {
		logger.Error("failed to load solar system definitions", "error", err)
		os.Exit(1)
	}
	logger.Info("solar system loaded", "bodies", root.Count(), "root", root.Name)

	win := window.NewWindow(
		window.WithTitle(cfg.GetString("window.title")),
		window.WithWidth(cfg.GetInt("window.width")),
		window.WithHeight(cfg.GetInt("window.height")),
	)

	controller := camera.NewCameraController(
		camera.WithPosition(0, 100, -200),
		camera.WithViewDirection(0, -1, 2),
	)
	cam := camera.NewCamera(
		camera.WithController(controller),
		camera.WithAspect(float32(win.Width())/float32(win.Height())),
	)

	presentMode := renderer.PresentModeUncapped
	if cfg.GetBool("renderer.vsync") {
		presentMode = renderer.PresentModeVSync
	}
	r := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(presentMode),
	)

	sc := scene.NewScene("solar_system", r, cam, root)

	// Right-drag rotates the view; capturing the cursor while dragging keeps
	// the rotation unbounded.
	router := input.NewRouter(controller,
		input.WithDragChangeCallback(win.CaptureCursor),
	)
	router.Bind(win)

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithScene(sc),
		engine.WithProfiling(cfg.GetBool("profiling.enabled")),
	)

	logger.Info("starting frame loop", "width", win.Width(), "height", win.Height())
	eng.Run()
}

// loadConfig reads the optional app config next to the binary. Missing files
// fall back to defaults; anything else (malformed TOML, unreadable file) is
// fatal.
func loadConfig(logger *slog.Logger) *viper.Viper {
	v := viper.New()
	v.SetDefault("window.title", "Solar System")
	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("renderer.vsync", false)
	v.SetDefault("profiling.enabled", false)
	v.SetDefault("data.definitions", "data/definitions.toml")
	v.SetDefault("data.textures", "data/textures")

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			logger.Error("failed to read config", "error", err)
			os.Exit(1)
		}
	}
	return v
}
