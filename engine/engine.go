package engine

import (
	"log"
	"time"

	"github.com/orrery3d/orrery/engine/profiler"
	"github.com/orrery3d/orrery/engine/scene"
	"github.com/orrery3d/orrery/engine/window"
)

// engine implements the Engine interface.
// Drives the frame loop from the window's message loop thread.
type engine struct {
	window window.Window
	scene  scene.Scene

	profiler         *profiler.Profiler
	profilingEnabled bool

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	lastFrame        time.Time
}

// Engine is the main entry point for the application. It owns the window,
// the scene, and the per-frame update/draw cycle.
//
// Everything runs on the window's message loop thread: GLFW event polling,
// input callbacks, simulation updates, and GPU command encoding. There is no
// separate render goroutine.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Scene returns the scene being rendered.
	//
	// Returns:
	//   - scene.Scene: the scene, or nil if none is set
	Scene() scene.Scene

	// SetScene replaces the scene being rendered.
	//
	// Parameters:
	//   - s: the scene to render
	SetScene(s scene.Scene)

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional frame rate cap in frames per
	// second. Pass 0 to uncap the frame loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run starts the message loop and drives one frame per iteration.
	// Blocks until the window closes.
	Run()

	// Quit closes the window, which ends the message loop.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		profiler: profiler.NewProfiler(),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			if e.scene == nil {
				return
			}
			if r := e.scene.Renderer(); r != nil {
				r.Resize(width, height)
			}
			e.scene.Resize(width, height)
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) SetScene(s scene.Scene) {
	e.scene = s
}

func (e *engine) Run() {
	e.lastFrame = time.Now()
	e.window.SetUpdateCallback(e.renderFrame)
	e.window.ProcessMessages()
}

func (e *engine) Quit() {
	if err := e.window.Close(); err != nil {
		log.Printf("engine: failed to close window: %v", err)
	}
}

// renderFrame runs one full frame: simulation update, frame acquisition,
// draw calls, present. Called once per message loop iteration.
// Recovers from panics so a single bad frame closes the window cleanly
// instead of crashing the process.
func (e *engine) renderFrame() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("frame loop recovered from panic: %v", r)
			e.Quit()
		}
	}()

	if e.scene == nil {
		return
	}

	now := time.Now()
	e.scene.UpdateFrame(now)

	r := e.scene.Renderer()
	if r == nil {
		return
	}

	// A lost or outdated surface fails frame acquisition. Reconfigure at the
	// current window size and skip this frame; the next one will pick it up.
	if err := r.BeginFrame(); err != nil {
		log.Printf("frame skipped: %v", err)
		r.Resize(e.window.Width(), e.window.Height())
		return
	}
	if err := e.scene.DrawCalls(); err != nil {
		log.Printf("draw calls failed: %v", err)
	}
	r.EndFrame()
	r.Present()

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick(e.scene.VisibleCount(), e.scene.Count())
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - time.Since(e.lastFrame); remaining > 0 {
			time.Sleep(remaining)
		}
	}
	e.lastFrame = time.Now()
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetRenderFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the frame loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameInterval(fps)
}

// frameInterval converts a frames-per-second cap to the minimum duration of a
// single frame. Computed in float64 so fractional caps below 1 fps stay valid
// instead of truncating to a zero divisor. Non-positive caps disable the limit.
//
// Parameters:
//   - fps: maximum frames per second (0 or negative = uncapped)
//
// Returns:
//   - time.Duration: the minimum frame duration, 0 when uncapped
func frameInterval(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
