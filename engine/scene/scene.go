package scene

import (
	_ "embed"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/orrery3d/orrery/common"
	"github.com/orrery3d/orrery/engine/camera"
	"github.com/orrery3d/orrery/engine/model"
	"github.com/orrery3d/orrery/engine/renderer"
	"github.com/orrery3d/orrery/engine/renderer/bind_group_provider"
	"github.com/orrery3d/orrery/engine/renderer/pipeline"
	"github.com/orrery3d/orrery/engine/renderer/shader"
	"github.com/orrery3d/orrery/engine/solar"
)

//go:embed solar_body.wgsl
var solarBodyWGSL string

// PipelineKeySolarBody identifies the render pipeline every celestial body is
// drawn with.
const PipelineKeySolarBody = "solar_body"

// Uniform buffer sizes in bytes. The normal matrix is a mat3x3 uploaded as
// three 16-byte-aligned columns.
const (
	matrixUniformSize = 64
	normalUniformSize = 48
	lightUniformSize  = 16
)

// Bind group slots, in the order DrawCalls passes them to the renderer.
const (
	bindGroupMatrices = 0
	bindGroupLight    = 1
	bindGroupTexture  = 2
)

var _ Scene = &scene{}

// Scene owns the render-side state of one solar system: the shared sphere
// mesh, per-body GPU uniforms and textures, the sun light, and the orbital
// hierarchy that animates them. One scene maps to one pipeline and one draw
// call per body.
type Scene interface {
	// Name returns the scene's name.
	Name() string

	// Camera returns the camera the scene renders through.
	Camera() camera.Camera

	// Renderer returns the renderer the scene draws with.
	Renderer() renderer.Renderer

	// Hierarchy returns the orbital hierarchy backing the scene.
	Hierarchy() Hierarchy

	// Count returns the number of celestial bodies in the scene.
	Count() int

	// VisibleCount returns the number of bodies that survived frustum culling
	// in the most recent UpdateFrame.
	VisibleCount() int

	// UpdateFrame advances the simulation to now and stages every per-frame
	// GPU write: camera view, per-body matrix triples, and the camera-space
	// sun position. Must be called once per frame before DrawCalls.
	//
	// Parameters:
	//   - now: the frame timestamp
	UpdateFrame(now time.Time)

	// DrawCalls encodes one draw per body into the current render pass.
	// Must be called between Renderer.BeginFrame and Renderer.EndFrame.
	//
	// Returns:
	//   - error: error if a draw call could not be encoded
	DrawCalls() error

	// Resize updates the camera projection for a new surface size.
	//
	// Parameters:
	//   - width: new surface width in pixels
	//   - height: new surface height in pixels
	Resize(width, height int)
}

type scene struct {
	mu sync.RWMutex

	name      string
	cam       camera.Camera
	r         renderer.Renderer
	hierarchy Hierarchy

	// epoch anchors elapsed simulation time. Transforms are a pure function
	// of now − epoch.
	epoch time.Time

	sphere       model.Model
	matrixBGPs   []bind_group_provider.BindGroupProvider
	textureBGPs  []bind_group_provider.BindGroupProvider
	lightBGP     bind_group_provider.BindGroupProvider
	latSegments  int
	longSegments int

	// writes is reused across frames to stage uniform uploads without
	// reallocating.
	writes []bind_group_provider.BufferWrite

	// visible marks which bodies survived frustum culling this frame.
	visible []bool
}

// NewScene builds the render state for the body tree rooted at root: shaders,
// the shared unit sphere, one matrix bind group and one texture bind group per
// body, and the sun light bind group. Panics if GPU resource creation fails,
// since the scene cannot function without them.
//
// Parameters:
//   - name: scene name, used as a label prefix for GPU resources
//   - r: the renderer to create resources on
//   - cam: the camera to render through
//   - root: the root of a loaded body tree
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the fully initialized scene
func NewScene(name string, r renderer.Renderer, cam camera.Camera, root *solar.Body, options ...SceneBuilderOption) Scene {
	s := &scene{
		name:         name,
		cam:          cam,
		r:            r,
		hierarchy:    NewHierarchy(root),
		epoch:        time.Now(),
		latSegments:  64,
		longSegments: 128,
	}

	for _, option := range options {
		option(s)
	}

	vertexShader, fragmentShader := buildSolarBodyShaders()
	p := pipeline.NewPipeline(PipelineKeySolarBody,
		pipeline.WithVertexShader(vertexShader),
		pipeline.WithFragmentShader(fragmentShader),
	)
	if err := r.RegisterPipelines(p); err != nil {
		panic(fmt.Sprintf("scene: failed to register pipeline: %v", err))
	}

	// All bodies share one unit sphere; the radius lives in the model matrix.
	s.sphere = model.NewSphereModel(name+"_sphere", 1.0, s.latSegments, s.longSegments)
	mesh := s.sphere.MeshProvider()
	if err := r.InitMeshBuffers(mesh, s.sphere.VertexData(), s.sphere.IndexData(), s.sphere.IndexCount()); err != nil {
		panic(fmt.Sprintf("scene: failed to init sphere mesh buffers: %v", err))
	}

	matrixSizes := map[int]uint64{
		0: matrixUniformSize,
		1: matrixUniformSize,
		2: normalUniformSize,
	}
	n := s.hierarchy.Len()
	s.matrixBGPs = make([]bind_group_provider.BindGroupProvider, n)
	s.textureBGPs = make([]bind_group_provider.BindGroupProvider, n)
	for i := 0; i < n; i++ {
		bodyName := s.hierarchy.Name(i)

		matrixBGP := bind_group_provider.NewBindGroupProvider(name + "_" + bodyName + "_matrices")
		if err := r.InitBindGroup(matrixBGP, vertexShader.BindGroupLayoutDescriptor(bindGroupMatrices), nil, matrixSizes); err != nil {
			panic(fmt.Sprintf("scene: failed to init matrix bind group for %s: %v", bodyName, err))
		}
		s.matrixBGPs[i] = matrixBGP

		textureBGP := bind_group_provider.NewBindGroupProvider(name + "_" + bodyName + "_surface")
		if err := r.InitTextureView(textureBGP, 0, s.hierarchy.Texture(i)); err != nil {
			panic(fmt.Sprintf("scene: failed to init texture for %s: %v", bodyName, err))
		}
		if err := r.InitSampler(textureBGP, 1, common.SamplerStagingData{
			AddressModeU: wgpu.AddressModeRepeat,
			AddressModeV: wgpu.AddressModeClampToEdge,
			MagFilter:    wgpu.FilterModeLinear,
			MinFilter:    wgpu.FilterModeLinear,
		}); err != nil {
			panic(fmt.Sprintf("scene: failed to init sampler for %s: %v", bodyName, err))
		}
		if err := r.InitBindGroup(textureBGP, fragmentShader.BindGroupLayoutDescriptor(bindGroupTexture), nil, nil); err != nil {
			panic(fmt.Sprintf("scene: failed to init texture bind group for %s: %v", bodyName, err))
		}
		s.textureBGPs[i] = textureBGP
	}

	s.lightBGP = bind_group_provider.NewBindGroupProvider(name + "_sun_light")
	if err := r.InitBindGroup(s.lightBGP, fragmentShader.BindGroupLayoutDescriptor(bindGroupLight), nil, map[int]uint64{0: lightUniformSize}); err != nil {
		panic(fmt.Sprintf("scene: failed to init light bind group: %v", err))
	}

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) Hierarchy() Hierarchy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hierarchy
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hierarchy.Len()
}

func (s *scene) VisibleCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, v := range s.visible {
		if v {
			count++
		}
	}
	return count
}

func (s *scene) UpdateFrame(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cam.Update(now)
	s.hierarchy.UpdateTransforms(now.Sub(s.epoch).Seconds())

	view := s.cam.ViewMatrix()
	viewProjection := s.cam.ViewProjectionMatrix()
	frustum := common.ExtractFrustumFromMatrix(viewProjection[:])

	if len(s.visible) != s.hierarchy.Len() {
		s.visible = make([]bool, s.hierarchy.Len())
	}

	s.writes = s.writes[:0]
	for i := 0; i < s.hierarchy.Len(); i++ {
		// Fresh arrays per body: the staged writes hold unsafe views of this
		// memory until WriteBuffers copies it to the queue.
		var mv, mvp [16]float32
		var normal [12]float32
		world := s.hierarchy.WorldTransform(i)

		// Cull against the view frustum. The world matrix scales the unit
		// sphere uniformly, so the first column's length is the world radius.
		center := [3]float32{world[12], world[13], world[14]}
		radius := s.sphere.BoundingRadius() * float32(math.Sqrt(float64(
			world[0]*world[0]+world[1]*world[1]+world[2]*world[2])))
		s.visible[i] = frustum.IntersectsSphere(center, radius)
		if !s.visible[i] {
			continue
		}

		common.Mul4(mv[:], view[:], world[:])
		common.Mul4(mvp[:], viewProjection[:], world[:])
		common.NormalFromModelView(normal[:], mv[:], s.hierarchy.InverseNormals(i))

		s.writes = append(s.writes,
			bind_group_provider.BufferWrite{Provider: s.matrixBGPs[i], Binding: 0, Data: common.SliceToBytes(mvp[:])},
			bind_group_provider.BufferWrite{Provider: s.matrixBGPs[i], Binding: 1, Data: common.SliceToBytes(mv[:])},
			bind_group_provider.BufferWrite{Provider: s.matrixBGPs[i], Binding: 2, Data: common.SliceToBytes(normal[:])},
		)
	}

	// The sun sits at the world origin; light the scene from its camera-space
	// position.
	lx, ly, lz, lw := common.TransformVec4(view[:], 0, 0, 0, 1)
	lightPosition := [4]float32{lx, ly, lz, lw}
	s.writes = append(s.writes, bind_group_provider.BufferWrite{
		Provider: s.lightBGP,
		Binding:  0,
		Data:     common.SliceToBytes(lightPosition[:]),
	})

	s.r.WriteBuffers(s.writes)
}

func (s *scene) DrawCalls() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mesh := s.sphere.MeshProvider()
	for i := 0; i < s.hierarchy.Len(); i++ {
		if i < len(s.visible) && !s.visible[i] {
			continue
		}
		bindGroups := []bind_group_provider.BindGroupProvider{
			s.matrixBGPs[i],
			s.lightBGP,
			s.textureBGPs[i],
		}
		if err := s.r.DrawCall(PipelineKeySolarBody, mesh, 1, bindGroups); err != nil {
			return fmt.Errorf("draw call for %s failed: %w", s.hierarchy.Name(i), err)
		}
	}
	return nil
}

func (s *scene) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if height > 0 {
		s.cam.SetAspect(float32(width) / float32(height))
	}
}

// buildSolarBodyShaders constructs the vertex and fragment shader pair for the
// body pipeline with their bind group layouts declared explicitly: matrices at
// group 0, the sun light at group 1, the surface texture at group 2.
func buildSolarBodyShaders() (shader.Shader, shader.Shader) {
	uniformEntry := func(binding uint32, visibility wgpu.ShaderStage) wgpu.BindGroupLayoutEntry {
		entry := wgpu.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: visibility,
		}
		entry.Buffer.Type = wgpu.BufferBindingTypeUniform
		return entry
	}

	matricesLayout := wgpu.BindGroupLayoutDescriptor{
		Label: "solar_body_matrices",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(0, wgpu.ShaderStageVertex),
			uniformEntry(1, wgpu.ShaderStageVertex),
			uniformEntry(2, wgpu.ShaderStageVertex),
		},
	}

	lightLayout := wgpu.BindGroupLayoutDescriptor{
		Label: "solar_body_light",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(0, wgpu.ShaderStageFragment),
		},
	}

	textureEntry := wgpu.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: wgpu.ShaderStageFragment,
	}
	textureEntry.Texture.SampleType = wgpu.TextureSampleTypeFloat
	textureEntry.Texture.ViewDimension = wgpu.TextureViewDimension2D
	samplerEntry := wgpu.BindGroupLayoutEntry{
		Binding:    1,
		Visibility: wgpu.ShaderStageFragment,
	}
	samplerEntry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
	textureLayout := wgpu.BindGroupLayoutDescriptor{
		Label:   "solar_body_surface",
		Entries: []wgpu.BindGroupLayoutEntry{textureEntry, samplerEntry},
	}

	vertexLayout := wgpu.VertexBufferLayout{
		ArrayStride: uint64((&model.GPUVertex{}).Size()),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
		},
	}

	vertexShader := shader.NewShader(PipelineKeySolarBody+"_vs", shader.ShaderTypeVertex, solarBodyWGSL,
		shader.WithBindGroupLayoutDescriptor(bindGroupMatrices, matricesLayout),
		shader.WithVertexLayouts(vertexLayout),
	)
	fragmentShader := shader.NewShader(PipelineKeySolarBody+"_fs", shader.ShaderTypeFragment, solarBodyWGSL,
		shader.WithBindGroupLayoutDescriptor(bindGroupLight, lightLayout),
		shader.WithBindGroupLayoutDescriptor(bindGroupTexture, textureLayout),
	)
	return vertexShader, fragmentShader
}
