package shader

import "github.com/cogentcore/webgpu/wgpu"

// ShaderOption is a functional option used to configure a Shader during construction.
type ShaderOption func(*shader)

// WithEntryPoint is an option builder that overrides the default entry point name.
//
// Parameters:
//   - entryPoint: the entry point function name in the WGSL source
//
// Returns:
//   - ShaderOption: a function that applies the entry point option to a shader
func WithEntryPoint(entryPoint string) ShaderOption {
	return func(s *shader) {
		s.entryPoint = entryPoint
	}
}

// WithBindGroupLayoutDescriptor is an option builder that declares the bind group layout
// for a specific group index. The descriptor must match the @group declarations in the source.
//
// Parameters:
//   - group: the bind group index
//   - descriptor: the bind group layout descriptor for this group
//
// Returns:
//   - ShaderOption: a function that applies the layout descriptor option to a shader
func WithBindGroupLayoutDescriptor(group int, descriptor wgpu.BindGroupLayoutDescriptor) ShaderOption {
	return func(s *shader) {
		s.bindGroupLayoutDescriptors[group] = descriptor
	}
}

// WithVertexLayouts is an option builder that sets the vertex buffer layouts for a vertex shader.
//
// Parameters:
//   - layouts: the vertex buffer layouts matching the shader's vertex inputs
//
// Returns:
//   - ShaderOption: a function that applies the vertex layouts option to a shader
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) ShaderOption {
	return func(s *shader) {
		s.vertexLayouts = layouts
	}
}
