package model

import (
	"github.com/orrery3d/orrery/engine/renderer/bind_group_provider"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMeshProvider is an option builder that sets the BindGroupProvider for mesh GPU resources.
//
// Parameters:
//   - provider: the BindGroupProvider holding vertex/index buffers and bind group data
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh provider option to a model
func WithMeshProvider(provider bind_group_provider.BindGroupProvider) ModelBuilderOption {
	return func(m *model) {
		m.meshProvider = provider
	}
}

// WithBoundingRadius is an option builder that sets the bounding sphere radius.
//
// Parameters:
//   - radius: the bounding radius to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the bounding radius option to a model
func WithBoundingRadius(radius float32) ModelBuilderOption {
	return func(m *model) {
		m.boundingRadius = radius
	}
}

// WithMeshData is an option builder that sets the serialized vertex and index
// data alongside the index count in a single option.
//
// Parameters:
//   - vertexData: the serialized vertex data to set
//   - indexData: the serialized index data to set
//   - indexCount: the number of indices
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh data option to a model
func WithMeshData(vertexData, indexData []byte, indexCount int) ModelBuilderOption {
	return func(m *model) {
		m.vertexData = vertexData
		m.indexData = indexData
		m.indexCount = indexCount
	}
}
