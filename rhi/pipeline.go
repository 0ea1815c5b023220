// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package rhi

import (
	"fmt"
	"unsafe"

	"github.com/tundraforge/rhi/handle"
	"github.com/tundraforge/rhi/internal/vk"
	"github.com/tundraforge/rhi/types"
)

type graphicsPipelineResource struct {
	pipeline vk.Pipeline
	name     string
}

type computePipelineResource struct {
	pipeline vk.Pipeline
	name     string
}

// CreateGraphicsPipeline builds a VkPipeline for dynamic rendering (no
// VkRenderPass object): vertex/fragment stages, a vertex-input layout
// derived from the caller's buffer bindings, and fixed viewport/scissor
// state left dynamic and set per-draw (§4.6, §4.9).
func (d *Device) CreateGraphicsPipeline(info types.GraphicsPipelineCreateInfo) (types.Handle, error) {
	vs, err := handle.With(d.shaders, info.VertexShader, func(s *shaderResource) vk.ShaderModule { return s.module })
	if err != nil {
		return types.Handle(0), fmt.Errorf("rhi: vertex shader: %w", err)
	}
	fs, err := handle.With(d.shaders, info.FragmentShader, func(s *shaderResource) vk.ShaderModule { return s.module })
	if err != nil {
		return types.Handle(0), fmt.Errorf("rhi: fragment shader: %w", err)
	}

	entry := cString("main")
	stages := [2]vk.PipelineShaderStageCreateInfo{
		{SType: vk.StructureTypePipelineShaderStageCreateInfo, Stage: vk.ShaderStageVertexBit, Module: vs, PName: entry},
		{SType: vk.StructureTypePipelineShaderStageCreateInfo, Stage: vk.ShaderStageFragmentBit, Module: fs, PName: entry},
	}

	var bindings []vk.VertexInputBindingDescription
	var attrs []vk.VertexInputAttributeDescription
	for i, vb := range info.VertexBuffers {
		bindings = append(bindings, vk.VertexInputBindingDescription{Binding: uint32(i), Stride: uint32(vb.Stride), InputRate: 0})
		for _, a := range vb.Attributes {
			attrs = append(attrs, vk.VertexInputAttributeDescription{Location: a.Location, Binding: uint32(i), Format: vkFormat(a.Format), Offset: a.Offset})
		}
	}
	vertexInput := vk.PipelineVertexInputStateCreateInfo{SType: vk.StructureTypePipelineVertexInputStateCreateInfo}
	if len(bindings) > 0 {
		vertexInput.VertexBindingDescriptionCount = uint32(len(bindings))
		vertexInput.PVertexBindingDescriptions = unsafe.Pointer(&bindings[0])
	}
	if len(attrs) > 0 {
		vertexInput.VertexAttributeDescriptionCount = uint32(len(attrs))
		vertexInput.PVertexAttributeDescriptions = unsafe.Pointer(&attrs[0])
	}

	inputAssembly := vk.PipelineInputAssemblyStateCreateInfo{SType: vk.StructureTypePipelineInputAssemblyStateCreateInfo, Topology: 3 /* triangle list */}
	viewportState := vk.PipelineViewportStateCreateInfo{SType: vk.StructureTypePipelineViewportStateCreateInfo, ViewportCount: 1, ScissorCount: 1}
	rasterization := vk.PipelineRasterizationStateCreateInfo{
		SType: vk.StructureTypePipelineRasterizationStateCreateInfo, PolygonMode: 0, CullMode: vkCullMode(info.CullMode), FrontFace: 1, LineWidth: 1,
	}
	multisample := vk.PipelineMultisampleStateCreateInfo{SType: vk.StructureTypePipelineMultisampleStateCreateInfo, RasterizationSamples: 1}

	depthStencil := vk.PipelineDepthStencilStateCreateInfo{SType: vk.StructureTypePipelineDepthStencilStateCreateInfo}
	if info.HasDepth {
		depthStencil.DepthTestEnable = 1
		depthStencil.DepthWriteEnable = 1
		depthStencil.DepthCompareOp = 1 // VK_COMPARE_OP_LESS
	}

	blendAttachments := make([]vk.PipelineColorBlendAttachmentState, len(info.ColorFormats))
	for i := range blendAttachments {
		blendAttachments[i] = vk.PipelineColorBlendAttachmentState{ColorWriteMask: 0xF}
	}
	colorBlend := vk.PipelineColorBlendStateCreateInfo{SType: vk.StructureTypePipelineColorBlendStateCreateInfo}
	if len(blendAttachments) > 0 {
		colorBlend.AttachmentCount = uint32(len(blendAttachments))
		colorBlend.PAttachments = unsafe.Pointer(&blendAttachments[0])
	}

	dynamicStates := [2]uint32{0 /* VIEWPORT */, 1 /* SCISSOR */}
	dynamicState := vk.PipelineDynamicStateCreateInfo{
		SType: vk.StructureTypePipelineDynamicStateCreateInfo, DynamicStateCount: 2, PDynamicStates: unsafe.Pointer(&dynamicStates[0]),
	}

	colorFormats := make([]vk.Format, len(info.ColorFormats))
	for i, f := range info.ColorFormats {
		colorFormats[i] = vkFormat(f)
	}
	renderingInfo := vk.PipelineRenderingCreateInfo{SType: vk.StructureTypePipelineRenderingCreateInfo}
	if len(colorFormats) > 0 {
		renderingInfo.ColorAttachmentCount = uint32(len(colorFormats))
		renderingInfo.PColorAttachmentFormats = unsafe.Pointer(&colorFormats[0])
	}
	if info.HasDepth {
		renderingInfo.DepthAttachmentFormat = vkFormat(info.DepthFormat)
	}

	ci := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		PNext:               unsafe.Pointer(&renderingInfo),
		StageCount:          2,
		PStages:             unsafe.Pointer(&stages[0]),
		PVertexInputState:   unsafe.Pointer(&vertexInput),
		PInputAssemblyState: unsafe.Pointer(&inputAssembly),
		PViewportState:      unsafe.Pointer(&viewportState),
		PRasterizationState: unsafe.Pointer(&rasterization),
		PMultisampleState:   unsafe.Pointer(&multisample),
		PDepthStencilState:  unsafe.Pointer(&depthStencil),
		PColorBlendState:    unsafe.Pointer(&colorBlend),
		PDynamicState:       unsafe.Pointer(&dynamicState),
		Layout:              d.descs.layout,
		BasePipelineIndex:   -1,
	}

	var pipeline vk.Pipeline
	if res := d.commands.CreateGraphicsPipelines(d.handle, d.pipelineCache, 1, unsafe.Pointer(&ci), unsafe.Pointer(&pipeline)); res != vk.Success {
		return types.Handle(0), fmt.Errorf("rhi: vkCreateGraphicsPipelines returned %s", res)
	}

	res := graphicsPipelineResource{pipeline: pipeline, name: info.Name}
	h := d.graphicsPipes.Add(res)
	d.tracker.AddResource(h, func() {
		d.commands.DestroyPipeline(d.handle, pipeline)
	})

	d.setDebugName(vk.ObjectTypePipeline, uint64(pipeline), info.Name)
	Logger().Debug("graphics pipeline created", "handle", h, "name", info.Name)
	return h, nil
}

// DestroyGraphicsPipeline drops the device's reference to h.
func (d *Device) DestroyGraphicsPipeline(h types.Handle) error {
	if !d.graphicsPipes.IsValid(h) {
		return ErrInvalidHandle
	}
	d.graphicsPipes.Destroy(h)
	d.tracker.RemoveReference(h)
	return nil
}

// CreateComputePipeline builds a single-stage compute VkPipeline.
func (d *Device) CreateComputePipeline(info types.ComputePipelineCreateInfo) (types.Handle, error) {
	module, err := handle.With(d.shaders, info.Shader, func(s *shaderResource) vk.ShaderModule { return s.module })
	if err != nil {
		return types.Handle(0), fmt.Errorf("rhi: compute shader: %w", err)
	}

	entry := cString("main")
	ci := vk.ComputePipelineCreateInfo{
		SType: vk.StructureTypeComputePipelineCreateInfo,
		Stage: vk.PipelineShaderStageCreateInfo{
			SType: vk.StructureTypePipelineShaderStageCreateInfo, Stage: vk.ShaderStageComputeBit, Module: module, PName: entry,
		},
		Layout:            d.descs.layout,
		BasePipelineIndex: -1,
	}

	var pipeline vk.Pipeline
	if res := d.commands.CreateComputePipelines(d.handle, d.pipelineCache, 1, unsafe.Pointer(&ci), unsafe.Pointer(&pipeline)); res != vk.Success {
		return types.Handle(0), fmt.Errorf("rhi: vkCreateComputePipelines returned %s", res)
	}

	res := computePipelineResource{pipeline: pipeline, name: info.Name}
	h := d.computePipes.Add(res)
	d.tracker.AddResource(h, func() {
		d.commands.DestroyPipeline(d.handle, pipeline)
	})

	d.setDebugName(vk.ObjectTypePipeline, uint64(pipeline), info.Name)
	Logger().Debug("compute pipeline created", "handle", h, "name", info.Name)
	return h, nil
}

// DestroyComputePipeline drops the device's reference to h.
func (d *Device) DestroyComputePipeline(h types.Handle) error {
	if !d.computePipes.IsValid(h) {
		return ErrInvalidHandle
	}
	d.computePipes.Destroy(h)
	d.tracker.RemoveReference(h)
	return nil
}
