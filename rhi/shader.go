// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package rhi

import (
	"fmt"
	"unsafe"

	"github.com/tundraforge/rhi/internal/vk"
	"github.com/tundraforge/rhi/types"
)

type shaderResource struct {
	module vk.ShaderModule
	stage  types.ShaderStage
	name   string
}

// CreateShader builds a VkShaderModule from a SPIR-V binary. The caller
// is responsible for having compiled SPIRVBytes for the same Vulkan
// version this device reports (§6: no runtime shader compilation here).
func (d *Device) CreateShader(info types.ShaderCreateInfo) (types.Handle, error) {
	if len(info.SPIRVBytes) == 0 || len(info.SPIRVBytes)%4 != 0 {
		return types.Handle(0), fmt.Errorf("rhi: SPIR-V binary must be a non-empty multiple of 4 bytes")
	}

	ci := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uintptr(len(info.SPIRVBytes)),
		PCode:    unsafe.Pointer(&info.SPIRVBytes[0]),
	}

	var module vk.ShaderModule
	if res := d.commands.CreateShaderModule(d.handle, unsafe.Pointer(&ci), &module); res != vk.Success {
		return types.Handle(0), fmt.Errorf("rhi: vkCreateShaderModule returned %s", res)
	}

	res := shaderResource{module: module, stage: info.Stage, name: info.Name}
	h := d.shaders.Add(res)

	d.tracker.AddResource(h, func() {
		d.commands.DestroyShaderModule(d.handle, module)
	})

	d.setDebugName(vk.ObjectTypeShaderModule, uint64(module), info.Name)
	Logger().Debug("shader created", "handle", h, "stage", info.Stage, "name", info.Name)
	return h, nil
}

// DestroyShader drops the device's reference to h. Pipelines built from
// the shader keep their own VkShaderModule dependency satisfied at
// creation time — Vulkan does not require the module to outlive the
// pipeline, so destroying a shader immediately after building every
// pipeline that needs it is the expected usage (§6).
func (d *Device) DestroyShader(h types.Handle) error {
	if !d.shaders.IsValid(h) {
		return ErrInvalidHandle
	}
	d.shaders.Destroy(h)
	d.tracker.RemoveReference(h)
	return nil
}
