// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"fmt"
	"unsafe"
)

// Commands holds the resolved function pointers for the subset of the
// Vulkan 1.3 entry points this binding exercises: object lifetime,
// command-buffer recording, synchronization2 submission, and swapchain
// presentation. Function pointers are loaded in the standard three
// stages — see LoadGlobal, LoadInstance, LoadDevice.
type Commands struct {
	// global
	createInstance unsafe.Pointer

	// instance-level
	destroyInstance                        unsafe.Pointer
	enumeratePhysicalDevices               unsafe.Pointer
	getPhysicalDeviceProperties            unsafe.Pointer
	getPhysicalDeviceMemoryProperties      unsafe.Pointer
	getPhysicalDeviceQueueFamilyProperties unsafe.Pointer
	createDevice                           unsafe.Pointer
	destroySwapchainKHR                    unsafe.Pointer
	createSwapchainKHR                     unsafe.Pointer
	getSwapchainImagesKHR                  unsafe.Pointer
	destroySurfaceKHR                      unsafe.Pointer

	// device-level
	destroyDevice                unsafe.Pointer
	getDeviceQueue               unsafe.Pointer
	deviceWaitIdle               unsafe.Pointer
	allocateMemory                unsafe.Pointer
	freeMemory                    unsafe.Pointer
	mapMemory                     unsafe.Pointer
	unmapMemory                   unsafe.Pointer
	createBuffer                  unsafe.Pointer
	destroyBuffer                 unsafe.Pointer
	getBufferMemoryRequirements   unsafe.Pointer
	bindBufferMemory              unsafe.Pointer
	createImage                   unsafe.Pointer
	destroyImage                  unsafe.Pointer
	getImageMemoryRequirements    unsafe.Pointer
	bindImageMemory               unsafe.Pointer
	createImageView               unsafe.Pointer
	destroyImageView              unsafe.Pointer
	createSampler                 unsafe.Pointer
	destroySampler                unsafe.Pointer
	createShaderModule            unsafe.Pointer
	destroyShaderModule           unsafe.Pointer
	createDescriptorSetLayout     unsafe.Pointer
	destroyDescriptorSetLayout    unsafe.Pointer
	createDescriptorPool          unsafe.Pointer
	destroyDescriptorPool         unsafe.Pointer
	allocateDescriptorSets        unsafe.Pointer
	updateDescriptorSets          unsafe.Pointer
	createPipelineLayout          unsafe.Pointer
	destroyPipelineLayout         unsafe.Pointer
	createGraphicsPipelines       unsafe.Pointer
	createComputePipelines        unsafe.Pointer
	destroyPipeline               unsafe.Pointer
	createPipelineCache           unsafe.Pointer
	destroyPipelineCache          unsafe.Pointer
	getPipelineCacheData          unsafe.Pointer
	mergePipelineCaches           unsafe.Pointer
	createCommandPool             unsafe.Pointer
	destroyCommandPool            unsafe.Pointer
	resetCommandPool              unsafe.Pointer
	allocateCommandBuffers        unsafe.Pointer
	freeCommandBuffers            unsafe.Pointer
	beginCommandBuffer            unsafe.Pointer
	endCommandBuffer              unsafe.Pointer
	createSemaphore               unsafe.Pointer
	destroySemaphore              unsafe.Pointer
	getSemaphoreCounterValue      unsafe.Pointer
	waitSemaphores                unsafe.Pointer
	signalSemaphore               unsafe.Pointer
	createFence                   unsafe.Pointer
	destroyFence                  unsafe.Pointer
	waitForFences                 unsafe.Pointer
	resetFences                   unsafe.Pointer
	getFenceStatus                unsafe.Pointer
	queueSubmit2                  unsafe.Pointer
	queuePresentKHR               unsafe.Pointer
	acquireNextImageKHR           unsafe.Pointer
	cmdPipelineBarrier2           unsafe.Pointer
	cmdBeginRendering             unsafe.Pointer
	cmdEndRendering               unsafe.Pointer
	cmdBindPipeline               unsafe.Pointer
	cmdSetViewport                unsafe.Pointer
	cmdSetScissor                 unsafe.Pointer
	cmdPushConstants              unsafe.Pointer
	cmdBindDescriptorSets         unsafe.Pointer
	cmdBindIndexBuffer            unsafe.Pointer
	cmdDraw                       unsafe.Pointer
	cmdDrawIndexed                unsafe.Pointer
	cmdDrawIndexedIndirect        unsafe.Pointer
	cmdDrawIndexedIndirectCount   unsafe.Pointer
	cmdDrawIndirect               unsafe.Pointer
	cmdDrawIndirectCount          unsafe.Pointer
	cmdDispatch                   unsafe.Pointer
	cmdDispatchIndirect           unsafe.Pointer
	cmdCopyBuffer                 unsafe.Pointer
	cmdCopyImage                  unsafe.Pointer
	cmdCopyBufferToImage          unsafe.Pointer
	cmdCopyImageToBuffer          unsafe.Pointer
	cmdBlitImage                  unsafe.Pointer
	beginDebugUtilsLabelEXT       unsafe.Pointer
	endDebugUtilsLabelEXT         unsafe.Pointer
	setDebugUtilsObjectNameEXT    unsafe.Pointer
}

// NewCommands returns an unloaded Commands table.
func NewCommands() *Commands { return &Commands{} }

// LoadGlobal resolves the handful of functions callable before any
// instance exists.
func (c *Commands) LoadGlobal() error {
	c.createInstance = GetInstanceProcAddr(0, "vkCreateInstance")
	if c.createInstance == nil {
		return fmt.Errorf("vk: vkCreateInstance not found")
	}
	return nil
}

// LoadInstance resolves instance-level and WSI entry points. Must run
// after vkCreateInstance succeeds.
func (c *Commands) LoadInstance(instance Instance) error {
	c.destroyInstance = GetInstanceProcAddr(instance, "vkDestroyInstance")
	c.enumeratePhysicalDevices = GetInstanceProcAddr(instance, "vkEnumeratePhysicalDevices")
	c.getPhysicalDeviceProperties = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceProperties")
	c.getPhysicalDeviceMemoryProperties = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceMemoryProperties")
	c.getPhysicalDeviceQueueFamilyProperties = GetInstanceProcAddr(instance, "vkGetPhysicalDeviceQueueFamilyProperties")
	c.createDevice = GetInstanceProcAddr(instance, "vkCreateDevice")
	c.destroySurfaceKHR = GetInstanceProcAddr(instance, "vkDestroySurfaceKHR")
	c.createSwapchainKHR = GetInstanceProcAddr(instance, "vkCreateSwapchainKHR")
	c.destroySwapchainKHR = GetInstanceProcAddr(instance, "vkDestroySwapchainKHR")
	c.getSwapchainImagesKHR = GetInstanceProcAddr(instance, "vkGetSwapchainImagesKHR")

	SetDeviceProcAddr(instance)

	if c.destroyInstance == nil || c.enumeratePhysicalDevices == nil || c.createDevice == nil {
		return fmt.Errorf("vk: failed to load critical instance functions")
	}
	return nil
}

// LoadDevice resolves device-level entry points. Must run after
// vkCreateDevice succeeds.
func (c *Commands) LoadDevice(device Device) error {
	load := func(name string) unsafe.Pointer { return GetDeviceProcAddr(device, name) }

	c.destroyDevice = load("vkDestroyDevice")
	c.getDeviceQueue = load("vkGetDeviceQueue")
	c.deviceWaitIdle = load("vkDeviceWaitIdle")
	c.allocateMemory = load("vkAllocateMemory")
	c.freeMemory = load("vkFreeMemory")
	c.mapMemory = load("vkMapMemory")
	c.unmapMemory = load("vkUnmapMemory")
	c.createBuffer = load("vkCreateBuffer")
	c.destroyBuffer = load("vkDestroyBuffer")
	c.getBufferMemoryRequirements = load("vkGetBufferMemoryRequirements")
	c.bindBufferMemory = load("vkBindBufferMemory")
	c.createImage = load("vkCreateImage")
	c.destroyImage = load("vkDestroyImage")
	c.getImageMemoryRequirements = load("vkGetImageMemoryRequirements")
	c.bindImageMemory = load("vkBindImageMemory")
	c.createImageView = load("vkCreateImageView")
	c.destroyImageView = load("vkDestroyImageView")
	c.createSampler = load("vkCreateSampler")
	c.destroySampler = load("vkDestroySampler")
	c.createShaderModule = load("vkCreateShaderModule")
	c.destroyShaderModule = load("vkDestroyShaderModule")
	c.createDescriptorSetLayout = load("vkCreateDescriptorSetLayout")
	c.destroyDescriptorSetLayout = load("vkDestroyDescriptorSetLayout")
	c.createDescriptorPool = load("vkCreateDescriptorPool")
	c.destroyDescriptorPool = load("vkDestroyDescriptorPool")
	c.allocateDescriptorSets = load("vkAllocateDescriptorSets")
	c.updateDescriptorSets = load("vkUpdateDescriptorSets")
	c.createPipelineLayout = load("vkCreatePipelineLayout")
	c.destroyPipelineLayout = load("vkDestroyPipelineLayout")
	c.createGraphicsPipelines = load("vkCreateGraphicsPipelines")
	c.createComputePipelines = load("vkCreateComputePipelines")
	c.destroyPipeline = load("vkDestroyPipeline")
	c.createPipelineCache = load("vkCreatePipelineCache")
	c.destroyPipelineCache = load("vkDestroyPipelineCache")
	c.getPipelineCacheData = load("vkGetPipelineCacheData")
	c.mergePipelineCaches = load("vkMergePipelineCaches")
	c.createCommandPool = load("vkCreateCommandPool")
	c.destroyCommandPool = load("vkDestroyCommandPool")
	c.resetCommandPool = load("vkResetCommandPool")
	c.allocateCommandBuffers = load("vkAllocateCommandBuffers")
	c.freeCommandBuffers = load("vkFreeCommandBuffers")
	c.beginCommandBuffer = load("vkBeginCommandBuffer")
	c.endCommandBuffer = load("vkEndCommandBuffer")
	c.createSemaphore = load("vkCreateSemaphore")
	c.destroySemaphore = load("vkDestroySemaphore")
	c.getSemaphoreCounterValue = load("vkGetSemaphoreCounterValue")
	c.waitSemaphores = load("vkWaitSemaphores")
	c.signalSemaphore = load("vkSignalSemaphore")
	c.createFence = load("vkCreateFence")
	c.destroyFence = load("vkDestroyFence")
	c.waitForFences = load("vkWaitForFences")
	c.resetFences = load("vkResetFences")
	c.getFenceStatus = load("vkGetFenceStatus")
	c.queueSubmit2 = load("vkQueueSubmit2")
	c.queuePresentKHR = load("vkQueuePresentKHR")
	c.acquireNextImageKHR = load("vkAcquireNextImageKHR")
	c.cmdPipelineBarrier2 = load("vkCmdPipelineBarrier2")
	c.cmdBeginRendering = load("vkCmdBeginRendering")
	c.cmdEndRendering = load("vkCmdEndRendering")
	c.cmdBindPipeline = load("vkCmdBindPipeline")
	c.cmdSetViewport = load("vkCmdSetViewport")
	c.cmdSetScissor = load("vkCmdSetScissor")
	c.cmdPushConstants = load("vkCmdPushConstants")
	c.cmdBindDescriptorSets = load("vkCmdBindDescriptorSets")
	c.cmdBindIndexBuffer = load("vkCmdBindIndexBuffer")
	c.cmdDraw = load("vkCmdDraw")
	c.cmdDrawIndexed = load("vkCmdDrawIndexed")
	c.cmdDrawIndexedIndirect = load("vkCmdDrawIndexedIndirect")
	c.cmdDrawIndexedIndirectCount = load("vkCmdDrawIndexedIndirectCount")
	c.cmdDrawIndirect = load("vkCmdDrawIndirect")
	c.cmdDrawIndirectCount = load("vkCmdDrawIndirectCount")
	c.cmdDispatch = load("vkCmdDispatch")
	c.cmdDispatchIndirect = load("vkCmdDispatchIndirect")
	c.cmdCopyBuffer = load("vkCmdCopyBuffer")
	c.cmdCopyImage = load("vkCmdCopyImage")
	c.cmdCopyBufferToImage = load("vkCmdCopyBufferToImage")
	c.cmdCopyImageToBuffer = load("vkCmdCopyImageToBuffer")
	c.cmdBlitImage = load("vkCmdBlitImage")
	c.beginDebugUtilsLabelEXT = load("vkCmdBeginDebugUtilsLabelEXT")
	c.endDebugUtilsLabelEXT = load("vkCmdEndDebugUtilsLabelEXT")
	c.setDebugUtilsObjectNameEXT = load("vkSetDebugUtilsObjectNameEXT")

	if c.createBuffer == nil || c.beginCommandBuffer == nil || c.queueSubmit2 == nil {
		return fmt.Errorf("vk: failed to load critical device functions (is VK_KHR_synchronization2 enabled?)")
	}
	return nil
}

// --- object lifetime ---

func (c *Commands) CreateInstance(info unsafe.Pointer, out *Instance) Result {
	return callResult(c.createInstance, []argKind{argPtr, argPtr, argPtr},
		[]unsafe.Pointer{ptrArg(info), ptrArg(nil), unsafe.Pointer(out)})
}

func (c *Commands) DestroyInstance(instance Instance) {
	callVoid(c.destroyInstance, []argKind{argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&instance), ptrArg(nil)})
}

func (c *Commands) EnumeratePhysicalDevices(instance Instance, count *uint32, out unsafe.Pointer) Result {
	return callResult(c.enumeratePhysicalDevices, []argKind{argU64, argPtr, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&instance), unsafe.Pointer(count), ptrArg(out)})
}

func (c *Commands) GetPhysicalDeviceProperties(pd PhysicalDevice, out *PhysicalDeviceProperties) {
	callVoid(c.getPhysicalDeviceProperties, []argKind{argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(out)})
}

func (c *Commands) GetPhysicalDeviceMemoryProperties(pd PhysicalDevice, out *PhysicalDeviceMemoryProperties) {
	callVoid(c.getPhysicalDeviceMemoryProperties, []argKind{argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(out)})
}

func (c *Commands) GetPhysicalDeviceQueueFamilyProperties(pd PhysicalDevice, count *uint32, out unsafe.Pointer) {
	callVoid(c.getPhysicalDeviceQueueFamilyProperties, []argKind{argU64, argPtr, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&pd), unsafe.Pointer(count), ptrArg(out)})
}

func (c *Commands) CreateDevice(pd PhysicalDevice, info unsafe.Pointer, out *Device) Result {
	return callResult(c.createDevice, []argKind{argU64, argPtr, argPtr, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&pd), ptrArg(info), ptrArg(nil), unsafe.Pointer(out)})
}

func (c *Commands) DestroyDevice(device Device) {
	callVoid(c.destroyDevice, []argKind{argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(nil)})
}

func (c *Commands) GetDeviceQueue(device Device, familyIndex, queueIndex uint32, out *Queue) {
	callVoid(c.getDeviceQueue, []argKind{argU64, argU32, argU32, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&familyIndex), unsafe.Pointer(&queueIndex), unsafe.Pointer(out)})
}

func (c *Commands) DeviceWaitIdle(device Device) Result {
	return callResult(c.deviceWaitIdle, []argKind{argU64}, []unsafe.Pointer{unsafe.Pointer(&device)})
}

// --- memory ---

func (c *Commands) AllocateMemory(device Device, info unsafe.Pointer, out *DeviceMemory) Result {
	return callResult(c.allocateMemory, []argKind{argU64, argPtr, argPtr, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(info), ptrArg(nil), unsafe.Pointer(out)})
}

func (c *Commands) FreeMemory(device Device, mem DeviceMemory) {
	callVoid(c.freeMemory, []argKind{argU64, argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&mem), ptrArg(nil)})
}

func (c *Commands) MapMemory(device Device, mem DeviceMemory, offset, size uint64, out *unsafe.Pointer) Result {
	var flags uint32
	return callResult(c.mapMemory, []argKind{argU64, argU64, argU64, argU64, argU32, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&mem), unsafe.Pointer(&offset), unsafe.Pointer(&size), unsafe.Pointer(&flags), unsafe.Pointer(out)})
}

func (c *Commands) UnmapMemory(device Device, mem DeviceMemory) {
	callVoid(c.unmapMemory, []argKind{argU64, argU64}, []unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&mem)})
}

// --- buffers & images ---

func (c *Commands) CreateBuffer(device Device, info unsafe.Pointer, out *Buffer) Result {
	return callResult(c.createBuffer, []argKind{argU64, argPtr, argPtr, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(info), ptrArg(nil), unsafe.Pointer(out)})
}

func (c *Commands) DestroyBuffer(device Device, buf Buffer) {
	callVoid(c.destroyBuffer, []argKind{argU64, argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&buf), ptrArg(nil)})
}

func (c *Commands) GetBufferMemoryRequirements(device Device, buf Buffer, out *MemoryRequirements) {
	callVoid(c.getBufferMemoryRequirements, []argKind{argU64, argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&buf), unsafe.Pointer(out)})
}

func (c *Commands) BindBufferMemory(device Device, buf Buffer, mem DeviceMemory, offset uint64) Result {
	return callResult(c.bindBufferMemory, []argKind{argU64, argU64, argU64, argU64},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&buf), unsafe.Pointer(&mem), unsafe.Pointer(&offset)})
}

func (c *Commands) CreateImage(device Device, info unsafe.Pointer, out *Image) Result {
	return callResult(c.createImage, []argKind{argU64, argPtr, argPtr, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(info), ptrArg(nil), unsafe.Pointer(out)})
}

func (c *Commands) DestroyImage(device Device, img Image) {
	callVoid(c.destroyImage, []argKind{argU64, argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&img), ptrArg(nil)})
}

func (c *Commands) GetImageMemoryRequirements(device Device, img Image, out *MemoryRequirements) {
	callVoid(c.getImageMemoryRequirements, []argKind{argU64, argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&img), unsafe.Pointer(out)})
}

func (c *Commands) BindImageMemory(device Device, img Image, mem DeviceMemory, offset uint64) Result {
	return callResult(c.bindImageMemory, []argKind{argU64, argU64, argU64, argU64},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&img), unsafe.Pointer(&mem), unsafe.Pointer(&offset)})
}

func (c *Commands) CreateImageView(device Device, info unsafe.Pointer, out *ImageView) Result {
	return callResult(c.createImageView, []argKind{argU64, argPtr, argPtr, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(info), ptrArg(nil), unsafe.Pointer(out)})
}

func (c *Commands) DestroyImageView(device Device, view ImageView) {
	callVoid(c.destroyImageView, []argKind{argU64, argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&view), ptrArg(nil)})
}

func (c *Commands) CreateSampler(device Device, info unsafe.Pointer, out *Sampler) Result {
	return callResult(c.createSampler, []argKind{argU64, argPtr, argPtr, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(info), ptrArg(nil), unsafe.Pointer(out)})
}

func (c *Commands) DestroySampler(device Device, s Sampler) {
	callVoid(c.destroySampler, []argKind{argU64, argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&s), ptrArg(nil)})
}

// --- shaders & pipelines ---

func (c *Commands) CreateShaderModule(device Device, info unsafe.Pointer, out *ShaderModule) Result {
	return callResult(c.createShaderModule, []argKind{argU64, argPtr, argPtr, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(info), ptrArg(nil), unsafe.Pointer(out)})
}

func (c *Commands) DestroyShaderModule(device Device, m ShaderModule) {
	callVoid(c.destroyShaderModule, []argKind{argU64, argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&m), ptrArg(nil)})
}

func (c *Commands) CreateDescriptorSetLayout(device Device, info unsafe.Pointer, out *DescriptorSetLayout) Result {
	return callResult(c.createDescriptorSetLayout, []argKind{argU64, argPtr, argPtr, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(info), ptrArg(nil), unsafe.Pointer(out)})
}

func (c *Commands) DestroyDescriptorSetLayout(device Device, l DescriptorSetLayout) {
	callVoid(c.destroyDescriptorSetLayout, []argKind{argU64, argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&l), ptrArg(nil)})
}

func (c *Commands) CreateDescriptorPool(device Device, info unsafe.Pointer, out *DescriptorPool) Result {
	return callResult(c.createDescriptorPool, []argKind{argU64, argPtr, argPtr, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(info), ptrArg(nil), unsafe.Pointer(out)})
}

func (c *Commands) DestroyDescriptorPool(device Device, p DescriptorPool) {
	callVoid(c.destroyDescriptorPool, []argKind{argU64, argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&p), ptrArg(nil)})
}

func (c *Commands) AllocateDescriptorSets(device Device, info unsafe.Pointer, out unsafe.Pointer) Result {
	return callResult(c.allocateDescriptorSets, []argKind{argU64, argPtr, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(info), ptrArg(out)})
}

func (c *Commands) UpdateDescriptorSets(device Device, writeCount uint32, writes unsafe.Pointer, copyCount uint32, copies unsafe.Pointer) {
	callVoid(c.updateDescriptorSets, []argKind{argU64, argU32, argPtr, argU32, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&writeCount), ptrArg(writes), unsafe.Pointer(&copyCount), ptrArg(copies)})
}

func (c *Commands) CreatePipelineLayout(device Device, info unsafe.Pointer, out *PipelineLayout) Result {
	return callResult(c.createPipelineLayout, []argKind{argU64, argPtr, argPtr, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(info), ptrArg(nil), unsafe.Pointer(out)})
}

func (c *Commands) DestroyPipelineLayout(device Device, l PipelineLayout) {
	callVoid(c.destroyPipelineLayout, []argKind{argU64, argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&l), ptrArg(nil)})
}

func (c *Commands) CreateGraphicsPipelines(device Device, cache PipelineCache, count uint32, infos unsafe.Pointer, out unsafe.Pointer) Result {
	return callResult(c.createGraphicsPipelines, []argKind{argU64, argU64, argU32, argPtr, argPtr, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&cache), unsafe.Pointer(&count), ptrArg(infos), ptrArg(nil), ptrArg(out)})
}

func (c *Commands) CreateComputePipelines(device Device, cache PipelineCache, count uint32, infos unsafe.Pointer, out unsafe.Pointer) Result {
	return callResult(c.createComputePipelines, []argKind{argU64, argU64, argU32, argPtr, argPtr, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&cache), unsafe.Pointer(&count), ptrArg(infos), ptrArg(nil), ptrArg(out)})
}

func (c *Commands) DestroyPipeline(device Device, p Pipeline) {
	callVoid(c.destroyPipeline, []argKind{argU64, argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&p), ptrArg(nil)})
}

func (c *Commands) CreatePipelineCache(device Device, info unsafe.Pointer, out *PipelineCache) Result {
	return callResult(c.createPipelineCache, []argKind{argU64, argPtr, argPtr, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(info), ptrArg(nil), unsafe.Pointer(out)})
}

func (c *Commands) DestroyPipelineCache(device Device, cache PipelineCache) {
	callVoid(c.destroyPipelineCache, []argKind{argU64, argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&cache), ptrArg(nil)})
}

func (c *Commands) GetPipelineCacheData(device Device, cache PipelineCache, size *uint64, data unsafe.Pointer) Result {
	return callResult(c.getPipelineCacheData, []argKind{argU64, argU64, argPtr, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&cache), unsafe.Pointer(size), ptrArg(data)})
}

// --- command pools & buffers ---

func (c *Commands) CreateCommandPool(device Device, info unsafe.Pointer, out *CommandPool) Result {
	return callResult(c.createCommandPool, []argKind{argU64, argPtr, argPtr, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(info), ptrArg(nil), unsafe.Pointer(out)})
}

func (c *Commands) DestroyCommandPool(device Device, pool CommandPool) {
	callVoid(c.destroyCommandPool, []argKind{argU64, argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool), ptrArg(nil)})
}

func (c *Commands) ResetCommandPool(device Device, pool CommandPool, flags uint32) Result {
	return callResult(c.resetCommandPool, []argKind{argU64, argU64, argU32},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool), unsafe.Pointer(&flags)})
}

func (c *Commands) AllocateCommandBuffers(device Device, info unsafe.Pointer, out unsafe.Pointer) Result {
	return callResult(c.allocateCommandBuffers, []argKind{argU64, argPtr, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(info), ptrArg(out)})
}

func (c *Commands) FreeCommandBuffers(device Device, pool CommandPool, count uint32, buffers unsafe.Pointer) {
	callVoid(c.freeCommandBuffers, []argKind{argU64, argU64, argU32, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&pool), unsafe.Pointer(&count), ptrArg(buffers)})
}

func (c *Commands) BeginCommandBuffer(cb CommandBuffer, info unsafe.Pointer) Result {
	return callResult(c.beginCommandBuffer, []argKind{argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&cb), ptrArg(info)})
}

func (c *Commands) EndCommandBuffer(cb CommandBuffer) Result {
	return callResult(c.endCommandBuffer, []argKind{argU64}, []unsafe.Pointer{unsafe.Pointer(&cb)})
}

// --- semaphores & fences ---

func (c *Commands) CreateSemaphore(device Device, info unsafe.Pointer, out *Semaphore) Result {
	return callResult(c.createSemaphore, []argKind{argU64, argPtr, argPtr, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(info), ptrArg(nil), unsafe.Pointer(out)})
}

func (c *Commands) DestroySemaphore(device Device, s Semaphore) {
	callVoid(c.destroySemaphore, []argKind{argU64, argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&s), ptrArg(nil)})
}

func (c *Commands) GetSemaphoreCounterValue(device Device, s Semaphore, out *uint64) Result {
	return callResult(c.getSemaphoreCounterValue, []argKind{argU64, argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&s), unsafe.Pointer(out)})
}

func (c *Commands) WaitSemaphores(device Device, waitInfo unsafe.Pointer, timeout uint64) Result {
	return callResult(c.waitSemaphores, []argKind{argU64, argPtr, argU64},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(waitInfo), unsafe.Pointer(&timeout)})
}

func (c *Commands) SignalSemaphore(device Device, signalInfo unsafe.Pointer) Result {
	return callResult(c.signalSemaphore, []argKind{argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(signalInfo)})
}

func (c *Commands) CreateFence(device Device, info unsafe.Pointer, out *Fence) Result {
	return callResult(c.createFence, []argKind{argU64, argPtr, argPtr, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(info), ptrArg(nil), unsafe.Pointer(out)})
}

func (c *Commands) DestroyFence(device Device, f Fence) {
	callVoid(c.destroyFence, []argKind{argU64, argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&f), ptrArg(nil)})
}

func (c *Commands) WaitForFences(device Device, count uint32, fences unsafe.Pointer, waitAll uint32, timeout uint64) Result {
	return callResult(c.waitForFences, []argKind{argU64, argU32, argPtr, argU32, argU64},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&count), ptrArg(fences), unsafe.Pointer(&waitAll), unsafe.Pointer(&timeout)})
}

func (c *Commands) ResetFences(device Device, count uint32, fences unsafe.Pointer) Result {
	return callResult(c.resetFences, []argKind{argU64, argU32, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&count), ptrArg(fences)})
}

func (c *Commands) GetFenceStatus(device Device, f Fence) Result {
	return callResult(c.getFenceStatus, []argKind{argU64, argU64},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&f)})
}

// --- submission & presentation ---

func (c *Commands) QueueSubmit2(queue Queue, count uint32, submits unsafe.Pointer, fence Fence) Result {
	return callResult(c.queueSubmit2, []argKind{argU64, argU32, argPtr, argU64},
		[]unsafe.Pointer{unsafe.Pointer(&queue), unsafe.Pointer(&count), ptrArg(submits), unsafe.Pointer(&fence)})
}

func (c *Commands) QueuePresentKHR(queue Queue, info unsafe.Pointer) Result {
	return callResult(c.queuePresentKHR, []argKind{argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&queue), ptrArg(info)})
}

func (c *Commands) AcquireNextImageKHR(device Device, swapchain SwapchainKHR, timeout uint64, sem Semaphore, fence Fence, imageIndex *uint32) Result {
	return callResult(c.acquireNextImageKHR, []argKind{argU64, argU64, argU64, argU64, argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&swapchain), unsafe.Pointer(&timeout), unsafe.Pointer(&sem), unsafe.Pointer(&fence), unsafe.Pointer(imageIndex)})
}

func (c *Commands) CreateSwapchainKHR(device Device, info unsafe.Pointer, out *SwapchainKHR) Result {
	return callResult(c.createSwapchainKHR, []argKind{argU64, argPtr, argPtr, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(info), ptrArg(nil), unsafe.Pointer(out)})
}

func (c *Commands) DestroySwapchainKHR(device Device, sc SwapchainKHR) {
	callVoid(c.destroySwapchainKHR, []argKind{argU64, argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&sc), ptrArg(nil)})
}

func (c *Commands) GetSwapchainImagesKHR(device Device, sc SwapchainKHR, count *uint32, images unsafe.Pointer) Result {
	return callResult(c.getSwapchainImagesKHR, []argKind{argU64, argU64, argPtr, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&sc), unsafe.Pointer(count), ptrArg(images)})
}

// --- command recording ---

func (c *Commands) CmdPipelineBarrier2(cb CommandBuffer, depInfo unsafe.Pointer) {
	callVoid(c.cmdPipelineBarrier2, []argKind{argU64, argPtr}, []unsafe.Pointer{unsafe.Pointer(&cb), ptrArg(depInfo)})
}

func (c *Commands) CmdBeginRendering(cb CommandBuffer, info unsafe.Pointer) {
	callVoid(c.cmdBeginRendering, []argKind{argU64, argPtr}, []unsafe.Pointer{unsafe.Pointer(&cb), ptrArg(info)})
}

func (c *Commands) CmdEndRendering(cb CommandBuffer) {
	callVoid(c.cmdEndRendering, []argKind{argU64}, []unsafe.Pointer{unsafe.Pointer(&cb)})
}

func (c *Commands) CmdBindPipeline(cb CommandBuffer, bindPoint uint32, pipeline Pipeline) {
	callVoid(c.cmdBindPipeline, []argKind{argU64, argU32, argU64},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&bindPoint), unsafe.Pointer(&pipeline)})
}

func (c *Commands) CmdSetViewport(cb CommandBuffer, first, count uint32, viewports unsafe.Pointer) {
	callVoid(c.cmdSetViewport, []argKind{argU64, argU32, argU32, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&first), unsafe.Pointer(&count), ptrArg(viewports)})
}

func (c *Commands) CmdSetScissor(cb CommandBuffer, first, count uint32, scissors unsafe.Pointer) {
	callVoid(c.cmdSetScissor, []argKind{argU64, argU32, argU32, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&first), unsafe.Pointer(&count), ptrArg(scissors)})
}

func (c *Commands) CmdPushConstants(cb CommandBuffer, layout PipelineLayout, stageFlags, offset, size uint32, values unsafe.Pointer) {
	callVoid(c.cmdPushConstants, []argKind{argU64, argU64, argU32, argU32, argU32, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&layout), unsafe.Pointer(&stageFlags), unsafe.Pointer(&offset), unsafe.Pointer(&size), ptrArg(values)})
}

func (c *Commands) CmdBindDescriptorSets(cb CommandBuffer, bindPoint uint32, layout PipelineLayout, firstSet, count uint32, sets unsafe.Pointer, dynCount uint32, dynOffsets unsafe.Pointer) {
	callVoid(c.cmdBindDescriptorSets, []argKind{argU64, argU32, argU64, argU32, argU32, argPtr, argU32, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&bindPoint), unsafe.Pointer(&layout), unsafe.Pointer(&firstSet), unsafe.Pointer(&count), ptrArg(sets), unsafe.Pointer(&dynCount), ptrArg(dynOffsets)})
}

func (c *Commands) CmdBindIndexBuffer(cb CommandBuffer, buf Buffer, offset uint64, indexType uint32) {
	callVoid(c.cmdBindIndexBuffer, []argKind{argU64, argU64, argU64, argU32},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&buf), unsafe.Pointer(&offset), unsafe.Pointer(&indexType)})
}

func (c *Commands) CmdDraw(cb CommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	callVoid(c.cmdDraw, []argKind{argU64, argU32, argU32, argU32, argU32},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&vertexCount), unsafe.Pointer(&instanceCount), unsafe.Pointer(&firstVertex), unsafe.Pointer(&firstInstance)})
}

func (c *Commands) CmdDrawIndexed(cb CommandBuffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	callVoid(c.cmdDrawIndexed, []argKind{argU64, argU32, argU32, argU32, argI32, argU32},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&indexCount), unsafe.Pointer(&instanceCount), unsafe.Pointer(&firstIndex), unsafe.Pointer(&vertexOffset), unsafe.Pointer(&firstInstance)})
}

func (c *Commands) CmdDrawIndexedIndirect(cb CommandBuffer, buf Buffer, offset uint64, drawCount, stride uint32) {
	callVoid(c.cmdDrawIndexedIndirect, []argKind{argU64, argU64, argU64, argU32, argU32},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&buf), unsafe.Pointer(&offset), unsafe.Pointer(&drawCount), unsafe.Pointer(&stride)})
}

func (c *Commands) CmdDrawIndexedIndirectCount(cb CommandBuffer, buf Buffer, offset uint64, countBuf Buffer, countOffset uint64, maxDrawCount, stride uint32) {
	callVoid(c.cmdDrawIndexedIndirectCount, []argKind{argU64, argU64, argU64, argU64, argU64, argU32, argU32},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&buf), unsafe.Pointer(&offset), unsafe.Pointer(&countBuf), unsafe.Pointer(&countOffset), unsafe.Pointer(&maxDrawCount), unsafe.Pointer(&stride)})
}

func (c *Commands) CmdDrawIndirect(cb CommandBuffer, buf Buffer, offset uint64, drawCount, stride uint32) {
	callVoid(c.cmdDrawIndirect, []argKind{argU64, argU64, argU64, argU32, argU32},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&buf), unsafe.Pointer(&offset), unsafe.Pointer(&drawCount), unsafe.Pointer(&stride)})
}

func (c *Commands) CmdDrawIndirectCount(cb CommandBuffer, buf Buffer, offset uint64, countBuf Buffer, countOffset uint64, maxDrawCount, stride uint32) {
	callVoid(c.cmdDrawIndirectCount, []argKind{argU64, argU64, argU64, argU64, argU64, argU32, argU32},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&buf), unsafe.Pointer(&offset), unsafe.Pointer(&countBuf), unsafe.Pointer(&countOffset), unsafe.Pointer(&maxDrawCount), unsafe.Pointer(&stride)})
}

func (c *Commands) CmdDispatch(cb CommandBuffer, x, y, z uint32) {
	callVoid(c.cmdDispatch, []argKind{argU64, argU32, argU32, argU32},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&x), unsafe.Pointer(&y), unsafe.Pointer(&z)})
}

func (c *Commands) CmdDispatchIndirect(cb CommandBuffer, buf Buffer, offset uint64) {
	callVoid(c.cmdDispatchIndirect, []argKind{argU64, argU64, argU64},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&buf), unsafe.Pointer(&offset)})
}

func (c *Commands) CmdCopyBuffer(cb CommandBuffer, src, dst Buffer, count uint32, regions unsafe.Pointer) {
	callVoid(c.cmdCopyBuffer, []argKind{argU64, argU64, argU64, argU32, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&src), unsafe.Pointer(&dst), unsafe.Pointer(&count), ptrArg(regions)})
}

func (c *Commands) CmdCopyImage(cb CommandBuffer, src Image, srcLayout uint32, dst Image, dstLayout uint32, count uint32, regions unsafe.Pointer) {
	callVoid(c.cmdCopyImage, []argKind{argU64, argU64, argU32, argU64, argU32, argU32, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&src), unsafe.Pointer(&srcLayout), unsafe.Pointer(&dst), unsafe.Pointer(&dstLayout), unsafe.Pointer(&count), ptrArg(regions)})
}

// CmdCopyBufferToImage wraps vkCmdCopyBufferToImage — a distinct command
// kind from CmdCopyImageToBuffer below, never overloaded on direction.
func (c *Commands) CmdCopyBufferToImage(cb CommandBuffer, src Buffer, dst Image, dstLayout, count uint32, regions unsafe.Pointer) {
	callVoid(c.cmdCopyBufferToImage, []argKind{argU64, argU64, argU64, argU32, argU32, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&src), unsafe.Pointer(&dst), unsafe.Pointer(&dstLayout), unsafe.Pointer(&count), ptrArg(regions)})
}

func (c *Commands) CmdCopyImageToBuffer(cb CommandBuffer, src Image, srcLayout uint32, dst Buffer, count uint32, regions unsafe.Pointer) {
	callVoid(c.cmdCopyImageToBuffer, []argKind{argU64, argU64, argU32, argU64, argU32, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&src), unsafe.Pointer(&srcLayout), unsafe.Pointer(&dst), unsafe.Pointer(&count), ptrArg(regions)})
}

func (c *Commands) CmdBlitImage(cb CommandBuffer, src Image, srcLayout uint32, dst Image, dstLayout, count, filter uint32, regions unsafe.Pointer) {
	callVoid(c.cmdBlitImage, []argKind{argU64, argU64, argU32, argU64, argU32, argU32, argPtr, argU32},
		[]unsafe.Pointer{unsafe.Pointer(&cb), unsafe.Pointer(&src), unsafe.Pointer(&srcLayout), unsafe.Pointer(&dst), unsafe.Pointer(&dstLayout), unsafe.Pointer(&count), ptrArg(regions), unsafe.Pointer(&filter)})
}

// --- debug utils (VK_EXT_debug_utils) ---

func (c *Commands) CmdBeginDebugUtilsLabel(cb CommandBuffer, label unsafe.Pointer) {
	if c.beginDebugUtilsLabelEXT == nil {
		return
	}
	callVoid(c.beginDebugUtilsLabelEXT, []argKind{argU64, argPtr}, []unsafe.Pointer{unsafe.Pointer(&cb), ptrArg(label)})
}

func (c *Commands) CmdEndDebugUtilsLabel(cb CommandBuffer) {
	if c.endDebugUtilsLabelEXT == nil {
		return
	}
	callVoid(c.endDebugUtilsLabelEXT, []argKind{argU64}, []unsafe.Pointer{unsafe.Pointer(&cb)})
}

func (c *Commands) SetDebugUtilsObjectName(device Device, info unsafe.Pointer) Result {
	if c.setDebugUtilsObjectNameEXT == nil {
		return Success
	}
	return callResult(c.setDebugUtilsObjectNameEXT, []argKind{argU64, argPtr},
		[]unsafe.Pointer{unsafe.Pointer(&device), ptrArg(info)})
}
