// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package rhi

import (
	"fmt"
	"unsafe"

	"github.com/tundraforge/rhi/internal/vk"
	"github.com/tundraforge/rhi/types"
)

type swapchainResource struct {
	swapchain vk.SwapchainKHR
	surface   vk.SurfaceKHR
	images    []vk.Image
	format    types.TextureFormat
	extent    types.Extent3D
	name      string
}

// CreateSwapchain creates a presentable VkSwapchainKHR bound to an
// already-created platform surface. This RHI does not create the
// VkSurfaceKHR itself — that call is unavoidably per-platform
// (vkCreateWin32SurfaceKHR, vkCreateWaylandSurfaceKHR, ...) and lives
// outside this binding's scope — so WindowHandle is expected to already
// be a live VkSurfaceKHR handle by the time it reaches here.
func (d *Device) CreateSwapchain(info types.SwapchainCreateInfo) (types.Handle, error) {
	surface := vk.SurfaceKHR(info.WindowHandle)

	ci := vk.SwapchainCreateInfoKHR{
		SType:            vk.StructureTypeSwapchainCreateInfoKHR,
		Surface:          surface,
		MinImageCount:    d.config.FramesInFlight + 1,
		ImageFormat:      vkFormat(info.Format),
		ImageExtent:      vk.Extent2D{Width: info.Width, Height: info.Height},
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageColorAttachmentBit | vk.ImageUsageTransferDstBit,
		ImageSharingMode: 0,
		PreTransform:     1, // VK_SURFACE_TRANSFORM_IDENTITY_BIT_KHR
		CompositeAlpha:   1, // VK_COMPOSITE_ALPHA_OPAQUE_BIT_KHR
		PresentMode:      vk.PresentModeFifoKHR,
		Clipped:          1,
	}

	var swapchain vk.SwapchainKHR
	if res := d.commands.CreateSwapchainKHR(d.handle, unsafe.Pointer(&ci), &swapchain); res != vk.Success {
		return types.Handle(0), fmt.Errorf("rhi: vkCreateSwapchainKHR returned %s", res)
	}

	var count uint32
	d.commands.GetSwapchainImagesKHR(d.handle, swapchain, &count, nil)
	images := make([]vk.Image, count)
	if count > 0 {
		d.commands.GetSwapchainImagesKHR(d.handle, swapchain, &count, unsafe.Pointer(&images[0]))
	}

	res := swapchainResource{
		swapchain: swapchain,
		surface:   surface,
		images:    images,
		format:    info.Format,
		extent:    types.Extent3D{Width: info.Width, Height: info.Height, DepthOrArrayLayers: 1},
		name:      info.Name,
	}
	h := d.swapchains.Add(res)
	d.tracker.AddResource(h, func() {
		d.commands.DestroySwapchainKHR(d.handle, swapchain)
	})

	d.setDebugName(vk.ObjectTypeSwapchainKHR, uint64(swapchain), info.Name)
	Logger().Info("swapchain created", "handle", h, "width", info.Width, "height", info.Height, "images", count)
	return h, nil
}

// DestroySwapchain drops the device's reference to h.
func (d *Device) DestroySwapchain(h types.Handle) error {
	if !d.swapchains.IsValid(h) {
		return ErrInvalidHandle
	}
	d.swapchains.Destroy(h)
	d.tracker.RemoveReference(h)
	return nil
}
