// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

// Command triangle is a minimal integration smoke test for the render
// hardware interface: it opens a device, builds a single-frame graph that
// draws a red triangle into an offscreen 16x16 RGBA8 target, and submits
// it (the single-triangle, one-frame scenario).
// There is no window or swapchain here — CreateSwapchain needs a live
// platform surface, which this smoke test deliberately avoids so it can
// run on any machine with a Vulkan driver.
package main

import (
	"fmt"
	"os"

	"github.com/tundraforge/rhi/framegraph"
	"github.com/tundraforge/rhi/rhi"
	"github.com/tundraforge/rhi/types"
)

const (
	targetWidth  = 16
	targetHeight = 16
)

// trianglePositions is three clip-space vertices wound counter-clockwise,
// packed tightly with no index buffer (scenario 1 draws 3 vertices, 1
// instance, no indices).
var trianglePositions = []float32{
	0.0, -0.5,
	0.5, 0.5,
	-0.5, 0.5,
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "triangle: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	device, err := rhi.NewDevice(rhi.Config{
		FramesInFlight:   1,
		EnableValidation: true,
	})
	if err != nil {
		return fmt.Errorf("opening device: %w", err)
	}
	defer device.Destroy()

	vs, fs, err := loadShaders(device)
	if err != nil {
		return err
	}
	defer device.DestroyShader(vs)
	defer device.DestroyShader(fs)

	pipeline, err := device.CreateGraphicsPipeline(types.GraphicsPipelineCreateInfo{
		VertexShader:   vs,
		FragmentShader: fs,
		VertexBuffers: []types.VertexBufferLayout{{
			Stride: 2 * 4,
			Attributes: []types.VertexAttribute{
				{Format: types.TextureFormatRG32Float, Offset: 0, Location: 0},
			},
		}},
		ColorFormats: []types.TextureFormat{types.TextureFormatRGBA8Unorm},
		CullMode:     types.CullModeNone,
		Name:         "triangle-pipeline",
	})
	if err != nil {
		return fmt.Errorf("creating pipeline: %w", err)
	}
	defer device.DestroyGraphicsPipeline(pipeline)

	vertexBuffer, err := device.CreateBuffer(types.BufferCreateInfo{
		Size:       uint64(len(trianglePositions) * 4),
		Usage:      types.BufferUsageVertex,
		MemoryType: types.MemoryTypeUpload,
		Name:       "triangle-vertices",
	})
	if err != nil {
		return fmt.Errorf("creating vertex buffer: %w", err)
	}
	defer device.DestroyBuffer(vertexBuffer)

	if err := device.UpdateBuffer(vertexBuffer, types.BufferUpdateRegion{
		SrcBytes: floatsToBytes(trianglePositions),
	}); err != nil {
		return fmt.Errorf("uploading vertices: %w", err)
	}

	recorder := device.RegisterRecorder()
	graph := framegraph.New(device, recorder)

	graph.AddPass("draw-triangle", types.QueueGraphics, func(b *framegraph.Builder) framegraph.RecordFn {
		target := b.CreateTexture("color-target", types.TextureCreateInfo{
			Kind:          types.TextureDimension2D,
			Format:        types.TextureFormatRGBA8Unorm,
			Usage:         types.TextureUsageColorAttachment | types.TextureUsageTransferSrc,
			MemoryType:    types.MemoryTypeGPU,
			Size:          types.Extent3D{Width: targetWidth, Height: targetHeight, DepthOrArrayLayers: 1},
			MipLevelCount: 1,
			Name:          "color-target",
		})
		target = b.WriteTexture(target, types.AccessColorAttachmentWrite)
		b.SideEffect() // nothing downstream reads the target; it must still render.

		return func(enc *rhi.Encoder, reg *framegraph.Registry) {
			view := reg.Texture(target)
			enc.BeginRendering(rhi.RenderingInfo{
				Extent: types.Extent3D{Width: targetWidth, Height: targetHeight, DepthOrArrayLayers: 1},
				ColorAttachments: []rhi.ColorAttachment{{
					View:       view,
					LoadOp:     rhi.LoadOpClear,
					StoreOp:    rhi.StoreOpStore,
					ClearColor: [4]float32{1, 0, 0, 1},
				}},
			})
			enc.BindGraphicsPipeline(pipeline)
			enc.SetViewport(0, 0, targetWidth, targetHeight, 0, 1)
			enc.SetScissor(0, 0, targetWidth, targetHeight)
			enc.Draw(3, 1, 0, 0)
			enc.EndRendering()
		}
	})

	if err := graph.Execute(nil); err != nil {
		return fmt.Errorf("executing frame graph: %w", err)
	}

	fmt.Println("rendered one frame: 3 vertices, 1 instance, no indices")
	return nil
}

func loadShaders(device *rhi.Device) (vs, fs types.Handle, err error) {
	vs, err = device.CreateShader(types.ShaderCreateInfo{
		Stage:      types.ShaderStageVertex,
		SPIRVBytes: triangleVertSPIRV,
		Name:       "triangle.vert",
	})
	if err != nil {
		return 0, 0, fmt.Errorf("creating vertex shader: %w", err)
	}

	fs, err = device.CreateShader(types.ShaderCreateInfo{
		Stage:      types.ShaderStageFragment,
		SPIRVBytes: triangleFragSPIRV,
		Name:       "triangle.frag",
	})
	if err != nil {
		device.DestroyShader(vs)
		return 0, 0, fmt.Errorf("creating fragment shader: %w", err)
	}
	return vs, fs, nil
}

func floatsToBytes(fs []float32) []byte {
	out := make([]byte, len(fs)*4)
	for i, f := range fs {
		bits := float32bits(f)
		out[i*4+0] = byte(bits)
		out[i*4+1] = byte(bits >> 8)
		out[i*4+2] = byte(bits >> 16)
		out[i*4+3] = byte(bits >> 24)
	}
	return out
}
