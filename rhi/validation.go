// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package rhi

import (
	"fmt"
	"sync"

	"github.com/tundraforge/rhi/handle"
	"github.com/tundraforge/rhi/types"
)

// Validator wraps a Device with the pre-submit invariant checks (§4.10)
// that are free of GPU state: buffer/shader/texture create-time shape
// checks, and at submit time, that every handle a recorded command
// references is non-null and that render target attachments are
// compatible with the usage their texture was created with. A violation
// is a caller bug, not a recoverable condition, so checks panic rather
// than return an error (wrapped in ErrValidation so callers can recover
// and inspect it with errors.Is if they choose to).
//
// Validator keeps its own shadow state (here, just the usage flags of
// every live texture view) rather than reaching into Device's handle
// tables directly, so the checks below read the same whether or not
// Validator happens to live in the same package as Device.
type Validator struct {
	device *Device

	mu        sync.RWMutex
	viewUsage map[types.Handle]types.TextureUsage
}

// NewValidator wraps d. Every Create*/Destroy*/Submit call an application
// makes should go through the returned Validator instead of d directly;
// Validator delegates to d after its checks pass.
func NewValidator(d *Device) *Validator {
	return &Validator{device: d, viewUsage: make(map[types.Handle]types.TextureUsage)}
}

func validationPanic(format string, args ...any) {
	panic(fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...)))
}

func requireHandle(h types.Handle, what string) {
	if h.IsNull() {
		validationPanic("%s references a null handle", what)
	}
}

// CreateBuffer checks info.Size > 0 before delegating.
func (v *Validator) CreateBuffer(info types.BufferCreateInfo) (types.Handle, error) {
	if info.Size == 0 {
		validationPanic("buffer %q: size must be > 0", info.Name)
	}
	return v.device.CreateBuffer(info)
}

func (v *Validator) DestroyBuffer(h types.Handle) error { return v.device.DestroyBuffer(h) }

func (v *Validator) UpdateBuffer(h types.Handle, region types.BufferUpdateRegion) error {
	return v.device.UpdateBuffer(h, region)
}

// CreateTexture checks a non-zero extent and that the requested usage's
// attachment bits are compatible with the format's aspect before
// delegating: a color-attachment usage requires a color-aspect format, a
// depth/stencil-attachment usage requires a depth and/or stencil format.
func (v *Validator) CreateTexture(info types.TextureCreateInfo) (types.Handle, error) {
	if info.Size.Width == 0 || info.Size.Height == 0 {
		validationPanic("texture %q: extent must have width > 0 and height > 0, got %dx%d", info.Name, info.Size.Width, info.Size.Height)
	}

	aspect := info.Format.Aspect()
	if info.Usage&types.TextureUsageColorAttachment != 0 && aspect != types.FormatAspectColor {
		validationPanic("texture %q: ColorAttachment usage requires a color-aspect format, got %v", info.Name, info.Format)
	}
	if info.Usage&(types.TextureUsageDepthAttachment|types.TextureUsageStencilAttachment) != 0 && aspect == types.FormatAspectColor {
		validationPanic("texture %q: Depth/StencilAttachment usage requires a depth or stencil format, got %v", info.Name, info.Format)
	}

	return v.device.CreateTexture(info)
}

func (v *Validator) DestroyTexture(h types.Handle) error { return v.device.DestroyTexture(h) }

// CreateTextureView records the source texture's usage in the shadow map
// (keyed on the view's own handle, since that is what a ColorAttachment/
// DepthStencilAttachment references) so a later BeginRendering call can be
// checked against it, then delegates.
func (v *Validator) CreateTextureView(info types.TextureViewCreateInfo) (types.Handle, error) {
	requireHandle(info.Texture, "texture view create")

	usage, err := handle.With(v.device.textures, info.Texture, func(t *textureResource) types.TextureUsage { return t.usage })
	if err != nil {
		return types.Handle(0), fmt.Errorf("rhi: texture view source: %w", err)
	}

	h, err := v.device.CreateTextureView(info)
	if err != nil {
		return h, err
	}

	v.mu.Lock()
	v.viewUsage[h] = usage
	v.mu.Unlock()
	return h, nil
}

func (v *Validator) DestroyTextureView(h types.Handle) error {
	v.mu.Lock()
	delete(v.viewUsage, h)
	v.mu.Unlock()
	return v.device.DestroyTextureView(h)
}

func (v *Validator) CreateSampler(info types.SamplerCreateInfo) (types.Handle, error) {
	return v.device.CreateSampler(info)
}

func (v *Validator) DestroySampler(h types.Handle) error { return v.device.DestroySampler(h) }

// CreateShader checks that Stage is not ShaderStageInvalid and that
// SPIRVBytes is non-empty and a multiple of 4 (SPIR-V is a stream of
// 32-bit words) before delegating.
func (v *Validator) CreateShader(info types.ShaderCreateInfo) (types.Handle, error) {
	if info.Stage == types.ShaderStageInvalid {
		validationPanic("shader %q: stage must not be ShaderStageInvalid", info.Name)
	}
	if len(info.SPIRVBytes) == 0 || len(info.SPIRVBytes)%4 != 0 {
		validationPanic("shader %q: SPIR-V byte count must be non-zero and a multiple of 4, got %d", info.Name, len(info.SPIRVBytes))
	}
	return v.device.CreateShader(info)
}

func (v *Validator) DestroyShader(h types.Handle) error { return v.device.DestroyShader(h) }

func (v *Validator) CreateGraphicsPipeline(info types.GraphicsPipelineCreateInfo) (types.Handle, error) {
	requireHandle(info.VertexShader, "graphics pipeline create")
	requireHandle(info.FragmentShader, "graphics pipeline create")
	return v.device.CreateGraphicsPipeline(info)
}

func (v *Validator) DestroyGraphicsPipeline(h types.Handle) error {
	return v.device.DestroyGraphicsPipeline(h)
}

func (v *Validator) CreateComputePipeline(info types.ComputePipelineCreateInfo) (types.Handle, error) {
	requireHandle(info.Shader, "compute pipeline create")
	return v.device.CreateComputePipeline(info)
}

func (v *Validator) DestroyComputePipeline(h types.Handle) error {
	return v.device.DestroyComputePipeline(h)
}

func (v *Validator) CreateSwapchain(info types.SwapchainCreateInfo) (types.Handle, error) {
	return v.device.CreateSwapchain(info)
}

func (v *Validator) DestroySwapchain(h types.Handle) error { return v.device.DestroySwapchain(h) }

// Submit walks every encoder's recorded command stream checking that
// every handle it references is non-null and that render-target
// attachments are compatible with their source texture's declared usage,
// then delegates to the wrapped Device's Submit.
func (v *Validator) Submit(recorder uint32, submits []SubmitInfo, presents []PresentInfo) error {
	for _, s := range submits {
		for _, enc := range s.Encoders {
			v.validateStream(enc.stream)
		}
	}
	for _, p := range presents {
		requireHandle(p.Swapchain, "present")
		requireHandle(p.Texture, "present")
	}
	return v.device.Submit(recorder, submits, presents)
}

func (v *Validator) validateStream(s *commandStream) {
	for _, n := range s.nodes {
		switch p := n.payload.(type) {
		case cmdBindPipelinePayload:
			requireHandle(p.Pipeline, "pipeline bind")
		case cmdBindIndexBufferPayload:
			requireHandle(p.Buffer, "index buffer bind")
		case cmdDrawIndirectPayload:
			requireHandle(p.Buffer, "indirect draw")
			if p.HasCount {
				requireHandle(p.CountBuffer, "indirect draw count")
			}
		case cmdDispatchIndirectPayload:
			requireHandle(p.Buffer, "indirect dispatch")
		case cmdCopyBufferPayload:
			requireHandle(p.Src, "buffer copy source")
			requireHandle(p.Dst, "buffer copy destination")
		case cmdCopyTexturePayload:
			requireHandle(p.Src, "texture copy source")
			requireHandle(p.Dst, "texture copy destination")
		case cmdBufferTextureCopyPayload:
			requireHandle(p.Buffer, "buffer/texture copy")
			requireHandle(p.Texture, "buffer/texture copy")
		case cmdBeginRenderingPayload:
			v.validateRenderingInfo(p.Info)
		}
	}
}

func (v *Validator) validateRenderingInfo(info RenderingInfo) {
	for _, c := range info.ColorAttachments {
		requireHandle(c.View, "color attachment")
		v.requireAttachmentUsage(c.View, types.TextureUsageColorAttachment, "color attachment")
		if !c.Resolve.IsNull() {
			v.requireAttachmentUsage(c.Resolve, types.TextureUsageColorAttachment, "color resolve attachment")
		}
	}
	if info.DepthStencil != nil {
		requireHandle(info.DepthStencil.View, "depth/stencil attachment")
		v.requireAttachmentUsage(info.DepthStencil.View, types.TextureUsageDepthAttachment|types.TextureUsageStencilAttachment, "depth/stencil attachment")
	}
}

// requireAttachmentUsage panics unless view was created over a texture
// whose declared usage includes at least one of want's bits — the
// render-pass-attachment-vs-declared-usage check (§4.10's last bullet).
func (v *Validator) requireAttachmentUsage(view types.Handle, want types.TextureUsage, what string) {
	v.mu.RLock()
	usage, ok := v.viewUsage[view]
	v.mu.RUnlock()
	if !ok {
		validationPanic("%s: view %s was not created through this validator (or has been destroyed)", what, view)
	}
	if usage&want == 0 {
		validationPanic("%s: view %s's texture usage %v is not compatible with %v", what, view, usage, want)
	}
}
