// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package rhi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tundraforge/rhi/types"
)

// tryNewDevice creates a device for the end-to-end tests below, skipping
// (not failing) when no Vulkan loader/driver is present — the same
// "attempt it, skip on failure" shape the teacher's own
// compute_integration_test.go uses for tests that need a real GPU, since
// CI and a plain dev container rarely have one.
func tryNewDevice(t *testing.T, cfg Config) *Device {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping GPU integration test in short mode")
	}
	d, err := NewDevice(cfg)
	if err != nil {
		t.Skipf("no usable Vulkan device: %v", err)
	}
	return d
}

// TestIntegrationBarrierTransitionOnLayoutChange is end-to-end scenario
// 4: write a texture as a color attachment, then read it as a shader
// resource in a later pass, and confirm the round trip through
// NewEncoder/TextureBarrier/Submit succeeds against a real driver — the
// transition buildDependencyInfo computes in barrier_test.go actually
// has to survive vkCmdPipelineBarrier2 and vkQueueSubmit2 validation,
// not just construct the right Go struct.
func TestIntegrationBarrierTransitionOnLayoutChange(t *testing.T) {
	d := tryNewDevice(t, Config{FramesInFlight: 1})
	defer d.Destroy()

	tex, err := d.CreateTexture(types.TextureCreateInfo{
		Kind: types.TextureDimension2D, Format: types.TextureFormatRGBA8Unorm,
		Usage:         types.TextureUsageColorAttachment | types.TextureUsageSRV,
		MemoryType:    types.MemoryTypeGPU,
		Size:          types.Extent3D{Width: 8, Height: 8, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		Name:          "integration-barrier-target",
	})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	defer d.DestroyTexture(tex)

	recorder := d.RegisterRecorder()
	enc := d.NewEncoder(types.QueueGraphics)
	enc.Begin()
	if err := enc.TextureBarrier(d, tex, types.AccessNone, types.AccessColorAttachmentWrite); err != nil {
		t.Fatalf("TextureBarrier (to color attachment): %v", err)
	}
	if err := enc.TextureBarrier(d, tex, types.AccessColorAttachmentWrite, types.AccessSRVGraphics); err != nil {
		t.Fatalf("TextureBarrier (to shader read): %v", err)
	}
	enc.End()

	if err := d.Submit(recorder, []SubmitInfo{{
		Encoders: []*Encoder{enc},
		Queue:    types.QueueGraphics,
		Stage:    types.StageBottomOfPipe,
	}}, nil); err != nil {
		t.Fatalf("Submit: %v", err)
	}
}

// TestIntegrationPipelineCacheLoadMismatch is end-to-end scenario 5: a
// pipeline-cache directory seeded with a blob for a different GPU must
// not stop a real device from starting — loadPipelineCacheData's
// rejection (covered directly in pipelinecache_test.go) has to actually
// flow through createPipelineCache's vkCreatePipelineCache call without
// the driver rejecting the (now-empty) initial data.
func TestIntegrationPipelineCacheLoadMismatch(t *testing.T) {
	dir := t.TempDir()
	d := tryNewDevice(t, Config{FramesInFlight: 1, PipelineCacheDir: dir})
	props := d.physProps
	d.Destroy()

	// Replace the blob this device just saved with one whose header names
	// a different vendor, so the next device's load has to reject it.
	path := pipelineCachePath(dir, props)
	other := testProps(props.VendorID+1, props.DeviceID, props.PipelineCacheUUID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, validHeader(other, []byte("stale")), 0o644); err != nil {
		t.Fatal(err)
	}

	d2 := tryNewDevice(t, Config{FramesInFlight: 1, PipelineCacheDir: dir})
	defer d2.Destroy()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("mismatched pipeline-cache file should have been removed, stat err = %v", err)
	}
}

// Scenario 6 (present path) is not covered here: presenting requires a
// live VkSurfaceKHR from a platform window, which is explicitly out of
// scope (spec's platform-window-handles exclusion) — there is no
// headless-surface extension wired to manufacture one inside a test.
