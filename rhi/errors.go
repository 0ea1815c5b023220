// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package rhi

import "errors"

// Sentinel errors representing unrecoverable or misuse conditions.
var (
	// ErrDeviceLost indicates the GPU device has been lost (driver crash,
	// hardware disconnect, or a TDR-style driver timeout). The device
	// cannot be recovered; every handle it owned is invalid.
	ErrDeviceLost = errors.New("rhi: device lost")

	// ErrOutOfMemory indicates the GPU (or the pooled allocator sitting in
	// front of it) has exhausted memory for the requested resource.
	ErrOutOfMemory = errors.New("rhi: out of memory")

	// ErrSwapchainOutOfDate indicates the swapchain's images no longer
	// match the surface (typically a resize). Callers must recreate the
	// swapchain before presenting again.
	ErrSwapchainOutOfDate = errors.New("rhi: swapchain out of date")

	// ErrSwapchainLost indicates the presentation surface was destroyed,
	// typically because its window closed.
	ErrSwapchainLost = errors.New("rhi: swapchain surface lost")

	// ErrTimeout indicates a fence or semaphore wait exceeded its deadline.
	ErrTimeout = errors.New("rhi: wait timed out")

	// ErrInvalidHandle is returned when an operation is given a handle
	// that does not belong to the table it is looked up in, or has
	// already been destroyed.
	ErrInvalidHandle = errors.New("rhi: invalid handle")

	// ErrValidation indicates a pre-submit invariant check (C11) rejected
	// a command stream before it reached the driver.
	ErrValidation = errors.New("rhi: validation failed")

	// ErrCommandArenaExhausted indicates an encoder's command arena filled
	// before recording finished; increase Config.CommandArenaBytes.
	ErrCommandArenaExhausted = errors.New("rhi: command arena exhausted")

	// ErrNoCompatibleQueueFamily indicates the physical device exposes no
	// queue family satisfying a requested QueueType.
	ErrNoCompatibleQueueFamily = errors.New("rhi: no compatible queue family")

	// ErrPipelineCacheCorrupt indicates a persisted pipeline-cache blob
	// failed its header check and was discarded rather than fed to the
	// driver.
	ErrPipelineCacheCorrupt = errors.New("rhi: pipeline cache data rejected its own header")
)
