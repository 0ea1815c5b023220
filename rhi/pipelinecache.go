// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package rhi

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"unsafe"

	"github.com/google/uuid"
	"github.com/tundraforge/rhi/internal/vk"
)

// pipelineCacheHeaderSize is the fixed 32-byte header every
// VkPipelineCache blob carries at offset 0 (header_size, version,
// vendor_id, device_id, pipeline_cache_uuid) — the driver writes it, this
// package only ever reads it back to decide whether a persisted blob is
// safe to feed to vkCreatePipelineCache (§6).
const pipelineCacheHeaderSize = 32

// pipelineCachePath is <dir>/pipeline_cache/<vendor_id>_<device_id>.bin.
func pipelineCachePath(dir string, props vk.PhysicalDeviceProperties) string {
	return filepath.Join(dir, "pipeline_cache", fmt.Sprintf("%08x_%08x.bin", props.VendorID, props.DeviceID))
}

// validPipelineCacheHeader checks data's leading 32 bytes against props:
// header_size == 32, version == 1, and vendor_id/device_id/uuid all match
// this physical device. Any mismatch means the blob was written by a
// different driver or GPU and must not be handed to this one.
func validPipelineCacheHeader(data []byte, props vk.PhysicalDeviceProperties) bool {
	if len(data) < pipelineCacheHeaderSize {
		return false
	}
	headerSize := binary.LittleEndian.Uint32(data[0:4])
	version := binary.LittleEndian.Uint32(data[4:8])
	vendorID := binary.LittleEndian.Uint32(data[8:12])
	deviceID := binary.LittleEndian.Uint32(data[12:16])
	if headerSize != pipelineCacheHeaderSize || version != 1 {
		return false
	}
	if vendorID != props.VendorID || deviceID != props.DeviceID {
		return false
	}
	var fileUUID, wantUUID uuid.UUID
	copy(fileUUID[:], data[16:32])
	copy(wantUUID[:], props.PipelineCacheUUID[:])
	return fileUUID == wantUUID
}

// loadPipelineCacheData reads dir's persisted blob for props's device and
// returns it only if its header validates; otherwise (missing file, read
// error, or a header mismatch) it returns nil and — for a mismatch —
// removes the stale file so a later save isn't blocked by file
// permissions left over from a different run.
func loadPipelineCacheData(dir string, props vk.PhysicalDeviceProperties) []byte {
	if dir == "" {
		return nil
	}
	path := pipelineCachePath(dir, props)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	if !validPipelineCacheHeader(data, props) {
		Logger().Debug("discarding pipeline cache", "path", path, "reason", ErrPipelineCacheCorrupt)
		_ = os.Remove(path)
		return nil
	}
	return data
}

// createPipelineCache creates the single VkPipelineCache every
// CreateGraphicsPipeline/CreateComputePipeline call passes to the driver,
// seeded with persisted data when cfg.PipelineCacheDir holds a blob this
// device recognizes.
func createPipelineCache(commands *vk.Commands, device vk.Device, props vk.PhysicalDeviceProperties, dir string) (vk.PipelineCache, error) {
	initial := loadPipelineCacheData(dir, props)

	ci := vk.PipelineCacheCreateInfo{SType: vk.StructureTypePipelineCacheCreateInfo}
	if len(initial) > 0 {
		ci.InitialDataSize = uintptr(len(initial))
		ci.PInitialData = unsafe.Pointer(&initial[0])
	}

	var cache vk.PipelineCache
	if res := commands.CreatePipelineCache(device, unsafe.Pointer(&ci), &cache); res != vk.Success {
		return 0, fmt.Errorf("rhi: vkCreatePipelineCache returned %s", res)
	}
	Logger().Debug("pipeline cache created", "seeded_bytes", len(initial))
	return cache, nil
}

// savePipelineCache retrieves the driver's current cache blob — which
// already carries the header validPipelineCacheHeader checks, since the
// driver writes it — and atomically replaces dir's persisted file with
// it. I/O and driver-query failures are logged and otherwise ignored:
// the cache is a load-time hint, never load-bearing (§7).
func savePipelineCache(commands *vk.Commands, device vk.Device, cache vk.PipelineCache, props vk.PhysicalDeviceProperties, dir string) {
	if dir == "" {
		return
	}

	var size uint64
	if res := commands.GetPipelineCacheData(device, cache, &size, nil); res != vk.Success || size == 0 {
		return
	}
	data := make([]byte, size)
	if res := commands.GetPipelineCacheData(device, cache, &size, unsafe.Pointer(&data[0])); res != vk.Success {
		Logger().Debug("vkGetPipelineCacheData failed", "result", res)
		return
	}

	path := pipelineCachePath(dir, props)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		Logger().Debug("creating pipeline cache directory failed", "error", err)
		return
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data[:size], 0o644); err != nil {
		Logger().Debug("writing pipeline cache failed", "error", err)
		return
	}
	if err := os.Rename(tmp, path); err != nil {
		Logger().Debug("renaming pipeline cache into place failed", "error", err)
		_ = os.Remove(tmp)
		return
	}
	Logger().Debug("pipeline cache saved", "path", path, "bytes", size)
}
