// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package rhi

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/tundraforge/rhi/internal/vk"
)

func testProps(vendorID, deviceID uint32, uuid [16]byte) vk.PhysicalDeviceProperties {
	return vk.PhysicalDeviceProperties{VendorID: vendorID, DeviceID: deviceID, PipelineCacheUUID: uuid}
}

func validHeader(props vk.PhysicalDeviceProperties, payload []byte) []byte {
	header := make([]byte, pipelineCacheHeaderSize)
	binary.LittleEndian.PutUint32(header[0:4], pipelineCacheHeaderSize)
	binary.LittleEndian.PutUint32(header[4:8], 1)
	binary.LittleEndian.PutUint32(header[8:12], props.VendorID)
	binary.LittleEndian.PutUint32(header[12:16], props.DeviceID)
	copy(header[16:32], props.PipelineCacheUUID[:])
	return append(header, payload...)
}

// TestValidPipelineCacheHeaderAccepts covers the happy path: a blob
// whose header matches the device exactly validates.
func TestValidPipelineCacheHeaderAccepts(t *testing.T) {
	uuid := [16]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	props := testProps(0x10de, 0x2484, uuid)
	data := validHeader(props, []byte("blob"))
	if !validPipelineCacheHeader(data, props) {
		t.Fatalf("header should validate against its own matching props")
	}
}

// TestValidPipelineCacheHeaderRejectsMismatch covers scenario 5: a
// pipeline-cache blob written by a different GPU (vendor/device id or
// pipeline-cache UUID mismatch) must be rejected, never handed to
// vkCreatePipelineCache.
func TestValidPipelineCacheHeaderRejectsMismatch(t *testing.T) {
	uuid := [16]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	writer := testProps(0x10de, 0x2484, uuid)
	data := validHeader(writer, []byte("blob"))

	tests := []struct {
		name   string
		reader vk.PhysicalDeviceProperties
	}{
		{"different vendor", testProps(0x1002, 0x2484, uuid)},
		{"different device", testProps(0x10de, 0x73ff, uuid)},
		{"different uuid", func() vk.PhysicalDeviceProperties {
			other := uuid
			other[0]++
			return testProps(0x10de, 0x2484, other)
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if validPipelineCacheHeader(data, tt.reader) {
				t.Errorf("header must not validate against a mismatched device")
			}
		})
	}
}

// TestValidPipelineCacheHeaderRejectsTruncated covers a blob shorter
// than the fixed 32-byte header (e.g. a zero-byte file from an
// interrupted write).
func TestValidPipelineCacheHeaderRejectsTruncated(t *testing.T) {
	props := testProps(1, 2, [16]byte{})
	if validPipelineCacheHeader(nil, props) {
		t.Errorf("empty data must not validate")
	}
	if validPipelineCacheHeader(make([]byte, 10), props) {
		t.Errorf("data shorter than the header size must not validate")
	}
}

// TestValidPipelineCacheHeaderRejectsWrongVersion covers a header whose
// header_size/version fields don't match what this core accepts,
// distinct from a vendor/device/uuid mismatch.
func TestValidPipelineCacheHeaderRejectsWrongVersion(t *testing.T) {
	uuid := [16]byte{}
	props := testProps(1, 2, uuid)
	data := validHeader(props, nil)
	binary.LittleEndian.PutUint32(data[4:8], 2) // bump version past what this core understands
	if validPipelineCacheHeader(data, props) {
		t.Errorf("header with an unrecognized version must not validate")
	}
}

// TestLoadPipelineCacheDataDiscardsMismatch covers the full load path
// (scenario 5): loadPipelineCacheData must return nil for a blob that
// fails header validation, and remove the stale file so a later save
// isn't blocked by it.
func TestLoadPipelineCacheDataDiscardsMismatch(t *testing.T) {
	dir := t.TempDir()
	uuid := [16]byte{9}
	writer := testProps(0x10de, 0x2484, uuid)
	reader := testProps(0x1002, 0x7340, uuid)

	path := pipelineCachePath(dir, reader)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, validHeader(writer, []byte("stale")), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := loadPipelineCacheData(dir, reader); got != nil {
		t.Errorf("loadPipelineCacheData = %v, want nil for a mismatched header", got)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("stale mismatched file should have been removed, stat err = %v", err)
	}
}

// TestLoadPipelineCacheDataAcceptsMatch covers the reverse: a blob whose
// header matches the requesting device loads unchanged.
func TestLoadPipelineCacheDataAcceptsMatch(t *testing.T) {
	dir := t.TempDir()
	uuid := [16]byte{7}
	props := testProps(0x10de, 0x2484, uuid)
	want := validHeader(props, []byte("seed-data"))

	path := pipelineCachePath(dir, props)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatal(err)
	}

	got := loadPipelineCacheData(dir, props)
	if len(got) != len(want) {
		t.Fatalf("loaded %d bytes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d", i, got[i], want[i])
		}
	}
}

// TestLoadPipelineCacheDataMissingDir covers PipelineCacheDir == "",
// the "persistence disabled" configuration.
func TestLoadPipelineCacheDataMissingDir(t *testing.T) {
	if got := loadPipelineCacheData("", testProps(1, 2, [16]byte{})); got != nil {
		t.Errorf("empty dir must disable persistence, got %v", got)
	}
}
