// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

var (
	libHandle           unsafe.Pointer
	procGetInstanceAddr unsafe.Pointer
	procGetDeviceAddr   unsafe.Pointer
	cifGetInstanceAddr  types.CallInterface
	cifGetDeviceAddr    types.CallInterface

	initOnce sync.Once
	initErr  error
)

// libraryName returns the platform Vulkan loader name, matching the
// teacher binding's per-OS table.
func libraryName() string {
	switch runtime.GOOS {
	case "windows":
		return "vulkan-1.dll"
	case "darwin":
		return "libvulkan.dylib"
	default:
		return "libvulkan.so.1"
	}
}

// Init loads the Vulkan loader library and prepares the small set of
// call-interface templates every typed wrapper in commands.go reuses.
// Safe to call more than once; only the first call does work.
func Init() error {
	initOnce.Do(func() {
		initErr = doInit()
	})
	return initErr
}

func doInit() error {
	var err error
	libHandle, err = ffi.LoadLibrary(libraryName())
	if err != nil {
		return fmt.Errorf("vk: failed to load %s: %w", libraryName(), err)
	}

	procGetInstanceAddr, err = ffi.GetSymbol(libHandle, "vkGetInstanceProcAddr")
	if err != nil {
		return fmt.Errorf("vk: vkGetInstanceProcAddr not found: %w", err)
	}

	if err := ffi.PrepareCallInterface(&cifGetInstanceAddr, types.DefaultCall,
		types.PointerTypeDescriptor,
		[]*types.TypeDescriptor{types.UInt64TypeDescriptor, types.PointerTypeDescriptor},
	); err != nil {
		return fmt.Errorf("vk: prepare GetInstanceProcAddr: %w", err)
	}
	if err := ffi.PrepareCallInterface(&cifGetDeviceAddr, types.DefaultCall,
		types.PointerTypeDescriptor,
		[]*types.TypeDescriptor{types.UInt64TypeDescriptor, types.PointerTypeDescriptor},
	); err != nil {
		return fmt.Errorf("vk: prepare GetDeviceProcAddr: %w", err)
	}

	return initSignatures()
}

// Close releases the Vulkan loader library. Must only be called after every
// Instance/Device created through it has been destroyed.
func Close() error {
	if libHandle == nil {
		return nil
	}
	err := ffi.FreeLibrary(libHandle)
	libHandle = nil
	procGetInstanceAddr = nil
	procGetDeviceAddr = nil
	return err
}

func cString(s string) unsafe.Pointer {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return unsafe.Pointer(&b[0])
}

// GetInstanceProcAddr resolves a global or instance-level entry point.
// Pass instance=0 for global functions (vkCreateInstance, ...).
func GetInstanceProcAddr(instance Instance, name string) unsafe.Pointer {
	if procGetInstanceAddr == nil {
		return nil
	}
	namePtr := cString(name)
	var result unsafe.Pointer
	args := [2]unsafe.Pointer{unsafe.Pointer(&instance), unsafe.Pointer(&namePtr)}
	_ = ffi.CallFunction(&cifGetInstanceAddr, procGetInstanceAddr, unsafe.Pointer(&result), args[:])
	return result
}

// SetDeviceProcAddr resolves vkGetDeviceProcAddr against instance. Some
// drivers (Intel) refuse to resolve it with a null instance.
func SetDeviceProcAddr(instance Instance) {
	if procGetDeviceAddr == nil {
		procGetDeviceAddr = GetInstanceProcAddr(instance, "vkGetDeviceProcAddr")
	}
}

// GetDeviceProcAddr resolves a device-level entry point.
func GetDeviceProcAddr(device Device, name string) unsafe.Pointer {
	if procGetDeviceAddr == nil {
		procGetDeviceAddr = GetInstanceProcAddr(0, "vkGetDeviceProcAddr")
		if procGetDeviceAddr == nil {
			return nil
		}
	}
	namePtr := cString(name)
	var result unsafe.Pointer
	args := [2]unsafe.Pointer{unsafe.Pointer(&device), unsafe.Pointer(&namePtr)}
	_ = ffi.CallFunction(&cifGetDeviceAddr, procGetDeviceAddr, unsafe.Pointer(&result), args[:])
	return result
}
