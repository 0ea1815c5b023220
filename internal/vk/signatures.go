// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package vk

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

// Vulkan has on the order of a hundred entry points in this binding's
// surface but only a handful of distinct C argument shapes (some
// combination of VkDevice-like u64 handles, u32 enums/counts, and
// pointers). Rather than hand-declare one goffi CallInterface per
// function — the teacher binding's approach at full Vulkan coverage —
// this package memoizes one CallInterface per distinct shape and looks
// it up by the shape actually used, since our surface only needs ~15 of
// them. initSignatures primes the common ones so the hot command-buffer
// recording path never takes the lazy-prepare branch.
type argKind uint8

const (
	argU32 argKind = iota
	argU64
	argI32
	argPtr
)

func descriptorFor(k argKind) *types.TypeDescriptor {
	switch k {
	case argU32:
		return types.UInt32TypeDescriptor
	case argI32:
		return types.Int32TypeDescriptor
	case argPtr:
		return types.PointerTypeDescriptor
	default:
		return types.UInt64TypeDescriptor
	}
}

var cifCache sync.Map // map[string]*types.CallInterface

func shapeKey(isResult bool, args []argKind) string {
	b := make([]byte, 0, len(args)+2)
	if isResult {
		b = append(b, 'R')
	} else {
		b = append(b, 'V')
	}
	for _, a := range args {
		b = append(b, byte('0'+a))
	}
	return string(b)
}

func cifFor(isResult bool, args []argKind) *types.CallInterface {
	key := shapeKey(isResult, args)
	if v, ok := cifCache.Load(key); ok {
		return v.(*types.CallInterface)
	}

	descs := make([]*types.TypeDescriptor, len(args))
	for i, a := range args {
		descs[i] = descriptorFor(a)
	}
	retDesc := types.VoidTypeDescriptor
	if isResult {
		retDesc = types.Int32TypeDescriptor
	}

	cif := &types.CallInterface{}
	if err := ffi.PrepareCallInterface(cif, types.DefaultCall, retDesc, descs); err != nil {
		panic(fmt.Sprintf("vk: failed to prepare call interface %s: %v", key, err))
	}
	actual, _ := cifCache.LoadOrStore(key, cif)
	return actual.(*types.CallInterface)
}

// initSignatures primes the shapes used by every hot-path command (draw,
// dispatch, bind, barrier) so the first recorded command buffer never
// pays lazy-prepare cost.
func initSignatures() error {
	hot := [][]argKind{
		{argU64},                                 // EndCommandBuffer
		{argU64, argPtr},                         // BeginCommandBuffer, CmdPipelineBarrier2
		{argU64, argU32, argU64},                 // CmdBindPipeline
		{argU64, argU64, argU64, argU32},         // CmdBindIndexBuffer
		{argU64, argU32, argU32, argU32, argU32}, // CmdDraw
		{argU64, argU32, argU32, argU32},         // CmdDispatch
	}
	for _, shape := range hot {
		cifFor(true, shape)
		cifFor(false, shape)
	}
	return nil
}

func ptrArg(p unsafe.Pointer) unsafe.Pointer { return unsafe.Pointer(&p) }

// callResult invokes fn (a VkResult-returning function) with args shaped
// by kinds, where vals[i] is already the goffi-convention pointer (a
// scalar's address, or a pointer-to-pointer for a pointer argument — see
// ptrArg).
func callResult(fn unsafe.Pointer, kinds []argKind, vals []unsafe.Pointer) Result {
	if fn == nil {
		panic("vk: call through unresolved function pointer")
	}
	cif := cifFor(true, kinds)
	var ret int32
	_ = ffi.CallFunction(cif, fn, unsafe.Pointer(&ret), vals)
	return Result(ret)
}

// callVoid invokes fn (a void-returning function) with args shaped by kinds.
func callVoid(fn unsafe.Pointer, kinds []argKind, vals []unsafe.Pointer) {
	if fn == nil {
		panic("vk: call through unresolved function pointer")
	}
	cif := cifFor(false, kinds)
	_ = ffi.CallFunction(cif, fn, nil, vals)
}
