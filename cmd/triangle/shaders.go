// Copyright 2025 The Tundraforge Authors
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/binary"
	"math"
)

// triangleVertSPIRV and triangleFragSPIRV are minimal SPIR-V 1.0 modules
// assembled at init time rather than loaded from a precompiled .spv file,
// since this environment has no shader compiler on hand. Each is exactly
// the module a compiler would emit for the GLSL below; spirvBuilder just
// writes the words out by hand.
//
// vertex shader:
//
//	layout(location = 0) in vec2 inPos;
//	void main() { gl_Position = vec4(inPos, 0.0, 1.0); }
//
// fragment shader:
//
//	layout(location = 0) out vec4 outColor;
//	void main() { outColor = vec4(1.0, 0.0, 0.0, 1.0); }
var (
	triangleVertSPIRV = buildTriangleVertSPIRV()
	triangleFragSPIRV = buildTriangleFragSPIRV()
)

const (
	opCapability          = 17
	opMemoryModel         = 14
	opEntryPoint          = 15
	opExecutionMode       = 16
	opDecorate            = 71
	opTypeVoid            = 19
	opTypeFloat           = 22
	opTypeVector          = 23
	opTypeFunction        = 33
	opTypePointer         = 32
	opConstant            = 43
	opFunction            = 54
	opFunctionEnd         = 56
	opVariable            = 59
	opLoad                = 61
	opStore               = 62
	opLabel               = 248
	opReturn              = 253
	opCompositeConstruct  = 80
	opCompositeExtract    = 81

	executionModelVertex   = 0
	executionModelFragment = 4

	executionModeOriginUpperLeft = 7

	storageClassInput  = 1
	storageClassOutput = 3

	decorationLocation = 30
	decorationBuiltIn  = 11
	builtInPosition    = 0
)

// spirvBuilder accumulates SPIR-V words and renders them to bytes.
type spirvBuilder struct {
	bound uint32
	words []uint32
}

func newSPIRVBuilder() *spirvBuilder {
	return &spirvBuilder{bound: 1}
}

// id allocates a fresh result id.
func (b *spirvBuilder) id() uint32 {
	v := b.bound
	b.bound++
	return v
}

func (b *spirvBuilder) op(opcode uint16, operands ...uint32) {
	wordCount := uint16(len(operands) + 1)
	b.words = append(b.words, uint32(wordCount)<<16|uint32(opcode))
	b.words = append(b.words, operands...)
}

// str packs s into the null-padded, word-aligned literal string
// OpEntryPoint's Name operand requires.
func (b *spirvBuilder) str(s string) []uint32 {
	padded := append([]byte(s), 0)
	for len(padded)%4 != 0 {
		padded = append(padded, 0)
	}
	out := make([]uint32, len(padded)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(padded[i*4 : i*4+4])
	}
	return out
}

func (b *spirvBuilder) bytes() []byte {
	out := make([]byte, 20+len(b.words)*4)
	binary.LittleEndian.PutUint32(out[0:4], 0x07230203) // magic
	binary.LittleEndian.PutUint32(out[4:8], 0x00010000)  // version 1.0
	binary.LittleEndian.PutUint32(out[8:12], 0)          // generator
	binary.LittleEndian.PutUint32(out[12:16], b.bound)
	binary.LittleEndian.PutUint32(out[16:20], 0) // schema
	for i, w := range b.words {
		binary.LittleEndian.PutUint32(out[20+i*4:24+i*4], w)
	}
	return out
}

func float32bits(f float32) uint32 { return math.Float32bits(f) }

func buildTriangleVertSPIRV() []byte {
	b := newSPIRVBuilder()
	void := b.id()
	fnType := b.id()
	main := b.id()
	label := b.id()
	float := b.id()
	vec2 := b.id()
	ptrInVec2 := b.id()
	inPos := b.id()
	vec4 := b.id()
	ptrOutVec4 := b.id()
	outPos := b.id()
	const0 := b.id()
	const1 := b.id()
	loaded := b.id()
	extractX := b.id()
	extractY := b.id()
	built := b.id()

	b.op(opCapability, 1) // Shader
	b.op(opMemoryModel, 0, 1) // Logical, GLSL450

	entryOperands := append([]uint32{executionModelVertex, main}, b.str("main")...)
	entryOperands = append(entryOperands, inPos, outPos)
	b.op(opEntryPoint, entryOperands...)

	b.op(opDecorate, inPos, decorationLocation, 0)
	b.op(opDecorate, outPos, decorationBuiltIn, builtInPosition)

	b.op(opTypeVoid, void)
	b.op(opTypeFunction, fnType, void)
	b.op(opTypeFloat, float, 32)
	b.op(opTypeVector, vec2, float, 2)
	b.op(opTypePointer, ptrInVec2, storageClassInput, vec2)
	b.op(opVariable, ptrInVec2, inPos, storageClassInput)
	b.op(opTypeVector, vec4, float, 4)
	b.op(opTypePointer, ptrOutVec4, storageClassOutput, vec4)
	b.op(opVariable, ptrOutVec4, outPos, storageClassOutput)
	b.op(opConstant, float, const0, 0)
	b.op(opConstant, float, const1, float32bits(1))

	b.op(opFunction, void, main, 0, fnType)
	b.op(opLabel, label)
	b.op(opLoad, vec2, loaded, inPos)
	b.op(opCompositeExtract, float, extractX, loaded, 0)
	b.op(opCompositeExtract, float, extractY, loaded, 1)
	b.op(opCompositeConstruct, vec4, built, extractX, extractY, const0, const1)
	b.op(opStore, outPos, built)
	b.op(opReturn)
	b.op(opFunctionEnd)

	return b.bytes()
}

func buildTriangleFragSPIRV() []byte {
	b := newSPIRVBuilder()
	void := b.id()
	fnType := b.id()
	main := b.id()
	label := b.id()
	float := b.id()
	vec4 := b.id()
	ptrOutVec4 := b.id()
	outColor := b.id()
	const1 := b.id()
	const0 := b.id()
	red := b.id()

	b.op(opCapability, 1) // Shader
	b.op(opMemoryModel, 0, 1) // Logical, GLSL450

	entryOperands := append([]uint32{executionModelFragment, main}, b.str("main")...)
	entryOperands = append(entryOperands, outColor)
	b.op(opEntryPoint, entryOperands...)
	b.op(opExecutionMode, main, executionModeOriginUpperLeft)

	b.op(opDecorate, outColor, decorationLocation, 0)

	b.op(opTypeVoid, void)
	b.op(opTypeFunction, fnType, void)
	b.op(opTypeFloat, float, 32)
	b.op(opTypeVector, vec4, float, 4)
	b.op(opTypePointer, ptrOutVec4, storageClassOutput, vec4)
	b.op(opVariable, ptrOutVec4, outColor, storageClassOutput)
	b.op(opConstant, float, const1, float32bits(1))
	b.op(opConstant, float, const0, 0)
	b.op(opCompositeConstruct, vec4, red, const1, const0, const0, const1)

	b.op(opFunction, void, main, 0, fnType)
	b.op(opLabel, label)
	b.op(opStore, outColor, red)
	b.op(opReturn)
	b.op(opFunctionEnd)

	return b.bytes()
}
