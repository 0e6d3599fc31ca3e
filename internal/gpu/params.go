package gpu

import (
	"encoding/binary"
	"math"
)

// Workgroup shape of the julia compute shader. Must match the
// @workgroup_size attribute in shaders/julia.wgsl.
const (
	WorkgroupWidth  = 16
	WorkgroupHeight = 16
)

// paramsSize is the packed size of the uniform block, padding included.
const paramsSize = 32

// Params is the uniform block consumed by the shader. Field order and
// padding mirror the WGSL Params struct.
type Params struct {
	Width   uint32
	Height  uint32
	MaxIter uint32
	CRe     float32
	CIm     float32
}

// Pack serializes the uniform block little-endian, with a padding word
// after MaxIter and two trailing padding words, for a 32-byte block.
func (p Params) Pack() []byte {
	buf := make([]byte, paramsSize)
	binary.LittleEndian.PutUint32(buf[0:], p.Width)
	binary.LittleEndian.PutUint32(buf[4:], p.Height)
	binary.LittleEndian.PutUint32(buf[8:], p.MaxIter)
	// buf[12:16] padding
	binary.LittleEndian.PutUint32(buf[16:], math.Float32bits(p.CRe))
	binary.LittleEndian.PutUint32(buf[20:], math.Float32bits(p.CIm))
	// buf[24:32] padding
	return buf
}

// WorkgroupCount returns how many workgroups of the given size cover n
// invocations, rounding up. Edge groups contain out-of-range invocations
// that the shader discards.
func WorkgroupCount(n, groupSize uint32) uint32 {
	return (n + groupSize - 1) / groupSize
}
