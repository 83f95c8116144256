package scrollmat

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUScrollParams is the std140 layout of the ScrollMat uniform block.
// Size: 16 bytes (one vec2 padded to a vec4 slot).
type GPUScrollParams struct {
	ScrollSpeed [2]float32 // offset 0: UV units per second
	_           [2]float32 // offset 8: std140 padding
}

// Size returns the size of the struct in bytes.
func (g *GPUScrollParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the params into a little-endian buffer ready for upload.
func (g *GPUScrollParams) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.ScrollSpeed[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.ScrollSpeed[1]))
	return buf
}
