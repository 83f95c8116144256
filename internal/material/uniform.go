package material

import (
	"errors"
	"fmt"
)

// std140 rounds uniform block sizes up to a vec4.
const std140Alignment = 16

// ErrInvalidUniformBlock is returned when a block description cannot be bound.
var ErrInvalidUniformBlock = errors.New("invalid uniform block")

// UniformBlock describes a fixed-size uniform block declared by a material
// extension and bound at a fixed slot.
type UniformBlock struct {
	Name    string // GLSL block name
	Binding uint32 // Uniform buffer binding point
	Size    int    // Payload size in bytes
}

// Validate checks that the block can be allocated and bound.
func (b UniformBlock) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("%w: empty block name", ErrInvalidUniformBlock)
	}
	if b.Size <= 0 {
		return fmt.Errorf("%w: block %q has size %d", ErrInvalidUniformBlock, b.Name, b.Size)
	}
	return nil
}

// AlignedSize is the buffer size to allocate for the block under std140.
func (b UniformBlock) AlignedSize() int {
	if b.Size <= 0 {
		return 0
	}
	return (b.Size + std140Alignment - 1) / std140Alignment * std140Alignment
}
