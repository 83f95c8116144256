package renderer

import (
	"ScrollMat/internal/material"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// UniformBuffer is a GL uniform buffer object bound to one fixed binding point.
type UniformBuffer struct {
	id      uint32
	binding uint32
	size    int
}

func NewUniformBuffer(block material.UniformBlock) (*UniformBuffer, error) {
	if err := block.Validate(); err != nil {
		return nil, err
	}

	ub := &UniformBuffer{
		binding: block.Binding,
		size:    block.AlignedSize(),
	}
	gl.GenBuffers(1, &ub.id)
	gl.BindBuffer(gl.UNIFORM_BUFFER, ub.id)
	gl.BufferData(gl.UNIFORM_BUFFER, ub.size, nil, gl.DYNAMIC_DRAW)
	gl.BindBufferRange(gl.UNIFORM_BUFFER, ub.binding, ub.id, 0, ub.size)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	return ub, nil
}

// Upload replaces the start of the buffer with data.
func (ub *UniformBuffer) Upload(data []byte) error {
	if len(data) > ub.size {
		return fmt.Errorf("uniform upload of %d bytes exceeds buffer size %d", len(data), ub.size)
	}
	if len(data) == 0 {
		return nil
	}
	gl.BindBuffer(gl.UNIFORM_BUFFER, ub.id)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(data), gl.Ptr(data))
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	return nil
}

// Bind re-attaches the buffer to its binding point.
func (ub *UniformBuffer) Bind() {
	gl.BindBufferBase(gl.UNIFORM_BUFFER, ub.binding, ub.id)
}

func (ub *UniformBuffer) Binding() uint32 {
	return ub.binding
}

func (ub *UniformBuffer) Size() int {
	return ub.size
}

func (ub *UniformBuffer) Delete() {
	if ub.id != 0 {
		gl.DeleteBuffers(1, &ub.id)
		ub.id = 0
	}
}

// bindUniformBlock points the program's named block at binding. Drivers strip
// blocks the shader never reads, in which case there is nothing to bind.
func bindUniformBlock(program uint32, block material.UniformBlock) bool {
	index := gl.GetUniformBlockIndex(program, gl.Str(block.Name+"\x00"))
	if index == gl.INVALID_INDEX {
		return false
	}
	gl.UniformBlockBinding(program, index, block.Binding)
	return true
}
