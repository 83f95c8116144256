package scrollmat

import (
	"ScrollMat/internal/material"
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func readVec2(buf []byte) mgl32.Vec2 {
	return mgl32.Vec2{
		math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])),
		math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8])),
	}
}

func TestGPUScrollParamsLayout(t *testing.T) {
	var params GPUScrollParams
	if params.Size() != 16 {
		t.Errorf("Expected 16 byte block, got %d", params.Size())
	}

	params.ScrollSpeed = [2]float32{1.5, -2}
	buf := params.Marshal()
	if len(buf) != 16 {
		t.Fatalf("Expected 16 bytes, got %d", len(buf))
	}
	if readVec2(buf) != (mgl32.Vec2{1.5, -2}) {
		t.Errorf("Unexpected encoded speed %v", readVec2(buf))
	}
	for i := 8; i < 16; i++ {
		if buf[i] != 0 {
			t.Errorf("Padding byte %d should be zero", i)
		}
	}
}

func TestExtensionStaticByDefault(t *testing.T) {
	ext := NewExtension(mgl32.Vec2{})

	if readVec2(ext.MarshalUniforms()) != (mgl32.Vec2{0, 0}) {
		t.Error("A zero speed material should upload (0,0)")
	}

	empty := &Extension{}
	if empty.ScrollSpeed() != (mgl32.Vec2{}) {
		t.Error("Extension without state should report (0,0)")
	}
	if readVec2(empty.MarshalUniforms()) != (mgl32.Vec2{}) {
		t.Error("Extension without state should upload (0,0)")
	}
}

func TestExtensionUploadsInputDrivenSpeed(t *testing.T) {
	ext := NewExtension(mgl32.Vec2{0, 1})

	for i := 0; i < 4; i++ {
		ext.Scroll.Nudge(material.DirectionRight)
	}

	if readVec2(ext.MarshalUniforms()) != (mgl32.Vec2{2, 1}) {
		t.Errorf("Expected uploaded (2,1), got %v", readVec2(ext.MarshalUniforms()))
	}
}

func TestExtensionBlockMatchesDescriptor(t *testing.T) {
	ext := NewExtension(mgl32.Vec2{})
	desc := Descriptor()

	if ext.TypeName() != desc.Name {
		t.Errorf("Type name %q does not match descriptor %q", ext.TypeName(), desc.Name)
	}
	if ext.UniformBlock() != desc.Block {
		t.Errorf("Block %+v does not match descriptor %+v", ext.UniformBlock(), desc.Block)
	}
	if err := desc.Block.Validate(); err != nil {
		t.Errorf("Descriptor block invalid: %v", err)
	}
	if len(ext.MarshalUniforms()) != desc.Block.AlignedSize() {
		t.Errorf("Marshaled size %d differs from aligned block size %d", len(ext.MarshalUniforms()), desc.Block.AlignedSize())
	}
}
