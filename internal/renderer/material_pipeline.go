package renderer

import (
	"ScrollMat/internal/logger"
	"ScrollMat/internal/material"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrShaderAssetNotFound = errors.New("shader asset not found")
	ErrShaderAssetExists   = errors.New("shader asset already registered")
	ErrEmptyShaderSource   = errors.New("empty shader source")
	ErrMaterialTypeExists  = errors.New("material type already registered")
	ErrUnknownMaterialType = errors.New("unknown material type")
)

// deferredDefine is defined when a fragment shader is compiled for the
// deferred pass.
const deferredDefine = "DEFERRED_PREPASS"

type programKey struct {
	name string
	pass material.Pass
}

// MaterialPipeline holds the extended material types and shader assets
// registered by plugins, and the GL programs and uniform buffers built for them.
// It implements material.Registrar.
type MaterialPipeline struct {
	vertexSource string
	shaders      map[material.ShaderRef]string
	types        map[string]material.TypeDescriptor
	programs     map[programKey]*Shader
	buffers      map[uint32]*UniformBuffer
}

var _ material.Registrar = &MaterialPipeline{}

func NewMaterialPipeline() *MaterialPipeline {
	return &MaterialPipeline{
		vertexSource: vertexShaderSource,
		shaders:      make(map[material.ShaderRef]string),
		types:        make(map[string]material.TypeDescriptor),
		programs:     make(map[programKey]*Shader),
		buffers:      make(map[uint32]*UniformBuffer),
	}
}

func (p *MaterialPipeline) RegisterShaderAsset(ref material.ShaderRef, source string) error {
	if ref == "" {
		return fmt.Errorf("register shader asset: empty reference")
	}
	if strings.TrimSpace(source) == "" {
		return fmt.Errorf("register shader asset %q: %w", ref, ErrEmptyShaderSource)
	}
	if _, exists := p.shaders[ref]; exists {
		return fmt.Errorf("register shader asset %q: %w", ref, ErrShaderAssetExists)
	}

	p.shaders[ref] = source
	logger.Log.Debug("Shader asset registered", zap.String("ref", string(ref)), zap.Int("bytes", len(source)))
	return nil
}

func (p *MaterialPipeline) RegisterMaterialType(desc material.TypeDescriptor) error {
	if desc.Name == "" {
		return fmt.Errorf("register material type: empty name")
	}
	if _, exists := p.types[desc.Name]; exists {
		return fmt.Errorf("register material type %q: %w", desc.Name, ErrMaterialTypeExists)
	}
	if err := desc.Block.Validate(); err != nil {
		return fmt.Errorf("register material type %q: %w", desc.Name, err)
	}
	for _, pass := range []material.Pass{material.PassForward, material.PassDeferred} {
		ref := desc.Shader(pass)
		if _, ok := p.shaders[ref]; !ok {
			return fmt.Errorf("register material type %q (%s pass, %q): %w", desc.Name, pass, ref, ErrShaderAssetNotFound)
		}
	}
	for name, other := range p.types {
		if other.Block.Binding == desc.Block.Binding && other.Block.Name != desc.Block.Name {
			logger.Log.Warn("Uniform binding shared by different blocks",
				zap.String("type", desc.Name), zap.String("other", name), zap.Uint32("binding", desc.Block.Binding))
		}
	}

	p.types[desc.Name] = desc
	logger.Log.Info("Material type registered",
		zap.String("type", desc.Name),
		zap.String("block", desc.Block.Name),
		zap.Uint32("binding", desc.Block.Binding))
	return nil
}

// Supports reports whether name has been registered.
func (p *MaterialPipeline) Supports(name string) bool {
	_, ok := p.types[name]
	return ok
}

// Types lists the registered material type names in order.
func (p *MaterialPipeline) Types() []string {
	names := make([]string, 0, len(p.types))
	for name := range p.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *MaterialPipeline) Descriptor(name string) (material.TypeDescriptor, error) {
	desc, ok := p.types[name]
	if !ok {
		return material.TypeDescriptor{}, fmt.Errorf("%w: %q", ErrUnknownMaterialType, name)
	}
	return desc, nil
}

// Validate checks that ext can be drawn: its type is registered and it fills
// the block the type was registered with.
func (p *MaterialPipeline) Validate(ext material.Extension) error {
	if ext == nil {
		return fmt.Errorf("%w: nil extension", ErrUnknownMaterialType)
	}
	desc, err := p.Descriptor(ext.TypeName())
	if err != nil {
		return err
	}
	if block := ext.UniformBlock(); block != desc.Block {
		return fmt.Errorf("material %q: uniform block %+v does not match registered %+v: %w",
			desc.Name, block, desc.Block, material.ErrInvalidUniformBlock)
	}
	if n := len(ext.MarshalUniforms()); n > desc.Block.AlignedSize() {
		return fmt.Errorf("material %q: %d uniform bytes exceed block size %d: %w",
			desc.Name, n, desc.Block.AlignedSize(), material.ErrInvalidUniformBlock)
	}
	return nil
}

// FragmentSource resolves the fragment stage of name for pass.
func (p *MaterialPipeline) FragmentSource(name string, pass material.Pass) (string, error) {
	desc, err := p.Descriptor(name)
	if err != nil {
		return "", err
	}
	ref := desc.Shader(pass)
	source, ok := p.shaders[ref]
	if !ok {
		return "", fmt.Errorf("material %q: %q: %w", name, ref, ErrShaderAssetNotFound)
	}
	if pass == material.PassDeferred {
		source = injectDefines(source, deferredDefine)
	}
	return source, nil
}

// Program returns the compiled program of name for pass, compiling it on first use.
func (p *MaterialPipeline) Program(name string, pass material.Pass) (*Shader, error) {
	key := programKey{name: name, pass: pass}
	if shader, ok := p.programs[key]; ok {
		return shader, nil
	}

	fragment, err := p.FragmentSource(name, pass)
	if err != nil {
		return nil, err
	}
	shader := NewShader(p.vertexSource, fragment)
	if err := shader.Compile(); err != nil {
		return nil, fmt.Errorf("material %q (%s pass): %w", name, pass, err)
	}

	block := p.types[name].Block
	if !bindUniformBlock(shader.Program(), block) {
		logger.Log.Warn("Uniform block not active in program",
			zap.String("type", name), zap.String("block", block.Name), zap.String("pass", pass.String()))
	}

	p.programs[key] = &shader
	logger.Log.Debug("Material program compiled", zap.String("type", name), zap.String("pass", pass.String()))
	return &shader, nil
}

// Buffer returns the uniform buffer backing the block of name, creating it on first use.
func (p *MaterialPipeline) Buffer(name string) (*UniformBuffer, error) {
	desc, err := p.Descriptor(name)
	if err != nil {
		return nil, err
	}
	if ub, ok := p.buffers[desc.Block.Binding]; ok {
		return ub, nil
	}
	ub, err := NewUniformBuffer(desc.Block)
	if err != nil {
		return nil, err
	}
	p.buffers[desc.Block.Binding] = ub
	return ub, nil
}

// Cleanup releases GL objects. Registrations are kept.
func (p *MaterialPipeline) Cleanup() {
	for key, shader := range p.programs {
		shader.Delete()
		delete(p.programs, key)
	}
	for binding, ub := range p.buffers {
		ub.Delete()
		delete(p.buffers, binding)
	}
}
