package scrollmat

import (
	"ScrollMat/internal/logger"
	"ScrollMat/internal/material"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// ErrEmptyShaderSource is returned when the resolved fragment source is blank.
var ErrEmptyShaderSource = errors.New("scrollmat: empty shader source")

// PluginOption configures a Plugin during construction.
type PluginOption func(*Plugin)

// WithShaderSource replaces the fragment shader source.
func WithShaderSource(source string) PluginOption {
	return func(p *Plugin) {
		p.shaderSource = source
		p.shaderPath = ""
	}
}

// WithShaderPath loads the fragment shader from a file at Build time.
// An empty path keeps the current source.
func WithShaderPath(path string) PluginOption {
	return func(p *Plugin) {
		p.shaderPath = path
	}
}

// Plugin installs the scroll material extension into a host.
type Plugin struct {
	shaderSource string
	shaderPath   string
}

var _ material.Plugin = &Plugin{}

// NewPlugin returns a plugin using DefaultFragmentShader unless an option
// supplies another source.
func NewPlugin(options ...PluginOption) *Plugin {
	p := &Plugin{shaderSource: DefaultFragmentShader}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *Plugin) Name() string {
	return TypeName
}

// Build registers the fragment shader asset and the extended material type.
// It is meant to run once; a second call fails with whatever duplicate error
// the host reports.
func (p *Plugin) Build(reg material.Registrar) error {
	source, err := p.resolveShader()
	if err != nil {
		return err
	}
	if err := reg.RegisterShaderAsset(FragmentShaderRef, source); err != nil {
		return fmt.Errorf("scrollmat: register shader %q: %w", FragmentShaderRef, err)
	}
	if err := reg.RegisterMaterialType(Descriptor()); err != nil {
		return fmt.Errorf("scrollmat: register material type: %w", err)
	}
	logger.Log.Info("Scroll material registered",
		zap.String("type", TypeName),
		zap.String("shader", string(FragmentShaderRef)),
		zap.Uint32("binding", Binding))
	return nil
}

// Source returns the fragment shader source Build would register.
func (p *Plugin) Source() (string, error) {
	return p.resolveShader()
}

func (p *Plugin) resolveShader() (string, error) {
	source := p.shaderSource
	if p.shaderPath != "" {
		data, err := os.ReadFile(p.shaderPath)
		if err != nil {
			return "", fmt.Errorf("scrollmat: read shader %q: %w", p.shaderPath, err)
		}
		source = string(data)
	}
	if strings.TrimSpace(source) == "" {
		return "", ErrEmptyShaderSource
	}
	return source, nil
}
