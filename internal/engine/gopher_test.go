package engine

import (
	"ScrollMat/internal/config"
	"ScrollMat/internal/material"
	"ScrollMat/internal/renderer"
	"ScrollMat/internal/scrollmat"
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type failingPlugin struct{ err error }

func (p failingPlugin) Name() string                   { return "failing" }
func (p failingPlugin) Build(material.Registrar) error { return p.err }

func resetRenderFlags(t *testing.T) {
	deferred, face, frustum, debug := renderer.DeferredShadingEnabled, renderer.FaceCullingEnabled,
		renderer.FrustumCullingEnabled, renderer.Debug
	t.Cleanup(func() {
		renderer.DeferredShadingEnabled = deferred
		renderer.FaceCullingEnabled = face
		renderer.FrustumCullingEnabled = frustum
		renderer.Debug = debug
	})
}

func TestNewGopherDefaults(t *testing.T) {
	g := NewGopher(OPENGL)
	if g.Width != 1024 || g.Height != 768 {
		t.Errorf("Expected 1024x768, got %dx%d", g.Width, g.Height)
	}
	if g.Camera == nil {
		t.Fatal("Expected a camera before Render")
	}
	if g.Input == nil {
		t.Error("Expected key input to be ready")
	}
}

func TestWithConfig(t *testing.T) {
	resetRenderFlags(t)
	cfg := config.Default()
	cfg.Window.Width, cfg.Window.Height = 640, 480
	cfg.Window.Title = "Scroll demo"
	cfg.Render.DeferredShading = true

	g := NewGopher(OPENGL, WithConfig(cfg), WithTitle("Override"))

	if g.Width != 640 || g.Height != 480 {
		t.Errorf("Expected 640x480, got %dx%d", g.Width, g.Height)
	}
	if g.Title != "Override" {
		t.Errorf("Expected later options to win, got title %q", g.Title)
	}
	if !renderer.DeferredShadingEnabled {
		t.Error("Expected deferred shading to be enabled from config")
	}
	if g.Camera.AspectRatio != float32(640)/480 {
		t.Errorf("Expected camera aspect ratio from window size, got %f", g.Camera.AspectRatio)
	}
}

func TestBuildPluginsRegistersType(t *testing.T) {
	g := NewGopher(OPENGL)
	g.AddPlugin(scrollmat.NewPlugin())

	if err := g.BuildPlugins(); err != nil {
		t.Fatalf("Expected plugin to build, got %v", err)
	}
	if !g.Materials().Supports(scrollmat.TypeName) {
		t.Error("Expected scroll material to be supported after build")
	}
}

func TestBuildPluginsTwiceIsHostError(t *testing.T) {
	g := NewGopher(OPENGL)
	g.AddPlugin(scrollmat.NewPlugin())
	if err := g.BuildPlugins(); err != nil {
		t.Fatalf("First build failed: %v", err)
	}

	g.AddPlugin(scrollmat.NewPlugin())
	err := g.BuildPlugins()
	if err == nil {
		t.Fatal("Expected second registration to fail")
	}
	if !errors.Is(err, renderer.ErrShaderAssetExists) && !errors.Is(err, renderer.ErrMaterialTypeExists) {
		t.Errorf("Expected a duplicate registration error, got %v", err)
	}
}

func TestBuildPluginsPropagatesError(t *testing.T) {
	sentinel := errors.New("boom")
	g := NewGopher(OPENGL)
	g.AddPlugin(failingPlugin{err: sentinel})

	if err := g.BuildPlugins(); !errors.Is(err, sentinel) {
		t.Errorf("Expected plugin error to be wrapped, got %v", err)
	}
}

func TestSpawnExtendedQueuesBeforeRender(t *testing.T) {
	g := NewGopher(OPENGL)
	g.AddPlugin(scrollmat.NewPlugin())
	if err := g.BuildPlugins(); err != nil {
		t.Fatal(err)
	}

	model := &renderer.Model{Name: "Cube"}
	ext := scrollmat.NewExtension(mgl32.Vec2{0, 1})
	if err := g.SpawnExtended(model, nil, ext); err != nil {
		t.Fatalf("Expected spawn to succeed, got %v", err)
	}

	if model.Extension != ext {
		t.Error("Expected extension to be attached")
	}
	if model.Material != renderer.DefaultMaterial {
		t.Error("Expected nil base to fall back to the default material")
	}
	if len(g.pending) != 1 || g.pending[0] != model {
		t.Errorf("Expected model to wait for the renderer, got %d pending", len(g.pending))
	}

	g.RemoveModel(model)
	if len(g.pending) != 0 {
		t.Error("Expected pending model to be removed")
	}
}

func TestSpawnExtendedUnknownType(t *testing.T) {
	g := NewGopher(OPENGL)
	model := &renderer.Model{Name: "Cube"}

	err := g.SpawnExtended(model, nil, scrollmat.NewExtension(mgl32.Vec2{}))
	if !errors.Is(err, renderer.ErrUnknownMaterialType) {
		t.Errorf("Expected ErrUnknownMaterialType, got %v", err)
	}
	if model.Extension != nil {
		t.Error("Model should be untouched when spawn fails")
	}
}
