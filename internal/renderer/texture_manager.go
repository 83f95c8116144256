package renderer

import (
	"ScrollMat/internal/logger"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// TextureStats provides debugging and profiling information
type TextureStats struct {
	TotalTextures  int
	CacheHits      int
	CacheMisses    int
	ActiveTextures int
}

// TextureManager caches textures by file path or image name and frees them
// when their last reference is released.
type TextureManager struct {
	textureCache    map[string]uint32 // key -> texture ID
	textureRefCount map[uint32]int
	textureKeys     map[uint32]string
	mu              sync.Mutex
	stats           TextureStats

	upload  func(rgba *image.RGBA) uint32
	release func(textureID uint32)
	decode  func(path string) (image.Image, error)
}

// NewTextureManager creates a texture manager uploading through OpenGL.
func NewTextureManager() *TextureManager {
	return newTextureManager(uploadRGBA, deleteTexture, decodeImageFile)
}

func newTextureManager(upload func(*image.RGBA) uint32, release func(uint32), decode func(string) (image.Image, error)) *TextureManager {
	return &TextureManager{
		textureCache:    make(map[string]uint32),
		textureRefCount: make(map[uint32]int),
		textureKeys:     make(map[uint32]string),
		upload:          upload,
		release:         release,
		decode:          decode,
	}
}

// LoadTexture loads a texture from file or returns the cached texture ID.
func (tm *TextureManager) LoadTexture(filePath string) (uint32, error) {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if textureID, ok := tm.hit(filePath); ok {
		return textureID, nil
	}

	img, err := tm.decode(filePath)
	if err != nil {
		return 0, fmt.Errorf("load texture %s: %w", filePath, err)
	}
	return tm.store(filePath, img), nil
}

// CreateTextureFromImage uploads img under name, or returns the texture
// already cached under that name.
func (tm *TextureManager) CreateTextureFromImage(img image.Image, name string) (uint32, error) {
	if img == nil {
		return 0, fmt.Errorf("create texture %s: nil image", name)
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	if name != "" {
		if textureID, ok := tm.hit(name); ok {
			return textureID, nil
		}
	}
	return tm.store(name, img), nil
}

func (tm *TextureManager) hit(key string) (uint32, bool) {
	textureID, exists := tm.textureCache[key]
	if !exists {
		tm.stats.CacheMisses++
		return 0, false
	}
	tm.textureRefCount[textureID]++
	tm.stats.CacheHits++
	logger.Log.Debug("Texture cache hit",
		zap.String("key", key),
		zap.Uint32("textureID", textureID),
		zap.Int("refCount", tm.textureRefCount[textureID]))
	return textureID, true
}

func (tm *TextureManager) store(key string, img image.Image) uint32 {
	rgba := toRGBA(img)
	textureID := tm.upload(rgba)

	if key != "" {
		tm.textureCache[key] = textureID
	}
	tm.textureRefCount[textureID] = 1
	tm.textureKeys[textureID] = key
	tm.stats.TotalTextures++

	logger.Log.Info("Texture created",
		zap.String("key", key),
		zap.Uint32("textureID", textureID),
		zap.Int("width", rgba.Rect.Dx()),
		zap.Int("height", rgba.Rect.Dy()))
	return textureID
}

// ReleaseTexture decrements the reference count and frees the texture at zero.
func (tm *TextureManager) ReleaseTexture(textureID uint32) {
	if textureID == 0 {
		return
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	refCount, exists := tm.textureRefCount[textureID]
	if !exists {
		logger.Log.Warn("Attempted to release unknown texture", zap.Uint32("textureID", textureID))
		return
	}

	refCount--
	if refCount > 0 {
		tm.textureRefCount[textureID] = refCount
		return
	}

	tm.release(textureID)
	key := tm.textureKeys[textureID]
	if tm.textureCache[key] == textureID {
		delete(tm.textureCache, key)
	}
	delete(tm.textureRefCount, textureID)
	delete(tm.textureKeys, textureID)
	logger.Log.Debug("Texture freed", zap.Uint32("textureID", textureID), zap.String("key", key))
}

func (tm *TextureManager) GetStats() TextureStats {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	stats := tm.stats
	stats.ActiveTextures = len(tm.textureRefCount)
	return stats
}

// Clear frees every texture regardless of references.
func (tm *TextureManager) Clear() {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	for textureID := range tm.textureRefCount {
		tm.release(textureID)
	}
	tm.textureCache = make(map[string]uint32)
	tm.textureRefCount = make(map[uint32]int)
	tm.textureKeys = make(map[uint32]string)
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == rgba.Rect.Dx()*4 {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

func decodeImageFile(path string) (image.Image, error) {
	imgFile, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer imgFile.Close()

	img, _, err := image.Decode(imgFile)
	return img, err
}

// uploadRGBA creates a repeating, mipmapped texture. Scrolled UVs leave [0,1]
// so the wrap mode must be REPEAT.
func uploadRGBA(rgba *image.RGBA) uint32 {
	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(rgba.Rect.Dx()), int32(rgba.Rect.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	currentTextureID = ^uint32(0)
	return textureID
}

func deleteTexture(textureID uint32) {
	gl.DeleteTextures(1, &textureID)
}
