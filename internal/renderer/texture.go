package renderer

import (
	"ScrollMat/internal/logger"
	"image"
	"image/color"
	"math"
	"runtime"

	"github.com/alitto/pond/v2"
	perlin "github.com/aquilax/go-perlin"
	"go.uber.org/zap"
)

// uvDebugPalette is one row of the UV debug texture. Each following row is
// shifted right by one pixel so the scroll direction is readable.
var uvDebugPalette = [8]color.RGBA{
	{255, 102, 159, 255},
	{255, 159, 102, 255},
	{236, 255, 102, 255},
	{121, 255, 102, 255},
	{102, 255, 198, 255},
	{102, 198, 255, 255},
	{121, 102, 255, 255},
	{236, 102, 255, 255},
}

const uvDebugSize = len(uvDebugPalette)

// UVDebugImage returns the 8x8 diagonal-stripe test texture.
func UVDebugImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, uvDebugSize, uvDebugSize))
	for y := 0; y < uvDebugSize; y++ {
		for x := 0; x < uvDebugSize; x++ {
			img.SetRGBA(x, y, uvDebugPalette[((x-y)%uvDebugSize+uvDebugSize)%uvDebugSize])
		}
	}
	return img
}

// SolidImage returns a width x height image of a single color.
func SolidImage(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

// Perlin parameters for NoiseImage.
const (
	noiseAlpha  = 2
	noiseBeta   = 2
	noiseOctave = 3
	noiseScale  = 0.08
)

// NoiseImage returns a tileable perlin noise texture mapped onto a lava ramp.
// The same seed always gives the same image.
func NoiseImage(width, height int, seed int64) *image.RGBA {
	p := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, seed)
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	w, h := float64(width), float64(height)
	err := fillRows(height, func(y int) {
		fy := float64(y)
		for x := 0; x < width; x++ {
			fx := float64(x)
			// Blend four shifted samples so opposite edges match under REPEAT
			n := (sample(p, fx, fy)*(w-fx)*(h-fy) +
				sample(p, fx-w, fy)*fx*(h-fy) +
				sample(p, fx-w, fy-h)*fx*fy +
				sample(p, fx, fy-h)*(w-fx)*fy) / (w * h)
			img.SetRGBA(x, y, lavaRamp(n))
		}
	})
	if err != nil {
		logger.Log.Error("Noise texture incomplete", zap.Int64("seed", seed), zap.Error(err))
	}
	return img
}

// fillRows runs row for every y in [0,height) on a worker pool. The rows must
// be independent. A panicking row is reported as the returned error.
func fillRows(height int, row func(y int)) error {
	pool := pond.NewPool(runtime.NumCPU())
	defer pool.StopAndWait()
	group := pool.NewGroup()
	for y := 0; y < height; y++ {
		y := y
		group.Submit(func() { row(y) })
	}
	return group.Wait()
}

func sample(p *perlin.Perlin, x, y float64) float64 {
	return p.Noise2D(x*noiseScale, y*noiseScale)
}

// lavaRamp maps noise in roughly [-1,1] from dark crust to bright yellow.
func lavaRamp(n float64) color.RGBA {
	t := math.Max(0, math.Min(1, n*1.5+0.5))
	return color.RGBA{
		R: uint8(80 + 175*t),
		G: uint8(200 * t * t),
		B: uint8(40 * t * t * t),
		A: 255,
	}
}
