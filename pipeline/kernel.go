package pipeline

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// GenerateKernel creates n hemisphere sample points (z >= 0) distributed with
// importance sampling: lengths follow lerp(0.1, 1, t²) so more samples sit
// close to the origin.
func GenerateKernel(n int, seed int64) []mgl32.Vec3 {
	rng := rand.New(rand.NewSource(seed))

	kernel := make([]mgl32.Vec3, n)
	for i := range kernel {
		v := mgl32.Vec3{
			rng.Float32()*2 - 1,
			rng.Float32()*2 - 1,
			rng.Float32(),
		}
		if v.Len() < 1e-4 {
			v = mgl32.Vec3{0, 0, 1}
		}
		v = v.Normalize()

		t := float32(i) / float32(n)
		kernel[i] = v.Mul(0.1 + 0.9*t*t)
	}
	return kernel
}

// NoiseSize is the edge length of the tiled rotation texture.
const NoiseSize = 4

// GenerateNoise creates NoiseSize² random XY rotation vectors (z = 0).
func GenerateNoise(seed int64) []mgl32.Vec3 {
	rng := rand.New(rand.NewSource(seed))

	noise := make([]mgl32.Vec3, NoiseSize*NoiseSize)
	for i := range noise {
		noise[i] = mgl32.Vec3{rng.Float32()*2 - 1, rng.Float32()*2 - 1, 0}
	}
	return noise
}
