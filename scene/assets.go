package scene

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"
)

// LoadMesh loads the first object of an OBJ, glTF or GLB file.
func LoadMesh(path string) (*Mesh, error) {
	var (
		meshes []*Mesh
		err    error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		meshes, err = LoadOBJ(path)
	case ".gltf", ".glb":
		meshes, err = LoadGLTF(path)
	default:
		return nil, fmt.Errorf("load mesh %q: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, err
	}
	return meshes[0], nil
}

// Assets are the two meshes the demo renders.
type Assets struct {
	Model  *Mesh
	Ground *Mesh

	procedural bool // Model is the built-in torus
}

// LoadAssets loads both meshes concurrently. An empty path selects a
// procedural stand-in: a torus for the model, a box for the ground.
func LoadAssets(ctx context.Context, modelPath, groundPath string) (*Assets, error) {
	a := &Assets{}
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		if modelPath == "" {
			a.Model = CreateTorus(1.5, 0.5, 48, 24)
			a.procedural = true
			return nil
		}
		m, err := LoadMesh(modelPath)
		if err != nil {
			return fmt.Errorf("model: %w", err)
		}
		a.Model = m
		return nil
	})
	g.Go(func() error {
		if groundPath == "" {
			a.Ground = CreateBox(1, 0.5, 1)
			return nil
		}
		m, err := LoadMesh(groundPath)
		if err != nil {
			return fmt.Errorf("ground: %w", err)
		}
		a.Ground = m
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return a, nil
}

// Objects places the model at the origin and stretches the ground under it.
func (a *Assets) Objects() []Object {
	model := mgl32.Ident4()
	if a.procedural {
		model = mgl32.Translate3D(0, 0.5, 0)
	}
	return []Object{
		{
			Mesh:     a.Model,
			World:    model,
			Albedo:   mgl32.Vec3{0.8, 0.8, 0.8},
			Specular: 0.5,
		},
		{
			Mesh:     a.Ground,
			World:    mgl32.Translate3D(0, -1, 0).Mul4(mgl32.Scale3D(10, 2, 10)),
			Albedo:   mgl32.Vec3{0.6, 0.6, 0.6},
			Specular: 0.1,
		},
	}
}
