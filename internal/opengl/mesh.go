package opengl

import (
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"deferred-engine/core"
	"deferred-engine/scene"
)

// gpuMesh holds the OpenGL buffer objects for an uploaded mesh.
type gpuMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	Count      int32
	HasIndices bool
}

// meshCache uploads each scene.Mesh once and keeps its buffers until
// release.
type meshCache struct {
	meshes map[*scene.Mesh]*gpuMesh
}

func newMeshCache() *meshCache {
	return &meshCache{meshes: make(map[*scene.Mesh]*gpuMesh)}
}

// ensureUploaded uploads vertex/index data if not already done.
func (c *meshCache) ensureUploaded(mesh *scene.Mesh) *gpuMesh {
	if gpu, ok := c.meshes[mesh]; ok {
		return gpu
	}
	if len(mesh.Vertices) == 0 {
		return nil
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))
	gpu := &gpuMesh{
		Count:      int32(mesh.DrawCount()),
		HasIndices: len(mesh.Indices) > 0,
	}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(stride), gl.Ptr(mesh.Vertices), gl.STATIC_DRAW)

	var v core.Vertex
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.Position))))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.UV))))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.Normal))))

	if gpu.HasIndices {
		gl.GenBuffers(1, &gpu.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)
	}
	gl.BindVertexArray(0)

	c.meshes[mesh] = gpu
	mesh.GPUData = gpu
	return gpu
}

// draw issues one draw call for mesh, uploading it first if needed.
func (c *meshCache) draw(mesh *scene.Mesh) {
	gpu := c.ensureUploaded(mesh)
	if gpu == nil {
		return
	}
	gl.BindVertexArray(gpu.VAO)
	if gpu.HasIndices {
		gl.DrawElements(gl.TRIANGLES, gpu.Count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, gpu.Count)
	}
	gl.BindVertexArray(0)
}

func (c *meshCache) release(mesh *scene.Mesh) {
	gpu, ok := c.meshes[mesh]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &gpu.VAO)
	gl.DeleteBuffers(1, &gpu.VBO)
	if gpu.HasIndices {
		gl.DeleteBuffers(1, &gpu.EBO)
	}
	delete(c.meshes, mesh)
	mesh.GPUData = nil
}

func (c *meshCache) destroy() {
	for mesh := range c.meshes {
		c.release(mesh)
	}
}
