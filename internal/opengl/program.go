package opengl

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrMissingUniform is returned when a program lacks a uniform the pass
// cannot work without.
var ErrMissingUniform = errors.New("missing uniform")

// program is a linked shader program plus its resolved uniform locations.
type program struct {
	id   uint32
	name string
	err  error // first required uniform that failed to resolve
}

func newNamedProgram(name, vertSrc, fragSrc string) (*program, error) {
	id, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("%s shader: %w", name, err)
	}
	return &program{id: id, name: name}, nil
}

// required resolves a uniform that must exist. A miss is remembered and
// reported by check, so a constructor can resolve everything first.
func (p *program) required(uniform string) int32 {
	loc := gl.GetUniformLocation(p.id, gl.Str(uniform+"\x00"))
	if loc < 0 && p.err == nil {
		p.err = fmt.Errorf("%s: %q: %w", p.name, uniform, ErrMissingUniform)
	}
	return loc
}

// optional resolves a uniform the driver may have optimised away. GL
// ignores writes to location -1.
func (p *program) optional(uniform string) int32 {
	return gl.GetUniformLocation(p.id, gl.Str(uniform+"\x00"))
}

func (p *program) check() error {
	return p.err
}

func (p *program) use() {
	gl.UseProgram(p.id)
}

func (p *program) delete() {
	if p != nil && p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

func setMat4(loc int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, (*float32)(unsafe.Pointer(&m[0])))
}

func setVec3(loc int32, v mgl32.Vec3) {
	gl.Uniform3f(loc, v[0], v[1], v[2])
}

// ── Shader helpers ────────────────────────────────────────────────────────────

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", strings.TrimRight(log, "\x00"))
	}
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}
