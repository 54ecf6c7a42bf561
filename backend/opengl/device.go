// Package opengl provides an OpenGL 4.1 core Device and a GLFW window for
// the lines package.
package opengl

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/lines"
)

// Device implements lines.Device on the current OpenGL context.
// gl.Init must have succeeded on the calling thread; OpenWindow does this.
type Device struct{}

var _ lines.Device = Device{}

// NewDevice returns a Device for the current context.
func NewDevice() Device {
	return Device{}
}

func shaderType(stage lines.Stage) uint32 {
	if stage == lines.FragmentStage {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func primitiveMode(p lines.Primitive) uint32 {
	if p == lines.Triangles {
		return gl.TRIANGLES
	}
	return gl.LINES
}

func (Device) CreateShader(stage lines.Stage) lines.Shader {
	return lines.Shader(gl.CreateShader(shaderType(stage)))
}

func (Device) CompileShader(s lines.Shader, source string) bool {
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(s), 1, csource, nil)
	free()
	gl.CompileShader(uint32(s))

	var status int32
	gl.GetShaderiv(uint32(s), gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (Device) ShaderInfoLog(s lines.Shader) string {
	var logLength int32
	gl.GetShaderiv(uint32(s), gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	log := make([]byte, logLength+1)
	gl.GetShaderInfoLog(uint32(s), logLength, nil, &log[0])
	return string(log)
}

func (Device) DeleteShader(s lines.Shader) {
	gl.DeleteShader(uint32(s))
}

func (Device) CreateProgram() lines.Program {
	return lines.Program(gl.CreateProgram())
}

func (Device) AttachShader(p lines.Program, s lines.Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

func (Device) LinkProgram(p lines.Program) bool {
	gl.LinkProgram(uint32(p))

	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (Device) ProgramInfoLog(p lines.Program) string {
	var logLength int32
	gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	log := make([]byte, logLength+1)
	gl.GetProgramInfoLog(uint32(p), logLength, nil, &log[0])
	return string(log)
}

func (Device) DeleteProgram(p lines.Program) {
	gl.DeleteProgram(uint32(p))
}

func (Device) UseProgram(p lines.Program) {
	gl.UseProgram(uint32(p))
}

func (Device) UniformLocation(p lines.Program, name string) lines.Uniform {
	return lines.Uniform(gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00")))
}

func (Device) UniformMatrix4(u lines.Uniform, m mgl32.Mat4) {
	gl.UniformMatrix4fv(int32(u), 1, false, &m[0])
}

func (Device) Uniform3(u lines.Uniform, v mgl32.Vec3) {
	gl.Uniform3fv(int32(u), 1, &v[0])
}

func (Device) GenVertexArray() lines.VertexArray {
	var va uint32
	gl.GenVertexArrays(1, &va)
	return lines.VertexArray(va)
}

func (Device) BindVertexArray(va lines.VertexArray) {
	gl.BindVertexArray(uint32(va))
}

func (Device) DeleteVertexArray(va lines.VertexArray) {
	name := uint32(va)
	gl.DeleteVertexArrays(1, &name)
}

func (Device) GenBuffer() lines.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return lines.Buffer(b)
}

func (Device) BindArrayBuffer(b lines.Buffer) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
}

func (Device) BufferStaticData(data []float32) {
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*int(unsafe.Sizeof(data[0])), gl.Ptr(data), gl.STATIC_DRAW)
}

func (Device) VertexAttrib3f(index uint32) {
	stride := int32(3 * unsafe.Sizeof(float32(0)))
	gl.VertexAttribPointerWithOffset(index, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(index)
}

func (Device) DeleteBuffer(b lines.Buffer) {
	name := uint32(b)
	gl.DeleteBuffers(1, &name)
}

func (Device) DrawArrays(mode lines.Primitive, first, count int32) {
	gl.DrawArrays(primitiveMode(mode), first, count)
}
