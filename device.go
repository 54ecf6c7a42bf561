package lines

import "github.com/go-gl/mathgl/mgl32"

// Device is the graphics context every shader program and line segment
// talks to. It stands in for the process-wide GPU binding state (current
// program, vertex array, array buffer), so any value holding a Device can
// change that state.
//
// A Device is bound to the thread owning the rendering context and must not
// be used concurrently.
type Device interface {
	// CreateShader allocates an empty shader object for a stage.
	CreateShader(stage Stage) Shader
	// CompileShader sets the source of s and compiles it, reporting success.
	CompileShader(s Shader, source string) bool
	ShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	// LinkProgram links p, reporting success.
	LinkProgram(p Program) bool
	ProgramInfoLog(p Program) string
	DeleteProgram(p Program)
	UseProgram(p Program)

	UniformLocation(p Program, name string) Uniform
	// UniformMatrix4 uploads m (column-major) to u of the program in use.
	UniformMatrix4(u Uniform, m mgl32.Mat4)
	// Uniform3 uploads v to u of the program in use.
	Uniform3(u Uniform, v mgl32.Vec3)

	GenVertexArray() VertexArray
	BindVertexArray(va VertexArray)
	DeleteVertexArray(va VertexArray)

	GenBuffer() Buffer
	BindArrayBuffer(b Buffer)
	// BufferStaticData uploads data to the bound array buffer with static usage.
	BufferStaticData(data []float32)
	// VertexAttrib3f points attribute index of the bound vertex array at
	// tightly packed 3-float vertices in the bound array buffer and enables it.
	VertexAttrib3f(index uint32)
	DeleteBuffer(b Buffer)

	DrawArrays(mode Primitive, first, count int32)
}
