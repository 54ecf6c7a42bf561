// Package gltest provides a recording lines.Device for tests.
//
// Device keeps enough GL object state (shader sources, attached shaders,
// buffer contents, vertex array bindings, uniform values) to check what a
// real driver would draw, and records every call in order.
package gltest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/lines"
)

// Call is one recorded device call.
type Call struct {
	Name string
	Args []any
}

// Draw is a recorded draw call together with the state it consumed.
type Draw struct {
	Mode        lines.Primitive
	First       int32
	Count       int32
	Program     lines.Program
	VertexArray lines.VertexArray
	// Vertices is the content of the buffer feeding attribute 0.
	Vertices []float32
	// Uniforms maps uniform names to the last uploaded value
	// (mgl32.Mat4 or mgl32.Vec3).
	Uniforms map[string]any
}

type shaderObj struct {
	stage    lines.Stage
	source   string
	compiled bool
	log      string
}

type programObj struct {
	attached []lines.Shader
	sources  []string
	linked   bool
	log      string
	uniforms map[string]lines.Uniform
	values   map[lines.Uniform]any
}

// Device records calls made through the lines.Device interface.
// The zero value is not usable; call New.
type Device struct {
	Calls []Call
	Draws []Draw
	// Errors collects GL errors a driver would have raised, such as
	// deleting an unknown object or drawing without a program.
	Errors []string

	// FailCompile forces compilation of a stage to fail with the given log.
	FailCompile map[lines.Stage]string
	// FailLink forces linking to fail with LinkLog.
	FailLink bool
	LinkLog  string

	next     uint32
	shaders  map[lines.Shader]*shaderObj
	programs map[lines.Program]*programObj
	buffers  map[lines.Buffer][]float32
	arrays   map[lines.VertexArray]lines.Buffer

	currentProgram lines.Program
	boundArray     lines.VertexArray
	boundBuffer    lines.Buffer
}

var _ lines.Device = (*Device)(nil)

// New creates an empty recording device.
func New() *Device {
	return &Device{
		FailCompile: make(map[lines.Stage]string),
		shaders:     make(map[lines.Shader]*shaderObj),
		programs:    make(map[lines.Program]*programObj),
		buffers:     make(map[lines.Buffer][]float32),
		arrays:      make(map[lines.VertexArray]lines.Buffer),
	}
}

func (d *Device) record(name string, args ...any) {
	d.Calls = append(d.Calls, Call{Name: name, Args: args})
}

func (d *Device) errorf(format string, args ...any) {
	d.Errors = append(d.Errors, fmt.Sprintf(format, args...))
}

func (d *Device) name() uint32 {
	d.next++
	return d.next
}

// Count returns how many times the named call was recorded.
func (d *Device) Count(name string) int {
	n := 0
	for _, c := range d.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Names returns the recorded call names in order.
func (d *Device) Names() []string {
	names := make([]string, len(d.Calls))
	for i, c := range d.Calls {
		names[i] = c.Name
	}
	return names
}

// Reset forgets recorded calls, draws and errors but keeps object state.
func (d *Device) Reset() {
	d.Calls = nil
	d.Draws = nil
	d.Errors = nil
}

// LiveShaders returns the number of shader objects not yet deleted.
func (d *Device) LiveShaders() int { return len(d.shaders) }

// LivePrograms returns the number of program objects not yet deleted.
func (d *Device) LivePrograms() int { return len(d.programs) }

// LiveBuffers returns the number of buffer objects not yet deleted.
func (d *Device) LiveBuffers() int { return len(d.buffers) }

// LiveVertexArrays returns the number of vertex arrays not yet deleted.
func (d *Device) LiveVertexArrays() int { return len(d.arrays) }

// BufferData returns the content of a live buffer.
func (d *Device) BufferData(b lines.Buffer) ([]float32, bool) {
	data, ok := d.buffers[b]
	return data, ok
}

func (d *Device) CreateShader(stage lines.Stage) lines.Shader {
	s := lines.Shader(d.name())
	d.shaders[s] = &shaderObj{stage: stage}
	d.record("CreateShader", stage)
	return s
}

func (d *Device) CompileShader(s lines.Shader, source string) bool {
	d.record("CompileShader", s, source)
	obj, ok := d.shaders[s]
	if !ok {
		d.errorf("CompileShader: unknown shader %d", s)
		return false
	}
	obj.source = source
	if log, fail := d.FailCompile[obj.stage]; fail {
		obj.log = log
		return false
	}
	obj.log = validateSource(source)
	obj.compiled = obj.log == ""
	return obj.compiled
}

func (d *Device) ShaderInfoLog(s lines.Shader) string {
	d.record("ShaderInfoLog", s)
	if obj, ok := d.shaders[s]; ok {
		return obj.log
	}
	d.errorf("ShaderInfoLog: unknown shader %d", s)
	return ""
}

func (d *Device) DeleteShader(s lines.Shader) {
	d.record("DeleteShader", s)
	if _, ok := d.shaders[s]; !ok {
		d.errorf("DeleteShader: unknown shader %d", s)
		return
	}
	delete(d.shaders, s)
}

func (d *Device) CreateProgram() lines.Program {
	p := lines.Program(d.name())
	d.programs[p] = &programObj{
		uniforms: make(map[string]lines.Uniform),
		values:   make(map[lines.Uniform]any),
	}
	d.record("CreateProgram")
	return p
}

func (d *Device) AttachShader(p lines.Program, s lines.Shader) {
	d.record("AttachShader", p, s)
	prog, ok := d.programs[p]
	if !ok {
		d.errorf("AttachShader: unknown program %d", p)
		return
	}
	if _, ok := d.shaders[s]; !ok {
		d.errorf("AttachShader: unknown shader %d", s)
		return
	}
	prog.attached = append(prog.attached, s)
}

func (d *Device) LinkProgram(p lines.Program) bool {
	d.record("LinkProgram", p)
	prog, ok := d.programs[p]
	if !ok {
		d.errorf("LinkProgram: unknown program %d", p)
		return false
	}
	if d.FailLink {
		prog.log = d.LinkLog
		return false
	}

	stages := make(map[lines.Stage]bool)
	prog.sources = prog.sources[:0]
	for _, s := range prog.attached {
		obj := d.shaders[s]
		if obj == nil || !obj.compiled {
			prog.log = fmt.Sprintf("error: shader %d not compiled", s)
			return false
		}
		stages[obj.stage] = true
		prog.sources = append(prog.sources, obj.source)
	}
	if !stages[lines.VertexStage] || !stages[lines.FragmentStage] {
		prog.log = "error: program needs a vertex and a fragment shader"
		return false
	}

	loc := lines.Uniform(0)
	for _, src := range prog.sources {
		for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
			if _, dup := prog.uniforms[m[1]]; !dup {
				prog.uniforms[m[1]] = loc
				loc++
			}
		}
	}
	prog.linked = true
	return true
}

func (d *Device) ProgramInfoLog(p lines.Program) string {
	d.record("ProgramInfoLog", p)
	if prog, ok := d.programs[p]; ok {
		return prog.log
	}
	d.errorf("ProgramInfoLog: unknown program %d", p)
	return ""
}

func (d *Device) DeleteProgram(p lines.Program) {
	d.record("DeleteProgram", p)
	if _, ok := d.programs[p]; !ok {
		d.errorf("DeleteProgram: unknown program %d", p)
		return
	}
	delete(d.programs, p)
	if d.currentProgram == p {
		d.currentProgram = 0
	}
}

func (d *Device) UseProgram(p lines.Program) {
	d.record("UseProgram", p)
	if p != 0 {
		prog, ok := d.programs[p]
		if !ok || !prog.linked {
			d.errorf("UseProgram: program %d not linked", p)
			return
		}
	}
	d.currentProgram = p
}

func (d *Device) UniformLocation(p lines.Program, name string) lines.Uniform {
	d.record("UniformLocation", p, name)
	prog, ok := d.programs[p]
	if !ok || !prog.linked {
		d.errorf("UniformLocation: program %d not linked", p)
		return -1
	}
	if u, ok := prog.uniforms[name]; ok {
		return u
	}
	return -1
}

func (d *Device) setUniform(call string, u lines.Uniform, v any) {
	d.record(call, u, v)
	prog, ok := d.programs[d.currentProgram]
	if !ok {
		d.errorf("%s: no program in use", call)
		return
	}
	if u == -1 {
		return
	}
	prog.values[u] = v
}

func (d *Device) UniformMatrix4(u lines.Uniform, m mgl32.Mat4) {
	d.setUniform("UniformMatrix4", u, m)
}

func (d *Device) Uniform3(u lines.Uniform, v mgl32.Vec3) {
	d.setUniform("Uniform3", u, v)
}

func (d *Device) GenVertexArray() lines.VertexArray {
	va := lines.VertexArray(d.name())
	d.arrays[va] = 0
	d.record("GenVertexArray")
	return va
}

func (d *Device) BindVertexArray(va lines.VertexArray) {
	d.record("BindVertexArray", va)
	if _, ok := d.arrays[va]; va != 0 && !ok {
		d.errorf("BindVertexArray: unknown vertex array %d", va)
		return
	}
	d.boundArray = va
}

func (d *Device) DeleteVertexArray(va lines.VertexArray) {
	d.record("DeleteVertexArray", va)
	if _, ok := d.arrays[va]; !ok {
		d.errorf("DeleteVertexArray: unknown vertex array %d", va)
		return
	}
	delete(d.arrays, va)
	if d.boundArray == va {
		d.boundArray = 0
	}
}

func (d *Device) GenBuffer() lines.Buffer {
	b := lines.Buffer(d.name())
	d.buffers[b] = nil
	d.record("GenBuffer")
	return b
}

func (d *Device) BindArrayBuffer(b lines.Buffer) {
	d.record("BindArrayBuffer", b)
	if _, ok := d.buffers[b]; b != 0 && !ok {
		d.errorf("BindArrayBuffer: unknown buffer %d", b)
		return
	}
	d.boundBuffer = b
}

func (d *Device) BufferStaticData(data []float32) {
	d.record("BufferStaticData", append([]float32(nil), data...))
	if d.boundBuffer == 0 {
		d.errorf("BufferStaticData: no array buffer bound")
		return
	}
	d.buffers[d.boundBuffer] = append([]float32(nil), data...)
}

func (d *Device) VertexAttrib3f(index uint32) {
	d.record("VertexAttrib3f", index)
	if d.boundArray == 0 || d.boundBuffer == 0 {
		d.errorf("VertexAttrib3f: vertex array %d, buffer %d", d.boundArray, d.boundBuffer)
		return
	}
	if index == 0 {
		d.arrays[d.boundArray] = d.boundBuffer
	}
}

func (d *Device) DeleteBuffer(b lines.Buffer) {
	d.record("DeleteBuffer", b)
	if _, ok := d.buffers[b]; !ok {
		d.errorf("DeleteBuffer: unknown buffer %d", b)
		return
	}
	delete(d.buffers, b)
	if d.boundBuffer == b {
		d.boundBuffer = 0
	}
}

func (d *Device) DrawArrays(mode lines.Primitive, first, count int32) {
	d.record("DrawArrays", mode, first, count)
	prog, ok := d.programs[d.currentProgram]
	if !ok {
		d.errorf("DrawArrays: no program in use")
		return
	}
	if d.boundArray == 0 {
		d.errorf("DrawArrays: no vertex array bound")
		return
	}

	draw := Draw{
		Mode:        mode,
		First:       first,
		Count:       count,
		Program:     d.currentProgram,
		VertexArray: d.boundArray,
		Uniforms:    make(map[string]any),
	}
	if data, ok := d.buffers[d.arrays[d.boundArray]]; ok {
		draw.Vertices = append([]float32(nil), data...)
	}
	for name, u := range prog.uniforms {
		if v, ok := prog.values[u]; ok {
			draw.Uniforms[name] = v
		}
	}
	d.Draws = append(d.Draws, draw)
}

var uniformDecl = regexp.MustCompile(`(?m)^\s*uniform\s+\w+\s+(\w+)\s*;`)

// validateSource does a shallow syntax check standing in for the driver's
// compiler. It returns an info log for malformed source, or "".
func validateSource(source string) string {
	if !strings.HasPrefix(strings.TrimSpace(source), "#version") {
		return "0:1(1): error: #version directive required"
	}
	if !strings.Contains(source, "void main") {
		return "0:1(1): error: missing main function"
	}
	depth := 0
	for i, line := range strings.Split(source, "\n") {
		t := strings.TrimSpace(line)
		depth += strings.Count(t, "{") - strings.Count(t, "}")
		if depth < 0 {
			return fmt.Sprintf("0:%d(1): error: unexpected '}'", i+1)
		}
		if t == "" || strings.HasPrefix(t, "#") || strings.HasPrefix(t, "//") {
			continue
		}
		switch t[len(t)-1] {
		case ';', '{', '}', ',', '(':
		default:
			return fmt.Sprintf("0:%d(1): error: syntax error, unexpected end of statement", i+2)
		}
	}
	if depth != 0 {
		return "0:1(1): error: unbalanced braces"
	}
	return ""
}
