package lines

import (
	"errors"
	"fmt"
	"strings"
)

// MaxInfoLogLength bounds the diagnostic text kept from a failed compile or link.
const MaxInfoLogLength = 512

// Uniform names used by the built-in line shaders.
const (
	TransformUniform = "MVP"
	ColorUniform     = "color"
)

// LineVertexShader transforms attribute 0 by the MVP uniform.
const LineVertexShader = `#version 330 core
layout (location = 0) in vec3 aPos;
uniform mat4 MVP;
void main() {
    gl_Position = MVP * vec4(aPos, 1.0);
}
`

// LineFragmentShader fills with the color uniform.
const LineFragmentShader = `#version 330 core
out vec4 FragColor;
uniform vec3 color;
void main() {
    FragColor = vec4(color, 1.0);
}
`

var (
	ErrNilDevice      = errors.New("lines: nil device")
	ErrNilProgram     = errors.New("lines: nil shader program")
	ErrProgramDeleted = errors.New("lines: shader program deleted")
)

// ErrorKind classifies a ShaderError.
type ErrorKind int

const (
	CompileFailed ErrorKind = iota + 1
	LinkFailed
)

func (k ErrorKind) String() string {
	switch k {
	case CompileFailed:
		return "compile failed"
	case LinkFailed:
		return "link failed"
	default:
		return "unknown"
	}
}

// ShaderError reports a failed stage compile or program link.
// Stage is meaningful only for CompileFailed.
type ShaderError struct {
	Kind  ErrorKind
	Stage Stage
	Log   string
}

func (e *ShaderError) Error() string {
	if e.Kind == CompileFailed {
		return fmt.Sprintf("%s shader compilation failed: %s", e.Stage, e.Log)
	}
	return fmt.Sprintf("shader program linking failed: %s", e.Log)
}

// ShaderProgram is a linked vertex+fragment program.
//
// A program is shared by reference. The creator holds one reference and
// every LineSegment built on it holds another; the GPU program is deleted
// when the last reference is dropped.
type ShaderProgram struct {
	dev      Device
	handle   Program
	uniforms map[string]Uniform
	refs     int
	owned    bool // creator reference not yet dropped by Delete
}

// CompileProgram compiles both stages and links them.
// Nothing is linked if either stage fails. The intermediate shader objects
// are always deleted before returning.
func CompileProgram(dev Device, vertexSource, fragmentSource string) (*ShaderProgram, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}

	vs, err := compileStage(dev, VertexStage, vertexSource)
	if err != nil {
		return nil, err
	}
	defer dev.DeleteShader(vs)

	fs, err := compileStage(dev, FragmentStage, fragmentSource)
	if err != nil {
		return nil, err
	}
	defer dev.DeleteShader(fs)

	program := dev.CreateProgram()
	dev.AttachShader(program, vs)
	dev.AttachShader(program, fs)
	if !dev.LinkProgram(program) {
		log := boundInfoLog(dev.ProgramInfoLog(program))
		dev.DeleteProgram(program)
		logger.Warn("shader program link failed", "log", log)
		return nil, &ShaderError{Kind: LinkFailed, Log: log}
	}

	logger.Debug("shader program linked", "program", program)
	return &ShaderProgram{
		dev:      dev,
		handle:   program,
		uniforms: make(map[string]Uniform),
		refs:     1,
		owned:    true,
	}, nil
}

// NewLineProgram compiles the built-in line shaders.
func NewLineProgram(dev Device) (*ShaderProgram, error) {
	return CompileProgram(dev, LineVertexShader, LineFragmentShader)
}

func compileStage(dev Device, stage Stage, source string) (Shader, error) {
	s := dev.CreateShader(stage)
	if dev.CompileShader(s, source) {
		return s, nil
	}
	log := boundInfoLog(dev.ShaderInfoLog(s))
	dev.DeleteShader(s)
	logger.Warn("shader compile failed", "stage", stage, "log", log)
	return 0, &ShaderError{Kind: CompileFailed, Stage: stage, Log: log}
}

// boundInfoLog trims driver padding and keeps at most MaxInfoLogLength bytes.
// An empty log is replaced so a failure never carries an empty diagnostic.
func boundInfoLog(log string) string {
	log = strings.TrimRight(log, "\x00 \t\r\n")
	if len(log) > MaxInfoLogLength {
		log = strings.ToValidUTF8(log[:MaxInfoLogLength], "")
	}
	if log == "" {
		log = "no info log"
	}
	return log
}

// Handle returns the GPU program, or 0 once it has been deleted.
func (p *ShaderProgram) Handle() Program {
	return p.handle
}

// Usable reports whether new segments may be built on the program.
func (p *ShaderProgram) Usable() bool {
	return p != nil && p.owned && p.refs > 0
}

// Location resolves a uniform by name. Lookups are cached per program.
func (p *ShaderProgram) Location(name string) Uniform {
	if u, ok := p.uniforms[name]; ok {
		return u
	}
	u := p.dev.UniformLocation(p.handle, name)
	p.uniforms[name] = u
	return u
}

// Delete drops the creator's reference. The GPU program is released once no
// LineSegment holds it either. A second call returns ErrProgramDeleted.
func (p *ShaderProgram) Delete() error {
	if p == nil {
		return ErrNilProgram
	}
	if !p.owned {
		return ErrProgramDeleted
	}
	p.owned = false
	return p.release()
}

func (p *ShaderProgram) retain() error {
	if !p.Usable() {
		return ErrProgramDeleted
	}
	p.refs++
	return nil
}

func (p *ShaderProgram) release() error {
	if p.refs == 0 {
		return ErrProgramDeleted
	}
	p.refs--
	if p.refs == 0 {
		p.dev.DeleteProgram(p.handle)
		logger.Debug("shader program deleted", "program", p.handle)
		p.handle = 0
		p.uniforms = nil
	}
	return nil
}
