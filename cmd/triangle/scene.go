package main

import (
	"fmt"

	"github.com/go-theft-auto/lines"
)

const vertexShader = `#version 330 core
layout (location = 0) in vec3 aPos;
void main() {
    gl_Position = vec4(aPos, 1.0);
}
`

const fragmentShader = `#version 330 core
out vec4 FragColor;
void main() {
    FragColor = vec4(1.0, 0.5, 0.2, 1.0);
}
`

// triangleVertices are left, right and top corners in NDC.
var triangleVertices = [9]float32{
	-0.5, -0.5, 0,
	0.5, -0.5, 0,
	0, 0.5, 0,
}

// scene owns the triangle's program, vertex array and buffer.
type scene struct {
	dev     lines.Device
	program *lines.ShaderProgram
	vao     lines.VertexArray
	vbo     lines.Buffer
}

func newScene(dev lines.Device) (*scene, error) {
	prog, err := lines.CompileProgram(dev, vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("triangle shader: %w", err)
	}

	s := &scene{dev: dev, program: prog}
	s.vao = dev.GenVertexArray()
	s.vbo = dev.GenBuffer()
	dev.BindVertexArray(s.vao)
	dev.BindArrayBuffer(s.vbo)
	dev.BufferStaticData(triangleVertices[:])
	dev.VertexAttrib3f(0)
	dev.BindArrayBuffer(0)
	dev.BindVertexArray(0)
	return s, nil
}

func (s *scene) draw() {
	s.dev.UseProgram(s.program.Handle())
	s.dev.BindVertexArray(s.vao)
	s.dev.DrawArrays(lines.Triangles, 0, 3)
}

func (s *scene) delete() error {
	s.dev.DeleteBuffer(s.vbo)
	s.dev.DeleteVertexArray(s.vao)
	return s.program.Delete()
}
