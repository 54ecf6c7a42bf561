package lines

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrSegmentDeleted is returned by Draw and Delete after a segment is deleted.
var ErrSegmentDeleted = errors.New("lines: line segment deleted")

// LineSegment is a single GPU line between two points in object space.
//
// The geometry is uploaded once at construction and never changes; only the
// color and transform are mutable. The segment shares its ShaderProgram
// with other segments and does not own it.
type LineSegment struct {
	dev     Device
	program *ShaderProgram

	start, end mgl32.Vec3
	vertices   [6]float32

	color     Color
	transform mgl32.Mat4

	vao     VertexArray
	vbo     Buffer
	deleted bool
}

// NewLineSegment uploads the segment start->end and binds it to prog.
// It fails if prog is nil or already deleted. Color starts white and the
// transform starts as identity.
func NewLineSegment(dev Device, start, end mgl32.Vec3, prog *ShaderProgram) (*LineSegment, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	if prog == nil {
		return nil, ErrNilProgram
	}
	if err := prog.retain(); err != nil {
		return nil, err
	}

	l := &LineSegment{
		dev:       dev,
		program:   prog,
		start:     start,
		end:       end,
		vertices:  [6]float32{start.X(), start.Y(), start.Z(), end.X(), end.Y(), end.Z()},
		color:     ColorWhite,
		transform: mgl32.Ident4(),
	}

	// Bind the vertex array first so the attribute setup is recorded in it.
	l.vao = dev.GenVertexArray()
	l.vbo = dev.GenBuffer()
	dev.BindVertexArray(l.vao)
	dev.BindArrayBuffer(l.vbo)
	dev.BufferStaticData(l.vertices[:])
	dev.VertexAttrib3f(0)

	// The attribute keeps its buffer reference, so both can be unbound.
	dev.BindArrayBuffer(0)
	dev.BindVertexArray(0)

	logger.Debug("line segment created", "vao", l.vao, "vbo", l.vbo, "start", start, "end", end)
	return l, nil
}

// SetTransform sets the matrix uploaded as the MVP uniform on the next Draw.
func (l *LineSegment) SetTransform(m mgl32.Mat4) {
	l.transform = m
}

// SetColor sets the color uploaded on the next Draw.
func (l *LineSegment) SetColor(c Color) {
	l.color = c
}

// Draw issues one two-vertex line draw with the current transform and color.
// It changes the device's current program and vertex array.
func (l *LineSegment) Draw() error {
	if l.deleted {
		return ErrSegmentDeleted
	}
	p := l.program
	l.dev.UseProgram(p.Handle())
	l.dev.UniformMatrix4(p.Location(TransformUniform), l.transform)
	l.dev.Uniform3(p.Location(ColorUniform), l.color.Vec3())
	l.dev.BindVertexArray(l.vao)
	l.dev.DrawArrays(Lines, 0, 2)
	return nil
}

// Delete releases the vertex buffer, the vertex array and the segment's
// reference to its program. A second call returns ErrSegmentDeleted.
func (l *LineSegment) Delete() error {
	if l.deleted {
		return ErrSegmentDeleted
	}
	l.deleted = true
	l.dev.DeleteBuffer(l.vbo)
	l.dev.DeleteVertexArray(l.vao)
	logger.Debug("line segment deleted", "vao", l.vao, "vbo", l.vbo)
	l.vbo, l.vao = 0, 0
	return l.program.release()
}

// Start returns the first endpoint.
func (l *LineSegment) Start() mgl32.Vec3 { return l.start }

// End returns the second endpoint.
func (l *LineSegment) End() mgl32.Vec3 { return l.end }

// Color returns the current color.
func (l *LineSegment) Color() Color { return l.color }

// Transform returns the current transform.
func (l *LineSegment) Transform() mgl32.Mat4 { return l.transform }

// Vertices returns the uploaded vertex data.
func (l *LineSegment) Vertices() [6]float32 { return l.vertices }

// Program returns the shared program the segment draws with.
func (l *LineSegment) Program() *ShaderProgram { return l.program }

// Axes builds three segments of the given length from the origin along
// +X, +Y and +Z, colored red, green and blue.
// On error any segment already created is deleted.
func Axes(dev Device, prog *ShaderProgram, length float32) ([3]*LineSegment, error) {
	var axes [3]*LineSegment
	dirs := [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	colors := [3]Color{ColorRed, ColorGreen, ColorBlue}
	for i := range axes {
		l, err := NewLineSegment(dev, mgl32.Vec3{}, dirs[i].Mul(length), prog)
		if err != nil {
			for _, made := range axes[:i] {
				_ = made.Delete()
			}
			return [3]*LineSegment{}, err
		}
		l.SetColor(colors[i])
		axes[i] = l
	}
	return axes, nil
}
