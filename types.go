package lines

import "github.com/go-gl/mathgl/mgl32"

// GPU object handles. Zero is never a valid object name.
type (
	Shader      uint32
	Program     uint32
	Buffer      uint32
	VertexArray uint32
	// Uniform is a uniform location; -1 means the name is not active.
	Uniform int32
)

// Stage identifies a programmable pipeline stage.
type Stage int

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown"
	}
}

// Primitive is the topology passed to DrawArrays.
type Primitive int

const (
	Lines Primitive = iota
	Triangles
)

func (p Primitive) String() string {
	switch p {
	case Lines:
		return "lines"
	case Triangles:
		return "triangles"
	default:
		return "unknown"
	}
}

// Color is a linear RGB color with components in [0, 1].
type Color struct {
	R, G, B float32
}

// Color constants
var (
	ColorWhite = Color{1, 1, 1}
	ColorBlack = Color{0, 0, 0}
	ColorRed   = Color{1, 0, 0}
	ColorGreen = Color{0, 1, 0}
	ColorBlue  = Color{0, 0, 1}
	ColorGray  = Color{0.5, 0.5, 0.5}
)

// RGB creates a color, clamping each component to [0, 1].
func RGB(r, g, b float32) Color {
	return Color{R: clampf(r, 0, 1), G: clampf(g, 0, 1), B: clampf(b, 0, 1)}
}

// Vec3 returns the color as a shader vec3.
func (c Color) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{c.R, c.G, c.B}
}

// clampf clamps a float32 value to a range.
func clampf(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// ScreenToNDC converts a pixel position in a width x height framebuffer
// (origin bottom-left) to normalized device coordinates.
func ScreenToNDC(p mgl32.Vec2, width, height float32) mgl32.Vec2 {
	return mgl32.Vec2{
		2*p.X()/width - 1,
		2*p.Y()/height - 1,
	}
}
