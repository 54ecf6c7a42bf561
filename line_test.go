package lines_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/lines"
	"github.com/go-theft-auto/lines/internal/gltest"
)

func newProgram(t *testing.T, dev *gltest.Device) *lines.ShaderProgram {
	t.Helper()
	prog, err := lines.NewLineProgram(dev)
	require.NoError(t, err)
	return prog
}

func TestLineSegmentDrawUnitX(t *testing.T) {
	dev := gltest.New()
	prog := newProgram(t, dev)

	l, err := lines.NewLineSegment(dev, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, prog)
	require.NoError(t, err)
	l.SetColor(lines.ColorRed)
	l.SetTransform(mgl32.Ident4())

	require.NoError(t, l.Draw())
	require.Len(t, dev.Draws, 1)

	draw := dev.Draws[0]
	assert.Equal(t, lines.Lines, draw.Mode)
	assert.Equal(t, int32(0), draw.First)
	assert.Equal(t, int32(2), draw.Count)
	assert.Equal(t, prog.Handle(), draw.Program)
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0}, draw.Vertices)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, draw.Uniforms[lines.ColorUniform])
	assert.Equal(t, mgl32.Ident4(), draw.Uniforms[lines.TransformUniform])
	assert.Empty(t, dev.Errors)
}

func TestLineSegmentDefaults(t *testing.T) {
	dev := gltest.New()
	prog := newProgram(t, dev)

	start, end := mgl32.Vec3{1, 2, 3}, mgl32.Vec3{4, 5, 6}
	l, err := lines.NewLineSegment(dev, start, end, prog)
	require.NoError(t, err)

	assert.Equal(t, start, l.Start())
	assert.Equal(t, end, l.End())
	assert.Equal(t, lines.ColorWhite, l.Color())
	assert.Equal(t, mgl32.Ident4(), l.Transform())
	assert.Equal(t, [6]float32{1, 2, 3, 4, 5, 6}, l.Vertices())
	assert.Same(t, prog, l.Program())

	require.NoError(t, l.Draw())
	require.Len(t, dev.Draws, 1)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, dev.Draws[0].Uniforms[lines.ColorUniform])
}

func TestLineSegmentUploadsOnce(t *testing.T) {
	dev := gltest.New()
	prog := newProgram(t, dev)
	l, err := lines.NewLineSegment(dev, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, prog)
	require.NoError(t, err)
	dev.Reset()

	l.SetColor(lines.ColorBlue)
	l.SetTransform(mgl32.Translate3D(1, 0, 0))
	assert.Empty(t, dev.Calls, "setters must not touch the device")

	for range 3 {
		require.NoError(t, l.Draw())
	}
	assert.Zero(t, dev.Count("BufferStaticData"))
	assert.Equal(t, 3, dev.Count("DrawArrays"))
}

func TestLineSegmentDrawSequence(t *testing.T) {
	dev := gltest.New()
	prog := newProgram(t, dev)
	l, err := lines.NewLineSegment(dev, mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, prog)
	require.NoError(t, err)

	// Prime the location cache so the sequence below is the steady state.
	require.NoError(t, l.Draw())
	dev.Reset()

	require.NoError(t, l.Draw())
	assert.Equal(t, []string{
		"UseProgram",
		"UniformMatrix4",
		"Uniform3",
		"BindVertexArray",
		"DrawArrays",
	}, dev.Names())
}

func TestLineSegmentLatestValueWins(t *testing.T) {
	dev := gltest.New()
	prog := newProgram(t, dev)
	l, err := lines.NewLineSegment(dev, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, prog)
	require.NoError(t, err)

	scale := mgl32.Scale3D(2, 2, 2)
	translate := mgl32.Translate3D(0, 1, 0)

	// Interleave the setters in both orders; only the last value of each counts.
	l.SetColor(lines.ColorGreen)
	l.SetTransform(scale)
	l.SetColor(lines.ColorGray)
	l.SetTransform(translate)
	require.NoError(t, l.Draw())

	l.SetTransform(translate)
	l.SetColor(lines.ColorGray)
	l.SetColor(lines.ColorGray)
	require.NoError(t, l.Draw())

	require.Len(t, dev.Draws, 2)
	for _, draw := range dev.Draws {
		assert.Equal(t, lines.ColorGray.Vec3(), draw.Uniforms[lines.ColorUniform])
		assert.Equal(t, translate, draw.Uniforms[lines.TransformUniform])
	}
}

func TestLineSegmentsShareProgram(t *testing.T) {
	dev := gltest.New()
	prog := newProgram(t, dev)

	a, err := lines.NewLineSegment(dev, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, prog)
	require.NoError(t, err)
	b, err := lines.NewLineSegment(dev, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, prog)
	require.NoError(t, err)
	a.SetColor(lines.ColorRed)
	b.SetColor(lines.ColorGreen)

	require.NoError(t, a.Draw())
	require.NoError(t, b.Draw())

	require.Len(t, dev.Draws, 2)
	assert.Equal(t, dev.Draws[0].Program, dev.Draws[1].Program)
	assert.NotEqual(t, dev.Draws[0].VertexArray, dev.Draws[1].VertexArray)
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0}, dev.Draws[0].Vertices)
	assert.Equal(t, []float32{0, 0, 0, 0, 1, 0}, dev.Draws[1].Vertices)
	assert.Equal(t, lines.ColorRed.Vec3(), dev.Draws[0].Uniforms[lines.ColorUniform])
	assert.Equal(t, lines.ColorGreen.Vec3(), dev.Draws[1].Uniforms[lines.ColorUniform])
	assert.Equal(t, 1, dev.LivePrograms())
}

func TestLineSegmentDelete(t *testing.T) {
	dev := gltest.New()
	prog := newProgram(t, dev)
	l, err := lines.NewLineSegment(dev, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, prog)
	require.NoError(t, err)
	assert.Equal(t, 1, dev.LiveBuffers())
	assert.Equal(t, 1, dev.LiveVertexArrays())
	dev.Reset()

	require.NoError(t, l.Delete())
	assert.Equal(t, []string{"DeleteBuffer", "DeleteVertexArray"}, dev.Names())
	assert.Zero(t, dev.LiveBuffers())
	assert.Zero(t, dev.LiveVertexArrays())
	assert.Equal(t, 1, dev.LivePrograms(), "segment must not release the shared program")

	assert.ErrorIs(t, l.Delete(), lines.ErrSegmentDeleted)
	assert.ErrorIs(t, l.Draw(), lines.ErrSegmentDeleted)
	assert.Equal(t, 1, dev.Count("DeleteBuffer"))
	assert.Empty(t, dev.Errors)
}

func TestProgramOutlivedBySegment(t *testing.T) {
	dev := gltest.New()
	prog := newProgram(t, dev)
	l, err := lines.NewLineSegment(dev, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, prog)
	require.NoError(t, err)

	// The creator lets go first; the segment keeps the program alive.
	require.NoError(t, prog.Delete())
	assert.Equal(t, 1, dev.LivePrograms())
	require.NoError(t, l.Draw())

	_, err = lines.NewLineSegment(dev, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, prog)
	assert.ErrorIs(t, err, lines.ErrProgramDeleted)

	require.NoError(t, l.Delete())
	assert.Zero(t, dev.LivePrograms())
	assert.Equal(t, 1, dev.Count("DeleteProgram"))
	assert.Empty(t, dev.Errors)
}

func TestNewLineSegmentRejectsUnusableProgram(t *testing.T) {
	dev := gltest.New()

	_, err := lines.NewLineSegment(dev, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, nil)
	assert.ErrorIs(t, err, lines.ErrNilProgram)

	_, err = lines.NewLineSegment(nil, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, newProgram(t, dev))
	assert.ErrorIs(t, err, lines.ErrNilDevice)

	prog := newProgram(t, dev)
	require.NoError(t, prog.Delete())
	dev.Reset()
	_, err = lines.NewLineSegment(dev, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, prog)
	assert.ErrorIs(t, err, lines.ErrProgramDeleted)
	assert.Empty(t, dev.Calls, "no GPU objects for a rejected segment")
}

func TestAxes(t *testing.T) {
	dev := gltest.New()
	prog := newProgram(t, dev)

	axes, err := lines.Axes(dev, prog, 2)
	require.NoError(t, err)

	want := []struct {
		end   mgl32.Vec3
		color lines.Color
	}{
		{mgl32.Vec3{2, 0, 0}, lines.ColorRed},
		{mgl32.Vec3{0, 2, 0}, lines.ColorGreen},
		{mgl32.Vec3{0, 0, 2}, lines.ColorBlue},
	}
	for i, w := range want {
		assert.Equal(t, mgl32.Vec3{}, axes[i].Start())
		assert.Equal(t, w.end, axes[i].End())
		assert.Equal(t, w.color, axes[i].Color())
	}
	assert.Equal(t, 3, dev.LiveBuffers())

	for _, l := range axes {
		require.NoError(t, l.Delete())
	}
	require.NoError(t, prog.Delete())
	assert.Zero(t, dev.LiveBuffers())
	assert.Zero(t, dev.LiveVertexArrays())
	assert.Zero(t, dev.LivePrograms())
}

func TestRGBClamps(t *testing.T) {
	assert.Equal(t, lines.Color{R: 1, G: 0, B: 0.25}, lines.RGB(1.5, -2, 0.25))
	assert.Equal(t, lines.ColorBlack, lines.RGB(-1, -0.5, 0))
	assert.Equal(t, lines.ColorWhite, lines.RGB(2, 1, 1.5))
}

func TestScreenToNDC(t *testing.T) {
	tests := []struct {
		in   mgl32.Vec2
		want mgl32.Vec2
	}{
		{mgl32.Vec2{0, 0}, mgl32.Vec2{-1, -1}},
		{mgl32.Vec2{400, 300}, mgl32.Vec2{0, 0}},
		{mgl32.Vec2{800, 600}, mgl32.Vec2{1, 1}},
		{mgl32.Vec2{20, 20}, mgl32.Vec2{-0.95, 2*20/600.0 - 1}},
	}
	for _, tt := range tests {
		got := lines.ScreenToNDC(tt.in, 800, 600)
		assert.InDelta(t, tt.want.X(), got.X(), 1e-6)
		assert.InDelta(t, tt.want.Y(), got.Y(), 1e-6)
	}
}
