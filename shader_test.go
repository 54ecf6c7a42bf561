package lines_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/lines"
	"github.com/go-theft-auto/lines/internal/gltest"
)

func TestCompileProgram(t *testing.T) {
	dev := gltest.New()

	prog, err := lines.NewLineProgram(dev)
	require.NoError(t, err)
	require.NotNil(t, prog)

	assert.NotZero(t, prog.Handle())
	assert.True(t, prog.Usable())
	assert.Equal(t, 1, dev.LivePrograms())
	// Stage objects are released once linked.
	assert.Equal(t, 0, dev.LiveShaders())
	assert.Equal(t, 2, dev.Count("DeleteShader"))
	assert.Empty(t, dev.Errors)
}

func TestCompileProgramNilDevice(t *testing.T) {
	_, err := lines.CompileProgram(nil, lines.LineVertexShader, lines.LineFragmentShader)
	assert.ErrorIs(t, err, lines.ErrNilDevice)
}

func TestCompileProgramMalformedFragment(t *testing.T) {
	dev := gltest.New()

	// Missing semicolon after the FragColor assignment.
	const fragment = "#version 330 core\n" +
		"out vec4 FragColor;\n" +
		"void main(){\n" +
		"    FragColor = vec4(1.0f, 0.5f, 0.2f, 1.0f)\n" +
		"}\n"

	prog, err := lines.CompileProgram(dev, lines.LineVertexShader, fragment)
	require.Error(t, err)
	assert.Nil(t, prog)

	var serr *lines.ShaderError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, lines.CompileFailed, serr.Kind)
	assert.Equal(t, lines.FragmentStage, serr.Stage)
	assert.NotEmpty(t, serr.Log)
	assert.Contains(t, err.Error(), "fragment shader compilation failed")

	assert.Zero(t, dev.Count("CreateProgram"), "must not link after a failed stage")
	assert.Zero(t, dev.LiveShaders())
	assert.Zero(t, dev.LivePrograms())
	assert.Empty(t, dev.Errors)
}

func TestCompileProgramMalformedVertexSkipsFragment(t *testing.T) {
	dev := gltest.New()

	_, err := lines.CompileProgram(dev, "void main() {", lines.LineFragmentShader)

	var serr *lines.ShaderError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, lines.CompileFailed, serr.Kind)
	assert.Equal(t, lines.VertexStage, serr.Stage)
	assert.Equal(t, 1, dev.Count("CreateShader"))
	assert.Zero(t, dev.LiveShaders())
}

func TestCompileProgramEmptyLogStillReported(t *testing.T) {
	dev := gltest.New()
	dev.FailCompile[lines.VertexStage] = ""

	_, err := lines.NewLineProgram(dev)

	var serr *lines.ShaderError
	require.True(t, errors.As(err, &serr))
	assert.NotEmpty(t, serr.Log)
}

func TestCompileProgramLogTruncated(t *testing.T) {
	dev := gltest.New()
	dev.FailCompile[lines.FragmentStage] = strings.Repeat("x", 2000) + "\x00"

	_, err := lines.NewLineProgram(dev)

	var serr *lines.ShaderError
	require.True(t, errors.As(err, &serr))
	assert.Len(t, serr.Log, lines.MaxInfoLogLength)
}

func TestCompileProgramLinkFailed(t *testing.T) {
	dev := gltest.New()
	dev.FailLink = true
	dev.LinkLog = "error: vertex output 'Color' not read by fragment shader"

	prog, err := lines.NewLineProgram(dev)
	assert.Nil(t, prog)

	var serr *lines.ShaderError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, lines.LinkFailed, serr.Kind)
	assert.Equal(t, dev.LinkLog, serr.Log)
	assert.Contains(t, err.Error(), "linking failed")

	// Both stages and the failed program are released.
	assert.Zero(t, dev.LiveShaders())
	assert.Zero(t, dev.LivePrograms())
	assert.Empty(t, dev.Errors)
}

func TestProgramLocationCached(t *testing.T) {
	dev := gltest.New()
	prog, err := lines.NewLineProgram(dev)
	require.NoError(t, err)

	first := prog.Location(lines.ColorUniform)
	second := prog.Location(lines.ColorUniform)

	assert.Equal(t, first, second)
	assert.NotEqual(t, lines.Uniform(-1), first)
	assert.Equal(t, 1, dev.Count("UniformLocation"))
	assert.Equal(t, lines.Uniform(-1), prog.Location("missing"))
}

func TestProgramDeleteTwice(t *testing.T) {
	dev := gltest.New()
	prog, err := lines.NewLineProgram(dev)
	require.NoError(t, err)

	require.NoError(t, prog.Delete())
	assert.Zero(t, dev.LivePrograms())
	assert.Zero(t, prog.Handle())
	assert.False(t, prog.Usable())

	assert.ErrorIs(t, prog.Delete(), lines.ErrProgramDeleted)
	assert.Equal(t, 1, dev.Count("DeleteProgram"))
	assert.Empty(t, dev.Errors)
}
