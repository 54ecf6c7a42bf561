package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/lines"
)

// WindowConfig describes the window and context to create.
type WindowConfig struct {
	Width, Height int
	Title         string
	// GLMajor and GLMinor select the core profile version; 0 means 4.1.
	GLMajor, GLMinor int
	Resizable        bool
	VSync            bool
	Background       [3]float32
}

// Window is a GLFW window owning the current OpenGL context.
// It must be created and used on the main, locked OS thread.
type Window struct {
	win        *glfw.Window
	width      int
	height     int
	background [3]float32
	lastFrame  float64
}

// OpenWindow initializes GLFW, creates a window with a core profile context,
// makes it current and loads the GL entry points. Escape closes the window.
func OpenWindow(cfg WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	major, minor := cfg.GLMajor, cfg.GLMinor
	if major == 0 {
		major, minor = 4, 1
	}
	glfw.WindowHint(glfw.ContextVersionMajor, major)
	glfw.WindowHint(glfw.ContextVersionMinor, minor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if cfg.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}
	lines.Logger().Debug("opengl context ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	w := &Window{win: win, background: cfg.Background}
	w.width, w.height = win.GetFramebufferSize()
	gl.Viewport(0, 0, int32(w.width), int32(w.height))

	win.SetKeyCallback(w.keyCallback)
	win.SetFramebufferSizeCallback(w.framebufferSizeCallback)
	return w, nil
}

// Size returns the framebuffer size in pixels.
func (w *Window) Size() (width, height int) {
	return w.width, w.height
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

// Run calls frame once per displayed frame with the seconds elapsed since
// the previous one, until the window closes or frame returns an error.
func (w *Window) Run(frame func(dt float32) error) error {
	w.lastFrame = glfw.GetTime()
	for !w.win.ShouldClose() {
		now := glfw.GetTime()
		dt := float32(now - w.lastFrame)
		w.lastFrame = now

		w.processInput()

		gl.ClearColor(w.background[0], w.background[1], w.background[2], 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		if err := frame(dt); err != nil {
			return err
		}

		w.win.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	w.win.Destroy()
	glfw.Terminate()
}

// processInput polls keys held this frame.
func (w *Window) processInput() {
	if w.win.GetKey(glfw.KeyA) == glfw.Press {
		lines.Logger().Debug("key held", "key", "A")
	}
}

func (w *Window) keyCallback(win *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		win.SetShouldClose(true)
	}
}

func (w *Window) framebufferSizeCallback(win *glfw.Window, width, height int) {
	w.width, w.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	lines.Logger().Debug("framebuffer resized", "width", width, "height", height)
}
