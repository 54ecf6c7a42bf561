// Package config loads the settings of the line viewer from TOML.
//
// Example:
//
//	[window]
//	width = 1024
//	height = 768
//
//	[camera]
//	speed = 20.0
//
//	[[segment]]
//	start = [0.0, 0.0, 0.0]
//	end = [1.0, 1.0, 0.0]
//	color = [1.0, 1.0, 0.0]
//
// Keys left out keep their Default value. When no segment is listed the
// three unit axes are drawn.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full viewer configuration.
type Config struct {
	Window     Window     `toml:"window"`
	Camera     Camera     `toml:"camera"`
	Segments   []Segment  `toml:"segment"`
	ScreenLine ScreenLine `toml:"screen_line"`
}

// Window configures the GLFW window and GL context.
type Window struct {
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	Title      string     `toml:"title"`
	VSync      bool       `toml:"vsync"`
	Resizable  bool       `toml:"resizable"`
	GLMajor    int        `toml:"gl_major"`
	GLMinor    int        `toml:"gl_minor"`
	Background [3]float32 `toml:"background"`
}

// Camera configures the orbiting camera and its projection.
type Camera struct {
	Radius float32 `toml:"radius"`
	Height float32 `toml:"height"`
	Speed  float32 `toml:"speed"` // degrees per second
	FOV    float32 `toml:"fov"`   // vertical, degrees
	Near   float32 `toml:"near"`
	Far    float32 `toml:"far"`
}

// Segment is a world-space line drawn through the camera.
type Segment struct {
	Start [3]float32 `toml:"start"`
	End   [3]float32 `toml:"end"`
	Color [3]float32 `toml:"color"`
}

// ScreenLine is a line given in window pixels, drawn without the camera.
// Pixel positions refer to the configured Window size, not the framebuffer:
// on HiDPI displays or after a resize the line keeps its NDC position.
type ScreenLine struct {
	Enabled bool       `toml:"enabled"`
	Start   [2]float32 `toml:"start"`
	End     [2]float32 `toml:"end"`
	Color   [3]float32 `toml:"color"`
}

// Default returns the stock configuration: an 800x600 window, a camera
// circling the origin at radius 3 and height 3, the unit axes and a short
// gray screen line near the bottom-left corner.
func Default() Config {
	return Config{
		Window: Window{
			Width:     800,
			Height:    600,
			Title:     "lines",
			VSync:     true,
			Resizable: true,
			GLMajor:   4,
			GLMinor:   1,
		},
		Camera: Camera{
			Radius: 3,
			Height: 3,
			Speed:  50,
			FOV:    45,
			Near:   0.1,
			Far:    100,
		},
		Segments: DefaultSegments(),
		ScreenLine: ScreenLine{
			Enabled: true,
			Start:   [2]float32{10, 10},
			End:     [2]float32{20, 20},
			Color:   [3]float32{0.5, 0.5, 0.5},
		},
	}
}

// DefaultSegments returns the X, Y and Z unit axes in red, green and blue.
func DefaultSegments() []Segment {
	return []Segment{
		{End: [3]float32{1, 0, 0}, Color: [3]float32{1, 0, 0}},
		{End: [3]float32{0, 1, 0}, Color: [3]float32{0, 1, 0}},
		{End: [3]float32{0, 0, 1}, Color: [3]float32{0, 0, 1}},
	}
}

// Load reads a TOML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r over the defaults and validates the result.
// Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	cfg.Segments = nil

	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Config{}, fmt.Errorf("decode config at %d:%d: %w", row, col, err)
		}
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Segments == nil {
		cfg.Segments = DefaultSegments()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.GLMajor < 3 || (c.Window.GLMajor == 3 && c.Window.GLMinor < 3) {
		errs = append(errs, fmt.Errorf("gl version %d.%d is below 3.3", c.Window.GLMajor, c.Window.GLMinor))
	}
	if err := checkColor("window background", c.Window.Background); err != nil {
		errs = append(errs, err)
	}
	// A zero radius puts the eye straight above the target, looking along Up,
	// which leaves the view matrix undefined.
	if c.Camera.Radius <= 0 {
		errs = append(errs, fmt.Errorf("camera radius %g must be positive", c.Camera.Radius))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera fov %g must be in (0, 180)", c.Camera.FOV))
	}
	if c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far {
		errs = append(errs, fmt.Errorf("camera near %g must be positive and below far %g", c.Camera.Near, c.Camera.Far))
	}
	for i, s := range c.Segments {
		if s.Start == s.End {
			errs = append(errs, fmt.Errorf("segment %d: start and end are equal", i))
		}
		if err := checkColor(fmt.Sprintf("segment %d", i), s.Color); err != nil {
			errs = append(errs, err)
		}
	}
	if c.ScreenLine.Enabled {
		if c.ScreenLine.Start == c.ScreenLine.End {
			errs = append(errs, errors.New("screen line: start and end are equal"))
		}
		if err := checkColor("screen line", c.ScreenLine.Color); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func checkColor(what string, c [3]float32) error {
	for _, v := range c {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s: color %v outside [0, 1]", what, c)
		}
	}
	return nil
}
