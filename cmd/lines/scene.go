package main

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/go-theft-auto/lines"
	"github.com/go-theft-auto/lines/camera"
	"github.com/go-theft-auto/lines/config"
)

// scene holds everything drawn each frame.
type scene struct {
	program *lines.ShaderProgram
	world   []*lines.LineSegment // drawn through the camera
	screen  *lines.LineSegment   // already in NDC, identity transform
	orbit   *camera.Orbit
	cam     config.Camera
}

func newScene(dev lines.Device, cfg config.Config) (_ *scene, err error) {
	prog, err := lines.NewLineProgram(dev)
	if err != nil {
		return nil, fmt.Errorf("line shader: %w", err)
	}

	s := &scene{
		program: prog,
		orbit:   camera.NewOrbit(cfg.Camera.Radius, cfg.Camera.Height, cfg.Camera.Speed),
		cam:     cfg.Camera,
	}
	defer func() {
		if err != nil {
			_ = s.delete()
		}
	}()

	for i, seg := range cfg.Segments {
		l, err := lines.NewLineSegment(dev, mgl32.Vec3(seg.Start), mgl32.Vec3(seg.End), prog)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		l.SetColor(lines.RGB(seg.Color[0], seg.Color[1], seg.Color[2]))
		s.world = append(s.world, l)
	}

	if sl := cfg.ScreenLine; sl.Enabled {
		w, h := float32(cfg.Window.Width), float32(cfg.Window.Height)
		start := lines.ScreenToNDC(mgl32.Vec2(sl.Start), w, h)
		end := lines.ScreenToNDC(mgl32.Vec2(sl.End), w, h)
		l, err := lines.NewLineSegment(dev, start.Vec3(0), end.Vec3(0), prog)
		if err != nil {
			return nil, fmt.Errorf("screen line: %w", err)
		}
		l.SetColor(lines.RGB(sl.Color[0], sl.Color[1], sl.Color[2]))
		s.screen = l
	}

	return s, nil
}

// draw advances the camera by dt and draws every segment for a width x
// height framebuffer.
func (s *scene) draw(dt float32, width, height int) error {
	if s.screen != nil {
		if err := s.screen.Draw(); err != nil {
			return err
		}
	}

	s.orbit.Advance(dt)
	projection := camera.Perspective(s.cam.FOV, width, height, s.cam.Near, s.cam.Far)
	mvp := projection.Mul4(s.orbit.View())
	for _, l := range s.world {
		l.SetTransform(mvp)
		if err := l.Draw(); err != nil {
			return err
		}
	}
	return nil
}

// delete releases all segments, then the program.
func (s *scene) delete() error {
	var errs []error
	for _, l := range s.world {
		errs = append(errs, l.Delete())
	}
	if s.screen != nil {
		errs = append(errs, s.screen.Delete())
	}
	errs = append(errs, s.program.Delete())
	return errors.Join(errs...)
}
