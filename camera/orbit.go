// Package camera places a viewer on a circle around a target point.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Up is the world up direction used for every view matrix.
var Up = mgl32.Vec3{0, 1, 0}

// Orbit circles Target at a fixed Radius and Height, turning at Speed
// degrees per second.
type Orbit struct {
	Radius float32
	Height float32
	Speed  float32
	Target mgl32.Vec3

	angle float32 // degrees, kept in [0, 360)
}

// NewOrbit creates an orbit around the origin.
func NewOrbit(radius, height, speed float32) *Orbit {
	return &Orbit{Radius: radius, Height: height, Speed: speed}
}

// Advance moves the camera along the circle by dt seconds.
func (o *Orbit) Advance(dt float32) {
	o.angle = math32.Mod(o.angle+dt*o.Speed, 360)
	if o.angle < 0 {
		o.angle += 360
	}
}

// Angle returns the current angle in degrees.
func (o *Orbit) Angle() float32 {
	return o.angle
}

// Position returns the eye position at the current angle.
func (o *Orbit) Position() mgl32.Vec3 {
	a := mgl32.DegToRad(o.angle)
	return o.Target.Add(mgl32.Vec3{
		o.Radius * math32.Cos(a),
		o.Height,
		o.Radius * math32.Sin(a),
	})
}

// View returns the look-at matrix from Position toward Target.
func (o *Orbit) View() mgl32.Mat4 {
	return mgl32.LookAtV(o.Position(), o.Target, Up)
}

// Perspective builds a projection for a width x height framebuffer.
// A zero height (minimized window) is treated as 1.
func Perspective(fovDeg float32, width, height int, near, far float32) mgl32.Mat4 {
	if height <= 0 {
		height = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(fovDeg), float32(width)/float32(height), near, far)
}
