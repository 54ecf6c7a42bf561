/*
Package lines draws colored 3-D line segments with a shared shader program.

# Overview

Two objects make up the package. A ShaderProgram is a linked vertex+fragment
program compiled once. A LineSegment owns the vertex array and buffer for one
two-point segment and draws it with a ShaderProgram it shares with any number
of other segments.

All GPU work goes through a Device, an explicit handle on the rendering
context. The OpenGL implementation lives in backend/opengl.

# Quick Start

	dev := opengl.NewDevice()

	prog, err := lines.NewLineProgram(dev)
	if err != nil {
	    return err // *lines.ShaderError carries the stage and info log
	}
	defer prog.Delete()

	axes, err := lines.Axes(dev, prog, 1)
	if err != nil {
	    return err
	}

	// Frame loop
	for !window.ShouldClose() {
	    for _, l := range axes {
	        l.SetTransform(projection.Mul4(view))
	        l.Draw()
	    }
	    window.SwapBuffers()
	}

# Lifetimes

A program is reference counted. Each segment takes a reference on creation
and drops it in Delete; the creator drops its own with ShaderProgram.Delete.
The GPU program is released when the last reference goes, so segments may be
deleted before or after the program. Deleting anything twice is an error.

# Threading

Nothing here is safe for concurrent use. Every call must come from the
thread that owns the rendering context.
*/
package lines
