// Command triangle opens a window and draws one fixed-color triangle in
// normalized device coordinates.
//
// Usage:
//
//	go run ./cmd/triangle [-verbose]
//
// Press Escape to quit.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/go-theft-auto/lines"
	"github.com/go-theft-auto/lines/backend/opengl"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	verbose := flag.Bool("verbose", false, "log GL resource lifetimes")
	flag.Parse()

	lines.SetVerbose(*verbose)

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	window, err := opengl.OpenWindow(opengl.WindowConfig{
		Width:      800,
		Height:     600,
		Title:      "triangle",
		Resizable:  true,
		VSync:      true,
		Background: [3]float32{0.2, 0.3, 0.3},
	})
	if err != nil {
		return err
	}
	defer window.Close()

	s, err := newScene(opengl.NewDevice())
	if err != nil {
		return err
	}
	defer func() {
		if err := s.delete(); err != nil {
			lines.Logger().Warn("release scene", "err", err)
		}
	}()

	return window.Run(func(float32) error {
		s.draw()
		return nil
	})
}
