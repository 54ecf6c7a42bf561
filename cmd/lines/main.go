// Command lines opens a window and draws colored 3-D line segments seen by
// a camera orbiting the origin, plus one line placed in window pixels.
//
// Usage:
//
//	go run ./cmd/lines [-config lines.toml] [-verbose]
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
	"github.com/go-theft-auto/lines/config"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "TOML configuration file (defaults are used when empty)")
	verbose := flag.Bool("verbose", false, "log GL resource lifetimes")
	flag.Parse()

	lines.SetVerbose(*verbose)

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	window, err := opengl.OpenWindow(opengl.WindowConfig{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Title:      cfg.Window.Title,
		GLMajor:    cfg.Window.GLMajor,
		GLMinor:    cfg.Window.GLMinor,
		Resizable:  cfg.Window.Resizable,
		VSync:      cfg.Window.VSync,
		Background: cfg.Window.Background,
	})
	if err != nil {
		return err
	}
	defer window.Close()

	s, err := newScene(opengl.NewDevice(), cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.delete(); err != nil {
			lines.Logger().Warn("release scene", "err", err)
		}
	}()

	return window.Run(func(dt float32) error {
		w, h := window.Size()
		return s.draw(dt, w, h)
	})
}
