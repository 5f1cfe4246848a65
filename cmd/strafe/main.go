// strafe - software 3D renderer demo
// Flies a ship over fogged terrain inside a skybox, rendered with no
// GPU into an indexed framebuffer, presented in the terminal or a
// desktop window.
//
// Controls (terminal mode):
//
//	X       - Toggle wireframe
//	Esc/Q   - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"

	"strafe/internal/config"
	"strafe/internal/logger"
	"strafe/pkg/render"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "strafe - software 3D renderer demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: strafe [options] [model.obj|model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	modelPath := ""
	if flag.NArg() > 0 {
		modelPath = flag.Arg(0)
	}

	if err := run(cfg, modelPath); err != nil {
		logger.Error("renderer exited", zap.Error(err))
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, modelPath string) error {
	w, err := newWorld(cfg.Graphics.FPS, modelPath)
	if err != nil {
		return err
	}
	logger.Info("world ready",
		zap.String("model", modelPath),
		zap.Int("triangles", w.ship.TriangleCount()),
		zap.String("display", cfg.Graphics.Display),
	)

	switch cfg.Graphics.Display {
	case "window":
		return runWindow(cfg, w)
	case "term", "":
		return runTerminal(cfg, w)
	default:
		return fmt.Errorf("unknown display backend %q (use term or window)", cfg.Graphics.Display)
	}
}

// newPipeline builds the render pipeline for one framebuffer size.
func newPipeline(cfg *config.Config, width, height int) (*render.DrawList, *render.Camera, *render.Framebuffer) {
	fb := render.NewFramebuffer(width, height)
	cam := render.NewCamera()
	dl := render.NewDrawList(cam, fb, buildAtlas())

	proj := dl.Projector()
	proj.FOV = cfg.Render.FOVDegrees * math.Pi / 180
	proj.CameraDepth = cfg.Render.CameraDepth
	proj.GroundBehind = cfg.Render.GroundBehind
	dl.SetTranslucent(matFlame, matSmoke)

	return dl, cam, fb
}

// runWindow presents through an ebiten window at the configured
// scale.
func runWindow(cfg *config.Config, w *world) error {
	dl, cam, fb := newPipeline(cfg, cfg.Graphics.Width, cfg.Graphics.Height)
	dt := 1.0 / float64(cfg.Graphics.FPS)

	step := func() error {
		w.update(dt)
		fb.Clear(0)
		w.draw(dl, cam, cfg.Render.FarPlane, cfg.Render.FogStart, cfg.Render.Wireframe)
		return nil
	}

	return render.RunWindow("strafe", fb, cfg.Graphics.Scale, cfg.Graphics.FPS, step)
}

// runTerminal presents through the terminal, two pixel rows per cell.
func runTerminal(cfg *config.Config, w *world) error {
	term := uv.DefaultTerminal()

	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)

	dl, cam, fb := newPipeline(cfg, cols, rows*2)
	wireframe := cfg.Render.Wireframe

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				cols, rows = ev.Width, ev.Height
				term.Erase()
				term.Resize(cols, rows)
				dl, cam, fb = newPipeline(cfg, cols, rows*2)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("q"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("x"):
					wireframe = !wireframe
				}
			}
		}
	}()

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	targetDuration := time.Second / time.Duration(cfg.Graphics.FPS)
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now
		if dt > 0.1 {
			dt = 0.1
		}

		w.update(dt)
		fb.Clear(0)
		w.draw(dl, cam, cfg.Render.FarPlane, cfg.Render.FogStart, wireframe)

		fb.Draw(term, term.Bounds())
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
