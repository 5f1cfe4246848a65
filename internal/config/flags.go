package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagDisplay   = flag.String("display", "", "Display backend: term or window")
	flagWidth     = flag.Int("width", 0, "Framebuffer width")
	flagHeight    = flag.Int("height", 0, "Framebuffer height")
	flagFPS       = flag.Int("fps", 0, "Target frames per second")
	flagFOV       = flag.Float64("fov", 0, "Vertical field of view in degrees")
	flagFar       = flag.Float64("far", 0, "Far plane distance")
	flagWireframe = flag.Bool("wireframe", false, "Render edge outlines instead of filled faces")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagDisplay != "" {
		cfg.Graphics.Display = *flagDisplay
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagFPS > 0 {
		cfg.Graphics.FPS = *flagFPS
	}
	if *flagFOV > 0 {
		cfg.Render.FOVDegrees = *flagFOV
	}
	if *flagFar > 0 {
		cfg.Render.FarPlane = *flagFar
	}
	if *flagWireframe {
		cfg.Render.Wireframe = true
	}
}
