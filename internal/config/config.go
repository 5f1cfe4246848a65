// Package config handles renderer configuration loading and management.
package config

// Config holds all renderer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Render   RenderConfig   `yaml:"render"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and presentation settings.
type GraphicsConfig struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Display string `yaml:"display"` // "term" or "window"
	Scale   int    `yaml:"scale"`   // Window pixel scale
	FPS     int    `yaml:"fps"`
}

// RenderConfig holds projection and fog settings.
type RenderConfig struct {
	FOVDegrees   float64 `yaml:"fov_degrees"`
	FarPlane     float64 `yaml:"far_plane"`
	FogStart     float64 `yaml:"fog_start"`
	CameraDepth  float64 `yaml:"camera_depth"`
	GroundBehind bool    `yaml:"ground_behind"`
	Wireframe    bool    `yaml:"wireframe"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:   480,
			Height:  270,
			Display: "term",
			Scale:   2,
			FPS:     30,
		},
		Render: RenderConfig{
			FOVDegrees:   60,
			FarPlane:     100,
			FogStart:     40,
			CameraDepth:  4,
			GroundBehind: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
