package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 480 {
		t.Errorf("expected width 480, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 270 {
		t.Errorf("expected height 270, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Display != "term" {
		t.Errorf("expected display 'term', got %s", cfg.Graphics.Display)
	}

	if cfg.Render.FOVDegrees != 60 {
		t.Errorf("expected fov 60, got %f", cfg.Render.FOVDegrees)
	}
	if cfg.Render.CameraDepth != 4 {
		t.Errorf("expected camera depth 4, got %f", cfg.Render.CameraDepth)
	}
	if !cfg.Render.GroundBehind {
		t.Error("expected ground_behind to be true by default")
	}
	if cfg.Render.Wireframe {
		t.Error("expected wireframe to be false by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "strafe.yaml")

	yamlContent := `
graphics:
  width: 320
  height: 180
  display: window
  scale: 4
  fps: 60

render:
  fov_degrees: 75
  far_plane: 200
  fog_start: 80
  camera_depth: 2.5
  ground_behind: false

logging:
  level: debug
  log_file: strafe.log
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 320 {
		t.Errorf("expected width 320, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Display != "window" {
		t.Errorf("expected display 'window', got %s", cfg.Graphics.Display)
	}
	if cfg.Graphics.FPS != 60 {
		t.Errorf("expected fps 60, got %d", cfg.Graphics.FPS)
	}

	if cfg.Render.FOVDegrees != 75 {
		t.Errorf("expected fov 75, got %f", cfg.Render.FOVDegrees)
	}
	if cfg.Render.CameraDepth != 2.5 {
		t.Errorf("expected camera depth 2.5, got %f", cfg.Render.CameraDepth)
	}
	if cfg.Render.GroundBehind {
		t.Error("expected ground_behind to be false")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "strafe.log" {
		t.Errorf("expected log file 'strafe.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/strafe.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "display flag",
			setup: func() { *flagDisplay = "window" },
			verify: func(cfg *Config) {
				if cfg.Graphics.Display != "window" {
					t.Errorf("expected display 'window', got %s", cfg.Graphics.Display)
				}
			},
			teardown: func() { *flagDisplay = "" },
		},
		{
			name: "resolution flags",
			setup: func() {
				*flagWidth = 640
				*flagHeight = 360
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 640 {
					t.Errorf("expected width 640, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 360 {
					t.Errorf("expected height 360, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "fov flag",
			setup: func() { *flagFOV = 90 },
			verify: func(cfg *Config) {
				if cfg.Render.FOVDegrees != 90 {
					t.Errorf("expected fov 90, got %f", cfg.Render.FOVDegrees)
				}
			},
			teardown: func() { *flagFOV = 0 },
		},
		{
			name:  "wireframe flag",
			setup: func() { *flagWireframe = true },
			verify: func(cfg *Config) {
				if !cfg.Render.Wireframe {
					t.Error("expected wireframe to be true")
				}
			},
			teardown: func() { *flagWireframe = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "strafe.yaml")

	yamlContent := `
graphics:
  width: 320
  height: 180
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 640
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from the flag wins; height comes from the file.
	if cfg.Graphics.Width != 640 {
		t.Errorf("expected width 640 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 180 {
		t.Errorf("expected height 180 from file, got %d", cfg.Graphics.Height)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sub", "strafe.yaml")

	cfg := Default()
	cfg.Graphics.Scale = 3
	cfg.Render.FarPlane = 150

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Graphics.Scale != 3 {
		t.Errorf("expected scale 3 after round trip, got %d", loaded.Graphics.Scale)
	}
	if loaded.Render.FarPlane != 150 {
		t.Errorf("expected far plane 150 after round trip, got %f", loaded.Render.FarPlane)
	}
}
