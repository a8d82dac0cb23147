package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid settings")

// Post pass names accepted by RenderSettings.PostPass
const (
	PostPassNone = "none"
	PostPassBlit = "blit"
)

type WindowSettings struct {
	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
	Title    string `toml:"title"`
	VSync    bool   `toml:"vsync"`
	FPSLimit int    `toml:"fps_limit"`
}

type CameraSettings struct {
	Position [3]float32 `toml:"position"`
	Target   [3]float32 `toml:"target"`
	FOV      float32    `toml:"fov"`
}

type RenderSettings struct {
	Shadows      bool    `toml:"shadows"`
	DebugOverlay bool    `toml:"debug_overlay"`
	PostPass     string  `toml:"post_pass"`
	PlaneScale   float32 `toml:"plane_scale"`
	GLDebug      bool    `toml:"gl_debug"`
}

type SceneSettings struct {
	CubeCount int `toml:"cube_count"`
	// Seed 0 picks a random seed at startup
	Seed uint64 `toml:"seed"`
}

type AssetSettings struct {
	ShaderDir  string            `toml:"shader_dir"`
	TextureDir string            `toml:"texture_dir"`
	Textures   map[string]string `toml:"textures"`
	HotReload  bool              `toml:"hot_reload"`
}

// Settings is the full startup configuration
type Settings struct {
	Window WindowSettings `toml:"window"`
	Camera CameraSettings `toml:"camera"`
	Render RenderSettings `toml:"render"`
	Scene  SceneSettings  `toml:"scene"`
	Assets AssetSettings  `toml:"assets"`
}

// Default returns the shadow-mapped pipeline configuration
func Default() Settings {
	return Settings{
		Window: WindowSettings{
			Width:    800,
			Height:   600,
			Title:    "shadowscene",
			VSync:    true,
			FPSLimit: 0,
		},
		Camera: CameraSettings{
			Position: [3]float32{5, 4, 7},
			Target:   [3]float32{0, 0, 0},
			FOV:      45,
		},
		Render: RenderSettings{
			Shadows:      true,
			DebugOverlay: true,
			PostPass:     PostPassNone,
			PlaneScale:   7,
		},
		Scene: SceneSettings{
			CubeCount: 100,
		},
		Assets: AssetSettings{
			ShaderDir:  "assets/shaders",
			TextureDir: "assets/textures",
			Textures: map[string]string{
				"checker_gray":    "checker2k.png",
				"checker_colored": "checker2kC.png",
			},
		},
	}
}

// Parse decodes TOML on top of Default. Unknown keys are rejected.
func Parse(data []byte) (Settings, error) {
	s := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Load reads path; a missing file yields Default.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read config: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks ranges the renderer depends on
func (s Settings) Validate() error {
	switch {
	case s.Window.Width <= 0 || s.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, s.Window.Width, s.Window.Height)
	case s.Window.FPSLimit < 0:
		return fmt.Errorf("%w: fps_limit %d", ErrInvalid, s.Window.FPSLimit)
	case s.Camera.FOV <= 0 || s.Camera.FOV >= 180:
		return fmt.Errorf("%w: fov %v", ErrInvalid, s.Camera.FOV)
	case s.Render.PostPass != PostPassNone && s.Render.PostPass != PostPassBlit:
		return fmt.Errorf("%w: post_pass %q", ErrInvalid, s.Render.PostPass)
	case s.Render.PlaneScale <= 0:
		return fmt.Errorf("%w: plane_scale %v", ErrInvalid, s.Render.PlaneScale)
	case s.Scene.CubeCount < 0:
		return fmt.Errorf("%w: cube_count %d", ErrInvalid, s.Scene.CubeCount)
	}
	return nil
}
