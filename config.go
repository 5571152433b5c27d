package roomxr

import (
	"errors"
	"fmt"
	"os"

	"github.com/gekko3d/roomxr/engine/assets"
	"github.com/gekko3d/roomxr/engine/core"
	"gopkg.in/yaml.v3"
)

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type RoomConfig struct {
	Width      float32 `yaml:"width"`
	Height     float32 `yaml:"height"`
	Depth      float32 `yaml:"depth"`
	WallColor  string  `yaml:"wall_color"`
	FloorColor string  `yaml:"floor_color"`
}

type SceneConfig struct {
	Background string     `yaml:"background"`
	FloorY     float32    `yaml:"floor_y"`
	Room       RoomConfig `yaml:"room"`
}

type CameraConfig struct {
	Fov         float32    `yaml:"fov"`
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
	Position    [3]float32 `yaml:"position"`
	Damping     float64    `yaml:"damping"`
	MinDistance float32    `yaml:"min_distance"`
	MaxDistance float32    `yaml:"max_distance"`
	FPS         int        `yaml:"fps"`
}

type AssetsConfig struct {
	Dir     string         `yaml:"dir"`
	Catalog []assets.Entry `yaml:"catalog"`
}

type ARConfig struct {
	// QuickLookOnly forces the platform-AR affordance instead of in-scene AR.
	QuickLookOnly bool `yaml:"quick_look_only"`
	// Simulate backs AR sessions with a camera ray against the floor.
	Simulate bool `yaml:"simulate"`
}

type Config struct {
	Window WindowConfig `yaml:"window"`
	Scene  SceneConfig  `yaml:"scene"`
	Camera CameraConfig `yaml:"camera"`
	Assets AssetsConfig `yaml:"assets"`
	AR     ARConfig     `yaml:"ar"`
	Debug  bool         `yaml:"debug"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "roomxr"},
		Scene: SceneConfig{
			Background: "#162338",
			Room: RoomConfig{
				Width:      6,
				Height:     3,
				Depth:      6,
				WallColor:  "#26364b",
				FloorColor: "#6c563f",
			},
		},
		Camera: CameraConfig{
			Fov:         60,
			Near:        0.1,
			Far:         100,
			Position:    [3]float32{0, 0.8, 2.4},
			Damping:     0.08,
			MinDistance: 1.2,
			MaxDistance: 6,
			FPS:         60,
		},
		Assets: AssetsConfig{Dir: "assets"},
	}
}

// LoadConfig reads a YAML file over DefaultConfig. A missing path yields the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	for _, color := range []struct{ name, value string }{
		{"scene.background", c.Scene.Background},
		{"scene.room.wall_color", c.Scene.Room.WallColor},
		{"scene.room.floor_color", c.Scene.Room.FloorColor},
	} {
		if _, err := core.ParseColor(color.value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", color.name, err))
		}
	}
	if c.Camera.MinDistance > c.Camera.MaxDistance {
		errs = append(errs, fmt.Errorf("camera: min_distance %v exceeds max_distance %v", c.Camera.MinDistance, c.Camera.MaxDistance))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera: invalid clip range [%v, %v]", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.FPS <= 0 {
		errs = append(errs, fmt.Errorf("camera: fps must be positive"))
	}
	return errors.Join(errs...)
}

// Catalog builds the asset catalog, falling back to the built-in products.
func (c Config) Catalog() *assets.Catalog {
	if len(c.Assets.Catalog) == 0 {
		return assets.DefaultCatalog(c.Assets.Dir)
	}
	return assets.NewCatalog(c.Assets.Dir, c.Assets.Catalog...)
}
