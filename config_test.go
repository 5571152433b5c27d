package roomxr

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gekko3d/roomxr/engine/assets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roomxr.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, float32(60), cfg.Camera.Fov)
	assert.Equal(t, [3]float32{0, 0.8, 2.4}, cfg.Camera.Position)
	assert.Equal(t, "#162338", cfg.Scene.Background)
}

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 640
scene:
  background: navy
  room:
    wall_color: "#abc"
camera:
  max_distance: 8
assets:
  dir: /srv/models
  catalog:
    - id: lamp
      model: lamp.glb
ar:
  simulate: true
debug: true
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, "navy", cfg.Scene.Background)
	assert.Equal(t, "#6c563f", cfg.Scene.Room.FloorColor)
	assert.Equal(t, float32(8), cfg.Camera.MaxDistance)
	assert.Equal(t, float32(1.2), cfg.Camera.MinDistance)
	assert.True(t, cfg.AR.Simulate)
	assert.True(t, cfg.Debug)

	cat := cfg.Catalog()
	e, err := cat.Resolve("lamp")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv/models", "lamp.glb"), cat.ModelPath(e))
	_, err = cat.Resolve(assets.Chair)
	assert.ErrorIs(t, err, assets.ErrUnknownAsset)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
scene:
  background: not-a-color
camera:
  near: 0
  min_distance: 9
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scene.background")
	assert.Contains(t, err.Error(), "min_distance")
	assert.Contains(t, err.Error(), "clip range")
}

func TestValidateReportsColorsInFieldOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scene.Background = "x"
	cfg.Scene.Room.WallColor = "y"
	cfg.Scene.Room.FloorColor = "z"

	first := cfg.Validate()
	require.Error(t, first)
	lines := strings.Split(first.Error(), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "scene.background: "))
	assert.True(t, strings.HasPrefix(lines[1], "scene.room.wall_color: "))
	assert.True(t, strings.HasPrefix(lines[2], "scene.room.floor_color: "))

	for range 20 {
		assert.Equal(t, first.Error(), cfg.Validate().Error())
	}
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "window: [1, 2"))
	assert.ErrorContains(t, err, "parse config")
}

func TestDefaultCatalogWhenNoneConfigured(t *testing.T) {
	cat := DefaultConfig().Catalog()
	for _, id := range []string{assets.Chair, assets.Table} {
		_, err := cat.Resolve(id)
		assert.NoError(t, err, id)
	}
}

func TestSampleConfigLoads(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("configs", "roomxr.yaml"))
	require.NoError(t, err)

	want := DefaultConfig()
	want.AR.Simulate = true
	want.Assets.Catalog = []assets.Entry{
		{ID: assets.Chair, Model: "chair.glb", QuickLook: "chair.usdz"},
		{ID: assets.Table, Model: "table.glb", QuickLook: "table.usdz", Fallback: true},
	}
	assert.Equal(t, want, cfg)
}
