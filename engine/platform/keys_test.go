package platform

import (
	"testing"

	"github.com/gekko3d/roomxr"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		in   glfw.Key
		want roomxr.Key
	}{
		{glfw.KeyUp, roomxr.KeyUp},
		{glfw.KeyDelete, roomxr.KeyDelete},
		{glfw.KeyBackspace, roomxr.KeyBackspace},
		{glfw.KeyKPEnter, roomxr.KeyEnter},
		{glfw.KeyG, roomxr.KeyG},
		{glfw.KeyZ, roomxr.KeyUnknown},
		{glfw.KeyF5, roomxr.KeyUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TranslateKey(tt.in), "glfw key %d", tt.in)
	}
}

func TestTranslateMods(t *testing.T) {
	assert.Equal(t, roomxr.Modifier(0), TranslateMods(0))
	assert.Equal(t, roomxr.ModShift, TranslateMods(glfw.ModShift))
	assert.Equal(t, roomxr.ModShift|roomxr.ModAlt, TranslateMods(glfw.ModShift|glfw.ModAlt|glfw.ModSuper))
}
