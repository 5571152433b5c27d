package platform

import (
	"github.com/gekko3d/roomxr"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var glfwKeys = map[glfw.Key]roomxr.Key{
	glfw.KeyA:         roomxr.KeyA,
	glfw.KeyD:         roomxr.KeyD,
	glfw.KeyE:         roomxr.KeyE,
	glfw.KeyG:         roomxr.KeyG,
	glfw.KeyQ:         roomxr.KeyQ,
	glfw.KeyR:         roomxr.KeyR,
	glfw.KeySpace:     roomxr.KeySpace,
	glfw.KeyEnter:     roomxr.KeyEnter,
	glfw.KeyKPEnter:   roomxr.KeyEnter,
	glfw.KeyEscape:    roomxr.KeyEscape,
	glfw.KeyBackspace: roomxr.KeyBackspace,
	glfw.KeyDelete:    roomxr.KeyDelete,
	glfw.KeyRight:     roomxr.KeyRight,
	glfw.KeyLeft:      roomxr.KeyLeft,
	glfw.KeyDown:      roomxr.KeyDown,
	glfw.KeyUp:        roomxr.KeyUp,
}

var mouseButtons = map[glfw.MouseButton]roomxr.MouseButton{
	glfw.MouseButtonLeft:   roomxr.MouseButtonLeft,
	glfw.MouseButtonRight:  roomxr.MouseButtonRight,
	glfw.MouseButtonMiddle: roomxr.MouseButtonMiddle,
}

// TranslateKey maps a GLFW key to the app's key set. Keys the app has no
// binding for map to KeyUnknown.
func TranslateKey(k glfw.Key) roomxr.Key {
	if key, ok := glfwKeys[k]; ok {
		return key
	}
	return roomxr.KeyUnknown
}

func TranslateMods(m glfw.ModifierKey) roomxr.Modifier {
	var out roomxr.Modifier
	if m&glfw.ModShift != 0 {
		out |= roomxr.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= roomxr.ModControl
	}
	if m&glfw.ModAlt != 0 {
		out |= roomxr.ModAlt
	}
	return out
}
