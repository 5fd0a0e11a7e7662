package platform

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hubastard/tofu/engine/core"
)

func TestTranslateKey(t *testing.T) {
	cases := map[glfw.Key]core.Key{
		glfw.KeyEscape:      core.KeyEscape,
		glfw.KeyW:           core.KeyW,
		glfw.KeyQ:           core.KeyQ,
		glfw.KeyE:           core.KeyE,
		glfw.KeyLeftShift:   core.KeyLeftShift,
		glfw.KeyLeftControl: core.KeyLeftControl,
		glfw.KeyF2:          core.KeyF2,
		glfw.Key3:           core.Key3,
		glfw.KeyZ:           core.KeyUnknown,
	}
	for in, want := range cases {
		if got := translateKey(in); got != want {
			t.Errorf("translateKey(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestTranslateButton(t *testing.T) {
	if b, ok := translateButton(glfw.MouseButtonRight); !ok || b != core.MouseButtonRight {
		t.Errorf("right button = %v, %v", b, ok)
	}
	if _, ok := translateButton(glfw.MouseButton5); ok {
		t.Errorf("extra button should be dropped")
	}
}

func TestTranslateMods(t *testing.T) {
	got := translateMods(glfw.ModShift | glfw.ModControl)
	if got != core.ModShift|core.ModCtrl {
		t.Errorf("translateMods = %b", got)
	}
	if translateMods(0) != core.ModNone {
		t.Errorf("empty mods not ModNone")
	}
}
