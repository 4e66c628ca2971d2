package theme

import (
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func TestResolveKnownTheme(t *testing.T) {
	th := Resolve("sunset", "off")
	if th.ID != Sunset {
		t.Errorf("ID = %q, expected sunset", th.ID)
	}
	if th.Palette != palettes[Sunset] {
		t.Error("off mode must leave the palette unchanged")
	}
}

func TestResolveUnknownThemeFallsBack(t *testing.T) {
	th := Resolve("not-a-theme", "")
	if th.ID != Neon {
		t.Errorf("ID = %q, expected neon", th.ID)
	}
	if th.Mode != ModeOff {
		t.Errorf("Mode = %q, expected off", th.Mode)
	}
}

func TestResolveColorblindModes(t *testing.T) {
	base := palettes[Ocean]

	deut := Resolve("ocean", "deuteranopia").Palette
	if deut.SnakeHead == base.SnakeHead || deut.Food == base.Food {
		t.Error("deuteranopia should remap snake and food")
	}
	if deut.Grid != base.Grid || deut.Text != base.Text {
		t.Error("deuteranopia should keep grid and text")
	}

	hc := Resolve("ocean", " HIGH_CONTRAST ")
	if hc.Mode != ModeHighContrast || hc.Palette.Text != "#FFFFFF" {
		t.Errorf("high contrast not applied: %+v", hc)
	}

	unknown := Resolve("ocean", "sepia")
	if unknown.Palette != base || unknown.Mode != ModeOff {
		t.Error("unknown mode must leave the palette unchanged")
	}
}

func TestStyleCoversEveryRole(t *testing.T) {
	th := Resolve("neon", "off")
	for c := core.ColorDefault; c <= core.ColorSelected; c++ {
		if _, ok := th.styles[c]; !ok {
			t.Errorf("no style for color %d", c)
		}
	}
	if got := th.Style(core.ColorFood).GetForeground(); got != th.Palette.Food {
		t.Errorf("food foreground = %v, expected %v", got, th.Palette.Food)
	}
}

func TestCycling(t *testing.T) {
	if Next("neon") != Sunset || Next("ocean") != Neon || Next("bogus") != Neon {
		t.Error("theme cycling broken")
	}
	if !Known("ocean") || Known("bogus") {
		t.Error("Known() broken")
	}
	if !KnownMode("tritanopia") || KnownMode("sepia") {
		t.Error("KnownMode() broken")
	}
}
