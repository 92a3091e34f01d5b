package app

import (
	"testing"

	"github.com/gonewx/roadquest/pkg/config"
)

func TestLogicalSize(t *testing.T) {
	tests := []struct {
		name         string
		outW, outH   int
		mobile       bool
		wantW, wantH int
	}{
		{"desktop ignores window", 1920, 1080, false, config.GameWindowWidth, config.GameWindowHeight},
		{"mobile portrait", 390, 844, true, 390 * config.GameWindowHeight / 844, config.GameWindowHeight},
		{"mobile wide is capped", 2400, 1080, true, config.GameWindowWidth, config.GameWindowHeight},
		{"zero size", 0, 0, true, config.GameWindowWidth, config.GameWindowHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := LogicalSize(tt.outW, tt.outH, tt.mobile)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("LogicalSize(%d, %d, %v) = %dx%d, want %dx%d", tt.outW, tt.outH, tt.mobile, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

// TestLogicalSize_PortraitIsSmallScreen 竖屏手机得到小屏视口
func TestLogicalSize_PortraitIsSmallScreen(t *testing.T) {
	w, _ := LogicalSize(390, 844, true)
	if float64(w) >= config.SmallScreenWidth {
		t.Errorf("Expected a small-screen width, got %d", w)
	}
}

func TestLoadWorld_FallsBackToDefaults(t *testing.T) {
	world := loadWorld("data/does-not-exist.yaml")
	if len(world.Waypoints) != len(config.DefaultWorldConfig().Waypoints) {
		t.Errorf("Expected the built-in world, got %d way-points", len(world.Waypoints))
	}
}

func TestLoadEffects_FallsBackToDefaults(t *testing.T) {
	lib := loadEffects("data/does-not-exist.yaml")
	if lib.Get("trail_puff") == nil {
		t.Error("Expected built-in effects")
	}
}
