package scenes

import (
	"testing"

	"github.com/gonewx/roadquest/pkg/game"
	"github.com/gonewx/roadquest/pkg/simulation"
	"github.com/gonewx/roadquest/pkg/systems"
)

func TestHUD_ToastsExpire(t *testing.T) {
	h := NewHUD()
	h.OnDiscovered(simulation.WaypointView{Label: "FAQ"})
	if got := h.Messages(); len(got) != 1 || got[0] != "Discovered: FAQ" {
		t.Fatalf("Unexpected messages %q", got)
	}

	h.Update(toastDuration - 0.1)
	if len(h.Messages()) != 1 {
		t.Error("Toast should still be visible")
	}
	h.Update(0.2)
	if len(h.Messages()) != 0 {
		t.Error("Toast should have expired")
	}
}

func TestHUD_KeepsLatestToasts(t *testing.T) {
	h := NewHUD()
	h.OnModeChanged(game.ModeTimeline)
	h.OnWeatherChanged(systems.WeatherRaining)
	h.OnModeChanged(game.ModeRoad)
	h.OnWeatherChanged(systems.WeatherClear)

	msgs := h.Messages()
	if len(msgs) != toastMax {
		t.Fatalf("Expected %d toasts, got %d", toastMax, len(msgs))
	}
	if msgs[0] != "It's starting to rain" {
		t.Errorf("Oldest toast should be dropped, got %q", msgs)
	}
}

func TestHUD_NearChangeIsSilent(t *testing.T) {
	h := NewHUD()
	h.OnNearChanged(nil, &simulation.WaypointView{ID: "faq"})
	if len(h.Messages()) != 0 {
		t.Error("Approaching a way-point should not add a toast")
	}
}
