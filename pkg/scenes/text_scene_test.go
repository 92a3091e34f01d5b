package scenes

import (
	"strings"
	"testing"

	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func indexOf(lines []string, want string) int {
	for i, l := range lines {
		if l == want {
			return i
		}
	}
	return -1
}

func TestBuildTextLines_OrderAndSections(t *testing.T) {
	lines := buildTextLines(config.DefaultWorldConfig(), false)

	road := indexOf(lines, "== Along the road ==")
	timeline := indexOf(lines, "== Timeline ==")
	if road < 0 || timeline < 0 || road > timeline {
		t.Fatalf("Expected road section before timeline, got %d/%d", road, timeline)
	}

	overview := indexOf(lines, "# OVERVIEW")
	contact := indexOf(lines, "# CONTACT")
	kickoff := indexOf(lines, "# KICK-OFF")
	awards := indexOf(lines, "# AWARDS")
	if !(overview < contact && contact < timeline && timeline < kickoff && kickoff < awards) {
		t.Errorf("Way-points out of order: overview=%d contact=%d kickoff=%d awards=%d", overview, contact, kickoff, awards)
	}
	if indexOf(lines, "outreach@example.org") < 0 {
		t.Error("Body text should be included")
	}
}

func TestBuildTextLines_SortsByPosition(t *testing.T) {
	world := &config.WorldConfig{Waypoints: []config.WaypointConfig{
		{Title: "Late", Space: config.SpaceRoad, Position: 900},
		{Title: "Early", Space: config.SpaceRoad, Position: 100},
	}}
	lines := buildTextLines(world, false)
	if indexOf(lines, "# EARLY") > indexOf(lines, "# LATE") {
		t.Error("Road way-points should be sorted by position")
	}
	if indexOf(lines, "== Timeline ==") >= 0 {
		t.Error("Empty timeline section should be omitted")
	}
}

func TestBuildTextLines_Registered(t *testing.T) {
	lines := buildTextLines(config.DefaultWorldConfig(), true)
	if !strings.Contains(strings.Join(lines, "\n"), "You are registered") {
		t.Error("Registered visitors should see a confirmation")
	}
}

func TestTextScene_ScrollAndBack(t *testing.T) {
	sm := game.NewSceneManager()
	back := false
	sm.SetSceneFactory(func(name string) game.Scene {
		if name == game.SceneWorld {
			back = true
			return NewTextScene(sm, nil, nil)
		}
		return nil
	})

	s := NewTextScene(sm, nil, nil)
	inputs := []textInput{{Scroll: 50}, {Scroll: -80}, {Scroll: 30}}
	s.readInput = func(float64) textInput {
		in := inputs[0]
		inputs = inputs[1:]
		return in
	}

	s.Update(1.0 / 60)
	if s.scroll != 50 {
		t.Errorf("Expected scroll 50, got %.0f", s.scroll)
	}
	s.Update(1.0 / 60)
	if s.scroll != 0 {
		t.Errorf("Scroll should clamp at the top, got %.0f", s.scroll)
	}
	s.Update(1.0 / 60)

	s.readInput = func(float64) textInput { return textInput{Back: true} }
	s.Update(1.0 / 60)
	if !back || sm.CurrentName() != game.SceneWorld {
		t.Error("T should switch back to the world scene")
	}
}

func TestTextScene_DrawClampsScroll(t *testing.T) {
	s := NewTextScene(nil, nil, nil)
	s.scroll = 1e6
	s.Draw(ebiten.NewImage(480, 320))

	if len(s.lines) == 0 {
		t.Fatal("Draw should lay out the text")
	}
	want := float64(len(s.lines))*16 - (320 - textMargin*2)
	if s.scroll != want {
		t.Errorf("Expected scroll clamped to %.0f, got %.0f", want, s.scroll)
	}
}
