package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/game"
	"github.com/gonewx/roadquest/pkg/simulation"
)

func worldViews(world *config.WorldConfig) []simulation.WaypointView {
	out := make([]simulation.WaypointView, 0, len(world.Waypoints))
	for _, wp := range world.Waypoints {
		out = append(out, simulation.WaypointView{
			ID:       wp.ID,
			Label:    wp.Label,
			Category: wp.Category,
			Space:    wp.Space,
			Position: wp.Position,
		})
	}
	return out
}

func TestColumn(t *testing.T) {
	tests := []struct {
		name   string
		pos    float64
		length float64
		width  int
		want   int
	}{
		{"start", 0, 100, 11, 0},
		{"end", 100, 100, 11, 10},
		{"middle", 50, 100, 11, 5},
		{"below range", -20, 100, 11, 0},
		{"above range", 150, 100, 11, 10},
		{"zero length", 50, 0, 11, 0},
		{"narrow", 50, 100, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := column(tt.pos, tt.length, tt.width); got != tt.want {
				t.Errorf("column(%v, %v, %d) = %d, want %d", tt.pos, tt.length, tt.width, got, tt.want)
			}
		})
	}
}

func TestMapStripRoad(t *testing.T) {
	world := config.DefaultWorldConfig()
	snap := simulation.Snapshot{Mode: game.ModeRoad, Player: game.Player{X: 0}}

	strip := []rune(mapStrip(snap, worldViews(world), world, 49))
	if len(strip) != 49 {
		t.Fatalf("strip width = %d, want 49", len(strip))
	}

	checks := map[int]rune{
		0:  glyphPlayer,
		5:  'O', // overview 520
		13: 'R', // register 1300
		15: glyphFastLane,
		20: glyphFastLane,
		23: '?', // faq 2300
		31: 'C', // contact 3100
		39: 'V', // dig 3900
		43: glyphSign,
		48: glyphGround,
	}
	for col, want := range checks {
		if strip[col] != want {
			t.Errorf("strip[%d] = %q, want %q (%s)", col, strip[col], want, string(strip))
		}
	}
	if strings.ContainsRune(string(strip), 'M') {
		t.Errorf("timeline milestones should not appear on the road: %s", string(strip))
	}
}

func TestMapStripMarksNearWaypoint(t *testing.T) {
	world := config.DefaultWorldConfig()
	snap := simulation.Snapshot{
		Mode:   game.ModeRoad,
		Player: game.Player{X: 0},
		Near:   &simulation.WaypointView{ID: "faq"},
	}
	strip := []rune(mapStrip(snap, worldViews(world), world, 49))
	if strip[23] != glyphNear {
		t.Errorf("near waypoint glyph = %q, want %q", strip[23], glyphNear)
	}
}

func TestMapStripTimeline(t *testing.T) {
	world := config.DefaultWorldConfig()
	snap := simulation.Snapshot{Mode: game.ModeTimeline, Player: game.Player{Y: 1600}}

	strip := []rune(mapStrip(snap, worldViews(world), world, 49))
	if strip[24] != glyphPlayer {
		t.Errorf("player column = %q, want %q (%s)", strip[24], glyphPlayer, string(strip))
	}
	if strip[7] != 'M' {
		t.Errorf("kickoff column = %q, want 'M'", strip[7])
	}
	if strip[48] != glyphShaft {
		t.Errorf("fill = %q, want %q", strip[48], glyphShaft)
	}
	for _, r := range []rune{glyphSign, glyphFastLane, 'R'} {
		if strings.ContainsRune(string(strip), r) {
			t.Errorf("timeline strip should not contain %q: %s", r, string(strip))
		}
	}
}

func TestMapStripMinimumWidth(t *testing.T) {
	world := config.DefaultWorldConfig()
	got := mapStrip(simulation.Snapshot{}, nil, world, 2)
	if len([]rune(got)) != 8 {
		t.Errorf("strip width = %d, want 8", len([]rune(got)))
	}
}

func TestParticleSummary(t *testing.T) {
	got := particleSummary(map[string]int{"rain": 12, "confetti": 3, "dust": 0})
	want := "confetti=3 dust=0 rain=12"
	if got != want {
		t.Errorf("particleSummary = %q, want %q", got, want)
	}
	if particleSummary(nil) != "" {
		t.Error("empty summary should be empty")
	}
}

func TestStatusLinesShowsNearAndPhase(t *testing.T) {
	snap := simulation.Snapshot{
		Near:     &simulation.WaypointView{Label: "FAQ", Category: config.CategoryFAQ},
		Phase:    game.PhaseDigging,
		Progress: 0.5,
	}
	text := strings.Join(statusLines(snap), "\n")
	if !strings.Contains(text, "near=FAQ") {
		t.Errorf("status should name the near waypoint:\n%s", text)
	}
	if !strings.Contains(text, "50%") {
		t.Errorf("status should show phase progress:\n%s", text)
	}
}

func TestHeldAxisExpires(t *testing.T) {
	var h heldAxis
	h.press(1)
	if got := h.tick(frameDt); got != 1 {
		t.Fatalf("held axis = %v, want 1", got)
	}
	for i := 0; i < 30; i++ {
		h.tick(frameDt)
	}
	if got := h.tick(frameDt); got != 0 {
		t.Errorf("axis after release = %v, want 0", got)
	}
}

func TestRunHeadlessPrintsSummaries(t *testing.T) {
	world := config.DefaultWorldConfig()
	overlay := &inspectorOverlay{}
	sim, err := simulation.New(simulation.Options{World: world, Overlay: overlay})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var out bytes.Buffer
	runHeadless(sim, overlay, 2, 1, &out)

	if n := strings.Count(out.String(), "mode="); n != 3 {
		t.Errorf("summaries = %d, want 3 (t=0, 1, 2)\n%s", n, out.String())
	}
	if snap := sim.Snapshot(); snap.Player.X <= world.Road.StartX {
		t.Errorf("player did not move: x=%v", snap.Player.X)
	}
}
