package systems

import (
	"math"
	"testing"

	particlePkg "github.com/gonewx/roadquest/internal/particle"
	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/game"
)

// stepMode 按固定步长推进时钟并更新模式系统
func stepMode(gs *game.GameState, ms *ModeSystem, now *float64, dt, axis float64) bool {
	*now += dt
	d := gs.Clock.Tick(*now)
	changed := ms.Update(d, axis)
	ms.Particles().Update(d)
	return changed
}

func newTestModeSystem() (*game.GameState, *ModeSystem, *float64) {
	gs := newTestGameState()
	ms := NewModeSystem(gs, particlePkg.DefaultLibrary())
	now := 100.0
	gs.Clock.Tick(now)
	return gs, ms, &now
}

// 场景 4：在入口路标交互后依次经过三个阶段，约 5.5 秒后进入时间线
func TestModeSystem_FullTransition(t *testing.T) {
	gs, ms, now := newTestModeSystem()
	gs.Player.X = 3900

	if !ms.StartDig() {
		t.Fatal("StartDig should start the cinematic from road mode")
	}
	if !gs.Paused() {
		t.Error("Input should be suppressed during the cinematic")
	}

	var phases []game.Phase
	last := gs.Transition.Phase
	phases = append(phases, last)
	changedAt := -1.0
	start := gs.Now()

	for i := 0; i < 600 && changedAt < 0; i++ {
		if stepMode(gs, ms, now, 1.0/60.0, 0) {
			changedAt = gs.Now() - start
		}
		if gs.Transition.Phase != last {
			last = gs.Transition.Phase
			phases = append(phases, last)
		}
		if gs.Mode == game.ModeTimeline && gs.Transition.Active() {
			t.Fatal("Mode must not be timeline while the transition is active")
		}
	}

	want := []game.Phase{game.PhasePreparing, game.PhaseDigging, game.PhaseDescending, game.PhaseNone}
	if len(phases) != len(want) {
		t.Fatalf("Expected phases %v, got %v", want, phases)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Fatalf("Expected phases %v, got %v", want, phases)
		}
	}

	if math.Abs(changedAt-5.5) > 0.1 {
		t.Errorf("Expected timeline after ~5.5s, got %.3f", changedAt)
	}
	if gs.Mode != game.ModeTimeline {
		t.Fatal("Expected timeline mode")
	}
	if gs.Paused() {
		t.Error("Input should be released after the cinematic")
	}
	if gs.Player.Y != config.TimelineTopBound || gs.Player.VY != 0 {
		t.Errorf("Timeline entry should place the player at the top, got Y %f VY %f", gs.Player.Y, gs.Player.VY)
	}
	if gs.Camera.Y != 0 {
		t.Errorf("Camera Y should be zeroed on timeline entry, got %f", gs.Camera.Y)
	}
	if ms.Particles().Len() != 0 {
		t.Errorf("Transition particles should be cleared, got %d", ms.Particles().Len())
	}
}

func TestModeSystem_RetriggerIsNoop(t *testing.T) {
	gs, ms, now := newTestModeSystem()
	ms.StartDig()
	stepMode(gs, ms, now, 0.5, 0) // dt 钳制为 0.05
	startTime := gs.Transition.StartTime

	if ms.StartDig() {
		t.Error("StartDig while active should be a no-op")
	}
	if gs.Transition.StartTime != startTime || gs.Transition.Phase != game.PhasePreparing {
		t.Error("Re-trigger must not reset the cinematic")
	}
}

func TestModeSystem_ShakeFloors(t *testing.T) {
	gs, ms, now := newTestModeSystem()
	ms.StartDig()
	if gs.Transition.Shake != config.PreparingShake {
		t.Errorf("Expected preparing shake %f, got %f", config.PreparingShake, gs.Transition.Shake)
	}

	// 模拟镜头衰减后仍保持下限
	for gs.Transition.Phase == game.PhasePreparing {
		gs.Transition.Shake = 0
		stepMode(gs, ms, now, 1.0/60.0, 0)
	}
	if gs.Transition.Phase != game.PhaseDigging || gs.Transition.Shake != config.DiggingShake {
		t.Fatalf("Digging should start with peak shake, got %v %f", gs.Transition.Phase, gs.Transition.Shake)
	}

	gs.Transition.Shake = 0
	stepMode(gs, ms, now, 1.0/60.0, 0)
	if gs.Transition.Shake < config.DiggingShakeFloor {
		t.Errorf("Digging shake should be floored at %f, got %f", config.DiggingShakeFloor, gs.Transition.Shake)
	}
}

func TestModeSystem_DescendingMovesPlayerDown(t *testing.T) {
	gs, ms, now := newTestModeSystem()
	ms.StartDig()
	for gs.Transition.Phase != game.PhaseDescending {
		stepMode(gs, ms, now, 1.0/60.0, 0)
	}
	roadY := gs.Transition.RoadY

	prev := gs.Player.Y
	for i := 0; i < 60; i++ {
		stepMode(gs, ms, now, 1.0/60.0, 0)
		if gs.Player.Y < prev {
			t.Fatal("Player should only move down during the descent")
		}
		prev = gs.Player.Y
	}
	if gs.Player.Y <= roadY {
		t.Error("Player should have descended below the road")
	}
	if gs.Transition.Progress <= 0 || gs.Transition.Progress > 1 {
		t.Errorf("Progress out of range: %f", gs.Transition.Progress)
	}
}

func TestModeSystem_EmitsParticles(t *testing.T) {
	gs, ms, now := newTestModeSystem()
	ms.StartDig()
	for i := 0; i < 60; i++ {
		stepMode(gs, ms, now, 1.0/60.0, 0)
	}
	if ms.Particles().Len() == 0 {
		t.Error("Preparing phase should emit dust")
	}
}

func TestModeSystem_ReturnToRoad(t *testing.T) {
	gs, ms, now := newTestModeSystem()
	gs.Transition.RoadX = 3900
	gs.Transition.RoadY = gs.World.Road.LaneY
	gs.EnterTimeline()
	gs.Camera.Y = 0

	// 在顶部但没有向上输入
	if stepMode(gs, ms, now, 1.0/60.0, 0) {
		t.Fatal("Should not leave the timeline without moving up")
	}

	// 在顶部按上
	if !stepMode(gs, ms, now, 1.0/60.0, -1) {
		t.Fatal("Pressing up at the top should return to the road")
	}
	if gs.Mode != game.ModeRoad {
		t.Fatal("Expected road mode")
	}
	if gs.Player.X != 3900 || gs.Player.Y != gs.World.Road.LaneY {
		t.Errorf("Road position should be restored, got (%f, %f)", gs.Player.X, gs.Player.Y)
	}
	if gs.Camera.Y != 0 {
		t.Errorf("Camera Y should be zero, got %f", gs.Camera.Y)
	}
}

func TestModeSystem_NoDigFromTimeline(t *testing.T) {
	gs, ms, _ := newTestModeSystem()
	gs.EnterTimeline()
	if ms.StartDig() {
		t.Error("StartDig should do nothing in timeline mode")
	}
}
