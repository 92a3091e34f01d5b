package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/game"
)

func TestCamera_RoadCentersAndClamps(t *testing.T) {
	gs := newTestGameState()
	cs := NewCameraSystem(gs)

	gs.Player.X = 2000
	cs.Update(0.016)
	if want := 2000 - gs.ViewportW/2; gs.Camera.X != want {
		t.Errorf("Expected camera X %f, got %f", want, gs.Camera.X)
	}

	gs.Player.X = 10
	cs.Update(0.016)
	if gs.Camera.X != 0 {
		t.Errorf("Camera X should clamp to 0, got %f", gs.Camera.X)
	}

	gs.Player.X = gs.World.Road.Length
	cs.Update(0.016)
	if want := gs.World.Road.Length - gs.ViewportW; gs.Camera.X != want {
		t.Errorf("Camera X should clamp to %f, got %f", want, gs.Camera.X)
	}
}

func TestCamera_TimelineEasing(t *testing.T) {
	gs := newTestGameState()
	gs.EnterTimeline()
	cs := NewCameraSystem(gs)

	gs.Player.Y = 1500
	target := 1500 - gs.ViewportH*config.TimelineCameraLead

	cs.Update(0.1)
	// 一步：y = target * min(1, 0.1*3.5)
	if math.Abs(gs.Camera.Y-target*0.35) > 1e-6 {
		t.Errorf("Expected first step %f, got %f", target*0.35, gs.Camera.Y)
	}

	prev := gs.Camera.Y
	for i := 0; i < 200; i++ {
		cs.Update(1.0 / 60.0)
		if gs.Camera.Y < prev-1e-9 {
			t.Fatal("Camera should approach the target monotonically")
		}
		prev = gs.Camera.Y
	}
	if math.Abs(gs.Camera.Y-target) > 0.5 {
		t.Errorf("Camera should converge to %f, got %f", target, gs.Camera.Y)
	}
	if gs.Camera.X != 0 {
		t.Errorf("Camera X should be pinned to 0, got %f", gs.Camera.X)
	}
}

func TestCamera_SmallScreenEasesFaster(t *testing.T) {
	desktop := newTestGameState()
	desktop.EnterTimeline()
	desktop.Player.Y = 1500

	mobile := newTestGameState()
	mobile.EnterTimeline()
	mobile.SetViewport(390, desktop.ViewportH)
	mobile.Player.Y = 1500

	NewCameraSystem(desktop).Update(0.05)
	NewCameraSystem(mobile).Update(0.05)

	if mobile.Camera.Y <= desktop.Camera.Y {
		t.Errorf("Small screen should ease faster: %f vs %f", mobile.Camera.Y, desktop.Camera.Y)
	}
}

// 性质：任意玩家位置下镜头基础偏移都在边界内
func TestCamera_BoundProperty(t *testing.T) {
	gs := newTestGameState()
	cs := NewCameraSystem(gs)
	rng := rand.New(rand.NewSource(9))

	for i := 0; i < 2000; i++ {
		if i == 1000 {
			gs.EnterTimeline()
		}
		if gs.Mode == game.ModeRoad {
			gs.Player.X = rng.Float64()*gs.World.Road.Length*1.5 - 500
		} else {
			gs.Player.Y = rng.Float64()*gs.World.Timeline.Length*1.5 - 500
		}
		gs.Transition.Shake = rng.Float64() * 10
		cs.Update(rng.Float64() * config.MaxFrameDt)

		if gs.Camera.X < 0 || gs.Camera.X > math.Max(0, gs.World.Road.Length-gs.ViewportW) {
			t.Fatalf("Camera X out of bounds: %f", gs.Camera.X)
		}
		maxY := gs.World.Timeline.Length - gs.ViewportH*config.TimelineCameraTail + config.TimelineCameraMargin
		if gs.Camera.Y < 0 || gs.Camera.Y > maxY {
			t.Fatalf("Camera Y out of bounds: %f", gs.Camera.Y)
		}
	}
}

func TestCamera_ShakeDecays(t *testing.T) {
	gs := newTestGameState()
	cs := NewCameraSystem(gs)
	gs.Transition.Shake = 9

	cs.Update(0.1)
	if math.Abs(gs.Camera.ShakeX) > 9 || math.Abs(gs.Camera.ShakeY) > 9 {
		t.Errorf("Shake offset exceeds amplitude: (%f, %f)", gs.Camera.ShakeX, gs.Camera.ShakeY)
	}
	if math.Abs(gs.Transition.Shake-7.2) > 1e-9 {
		t.Errorf("Expected amplitude 7.2 after decay, got %f", gs.Transition.Shake)
	}

	for i := 0; i < 20; i++ {
		cs.Update(0.05)
	}
	if gs.Transition.Shake != 0 || gs.Camera.ShakeX != 0 || gs.Camera.ShakeY != 0 {
		t.Error("Shake should fully decay")
	}
}

func TestCamera_LightningKick(t *testing.T) {
	gs := newTestGameState()
	cs := NewCameraSystem(gs)
	gs.Camera.Kick = config.LightningShake

	cs.Update(0.016)
	if gs.Camera.ShakeX == 0 && gs.Camera.ShakeY == 0 {
		t.Error("Kick should produce a shake offset")
	}
	if gs.Camera.Kick >= config.LightningShake {
		t.Error("Kick should decay")
	}
}
