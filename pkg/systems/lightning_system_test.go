package systems

import (
	"math"
	"testing"

	particlePkg "github.com/gonewx/roadquest/internal/particle"
	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/game"
)

func newTestLightning() (*game.GameState, *LightningSystem, *float64) {
	gs := newTestGameState()
	ls := NewLightningSystem(gs, particlePkg.DefaultLibrary())
	now := 0.0
	gs.Clock.Tick(now)
	return gs, ls, &now
}

func stepLightning(gs *game.GameState, ls *LightningSystem, now *float64, dt float64) {
	*now += dt
	d := gs.Clock.Tick(*now)
	ls.Update(d)
	ls.Sparks().Update(d)
	ls.Rings().Update(d)
	ls.Leaks().Update(d)
}

func TestLightning_WaitsForAnchor(t *testing.T) {
	gs, ls, now := newTestLightning()
	for gs.Now() < config.DefaultFirstStrikeDelay+1 {
		stepLightning(gs, ls, now, 0.05)
	}
	if ls.State() != LightningIdle {
		t.Fatal("Lightning must not strike before the sign anchor is set")
	}

	gs.Sign = game.SignAnchor{X: 4300, Y: 250, Valid: true}
	stepLightning(gs, ls, now, 0.05)
	if ls.State() != LightningActive {
		t.Fatalf("Expected strike once the anchor is set, got %v", ls.State())
	}
}

func TestLightning_StrikeBurst(t *testing.T) {
	gs, ls, now := newTestLightning()
	gs.Sign = game.SignAnchor{X: 4300, Y: 250, Valid: true}
	for ls.State() == LightningIdle {
		stepLightning(gs, ls, now, 0.05)
	}

	view := ls.View()
	if len(view.Path) != config.LightningSegments+2 {
		t.Errorf("Expected %d path points, got %d", config.LightningSegments+2, len(view.Path))
	}
	end := view.Path[len(view.Path)-1]
	if end.X != 4300 || end.Y != 250 {
		t.Errorf("Path should end at the sign, got %+v", end)
	}
	start := view.Path[0]
	if start.Y > gs.Camera.Y-config.LightningSourceBandMin || start.Y < gs.Camera.Y-config.LightningSourceBandMax {
		t.Errorf("Source Y %f outside band above the viewport", start.Y)
	}
	if math.Abs(start.X-4300) > config.LightningSourceSpread*gs.ViewportW {
		t.Errorf("Source X %f too far from target", start.X)
	}

	if ls.Sparks().Len() != config.LightningSparkCount {
		t.Errorf("Expected %d sparks, got %d", config.LightningSparkCount, ls.Sparks().Len())
	}
	if ls.Rings().Len() != config.LightningRingCount {
		t.Errorf("Expected %d rings, got %d", config.LightningRingCount, ls.Rings().Len())
	}
	if n := ls.Leaks().Len(); n < config.LightningLeakMin || n > config.LightningLeakMax {
		t.Errorf("Expected 3-5 leaks, got %d", n)
	}
	if gs.Camera.Kick <= 0 {
		t.Error("Strike should kick the camera")
	}
}

// 性质：同一时刻最多一次闪电，NextStrike 严格递增
func TestLightning_SingleFlightAndIncreasingSchedule(t *testing.T) {
	gs, ls, now := newTestLightning()
	gs.Sign = game.SignAnchor{X: 4300, Y: 250, Valid: true}

	strikes := 0
	prevState := ls.State()
	prevNext := ls.NextStrike()
	for i := 0; i < 60*120; i++ {
		stepLightning(gs, ls, now, 1.0/60.0)
		st := ls.State()

		if st == LightningActive && prevState != LightningActive {
			strikes++
			if prevState != LightningIdle {
				t.Fatalf("Strike started from %v, expected idle", prevState)
			}
		}
		if next := ls.NextStrike(); next != prevNext {
			if next <= prevNext {
				t.Fatalf("NextStrike must strictly increase: %f -> %f", prevNext, next)
			}
			if gap := next - gs.Now(); gap < config.LightningDelayMin-1e-9 || gap > config.LightningDelayMax {
				t.Fatalf("Delay %f outside [%f, %f]", gap, config.LightningDelayMin, config.LightningDelayMax)
			}
			prevNext = next
		}
		prevState = st
	}

	// 120 秒内：首次 4 秒，之后每 ~8–12.6 秒一次
	if strikes < 8 || strikes > 16 {
		t.Errorf("Unexpected strike count in 120s: %d", strikes)
	}
}

func TestLightning_BrightnessEnvelope(t *testing.T) {
	gs, ls, now := newTestLightning()
	gs.Sign = game.SignAnchor{X: 100, Y: 100, Valid: true}
	for ls.State() == LightningIdle {
		stepLightning(gs, ls, now, 0.01)
	}

	peak := 0.0
	for ls.State() == LightningActive {
		stepLightning(gs, ls, now, 0.01)
		b := ls.View().Brightness
		if b < 0 || b > 1 {
			t.Fatalf("Brightness out of range: %f", b)
		}
		peak = math.Max(peak, b)
	}
	if peak < 0.95 {
		t.Errorf("Brightness should reach ~1 at its peak, got %f", peak)
	}

	view := ls.View()
	if view.State != LightningAfterglow || view.Brightness != 0 {
		t.Fatalf("Expected afterglow with zero brightness, got %v %f", view.State, view.Brightness)
	}
	if view.Afterglow <= 0.9 {
		t.Errorf("Afterglow should start near 1, got %f", view.Afterglow)
	}

	// 余辉结束时聚焦仍有剩余（衰减得更慢）
	for ls.State() == LightningAfterglow {
		stepLightning(gs, ls, now, 0.05)
	}
	if ls.View().Focus <= 0 {
		t.Error("Focus should outlast the afterglow")
	}
}

func TestLightning_Disabled(t *testing.T) {
	gs := newTestGameState()
	gs.World.Lightning.Disabled = true
	ls := NewLightningSystem(gs, particlePkg.DefaultLibrary())
	gs.Sign = game.SignAnchor{X: 1, Y: 1, Valid: true}
	now := 0.0
	gs.Clock.Tick(now)
	for i := 0; i < 400; i++ {
		stepLightning(gs, ls, &now, 0.05)
	}
	if ls.State() != LightningIdle {
		t.Error("Disabled lightning should never strike")
	}
}

func TestLightning_LeaksShrinkBeforeRemoval(t *testing.T) {
	pool := NewParticlePool("leaks", 0)
	pool.SetHook(updateLeak)
	id := pool.Spawn(Particle{Life: 1, TargetLength: 50})

	maxLen := 0.0
	var last float64
	for i := 0; i < 200 && pool.Len() > 0; i++ {
		pool.Update(0.01)
		if p, ok := pool.Get(id); ok {
			maxLen = math.Max(maxLen, p.Length)
			last = p.Length
		}
	}
	if maxLen < 40 {
		t.Errorf("Leak should extend towards its target length, max %f", maxLen)
	}
	if last > 2 {
		t.Errorf("Leak should shrink to ~0 before removal, last length %f", last)
	}
}
