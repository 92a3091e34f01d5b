package main

import (
	"testing"

	particlePkg "github.com/gonewx/roadquest/internal/particle"
	"github.com/gonewx/roadquest/pkg/config"
)

// TestEmbeddedWorldMatchesDefaults 嵌入的 world.yaml 与内置默认值一致
func TestEmbeddedWorldMatchesDefaults(t *testing.T) {
	data, err := dataFS.ReadFile("data/world.yaml")
	if err != nil {
		t.Fatalf("world.yaml not embedded: %v", err)
	}
	world, err := config.ParseWorldConfig(data)
	if err != nil {
		t.Fatalf("ParseWorldConfig failed: %v", err)
	}

	def := config.DefaultWorldConfig()
	if len(world.Waypoints) != len(def.Waypoints) {
		t.Fatalf("Expected %d way-points, got %d", len(def.Waypoints), len(world.Waypoints))
	}
	for i, wp := range world.Waypoints {
		d := def.Waypoints[i]
		if wp.ID != d.ID || wp.Category != d.Category || wp.Space != d.Space ||
			wp.Position != d.Position || wp.TriggerRadius != d.TriggerRadius {
			t.Errorf("Way-point #%d differs: %+v vs %+v", i, wp, d)
		}
	}
	if world.Road.Length != def.Road.Length || world.Road.LaneY != def.Road.LaneY ||
		world.Road.Kinematics != def.Road.Kinematics {
		t.Errorf("Road differs: %+v vs %+v", world.Road, def.Road)
	}
	if world.Timeline != def.Timeline {
		t.Errorf("Timeline differs: %+v vs %+v", world.Timeline, def.Timeline)
	}
	if world.Sign != def.Sign {
		t.Errorf("Sign differs: %+v vs %+v", world.Sign, def.Sign)
	}
}

// TestEmbeddedEffectsParse 嵌入的 effects.yaml 包含全部内置效果
func TestEmbeddedEffectsParse(t *testing.T) {
	data, err := dataFS.ReadFile("data/effects.yaml")
	if err != nil {
		t.Fatalf("effects.yaml not embedded: %v", err)
	}
	lib, err := particlePkg.ParseEffects(data)
	if err != nil {
		t.Fatalf("ParseEffects failed: %v", err)
	}
	for _, name := range []string{
		particlePkg.EffectTrailPuff, particlePkg.EffectDrillGrit, particlePkg.EffectConfetti,
		particlePkg.EffectMote, particlePkg.EffectLightningSpark, particlePkg.EffectDigDust,
		particlePkg.EffectDigSpark, particlePkg.EffectDigFlame,
	} {
		if lib.Get(name) == nil {
			t.Errorf("Effect %s missing", name)
		}
	}
}
