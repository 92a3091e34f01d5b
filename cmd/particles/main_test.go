package main

import (
	"testing"

	particlePkg "github.com/gonewx/roadquest/internal/particle"
)

func TestFilterEffects(t *testing.T) {
	names := []string{"dig_dust", "dig_flame", "confetti", "trail_puff"}

	if got := filterEffects(names, ""); len(got) != len(names) {
		t.Errorf("Empty query should keep all effects, got %v", got)
	}
	if got := filterEffects(names, "DIG"); len(got) != 2 {
		t.Errorf("Expected 2 dig effects, got %v", got)
	}
	if got := filterEffects(names, "nope"); len(got) != 0 {
		t.Errorf("Expected no match, got %v", got)
	}
}

func TestViewer_SwitchAndBurst(t *testing.T) {
	*effectFlag = particlePkg.EffectConfetti
	defer func() { *effectFlag = "" }()

	g, err := NewParticleViewerGame(particlePkg.DefaultLibrary())
	if err != nil {
		t.Fatalf("NewParticleViewerGame failed: %v", err)
	}
	if g.currentEffect() != particlePkg.EffectConfetti {
		t.Fatalf("Expected to start on confetti, got %s", g.currentEffect())
	}
	if g.pool.Len() != burstSize {
		t.Errorf("Expected an initial burst of %d, got %d", burstSize, g.pool.Len())
	}

	first := g.currentEffect()
	g.nextEffect()
	g.previousEffect()
	if g.currentEffect() != first {
		t.Errorf("Next then previous should return to %s, got %s", first, g.currentEffect())
	}

	g.currentIndex = 0
	g.previousEffect()
	if g.currentIndex != len(g.filteredEffectNames)-1 {
		t.Errorf("Previous should wrap to the last effect, got %d", g.currentIndex)
	}
}
