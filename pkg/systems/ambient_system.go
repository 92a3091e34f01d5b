package systems

import (
	"math"

	particlePkg "github.com/gonewx/roadquest/internal/particle"
	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/game"
	"github.com/lucasb-eyer/go-colorful"
)

// 地下光点偏向泥土色
var moteEarth = colorful.Color{R: 0.62, G: 0.45, B: 0.28}

// ambientRefillRate 补充光点的最大速率（个/秒），避免一帧内突然出现一片
const ambientRefillRate = 12.0

// AmbientSystem 缓慢漂浮的氛围光点
// 保持视口内光点数量接近目标值；光点在屏幕坐标中运动。
type AmbientSystem struct {
	gameState *game.GameState
	effects   *particlePkg.Library
	particles *ParticlePool
	refill    float64
}

// NewAmbientSystem 创建氛围光点系统
func NewAmbientSystem(gs *game.GameState, effects *particlePkg.Library) *AmbientSystem {
	capacity := 60
	if e := effects.Get(particlePkg.EffectMote); e != nil && e.MaxActive > 0 {
		capacity = e.MaxActive
	}
	return &AmbientSystem{
		gameState: gs,
		effects:   effects,
		particles: NewParticlePool("ambient", capacity),
	}
}

// Particles 光点粒子池（屏幕坐标）
func (as *AmbientSystem) Particles() *ParticlePool { return as.particles }

// Target 当前目标数量，小屏减半
func (as *AmbientSystem) Target() int {
	if as.gameState.IsSmallScreen() {
		return config.AmbientMoteTarget / 2
	}
	return config.AmbientMoteTarget
}

// Update 补充光点
func (as *AmbientSystem) Update(dt float64) {
	gs := as.gameState
	as.particles.SetBounds(Bounds{
		MinX: -20, MinY: -20,
		MaxX: gs.ViewportW + 20, MaxY: gs.ViewportH + 20,
	}, 1.0)

	missing := as.Target() - as.particles.Len()
	if missing <= 0 {
		as.refill = 0
		return
	}

	as.refill += ambientRefillRate * dt
	n := int(math.Min(float64(missing), as.refill))
	as.refill -= float64(n)

	e := as.effects.MustGet(particlePkg.EffectMote)
	for i := 0; i < n; i++ {
		x := gs.Rng.Float64() * gs.ViewportW
		y := gs.Rng.Float64() * gs.ViewportH
		id := as.particles.SpawnEffect(e, x, y, gs.Rng)
		if gs.Mode == game.ModeTimeline {
			if p, ok := as.particles.Get(id); ok {
				p.Color = p.Color.BlendLab(moteEarth, 0.6).Clamped()
			}
		}
	}
}
