package systems

import (
	"log"
	"math"

	particlePkg "github.com/gonewx/roadquest/internal/particle"
	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/game"
	"github.com/lucasb-eyer/go-colorful"
)

// ConfettiSystem 报名成功后的彩纸喷射
// 彩纸在屏幕坐标中运动，从视口底部两侧向上喷出后受重力落下。
type ConfettiSystem struct {
	gameState *game.GameState
	effects   *particlePkg.Library
	particles *ParticlePool
}

// NewConfettiSystem 创建彩纸系统
func NewConfettiSystem(gs *game.GameState, effects *particlePkg.Library) *ConfettiSystem {
	capacity := 400
	if e := effects.Get(particlePkg.EffectConfetti); e != nil && e.MaxActive > 0 {
		capacity = e.MaxActive
	}
	return &ConfettiSystem{
		gameState: gs,
		effects:   effects,
		particles: NewParticlePool("confetti", capacity),
	}
}

// Particles 彩纸粒子池（屏幕坐标）
func (cs *ConfettiSystem) Particles() *ParticlePool { return cs.particles }

// Burst 喷出 n 片彩纸，n <= 0 时使用默认数量
func (cs *ConfettiSystem) Burst(n int) {
	gs := cs.gameState
	if n <= 0 {
		n = config.ConfettiBurst
	}
	e := cs.effects.MustGet(particlePkg.EffectConfetti)

	for i := 0; i < n; i++ {
		// 左右两个喷口交替
		x := gs.ViewportW * 0.15
		if i%2 == 1 {
			x = gs.ViewportW * 0.85
		}
		x += RandomRange(gs, -20, 20)
		id := cs.particles.SpawnEffect(e, x, gs.ViewportH+10, gs.Rng)
		if p, ok := cs.particles.Get(id); ok {
			// 向屏幕中央倾斜
			if i%2 == 1 {
				p.VX = -math.Abs(p.VX)
			} else {
				p.VX = math.Abs(p.VX)
			}
			p.Color = confettiColor(gs)
		}
	}
	log.Printf("[ConfettiSystem] 喷射 %d 片彩纸", n)
}

// Update 更新回收边界
// 彩纸本身的运动由粒子池统一更新
func (cs *ConfettiSystem) Update(dt float64) {
	gs := cs.gameState
	cs.particles.SetBounds(Bounds{
		MinX: -60,
		MinY: math.Inf(-1),
		MaxX: gs.ViewportW + 60,
		MaxY: gs.ViewportH + 40,
	}, 0.25)
}

// confettiColor 在 HCL 空间中随机取色，保证亮度和饱和度一致
func confettiColor(gs *game.GameState) colorful.Color {
	h := gs.Rng.Float64() * 360
	return colorful.Hcl(h, 0.55, 0.72).Clamped()
}
