package systems

import (
	"math"

	particlePkg "github.com/gonewx/roadquest/internal/particle"
	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/game"
)

// TrailSystem 玩家身后的尾气（道路）和钻头碎屑（时间线）
// 生成速率与当前速度成正比，静止时不生成。
type TrailSystem struct {
	gameState *game.GameState
	effects   *particlePkg.Library
	particles *ParticlePool
}

// NewTrailSystem 创建尾迹系统
func NewTrailSystem(gs *game.GameState, effects *particlePkg.Library) *TrailSystem {
	capacity := 0
	for _, name := range []string{particlePkg.EffectTrailPuff, particlePkg.EffectDrillGrit} {
		if e := effects.Get(name); e != nil && e.MaxActive > capacity {
			capacity = e.MaxActive
		}
	}
	if capacity == 0 {
		capacity = 120
	}
	return &TrailSystem{
		gameState: gs,
		effects:   effects,
		particles: NewParticlePool("trail", capacity),
	}
}

// Particles 尾迹粒子池（世界坐标）
func (ts *TrailSystem) Particles() *ParticlePool { return ts.particles }

// Update 按速度生成尾迹粒子
func (ts *TrailSystem) Update(dt float64) {
	gs := ts.gameState
	if gs.Transition.Active() {
		return
	}
	p := &gs.Player
	if p.MaxSpeed <= 0 {
		return
	}

	var speed, x, y float64
	var effectName string
	switch gs.Mode {
	case game.ModeRoad:
		speed = p.VX
		effectName = particlePkg.EffectTrailPuff
		// 排气管在车尾，车尾朝向与行驶方向相反
		x = p.X - math.Copysign(p.HalfW, speed)
		y = p.Y + p.HalfH*0.5
	case game.ModeTimeline:
		speed = p.VY
		effectName = particlePkg.EffectDrillGrit
		x = p.X
		y = p.Y + math.Copysign(p.HalfH, speed)
	}

	ratio := math.Min(1, math.Abs(speed)/p.MaxSpeed)
	n := spawnCount(config.TrailRate*ratio, dt, gs.Rng)
	if n == 0 {
		return
	}
	e := ts.effects.MustGet(effectName)
	for i := 0; i < n; i++ {
		ts.particles.SpawnEffect(e, x, y, gs.Rng)
	}
}
