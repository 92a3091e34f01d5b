package systems

import (
	"log"
	"math"

	particlePkg "github.com/gonewx/roadquest/internal/particle"
	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/game"
	"github.com/gonewx/roadquest/pkg/utils"
)

// ModeSystem 模式状态机与挖掘过场
//
// road → preparing → digging → descending → timeline → road
//
// 阶段切换只比较模拟时钟，不使用定时器；每帧最多推进一个阶段。
// 过场期间 GameState.Paused() 为 true，输入被屏蔽，玩家位置由本系统驱动。
type ModeSystem struct {
	gameState *game.GameState
	effects   *particlePkg.Library
	particles *ParticlePool
}

// NewModeSystem 创建模式系统
func NewModeSystem(gs *game.GameState, effects *particlePkg.Library) *ModeSystem {
	return &ModeSystem{
		gameState: gs,
		effects:   effects,
		particles: NewParticlePool("transition", 400),
	}
}

// Particles 过场装饰粒子（世界坐标）
func (ms *ModeSystem) Particles() *ParticlePool {
	return ms.particles
}

// StartDig 在道路模式下开始挖掘过场
// 过场已在进行或不在道路模式时不做任何事，返回 false
func (ms *ModeSystem) StartDig() bool {
	gs := ms.gameState
	if gs.Mode != game.ModeRoad || gs.Transition.Active() {
		return false
	}

	gs.Player.Stop()
	gs.Transition = game.Transition{
		Phase:     game.PhasePreparing,
		StartTime: gs.Now(),
		Shake:     config.PreparingShake,
		RoadX:     gs.Player.X,
		RoadY:     gs.Player.Y,
	}
	log.Printf("[ModeSystem] 开始挖掘过场 (x=%.0f)", gs.Player.X)
	return true
}

// Update 推进状态机
// axis 是本帧的原始输入方向，用于判断时间线顶部的返回条件。
// 模式发生变化时返回 true。
func (ms *ModeSystem) Update(dt, axis float64) bool {
	gs := ms.gameState

	if gs.Transition.Active() {
		return ms.updateTransition(dt)
	}

	if gs.Mode == game.ModeTimeline && !gs.OverlayOpen {
		atTop := gs.Player.Y <= config.TimelineTopBound
		movingUp := axis < 0 || gs.Player.VY < 0
		if atTop && movingUp {
			gs.EnterRoad()
			gs.Transition = game.Transition{}
			log.Printf("[ModeSystem] 从时间线返回道路 (x=%.0f)", gs.Player.X)
			return true
		}
	}
	return false
}

// updateTransition 推进过场阶段
func (ms *ModeSystem) updateTransition(dt float64) bool {
	gs := ms.gameState
	tr := &gs.Transition
	now := gs.Now()

	tr.Elapsed = now - tr.StartTime
	duration := phaseDuration(tr.Phase)
	tr.Progress = utils.Clamp(tr.Elapsed/duration, 0, 1)

	switch tr.Phase {
	case game.PhasePreparing:
		tr.Shake = math.Max(tr.Shake, config.PreparingShakeFloor)
		ms.emit(particlePkg.EffectDigDust, config.PreparingDustRate, dt)
		if tr.Elapsed >= config.PreparingDuration {
			ms.enterPhase(game.PhaseDigging, tr.StartTime+config.PreparingDuration)
			tr.Shake = config.DiggingShake
		}

	case game.PhaseDigging:
		tr.Shake = math.Max(tr.Shake, config.DiggingShakeFloor)
		ms.emit(particlePkg.EffectDigSpark, config.DiggingSparkRate, dt)
		ms.emit(particlePkg.EffectDigDust, config.DiggingDustRate, dt)
		if tr.Elapsed >= config.DiggingDuration {
			tr.RoadX = gs.Player.X
			tr.RoadY = gs.Player.Y
			ms.enterPhase(game.PhaseDescending, tr.StartTime+config.DiggingDuration)
			tr.Shake = config.DescendingShake
		}

	case game.PhaseDescending:
		endY := gs.Camera.Y + gs.ViewportH + config.DescentOffscreenMargin
		gs.Player.Y = utils.Lerp(tr.RoadY, endY, utils.EaseInOutCubic(tr.Progress))
		ms.emit(particlePkg.EffectDigFlame, config.DescendingFlameRate, dt)
		if tr.Elapsed >= config.DescendingDuration {
			ms.completeDescent()
			return true
		}
	}
	return false
}

// enterPhase 切换到下一阶段
// 新阶段从上一阶段的计划结束时间开始计时，帧间隔不会让各阶段的边界累积漂移
func (ms *ModeSystem) enterPhase(phase game.Phase, start float64) {
	tr := &ms.gameState.Transition
	log.Printf("[ModeSystem] 过场阶段: %s → %s", tr.Phase, phase)
	tr.Phase = phase
	tr.StartTime = start
	tr.Elapsed = 0
	tr.Progress = 0
}

// completeDescent 下降结束：清理过场粒子，进入时间线
func (ms *ModeSystem) completeDescent() {
	gs := ms.gameState
	ms.particles.Clear()

	roadX, roadY := gs.Transition.RoadX, gs.Transition.RoadY
	gs.Transition = game.Transition{RoadX: roadX, RoadY: roadY}
	gs.EnterTimeline()
	log.Printf("[ModeSystem] 进入时间线")
}

// emit 在钻头位置按速率生成过场粒子
func (ms *ModeSystem) emit(effectName string, rate, dt float64) {
	gs := ms.gameState
	n := spawnCount(rate, dt, gs.Rng)
	if n == 0 {
		return
	}
	e := ms.effects.MustGet(effectName)
	x := gs.Player.X
	y := gs.Player.Y + gs.Player.HalfH
	for i := 0; i < n; i++ {
		jitter := (gs.Rng.Float64()*2 - 1) * gs.Player.HalfW
		ms.particles.SpawnEffect(e, x+jitter, y, gs.Rng)
	}
}

// phaseDuration 阶段时长
func phaseDuration(p game.Phase) float64 {
	switch p {
	case game.PhasePreparing:
		return config.PreparingDuration
	case game.PhaseDigging:
		return config.DiggingDuration
	case game.PhaseDescending:
		return config.DescendingDuration
	}
	return 1
}
