package systems

import (
	"log"
	"math"

	particlePkg "github.com/gonewx/roadquest/internal/particle"
	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/game"
	"github.com/gonewx/roadquest/pkg/utils"
	"github.com/lucasb-eyer/go-colorful"
)

// LightningState 闪电状态
type LightningState int

const (
	LightningIdle LightningState = iota
	LightningActive
	LightningAfterglow
)

func (s LightningState) String() string {
	switch s {
	case LightningIdle:
		return "idle"
	case LightningActive:
		return "active"
	case LightningAfterglow:
		return "afterglow"
	}
	return "unknown"
}

// Point 二维点
type Point struct {
	X, Y float64
}

// LightningView 渲染层需要的闪电只读视图
type LightningView struct {
	State      LightningState
	Brightness float64 // 主闪亮度 [0, 1]
	Afterglow  float64 // 余辉 [0, 1]
	Focus      float64 // 暗角聚焦 [0, 1]
	NextStrike float64
	Path       []Point // 世界坐标
	Color      colorful.Color
}

// LightningSystem 周期性落在路牌上的闪电
//
// idle → active：到达 NextStrike 且路牌锚点已设置（否则本帧跳过，下帧再查）。
// active → afterglow：主闪结束，安排下一次落雷。
// afterglow → idle：余辉衰减到 0。
// 任意时刻最多只有一次闪电在进行。
type LightningSystem struct {
	gameState *game.GameState
	effects   *particlePkg.Library

	state      LightningState
	elapsed    float64
	duration   float64
	afterglow  float64 // 剩余余辉时间
	focus      float64
	brightness float64
	nextStrike float64
	path       []Point
	source     Point
	target     Point
	disabled   bool

	sparks *ParticlePool
	rings  *ParticlePool
	leaks  *ParticlePool
}

// 闪电核心颜色（偏冷白）与余辉颜色（偏紫），主闪期间按亮度混合
var (
	lightningCore = colorful.Color{R: 0.94, G: 0.97, B: 1}
	lightningGlow = colorful.Color{R: 0.55, G: 0.48, B: 0.95}
)

// NewLightningSystem 创建闪电系统
func NewLightningSystem(gs *game.GameState, effects *particlePkg.Library) *LightningSystem {
	ls := &LightningSystem{
		gameState:  gs,
		effects:    effects,
		duration:   config.LightningDuration,
		nextStrike: gs.World.Lightning.FirstStrike,
		disabled:   gs.World.Lightning.Disabled,
		path:       make([]Point, 0, config.LightningSegments+2),
		sparks:     NewParticlePool("lightning_sparks", 160),
		rings:      NewParticlePool("lightning_rings", 8),
		leaks:      NewParticlePool("lightning_leaks", 16),
	}
	ls.rings.SetHook(updateRing)
	ls.leaks.SetHook(updateLeak)
	return ls
}

// Sparks 火花粒子池（世界坐标）
func (ls *LightningSystem) Sparks() *ParticlePool { return ls.sparks }

// Rings 冲击环粒子池（世界坐标）
func (ls *LightningSystem) Rings() *ParticlePool { return ls.rings }

// Leaks 漏电粒子池（世界坐标）
func (ls *LightningSystem) Leaks() *ParticlePool { return ls.leaks }

// State 当前状态
func (ls *LightningSystem) State() LightningState {
	return ls.state
}

// NextStrike 下一次落雷时间
func (ls *LightningSystem) NextStrike() float64 {
	return ls.nextStrike
}

// View 返回只读视图
func (ls *LightningSystem) View() LightningView {
	return LightningView{
		State:      ls.state,
		Brightness: ls.brightness,
		Afterglow:  ls.afterglowRatio(),
		Focus:      ls.focus,
		NextStrike: ls.nextStrike,
		Path:       ls.path,
		Color:      lightningGlow.BlendLab(lightningCore, ls.brightness).Clamped(),
	}
}

// Update 推进闪电状态并生成粒子
// 粒子池本身的更新由调用方统一进行
func (ls *LightningSystem) Update(dt float64) {
	now := ls.gameState.Now()

	// 聚焦从主闪结束开始衰减，比余辉慢
	if ls.state != LightningActive && ls.focus > 0 {
		ls.focus = math.Max(0, ls.focus-dt/(config.LightningAfterglow*config.LightningFocusSlowdown))
	}

	switch ls.state {
	case LightningIdle:
		if ls.disabled || now < ls.nextStrike {
			return
		}
		if !ls.gameState.Sign.Valid {
			return
		}
		ls.strike()

	case LightningActive:
		ls.elapsed += dt
		t := utils.Clamp(ls.elapsed/ls.duration, 0, 1)
		if t < config.LightningPeak {
			ls.brightness = t / config.LightningPeak
		} else {
			ls.brightness = (1 - t) / (1 - config.LightningPeak)
		}
		if ls.gameState.Rng.Float64() < config.LightningFlickerChance {
			ls.buildPath()
		}
		if ls.elapsed >= ls.duration {
			ls.state = LightningAfterglow
			ls.brightness = 0
			ls.afterglow = config.LightningAfterglow
			ls.nextStrike = now + RandomRange(ls.gameState, config.LightningDelayMin, config.LightningDelayMax)
			log.Printf("[LightningSystem] 主闪结束，下一次落雷 %.1fs", ls.nextStrike)
		}

	case LightningAfterglow:
		ls.afterglow = math.Max(0, ls.afterglow-dt)
		if ls.afterglow <= 0 {
			ls.state = LightningIdle
			ls.path = ls.path[:0]
		}
	}
}

// strike 开始一次落雷
func (ls *LightningSystem) strike() {
	gs := ls.gameState
	ls.state = LightningActive
	ls.elapsed = 0
	ls.brightness = 0
	ls.focus = 1

	ls.target = Point{X: gs.Sign.X, Y: gs.Sign.Y}
	ls.source = Point{
		X: ls.target.X + RandomRange(gs, -config.LightningSourceSpread, config.LightningSourceSpread)*gs.ViewportW,
		Y: gs.Camera.Y - RandomRange(gs, config.LightningSourceBandMin, config.LightningSourceBandMax),
	}
	ls.buildPath()

	spark := ls.effects.MustGet(particlePkg.EffectLightningSpark)
	for i := 0; i < config.LightningSparkCount; i++ {
		ls.sparks.SpawnEffect(spark, ls.target.X, ls.target.Y, gs.Rng)
	}

	for i := 0; i < config.LightningRingCount; i++ {
		ls.rings.Spawn(Particle{
			X:         ls.target.X,
			Y:         ls.target.Y,
			Life:      config.LightningRingLife,
			Alpha:     1,
			RadiusVel: RandomRange(gs, config.LightningRingSpeedMin, config.LightningRingSpeedMax),
			Color:     lightningCore,
		})
	}

	leaks := config.LightningLeakMin + gs.Rng.Intn(config.LightningLeakMax-config.LightningLeakMin+1)
	for i := 0; i < leaks; i++ {
		life := RandomRange(gs, config.LightningLeakLifeMin, config.LightningLeakLifeMax)
		ls.leaks.Spawn(Particle{
			X:            ls.target.X,
			Y:            ls.target.Y,
			Life:         life,
			Alpha:        1,
			Angle:        gs.Rng.Float64() * 2 * math.Pi,
			TargetLength: RandomRange(gs, config.LightningLeakLengthMin, config.LightningLeakLengthMax),
			Color:        lightningGlow,
		})
	}

	gs.Camera.Kick = math.Max(gs.Camera.Kick, config.LightningShake)
	log.Printf("[LightningSystem] 落雷 (%.0f, %.0f)", ls.target.X, ls.target.Y)
}

// buildPath 从起点到路牌生成锯齿路径
// 共 LightningSegments 个内部折点，横向抖动随接近目标线性减小
func (ls *LightningSystem) buildPath() {
	gs := ls.gameState
	dx := ls.target.X - ls.source.X
	dy := ls.target.Y - ls.source.Y
	length := math.Hypot(dx, dy)
	nx, ny := 0.0, 0.0
	if length > 0 {
		nx, ny = -dy/length, dx/length
	}

	n := config.LightningSegments + 1
	ls.path = ls.path[:0]
	ls.path = append(ls.path, ls.source)
	for i := 1; i < n; i++ {
		t := float64(i) / float64(n)
		offset := (gs.Rng.Float64()*2 - 1) * config.LightningMaxJitter * (1 - t)
		ls.path = append(ls.path, Point{
			X: ls.source.X + dx*t + nx*offset,
			Y: ls.source.Y + dy*t + ny*offset,
		})
	}
	ls.path = append(ls.path, ls.target)
}

// afterglowRatio 余辉比例
func (ls *LightningSystem) afterglowRatio() float64 {
	if ls.state != LightningAfterglow {
		return 0
	}
	return ls.afterglow / config.LightningAfterglow
}

// updateRing 冲击环扩张并淡出
func updateRing(p *Particle, dt float64) {
	p.Radius += p.RadiusVel * dt
	p.Alpha = utils.Clamp(p.Life/p.MaxLife, 0, 1)
}

// updateLeak 漏电先伸展到目标长度，后半段收缩到 0
func updateLeak(p *Particle, dt float64) {
	half := p.MaxLife / 2
	if p.Life > half {
		p.Length = utils.Follow(p.Length, p.TargetLength, dt, config.LightningLeakEaseRate)
		return
	}
	if half <= 0 {
		p.Length = 0
		return
	}
	p.Length = math.Min(p.Length, p.TargetLength*math.Max(0, p.Life)/half)
	p.Alpha = utils.Clamp(p.Life/half, 0, 1)
}

// RandomRange 返回 [lo, hi) 内的随机数
func RandomRange(gs *game.GameState, lo, hi float64) float64 {
	return lo + gs.Rng.Float64()*(hi-lo)
}
