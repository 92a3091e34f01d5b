package systems

import (
	"math"
	"math/rand"

	particlePkg "github.com/gonewx/roadquest/internal/particle"
	"github.com/lucasb-eyer/go-colorful"
)

// ParticleID 粒子编号，在同一个粒子池内单调递增
type ParticleID uint64

// Particle 单个粒子
//
// 所有粒子池共用同一个固定结构。Length/TargetLength（闪电漏电）、
// Radius/RadiusVel（冲击环）、Angle 只被需要它们的池使用，其它池保持零值。
type Particle struct {
	ID ParticleID

	X, Y   float64
	VX, VY float64
	AX, AY float64 // 恒定加速度（重力、风）
	Drag   float64 // 线性阻尼（1/秒）

	Life    float64 // 剩余生命（秒）
	MaxLife float64

	Size     float64
	Alpha    float64
	Rotation float64 // 度
	Spin     float64 // 度/秒
	Color    colorful.Color

	Length       float64
	TargetLength float64
	Radius       float64
	RadiusVel    float64
	Angle        float64 // 弧度

	// OutTime 连续位于边界之外的时间
	OutTime float64

	// Effect 生成该粒子的效果，用于按生命进度计算透明度曲线；可为 nil
	Effect *particlePkg.Effect

	fresh bool
}

// Progress 生命进度 [0, 1]，0 = 刚出生
func (p *Particle) Progress() float64 {
	if p.MaxLife <= 0 {
		return 1
	}
	t := 1 - p.Life/p.MaxLife
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// CurrentAlpha 当前透明度
// 效果配置了透明度曲线时按生命进度取值，否则使用 Alpha 字段
func (p *Particle) CurrentAlpha() float64 {
	if p.Effect != nil && p.Effect.Alpha.Animated() {
		return p.Effect.Alpha.At(p.Progress())
	}
	return p.Alpha
}

// Bounds 粒子池的有效区域
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Contains 判断点是否在区域内（含边界）
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// ParticleHook 每个粒子每帧的额外更新（冲击环扩张、漏电伸缩等）
// 在积分和生命递减之后、回收判断之前调用
type ParticleHook func(p *Particle, dt float64)

// ParticlePool 一组同类粒子
//
// 更新顺序：速度积分 → 位置积分 → 生命递减 → 钩子 → 回收。
// 自上次 Update 以来新生成的粒子在本次 Update 中会被积分，但不会被回收，
// 保证每个粒子至少存在一帧。
type ParticlePool struct {
	name      string
	particles []Particle
	nextID    ParticleID
	capacity  int

	lifeScale float64
	hook      ParticleHook

	bounds    Bounds
	hasBounds bool
	grace     float64 // 越界多少秒后回收，0 表示立即
}

// NewParticlePool 创建粒子池
// capacity <= 0 表示不限数量
func NewParticlePool(name string, capacity int) *ParticlePool {
	initial := capacity
	if initial <= 0 || initial > 256 {
		initial = 64
	}
	return &ParticlePool{
		name:      name,
		particles: make([]Particle, 0, initial),
		capacity:  capacity,
		lifeScale: 1,
	}
}

// Name 粒子池名称
func (pp *ParticlePool) Name() string {
	return pp.name
}

// Capacity 容量上限，0 表示不限
func (pp *ParticlePool) Capacity() int {
	return pp.capacity
}

// SetBounds 设置有效区域和越界宽限时间
func (pp *ParticlePool) SetBounds(b Bounds, grace float64) {
	pp.bounds = b
	pp.hasBounds = true
	if grace < 0 {
		grace = 0
	}
	pp.grace = grace
}

// ClearBounds 取消区域限制
func (pp *ParticlePool) ClearBounds() {
	pp.hasBounds = false
}

// SetHook 设置每粒子钩子
func (pp *ParticlePool) SetHook(h ParticleHook) {
	pp.hook = h
}

// SetLifeScale 设置生命消耗倍率，默认 1
func (pp *ParticlePool) SetLifeScale(s float64) {
	if s <= 0 {
		s = 1
	}
	pp.lifeScale = s
}

// Spawn 加入一个粒子并返回其编号
// MaxLife 未设置时取 Life。池已满时丢弃最老的粒子。
func (pp *ParticlePool) Spawn(p Particle) ParticleID {
	pp.nextID++
	p.ID = pp.nextID
	p.fresh = true
	p.OutTime = 0
	if p.MaxLife <= 0 {
		p.MaxLife = p.Life
	}

	if pp.capacity > 0 && len(pp.particles) >= pp.capacity {
		copy(pp.particles, pp.particles[1:])
		pp.particles = pp.particles[:len(pp.particles)-1]
	}
	pp.particles = append(pp.particles, p)
	return p.ID
}

// SpawnEffect 按效果配置在 (x, y) 生成一个粒子
// 角度约定：0° 向右，90° 向下
func (pp *ParticlePool) SpawnEffect(e *particlePkg.Effect, x, y float64, rng *rand.Rand) ParticleID {
	life := e.Life.Sample(rng)
	if life <= 0 {
		life = 1
	}
	speed := e.Speed.Sample(rng)
	angle := e.Angle.Sample(rng) * math.Pi / 180

	return pp.Spawn(Particle{
		X:       x,
		Y:       y,
		VX:      math.Cos(angle) * speed,
		VY:      math.Sin(angle) * speed,
		AX:      e.GravityX,
		AY:      e.GravityY,
		Drag:    e.Drag,
		Life:    life,
		MaxLife: life,
		Size:    e.Size.Sample(rng),
		Alpha:   e.InitialAlpha(rng),
		Spin:    e.Spin.Sample(rng),
		Color:   e.PickColor(rng),
		Effect:  e,
	})
}

// Update 推进所有粒子并回收死亡或越界的粒子
func (pp *ParticlePool) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}

	alive := pp.particles[:0]
	for i := range pp.particles {
		p := pp.particles[i]

		p.VX += (p.AX - p.Drag*p.VX) * dt
		p.VY += (p.AY - p.Drag*p.VY) * dt
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.Rotation += p.Spin * dt
		p.Life -= dt * pp.lifeScale

		if pp.hook != nil {
			pp.hook(&p, dt)
		}

		outside := pp.hasBounds && !pp.bounds.Contains(p.X, p.Y)
		if outside {
			p.OutTime += dt
		} else {
			p.OutTime = 0
		}

		if p.fresh {
			p.fresh = false
			alive = append(alive, p)
			continue
		}

		if p.Life <= 0 {
			continue
		}
		if outside && p.OutTime >= pp.grace {
			continue
		}
		alive = append(alive, p)
	}

	// 释放尾部引用，避免 Effect 指针滞留
	for i := len(alive); i < len(pp.particles); i++ {
		pp.particles[i] = Particle{}
	}
	pp.particles = alive
}

// Clear 立即移除所有粒子
func (pp *ParticlePool) Clear() {
	for i := range pp.particles {
		pp.particles[i] = Particle{}
	}
	pp.particles = pp.particles[:0]
}

// Len 当前存活粒子数
func (pp *ParticlePool) Len() int {
	return len(pp.particles)
}

// Each 遍历所有粒子（按生成顺序）
func (pp *ParticlePool) Each(fn func(p *Particle)) {
	for i := range pp.particles {
		fn(&pp.particles[i])
	}
}

// Get 按编号查找粒子
func (pp *ParticlePool) Get(id ParticleID) (*Particle, bool) {
	for i := range pp.particles {
		if pp.particles[i].ID == id {
			return &pp.particles[i], true
		}
	}
	return nil, false
}

// spawnCount 把"每秒期望数量"换算成本帧生成数量
// 整数部分确定生成，小数部分按概率生成一个
func spawnCount(rate, dt float64, rng *rand.Rand) int {
	expected := rate * dt
	if expected <= 0 {
		return 0
	}
	n := int(expected)
	if rng.Float64() < expected-float64(n) {
		n++
	}
	return n
}
