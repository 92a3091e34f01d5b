package game

import (
	"math/rand"
	"time"

	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/ecs"
)

// Mode 当前所在的世界
type Mode int

const (
	ModeRoad     Mode = iota // 水平道路
	ModeTimeline             // 垂直时间线（地下）
)

func (m Mode) String() string {
	switch m {
	case ModeRoad:
		return "road"
	case ModeTimeline:
		return "timeline"
	}
	return "unknown"
}

// Phase 挖掘过场阶段
type Phase int

const (
	PhaseNone Phase = iota
	PhasePreparing
	PhaseDigging
	PhaseDescending
)

func (p Phase) String() string {
	switch p {
	case PhaseNone:
		return "none"
	case PhasePreparing:
		return "preparing"
	case PhaseDigging:
		return "digging"
	case PhaseDescending:
		return "descending"
	}
	return "unknown"
}

// Player 玩家（小车/钻头）
// 同一时刻只有一个轴是活动的：道路模式下是 X，时间线模式下是 Y
type Player struct {
	X, Y   float64 // 世界坐标（道路 X / 时间线 Y）
	VX, VY float64
	AX, AY float64

	Accel    float64
	Friction float64
	MaxSpeed float64

	HalfW, HalfH float64
}

// ApplyKinematics 切换运动参数（进入某个模式时调用）
func (p *Player) ApplyKinematics(k config.KinematicsConfig) {
	p.Accel = k.Accel
	p.Friction = k.Friction
	p.MaxSpeed = k.MaxSpeed
}

// Stop 清零速度和加速度
func (p *Player) Stop() {
	p.VX, p.VY = 0, 0
	p.AX, p.AY = 0, 0
}

// Camera 摄像机
// X/Y 是基础偏移，始终满足边界约束；ShakeX/ShakeY 是叠加在上面的抖动
type Camera struct {
	X, Y           float64
	ShakeX, ShakeY float64
	Kick           float64 // 闪电造成的额外震屏幅度
}

// Transition 挖掘过场状态
type Transition struct {
	Phase     Phase
	Progress  float64 // 当前阶段进度 [0, 1]
	Elapsed   float64 // 当前阶段已用时间（秒）
	StartTime float64 // 当前阶段开始的模拟时间
	Shake     float64 // 震屏幅度（像素），由 CameraSystem 衰减
	RoadX     float64 // 进入过场时的道路位置，返回道路时恢复
	RoadY     float64
}

// Active 过场是否正在进行
func (t *Transition) Active() bool {
	return t.Phase != PhaseNone
}

// SignAnchor 路牌（闪电落点）的世界坐标
// 由渲染层在路牌布局完成后设置；未设置前闪电不会落下
type SignAnchor struct {
	X, Y  float64
	Valid bool
}

// GameState 一次模拟运行的全部可变状态
// 由 Simulation 创建并显式传给每个系统
type GameState struct {
	World         *config.WorldConfig
	Clock         *Clock
	Rng           *rand.Rand
	EntityManager *ecs.EntityManager

	Player     Player
	Camera     Camera
	Mode       Mode
	Transition Transition
	Sign       SignAnchor

	ViewportW float64
	ViewportH float64

	OverlayOpen bool // 外部信息面板是否打开
	GateOpen    bool // 已报名，终点闸门打开
	IntroSeen   bool
}

// NewGameState 根据世界配置创建初始状态
// rng 为 nil 时使用当前时间作为种子
func NewGameState(world *config.WorldConfig, rng *rand.Rand) *GameState {
	if world == nil {
		world = config.DefaultWorldConfig()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	gs := &GameState{
		World:         world,
		Clock:         NewClock(),
		Rng:           rng,
		EntityManager: ecs.NewEntityManager(),
		Mode:          ModeRoad,
		ViewportW:     world.Viewport.Width,
		ViewportH:     world.Viewport.Height,
	}
	gs.Player.HalfW = world.Player.HalfW
	gs.Player.HalfH = world.Player.HalfH
	gs.Player.X = world.Road.StartX
	gs.Player.Y = world.Road.LaneY
	gs.Player.ApplyKinematics(world.Road.Kinematics)

	lo, _ := world.RoadBounds()
	if gs.Player.X < lo {
		gs.Player.X = lo
	}
	return gs
}

// Now 当前模拟时间
func (gs *GameState) Now() float64 {
	return gs.Clock.Now()
}

// Paused 输入是否被暂停
// 面板打开或过场进行中都会暂停输入
func (gs *GameState) Paused() bool {
	return gs.OverlayOpen || gs.Transition.Active()
}

// SetViewport 更新视口尺寸，非法值被忽略
func (gs *GameState) SetViewport(w, h float64) {
	if w > 0 {
		gs.ViewportW = w
	}
	if h > 0 {
		gs.ViewportH = h
	}
}

// IsSmallScreen 视口宽度是否属于小屏
func (gs *GameState) IsSmallScreen() bool {
	return gs.ViewportW < config.SmallScreenWidth
}

// ActiveCoord 返回玩家在活动轴上的坐标
func (gs *GameState) ActiveCoord() float64 {
	if gs.Mode == ModeTimeline {
		return gs.Player.Y
	}
	return gs.Player.X
}

// ActiveSpace 返回当前活动空间在路标配置中的名称
func (gs *GameState) ActiveSpace() string {
	if gs.Mode == ModeTimeline {
		return config.SpaceTimeline
	}
	return config.SpaceRoad
}

// EnterTimeline 时间线入口设置：玩家位于顶部，镜头归零，速度清零
func (gs *GameState) EnterTimeline() {
	gs.Mode = ModeTimeline
	gs.Player.Stop()
	gs.Player.X = gs.World.Timeline.ShaftX
	gs.Player.Y = config.TimelineTopBound
	gs.Player.ApplyKinematics(gs.World.Timeline.Kinematics)
	gs.Camera.X = 0
	gs.Camera.Y = 0
}

// EnterRoad 返回道路：恢复进入过场前记录的位置，镜头 Y 归零
func (gs *GameState) EnterRoad() {
	gs.Mode = ModeRoad
	gs.Player.Stop()
	x := gs.Transition.RoadX
	if x == 0 {
		x = gs.World.Road.StartX
	}
	y := gs.Transition.RoadY
	if y == 0 {
		y = gs.World.Road.LaneY
	}
	gs.Player.X = x
	gs.Player.Y = y
	gs.Player.ApplyKinematics(gs.World.Road.Kinematics)
	gs.Camera.Y = 0
}
