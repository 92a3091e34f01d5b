// Package simulation 把各个系统按固定顺序串成一帧
//
// 每帧顺序：
//  1. 时钟 → dt
//  2. 模式状态机（决定活动轴、是否接受输入、推进过场）
//  3. 玩家运动学
//  4. 镜头
//  5. 闪电、天气、尾迹、光点、彩纸、刹车痕（生成）
//  6. 所有粒子池更新/回收，实体生命周期
//  7. 邻近路标
//  8. 生成快照
//
// 模拟是单线程的，Step 内部不启动 goroutine。
package simulation

import (
	"fmt"
	"log"
	"math/rand"

	particlePkg "github.com/gonewx/roadquest/internal/particle"
	"github.com/gonewx/roadquest/pkg/components"
	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/ecs"
	"github.com/gonewx/roadquest/pkg/entities"
	"github.com/gonewx/roadquest/pkg/game"
	"github.com/gonewx/roadquest/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// Options 创建模拟的参数，零值字段使用默认值
type Options struct {
	World    *config.WorldConfig
	Effects  *particlePkg.Library
	Rng      *rand.Rand
	Listener Listener
	Overlay  Overlay
	// Progress 持久化标记；nil 时使用不落盘的内存存储
	Progress *game.ProgressStore
}

// Simulation 模拟上下文
type Simulation struct {
	gameState *game.GameState
	listener  Listener
	overlay   Overlay
	progress  *game.ProgressStore

	mode       *systems.ModeSystem
	kinematics *systems.KinematicsSystem
	camera     *systems.CameraSystem
	lightning  *systems.LightningSystem
	weather    *systems.WeatherSystem
	trail      *systems.TrailSystem
	confetti   *systems.ConfettiSystem
	ambient    *systems.AmbientSystem
	skids      *systems.SkidMarkSystem
	lifetime   *systems.LifetimeSystem
	proximity  *systems.ProximitySystem
	render     *systems.RenderSystem

	pools    []*systems.ParticlePool
	snapshot Snapshot
}

// New 创建模拟
func New(opts Options) (*Simulation, error) {
	world := opts.World
	if world == nil {
		world = config.DefaultWorldConfig()
	}
	effects := opts.Effects
	if effects == nil {
		effects = particlePkg.DefaultLibrary()
	}
	listener := opts.Listener
	if listener == nil {
		listener = NopListener{}
	}
	progress := opts.Progress
	if progress == nil {
		progress = game.NewProgressStore(nil)
	}

	gs := game.NewGameState(world, opts.Rng)
	if _, err := entities.CreateWaypoints(gs.EntityManager, world); err != nil {
		return nil, fmt.Errorf("failed to create waypoints: %w", err)
	}
	gs.GateOpen = progress.IsRegistered()
	gs.IntroSeen = progress.IntroSeen()

	s := &Simulation{
		gameState:  gs,
		listener:   listener,
		overlay:    opts.Overlay,
		progress:   progress,
		mode:       systems.NewModeSystem(gs, effects),
		kinematics: systems.NewKinematicsSystem(gs),
		camera:     systems.NewCameraSystem(gs),
		lightning:  systems.NewLightningSystem(gs, effects),
		weather:    systems.NewWeatherSystem(gs),
		trail:      systems.NewTrailSystem(gs, effects),
		confetti:   systems.NewConfettiSystem(gs, effects),
		ambient:    systems.NewAmbientSystem(gs, effects),
		skids:      systems.NewSkidMarkSystem(gs.EntityManager),
		lifetime:   systems.NewLifetimeSystem(gs.EntityManager),
		proximity:  systems.NewProximitySystem(gs, gs.EntityManager),
	}
	s.pools = []*systems.ParticlePool{
		s.mode.Particles(),
		s.lightning.Sparks(),
		s.lightning.Rings(),
		s.lightning.Leaks(),
		s.weather.Rain(),
		s.trail.Particles(),
		s.confetti.Particles(),
		s.ambient.Particles(),
	}
	s.render = systems.NewRenderSystem(gs, systems.RenderSources{
		Camera:    s.camera,
		Mode:      s.mode,
		Lightning: s.lightning,
		Weather:   s.weather,
		Trail:     s.trail,
		Confetti:  s.confetti,
		Ambient:   s.ambient,
		Proximity: s.proximity,
	})

	s.camera.Update(0)
	s.snapshot = s.buildSnapshot()
	log.Printf("[Simulation] 初始化完成: %d 个路标, 已报名=%v", len(world.Waypoints), gs.GateOpen)
	return s, nil
}

// State 模拟状态（只读使用）
func (s *Simulation) State() *game.GameState {
	return s.gameState
}

// Snapshot 最近一帧的快照
func (s *Simulation) Snapshot() Snapshot {
	return s.snapshot
}

// Step 推进一帧
// nowAbs 是绝对时间（秒），dt 由时钟计算并钳制
func (s *Simulation) Step(nowAbs float64, in Input) Snapshot {
	gs := s.gameState
	dt := gs.Clock.Tick(nowAbs)

	axis := in.Axis
	if gs.Paused() {
		axis = 0
	}

	s.guard("mode", func() {
		if in.Interact && !gs.Paused() {
			s.interact()
		}
		if s.mode.Update(dt, axis) {
			s.listener.OnModeChanged(gs.Mode)
		}
	})

	s.guard("kinematics", func() {
		if gs.Transition.Active() {
			return
		}
		if ev, ok := s.kinematics.Integrate(axis, dt); ok && gs.Mode == game.ModeRoad {
			s.skids.Add(ev)
		}
	})

	s.guard("camera", func() { s.camera.Update(dt) })
	s.guard("lightning", func() { s.lightning.Update(dt) })
	s.guard("weather", func() {
		if s.weather.Update(dt) {
			s.listener.OnWeatherChanged(s.weather.Type())
		}
	})
	s.guard("trail", func() { s.trail.Update(dt) })
	s.guard("ambient", func() { s.ambient.Update(dt) })
	s.guard("confetti", func() { s.confetti.Update(dt) })

	for _, pool := range s.pools {
		s.guard(pool.Name(), func() { pool.Update(dt) })
	}
	s.guard("lifetime", func() {
		s.lifetime.Update(dt)
		gs.EntityManager.RemoveMarkedEntities()
	})

	s.guard("proximity", func() { s.resolveProximity() })

	s.snapshot = s.buildSnapshot()
	return s.snapshot
}

// interact 处理交互键：入口路标开始挖掘，其它路标打开面板
// 使用上一帧的邻近结果
func (s *Simulation) interact() {
	wp, ok := s.proximity.NearWaypoint()
	if !ok {
		return
	}
	gs := s.gameState
	if wp.Category == config.CategoryEntry {
		if gs.Mode == game.ModeRoad {
			s.mode.StartDig()
		}
		return
	}
	if s.overlay == nil {
		return
	}
	view := newWaypointView(wp)
	gs.OverlayOpen = true
	s.overlay.Open(wp.Category, view)
	log.Printf("[Simulation] 打开面板: %s (%s)", wp.ID, wp.Category)
}

// resolveProximity 更新邻近路标并发出通知
func (s *Simulation) resolveProximity() {
	ev := s.proximity.Update()
	if ev.Changed {
		s.listener.OnNearChanged(s.viewOf(ev.Previous), s.viewOf(ev.Near))
	}
	if ev.Discovered {
		if v := s.viewOf(ev.Near); v != nil {
			s.listener.OnDiscovered(*v)
		}
	}
}

func (s *Simulation) viewOf(id ecs.EntityID) *WaypointView {
	if id == 0 {
		return nil
	}
	wp, ok := ecs.GetComponent[*components.WaypointComponent](s.gameState.EntityManager, id)
	if !ok {
		return nil
	}
	v := newWaypointView(wp)
	return &v
}

// guard 运行一个子系统，panic 时记录日志并跳过该子系统本帧的剩余工作
func (s *Simulation) guard(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Simulation] 子系统 %s 本帧出错，已跳过: %v", name, r)
		}
	}()
	fn()
}

// buildSnapshot 生成快照
func (s *Simulation) buildSnapshot() Snapshot {
	gs := s.gameState
	lv := s.lightning.View()
	lv.Path = append([]systems.Point(nil), lv.Path...)

	snap := Snapshot{
		Time:      gs.Now(),
		Mode:      gs.Mode,
		Player:    gs.Player,
		Camera:    gs.Camera,
		Shake:     gs.Transition.Shake,
		Near:      s.viewOf(s.proximity.Near()),
		Phase:     gs.Transition.Phase,
		Progress:  gs.Transition.Progress,
		Weather:   s.weather.View(),
		Lightning: lv,
		GateOpen:  gs.GateOpen,
		IntroSeen: gs.IntroSeen,
		Paused:    gs.Paused(),
		Particles: make(map[string]int, len(s.pools)),
		SkidMarks: s.skids.Count(),
	}
	for _, pool := range s.pools {
		snap.Particles[pool.Name()] = pool.Len()
	}
	return snap
}

// Draw 绘制当前状态
func (s *Simulation) Draw(screen *ebiten.Image) {
	s.render.Draw(screen)
}

// SetOverlayOpen 面板打开期间暂停输入
func (s *Simulation) SetOverlayOpen(open bool) {
	s.gameState.OverlayOpen = open
}

// SetSignAnchor 设置闪电落点（路牌）
// 在锚点设置之前闪电不会落下
func (s *Simulation) SetSignAnchor(x, y float64) {
	s.gameState.Sign = game.SignAnchor{X: x, Y: y, Valid: true}
}

// SetViewport 视口尺寸变化
func (s *Simulation) SetViewport(w, h float64) {
	s.gameState.SetViewport(w, h)
}

// Celebrate 报名成功：保存标记、打开大门、喷彩纸
func (s *Simulation) Celebrate() error {
	s.confetti.Burst(0)
	s.gameState.GateOpen = true
	if err := s.progress.MarkRegistered(); err != nil {
		return fmt.Errorf("failed to persist registration: %w", err)
	}
	return nil
}

// DismissIntro 关闭开场说明并记住
func (s *Simulation) DismissIntro() error {
	s.gameState.IntroSeen = true
	if err := s.progress.MarkIntroSeen(); err != nil {
		return fmt.Errorf("failed to persist intro flag: %w", err)
	}
	return nil
}

// Progress 持久化存储
func (s *Simulation) Progress() *game.ProgressStore {
	return s.progress
}

// Waypoints 按配置顺序返回所有路标
func (s *Simulation) Waypoints() []WaypointView {
	em := s.gameState.EntityManager
	ids := ecs.GetEntitiesWith1[*components.WaypointComponent](em)
	views := make([]WaypointView, 0, len(ids))
	for _, id := range ids {
		if v := s.viewOf(id); v != nil {
			views = append(views, *v)
		}
	}
	return views
}
