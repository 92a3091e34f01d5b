package scenes

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	particlePkg "github.com/gonewx/roadquest/internal/particle"
	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/game"
	"github.com/gonewx/roadquest/pkg/simulation"
	"github.com/gonewx/roadquest/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// frameInput 一帧的全部输入
type frameInput struct {
	drive utils.DriveInput
	panel panelInput
}

// GameScene 可交互的道路/时间线场景
//
// 负责把宿主输入翻译成模拟输入，并在模拟画面之上叠加面板、提示和开场说明。
// 面板打开期间模拟暂停，所有按键交给面板处理。
type GameScene struct {
	sceneManager *game.SceneManager
	world        *config.WorldConfig
	sim          *simulation.Simulation
	panel        *Panel
	hud          *HUD

	now       func() float64
	readInput func() frameInput

	signAnchored bool
	lastW, lastH int
}

// NewGameScene 创建道路场景
// world/effects 为 nil 时使用内置默认值；progress 为 nil 时进度不落盘
func NewGameScene(sceneManager *game.SceneManager, world *config.WorldConfig, effects *particlePkg.Library, progress *game.ProgressStore) (*GameScene, error) {
	if world == nil {
		world = config.DefaultWorldConfig()
	}
	if progress == nil {
		progress = game.NewProgressStore(nil)
	}

	panel := NewPanel(progress)
	hud := NewHUD()
	sim, err := simulation.New(simulation.Options{
		World:    world,
		Effects:  effects,
		Rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		Listener: hud,
		Overlay:  panel,
		Progress: progress,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create simulation: %w", err)
	}

	start := time.Now()
	s := &GameScene{
		sceneManager: sceneManager,
		world:        world,
		sim:          sim,
		panel:        panel,
		hud:          hud,
		now:          func() float64 { return time.Since(start).Seconds() },
	}
	s.readInput = s.readFrameInput
	log.Printf("[GameScene] 场景创建完成")
	return s, nil
}

// Simulation 场景持有的模拟
func (s *GameScene) Simulation() *simulation.Simulation {
	return s.sim
}

// Update 读取输入并推进一帧
// deltaTime 不直接使用：模拟按绝对时间自行计算并钳制 dt
func (s *GameScene) Update(deltaTime float64) {
	s.step(s.readInput())
}

func (s *GameScene) readFrameInput() frameInput {
	gs := s.sim.State()
	in := frameInput{drive: utils.ReadDriveInput(gs.ViewportW, gs.ViewportH)}
	if s.panel.IsOpen() {
		in.panel = readPanelInput(s.panel.rect(gs.ViewportW, gs.ViewportH))
	}
	return in
}

// step 处理一帧输入
func (s *GameScene) step(in frameInput) {
	prev := s.sim.Snapshot()
	interact := in.drive.Interact

	if s.panel.IsOpen() {
		switch s.panel.Handle(in.panel) {
		case panelClose:
			s.sim.SetOverlayOpen(false)
		case panelSubmit:
			s.sim.SetOverlayOpen(false)
			if err := s.sim.Celebrate(); err != nil {
				log.Printf("[GameScene] Warning: %v", err)
			}
		}
		// 关闭面板的按键不再触发交互
		interact = false
	} else if in.drive.Toggled && s.sceneManager != nil {
		s.sceneManager.SwitchByName(game.SceneText)
		return
	}

	if !prev.IntroSeen && in.drive.Any {
		if err := s.sim.DismissIntro(); err != nil {
			log.Printf("[GameScene] Warning: %v", err)
		}
		interact = false
	}

	axis := in.drive.Horizontal
	if prev.Mode == game.ModeTimeline {
		axis = in.drive.Vertical
	}
	next := s.sim.Step(s.now(), simulation.Input{Axis: axis, Interact: interact})
	s.hud.Update(next.Time - prev.Time)
}

// Draw 绘制模拟画面和叠加层
func (s *GameScene) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	if b.Dx() != s.lastW || b.Dy() != s.lastH {
		s.lastW, s.lastH = b.Dx(), b.Dy()
		s.sim.SetViewport(float64(s.lastW), float64(s.lastH))
	}

	s.sim.Draw(screen)
	snap := s.sim.Snapshot()

	// 路牌第一次画出来以后才成为闪电落点
	if !s.signAnchored && snap.Mode == game.ModeRoad {
		s.sim.SetSignAnchor(s.world.Sign.X, s.world.Sign.Y)
		s.signAnchored = true
	}

	s.hud.Draw(screen)
	if !snap.IntroSeen {
		drawIntro(screen, s.sim.State().IsSmallScreen())
	}
	s.panel.Draw(screen)
}

// SaveOnExit 退出时保存未提交的报名草稿
func (s *GameScene) SaveOnExit() bool {
	if err := s.panel.saveDraft(); err != nil {
		log.Printf("[GameScene] Warning: 退出时保存草稿失败: %v", err)
		return false
	}
	return true
}
