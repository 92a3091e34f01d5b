// Package app 提供游戏应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端、浏览器和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"image/color"
	"io"
	"log"

	particlePkg "github.com/gonewx/roadquest/internal/particle"
	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/game"
	"github.com/gonewx/roadquest/pkg/scenes"
	"github.com/gonewx/roadquest/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 默认数据文件路径
const (
	DefaultWorldPath   = config.DefaultWorldConfigPath
	DefaultEffectsPath = "data/effects.yaml"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// WorldPath 世界配置文件，为空使用 DefaultWorldPath
	WorldPath string
	// EffectsPath 粒子效果文件，为空使用 DefaultEffectsPath
	EffectsPath string
	// TextMode 直接进入文字版
	TextMode bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 配置文件缺失或损坏不是致命错误：记录警告后使用内置默认值。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	world := loadWorld(cfg.WorldPath)
	effects := loadEffects(cfg.EffectsPath)
	progress := game.NewProgressStore(game.OpenStorage(game.StorageAppName))

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(scenes.NewSceneFactory(sceneManager, world, effects, progress))

	start := game.SceneWorld
	if cfg.TextMode {
		start = game.SceneText
	}
	if !sceneManager.SwitchByName(start) {
		log.Printf("[App] 无法创建场景 %s，使用文字版", start)
		sceneManager.SwitchByName(game.SceneText)
	}
	log.Printf("[App] Starting scene: %s", sceneManager.CurrentName())

	return &App{
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
	}, nil
}

// loadWorld 加载世界配置，失败时退回默认值
func loadWorld(path string) *config.WorldConfig {
	if path == "" {
		path = DefaultWorldPath
	}
	world, err := config.LoadWorldConfig(path)
	if err != nil {
		log.Printf("[Config] Warning: %v (using built-in world)", err)
		return config.DefaultWorldConfig()
	}
	log.Printf("[Config] 加载世界配置: %s (%d 个路标)", path, len(world.Waypoints))
	return world
}

// loadEffects 加载粒子效果，失败时退回默认值
func loadEffects(path string) *particlePkg.Library {
	if path == "" {
		path = DefaultEffectsPath
	}
	lib, err := particlePkg.LoadEffectsFile(path)
	if err != nil {
		log.Printf("[Config] Warning: %v (using built-in effects)", err)
		return particlePkg.DefaultLibrary()
	}
	log.Printf("[Config] 加载粒子效果: %s", path)
	return lib
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.SaveOnExit()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// SaveOnExit 通知当前场景保存状态
func (a *App) SaveOnExit() bool {
	if s, ok := a.sceneManager.GetCurrentScene().(game.Saveable); ok {
		return s.SaveOnExit()
	}
	return true
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	// 使用线性滤波绘制游戏画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 桌面端固定为设计尺寸；移动端跟随窗口，使窄屏得到真实的小屏视口
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return LogicalSize(outsideWidth, outsideHeight, utils.IsMobile())
}

// LogicalSize 计算逻辑屏幕尺寸
func LogicalSize(outsideWidth, outsideHeight int, mobile bool) (int, int) {
	if !mobile || outsideWidth <= 0 || outsideHeight <= 0 {
		return config.GameWindowWidth, config.GameWindowHeight
	}
	// 保持高度为设计高度，宽度按窗口比例缩放
	w := outsideWidth * config.GameWindowHeight / outsideHeight
	if w > config.GameWindowWidth {
		w = config.GameWindowWidth
	}
	return w, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
