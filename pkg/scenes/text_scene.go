package scenes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/game"
	"github.com/gonewx/roadquest/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	textMargin      = 24.0
	textScrollSpeed = 480.0 // 方向键滚动速度（像素/秒）
	textWheelStep   = 40.0
)

// textInput 文字版一帧的输入
type textInput struct {
	Scroll float64 // 正数向下；方向键按秒计，滚轮按步计，已换算成像素
	Back   bool
}

// TextScene 静态文字版
//
// 不依赖模拟：按配置列出道路上的站点和时间线里程碑，可滚动。
// 报名状态从进度存储读取。
type TextScene struct {
	sceneManager *game.SceneManager
	world        *config.WorldConfig
	progress     *game.ProgressStore

	scroll     float64
	width      float64
	registered bool
	lines      []string
	readInput func(dt float64) textInput
}

// NewTextScene 创建文字版场景
func NewTextScene(sceneManager *game.SceneManager, world *config.WorldConfig, progress *game.ProgressStore) *TextScene {
	if world == nil {
		world = config.DefaultWorldConfig()
	}
	s := &TextScene{
		sceneManager: sceneManager,
		world:        world,
		progress:     progress,
	}
	s.readInput = readTextInput
	return s
}

func readTextInput(dt float64) textInput {
	in := textInput{
		Back: inpututil.IsKeyJustPressed(ebiten.KeyT) || inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
	in.Scroll = utils.AxisFromKeys(
		ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS),
	) * textScrollSpeed * dt
	_, wy := ebiten.Wheel()
	in.Scroll -= wy * textWheelStep
	return in
}

// Update 滚动或返回
func (s *TextScene) Update(deltaTime float64) {
	in := s.readInput(deltaTime)
	if in.Back && s.sceneManager != nil {
		s.sceneManager.SwitchByName(game.SceneWorld)
		return
	}
	s.scroll += in.Scroll
	if s.scroll < 0 {
		s.scroll = 0
	}
}

// Draw 绘制可见的行
func (s *TextScene) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	registered := s.progress != nil && s.progress.IsRegistered()
	if w != s.width || registered != s.registered || s.lines == nil {
		s.width = w
		s.registered = registered
		s.lines = s.wrapped(w-textMargin*2, registered)
	}
	screen.Fill(panelBackground)

	maxScroll := float64(len(s.lines))*utils.DebugLineHeight - (h - textMargin*2)
	if maxScroll < 0 {
		maxScroll = 0
	}
	if s.scroll > maxScroll {
		s.scroll = maxScroll
	}

	first := int(s.scroll / utils.DebugLineHeight)
	y := textMargin - (s.scroll - float64(first)*utils.DebugLineHeight)
	for i := first; i < len(s.lines) && y < h-textMargin; i++ {
		ebitenutil.DebugPrintAt(screen, s.lines[i], int(textMargin), int(y))
		y += utils.DebugLineHeight
	}
}

// wrapped 按宽度换行后的全部文本
func (s *TextScene) wrapped(width float64, registered bool) []string {
	var out []string
	for _, line := range buildTextLines(s.world, registered) {
		out = append(out, utils.WrapText(line, width, nil)...)
	}
	return out
}

// buildTextLines 文字版内容：道路站点按位置排序，然后是时间线里程碑
func buildTextLines(world *config.WorldConfig, registered bool) []string {
	road, timeline := splitWaypoints(world)

	lines := []string{"ROADQUEST (text version)", "Press T to return to the interactive version.", ""}
	if registered {
		lines = append(lines, "You are registered. See you there!", "")
	}

	lines = append(lines, "== Along the road ==", "")
	for _, wp := range road {
		lines = append(lines, waypointLines(wp)...)
	}
	if len(timeline) > 0 {
		lines = append(lines, "== Timeline ==", "")
		for _, wp := range timeline {
			lines = append(lines, waypointLines(wp)...)
		}
	}
	return lines
}

func splitWaypoints(world *config.WorldConfig) (road, timeline []config.WaypointConfig) {
	for _, wp := range world.Waypoints {
		if wp.Space == config.SpaceTimeline {
			timeline = append(timeline, wp)
		} else {
			road = append(road, wp)
		}
	}
	byPosition := func(list []config.WaypointConfig) {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Position < list[j].Position })
	}
	byPosition(road)
	byPosition(timeline)
	return road, timeline
}

func waypointLines(wp config.WaypointConfig) []string {
	title := wp.Title
	if title == "" {
		title = wp.Label
	}
	lines := []string{fmt.Sprintf("# %s", strings.ToUpper(title))}
	lines = append(lines, wp.Body...)
	return append(lines, "")
}
