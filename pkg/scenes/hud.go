package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/gonewx/roadquest/pkg/game"
	"github.com/gonewx/roadquest/pkg/simulation"
	"github.com/gonewx/roadquest/pkg/systems"
	"github.com/gonewx/roadquest/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	toastDuration = 3.0 // 提示停留时间（秒）
	toastMax      = 3   // 同时显示的提示条数
)

var (
	panelShade      = color.NRGBA{R: 0, G: 0, B: 0, A: 110}
	panelBackground = color.NRGBA{R: 24, G: 28, B: 36, A: 235}
	panelBorder     = color.NRGBA{R: 240, G: 200, B: 90, A: 255}
	toastBackground = color.NRGBA{R: 0, G: 0, B: 0, A: 150}
)

type toast struct {
	text      string
	remaining float64
}

// HUD 屏幕提示，实现 simulation.Listener
// 新发现的路标、天气和模式切换都会弹出一条短提示
type HUD struct {
	toasts []toast
}

// NewHUD 创建提示层
func NewHUD() *HUD {
	return &HUD{}
}

// push 添加提示，超出上限时丢弃最早的
func (h *HUD) push(text string) {
	h.toasts = append(h.toasts, toast{text: text, remaining: toastDuration})
	if len(h.toasts) > toastMax {
		h.toasts = h.toasts[len(h.toasts)-toastMax:]
	}
}

// Update 推进提示计时
func (h *HUD) Update(dt float64) {
	kept := h.toasts[:0]
	for _, t := range h.toasts {
		t.remaining -= dt
		if t.remaining > 0 {
			kept = append(kept, t)
		}
	}
	h.toasts = kept
}

// Messages 当前显示的提示文本
func (h *HUD) Messages() []string {
	out := make([]string, len(h.toasts))
	for i, t := range h.toasts {
		out[i] = t.text
	}
	return out
}

func (h *HUD) OnNearChanged(prev, next *simulation.WaypointView) {
	if next != nil {
		log.Printf("[HUD] 靠近路标: %s", next.ID)
	}
}

func (h *HUD) OnModeChanged(mode game.Mode) {
	switch mode {
	case game.ModeTimeline:
		h.push("Entering the timeline")
	case game.ModeRoad:
		h.push("Back on the road")
	}
}

func (h *HUD) OnWeatherChanged(weather systems.WeatherType) {
	switch weather {
	case systems.WeatherRaining:
		h.push("It's starting to rain")
	case systems.WeatherClear:
		h.push("The rain is easing off")
	}
}

func (h *HUD) OnDiscovered(wp simulation.WaypointView) {
	h.push(fmt.Sprintf("Discovered: %s", wp.Label))
}

// Draw 右上角依次绘制提示
func (h *HUD) Draw(screen *ebiten.Image) {
	sw := float64(screen.Bounds().Dx())
	y := 12.0
	for _, t := range h.toasts {
		w := utils.DebugTextWidth(t.text) + 16
		x := sw - w - 12
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), 22, toastBackground, false)
		ebitenutil.DebugPrintAt(screen, t.text, int(x)+8, int(y)+3)
		y += 28
	}
}

// drawIntro 开场说明
func drawIntro(screen *ebiten.Image, small bool) {
	b := screen.Bounds()
	lines := []string{
		"Welcome! Drive along the road to explore.",
		"Arrow keys / A D to drive, E or Space to interact.",
		"Press T for the text version.",
	}
	if small {
		lines[1] = "Touch the left or right side to drive, tap the middle to interact."
	}
	w := 0.0
	for _, l := range lines {
		if lw := utils.DebugTextWidth(l); lw > w {
			w = lw
		}
	}
	w += 32
	h := float64(len(lines))*utils.DebugLineHeight + 24
	x := (float64(b.Dx()) - w) / 2
	y := float64(b.Dy()) * 0.18
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), panelBackground, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, panelBorder, false)
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, int(x)+16, int(y)+12+i*int(utils.DebugLineHeight))
	}
}
