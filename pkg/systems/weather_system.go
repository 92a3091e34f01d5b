package systems

import (
	"log"
	"math"

	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/game"
	"github.com/gonewx/roadquest/pkg/utils"
	"github.com/lucasb-eyer/go-colorful"
)

// WeatherType 天气类型
type WeatherType int

const (
	WeatherClear WeatherType = iota
	WeatherRaining
)

func (w WeatherType) String() string {
	if w == WeatherRaining {
		return "raining"
	}
	return "clear"
}

// WeatherView 天气只读视图
type WeatherView struct {
	Type       WeatherType
	Intensity  float64
	NextChange float64
}

// rainColor 雨丝颜色，按强度从浅灰蓝混合到较深的蓝
var (
	rainLight = colorful.Color{R: 0.78, G: 0.84, B: 0.92}
	rainHeavy = colorful.Color{R: 0.55, G: 0.66, B: 0.82}
)

// WeatherSystem 晴/雨切换与雨滴生成
//
// 雨滴在屏幕坐标中生成和运动，不随镜头移动；越过视口底部 RainCullMargin 后立即回收。
// 只有道路模式下生成新雨滴（地下没有雨），已有雨滴继续落完。
type WeatherSystem struct {
	gameState *game.GameState

	weather    WeatherType
	intensity  float64
	nextChange float64
	accum      float64

	rain *ParticlePool
}

// NewWeatherSystem 创建天气系统
func NewWeatherSystem(gs *game.GameState) *WeatherSystem {
	ws := &WeatherSystem{
		gameState:  gs,
		nextChange: gs.World.Weather.FirstChange,
		rain:       NewParticlePool("rain", 600),
	}
	if gs.World.Weather.StartRaining {
		ws.weather = WeatherRaining
		ws.intensity = 1
	}
	ws.updateBounds()
	return ws
}

// Rain 雨滴粒子池（屏幕坐标）
func (ws *WeatherSystem) Rain() *ParticlePool { return ws.rain }

// Type 当前天气类型
func (ws *WeatherSystem) Type() WeatherType { return ws.weather }

// Intensity 当前强度 [0, 1]
func (ws *WeatherSystem) Intensity() float64 { return ws.intensity }

// NextChange 下一次切换时间
func (ws *WeatherSystem) NextChange() float64 { return ws.nextChange }

// View 返回只读视图
func (ws *WeatherSystem) View() WeatherView {
	return WeatherView{Type: ws.weather, Intensity: ws.intensity, NextChange: ws.nextChange}
}

// Update 推进天气，天气类型发生切换时返回 true
func (ws *WeatherSystem) Update(dt float64) bool {
	gs := ws.gameState
	now := gs.Now()
	changed := false

	if now >= ws.nextChange {
		if ws.weather == WeatherRaining {
			ws.weather = WeatherClear
		} else {
			ws.weather = WeatherRaining
		}
		ws.nextChange = now + RandomRange(gs, config.WeatherChangeMin, config.WeatherChangeMax)
		changed = true
		log.Printf("[WeatherSystem] 天气切换为 %s，下一次 %.1fs", ws.weather, ws.nextChange)
	}

	target := 0.0
	if ws.weather == WeatherRaining {
		target = 1
	}
	ws.intensity = utils.Clamp(utils.Approach(ws.intensity, target, config.WeatherEaseRate*dt), 0, 1)

	ws.updateBounds()

	if ws.intensity <= 0 {
		ws.rain.Clear()
		ws.accum = 0
		return changed
	}

	if gs.Mode != game.ModeRoad {
		return changed
	}

	ws.accum += ws.intensity * config.RainMaxRate * dt
	n := int(ws.accum)
	ws.accum -= float64(n)
	for i := 0; i < n; i++ {
		ws.spawnDrop()
	}
	return changed
}

// spawnDrop 在视口顶部之上生成一滴雨
// 雨是斜着下的，生成范围向右多出一段，保证视口右侧也有雨
func (ws *WeatherSystem) spawnDrop() {
	gs := ws.gameState
	drift := -config.RainSpeedX * (gs.ViewportH / config.RainSpeedY)
	ws.rain.Spawn(Particle{
		X:      RandomRange(gs, 0, gs.ViewportW+drift),
		Y:      RandomRange(gs, -60, -10),
		VX:     config.RainSpeedX,
		VY:     config.RainSpeedY * RandomRange(gs, 0.9, 1.1),
		Life:   3,
		Alpha:  RandomRange(gs, 0.25, 0.6),
		Length: RandomRange(gs, 10, 24),
		Angle:  math.Atan2(config.RainSpeedY, config.RainSpeedX),
		Color:  rainLight.BlendLab(rainHeavy, ws.intensity).Clamped(),
	})
}

// updateBounds 只限制下边界，视口尺寸可能随窗口变化
func (ws *WeatherSystem) updateBounds() {
	ws.rain.SetBounds(Bounds{
		MinX: math.Inf(-1),
		MinY: math.Inf(-1),
		MaxX: math.Inf(1),
		MaxY: ws.gameState.ViewportH + config.RainCullMargin,
	}, 0)
}
