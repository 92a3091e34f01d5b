package systems

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gonewx/roadquest/pkg/components"
	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/ecs"
	"github.com/gonewx/roadquest/pkg/game"
	"github.com/gonewx/roadquest/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
)

// RenderSources 渲染需要读取的各个系统
// 渲染只读取状态，不修改模拟数据
type RenderSources struct {
	Camera    *CameraSystem
	Mode      *ModeSystem
	Lightning *LightningSystem
	Weather   *WeatherSystem
	Trail     *TrailSystem
	Confetti  *ConfettiSystem
	Ambient   *AmbientSystem
	Proximity *ProximitySystem
}

// RenderSystem 用矢量图形绘制整个场景
//
// 绘制顺序（从底到顶）：
//   - 天空/地层背景 → 地面或竖井 → 刹车痕 → 路标
//   - 尾迹 → 过场粒子 → 玩家 → 闪电（世界坐标）
//   - 雨 → 光点 → 暗角与闪光 → 彩纸 → 提示文字（屏幕坐标）
type RenderSystem struct {
	gameState *game.GameState
	src       RenderSources
}

// 颜色
var (
	skyClear    = colorful.Color{R: 0.42, G: 0.66, B: 0.86}
	skyStorm    = colorful.Color{R: 0.22, G: 0.27, B: 0.36}
	skyFlash    = colorful.Color{R: 0.93, G: 0.95, B: 1}
	earthTop    = colorful.Color{R: 0.45, G: 0.31, B: 0.2}
	earthDeep   = colorful.Color{R: 0.16, G: 0.1, B: 0.07}
	roadColor   = colorful.Color{R: 0.24, G: 0.24, B: 0.26}
	laneColor   = colorful.Color{R: 0.95, G: 0.85, B: 0.35}
	fastLane    = colorful.Color{R: 0.35, G: 0.75, B: 0.55}
	playerBody  = colorful.Color{R: 0.96, G: 0.72, B: 0.2}
	playerTrack = colorful.Color{R: 0.2, G: 0.18, B: 0.16}
	skidColor   = colorful.Color{R: 0.08, G: 0.08, B: 0.08}
	signColor   = colorful.Color{R: 0.85, G: 0.85, B: 0.8}
	gateColor   = colorful.Color{R: 0.86, G: 0.24, B: 0.2}
)

// NewRenderSystem 创建渲染系统
func NewRenderSystem(gs *game.GameState, src RenderSources) *RenderSystem {
	return &RenderSystem{gameState: gs, src: src}
}

// Draw 绘制一帧
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	if screen == nil {
		return
	}
	gs := s.gameState

	s.drawBackground(screen)
	if gs.Mode == game.ModeRoad {
		s.drawRoad(screen)
		s.drawSkidMarks(screen)
	} else {
		s.drawShaft(screen)
	}
	s.drawWaypoints(screen)

	s.drawWorldPool(screen, s.src.Trail.Particles(), false)
	s.drawWorldPool(screen, s.src.Mode.Particles(), false)
	s.drawPlayer(screen)
	s.drawLightning(screen)

	s.drawRain(screen)
	s.drawScreenPool(screen, s.src.Ambient.Particles(), false)
	s.drawVignette(screen)
	s.drawScreenPool(screen, s.src.Confetti.Particles(), true)
	s.drawPrompt(screen)
}

// drawBackground 天空随雨量变暗，闪电时发亮；地下按深度由浅到深
func (s *RenderSystem) drawBackground(screen *ebiten.Image) {
	gs := s.gameState
	w, h := float32(gs.ViewportW), float32(gs.ViewportH)

	if gs.Mode == game.ModeTimeline {
		depth := 0.0
		if gs.World.Timeline.Length > 0 {
			depth = utils.Clamp(gs.Camera.Y/gs.World.Timeline.Length, 0, 1)
		}
		vector.DrawFilledRect(screen, 0, 0, w, h, nrgba(earthTop.BlendLab(earthDeep, depth), 1), false)
		return
	}

	lv := s.src.Lightning.View()
	sky := SkyColor(s.src.Weather.Intensity(), lv.Brightness)
	vector.DrawFilledRect(screen, 0, 0, w, h, nrgba(sky, 1), false)
}

// SkyColor 天空颜色：按雨量混向阴天，再按闪电亮度混向白色
func SkyColor(rain, flash float64) colorful.Color {
	c := skyClear.BlendLab(skyStorm, utils.Clamp(rain, 0, 1))
	return c.BlendLab(skyFlash, utils.Clamp(flash, 0, 1)*0.6).Clamped()
}

// drawRoad 路面、车道线、快车道与路牌
func (s *RenderSystem) drawRoad(screen *ebiten.Image) {
	gs := s.gameState
	road := gs.World.Road
	groundY := road.LaneY + gs.Player.HalfH
	_, sy := s.toScreen(0, groundY)
	w := float32(gs.ViewportW)

	vector.DrawFilledRect(screen, 0, float32(sy), w, float32(gs.ViewportH-sy), nrgba(roadColor, 1), false)
	vector.DrawFilledRect(screen, 0, float32(sy)-3, w, 3, nrgba(earthTop, 1), false)

	for _, z := range road.FastLanes {
		x0, _ := s.toScreen(z.From, 0)
		x1, _ := s.toScreen(z.To, 0)
		vector.DrawFilledRect(screen, float32(x0), float32(sy)+4, float32(x1-x0), 6, nrgba(fastLane, 0.8), false)
	}

	// 虚线车道线，每 80 像素一段
	start := math.Floor(gs.Camera.X/80) * 80
	for x := start; x < gs.Camera.X+gs.ViewportW+80; x += 80 {
		dx, _ := s.toScreen(x, 0)
		vector.DrawFilledRect(screen, float32(dx), float32(sy)+24, 40, 4, nrgba(laneColor, 0.9), false)
	}

	// 路牌画出来之后场景才会把它登记为闪电落点
	sign := gs.World.Sign
	bx, by := s.toScreen(sign.X, sign.Y)
	vector.StrokeLine(screen, float32(bx), float32(by), float32(bx), float32(sy), 4, nrgba(signColor, 1), false)
	vector.DrawFilledRect(screen, float32(bx)-36, float32(by)-22, 72, 26, nrgba(signColor, 1), false)

	s.drawGate(screen, float32(sy))
}

// drawGate 入口路标处的闸门，报名后抬起
func (s *RenderSystem) drawGate(screen *ebiten.Image, groundY float32) {
	gs := s.gameState
	for _, wp := range gs.World.Waypoints {
		if wp.Category != config.CategoryEntry || wp.Space == config.SpaceTimeline {
			continue
		}
		x, _ := s.toScreen(wp.Position+wp.TriggerRadius, 0)
		post := float32(x)
		vector.DrawFilledRect(screen, post-4, groundY-80, 8, 80, nrgba(signColor, 1), false)
		if gs.GateOpen {
			vector.StrokeLine(screen, post, groundY-76, post+14, groundY-150, 6, nrgba(gateColor, 1), false)
		} else {
			vector.StrokeLine(screen, post, groundY-50, post-110, groundY-50, 6, nrgba(gateColor, 1), false)
		}
	}
}

// drawShaft 时间线竖井
func (s *RenderSystem) drawShaft(screen *ebiten.Image) {
	gs := s.gameState
	x, _ := s.toScreen(gs.World.Timeline.ShaftX, 0)
	half := float32(gs.Player.HalfW + 14)
	vector.DrawFilledRect(screen, float32(x)-half, 0, half*2, float32(gs.ViewportH), nrgba(earthDeep, 0.85), false)

	_, top := s.toScreen(0, config.TimelineTopBound-gs.Player.HalfH)
	vector.StrokeLine(screen, float32(x)-half, float32(top), float32(x)+half, float32(top), 2, nrgba(laneColor, 0.7), false)
}

// drawSkidMarks 刹车痕随剩余寿命淡出
func (s *RenderSystem) drawSkidMarks(screen *ebiten.Image) {
	em := s.gameState.EntityManager
	for _, id := range ecs.GetEntitiesWith2[*components.SkidMarkComponent, *components.PositionComponent](em) {
		skid, _ := ecs.GetComponent[*components.SkidMarkComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		alpha := 0.6
		if lt, ok := ecs.GetComponent[*components.LifetimeComponent](em, id); ok {
			alpha *= lt.Remaining()
		}
		x, y := s.toScreen(pos.X, pos.Y+s.gameState.Player.HalfH)
		x0 := x - skid.Direction*skid.Width
		vector.StrokeLine(screen, float32(x0), float32(y)-2, float32(x), float32(y)-2, 3, nrgba(skidColor, alpha), false)
	}
}

// drawWaypoints 当前空间的路标：竖杆 + 分类色旗帜，靠近的路标高亮
func (s *RenderSystem) drawWaypoints(screen *ebiten.Image) {
	gs := s.gameState
	em := gs.EntityManager
	space := gs.ActiveSpace()
	near := s.src.Proximity.Near()

	for _, id := range ecs.GetEntitiesWith2[*components.WaypointComponent, *components.PositionComponent](em) {
		wp, _ := ecs.GetComponent[*components.WaypointComponent](em, id)
		if wp.Space != space {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		x, y := s.toScreen(pos.X, pos.Y)
		if x < -100 || x > gs.ViewportW+100 || y < -100 || y > gs.ViewportH+100 {
			continue
		}

		c := CategoryColor(wp.Category)
		alpha := 0.75
		if id == near {
			alpha = 1
			vector.StrokeCircle(screen, float32(x), float32(y), float32(wp.TriggerRadius*0.35), 2, nrgba(c, 0.6), true)
		}

		if space == config.SpaceRoad {
			vector.StrokeLine(screen, float32(x), float32(y)+float32(gs.Player.HalfH), float32(x), float32(y)-70, 3, nrgba(signColor, alpha), false)
			vector.DrawFilledRect(screen, float32(x), float32(y)-70, 34, 20, nrgba(c, alpha), false)
			ebitenutil.DebugPrintAt(screen, wp.Label, int(x)-len(wp.Label)*3, int(y)-92)
		} else {
			vector.DrawFilledCircle(screen, float32(x), float32(y), 10, nrgba(c, alpha), true)
			ebitenutil.DebugPrintAt(screen, wp.Label, int(x+gs.Player.HalfW)+24, int(y)-8)
		}
	}
}

// CategoryColor 路标分类颜色
func CategoryColor(category string) colorful.Color {
	switch category {
	case config.CategoryRegister:
		return colorful.Hcl(140, 0.6, 0.7).Clamped()
	case config.CategoryFAQ:
		return colorful.Hcl(250, 0.5, 0.65).Clamped()
	case config.CategoryContact:
		return colorful.Hcl(40, 0.55, 0.7).Clamped()
	case config.CategoryEntry:
		return colorful.Hcl(20, 0.7, 0.55).Clamped()
	case config.CategoryMilestone:
		return colorful.Hcl(85, 0.5, 0.8).Clamped()
	}
	return colorful.Hcl(200, 0.3, 0.75).Clamped()
}

// drawPlayer 玩家车身与履带
func (s *RenderSystem) drawPlayer(screen *ebiten.Image) {
	p := s.gameState.Player
	x, y := s.toScreen(p.X, p.Y)
	hw, hh := float32(p.HalfW), float32(p.HalfH)
	vector.DrawFilledRect(screen, float32(x)-hw, float32(y)-hh, hw*2, hh*1.4, nrgba(playerBody, 1), false)
	vector.DrawFilledRect(screen, float32(x)-hw, float32(y)+hh*0.4, hw*2, hh*0.6, nrgba(playerTrack, 1), false)
	vector.DrawFilledCircle(screen, float32(x)+hw*0.4, float32(y)-hh*0.4, hh*0.3, nrgba(playerTrack, 1), true)
}

// drawLightning 闪电路径、冲击环、漏电和火花
func (s *RenderSystem) drawLightning(screen *ebiten.Image) {
	ls := s.src.Lightning
	view := ls.View()

	if view.State == LightningActive && len(view.Path) > 1 {
		for i := 1; i < len(view.Path); i++ {
			a, b := view.Path[i-1], view.Path[i]
			ax, ay := s.toScreen(a.X, a.Y)
			bx, by := s.toScreen(b.X, b.Y)
			vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), 6, nrgba(lightningGlow, view.Brightness*0.5), true)
			vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), 2, nrgba(view.Color, view.Brightness), true)
		}
	}

	ls.Rings().Each(func(p *Particle) {
		x, y := s.toScreen(p.X, p.Y)
		vector.StrokeCircle(screen, float32(x), float32(y), float32(p.Radius), 2, nrgba(p.Color, p.Alpha), true)
	})
	ls.Leaks().Each(func(p *Particle) {
		x, y := s.toScreen(p.X, p.Y)
		ex := x + math.Cos(p.Angle)*p.Length
		ey := y + math.Sin(p.Angle)*p.Length
		vector.StrokeLine(screen, float32(x), float32(y), float32(ex), float32(ey), 1.5, nrgba(p.Color, p.Alpha), true)
	})
	s.drawWorldPool(screen, ls.Sparks(), false)
}

// drawRain 雨丝是沿速度方向的短线
func (s *RenderSystem) drawRain(screen *ebiten.Image) {
	s.src.Weather.Rain().Each(func(p *Particle) {
		ex := p.X - math.Cos(p.Angle)*p.Length
		ey := p.Y - math.Sin(p.Angle)*p.Length
		vector.StrokeLine(screen, float32(p.X), float32(p.Y), float32(ex), float32(ey), 1, nrgba(p.Color, p.Alpha), false)
	})
}

// drawVignette 闪电后的暗角聚焦与主闪白光
func (s *RenderSystem) drawVignette(screen *ebiten.Image) {
	gs := s.gameState
	view := s.src.Lightning.View()
	w, h := float32(gs.ViewportW), float32(gs.ViewportH)

	if view.Focus > 0 {
		band := float32(gs.ViewportW * 0.12)
		shade := nrgba(colorful.Color{}, view.Focus*0.35)
		vector.DrawFilledRect(screen, 0, 0, band, h, shade, false)
		vector.DrawFilledRect(screen, w-band, 0, band, h, shade, false)
	}
	if view.Brightness > 0 {
		vector.DrawFilledRect(screen, 0, 0, w, h, nrgba(skyFlash, view.Brightness*0.25), false)
	}
}

// drawPrompt 靠近路标时的操作提示
func (s *RenderSystem) drawPrompt(screen *ebiten.Image) {
	gs := s.gameState
	if gs.Paused() {
		return
	}
	wp, ok := s.src.Proximity.NearWaypoint()
	if !ok {
		return
	}
	action := "open"
	if wp.Category == config.CategoryEntry {
		action = "dig"
	}
	msg := fmt.Sprintf("[E] %s %s", action, wp.Title)
	ebitenutil.DebugPrintAt(screen, msg, int(gs.ViewportW/2)-len(msg)*3, int(gs.ViewportH)-40)
}

// drawWorldPool 绘制世界坐标粒子
func (s *RenderSystem) drawWorldPool(screen *ebiten.Image, pool *ParticlePool, rotated bool) {
	pool.Each(func(p *Particle) {
		x, y := s.toScreen(p.X, p.Y)
		drawParticle(screen, p, x, y, rotated)
	})
}

// drawScreenPool 绘制屏幕坐标粒子
func (s *RenderSystem) drawScreenPool(screen *ebiten.Image, pool *ParticlePool, rotated bool) {
	DrawParticlePool(screen, pool, rotated)
}

// DrawParticlePool 按屏幕坐标绘制整个粒子池（粒子查看器也使用）
func DrawParticlePool(screen *ebiten.Image, pool *ParticlePool, rotated bool) {
	pool.Each(func(p *Particle) {
		drawParticle(screen, p, p.X, p.Y, rotated)
	})
}

// drawParticle rotated 为 true 时按旋转角把方块压扁，模拟纸片翻转
func drawParticle(screen *ebiten.Image, p *Particle, x, y float64, rotated bool) {
	a := p.CurrentAlpha()
	if a <= 0 || p.Size <= 0 {
		return
	}
	clr := nrgba(p.Color, a)
	if rotated {
		w := p.Size * math.Max(0.2, math.Abs(math.Cos(p.Rotation*math.Pi/180)))
		vector.DrawFilledRect(screen, float32(x-w/2), float32(y-p.Size/2), float32(w), float32(p.Size*0.6), clr, false)
		return
	}
	vector.DrawFilledCircle(screen, float32(x), float32(y), float32(p.Size/2), clr, true)
}

// toScreen 世界坐标转屏幕坐标
func (s *RenderSystem) toScreen(x, y float64) (float64, float64) {
	return s.src.Camera.WorldToScreen(x, y)
}

// nrgba 把 colorful 颜色和透明度转成 ebiten 可用的颜色
func nrgba(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(utils.Clamp(alpha, 0, 1) * 255))}
}
