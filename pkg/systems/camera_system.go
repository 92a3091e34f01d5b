package systems

import (
	"math"

	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/game"
	"github.com/gonewx/roadquest/pkg/utils"
)

// CameraSystem 镜头跟随
//
// 道路模式：X 直接居中玩家并钳制在道路范围内，Y = 0。
// 时间线模式：Y 以单极点滤波缓动到目标，X = 0。
// 震屏只写入 ShakeX/ShakeY，基础偏移始终满足边界约束。
type CameraSystem struct {
	gameState *game.GameState
}

// NewCameraSystem 创建镜头系统
func NewCameraSystem(gs *game.GameState) *CameraSystem {
	return &CameraSystem{gameState: gs}
}

// Update 根据本帧最终的玩家位置更新镜头
func (cs *CameraSystem) Update(dt float64) {
	gs := cs.gameState
	cam := &gs.Camera

	switch gs.Mode {
	case game.ModeRoad:
		cam.X = utils.Clamp(gs.Player.X-gs.ViewportW/2, 0, cs.maxX())
		cam.Y = 0
	case game.ModeTimeline:
		target := utils.Clamp(gs.Player.Y-gs.ViewportH*config.TimelineCameraLead, 0, cs.maxY())
		cam.Y = utils.Follow(cam.Y, target, dt, cs.easeRate())
		cam.Y = utils.Clamp(cam.Y, 0, cs.maxY())
		cam.X = 0
	}

	cs.updateShake(dt)
}

// updateShake 生成本帧抖动并衰减幅度
func (cs *CameraSystem) updateShake(dt float64) {
	gs := cs.gameState
	cam := &gs.Camera

	amp := math.Max(gs.Transition.Shake, cam.Kick)
	if amp > 0 {
		cam.ShakeX = (gs.Rng.Float64()*2 - 1) * amp
		cam.ShakeY = (gs.Rng.Float64()*2 - 1) * amp
	} else {
		cam.ShakeX, cam.ShakeY = 0, 0
	}

	decay := config.ShakeDecayPerSecond * dt
	gs.Transition.Shake = math.Max(0, gs.Transition.Shake-decay)
	cam.Kick = math.Max(0, cam.Kick-decay)
}

// maxX 道路模式下镜头 X 的上限
func (cs *CameraSystem) maxX() float64 {
	gs := cs.gameState
	return math.Max(0, gs.World.Road.Length-gs.ViewportW)
}

// maxY 时间线模式下镜头 Y 的上限
func (cs *CameraSystem) maxY() float64 {
	gs := cs.gameState
	return math.Max(0, gs.World.Timeline.Length-gs.ViewportH*config.TimelineCameraTail+config.TimelineCameraMargin)
}

// easeRate 时间线镜头缓动速率，小屏跟得更紧
func (cs *CameraSystem) easeRate() float64 {
	if cs.gameState.IsSmallScreen() {
		return config.CameraEaseSmallScreen
	}
	return config.CameraEaseDesktop
}

// WorldToScreen 世界坐标转屏幕坐标（含震屏）
func (cs *CameraSystem) WorldToScreen(x, y float64) (float64, float64) {
	cam := cs.gameState.Camera
	return x - cam.X + cam.ShakeX, y - cam.Y + cam.ShakeY
}
