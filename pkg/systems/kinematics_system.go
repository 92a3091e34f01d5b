package systems

import (
	"math"

	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/game"
	"github.com/gonewx/roadquest/pkg/utils"
)

// SkidEvent 急加速/急刹产生的刹车痕事件
type SkidEvent struct {
	X, Y      float64
	Direction float64
}

// KinematicsSystem 玩家运动学
//
// 只积分当前模式的活动轴：道路模式积分 X，时间线模式积分 Y，
// 另一个轴被固定在车道 Y 或竖井 X 上，速度为 0。
type KinematicsSystem struct {
	gameState *game.GameState
}

// NewKinematicsSystem 创建运动学系统
func NewKinematicsSystem(gs *game.GameState) *KinematicsSystem {
	return &KinematicsSystem{gameState: gs}
}

// Integrate 按输入方向推进一帧
//
// dir 超出 [-1, 1] 时被钳制。没有输入时速度按摩擦力向 0 衰减且不越过 0；
// 撞到边界时位置被钳制，朝向墙的速度清零。
// 返回本帧是否产生刹车痕。
func (ks *KinematicsSystem) Integrate(dir, dt float64) (SkidEvent, bool) {
	gs := ks.gameState
	p := &gs.Player
	dir = utils.Clamp(dir, -1, 1)
	if math.IsNaN(dir) {
		dir = 0
	}

	var pos, vel, acc *float64
	var lo, hi float64
	maxSpeed := p.MaxSpeed

	if gs.Mode == game.ModeTimeline {
		pos, vel, acc = &p.Y, &p.VY, &p.AY
		lo, hi = gs.World.TimelineBounds()
		p.X = gs.World.Timeline.ShaftX
		p.VX, p.AX = 0, 0
	} else {
		pos, vel, acc = &p.X, &p.VX, &p.AX
		lo, hi = gs.World.RoadBounds()
		if gs.World.InFastLane(p.X) {
			maxSpeed *= config.FastLaneBoost
		}
		p.Y = gs.World.Road.LaneY
		p.VY, p.AY = 0, 0
	}

	a := dir * p.Accel
	*acc = a
	*vel += a * dt
	if dir == 0 {
		*vel = utils.Approach(*vel, 0, p.Friction*dt)
	}
	*vel = utils.Clamp(*vel, -maxSpeed, maxSpeed)

	*pos += *vel * dt
	if *pos < lo {
		*pos = lo
		if *vel < 0 {
			*vel = 0
		}
	} else if *pos > hi {
		*pos = hi
		if *vel > 0 {
			*vel = 0
		}
	}

	if math.Abs(a) > config.SkidAccelRatio*p.Accel && math.Abs(*vel) > config.SkidSpeedRatio*maxSpeed {
		d := 1.0
		if *vel < 0 {
			d = -1
		}
		return SkidEvent{X: p.X, Y: p.Y, Direction: d}, true
	}
	return SkidEvent{}, false
}
