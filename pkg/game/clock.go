package game

import "github.com/gonewx/roadquest/pkg/config"

// Clock 模拟时钟
//
// 输入是宿主提供的绝对时间戳（秒），输出是钳制后的帧间隔。
// 所有调度（闪电、天气、过场阶段）都基于 Now()，即钳制后的累计模拟时间，
// 所以标签页挂起很久之后恢复，计划事件也只会推进 MaxFrameDt。
type Clock struct {
	last    float64
	now     float64
	started bool
	maxDt   float64
}

// NewClock 创建时钟，使用默认的最大帧间隔
func NewClock() *Clock {
	return &Clock{maxDt: config.MaxFrameDt}
}

// Tick 推进时钟并返回本帧 dt
// 首帧返回 0；时间戳倒退时返回 0
func (c *Clock) Tick(nowAbsolute float64) float64 {
	if !c.started {
		c.started = true
		c.last = nowAbsolute
		return 0
	}

	dt := nowAbsolute - c.last
	c.last = nowAbsolute
	if dt < 0 {
		return 0
	}
	if dt > c.maxDt {
		dt = c.maxDt
	}
	c.now += dt
	return dt
}

// Now 返回累计模拟时间（秒）
func (c *Clock) Now() float64 {
	return c.now
}
