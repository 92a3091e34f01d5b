package simulation

import (
	"github.com/gonewx/roadquest/pkg/components"
	"github.com/gonewx/roadquest/pkg/game"
	"github.com/gonewx/roadquest/pkg/systems"
)

// Input 一帧的玩家输入
type Input struct {
	// Axis 活动轴方向 [-1, 1]：道路上是左右，时间线上是上下
	Axis float64
	// Interact 本帧按下了交互键
	Interact bool
}

// WaypointView 路标的只读视图，交给面板等外部协作者
type WaypointView struct {
	ID       string
	Label    string
	Category string
	Space    string
	Position float64
	Title    string
	Body     []string
}

func newWaypointView(wp *components.WaypointComponent) WaypointView {
	return WaypointView{
		ID:       wp.ID,
		Label:    wp.Label,
		Category: wp.Category,
		Space:    wp.Space,
		Position: wp.Position,
		Title:    wp.Title,
		Body:     wp.Body,
	}
}

// Listener 模拟事件通知
// 回调在 Step 内同步调用，不应阻塞
type Listener interface {
	// OnNearChanged 靠近的路标发生变化；prev/next 为 nil 表示没有
	OnNearChanged(prev, next *WaypointView)
	// OnModeChanged 道路/时间线模式切换
	OnModeChanged(mode game.Mode)
	// OnWeatherChanged 天气类型切换
	OnWeatherChanged(weather systems.WeatherType)
	// OnDiscovered 某个路标第一次被靠近
	OnDiscovered(wp WaypointView)
}

// NopListener 忽略所有通知
type NopListener struct{}

func (NopListener) OnNearChanged(prev, next *WaypointView)       {}
func (NopListener) OnModeChanged(mode game.Mode)                 {}
func (NopListener) OnWeatherChanged(weather systems.WeatherType) {}
func (NopListener) OnDiscovered(wp WaypointView)                 {}

// Overlay 信息面板（报名表、FAQ、联系方式）
// 面板打开期间由外部调用 Simulation.SetOverlayOpen(false) 关闭
type Overlay interface {
	Open(category string, wp WaypointView)
}

// Snapshot 一帧结束时的状态，供渲染和调试使用
type Snapshot struct {
	Time     float64
	Mode     game.Mode
	Player   game.Player
	Camera   game.Camera
	Shake    float64
	Near     *WaypointView
	Phase    game.Phase
	Progress float64

	Weather   systems.WeatherView
	Lightning systems.LightningView

	GateOpen  bool
	IntroSeen bool
	Paused    bool

	// Particles 各粒子池当前数量，按池名索引
	Particles map[string]int
	SkidMarks int
}
