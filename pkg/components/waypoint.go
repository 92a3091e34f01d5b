package components

// WaypointComponent 路标
//
// 路标实体在模拟开始时按配置顺序创建，之后只读。
// Position 是所在空间活动轴上的坐标（道路 X 或时间线 Y），
// 同一实体的 PositionComponent 保存用于绘制的二维坐标。
type WaypointComponent struct {
	ID            string
	Label         string
	Category      string
	Space         string // "road" 或 "timeline"
	Position      float64
	TriggerRadius float64
	Title         string
	Body          []string

	// Discovered 第一次进入触发范围后置为 true，只改变一次
	Discovered bool
}
