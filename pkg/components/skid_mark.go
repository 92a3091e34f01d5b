package components

// SkidMarkComponent 急刹/急加速时留在路面上的痕迹
// 与 PositionComponent、LifetimeComponent 一起使用，由 LifetimeSystem 回收
type SkidMarkComponent struct {
	Width     float64 // 痕迹长度（像素）
	Direction float64 // 产生时的行驶方向 (-1 / 1)
}
