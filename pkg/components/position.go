package components

// PositionComponent 世界坐标
type PositionComponent struct {
	X float64
	Y float64
}
