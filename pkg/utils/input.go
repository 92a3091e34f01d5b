// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 触摸区域划分：屏幕两侧各 35% 作为方向区，中间是交互区
const (
	touchLowZone  = 0.35
	touchHighZone = 0.65
)

// DriveInput 当前帧的原始驾驶输入
// Horizontal 用于道路，Vertical 用于时间线（负数向上）
type DriveInput struct {
	Horizontal float64
	Vertical   float64
	Interact   bool // 本帧刚按下交互键或点击了中间区域
	Toggled    bool // 本帧刚按下文字版切换键
	Any        bool // 本帧有任何输入（用于关闭开场提示）
}

// AxisFromKeys 根据一对方向键得到 -1 / 0 / 1
// 两个键同时按下时互相抵消
func AxisFromKeys(negative, positive bool) float64 {
	v := 0.0
	if negative {
		v--
	}
	if positive {
		v++
	}
	return v
}

// TouchAxis 根据触摸点在屏幕上的位置得到方向
// pos 落在前 35% 返回 -1，后 35% 返回 1，中间返回 0
func TouchAxis(pos, size float64) float64 {
	if size <= 0 {
		return 0
	}
	r := pos / size
	switch {
	case r < touchLowZone:
		return -1
	case r > touchHighZone:
		return 1
	}
	return 0
}

// ReadDriveInput 读取键盘和触摸输入
// screenW/screenH 是逻辑屏幕尺寸，用于划分触摸区域
func ReadDriveInput(screenW, screenH float64) DriveInput {
	in := DriveInput{
		Horizontal: AxisFromKeys(
			ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
			ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		),
		Vertical: AxisFromKeys(
			ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
			ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		),
		Interact: inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
			inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
			inpututil.IsKeyJustPressed(ebiten.KeyE),
		Toggled: inpututil.IsKeyJustPressed(ebiten.KeyT),
	}

	// 按住触摸：两侧方向区驱动，只取第一个触点
	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		if in.Horizontal == 0 {
			in.Horizontal = TouchAxis(float64(x), screenW)
		}
		if in.Vertical == 0 {
			in.Vertical = TouchAxis(float64(y), screenH)
		}
	}

	// 点击中间区域视为交互
	if pressed, x, y := IsPointerJustPressed(); pressed {
		if TouchAxis(float64(x), screenW) == 0 && TouchAxis(float64(y), screenH) == 0 {
			in.Interact = true
		}
	}

	in.Any = in.Horizontal != 0 || in.Vertical != 0 || in.Interact
	return in
}

// IsPointerJustPressed 检查是否刚刚按下指针（触摸或鼠标）
// 返回是否按下以及按下位置
func IsPointerJustPressed() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}
