package utils

import (
	"testing"
)

func TestAxisFromKeys(t *testing.T) {
	tests := []struct {
		name     string
		neg, pos bool
		expected float64
	}{
		{"无按键", false, false, 0},
		{"负方向", true, false, -1},
		{"正方向", false, true, 1},
		{"同时按下抵消", true, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AxisFromKeys(tt.neg, tt.pos); got != tt.expected {
				t.Errorf("AxisFromKeys(%v, %v) = %v, 期望 %v", tt.neg, tt.pos, got, tt.expected)
			}
		})
	}
}

func TestTouchAxis(t *testing.T) {
	tests := []struct {
		name      string
		pos, size float64
		expected  float64
	}{
		{"左侧", 50, 960, -1},
		{"中间", 480, 960, 0},
		{"右侧", 900, 960, 1},
		{"尺寸非法", 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TouchAxis(tt.pos, tt.size); got != tt.expected {
				t.Errorf("TouchAxis(%v, %v) = %v, 期望 %v", tt.pos, tt.size, got, tt.expected)
			}
		})
	}
}
