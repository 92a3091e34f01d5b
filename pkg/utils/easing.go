package utils

import "math"

// 缓动与插值
//
// 缓动函数接受进度 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 参考：https://easings.net/

// EaseInOutCubic 三次方缓入缓出
// 下降过场中玩家 Y 的曲线：开始慢，中间快，结束慢
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	t = Clamp(t, 0, 1)
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutQuad 二次方缓出
func EaseOutQuad(t float64) float64 {
	t = Clamp(t, 0, 1)
	return 1 - (1-t)*(1-t)
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 将 v 限制在 [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Approach 让 v 向 target 移动最多 step，不会越过 target
func Approach(v, target, step float64) float64 {
	if step <= 0 {
		return v
	}
	if v < target {
		return math.Min(v+step, target)
	}
	return math.Max(v-step, target)
}

// Follow 单极点低通滤波：current += (target - current) * min(1, dt*rate)
// 镜头缓动使用，rate 越大跟得越紧
func Follow(current, target, dt, rate float64) float64 {
	k := dt * rate
	if k > 1 {
		k = 1
	}
	if k < 0 {
		k = 0
	}
	return current + (target-current)*k
}
