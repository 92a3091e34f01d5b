// Package particle 提供粒子效果的参数语法与 YAML 配置解析
//
// 参数值沿用一套紧凑的字符串语法，便于在 data/effects.yaml 中手工调参：
//   - 固定值:        "1.5"
//   - 随机范围:      "[0.4 0.9]"
//   - 关键帧曲线:    "0,0 .2,1 1,0"（time,value，time 为归一化生命进度）
//   - 插值关键字:    "EaseOut 0,1 1,0"
//   - 范围+关键帧:   "[2 4] 1,0"（初始值随机，随后向关键帧衰减）
package particle

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
)

// Keyframe 曲线上的一个关键帧
type Keyframe struct {
	Time  float64 // 归一化时间 (0-1)
	Value float64 // 该时刻的值
}

// 支持的插值模式
const (
	InterpLinear  = "Linear"
	InterpEaseIn  = "EaseIn"
	InterpEaseOut = "EaseOut"
	InterpSmooth  = "Smooth"
)

var interpolationKeywords = []string{InterpLinear, InterpEaseIn, InterpEaseOut, InterpSmooth}

// ParseValue 解析参数字符串
//
// 返回：
//   - min, max: 范围（固定值时二者相等）
//   - keyframes: 关键帧（无曲线时为 nil）
//   - interpolation: 插值模式（默认空字符串，按线性处理）
func ParseValue(s string) (min, max float64, keyframes []Keyframe, interpolation string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, nil, ""
	}

	for _, keyword := range interpolationKeywords {
		if strings.Contains(s, keyword) {
			interpolation = keyword
			s = strings.TrimSpace(strings.ReplaceAll(s, keyword, ""))
			break
		}
	}

	// 范围部分 "[a b]"，后面可以跟关键帧
	if strings.HasPrefix(s, "[") {
		closeIdx := strings.Index(s, "]")
		if closeIdx < 0 {
			return 0, 0, nil, ""
		}
		parts := strings.Fields(s[1:closeIdx])
		switch len(parts) {
		case 1:
			v, err := strconv.ParseFloat(parts[0], 64)
			if err != nil {
				return 0, 0, nil, ""
			}
			min, max = v, v
		case 2:
			a, err1 := strconv.ParseFloat(parts[0], 64)
			b, err2 := strconv.ParseFloat(parts[1], 64)
			if err1 != nil || err2 != nil {
				return 0, 0, nil, ""
			}
			min, max = math.Min(a, b), math.Max(a, b)
		default:
			return 0, 0, nil, ""
		}
		keyframes = parseKeyframes(s[closeIdx+1:])
		return min, max, keyframes, interpolation
	}

	if strings.Contains(s, ",") {
		keyframes = parseKeyframes(s)
		if len(keyframes) > 0 {
			return keyframes[0].Value, keyframes[0].Value, keyframes, interpolation
		}
		return 0, 0, nil, ""
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, 0, nil, ""
	}
	return v, v, nil, interpolation
}

// parseKeyframes 解析 "t,v t,v ..." 形式的关键帧列表
// 格式错误的项和时间倒序的项会被丢弃
func parseKeyframes(s string) []Keyframe {
	var kf []Keyframe
	for _, part := range strings.Fields(s) {
		pair := strings.Split(part, ",")
		if len(pair) != 2 {
			continue
		}
		t, err1 := strconv.ParseFloat(pair[0], 64)
		v, err2 := strconv.ParseFloat(pair[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		if len(kf) > 0 && t < kf[len(kf)-1].Time {
			continue
		}
		kf = append(kf, Keyframe{Time: t, Value: v})
	}
	return kf
}

// EvaluateKeyframes 计算归一化时间 t 处的插值结果
// t 会被限制在 [0,1]；早于首帧返回首帧值，晚于末帧返回末帧值
func EvaluateKeyframes(keyframes []Keyframe, t float64, interpolation string) float64 {
	if len(keyframes) == 0 {
		return 0
	}
	if len(keyframes) == 1 {
		return keyframes[0].Value
	}

	t = math.Max(0, math.Min(1, t))
	if t <= keyframes[0].Time {
		return keyframes[0].Value
	}

	for i := 0; i < len(keyframes)-1; i++ {
		k0 := keyframes[i]
		k1 := keyframes[i+1]
		if t < k0.Time || t > k1.Time {
			continue
		}
		duration := k1.Time - k0.Time
		if duration <= 0 {
			return k1.Value
		}
		ratio := (t - k0.Time) / duration
		switch interpolation {
		case InterpEaseIn:
			ratio = ratio * ratio
		case InterpEaseOut:
			ratio = 1 - (1-ratio)*(1-ratio)
		case InterpSmooth:
			ratio = ratio * ratio * (3 - 2*ratio)
		}
		return k0.Value + ratio*(k1.Value-k0.Value)
	}

	return keyframes[len(keyframes)-1].Value
}

// RandomInRange 返回 [min, max] 内的随机数；rng 为 nil 时使用全局随机源
func RandomInRange(rng *rand.Rand, min, max float64) float64 {
	if min >= max {
		return min
	}
	if rng == nil {
		return min + rand.Float64()*(max-min)
	}
	return min + rng.Float64()*(max-min)
}

// Value 是解析后的参数值
type Value struct {
	Min, Max      float64
	Keyframes     []Keyframe
	Interpolation string
}

// NewValue 解析参数字符串为 Value
func NewValue(s string) Value {
	min, max, kf, interp := ParseValue(s)
	return Value{Min: min, Max: max, Keyframes: kf, Interpolation: interp}
}

// Fixed 返回一个固定值
func Fixed(v float64) Value {
	return Value{Min: v, Max: v}
}

// Range 返回一个随机范围
func Range(min, max float64) Value {
	return Value{Min: min, Max: max}
}

// Animated 是否为随时间变化的曲线
func (v Value) Animated() bool {
	return len(v.Keyframes) > 1
}

// Sample 随机采样一个初始值
func (v Value) Sample(rng *rand.Rand) float64 {
	return RandomInRange(rng, v.Min, v.Max)
}

// At 返回归一化进度 t 处的值；非曲线值返回范围中点
func (v Value) At(t float64) float64 {
	if len(v.Keyframes) > 0 {
		return EvaluateKeyframes(v.Keyframes, t, v.Interpolation)
	}
	return (v.Min + v.Max) / 2
}
