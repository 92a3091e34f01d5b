package particle

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// EffectFile 是 data/effects.yaml 的根结构
type EffectFile struct {
	Effects []EffectConfig `yaml:"effects"`
}

// EffectConfig 单个粒子效果的原始配置（字符串字段使用 ParseValue 语法）
//
// 角度约定与屏幕坐标一致：0° = 向右，90° = 向下，270° = 向上
type EffectConfig struct {
	Name      string   `yaml:"name"`
	Life      string   `yaml:"life"`      // 生命周期（秒）
	Speed     string   `yaml:"speed"`     // 发射速度（像素/秒）
	Angle     string   `yaml:"angle"`     // 发射角度（度）
	Size      string   `yaml:"size"`      // 尺寸（像素）
	Alpha     string   `yaml:"alpha"`     // 透明度，可以是关键帧曲线
	Spin      string   `yaml:"spin"`      // 旋转速度（度/秒）
	GravityX  float64  `yaml:"gravityX"`  // 恒定加速度 X（像素/秒²）
	GravityY  float64  `yaml:"gravityY"`  // 恒定加速度 Y（像素/秒²）
	Drag      float64  `yaml:"drag"`      // 线性阻尼系数（1/秒）
	Colors    []string `yaml:"colors"`    // 候选颜色（#rrggbb）
	MaxActive int      `yaml:"maxActive"` // 同时存活上限，0 表示使用粒子池默认值
}

// Effect 是编译后的粒子效果，生成粒子时直接采样
type Effect struct {
	Name      string
	Life      Value
	Speed     Value
	Angle     Value
	Size      Value
	Alpha     Value
	Spin      Value
	GravityX  float64
	GravityY  float64
	Drag      float64
	Colors    []colorful.Color
	MaxActive int
}

// PickColor 随机选取一个候选颜色，没有配置时返回白色
func (e *Effect) PickColor(rng *rand.Rand) colorful.Color {
	if len(e.Colors) == 0 {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	if rng == nil {
		return e.Colors[rand.Intn(len(e.Colors))]
	}
	return e.Colors[rng.Intn(len(e.Colors))]
}

// InitialAlpha 返回粒子出生时的透明度
// 曲线取首帧；固定值或范围取随机采样；未配置时为 1
func (e *Effect) InitialAlpha(rng *rand.Rand) float64 {
	if len(e.Alpha.Keyframes) > 0 {
		return e.Alpha.Keyframes[0].Value
	}
	a := e.Alpha.Sample(rng)
	if a == 0 && e.Alpha.Max == 0 {
		return 1
	}
	return a
}
