package particle

import (
	"fmt"
	"log"

	"github.com/gonewx/roadquest/pkg/embedded"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Library 按名称索引的粒子效果集合
type Library struct {
	effects map[string]*Effect
}

// ParseEffects 从 YAML 数据解析效果库
//
// 未知或非法的颜色会被跳过并记录警告；重复名称以后出现者为准。
// 解析结果会与 DefaultLibrary 合并，配置文件里缺失的效果回退到内置默认值。
func ParseEffects(data []byte) (*Library, error) {
	var file EffectFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse effects YAML: %w", err)
	}

	lib := DefaultLibrary()
	for i := range file.Effects {
		cfg := &file.Effects[i]
		if cfg.Name == "" {
			return nil, fmt.Errorf("effect #%d has no name", i)
		}
		lib.effects[cfg.Name] = Compile(cfg)
	}
	return lib, nil
}

// LoadEffectsFile 读取效果配置（磁盘优先，其次嵌入资源）
func LoadEffectsFile(path string) (*Library, error) {
	data, err := embedded.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read effects file %s: %w", path, err)
	}
	lib, err := ParseEffects(data)
	if err != nil {
		return nil, fmt.Errorf("invalid effects file %s: %w", path, err)
	}
	return lib, nil
}

// Compile 将原始配置编译为可直接采样的 Effect
func Compile(cfg *EffectConfig) *Effect {
	e := &Effect{
		Name:      cfg.Name,
		Life:      NewValue(cfg.Life),
		Speed:     NewValue(cfg.Speed),
		Angle:     NewValue(cfg.Angle),
		Size:      NewValue(cfg.Size),
		Alpha:     NewValue(cfg.Alpha),
		Spin:      NewValue(cfg.Spin),
		GravityX:  cfg.GravityX,
		GravityY:  cfg.GravityY,
		Drag:      cfg.Drag,
		MaxActive: cfg.MaxActive,
	}
	// 生命周期为 0 的粒子会在出生后的下一帧被立即回收，这里给一个保底值
	if e.Life.Max <= 0 {
		e.Life = Fixed(1)
	}
	if e.Size.Max <= 0 {
		e.Size = Fixed(2)
	}
	for _, hex := range cfg.Colors {
		c, err := colorful.Hex(hex)
		if err != nil {
			log.Printf("[Particle] 警告：效果 %s 的颜色 %q 无法解析: %v", cfg.Name, hex, err)
			continue
		}
		e.Colors = append(e.Colors, c)
	}
	return e
}

// Get 按名称获取效果，不存在时返回 nil
func (l *Library) Get(name string) *Effect {
	if l == nil {
		return nil
	}
	return l.effects[name]
}

// MustGet 按名称获取效果，不存在时返回一个白色点状默认效果
// 粒子效果属于纯装饰，缺失配置不应该让模拟停下来
func (l *Library) MustGet(name string) *Effect {
	if e := l.Get(name); e != nil {
		return e
	}
	return Compile(&EffectConfig{Name: name, Life: "1", Size: "2", Alpha: "0,1 1,0"})
}

// Names 返回库中所有效果名称（无序）
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.effects))
	for name := range l.effects {
		names = append(names, name)
	}
	return names
}

// Len 返回效果数量
func (l *Library) Len() int {
	return len(l.effects)
}
