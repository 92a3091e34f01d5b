package particle

// 内置效果名称
const (
	EffectTrailPuff      = "trail_puff"
	EffectDrillGrit      = "drill_grit"
	EffectConfetti       = "confetti"
	EffectMote           = "mote"
	EffectLightningSpark = "lightning_spark"
	EffectDigDust        = "dig_dust"
	EffectDigSpark       = "dig_spark"
	EffectDigFlame       = "dig_flame"
)

// defaultEffectConfigs 与 data/effects.yaml 保持一致的内置默认值
// 配置文件加载失败时整个游戏仍然可以用这些值运行
var defaultEffectConfigs = []EffectConfig{
	{
		Name: EffectTrailPuff, Life: "[0.45 0.8]", Speed: "[20 60]", Angle: "[200 250]",
		Size: "[3 6]", Alpha: "0,0.55 1,0", Drag: 1.8, GravityY: -30,
		Colors: []string{"#d8d2c4", "#b9b3a6"}, MaxActive: 120,
	},
	{
		Name: EffectDrillGrit, Life: "[0.3 0.6]", Speed: "[60 140]", Angle: "[200 340]",
		Size: "[1.5 3]", Alpha: "0,1 1,0", GravityY: 420,
		Colors: []string{"#6b4a2b", "#8a6239", "#3f2c1b"}, MaxActive: 120,
	},
	{
		Name: EffectConfetti, Life: "[2.2 3.4]", Speed: "[220 520]", Angle: "[230 310]",
		Size: "[4 8]", Alpha: "EaseIn 0,1 .7,1 1,0", Spin: "[-540 540]", GravityY: 380, Drag: 0.9,
		MaxActive: 400,
	},
	{
		Name: EffectMote, Life: "[4 9]", Speed: "[6 18]", Angle: "[0 360]",
		Size: "[1 2.5]", Alpha: "Smooth 0,0 .3,.6 .7,.6 1,0",
		Colors: []string{"#fff3c4", "#cfe8ff"}, MaxActive: 60,
	},
	{
		Name: EffectLightningSpark, Life: "[0.35 0.9]", Speed: "[160 420]", Angle: "[0 360]",
		Size: "[1.5 3]", Alpha: "0,1 1,0", GravityY: 600, Drag: 1.2,
		Colors: []string{"#fffbe0", "#bfe3ff", "#ffe27a"}, MaxActive: 160,
	},
	{
		Name: EffectDigDust, Life: "[0.6 1.2]", Speed: "[30 90]", Angle: "[190 350]",
		Size: "[4 9]", Alpha: "0,0.7 1,0", Drag: 1.5, GravityY: -20,
		Colors: []string{"#a88963", "#c2a57e"}, MaxActive: 200,
	},
	{
		Name: EffectDigSpark, Life: "[0.25 0.55]", Speed: "[180 380]", Angle: "[200 340]",
		Size: "[1 2.5]", Alpha: "0,1 1,0", GravityY: 700,
		Colors: []string{"#ffd35c", "#ff9a3c", "#fff4c2"}, MaxActive: 200,
	},
	{
		Name: EffectDigFlame, Life: "[0.35 0.7]", Speed: "[40 110]", Angle: "[250 290]",
		Size: "[6 12]", Alpha: "EaseOut 0,0.9 1,0", Drag: 0.6, GravityY: -160,
		Colors: []string{"#ff6a1f", "#ffb02e", "#ff3d14"}, MaxActive: 200,
	},
}

// DefaultLibrary 返回内置默认效果库
func DefaultLibrary() *Library {
	lib := &Library{effects: make(map[string]*Effect, len(defaultEffectConfigs))}
	for i := range defaultEffectConfigs {
		cfg := defaultEffectConfigs[i]
		lib.effects[cfg.Name] = Compile(&cfg)
	}
	return lib
}
