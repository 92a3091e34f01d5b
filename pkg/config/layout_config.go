package config

// 模拟常量
// 本文件定义了与关卡数据无关的固定参数：帧时间、镜头、过场阶段时长、闪电与天气节奏等。
// 世界尺寸、路标位置等随活动变化的数据放在 data/world.yaml（见 world_config.go）。

// 窗口与帧时间
const (
	// GameWindowWidth 逻辑屏幕宽度（像素）
	GameWindowWidth = 960
	// GameWindowHeight 逻辑屏幕高度（像素）
	GameWindowHeight = 600

	// SmallScreenWidth 视口宽度低于该值时视为小屏（手机竖屏）
	SmallScreenWidth = 720.0

	// MaxFrameDt 单帧最大时间步长（秒）
	// 标签页挂起后恢复时，避免一次性推进过多导致模拟"爆炸"
	MaxFrameDt = 0.05
)

// 玩家运动学
const (
	// SkidAccelRatio |加速度| 超过 accel 的该比例时才可能产生刹车痕
	SkidAccelRatio = 0.8
	// SkidSpeedRatio |速度| 超过 maxSpeed 的该比例时才可能产生刹车痕
	SkidSpeedRatio = 0.4
	// FastLaneBoost 快车道内的最高速度倍率
	FastLaneBoost = 1.25
	// TimelineTopBound 时间线模式下玩家 Y 的下限（顶部出口）
	TimelineTopBound = 140.0
	// SkidMarkSpacing 两个刹车痕之间的最小间距（像素）
	SkidMarkSpacing = 18.0
	// SkidMarkLifetime 刹车痕存在时间（秒）
	SkidMarkLifetime = 2.4
)

// 镜头
const (
	// CameraEaseDesktop 时间线镜头缓动速率（桌面）
	CameraEaseDesktop = 3.5
	// CameraEaseSmallScreen 时间线镜头缓动速率（小屏）
	CameraEaseSmallScreen = 5.2
	// TimelineCameraLead 玩家在视口中的目标高度比例
	TimelineCameraLead = 0.45
	// TimelineCameraTail 镜头最大值 = timelineLength - viewportH*Tail + Margin
	TimelineCameraTail = 0.5
	// TimelineCameraMargin 时间线底部额外可见区域（像素）
	TimelineCameraMargin = 200.0
	// ShakeDecayPerSecond 震屏幅度每秒衰减量（像素/秒）
	ShakeDecayPerSecond = 18.0
)

// 挖掘过场
const (
	// PreparingDuration 准备阶段时长（秒）
	PreparingDuration = 1.0
	// DiggingDuration 挖掘阶段时长（秒）
	DiggingDuration = 2.0
	// DescendingDuration 下降阶段时长（秒）
	DescendingDuration = 2.5

	// 各阶段进入时的震屏峰值与持续期间的保底幅度（像素）
	PreparingShake      = 2.5
	PreparingShakeFloor = 1.0
	DiggingShake        = 9.0
	DiggingShakeFloor   = 5.0
	DescendingShake     = 3.0

	// DescentOffscreenMargin 下降阶段终点在视口底部之外的距离（像素）
	DescentOffscreenMargin = 160.0

	// 各阶段每秒期望生成的装饰粒子数
	PreparingDustRate   = 40.0
	DiggingSparkRate    = 90.0
	DiggingDustRate     = 60.0
	DescendingFlameRate = 70.0
)

// 闪电
const (
	LightningDuration       = 0.64 // 主闪持续时间（秒）
	LightningPeak           = 0.55 // 亮度在持续时间的该比例处达到峰值
	LightningAfterglow      = 4.2  // 余辉时长（秒）
	LightningFocusSlowdown  = 1.15 // 暗角聚焦比余辉衰减得更慢
	LightningDelayMin       = 7.5  // 下一次落雷最短间隔（秒）
	LightningDelayMax       = 12.0 // 下一次落雷最长间隔（秒）
	LightningSegments       = 14   // 路径内部折点数量
	LightningFlickerChance  = 0.15 // 主闪期间每帧重建路径的概率
	LightningSourceSpread   = 0.8  // 起点相对目标的水平偏移（视口宽度比例）
	LightningSourceBandMin  = 40.0 // 起点位于视口顶部之上的最小距离
	LightningSourceBandMax  = 120.0
	LightningMaxJitter      = 46.0 // 路径起点处的最大横向抖动（像素）
	LightningSparkCount     = 26
	LightningRingCount      = 2
	LightningLeakMin        = 3
	LightningLeakMax        = 5
	LightningShake          = 6.0
	LightningLeakLifeMin    = 0.5
	LightningLeakLifeMax    = 1.1
	LightningLeakLengthMin  = 24.0
	LightningLeakLengthMax  = 70.0
	LightningLeakEaseRate   = 9.0
	LightningRingLife       = 0.9
	LightningRingSpeedMin   = 90.0
	LightningRingSpeedMax   = 190.0
	DefaultFirstStrikeDelay = 4.0
)

// 天气
const (
	WeatherChangeMin          = 20.0 // 天气切换最短间隔（秒）
	WeatherChangeMax          = 40.0
	WeatherEaseRate           = 0.3   // 强度每秒变化量
	RainMaxRate               = 200.0 // 强度为 1 时每秒生成雨滴数
	RainCullMargin            = 20.0  // 雨滴越过视口底部该距离后回收
	RainSpeedY                = 820.0
	RainSpeedX                = -140.0
	DefaultFirstWeatherChange = 25.0
)

// 其它
const (
	// ProximityPadding 路标触发半径的固定附加值（像素）
	ProximityPadding = 24.0

	// AmbientMoteTarget 氛围光点的目标数量
	AmbientMoteTarget = 36
	// TrailRate 满速时每秒生成的尾气数量
	TrailRate = 28.0
	// ConfettiBurst 一次庆祝喷射的彩纸数量
	ConfettiBurst = 140
)
