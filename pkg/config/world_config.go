package config

import (
	"fmt"

	"github.com/gonewx/roadquest/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// 路标所在的运动空间
const (
	SpaceRoad     = "road"
	SpaceTimeline = "timeline"
)

// 路标类别
// CategoryEntry 是唯一会触发挖掘过场的类别，其余类别交给外部面板系统处理
const (
	CategoryOverview  = "overview"
	CategoryRegister  = "register"
	CategoryFAQ       = "faq"
	CategoryContact   = "contact"
	CategoryEntry     = "entry"
	CategoryMilestone = "milestone"
)

// DefaultWorldConfigPath 默认世界配置路径（嵌入资源）
const DefaultWorldConfigPath = "data/world.yaml"

// WorldConfig 世界配置
// 定义道路与时间线的尺寸、玩家手感参数以及所有路标
type WorldConfig struct {
	Viewport  ViewportConfig   `yaml:"viewport"`
	Player    PlayerConfig     `yaml:"player"`
	Road      RoadConfig       `yaml:"road"`
	Timeline  TimelineConfig   `yaml:"timeline"`
	Sign      SignConfig       `yaml:"sign"`
	Weather   WeatherConfig    `yaml:"weather"`
	Lightning LightningConfig  `yaml:"lightning"`
	Waypoints []WaypointConfig `yaml:"waypoints"`
}

// ViewportConfig 视口尺寸（CSS 像素 / 逻辑像素）
type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig 玩家包围盒半尺寸
type PlayerConfig struct {
	HalfW float64 `yaml:"halfW"`
	HalfH float64 `yaml:"halfH"`
}

// KinematicsConfig 单轴运动参数
type KinematicsConfig struct {
	Accel    float64 `yaml:"accel"`    // 加速度（像素/秒²）
	Friction float64 `yaml:"friction"` // 无输入时的减速度（像素/秒²）
	MaxSpeed float64 `yaml:"maxSpeed"` // 最高速度（像素/秒）
}

// Zone 道路上的一段区间 [From, To]
type Zone struct {
	From float64 `yaml:"from"`
	To   float64 `yaml:"to"`
}

// Contains 判断 x 是否位于区间内
func (z Zone) Contains(x float64) bool {
	return x >= z.From && x <= z.To
}

// RoadConfig 水平道路
type RoadConfig struct {
	Length     float64          `yaml:"length"`
	LaneY      float64          `yaml:"laneY"`      // 道路模式下玩家固定的 Y
	StartX     float64          `yaml:"startX"`     // 出生点
	MarginLow  float64          `yaml:"marginLow"`  // 左侧可达边界
	MarginHigh float64          `yaml:"marginHigh"` // 右侧保留距离
	FastLanes  []Zone           `yaml:"fastLanes"`
	Kinematics KinematicsConfig `yaml:"kinematics"`
}

// TimelineConfig 垂直时间线（地下）
type TimelineConfig struct {
	Length     float64          `yaml:"length"`
	ShaftX     float64          `yaml:"shaftX"` // 时间线模式下玩家固定的 X（屏幕坐标）
	Kinematics KinematicsConfig `yaml:"kinematics"`
}

// SignConfig 闪电落点（路牌）的世界坐标
type SignConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// WeatherConfig 天气初始状态
type WeatherConfig struct {
	StartRaining bool    `yaml:"startRaining"`
	FirstChange  float64 `yaml:"firstChange"` // 首次切换时间（秒）
}

// LightningConfig 闪电初始调度
type LightningConfig struct {
	FirstStrike float64 `yaml:"firstStrike"` // 首次落雷时间（秒）
	Disabled    bool    `yaml:"disabled"`
}

// WaypointConfig 单个路标
type WaypointConfig struct {
	ID            string   `yaml:"id"`
	Label         string   `yaml:"label"`
	Category      string   `yaml:"category"`
	Space         string   `yaml:"space"`         // "road" 或 "timeline"，默认 road
	Position      float64  `yaml:"position"`      // road: 世界 X；timeline: 世界 Y
	TriggerRadius float64  `yaml:"triggerRadius"` // 触发半宽
	Title         string   `yaml:"title"`         // 面板标题（外部面板与文字版使用）
	Body          []string `yaml:"body"`          // 面板正文
}

// ParseWorldConfig 从 YAML 数据解析世界配置
func ParseWorldConfig(data []byte) (*WorldConfig, error) {
	var cfg WorldConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse world config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateWorldConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid world config: %w", err)
	}
	return &cfg, nil
}

// LoadWorldConfig 读取并解析世界配置
// 路径先在磁盘上查找，找不到时使用嵌入资源
func LoadWorldConfig(path string) (*WorldConfig, error) {
	data, err := embedded.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world config %s: %w", path, err)
	}
	cfg, err := ParseWorldConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// applyDefaults 为缺失的可选字段设置默认值
func applyDefaults(cfg *WorldConfig) {
	def := DefaultWorldConfig()

	if cfg.Viewport.Width <= 0 {
		cfg.Viewport.Width = def.Viewport.Width
	}
	if cfg.Viewport.Height <= 0 {
		cfg.Viewport.Height = def.Viewport.Height
	}
	if cfg.Player.HalfW <= 0 {
		cfg.Player.HalfW = def.Player.HalfW
	}
	if cfg.Player.HalfH <= 0 {
		cfg.Player.HalfH = def.Player.HalfH
	}

	if cfg.Road.Length <= 0 {
		cfg.Road.Length = def.Road.Length
	}
	if cfg.Road.LaneY <= 0 {
		cfg.Road.LaneY = def.Road.LaneY
	}
	if cfg.Road.MarginLow <= 0 {
		cfg.Road.MarginLow = def.Road.MarginLow
	}
	if cfg.Road.MarginHigh <= 0 {
		cfg.Road.MarginHigh = def.Road.MarginHigh
	}
	if cfg.Road.StartX <= 0 {
		cfg.Road.StartX = cfg.Road.MarginLow
	}
	applyKinematicsDefaults(&cfg.Road.Kinematics, def.Road.Kinematics)

	if cfg.Timeline.Length <= 0 {
		cfg.Timeline.Length = def.Timeline.Length
	}
	if cfg.Timeline.ShaftX <= 0 {
		cfg.Timeline.ShaftX = cfg.Viewport.Width / 2
	}
	applyKinematicsDefaults(&cfg.Timeline.Kinematics, def.Timeline.Kinematics)

	if cfg.Weather.FirstChange <= 0 {
		cfg.Weather.FirstChange = DefaultFirstWeatherChange
	}
	if cfg.Lightning.FirstStrike <= 0 {
		cfg.Lightning.FirstStrike = DefaultFirstStrikeDelay
	}

	for i := range cfg.Waypoints {
		wp := &cfg.Waypoints[i]
		if wp.Space == "" {
			wp.Space = SpaceRoad
		}
		if wp.TriggerRadius <= 0 {
			wp.TriggerRadius = 80
		}
		if wp.Title == "" {
			wp.Title = wp.Label
		}
		if wp.ID == "" {
			wp.ID = fmt.Sprintf("%s-%d", wp.Category, i)
		}
	}
}

func applyKinematicsDefaults(k *KinematicsConfig, def KinematicsConfig) {
	if k.Accel <= 0 {
		k.Accel = def.Accel
	}
	if k.Friction <= 0 {
		k.Friction = def.Friction
	}
	if k.MaxSpeed <= 0 {
		k.MaxSpeed = def.MaxSpeed
	}
}

// validateWorldConfig 验证配置的完整性和合法性
func validateWorldConfig(cfg *WorldConfig) error {
	if cfg.Road.Length < cfg.Viewport.Width {
		return fmt.Errorf("road length %.0f is shorter than the viewport width %.0f", cfg.Road.Length, cfg.Viewport.Width)
	}
	if cfg.Road.MarginLow+cfg.Road.MarginHigh >= cfg.Road.Length {
		return fmt.Errorf("road margins (%.0f + %.0f) leave no drivable range", cfg.Road.MarginLow, cfg.Road.MarginHigh)
	}
	if cfg.Timeline.Length <= TimelineTopBound {
		return fmt.Errorf("timeline length must be greater than %.0f, got %.0f", TimelineTopBound, cfg.Timeline.Length)
	}

	validCategories := map[string]bool{
		CategoryOverview:  true,
		CategoryRegister:  true,
		CategoryFAQ:       true,
		CategoryContact:   true,
		CategoryEntry:     true,
		CategoryMilestone: true,
	}

	seen := make(map[string]bool, len(cfg.Waypoints))
	entries := 0
	for i, wp := range cfg.Waypoints {
		if wp.Label == "" {
			return fmt.Errorf("waypoints[%d]: label is required", i)
		}
		if !validCategories[wp.Category] {
			return fmt.Errorf("waypoints[%d]: unknown category %q", i, wp.Category)
		}
		if seen[wp.ID] {
			return fmt.Errorf("waypoints[%d]: duplicate id %q", i, wp.ID)
		}
		seen[wp.ID] = true

		switch wp.Space {
		case SpaceRoad:
			if wp.Position < 0 || wp.Position > cfg.Road.Length {
				return fmt.Errorf("waypoints[%d]: position %.0f outside road [0, %.0f]", i, wp.Position, cfg.Road.Length)
			}
		case SpaceTimeline:
			if wp.Position < 0 || wp.Position > cfg.Timeline.Length {
				return fmt.Errorf("waypoints[%d]: position %.0f outside timeline [0, %.0f]", i, wp.Position, cfg.Timeline.Length)
			}
			if wp.Category == CategoryEntry {
				return fmt.Errorf("waypoints[%d]: entry way-point must be on the road", i)
			}
		default:
			return fmt.Errorf("waypoints[%d]: space must be road or timeline, got %q", i, wp.Space)
		}

		if wp.Category == CategoryEntry {
			entries++
		}
	}
	if entries > 1 {
		return fmt.Errorf("at most one entry way-point is allowed, got %d", entries)
	}

	for i, z := range cfg.Road.FastLanes {
		if z.To <= z.From {
			return fmt.Errorf("fastLanes[%d]: to (%.0f) must be greater than from (%.0f)", i, z.To, z.From)
		}
	}
	return nil
}

// DefaultWorldConfig 内置默认世界
// 与 data/world.yaml 保持一致；配置缺失或损坏时游戏使用这份数据继续运行
func DefaultWorldConfig() *WorldConfig {
	return &WorldConfig{
		Viewport: ViewportConfig{Width: GameWindowWidth, Height: GameWindowHeight},
		Player:   PlayerConfig{HalfW: 36, HalfH: 22},
		Road: RoadConfig{
			Length:     4800,
			LaneY:      430,
			StartX:     120,
			MarginLow:  60,
			MarginHigh: 40,
			FastLanes:  []Zone{{From: 1500, To: 2000}},
			Kinematics: KinematicsConfig{Accel: 600, Friction: 900, MaxSpeed: 420},
		},
		Timeline: TimelineConfig{
			Length:     3200,
			ShaftX:     GameWindowWidth / 2,
			Kinematics: KinematicsConfig{Accel: 700, Friction: 1000, MaxSpeed: 360},
		},
		Sign:      SignConfig{X: 4300, Y: 250},
		Weather:   WeatherConfig{FirstChange: DefaultFirstWeatherChange},
		Lightning: LightningConfig{FirstStrike: DefaultFirstStrikeDelay},
		Waypoints: []WaypointConfig{
			{ID: "overview", Label: "Overview", Category: CategoryOverview, Space: SpaceRoad, Position: 520, TriggerRadius: 90, Title: "Overview",
				Body: []string{"A week of hands-on science for curious students.", "Drive on to learn more."}},
			{ID: "register", Label: "Register", Category: CategoryRegister, Space: SpaceRoad, Position: 1300, TriggerRadius: 90, Title: "Register",
				Body: []string{"Reserve your seat for the outreach day."}},
			{ID: "faq", Label: "FAQ", Category: CategoryFAQ, Space: SpaceRoad, Position: 2300, TriggerRadius: 90, Title: "Questions",
				Body: []string{"Who can join? Students aged 12-18.", "Is it free? Yes."}},
			{ID: "contact", Label: "Contact", Category: CategoryContact, Space: SpaceRoad, Position: 3100, TriggerRadius: 90, Title: "Contact",
				Body: []string{"outreach@example.org"}},
			{ID: "dig", Label: "Dig Deeper", Category: CategoryEntry, Space: SpaceRoad, Position: 3900, TriggerRadius: 100, Title: "Timeline",
				Body: []string{"Press interact to dig into the event timeline."}},
			{ID: "kickoff", Label: "Kick-off", Category: CategoryMilestone, Space: SpaceTimeline, Position: 480, TriggerRadius: 110, Title: "Kick-off",
				Body: []string{"Registration opens."}},
			{ID: "workshops", Label: "Workshops", Category: CategoryMilestone, Space: SpaceTimeline, Position: 1100, TriggerRadius: 110, Title: "Workshops",
				Body: []string{"Lab sessions with mentors."}},
			{ID: "showcase", Label: "Showcase", Category: CategoryMilestone, Space: SpaceTimeline, Position: 1900, TriggerRadius: 110, Title: "Showcase",
				Body: []string{"Teams present their projects."}},
			{ID: "awards", Label: "Awards", Category: CategoryMilestone, Space: SpaceTimeline, Position: 2700, TriggerRadius: 110, Title: "Awards",
				Body: []string{"Closing ceremony."}},
		},
	}
}

// RoadBounds 返回道路模式下玩家 X 的可达区间
func (c *WorldConfig) RoadBounds() (lo, hi float64) {
	return c.Road.MarginLow, c.Road.Length - c.Road.MarginHigh
}

// TimelineBounds 返回时间线模式下玩家 Y 的可达区间
func (c *WorldConfig) TimelineBounds() (lo, hi float64) {
	return TimelineTopBound, c.Timeline.Length
}

// InFastLane 判断道路 X 是否处于快车道
func (c *WorldConfig) InFastLane(x float64) bool {
	for _, z := range c.Road.FastLanes {
		if z.Contains(x) {
			return true
		}
	}
	return false
}

// EntryWaypoint 返回入口路标，不存在时返回 nil
func (c *WorldConfig) EntryWaypoint() *WaypointConfig {
	for i := range c.Waypoints {
		if c.Waypoints[i].Category == CategoryEntry {
			return &c.Waypoints[i]
		}
	}
	return nil
}
