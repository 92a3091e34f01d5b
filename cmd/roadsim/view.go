package main

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/game"
	"github.com/gonewx/roadquest/pkg/simulation"
)

// 地图条上的符号
const (
	glyphGround   = '='
	glyphShaft    = '|'
	glyphFastLane = '#'
	glyphPlayer   = '@'
	glyphNear     = '*'
	glyphSign     = 'T'
)

// categoryGlyph 每类路标在地图条上的字母
func categoryGlyph(category string) rune {
	switch category {
	case config.CategoryOverview:
		return 'O'
	case config.CategoryRegister:
		return 'R'
	case config.CategoryFAQ:
		return '?'
	case config.CategoryContact:
		return 'C'
	case config.CategoryEntry:
		return 'V'
	case config.CategoryMilestone:
		return 'M'
	}
	return '+'
}

// column 世界坐标映射到地图条的列
func column(pos, length float64, width int) int {
	if width <= 1 || length <= 0 {
		return 0
	}
	c := int(math.Round(pos / length * float64(width-1)))
	if c < 0 {
		return 0
	}
	if c > width-1 {
		return width - 1
	}
	return c
}

// mapStrip 当前活动空间的一行缩略图
func mapStrip(snap simulation.Snapshot, waypoints []simulation.WaypointView, world *config.WorldConfig, width int) string {
	if width < 8 {
		width = 8
	}
	strip := make([]rune, width)

	space, length, pos := config.SpaceRoad, world.Road.Length, snap.Player.X
	if snap.Mode == game.ModeTimeline {
		space, length, pos = config.SpaceTimeline, world.Timeline.Length, snap.Player.Y
	}

	fill := glyphGround
	if space == config.SpaceTimeline {
		fill = glyphShaft
	}
	for i := range strip {
		strip[i] = fill
	}
	if space == config.SpaceRoad {
		for _, z := range world.Road.FastLanes {
			for c := column(z.From, length, width); c <= column(z.To, length, width); c++ {
				strip[c] = glyphFastLane
			}
		}
		strip[column(world.Sign.X, length, width)] = glyphSign
	}

	for _, wp := range waypoints {
		if wp.Space != space {
			continue
		}
		g := categoryGlyph(wp.Category)
		if snap.Near != nil && snap.Near.ID == wp.ID {
			g = glyphNear
		}
		strip[column(wp.Position, length, width)] = g
	}
	strip[column(pos, length, width)] = glyphPlayer
	return string(strip)
}

// statusLines 快照的文字摘要
func statusLines(snap simulation.Snapshot) []string {
	near := "-"
	if snap.Near != nil {
		near = fmt.Sprintf("%s (%s)", snap.Near.Label, snap.Near.Category)
	}
	phase := "-"
	if snap.Phase != game.PhaseNone {
		phase = fmt.Sprintf("%s %.0f%%", snap.Phase, snap.Progress*100)
	}

	lines := []string{
		fmt.Sprintf("t=%7.2fs  mode=%-8s  phase=%s  paused=%v", snap.Time, snap.Mode, phase, snap.Paused),
		fmt.Sprintf("player x=%7.1f y=%7.1f  vx=%6.1f vy=%6.1f", snap.Player.X, snap.Player.Y, snap.Player.VX, snap.Player.VY),
		fmt.Sprintf("camera x=%7.1f y=%7.1f  shake=%.2f", snap.Camera.X, snap.Camera.Y, snap.Shake),
		fmt.Sprintf("near=%s", near),
		fmt.Sprintf("weather=%s %.2f (next@%.1f)  lightning=%s %.2f (next@%.1f)",
			snap.Weather.Type, snap.Weather.Intensity, snap.Weather.NextChange,
			snap.Lightning.State, snap.Lightning.Brightness, snap.Lightning.NextStrike),
		fmt.Sprintf("gate=%v intro=%v skids=%d", snap.GateOpen, snap.IntroSeen, snap.SkidMarks),
		"particles: " + particleSummary(snap.Particles),
	}
	return lines
}

// particleSummary 按池名排序的粒子数量
func particleSummary(counts map[string]int) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%d", name, counts[name])
	}
	return strings.Join(parts, " ")
}
