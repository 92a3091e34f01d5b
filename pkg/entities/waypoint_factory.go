package entities

import (
	"fmt"

	"github.com/gonewx/roadquest/pkg/components"
	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/ecs"
)

// NewWaypointEntity 创建一个路标实体
//
// 参数:
//   - em: 实体管理器
//   - world: 世界配置（用于计算路标的二维绘制坐标）
//   - wp: 路标配置
//
// 道路路标绘制在车道上 (Position, LaneY)，时间线路标绘制在竖井上 (ShaftX, Position)。
func NewWaypointEntity(em *ecs.EntityManager, world *config.WorldConfig, wp config.WaypointConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if world == nil {
		return 0, fmt.Errorf("world config cannot be nil")
	}

	x, y := wp.Position, world.Road.LaneY
	if wp.Space == config.SpaceTimeline {
		x, y = world.Timeline.ShaftX, wp.Position
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.WaypointComponent{
		ID:            wp.ID,
		Label:         wp.Label,
		Category:      wp.Category,
		Space:         wp.Space,
		Position:      wp.Position,
		TriggerRadius: wp.TriggerRadius,
		Title:         wp.Title,
		Body:          append([]string(nil), wp.Body...),
	})
	return id, nil
}

// CreateWaypoints 按配置顺序创建所有路标实体
// 实体 ID 单调递增，因此按 ID 查询即为配置顺序
func CreateWaypoints(em *ecs.EntityManager, world *config.WorldConfig) ([]ecs.EntityID, error) {
	if world == nil {
		return nil, fmt.Errorf("world config cannot be nil")
	}
	ids := make([]ecs.EntityID, 0, len(world.Waypoints))
	for i, wp := range world.Waypoints {
		id, err := NewWaypointEntity(em, world, wp)
		if err != nil {
			return ids, fmt.Errorf("waypoint %d (%s): %w", i, wp.ID, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
