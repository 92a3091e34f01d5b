package systems

import (
	"math"

	"github.com/gonewx/roadquest/pkg/components"
	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/ecs"
	"github.com/gonewx/roadquest/pkg/game"
)

// ProximityEvent 一帧的邻近检测结果
type ProximityEvent struct {
	Near     ecs.EntityID // 当前靠近的路标，0 表示没有
	Previous ecs.EntityID
	// Changed 靠近的路标与上一帧不同（边沿触发）
	Changed bool
	// Discovered 本帧第一次靠近 Near
	Discovered bool
}

// ProximitySystem 查找玩家当前靠近的路标
//
// 只比较活动空间的活动轴坐标；按配置顺序第一个满足
// |坐标 - 路标位置| <= 触发半径 + ProximityPadding 的路标生效。
type ProximitySystem struct {
	gameState     *game.GameState
	entityManager *ecs.EntityManager
	near          ecs.EntityID
}

// NewProximitySystem 创建邻近检测系统
func NewProximitySystem(gs *game.GameState, em *ecs.EntityManager) *ProximitySystem {
	return &ProximitySystem{gameState: gs, entityManager: em}
}

// Near 当前靠近的路标实体，0 表示没有
func (ps *ProximitySystem) Near() ecs.EntityID {
	return ps.near
}

// NearWaypoint 当前靠近的路标组件
func (ps *ProximitySystem) NearWaypoint() (*components.WaypointComponent, bool) {
	if ps.near == 0 {
		return nil, false
	}
	return ecs.GetComponent[*components.WaypointComponent](ps.entityManager, ps.near)
}

// Update 重新计算靠近的路标
func (ps *ProximitySystem) Update() ProximityEvent {
	gs := ps.gameState
	coord := gs.ActiveCoord()
	space := gs.ActiveSpace()

	var found ecs.EntityID
	var foundWp *components.WaypointComponent
	for _, id := range ecs.GetEntitiesWith1[*components.WaypointComponent](ps.entityManager) {
		wp, ok := ecs.GetComponent[*components.WaypointComponent](ps.entityManager, id)
		if !ok || wp.Space != space {
			continue
		}
		if math.Abs(coord-wp.Position) <= wp.TriggerRadius+config.ProximityPadding {
			found, foundWp = id, wp
			break
		}
	}

	ev := ProximityEvent{Near: found, Previous: ps.near}
	if found != ps.near {
		ev.Changed = true
		ps.near = found
	}
	if foundWp != nil && !foundWp.Discovered {
		foundWp.Discovered = true
		ev.Discovered = true
	}
	return ev
}
