package systems

import (
	"log"
	"math"

	"github.com/gonewx/roadquest/pkg/components"
	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/ecs"
	"github.com/gonewx/roadquest/pkg/entities"
)

// SkidMarkSystem 把运动学产生的刹车事件变成路面上的刹车痕实体
// 相邻刹车痕至少相隔 SkidMarkSpacing，避免持续急刹时每帧都生成一个
type SkidMarkSystem struct {
	entityManager *ecs.EntityManager
}

// NewSkidMarkSystem 创建刹车痕系统
func NewSkidMarkSystem(em *ecs.EntityManager) *SkidMarkSystem {
	return &SkidMarkSystem{entityManager: em}
}

// Add 处理一个刹车事件，创建了新的刹车痕时返回 true
func (s *SkidMarkSystem) Add(ev SkidEvent) bool {
	if s.tooClose(ev.X) {
		return false
	}
	if _, err := entities.NewSkidMarkEntity(s.entityManager, ev.X, ev.Y, ev.Direction); err != nil {
		log.Printf("[SkidMarkSystem] 创建刹车痕失败: %v", err)
		return false
	}
	return true
}

// Count 当前存在的刹车痕数量
func (s *SkidMarkSystem) Count() int {
	return len(ecs.GetEntitiesWith1[*components.SkidMarkComponent](s.entityManager))
}

// tooClose 判断 x 附近是否已有未过期的刹车痕
func (s *SkidMarkSystem) tooClose(x float64) bool {
	em := s.entityManager
	for _, id := range ecs.GetEntitiesWith2[*components.SkidMarkComponent, *components.PositionComponent](em) {
		if lt, ok := ecs.GetComponent[*components.LifetimeComponent](em, id); ok && lt.IsExpired {
			continue
		}
		pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
		if ok && math.Abs(pos.X-x) < config.SkidMarkSpacing {
			return true
		}
	}
	return false
}
