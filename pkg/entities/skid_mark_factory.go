package entities

import (
	"fmt"

	"github.com/gonewx/roadquest/pkg/components"
	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/ecs"
)

// skidMarkWidth 单个刹车痕的长度（像素）
const skidMarkWidth = 14.0

// NewSkidMarkEntity 在 (x, y) 创建一个刹车痕
// 刹车痕带 LifetimeComponent，SkidMarkLifetime 秒后由 LifetimeSystem 回收
func NewSkidMarkEntity(em *ecs.EntityManager, x, y, direction float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	dir := 1.0
	if direction < 0 {
		dir = -1
	}

	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(id, &components.SkidMarkComponent{
		Width:     skidMarkWidth,
		Direction: dir,
	})
	em.AddComponent(id, &components.LifetimeComponent{
		MaxLifetime: config.SkidMarkLifetime,
	})
	return id, nil
}
