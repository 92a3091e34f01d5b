package scenes

import (
	"log"

	particlePkg "github.com/gonewx/roadquest/internal/particle"
	"github.com/gonewx/roadquest/pkg/config"
	"github.com/gonewx/roadquest/pkg/game"
)

// Scene 是 game.Scene 的别名，场景包内部直接使用
type Scene = game.Scene

// NewSceneFactory 返回按名称创建场景的工厂函数
// 道路场景创建失败时退回文字版
func NewSceneFactory(sm *game.SceneManager, world *config.WorldConfig, effects *particlePkg.Library, progress *game.ProgressStore) game.SceneFactory {
	return func(name string) game.Scene {
		switch name {
		case game.SceneWorld:
			scene, err := NewGameScene(sm, world, effects, progress)
			if err != nil {
				log.Printf("[Scenes] 道路场景创建失败，使用文字版: %v", err)
				return NewTextScene(sm, world, progress)
			}
			return scene
		case game.SceneText:
			return NewTextScene(sm, world, progress)
		}
		return nil
	}
}
