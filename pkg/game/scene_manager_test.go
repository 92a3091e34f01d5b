package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
}

// Update records that Update was called and stores the deltaTime.
func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if sm.GetCurrentScene() != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

// TestSceneManagerUpdateAndDraw verifies that Update and Draw reach the current scene.
func TestSceneManagerUpdateAndDraw(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	sm.Update(0.016)
	sm.Draw(nil)

	if !mockScene.updateCalled || mockScene.deltaTime != 0.016 {
		t.Errorf("Scene's Update was not called correctly: %+v", mockScene)
	}
	if !mockScene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

// TestSceneManagerNoScene verifies that an empty manager is a no-op.
func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(0.016)
	sm.Draw(nil)
}

// TestSceneManagerSwitchByName verifies factory creation and caching.
func TestSceneManagerSwitchByName(t *testing.T) {
	sm := NewSceneManager()
	if sm.SwitchByName(SceneText) {
		t.Error("SwitchByName without a factory should fail")
	}

	created := 0
	sm.SetSceneFactory(func(name string) Scene {
		if name != SceneWorld && name != SceneText {
			return nil
		}
		created++
		return &MockScene{}
	})

	if !sm.SwitchByName(SceneWorld) {
		t.Fatal("SwitchByName(world) failed")
	}
	world := sm.GetCurrentScene()
	if sm.CurrentName() != SceneWorld {
		t.Errorf("Expected current name %q, got %q", SceneWorld, sm.CurrentName())
	}

	sm.SwitchByName(SceneText)
	sm.SwitchByName(SceneWorld)
	if sm.GetCurrentScene() != world {
		t.Error("Switching back should reuse the cached scene")
	}
	if created != 2 {
		t.Errorf("Expected 2 scenes created, got %d", created)
	}

	if sm.SwitchByName("credits") {
		t.Error("Unknown scene name should fail")
	}
	if sm.GetCurrentScene() != world {
		t.Error("Failed switch should keep the current scene")
	}
}
