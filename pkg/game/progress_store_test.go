package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
)

// createTestGdataManager 创建用于测试的 gdata Manager
// HOME 指向临时目录，测试结束后自动清理
func createTestGdataManager(t *testing.T, testName string) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	appName := fmt.Sprintf("roadquest_test_%s_%d", testName, time.Now().UnixNano())
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		t.Skipf("Cannot create gdata manager for testing: %v", err)
	}
	return manager
}

func TestProgressStore_NilManager(t *testing.T) {
	ps := NewProgressStore(nil)
	if ps.IsRegistered() || ps.IntroSeen() {
		t.Error("Fresh store should have no flags set")
	}

	// 降级模式下所有写操作都只改内存
	if err := ps.MarkRegistered(); err != nil {
		t.Fatalf("MarkRegistered in degraded mode: %v", err)
	}
	if !ps.IsRegistered() {
		t.Error("Registered flag should be set in memory")
	}
	if err := ps.SaveDraft(FormDraft{Name: "Ada"}); err != nil {
		t.Fatalf("SaveDraft in degraded mode: %v", err)
	}
	if ps.Draft().Name != "Ada" {
		t.Error("Draft should be kept in memory")
	}
}

func TestProgressStore_PersistsFlags(t *testing.T) {
	manager := createTestGdataManager(t, "flags")

	ps1 := NewProgressStore(manager)
	if err := ps1.MarkIntroSeen(); err != nil {
		t.Fatalf("MarkIntroSeen: %v", err)
	}
	if err := ps1.MarkRegistered(); err != nil {
		t.Fatalf("MarkRegistered: %v", err)
	}

	ps2 := NewProgressStore(manager)
	if !ps2.IntroSeen() {
		t.Error("introSeen should survive a reload")
	}
	if !ps2.IsRegistered() {
		t.Error("registered should survive a reload")
	}
}

func TestProgressStore_Draft(t *testing.T) {
	manager := createTestGdataManager(t, "draft")

	ps1 := NewProgressStore(manager)
	draft := FormDraft{Name: "Grace", Email: "grace@example.org", School: "North High", Grade: "11"}
	if err := ps1.SaveDraft(draft); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}

	ps2 := NewProgressStore(manager)
	if got := ps2.Draft(); got != draft {
		t.Errorf("Draft mismatch after reload: got %+v, want %+v", got, draft)
	}

	// 报名成功后草稿被清空
	if err := ps2.MarkRegistered(); err != nil {
		t.Fatalf("MarkRegistered: %v", err)
	}
	ps3 := NewProgressStore(manager)
	if !ps3.Draft().IsEmpty() {
		t.Errorf("Draft should be cleared after registration, got %+v", ps3.Draft())
	}
}

func TestProgressStore_CorruptData(t *testing.T) {
	manager := createTestGdataManager(t, "corrupt")
	if err := manager.SaveObjectProp(progressObject, progressProperty, []byte("registered: [")); err != nil {
		t.Fatalf("seed corrupt data: %v", err)
	}

	ps := NewProgressStore(manager)
	if ps.IsRegistered() {
		t.Error("Corrupt data should fall back to empty progress")
	}
	if err := ps.Load(); err == nil {
		t.Error("Load should report the unmarshal error")
	}
}
