package embedded

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

// resetEmbedded 重置包级状态，避免测试之间互相影响
func resetEmbedded(t *testing.T) {
	t.Helper()
	dataFS = nil
	initialized = false
	t.Cleanup(func() {
		dataFS = nil
		initialized = false
	})
}

func TestReadFileNotInitialized(t *testing.T) {
	resetEmbedded(t)

	_, err := ReadFile("data/world.yaml")
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
	if Exists("data/world.yaml") {
		t.Error("Exists should be false before Init()")
	}
}

func TestReadFileAndExists(t *testing.T) {
	resetEmbedded(t)
	Init(fstest.MapFS{
		"data/world.yaml": &fstest.MapFile{Data: []byte("road: {}")},
	})

	if !IsInitialized() {
		t.Fatal("Expected IsInitialized() after Init()")
	}

	data, err := ReadFile("./data/world.yaml")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "road: {}" {
		t.Errorf("Unexpected content %q", data)
	}

	if !Exists("data/world.yaml") {
		t.Error("Exists should find data/world.yaml")
	}
	if Exists("data/missing.yaml") {
		t.Error("Exists should not find a missing file")
	}
	if _, err := ReadFile("assets/x.png"); err == nil {
		t.Error("Expected error for a path outside data/")
	}
}

func TestLoadPrefersDisk(t *testing.T) {
	resetEmbedded(t)
	Init(fstest.MapFS{
		"data/effects.yaml": &fstest.MapFile{Data: []byte("embedded")},
	})

	// 磁盘上没有时使用嵌入版本
	data, err := Load("data/effects.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != "embedded" {
		t.Errorf("Expected embedded content, got %q", data)
	}

	// 磁盘上存在的文件优先
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	if err := os.WriteFile(path, []byte("disk"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err = Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != "disk" {
		t.Errorf("Expected disk content, got %q", data)
	}

	if _, err := Load("data/none.yaml"); err == nil {
		t.Error("Expected error when the file exists nowhere")
	}
}
