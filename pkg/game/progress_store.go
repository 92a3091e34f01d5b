package game

import (
	"fmt"
	"log"

	"github.com/gonewx/roadquest/pkg/utils"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// StorageAppName gdata 存储使用的应用名
// 浏览器里对应 localStorage 的 key 前缀
const StorageAppName = "roadquest"

// 存储路径常量
const (
	progressObject   = "progress"
	progressProperty = "flags"
	draftProperty    = "draft"
)

// Progress 需要跨会话保留的标记
type Progress struct {
	Registered bool `yaml:"registered"` // 已提交报名表，终点闸门打开
	IntroSeen  bool `yaml:"introSeen"`  // 已看过开场提示
}

// FormDraft 报名表草稿
// 表单本身由外部面板渲染，这里只负责把半填写的内容存下来
type FormDraft struct {
	Name   string `yaml:"name"`
	Email  string `yaml:"email"`
	School string `yaml:"school"`
	Grade  string `yaml:"grade"`
}

// IsEmpty 草稿是否没有任何内容
func (d FormDraft) IsEmpty() bool {
	return d.Name == "" && d.Email == "" && d.School == "" && d.Grade == ""
}

// ProgressStore 进度存储
// 负责报名标记、开场标记和表单草稿的加载与保存
type ProgressStore struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	progress     Progress
	draft        FormDraft
}

// OpenStorage 打开 gdata 存储
// 失败时返回 nil 并记录警告，调用方以降级模式继续运行
func OpenStorage(appName string) *gdata.Manager {
	if err := utils.EnsureStorageDir(appName); err != nil {
		log.Printf("[ProgressStore] Warning: %v", err)
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[ProgressStore] Warning: gdata unavailable: %v (progress will not persist)", err)
		return nil
	}
	if p := utils.GetStoragePath(); p != "" {
		log.Printf("[ProgressStore] 存储路径: %s", p)
	}
	return manager
}

// NewProgressStore 创建进度存储并加载已保存的数据
//
// 加载失败不是致命错误：记录警告并使用空进度
func NewProgressStore(gdataManager *gdata.Manager) *ProgressStore {
	ps := &ProgressStore{gdataManager: gdataManager}
	if err := ps.Load(); err != nil {
		log.Printf("[ProgressStore] Warning: Failed to load progress: %v (starting fresh)", err)
	}
	return ps
}

// Load 从 gdata 加载进度和草稿
func (ps *ProgressStore) Load() error {
	ps.progress = Progress{}
	ps.draft = FormDraft{}
	if ps.gdataManager == nil {
		return nil
	}

	if ps.gdataManager.ObjectPropExists(progressObject, progressProperty) {
		data, err := ps.gdataManager.LoadObjectProp(progressObject, progressProperty)
		if err != nil {
			return fmt.Errorf("failed to load progress: %w", err)
		}
		var p Progress
		if err := yaml.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("failed to unmarshal progress: %w", err)
		}
		ps.progress = p
	}

	if ps.gdataManager.ObjectPropExists(progressObject, draftProperty) {
		data, err := ps.gdataManager.LoadObjectProp(progressObject, draftProperty)
		if err != nil {
			return fmt.Errorf("failed to load form draft: %w", err)
		}
		var d FormDraft
		if err := yaml.Unmarshal(data, &d); err != nil {
			return fmt.Errorf("failed to unmarshal form draft: %w", err)
		}
		ps.draft = d
	}

	log.Printf("[ProgressStore] Loaded progress: registered=%v introSeen=%v", ps.progress.Registered, ps.progress.IntroSeen)
	return nil
}

// save 写入进度标记
func (ps *ProgressStore) save() error {
	if ps.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(&ps.progress)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}
	if err := ps.gdataManager.SaveObjectProp(progressObject, progressProperty, data); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// Progress 返回当前进度的副本
func (ps *ProgressStore) Progress() Progress {
	return ps.progress
}

// IsRegistered 是否已报名
func (ps *ProgressStore) IsRegistered() bool {
	return ps.progress.Registered
}

// MarkRegistered 记录已报名并持久化
// 报名成功后草稿不再需要，一并清除
func (ps *ProgressStore) MarkRegistered() error {
	if ps.progress.Registered {
		return nil
	}
	ps.progress.Registered = true
	if err := ps.save(); err != nil {
		return err
	}
	return ps.ClearDraft()
}

// IntroSeen 是否看过开场提示
func (ps *ProgressStore) IntroSeen() bool {
	return ps.progress.IntroSeen
}

// MarkIntroSeen 记录已看过开场提示并持久化
func (ps *ProgressStore) MarkIntroSeen() error {
	if ps.progress.IntroSeen {
		return nil
	}
	ps.progress.IntroSeen = true
	return ps.save()
}

// Draft 返回当前表单草稿
func (ps *ProgressStore) Draft() FormDraft {
	return ps.draft
}

// SaveDraft 保存表单草稿
func (ps *ProgressStore) SaveDraft(d FormDraft) error {
	ps.draft = d
	if ps.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(&d)
	if err != nil {
		return fmt.Errorf("failed to marshal form draft: %w", err)
	}
	if err := ps.gdataManager.SaveObjectProp(progressObject, draftProperty, data); err != nil {
		return fmt.Errorf("failed to save form draft: %w", err)
	}
	return nil
}

// ClearDraft 清空表单草稿
func (ps *ProgressStore) ClearDraft() error {
	if ps.draft.IsEmpty() && (ps.gdataManager == nil || !ps.gdataManager.ObjectPropExists(progressObject, draftProperty)) {
		return nil
	}
	return ps.SaveDraft(FormDraft{})
}
