package models

import (
	"log/slog"
	"sync"
	"time"
)

// Registry 有序的任务列表，后台定时刷新和菜单命令会并发访问，
// 所有变更都经过这里的互斥锁。任务通过单调递增的稳定 ID 寻址，
// 删除低位任务不会影响其它任务的 ID（显示顺序才按下标处理）。
type Registry struct {
	mu     sync.Mutex
	tasks  []*Task
	nextID uint64
	clock  Clock
}

func NewRegistry(clock Clock) *Registry {
	return &Registry{nextID: 1, clock: clock}
}

// Add 创建任务并追加到列表末尾，返回分配的 ID。
func (r *Registry) Add(label string, kind TaskKind) (uint64, error) {
	task, err := NewTask(label, kind, r.clock)
	if err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	task.ID = r.nextID
	r.nextID++
	r.tasks = append(r.tasks, task)
	return task.ID, nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

// find 按 ID 查找任务，调用方必须持有锁。
func (r *Registry) find(id uint64) *Task {
	for _, t := range r.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Toggle 运行中则暂停，否则开始，返回切换后的运行状态。
func (r *Registry) Toggle(id uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task := r.find(id)
	if task == nil {
		return false, ErrTaskNotFound
	}
	if task.Running {
		return false, task.Pause()
	}
	return true, task.Start()
}

func (r *Registry) Start(id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task := r.find(id)
	if task == nil {
		return ErrTaskNotFound
	}
	return task.Start()
}

func (r *Registry) Pause(id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task := r.find(id)
	if task == nil {
		return ErrTaskNotFound
	}
	return task.Pause()
}

func (r *Registry) Reset(id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task := r.find(id)
	if task == nil {
		return ErrTaskNotFound
	}
	return task.Reset()
}

// Remove 删除任务并保持剩余任务的显示顺序，返回被删任务的名称。
func (r *Registry) Remove(id uint64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.tasks {
		if t.ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return t.Label, nil
		}
	}
	return "", ErrTaskNotFound
}

// TogglePinned 翻转固定标记，返回翻转后的值。
func (r *Registry) TogglePinned(id uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task := r.find(id)
	if task == nil {
		return false, ErrTaskNotFound
	}
	task.Pinned = !task.Pinned
	return task.Pinned, nil
}

func (r *Registry) SetPinned(id uint64, pinned bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task := r.find(id)
	if task == nil {
		return ErrTaskNotFound
	}
	task.Pinned = pinned
	return nil
}

func (r *Registry) RemainingTime(id uint64) (time.Duration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task := r.find(id)
	if task == nil {
		return 0, ErrTaskNotFound
	}
	return task.RemainingTime()
}

// TaskInfo 渲染用的任务快照，界面代码只接触值拷贝。
type TaskInfo struct {
	ID        uint64
	Label     string
	Kind      KindType
	Running   bool
	Pinned    bool
	Remaining time.Duration
}

// Display 菜单里显示的文本，格式 HH:MM:SS#任务名。
func (ti TaskInfo) Display() string {
	return FormatRemaining(ti.Remaining) + "#" + ti.Label
}

// Snapshot 按显示顺序返回所有任务的快照。
// 时钟读取失败时退回上次结算的剩余时间。
func (r *Registry) Snapshot() []TaskInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	infos := make([]TaskInfo, 0, len(r.tasks))
	for _, t := range r.tasks {
		remaining, err := t.RemainingTime()
		if err != nil {
			slog.Warn("读取时钟失败，使用上次结算的剩余时间", "label", t.Label, "err", err)
			remaining = t.Remaining
		}
		infos = append(infos, TaskInfo{
			ID:        t.ID,
			Label:     t.Label,
			Kind:      t.Kind.Type,
			Running:   t.Running,
			Pinned:    t.Pinned,
			Remaining: remaining,
		})
	}
	return infos
}

// Info 单个任务的快照。
func (r *Registry) Info(id uint64) (TaskInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task := r.find(id)
	if task == nil {
		return TaskInfo{}, ErrTaskNotFound
	}
	remaining, err := task.RemainingTime()
	if err != nil {
		slog.Warn("读取时钟失败，使用上次结算的剩余时间", "label", task.Label, "err", err)
		remaining = task.Remaining
	}
	return TaskInfo{
		ID:        task.ID,
		Label:     task.Label,
		Kind:      task.Kind.Type,
		Running:   task.Running,
		Pinned:    task.Pinned,
		Remaining: remaining,
	}, nil
}
