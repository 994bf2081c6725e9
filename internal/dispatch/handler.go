package dispatch

import (
	"log/slog"

	"github.com/yazhouio/TimeTicker/internal/models"
)

// Hooks 表现层提供的回调。命令执行只改领域状态，
// 创建/销毁固定窗口、弹输入框、刷新菜单、退出进程都交给表现层。
type Hooks struct {
	CreatePin     func(id uint64)
	RemovePin     func(id uint64)
	PromptNewTask func()
	Refresh       func()
	Quit          func()
}

// Handler 把解码后的命令落到任务列表和固定集合上。
// 找不到任务只记错误日志，过期的点击永远不会让进程崩溃。
type Handler struct {
	registry *models.Registry
	pins     *models.PinSet
	hooks    Hooks
}

func NewHandler(registry *models.Registry, pins *models.PinSet, hooks Hooks) *Handler {
	return &Handler{registry: registry, pins: pins, hooks: hooks}
}

func (h *Handler) Handle(cmd Command) {
	switch cmd.Action {
	case ActionToggle, ActionPinnedToggle:
		h.toggle(cmd.TaskID)
		h.refresh()
	case ActionReset, ActionPinnedReset:
		if err := h.registry.Reset(cmd.TaskID); err != nil {
			slog.Error("重置任务失败", "id", cmd.TaskID, "err", err)
		} else {
			slog.Info("🔄 任务已重置", "id", cmd.TaskID)
		}
		h.refresh()
	case ActionDelete:
		h.delete(cmd.TaskID)
		h.refresh()
	case ActionPin:
		h.pin(cmd.TaskID)
		h.refresh()
	case ActionUnpin:
		h.unpin(cmd.TaskID)
		h.refresh()
	case ActionEdit:
		slog.Warn("✏️ 编辑功能待实现", "id", cmd.TaskID)
	case ActionNewTask:
		if h.hooks.PromptNewTask != nil {
			h.hooks.PromptNewTask()
		}
	case ActionQuit:
		if h.hooks.Quit != nil {
			h.hooks.Quit()
		}
	}
}

func (h *Handler) toggle(id uint64) {
	running, err := h.registry.Toggle(id)
	switch {
	case err != nil:
		slog.Error("切换任务失败", "id", id, "err", err)
	case running:
		slog.Info("▶️ 任务已开始", "id", id)
	default:
		slog.Info("⏸️ 任务已暂停", "id", id)
	}
}

func (h *Handler) delete(id uint64) {
	label, err := h.registry.Remove(id)
	if err != nil {
		slog.Error("删除任务失败", "id", id, "err", err)
		return
	}
	// 被删任务的固定窗口一并清理，避免窗口指向已不存在的任务
	if h.pins.Pinned(id) {
		h.pins.Unpin(id)
		if h.hooks.RemovePin != nil {
			h.hooks.RemovePin(id)
		}
	}
	slog.Warn("🗑️ 任务已删除", "label", label)
}

func (h *Handler) pin(id uint64) {
	pinned, err := h.registry.TogglePinned(id)
	if err != nil {
		slog.Error("固定任务失败", "id", id, "err", err)
		return
	}
	if pinned {
		h.pins.Pin(id)
		if h.hooks.CreatePin != nil {
			h.hooks.CreatePin(id)
		}
		slog.Info("📌 任务已固定", "id", id)
	} else {
		h.pins.Unpin(id)
		if h.hooks.RemovePin != nil {
			h.hooks.RemovePin(id)
		}
		slog.Info("📌 任务已取消固定", "id", id)
	}
}

func (h *Handler) unpin(id uint64) {
	if err := h.registry.SetPinned(id, false); err != nil {
		slog.Error("取消固定失败", "id", id, "err", err)
		return
	}
	h.pins.Unpin(id)
	if h.hooks.RemovePin != nil {
		h.hooks.RemovePin(id)
	}
	slog.Info("📌 任务已取消固定", "id", id)
}

func (h *Handler) refresh() {
	if h.hooks.Refresh != nil {
		h.hooks.Refresh()
	}
}
