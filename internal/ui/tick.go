package ui

import (
	"log/slog"
	"time"

	"github.com/yazhouio/TimeTicker/internal/models"
)

// runTicker 后台每秒刷新一次显示：主菜单文本、控制按钮标题、
// 固定窗口时间，并在倒计时穿过零点时播放提示音。
// 只读任务快照，不在锁内碰任何控件。
func (u *TrayUI) runTicker() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	lastRemaining := make(map[uint64]time.Duration)
	for range ticker.C {
		infos := u.registry.Snapshot()
		u.updateMenuTexts(infos)
		u.updatePinnedWindows(infos)

		for _, info := range infos {
			prev, seen := lastRemaining[info.ID]
			if seen && prev > 0 && info.Remaining == 0 {
				slog.Info("⏰ 倒计时结束", "label", info.Label)
				if u.cfg.Notify.Sound {
					go playCompleteSound()
				}
			}
			lastRemaining[info.ID] = info.Remaining
		}
	}
}

// updateMenuTexts 原位改菜单项文本，不整体重建，避免正打开的菜单被收起。
func (u *TrayUI) updateMenuTexts(infos []models.TaskInfo) {
	u.mu.Lock()
	menu := u.menu
	for _, info := range infos {
		if item, ok := u.taskItems[info.ID]; ok {
			item.Label = info.Display()
		}
		if ctrl, ok := u.ctrlItems[info.ID]; ok {
			if info.Running {
				ctrl.Label = "暂停"
			} else {
				ctrl.Label = "开始"
			}
		}
	}
	u.mu.Unlock()

	if menu != nil {
		menu.Refresh()
	}
}

func (u *TrayUI) updatePinnedWindows(infos []models.TaskInfo) {
	u.mu.Lock()
	wins := make(map[uint64]*pinnedWindow, len(u.pinnedWins))
	for id, pw := range u.pinnedWins {
		wins[id] = pw
	}
	u.mu.Unlock()

	for _, info := range infos {
		pw, ok := wins[info.ID]
		if !ok {
			continue
		}
		pw.timeLabel.Text = info.Display()
		pw.timeLabel.Refresh()
		if pw.ctrlBtn != nil {
			if info.Running {
				pw.ctrlBtn.SetText("暂停")
			} else {
				pw.ctrlBtn.SetText("开始")
			}
		}
	}
}
