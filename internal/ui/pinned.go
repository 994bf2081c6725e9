package ui

import (
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/yazhouio/TimeTicker/internal/dispatch"
	"github.com/yazhouio/TimeTicker/internal/models"
)

var (
	timeColor = color.NRGBA{R: 25, G: 25, B: 25, A: 255} // 时间文本
	textColor = color.NRGBA{R: 40, G: 40, B: 40, A: 255} // 普通文本
)

// pinnedWindow 固定任务的独立常驻窗口，相当于它在主菜单之外的第二块显示面。
type pinnedWindow struct {
	win        fyne.Window
	timeLabel  *canvas.Text
	ctrlBtn    *widget.Button // 开始/暂停，仅时长类型
	isDuration bool
}

func (u *TrayUI) createPinnedWindow(id uint64) {
	info, err := u.registry.Info(id)
	if err != nil {
		slog.Error("任务不存在，无法创建固定窗口", "id", id)
		return
	}

	w := u.app.NewWindow(info.Label)
	pw := &pinnedWindow{win: w, isDuration: info.Kind == models.KindDuration}

	pw.timeLabel = canvas.NewText(info.Display(), timeColor)
	pw.timeLabel.TextStyle = fyne.TextStyle{Bold: true}
	pw.timeLabel.TextSize = 24
	pw.timeLabel.Alignment = fyne.TextAlignCenter

	controls := container.NewHBox()
	if pw.isDuration {
		caption := "开始"
		icon := theme.MediaPlayIcon()
		if info.Running {
			caption = "暂停"
			icon = theme.MediaPauseIcon()
		}
		// 固定窗口的控件用 pinned_ 前缀动作，主菜单重建不影响它们
		pw.ctrlBtn = widget.NewButtonWithIcon(caption, icon, u.action(dispatch.PinnedToggleAction(id)))
		pw.ctrlBtn.Importance = widget.HighImportance
		controls.Add(pw.ctrlBtn)
		controls.Add(widget.NewButtonWithIcon("重置", theme.MediaReplayIcon(), u.action(dispatch.PinnedResetAction(id))))
	}
	controls.Add(widget.NewButton("取消固定", u.action(dispatch.UnpinAction(id))))

	w.SetContent(container.NewVBox(
		container.NewPadded(pw.timeLabel),
		container.NewCenter(controls),
	))
	w.Resize(fyne.NewSize(240, 110))
	// 关窗等同于取消固定
	w.SetCloseIntercept(func() {
		u.handler.Handle(dispatch.Command{Action: dispatch.ActionUnpin, TaskID: id})
	})
	w.Show()

	u.mu.Lock()
	u.pinnedWins[id] = pw
	u.mu.Unlock()
}

func (u *TrayUI) removePinnedWindow(id uint64) {
	u.mu.Lock()
	pw := u.pinnedWins[id]
	delete(u.pinnedWins, id)
	u.mu.Unlock()
	if pw != nil {
		pw.win.Close()
	}
}
