package ui

import (
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/yazhouio/TimeTicker/internal/parser"
)

// showNewTaskDialog 新建任务输入框。
// 解析失败只提示用户，不会改动任务列表。
func (u *TrayUI) showNewTaskDialog() {
	w := u.app.NewWindow("新建任务")

	hint := widget.NewLabel("请输入任务信息：\n\n格式示例：\n• 时间段：1h30m#学习\n• 截止时间：@19:00#工作\n\n其中 # 后面是任务名称（可选）")

	entry := widget.NewEntry()
	entry.SetText("1h#新任务")

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "任务", Widget: entry},
		},
		OnSubmit: func() {
			label, kind, err := parser.Parse(entry.Text, time.Now())
			if err != nil {
				dialog.ShowError(fmt.Errorf("解析任务输入失败：%w", err), w)
				return
			}
			if _, err := u.registry.Add(label, kind); err != nil {
				dialog.ShowError(fmt.Errorf("创建任务失败：%w", err), w)
				return
			}
			slog.Info("✅ 成功创建任务", "label", label)
			u.refreshMenu()
			w.Close()
		},
		OnCancel: func() {
			slog.Info("用户取消了新建任务")
			w.Close()
		},
	}

	w.SetContent(container.NewVBox(hint, form))
	w.Resize(fyne.NewSize(340, 240))
	w.Show()
}
