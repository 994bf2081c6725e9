package ui

import (
	"log/slog"
	"os"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/google/uuid"

	"github.com/yazhouio/TimeTicker/internal/config"
	"github.com/yazhouio/TimeTicker/internal/dispatch"
	"github.com/yazhouio/TimeTicker/internal/models"
)

// TrayUI 系统托盘表现层：主菜单、固定窗口、新建任务输入框和秒级刷新。
// 领域状态的变更全部经过 dispatch.Handler，这里只负责画。
type TrayUI struct {
	app      fyne.App
	desk     desktop.App
	registry *models.Registry
	pins     *models.PinSet
	router   *dispatch.Router
	handler  *dispatch.Handler
	cfg      *config.Config

	mu         sync.Mutex // 保护下面的菜单和窗口表，事件回调和 ticker 都会访问
	menu       *fyne.Menu
	taskItems  map[uint64]*fyne.MenuItem // 任务 ID 到时间显示项的映射，用于更新文本
	ctrlItems  map[uint64]*fyne.MenuItem // 任务 ID 到开始/暂停项的映射
	pinnedWins map[uint64]*pinnedWindow  // 固定任务的独立窗口
}

func NewTrayUI(app fyne.App, registry *models.Registry, cfg *config.Config) *TrayUI {
	u := &TrayUI{
		app:        app,
		registry:   registry,
		pins:       models.NewPinSet(),
		router:     dispatch.NewRouter(),
		cfg:        cfg,
		taskItems:  make(map[uint64]*fyne.MenuItem),
		ctrlItems:  make(map[uint64]*fyne.MenuItem),
		pinnedWins: make(map[uint64]*pinnedWindow),
	}
	if desk, ok := app.(desktop.App); ok {
		u.desk = desk
	} else {
		slog.Warn("当前平台不支持系统托盘")
	}
	u.handler = dispatch.NewHandler(registry, u.pins, dispatch.Hooks{
		CreatePin:     u.createPinnedWindow,
		RemovePin:     u.removePinnedWindow,
		PromptNewTask: u.showNewTaskDialog,
		Refresh:       u.refreshMenu,
		Quit:          func() { os.Exit(0) },
	})
	return u
}

// Start 建起托盘菜单并启动秒级刷新。
func (u *TrayUI) Start() {
	if u.cfg.Notify.Sound {
		if err := initAudio(u.cfg.Notify.SoundFile, u.cfg.Notify.Volume); err != nil {
			slog.Warn("提示音初始化失败", "file", u.cfg.Notify.SoundFile, "err", err)
		}
	}
	u.refreshMenu()
	go u.runTicker()
}

// action 给一个菜单控件铸造不透明标识，登记动作后返回点击回调。
// 控件只知道自己的标识，点击经路由表翻译成领域命令。
func (u *TrayUI) action(action string) func() {
	id := uuid.NewString()
	u.router.Register(id, action)
	return func() { u.onMenuAction(id) }
}

func (u *TrayUI) onMenuAction(id string) {
	action, ok := u.router.Resolve(id)
	if !ok {
		slog.Warn("❌ 未找到菜单标识对应的动作", "id", id)
		return
	}
	cmd, err := dispatch.Decode(action)
	if err != nil {
		slog.Warn("动作字符串解码失败", "action", action, "err", err)
		return
	}
	u.handler.Handle(cmd)
}

// refreshMenu 整体重建主菜单。固定窗口控件的标识经 Rebuild 保留，
// 其余映射随旧菜单一起丢弃。
func (u *TrayUI) refreshMenu() {
	if u.desk == nil {
		return
	}
	u.router.Rebuild("pinned_", "unpin_")
	menu := u.buildMenu()
	u.mu.Lock()
	u.menu = menu
	u.mu.Unlock()
	u.desk.SetSystemTrayMenu(menu)
}

func (u *TrayUI) buildMenu() *fyne.Menu {
	u.mu.Lock()
	u.taskItems = make(map[uint64]*fyne.MenuItem)
	u.ctrlItems = make(map[uint64]*fyne.MenuItem)
	u.mu.Unlock()

	var items []*fyne.MenuItem
	for _, info := range u.registry.Snapshot() {
		items = append(items, u.buildTaskItem(info))
	}

	items = append(items, fyne.NewMenuItemSeparator())
	items = append(items, fyne.NewMenuItem("新建任务", u.action(dispatch.NewTaskAction)))
	items = append(items, fyne.NewMenuItemSeparator())
	items = append(items, fyne.NewMenuItem("退出", u.action(dispatch.QuitAction)))
	return fyne.NewMenu(u.cfg.App.Name, items...)
}

// buildTaskItem 每个任务一个子菜单：时长类型带开始/暂停和重置，
// 截止时间类型不需要这些控制项。
func (u *TrayUI) buildTaskItem(info models.TaskInfo) *fyne.MenuItem {
	var sub []*fyne.MenuItem

	if info.Kind == models.KindDuration {
		caption := "开始"
		if info.Running {
			caption = "暂停"
		}
		ctrl := fyne.NewMenuItem(caption, u.action(dispatch.ToggleAction(info.ID)))
		sub = append(sub, ctrl)
		sub = append(sub, fyne.NewMenuItem("重置", u.action(dispatch.ResetAction(info.ID))))
		sub = append(sub, fyne.NewMenuItemSeparator())

		u.mu.Lock()
		u.ctrlItems[info.ID] = ctrl
		u.mu.Unlock()
	}

	sub = append(sub, fyne.NewMenuItem("新增", u.action(dispatch.NewTaskAction)))
	sub = append(sub, fyne.NewMenuItem("编辑", u.action(dispatch.EditAction(info.ID))))
	sub = append(sub, fyne.NewMenuItem("删除", u.action(dispatch.DeleteAction(info.ID))))
	pinLabel := "固定"
	if info.Pinned {
		pinLabel = "取消固定"
	}
	sub = append(sub, fyne.NewMenuItem(pinLabel, u.action(dispatch.PinAction(info.ID))))

	item := fyne.NewMenuItem(info.Display(), nil)
	item.ChildMenu = fyne.NewMenu("", sub...)

	u.mu.Lock()
	u.taskItems[info.ID] = item
	u.mu.Unlock()
	return item
}
