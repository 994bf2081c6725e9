package main

import (
	"log/slog"
	"os"
	"time"

	"fyne.io/fyne/v2/app"

	"github.com/yazhouio/TimeTicker/internal/config"
	"github.com/yazhouio/TimeTicker/internal/models"
	"github.com/yazhouio/TimeTicker/internal/parser"
	"github.com/yazhouio/TimeTicker/internal/ui"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
	slog.Info("🚀 TimeTicker 应用程序启动")

	// 初始化配置管理器
	configManager, err := config.NewManager()
	if err != nil {
		slog.Error("加载配置失败", "err", err)
		os.Exit(1)
	}
	cfg := configManager.GetConfig()

	registry := models.NewRegistry(models.SystemClock{})

	// 按配置创建启动任务，坏条目跳过不影响其它任务
	for _, spec := range cfg.Tasks {
		label, kind, err := parser.Parse(spec, time.Now())
		if err != nil {
			slog.Error("初始任务解析失败", "spec", spec, "err", err)
			continue
		}
		if _, err := registry.Add(label, kind); err != nil {
			slog.Error("初始任务创建失败", "label", label, "err", err)
		}
	}

	myApp := app.New()
	tray := ui.NewTrayUI(myApp, registry, cfg)
	tray.Start()
	myApp.Run()
}
