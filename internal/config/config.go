package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App    AppConfig    `yaml:"app"`
	Notify NotifyConfig `yaml:"notify"`
	Tasks  []string     `yaml:"tasks"`
}

type AppConfig struct {
	Name     string `yaml:"name"`
	Language string `yaml:"language"`
}

type NotifyConfig struct {
	Sound     bool    `yaml:"sound"`
	SoundFile string  `yaml:"sound_file"`
	Volume    float64 `yaml:"volume"`
}

// 默认配置。tasks 是启动时创建的任务速记，
// 格式与新建任务输入框一致（1h30m#名称 或 @19:00#名称）。
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:     "Time Ticker",
			Language: "zh-CN",
		},
		Notify: NotifyConfig{
			Sound:     true,
			SoundFile: "assets/complete.wav",
			Volume:    1.0,
		},
		Tasks: []string{
			"1h#工作1",
			"30m#学习1",
			"2h#工作2",
			"15m#学习2",
			"3h#工作3",
			"45m#学习3",
		},
	}
}

type Manager struct {
	config     *Config
	configPath string
}

func NewManager() (*Manager, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(configDir, "config.yaml")
	manager := &Manager{
		configPath: configPath,
	}

	// 加载或创建配置
	if err := manager.loadConfig(); err != nil {
		manager.config = DefaultConfig()
		if err := manager.SaveConfig(); err != nil {
			return nil, err
		}
	}

	return manager, nil
}

func (m *Manager) loadConfig() error {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return err
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return err
	}

	m.config = config
	return nil
}

func (m *Manager) SaveConfig() error {
	data, err := yaml.Marshal(m.config)
	if err != nil {
		return err
	}

	// 确保配置目录存在
	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	return os.WriteFile(m.configPath, data, 0644)
}

func (m *Manager) GetConfig() *Config {
	return m.config
}

// 获取配置文件目录
func getConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	// 在用户目录下创建应用配置目录
	configDir := filepath.Join(homeDir, ".timeticker")
	return configDir, nil
}

// 更新通知设置的便捷方法
func (m *Manager) UpdateNotifyConfig(config NotifyConfig) error {
	m.config.Notify = config
	return m.SaveConfig()
}
