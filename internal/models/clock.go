package models

import "time"

// Clock 抽象时钟读取，便于测试时注入假时钟。
// 系统时钟实际上不会失败，但时钟读取在接口上按可失败建模，
// 失败时对应的操作会被放弃且任务状态保持不变。
type Clock interface {
	Now() (time.Time, error)
}

// SystemClock 使用系统时间。
type SystemClock struct{}

func (SystemClock) Now() (time.Time, error) {
	return time.Now(), nil
}
