package models

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrClock 时钟读取失败
	ErrClock = errors.New("时钟读取失败")
	// ErrTaskNotFound 任务不存在
	ErrTaskNotFound = errors.New("任务不存在")
)

type KindType int

const (
	KindDuration KindType = iota // 时间段类型
	KindDeadline                 // 截止时间类型
)

// TaskKind 任务的计时方式，创建后不可变。
type TaskKind struct {
	Type   KindType
	Length time.Duration // 时间段类型：倒计时总长
	At     time.Time     // 截止时间类型：截止时刻
}

func DurationKind(d time.Duration) TaskKind {
	return TaskKind{Type: KindDuration, Length: d}
}

func DeadlineKind(at time.Time) TaskKind {
	return TaskKind{Type: KindDeadline, At: at}
}

// Task 一个倒计时任务。
// 不变式：Running == true 时 StartedAt 非零；
// Remaining 只在暂停、重置或创建时写入，运行期间的剩余时间在读取时计算。
type Task struct {
	ID        uint64
	Label     string
	Kind      TaskKind
	Running   bool
	StartedAt time.Time // 零值表示未记录开始时间
	Remaining time.Duration
	Pinned    bool

	clock Clock
}

func NewTask(label string, kind TaskKind, clock Clock) (*Task, error) {
	t := &Task{Label: label, Kind: kind, clock: clock}
	switch kind.Type {
	case KindDeadline:
		now, err := clock.Now()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrClock, err)
		}
		t.Remaining = clampZero(kind.At.Sub(now))
	default:
		t.Remaining = kind.Length
	}
	return t, nil
}

// Start 开始计时，重复调用无副作用。
func (t *Task) Start() error {
	if t.Running {
		return nil
	}
	now, err := t.clock.Now()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrClock, err)
	}
	t.Running = true
	t.StartedAt = now
	return nil
}

// Pause 暂停计时，把已消耗的时间结算进 Remaining。
// 时钟读取失败时任务状态保持不变。
func (t *Task) Pause() error {
	if !t.Running {
		return nil
	}
	now, err := t.clock.Now()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrClock, err)
	}
	t.Remaining = clampZero(t.Remaining - now.Sub(t.StartedAt))
	t.StartedAt = time.Time{}
	t.Running = false
	return nil
}

// Reset 停止计时并按任务类型重新计算剩余时间。
func (t *Task) Reset() error {
	var remaining time.Duration
	switch t.Kind.Type {
	case KindDeadline:
		now, err := t.clock.Now()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrClock, err)
		}
		remaining = clampZero(t.Kind.At.Sub(now))
	default:
		remaining = t.Kind.Length
	}
	t.Running = false
	t.StartedAt = time.Time{}
	t.Remaining = remaining
	return nil
}

// RemainingTime 查询当前剩余时间。
// 时间段类型按暂停结算值减去运行中消耗计算；
// 截止时间类型总是实时计算到截止时刻，不受暂停状态影响。
func (t *Task) RemainingTime() (time.Duration, error) {
	switch t.Kind.Type {
	case KindDeadline:
		now, err := t.clock.Now()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrClock, err)
		}
		return clampZero(t.Kind.At.Sub(now)), nil
	}
	if !t.Running {
		return t.Remaining, nil
	}
	now, err := t.clock.Now()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrClock, err)
	}
	return clampZero(t.Remaining - now.Sub(t.StartedAt)), nil
}

// clampZero 剩余时间不允许为负。
func clampZero(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

// FormatRemaining 把剩余时间格式化为 HH:MM:SS。
func FormatRemaining(d time.Duration) string {
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
