// Package dispatch 负责把菜单控件返回的不透明标识翻译成领域命令。
// 外部控件每次点击只给回一个标识，这里是"界面点到了什么"和
// "领域要做什么"之间唯一的字符串编解码边界。
package dispatch

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type ActionType int

const (
	ActionToggle ActionType = iota
	ActionReset
	ActionDelete
	ActionPin
	ActionUnpin
	ActionPinnedToggle
	ActionPinnedReset
	ActionEdit
	ActionNewTask
	ActionQuit
)

// Command 解码后的用户意图，逐次分发构造，不做持久化。
type Command struct {
	Action ActionType
	TaskID uint64
}

var (
	// ErrInvalidActionFormat 动作字符串没有已知的动词前缀
	ErrInvalidActionFormat = errors.New("动作字符串格式不正确")
	// ErrParseActionIndex 动作字符串的编号后缀不是合法的非负整数
	ErrParseActionIndex = errors.New("动作编号解析失败")
)

// 编码侧：构建菜单时生成动作字符串。

const (
	NewTaskAction = "new_task"
	QuitAction    = "quit"
)

func ToggleAction(id uint64) string       { return fmt.Sprintf("toggle_%d", id) }
func ResetAction(id uint64) string        { return fmt.Sprintf("reset_%d", id) }
func DeleteAction(id uint64) string       { return fmt.Sprintf("delete_%d", id) }
func PinAction(id uint64) string          { return fmt.Sprintf("pin_%d", id) }
func UnpinAction(id uint64) string        { return fmt.Sprintf("unpin_%d", id) }
func PinnedToggleAction(id uint64) string { return fmt.Sprintf("pinned_toggle_%d", id) }
func PinnedResetAction(id uint64) string  { return fmt.Sprintf("pinned_reset_%d", id) }
func EditAction(id uint64) string         { return fmt.Sprintf("edit_%d", id) }

// 前缀匹配顺序：pinned_ 系列必须排在 toggle_/reset_ 之前
var actionPrefixes = []struct {
	prefix string
	action ActionType
}{
	{"pinned_toggle_", ActionPinnedToggle},
	{"pinned_reset_", ActionPinnedReset},
	{"toggle_", ActionToggle},
	{"reset_", ActionReset},
	{"delete_", ActionDelete},
	{"unpin_", ActionUnpin},
	{"pin_", ActionPin},
	{"edit_", ActionEdit},
}

// Decode 把 "<动词>_<编号>" 或裸动词解码为 Command。
func Decode(action string) (Command, error) {
	switch action {
	case QuitAction:
		return Command{Action: ActionQuit}, nil
	case NewTaskAction:
		return Command{Action: ActionNewTask}, nil
	}
	for _, p := range actionPrefixes {
		suffix, ok := strings.CutPrefix(action, p.prefix)
		if !ok {
			continue
		}
		id, err := strconv.ParseUint(suffix, 10, 64)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %q", ErrParseActionIndex, action)
		}
		return Command{Action: p.action, TaskID: id}, nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrInvalidActionFormat, action)
}
