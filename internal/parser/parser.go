// Package parser 解析新建任务的速记输入。
// 语法：时间部分["#"任务名]，时间部分是 "1h30m" 这样的时长，
// 或以 @ 开头的 "@19:00" 截止时间（24 小时制，取下一次出现的该时刻）。
package parser

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/yazhouio/TimeTicker/internal/models"
)

// DefaultLabel 未提供任务名时的默认名称。
const DefaultLabel = "未命名"

var (
	// ErrInvalidFormat 输入不符合时长或截止时间语法
	ErrInvalidFormat = errors.New("输入格式不正确")
	// ErrMissingTimeInput 时间部分为空
	ErrMissingTimeInput = errors.New("缺少时间输入")
	// ErrInvalidDurationUnit 出现 h、m 以外的时间单位。
	// 当前的分词正则不会匹配出别的单位，保留此错误是为扩展预留的契约。
	ErrInvalidDurationUnit = errors.New("不支持的时间单位")
	// ErrZeroDuration 所有时长片段加起来为零，例如 "0h0m"
	ErrZeroDuration = errors.New("时长不能为零")
	// ErrTimezoneConversion 本地时区换算失败。
	// Go 的 time.Date 会把夏令时空档归一化而不是报错，
	// 所以当前语法下不可达，保留此错误与整体错误分类保持一致。
	ErrTimezoneConversion = errors.New("时区转换失败")
)

// 时长片段：数字后跟 h 或 m，数字和单位之间允许空白
var durationToken = regexp.MustCompile(`(\d+)\s*([hm])`)

// 单个片段能表示的上限，超出后纳秒数会绕回负值
const (
	maxHours   = uint64(math.MaxInt64 / int64(time.Hour))
	maxMinutes = uint64(math.MaxInt64 / int64(time.Minute))
)

// Parse 把输入解析为 (任务名, 计时方式)。
// 相同的 now 下结果可复现；解析失败时不构造任何任务。
func Parse(input string, now time.Time) (string, models.TaskKind, error) {
	timePart := input
	label := DefaultLabel
	if i := strings.Index(input, "#"); i >= 0 {
		timePart = input[:i]
		if name := strings.TrimSpace(input[i+1:]); name != "" {
			label = name
		}
	}
	timePart = strings.TrimSpace(timePart)
	if timePart == "" {
		return "", models.TaskKind{}, ErrMissingTimeInput
	}

	if rest, ok := strings.CutPrefix(timePart, "@"); ok {
		return parseDeadline(label, rest, now)
	}
	return parseDuration(label, timePart)
}

// parseDeadline 处理截止时间格式 (@HH:MM)。
// 今天的该时刻已过时顺延一天，任务总是指向下一次出现的该时刻。
func parseDeadline(label, value string, now time.Time) (string, models.TaskKind, error) {
	clock, err := time.Parse("15:04", value)
	if err != nil {
		return "", models.TaskKind{}, fmt.Errorf("%w: 截止时间需要 HH:MM 格式，收到 %q", ErrInvalidFormat, value)
	}
	deadline := time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, now.Location())
	if deadline.Before(now) {
		deadline = deadline.AddDate(0, 0, 1)
	}
	return label, models.DeadlineKind(deadline), nil
}

// parseDuration 处理时间段格式 (1h30m)，所有片段求和。
func parseDuration(label, value string) (string, models.TaskKind, error) {
	matches := durationToken.FindAllStringSubmatch(value, -1)
	if len(matches) == 0 {
		return "", models.TaskKind{}, fmt.Errorf("%w: 无法识别的时长 %q", ErrInvalidFormat, value)
	}

	var total time.Duration
	for _, m := range matches {
		n, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil {
			return "", models.TaskKind{}, fmt.Errorf("%w: 数字 %q 解析失败", ErrInvalidFormat, m[1])
		}
		var piece time.Duration
		switch m[2] {
		case "h":
			if n > maxHours {
				return "", models.TaskKind{}, fmt.Errorf("%w: 时长 %q 超出可表示范围", ErrInvalidFormat, value)
			}
			piece = time.Duration(n) * time.Hour
		case "m":
			if n > maxMinutes {
				return "", models.TaskKind{}, fmt.Errorf("%w: 时长 %q 超出可表示范围", ErrInvalidFormat, value)
			}
			piece = time.Duration(n) * time.Minute
		default:
			return "", models.TaskKind{}, fmt.Errorf("%w: %q", ErrInvalidDurationUnit, m[2])
		}
		// 两个非负 int64 相加最多绕回一次，溢出必为负
		total += piece
		if total < 0 {
			return "", models.TaskKind{}, fmt.Errorf("%w: 时长 %q 超出可表示范围", ErrInvalidFormat, value)
		}
	}
	if total == 0 {
		return "", models.TaskKind{}, ErrZeroDuration
	}
	return label, models.DurationKind(total), nil
}
