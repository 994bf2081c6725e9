package dispatch_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yazhouio/TimeTicker/internal/dispatch"
	"github.com/yazhouio/TimeTicker/internal/models"
)

// hookRecorder 记录表现层回调的调用情况。
type hookRecorder struct {
	created   []uint64
	removed   []uint64
	refreshes int
	prompted  bool
	quit      bool
}

func newHandlerFixture(t *testing.T) (*dispatch.Handler, *models.Registry, *models.PinSet, *hookRecorder) {
	t.Helper()
	reg := models.NewRegistry(models.SystemClock{})
	pins := models.NewPinSet()
	rec := &hookRecorder{}
	h := dispatch.NewHandler(reg, pins, dispatch.Hooks{
		CreatePin:     func(id uint64) { rec.created = append(rec.created, id) },
		RemovePin:     func(id uint64) { rec.removed = append(rec.removed, id) },
		PromptNewTask: func() { rec.prompted = true },
		Refresh:       func() { rec.refreshes++ },
		Quit:          func() { rec.quit = true },
	})
	return h, reg, pins, rec
}

func TestHandlerToggleStartsAndPauses(t *testing.T) {
	h, reg, _, rec := newHandlerFixture(t)
	id, err := reg.Add("学习", models.DurationKind(10*time.Minute))
	require.NoError(t, err)

	h.Handle(dispatch.Command{Action: dispatch.ActionToggle, TaskID: id})
	info, err := reg.Info(id)
	require.NoError(t, err)
	assert.True(t, info.Running)

	h.Handle(dispatch.Command{Action: dispatch.ActionToggle, TaskID: id})
	info, err = reg.Info(id)
	require.NoError(t, err)
	assert.False(t, info.Running)

	assert.Equal(t, 2, rec.refreshes)
}

func TestHandlerMissingTaskIsNoop(t *testing.T) {
	h, reg, _, rec := newHandlerFixture(t)
	_, err := reg.Add("学习", models.DurationKind(10*time.Minute))
	require.NoError(t, err)

	h.Handle(dispatch.Command{Action: dispatch.ActionToggle, TaskID: 99})
	h.Handle(dispatch.Command{Action: dispatch.ActionReset, TaskID: 99})
	h.Handle(dispatch.Command{Action: dispatch.ActionDelete, TaskID: 99})

	// 任务数不变，菜单照常刷新
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, 3, rec.refreshes)
	assert.Empty(t, rec.removed)
}

func TestHandlerPinCreatesAndTogglesOff(t *testing.T) {
	h, reg, pins, rec := newHandlerFixture(t)
	id, err := reg.Add("工作", models.DurationKind(time.Hour))
	require.NoError(t, err)

	h.Handle(dispatch.Command{Action: dispatch.ActionPin, TaskID: id})
	assert.Equal(t, []uint64{id}, rec.created)
	assert.True(t, pins.Pinned(id))
	info, err := reg.Info(id)
	require.NoError(t, err)
	assert.True(t, info.Pinned)

	// 再按一次固定等于取消固定
	h.Handle(dispatch.Command{Action: dispatch.ActionPin, TaskID: id})
	assert.Equal(t, []uint64{id}, rec.removed)
	assert.False(t, pins.Pinned(id))
}

func TestHandlerUnpinForcesOff(t *testing.T) {
	h, reg, pins, rec := newHandlerFixture(t)
	id, err := reg.Add("工作", models.DurationKind(time.Hour))
	require.NoError(t, err)

	h.Handle(dispatch.Command{Action: dispatch.ActionPin, TaskID: id})
	h.Handle(dispatch.Command{Action: dispatch.ActionUnpin, TaskID: id})

	assert.False(t, pins.Pinned(id))
	assert.Equal(t, []uint64{id}, rec.removed)
	info, err := reg.Info(id)
	require.NoError(t, err)
	assert.False(t, info.Pinned)

	// 已取消固定的任务再取消一次无副作用
	h.Handle(dispatch.Command{Action: dispatch.ActionUnpin, TaskID: id})
	assert.Equal(t, []uint64{id, id}, rec.removed)
}

// 删除固定中的任务会一并清掉它的固定窗口。
func TestHandlerDeleteEvictsPin(t *testing.T) {
	h, reg, pins, rec := newHandlerFixture(t)
	id1, err := reg.Add("工作", models.DurationKind(time.Hour))
	require.NoError(t, err)
	id2, err := reg.Add("学习", models.DurationKind(30*time.Minute))
	require.NoError(t, err)

	h.Handle(dispatch.Command{Action: dispatch.ActionPin, TaskID: id1})
	h.Handle(dispatch.Command{Action: dispatch.ActionDelete, TaskID: id1})

	assert.Equal(t, 1, reg.Len())
	assert.False(t, pins.Pinned(id1))
	assert.Equal(t, []uint64{id1}, rec.removed)

	// 剩下的任务不受影响，稳定 ID 仍然可用
	info, err := reg.Info(id2)
	require.NoError(t, err)
	assert.Equal(t, "学习", info.Label)
}

func TestHandlerPinnedVerbsHitSameTask(t *testing.T) {
	h, reg, _, _ := newHandlerFixture(t)
	id, err := reg.Add("学习", models.DurationKind(10*time.Minute))
	require.NoError(t, err)

	h.Handle(dispatch.Command{Action: dispatch.ActionPinnedToggle, TaskID: id})
	info, err := reg.Info(id)
	require.NoError(t, err)
	assert.True(t, info.Running)

	h.Handle(dispatch.Command{Action: dispatch.ActionPinnedReset, TaskID: id})
	info, err = reg.Info(id)
	require.NoError(t, err)
	assert.False(t, info.Running)
}

func TestHandlerNewTaskAndQuit(t *testing.T) {
	h, _, _, rec := newHandlerFixture(t)

	h.Handle(dispatch.Command{Action: dispatch.ActionNewTask})
	assert.True(t, rec.prompted)
	assert.False(t, rec.quit)

	h.Handle(dispatch.Command{Action: dispatch.ActionQuit})
	assert.True(t, rec.quit)
}

func TestHandlerEditIsPassthrough(t *testing.T) {
	h, reg, _, rec := newHandlerFixture(t)
	id, err := reg.Add("学习", models.DurationKind(10*time.Minute))
	require.NoError(t, err)

	h.Handle(dispatch.Command{Action: dispatch.ActionEdit, TaskID: id})

	// 编辑未实现：状态不变，也不触发刷新
	info, err := reg.Info(id)
	require.NoError(t, err)
	assert.False(t, info.Running)
	assert.Equal(t, 0, rec.refreshes)
}
