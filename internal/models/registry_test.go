package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yazhouio/TimeTicker/internal/models"
)

func newTestRegistry(t *testing.T) (*models.Registry, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	return models.NewRegistry(clock), clock
}

func TestRegistryAddAssignsStableIDs(t *testing.T) {
	reg, _ := newTestRegistry(t)

	id1, err := reg.Add("工作1", models.DurationKind(time.Hour))
	require.NoError(t, err)
	id2, err := reg.Add("学习1", models.DurationKind(30*time.Minute))
	require.NoError(t, err)

	assert.Equal(t, uint64(1), id1)
	assert.Equal(t, uint64(2), id2)
	assert.Equal(t, 2, reg.Len())
}

// 删除中间的任务后，后面的任务整体前移一位，ID 不变。
func TestRegistryRemoveShiftsLaterTasks(t *testing.T) {
	reg, _ := newTestRegistry(t)

	var ids []uint64
	for _, label := range []string{"a", "b", "c", "d"} {
		id, err := reg.Add(label, models.DurationKind(time.Minute))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	label, err := reg.Remove(ids[1])
	require.NoError(t, err)
	assert.Equal(t, "b", label)
	assert.Equal(t, 3, reg.Len())

	infos := reg.Snapshot()
	require.Len(t, infos, 3)
	assert.Equal(t, []string{"a", "c", "d"}, []string{infos[0].Label, infos[1].Label, infos[2].Label})
	// 稳定 ID 不随位置变化
	assert.Equal(t, ids[0], infos[0].ID)
	assert.Equal(t, ids[2], infos[1].ID)
	assert.Equal(t, ids[3], infos[2].ID)
}

func TestRegistryRemoveMissing(t *testing.T) {
	reg, _ := newTestRegistry(t)
	_, err := reg.Remove(99)
	assert.ErrorIs(t, err, models.ErrTaskNotFound)
}

func TestRegistryToggle(t *testing.T) {
	reg, _ := newTestRegistry(t)
	id, err := reg.Add("学习", models.DurationKind(10*time.Minute))
	require.NoError(t, err)

	running, err := reg.Toggle(id)
	require.NoError(t, err)
	assert.True(t, running)

	running, err = reg.Toggle(id)
	require.NoError(t, err)
	assert.False(t, running)

	_, err = reg.Toggle(42)
	assert.ErrorIs(t, err, models.ErrTaskNotFound)
}

func TestRegistryToggleSettlesRemaining(t *testing.T) {
	reg, clock := newTestRegistry(t)
	id, err := reg.Add("学习", models.DurationKind(10*time.Minute))
	require.NoError(t, err)

	_, err = reg.Toggle(id)
	require.NoError(t, err)
	clock.advance(4 * time.Minute)
	_, err = reg.Toggle(id)
	require.NoError(t, err)

	remaining, err := reg.RemainingTime(id)
	require.NoError(t, err)
	assert.Equal(t, 6*time.Minute, remaining)
}

func TestRegistryPinned(t *testing.T) {
	reg, _ := newTestRegistry(t)
	id, err := reg.Add("工作", models.DurationKind(time.Hour))
	require.NoError(t, err)

	pinned, err := reg.TogglePinned(id)
	require.NoError(t, err)
	assert.True(t, pinned)

	pinned, err = reg.TogglePinned(id)
	require.NoError(t, err)
	assert.False(t, pinned)

	require.NoError(t, reg.SetPinned(id, true))
	info, err := reg.Info(id)
	require.NoError(t, err)
	assert.True(t, info.Pinned)
}

func TestRegistrySnapshotDisplay(t *testing.T) {
	reg, _ := newTestRegistry(t)
	_, err := reg.Add("学习", models.DurationKind(90*time.Minute))
	require.NoError(t, err)

	infos := reg.Snapshot()
	require.Len(t, infos, 1)
	assert.Equal(t, "01:30:00#学习", infos[0].Display())
}

// 时钟读取失败时快照退回上次结算的剩余时间，不中断界面刷新。
func TestRegistrySnapshotClockFallback(t *testing.T) {
	reg, clock := newTestRegistry(t)
	id, err := reg.Add("学习", models.DurationKind(10*time.Minute))
	require.NoError(t, err)

	require.NoError(t, reg.Start(id))
	clock.advance(2 * time.Minute)
	require.NoError(t, reg.Pause(id))
	require.NoError(t, reg.Start(id))

	clock.failing = true
	infos := reg.Snapshot()
	require.Len(t, infos, 1)
	assert.Equal(t, 8*time.Minute, infos[0].Remaining)

	info, err := reg.Info(id)
	require.NoError(t, err)
	assert.Equal(t, 8*time.Minute, info.Remaining)
}

func TestRegistryResetAfterRun(t *testing.T) {
	reg, clock := newTestRegistry(t)
	id, err := reg.Add("学习", models.DurationKind(10*time.Minute))
	require.NoError(t, err)

	require.NoError(t, reg.Start(id))
	clock.advance(3 * time.Minute)
	require.NoError(t, reg.Reset(id))

	remaining, err := reg.RemainingTime(id)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, remaining)
}

func TestPinSet(t *testing.T) {
	pins := models.NewPinSet()
	assert.False(t, pins.Pinned(1))

	pins.Pin(3)
	pins.Pin(1)
	pins.Pin(2)
	assert.True(t, pins.Pinned(2))
	assert.Equal(t, []uint64{1, 2, 3}, pins.IDs())

	pins.Unpin(2)
	assert.False(t, pins.Pinned(2))
	assert.Equal(t, []uint64{1, 3}, pins.IDs())

	// 重复操作不报错
	pins.Unpin(2)
	pins.Pin(1)
	assert.Equal(t, []uint64{1, 3}, pins.IDs())
}
