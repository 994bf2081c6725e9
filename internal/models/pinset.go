package models

import (
	"sort"
	"sync"
)

// PinSet 记录哪些任务拥有独立的固定显示窗口。
// 只按稳定 ID 弱引用任务，不拥有任务本身。
type PinSet struct {
	mu  sync.Mutex
	ids map[uint64]struct{}
}

func NewPinSet() *PinSet {
	return &PinSet{ids: make(map[uint64]struct{})}
}

func (p *PinSet) Pin(id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ids[id] = struct{}{}
}

func (p *PinSet) Unpin(id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.ids, id)
}

func (p *PinSet) Pinned(id uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.ids[id]
	return ok
}

// IDs 返回排序后的固定任务 ID，遍历顺序稳定。
func (p *PinSet) IDs() []uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]uint64, 0, len(p.ids))
	for id := range p.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
