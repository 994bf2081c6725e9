package dispatch

import (
	"strings"
	"sync"
)

// Router 菜单项标识到动作字符串的映射表。
// 任务列表形态变化（新增/删除）后主菜单整体重建，映射表随之重建；
// 固定窗口的控件不随主菜单重建，它们的标识必须在重建后继续有效。
type Router struct {
	mu      sync.Mutex
	actions map[string]string
}

func NewRouter() *Router {
	return &Router{actions: make(map[string]string)}
}

// Register 登记一个映射，后写覆盖先写。
func (r *Router) Register(id, action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[id] = action
}

// Resolve 查找标识对应的动作。查不到不是错误，
// 过期或来路不明的点击由调用方按警告忽略。
func (r *Router) Resolve(id string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	action, ok := r.actions[id]
	return action, ok
}

// Rebuild 清空映射表，但保留动作带有指定前缀的条目。
// 主菜单重建时传入 "pinned_"、"unpin_"，固定窗口的控件照常工作。
func (r *Router) Rebuild(preserve ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := make(map[string]string)
	for id, action := range r.actions {
		for _, prefix := range preserve {
			if strings.HasPrefix(action, prefix) {
				kept[id] = action
				break
			}
		}
	}
	r.actions = kept
}

func (r *Router) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.actions)
}
