package engine

import (
	"sync"
	"sync/atomic"
)

const ttCap = 1_000_000

// Engine 持有跨搜索复用的置换表。同一个 Engine 可以被多个请求共享。
type Engine struct {
	mu sync.Mutex // 保护 tt；根节点以外的搜索用局部 Engine，不加锁
	tt map[uint64]ttEntry

	nodes int64
}

func NewEngine() *Engine {
	return &Engine{
		tt: make(map[uint64]ttEntry, 1<<16),
	}
}

func newLocalEngine() *Engine {
	return &Engine{
		tt: make(map[uint64]ttEntry, 1<<12),
	}
}

func (e *Engine) addNodes(n int64) {
	atomic.AddInt64(&e.nodes, n)
}

// Nodes 返回最近一次搜索的节点数。
func (e *Engine) Nodes() int64 {
	return atomic.LoadInt64(&e.nodes)
}
