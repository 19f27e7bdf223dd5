package engine

import "xiangqi/internal/xiangqi"

// 简单 TT 条目
type ttEntry struct {
	Key   uint64
	Depth int
	Score int
	Move  xiangqi.Move
}

// 存入 TT：深度不低于旧条目时覆盖。局部 Engine 独享，不加锁。
func (e *Engine) storeTT(key uint64, depth int, score int, mv xiangqi.Move) {
	if len(e.tt) > ttCap {
		e.tt = make(map[uint64]ttEntry, 1<<16)
	}
	old, ok := e.tt[key]
	if !ok || depth >= old.Depth {
		e.tt[key] = ttEntry{
			Key:   key,
			Depth: depth,
			Score: score,
			Move:  mv,
		}
	}
}

func (e *Engine) probeTT(key uint64) (ttEntry, bool) {
	entry, ok := e.tt[key]
	return entry, ok
}

// 根节点访问共享 TT 时使用
func (e *Engine) storeRootTT(key uint64, depth int, score int, mv xiangqi.Move) {
	e.mu.Lock()
	e.storeTT(key, depth, score, mv)
	e.mu.Unlock()
}

func (e *Engine) probeRootTT(key uint64) (ttEntry, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.probeTT(key)
}
