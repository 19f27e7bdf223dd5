package engine

import (
	"cmp"
	"context"
	"math"
	"runtime"
	"slices"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"xiangqi/internal/xiangqi"
)

const (
	// 一个足够大的值，当成正负无穷
	scoreInf = 1_000_000_000
	// 吃将分，减去层数让更快的杀棋更优
	scoreMate = 10_000_000
)

// 搜索配置
type SearchConfig struct {
	MaxDepth  int           // 最大搜索深度（ply）
	TimeLimit time.Duration // 搜索时间上限（0 表示不限制）
}

// 搜索结果
type SearchResult struct {
	BestMove xiangqi.Move  // 最佳着法
	Found    bool          // 是否有可走的着法
	Score    int           // 评估分（正：红方好，负：黑方好）
	Depth    int           // 实际完成的深度
	Nodes    int64         // 节点数
	TimeUsed time.Duration // 花费时间
}

// Search 迭代加深搜索，只思考不落子。ctx 取消或超时后返回已完成的最深结果。
func (e *Engine) Search(ctx context.Context, pos *xiangqi.Position, cfg SearchConfig) SearchResult {
	start := time.Now()
	atomic.StoreInt64(&e.nodes, 0)
	pos.EnsureHash()

	moves := pos.GenerateMoves()
	if len(moves) == 0 {
		return SearchResult{Score: Evaluate(pos), TimeUsed: time.Since(start)}
	}

	// 能直接吃将就不用搜了
	for _, mv := range moves {
		target := pos.Board.At(mv.To)
		if target != 0 && target.Kind() == xiangqi.PieceGeneral {
			score := scoreMate
			if pos.SideToMove == xiangqi.Black {
				score = -scoreMate
			}
			return SearchResult{
				BestMove: mv,
				Found:    true,
				Score:    score,
				Depth:    1,
				Nodes:    1,
				TimeUsed: time.Since(start),
			}
		}
	}

	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 3
	}
	deadline := time.Time{}
	if cfg.TimeLimit > 0 {
		deadline = start.Add(cfg.TimeLimit)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}

	var best SearchResult
	for depth := 1; depth <= cfg.MaxDepth; depth++ {
		if expired(ctx, deadline) {
			break
		}
		score, move, ok := e.alphaBetaRoot(ctx, pos, moves, depth, deadline)
		if !ok {
			break
		}
		// 本层中途超时，结果不完整；已有上一层结果时丢弃
		if expired(ctx, deadline) && best.Found {
			break
		}
		best = SearchResult{BestMove: move, Found: true, Score: score, Depth: depth}
	}

	best.Nodes = e.Nodes()
	best.TimeUsed = time.Since(start)
	if !best.Found {
		best.Score = Evaluate(pos)
	}
	return best
}

func expired(ctx context.Context, deadline time.Time) bool {
	if ctx.Err() != nil {
		return true
	}
	return !deadline.IsZero() && time.Now().After(deadline)
}

// 根节点：根据 SideToMove 决定是 max 还是 min，并行搜索每个着法
func (e *Engine) alphaBetaRoot(ctx context.Context, pos *xiangqi.Position, rootMoves []xiangqi.Move, depth int, deadline time.Time) (int, xiangqi.Move, bool) {
	moves := slices.Clone(rootMoves)
	orderMovesByCaptureFirst(pos, moves)

	// 上一层的最佳着法提到最前
	if entry, ok := e.probeRootTT(pos.Hash); ok {
		for i := range moves {
			if moves[i].From == entry.Move.From && moves[i].To == entry.Move.To {
				moves[0], moves[i] = moves[i], moves[0]
				break
			}
		}
	}

	// 先同步生成所有子局面，避免并发操作 pos
	type childNode struct {
		move  xiangqi.Move
		child *xiangqi.Position
	}
	children := make([]childNode, 0, len(moves))
	for _, mv := range moves {
		child, ok := pos.ApplyMove(mv)
		if !ok {
			continue
		}
		children = append(children, childNode{move: mv, child: child})
	}
	if len(children) == 0 {
		return 0, xiangqi.Move{}, false
	}

	// 每个 goroutine 用自己的 Engine/TT，避免加锁和 map 竞争
	scores := make([]int, len(children))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, ch := range children {
		g.Go(func() error {
			local := newLocalEngine()
			scores[i] = local.alphaBeta(ctx, ch.child, depth-1, -scoreInf, scoreInf, deadline, 1)
			e.addNodes(local.nodes)
			return nil
		})
	}
	_ = g.Wait()

	side := pos.SideToMove
	bestIdx := 0
	for i := 1; i < len(children); i++ {
		if side == xiangqi.Red && scores[i] > scores[bestIdx] {
			bestIdx = i
		}
		if side == xiangqi.Black && scores[i] < scores[bestIdx] {
			bestIdx = i
		}
	}

	bestMove := children[bestIdx].move
	e.storeRootTT(pos.Hash, depth, scores[bestIdx], bestMove)
	return scores[bestIdx], bestMove, true
}

// 内部递归：标准 alpha-beta（由各自的局部 Engine 独享调用）
func (e *Engine) alphaBeta(ctx context.Context, pos *xiangqi.Position, depth int, alpha, beta int, deadline time.Time, ply int) int {
	e.nodes++

	// 将被吃掉即分出胜负
	if !pos.GeneralExists(xiangqi.Red) {
		return -scoreMate + ply
	}
	if !pos.GeneralExists(xiangqi.Black) {
		return scoreMate - ply
	}

	if depth <= 0 {
		return Evaluate(pos)
	}
	if e.nodes&1023 == 0 && expired(ctx, deadline) {
		// 超时：返回当前静态评估（不完美，但能保证退出）
		return Evaluate(pos)
	}

	key := pos.EnsureHash()
	if entry, ok := e.probeTT(key); ok && entry.Depth >= depth {
		return entry.Score
	}

	moves := pos.GenerateMoves()
	if len(moves) == 0 {
		return Evaluate(pos)
	}
	orderMovesByCaptureFirst(pos, moves)

	alphaOrig, betaOrig := alpha, beta
	var bestScore int
	if pos.SideToMove == xiangqi.Red {
		bestScore = math.MinInt
		for i := range moves {
			child, ok := pos.ApplyMove(moves[i])
			if !ok {
				continue
			}
			score := e.alphaBeta(ctx, child, depth-1, alpha, beta, deadline, ply+1)
			bestScore = max(bestScore, score)
			alpha = max(alpha, score)
			if alpha >= beta {
				break
			}
		}
	} else {
		bestScore = math.MaxInt
		for i := range moves {
			child, ok := pos.ApplyMove(moves[i])
			if !ok {
				continue
			}
			score := e.alphaBeta(ctx, child, depth-1, alpha, beta, deadline, ply+1)
			bestScore = min(bestScore, score)
			beta = min(beta, score)
			if alpha >= beta {
				break
			}
		}
	}

	// 只存窗口内的精确值，截断得到的只是边界
	if bestScore > alphaOrig && bestScore < betaOrig {
		e.storeTT(key, depth, bestScore, xiangqi.Move{})
	}
	return bestScore
}

// 吃子优先，按被吃子价值从高到低
func orderMovesByCaptureFirst(pos *xiangqi.Position, moves []xiangqi.Move) {
	slices.SortStableFunc(moves, func(a, b xiangqi.Move) int {
		return cmp.Compare(captureValue(pos, b), captureValue(pos, a))
	})
}

func captureValue(pos *xiangqi.Position, mv xiangqi.Move) int {
	target := pos.Board.At(mv.To)
	if target == 0 {
		return 0
	}
	return pieceValue[target.Kind()]
}
