package suggest

import (
	"context"
	"time"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

// 难度 -> 搜索参数
var levels = map[Difficulty]engine.SearchConfig{
	Easy:   {MaxDepth: 1, TimeLimit: 300 * time.Millisecond},
	Medium: {MaxDepth: 2, TimeLimit: time.Second},
	Hard:   {MaxDepth: 4, TimeLimit: 3 * time.Second},
}

// EngineSuggester 用本地 alpha-beta 引擎给建议。
type EngineSuggester struct {
	Engine *engine.Engine
}

func NewEngineSuggester(e *engine.Engine) *EngineSuggester {
	if e == nil {
		e = engine.NewEngine()
	}
	return &EngineSuggester{Engine: e}
}

func (s *EngineSuggester) SuggestMove(ctx context.Context, board xiangqi.Board, side xiangqi.Side, d Difficulty) (xiangqi.Move, error) {
	if side != xiangqi.Red && side != xiangqi.Black {
		return xiangqi.Move{}, unavailable("invalid side %v", side)
	}
	cfg, ok := levels[d]
	if !ok {
		cfg = levels[Medium]
	}

	res := s.Engine.Search(ctx, positionFor(board, side), cfg)
	if !res.Found {
		if err := ctx.Err(); err != nil {
			return xiangqi.Move{}, unavailable("search aborted: %v", err)
		}
		return xiangqi.Move{}, unavailable("no move for %v", side)
	}
	return res.BestMove, nil
}
