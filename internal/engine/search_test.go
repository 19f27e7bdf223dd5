package engine

import (
	"context"
	"testing"
	"time"

	"xiangqi/internal/xiangqi"
)

func mustPosition(t *testing.T, fen string) *xiangqi.Position {
	t.Helper()
	pos, err := xiangqi.DecodePosition(fen)
	if err != nil {
		t.Fatalf("decode %q: %v", fen, err)
	}
	return pos
}

func TestSearchCapturesGeneral(t *testing.T) {
	engine := NewEngine()

	t.Run("RedToMove", func(t *testing.T) {
		pos := mustPosition(t, "4k4/4R4/9/9/9/9/9/9/9/3K5 w")
		res := engine.Search(context.Background(), pos, SearchConfig{MaxDepth: 3})
		want := xiangqi.Move{From: xiangqi.Sq(1, 4), To: xiangqi.Sq(0, 4)}
		if !res.Found || res.BestMove.From != want.From || res.BestMove.To != want.To {
			t.Fatalf("expected %v, got %+v", want, res)
		}
		if res.Score <= 0 {
			t.Fatalf("winning capture must score for red, got %d", res.Score)
		}
	})

	t.Run("BlackToMove", func(t *testing.T) {
		pos := mustPosition(t, "3k5/9/9/9/9/9/9/9/4r4/4K4 b")
		res := engine.Search(context.Background(), pos, SearchConfig{MaxDepth: 3})
		if !res.Found || res.BestMove.To != xiangqi.Sq(9, 4) {
			t.Fatalf("expected black to take the general, got %+v", res)
		}
		if res.Score >= 0 {
			t.Fatalf("winning capture must score for black, got %d", res.Score)
		}
	})
}

func TestSearchWinsHangingChariot(t *testing.T) {
	engine := NewEngine()

	// 红车横吃无根黑车
	pos := mustPosition(t, "5k3/9/9/9/9/R7r/9/9/9/3K5 w")
	res := engine.Search(context.Background(), pos, SearchConfig{MaxDepth: 2})
	if !res.Found {
		t.Fatalf("expected a move")
	}
	if res.BestMove.From != xiangqi.Sq(5, 0) || res.BestMove.To != xiangqi.Sq(5, 8) {
		t.Fatalf("expected chariot capture, got %v -> %v", res.BestMove.From, res.BestMove.To)
	}

	// 同样的局面黑先
	pos = mustPosition(t, "5k3/9/9/9/9/R7r/9/9/9/3K5 b")
	res = engine.Search(context.Background(), pos, SearchConfig{MaxDepth: 2})
	if res.BestMove.From != xiangqi.Sq(5, 8) || res.BestMove.To != xiangqi.Sq(5, 0) {
		t.Fatalf("expected black chariot capture, got %v -> %v", res.BestMove.From, res.BestMove.To)
	}
}

func TestSearchReturnsLegalOpeningMove(t *testing.T) {
	engine := NewEngine()
	pos := xiangqi.NewInitialPosition()

	res := engine.Search(context.Background(), pos, SearchConfig{MaxDepth: 2, TimeLimit: 5 * time.Second})
	if !res.Found {
		t.Fatalf("expected a move from the initial position")
	}
	if !xiangqi.IsLegal(&pos.Board, res.BestMove.From, res.BestMove.To) {
		t.Fatalf("illegal move %v -> %v", res.BestMove.From, res.BestMove.To)
	}
	if pc := pos.Board.At(res.BestMove.From); pc.Side() != xiangqi.Red {
		t.Fatalf("moved a piece that is not red: %v", pc)
	}
	if res.Depth < 1 || res.Nodes == 0 {
		t.Fatalf("unexpected search stats %+v", res)
	}
	if pos.Hash != pos.CalculateHash() || pos.Board != xiangqi.InitialBoard() {
		t.Fatalf("search must not mutate the root position")
	}
}

func TestSearchCancelledContext(t *testing.T) {
	engine := NewEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := engine.Search(ctx, xiangqi.NewInitialPosition(), SearchConfig{MaxDepth: 4})
	if res.Found {
		t.Fatalf("cancelled search must not report a move, got %+v", res)
	}
}

func TestSearchNoMoves(t *testing.T) {
	engine := NewEngine()
	// 黑方没有任何棋子
	pos := mustPosition(t, "9/9/9/9/9/9/9/9/9/4K4 b")
	res := engine.Search(context.Background(), pos, SearchConfig{MaxDepth: 2})
	if res.Found {
		t.Fatalf("expected no move, got %+v", res)
	}
}

func TestEvaluateInitialIsBalanced(t *testing.T) {
	pos := xiangqi.NewInitialPosition()
	if got := Evaluate(pos); got != tempoBonus {
		t.Fatalf("initial position should only differ by tempo, got %d", got)
	}
	pos.SideToMove = xiangqi.Black
	if got := Evaluate(pos); got != -tempoBonus {
		t.Fatalf("expected %d with black to move, got %d", -tempoBonus, got)
	}
}
