package main

import (
	"context"
	"fmt"
	"log"

	"xiangqi/internal/suggest"
	"xiangqi/internal/xiangqi"
)

type player struct {
	Name      string
	Level     suggest.Difficulty
	Suggester suggest.Suggester
}

type gameResult struct {
	Outcome string // "Red" / "Black" / "Draw"
	History []string
}

// playGame 双方都通过 Game.ApplyMove 落子，和真实对局走同一条路径
func playGame(ctx context.Context, red, black player, maxMoves int, verbose bool) gameResult {
	g := xiangqi.NewGame()

	for i := 0; i < maxMoves && !g.Status().Terminal(); i++ {
		p := red
		if g.Turn() == xiangqi.Black {
			p = black
		}

		mv, err := p.Suggester.SuggestMove(ctx, g.Board, g.Turn(), p.Level)
		if err != nil {
			// 没棋可走，当前方输
			log.Printf("%v (%s) has no move: %v", g.Turn(), p.Name, err)
			return gameResult{Outcome: g.Turn().Opponent().String(), History: g.HistoryStrings()}
		}
		rec, err := g.ApplyMove(mv.From, mv.To)
		if err != nil {
			log.Printf("engine produced a rejected move %v: %v", mv, err)
			return gameResult{Outcome: g.Turn().Opponent().String(), History: g.HistoryStrings()}
		}
		if verbose {
			fmt.Printf("%3d. %-6v %-28s %s\n", i+1, rec.Side, rec, g.Status())
		}
	}

	res := gameResult{Outcome: "Draw", History: g.HistoryStrings()}
	if w := g.Winner(); w != xiangqi.NoSide {
		res.Outcome = w.String()
	}
	if verbose {
		fmt.Println(g.Board.String())
	}
	return res
}

// runMatch 多盘对战，每盘交换先后手
func runMatch(ctx context.Context, a, b player, totalGames, maxMoves int) {
	aWins, bWins, draws := 0, 0, 0

	for n := 0; n < totalGames; n++ {
		red, black := a, b
		if n%2 == 1 {
			red, black = b, a
		}

		fmt.Printf("\n=== Game %d: Red [%s] vs Black [%s] ===\n", n+1, red.Name, black.Name)
		res := playGame(ctx, red, black, maxMoves, false)

		switch {
		case res.Outcome == "Draw":
			draws++
			fmt.Println("Result: Draw")
		case (res.Outcome == "Red") == (n%2 == 0):
			aWins++
			fmt.Printf("Result: %s wins in %d plies\n", a.Name, len(res.History))
		default:
			bWins++
			fmt.Printf("Result: %s wins in %d plies\n", b.Name, len(res.History))
		}
	}

	fmt.Printf("\n=== Final Score ===\n")
	fmt.Printf("A %s: %d\n", a.Name, aWins)
	fmt.Printf("B %s: %d\n", b.Name, bWins)
	fmt.Printf("Draws: %d\n", draws)
}
