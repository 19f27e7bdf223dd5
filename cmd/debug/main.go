package main

import (
	"flag"
	"fmt"
	"log"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

func main() {
	fen := flag.String("fen", "", "position to inspect (default: initial position)")
	flag.Parse()

	pos := xiangqi.NewInitialPosition()
	if *fen != "" {
		p, err := xiangqi.DecodePosition(*fen)
		if err != nil {
			log.Fatalf("decode %q: %v", *fen, err)
		}
		pos = p
	}

	fmt.Println("FEN:", pos.Encode())
	fmt.Println(pos.Board.String())
	fmt.Println("Eval:", engine.Evaluate(pos))
	fmt.Printf("Red in check: %v, Black in check: %v, generals face: %v\n",
		pos.IsInCheck(xiangqi.Red), pos.IsInCheck(xiangqi.Black), xiangqi.GeneralsFace(&pos.Board))

	moves := pos.GenerateMoves()
	fmt.Printf("%v to move, %d moves\n", pos.SideToMove, len(moves))

	// 按棋子统计可走步数
	for sq := 0; sq < xiangqi.NumSquares; sq++ {
		from := xiangqi.Sq(sq/xiangqi.Cols, sq%xiangqi.Cols)
		pc := pos.Board.At(from)
		if pc == 0 || pc.Side() != pos.SideToMove {
			continue
		}
		fmt.Printf("  %-8v %v: %v\n", pc.Kind(), from, xiangqi.MovesFrom(&pos.Board, from))
	}
}
