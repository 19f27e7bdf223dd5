package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	"xiangqi/internal/engine"
	"xiangqi/internal/suggest"
)

func main() {
	redLevel := flag.String("red", "medium", "red difficulty: easy / medium / hard")
	blackLevel := flag.String("black", "medium", "black difficulty: easy / medium / hard")
	totalGames := flag.Int("games", 1, "number of games to play; colours swap every game")
	maxMoves := flag.Int("maxmoves", 200, "max plies per game before it is called a draw")
	pprofAddr := flag.String("pprof", "", "pprof listen address, e.g. localhost:6060")
	flag.Parse()

	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof listening on %s", *pprofAddr)
			if err := http.ListenAndServe(*pprofAddr, nil); err != nil {
				log.Printf("pprof failed: %v", err)
			}
		}()
	}

	a, err := newPlayer(*redLevel)
	if err != nil {
		log.Fatal(err)
	}
	b, err := newPlayer(*blackLevel)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if *totalGames <= 1 {
		start := time.Now()
		res := playGame(ctx, a, b, *maxMoves, true)
		fmt.Printf("\nResult: %s after %d plies (%v)\n", res.Outcome, len(res.History), time.Since(start).Round(time.Millisecond))
		for i, line := range res.History {
			fmt.Printf("%3d. %s\n", i+1, line)
		}
		return
	}

	runMatch(ctx, a, b, *totalGames, *maxMoves)
}

func newPlayer(level string) (player, error) {
	d, err := suggest.ParseDifficulty(level)
	if err != nil {
		return player{}, err
	}
	return player{
		Name:      d.String(),
		Level:     d,
		Suggester: suggest.NewEngineSuggester(engine.NewEngine()),
	}, nil
}
