package xiangqi

import (
	"errors"
	"strings"
	"testing"
)

const initialFEN = "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w"

func TestEncodeInitialPosition(t *testing.T) {
	pos := NewInitialPosition()
	if got := pos.Encode(); got != initialFEN {
		t.Fatalf("encode: got %q want %q", got, initialFEN)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	fens := []string{
		initialFEN,
		"4k4/4R4/9/9/9/9/9/9/9/3K5 w",
		"3k5/9/4r4/9/9/4R4/9/9/9/4K4 b",
	}
	for _, fen := range fens {
		pos, err := DecodePosition(fen)
		if err != nil {
			t.Fatalf("decode %q: %v", fen, err)
		}
		if got := pos.Encode(); got != fen {
			t.Fatalf("round trip: got %q want %q", got, fen)
		}
	}
}

func TestDecodeDotsAndDefaultSide(t *testing.T) {
	dotted := strings.ReplaceAll(initialBoardString, "\n", "/")
	pos, err := DecodePosition(dotted)
	if err != nil {
		t.Fatalf("decode dotted board: %v", err)
	}
	if pos.SideToMove != Red {
		t.Fatalf("missing side must default to red")
	}
	if pos.Board != InitialBoard() {
		t.Fatalf("dotted board differs from initial board")
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"rnbakabnr/9/1c5c1 w",
		"rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNRR w",
		"rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABN w",
		"rnbakabnx/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w",
		initialFEN[:len(initialFEN)-1] + "x",
	}
	for _, fen := range bad {
		if _, err := DecodePosition(fen); !errors.Is(err, ErrInvalidFEN) {
			t.Fatalf("expected ErrInvalidFEN for %q, got %v", fen, err)
		}
	}
}

func TestBoardStringAndGrid(t *testing.T) {
	b := InitialBoard()
	if got := b.String(); got != initialBoardString {
		t.Fatalf("board string:\n%s\nwant:\n%s", got, initialBoardString)
	}
	grid := b.Grid()
	if len(grid) != Rows || len(grid[0]) != Cols {
		t.Fatalf("grid has wrong shape")
	}
	if grid[9][4] != "K" || grid[0][4] != "k" || grid[5][5] != "." {
		t.Fatalf("unexpected grid cells: %q %q %q", grid[9][4], grid[0][4], grid[5][5])
	}
}
