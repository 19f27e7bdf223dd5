package xiangqi

import (
	"slices"
	"testing"
)

type placed struct {
	sq Square
	pc Piece
}

func boardWith(pieces ...placed) *Board {
	var b Board
	for _, p := range pieces {
		b.Set(p.sq, p.pc)
	}
	return &b
}

func red(k PieceKind) Piece   { return MakePiece(Red, k) }
func black(k PieceKind) Piece { return MakePiece(Black, k) }

func TestInitialLayout(t *testing.T) {
	b := InitialBoard()
	count := map[Side]int{}
	for _, pc := range b.Squares {
		if pc != 0 {
			count[pc.Side()]++
		}
	}
	if count[Red] != 16 || count[Black] != 16 {
		t.Fatalf("expected 16 pieces per side, got red=%d black=%d", count[Red], count[Black])
	}
	if got := b.At(Sq(9, 4)); got != red(PieceGeneral) {
		t.Fatalf("red general not at (9,4): %v", got)
	}
	if got := b.At(Sq(0, 4)); got != black(PieceGeneral) {
		t.Fatalf("black general not at (0,4): %v", got)
	}
	if got := b.At(Sq(7, 1)); got != red(PieceCannon) {
		t.Fatalf("red cannon not at (7,1): %v", got)
	}
	for _, c := range []int{0, 2, 4, 6, 8} {
		if b.At(Sq(3, c)) != black(PieceSoldier) || b.At(Sq(6, c)) != red(PieceSoldier) {
			t.Fatalf("soldiers missing on column %d", c)
		}
	}
}

func TestInitialPositionHas44Moves(t *testing.T) {
	pos := NewInitialPosition()
	if got := len(pos.GenerateMoves()); got != 44 {
		t.Fatalf("expected 44 opening moves for red, got %d", got)
	}
	pos.SideToMove = Black
	if got := len(pos.GenerateMoves()); got != 44 {
		t.Fatalf("expected 44 opening moves for black, got %d", got)
	}
}

func TestOutOfBoundsIsNeverLegal(t *testing.T) {
	b := InitialBoard()
	cases := [][2]Square{
		{Sq(-1, 0), Sq(0, 0)},
		{Sq(9, 0), Sq(10, 0)},
		{Sq(9, 0), Sq(9, 9)},
		{Sq(9, 8), Sq(9, -1)},
	}
	for _, c := range cases {
		if IsLegal(&b, c[0], c[1]) {
			t.Fatalf("expected %v -> %v to be illegal", c[0], c[1])
		}
	}
	if IsLegal(nil, Sq(0, 0), Sq(1, 0)) {
		t.Fatalf("nil board must not be legal")
	}
	if got := MovesFrom(&b, Sq(12, 3)); got != nil {
		t.Fatalf("expected no moves from off-board square, got %v", got)
	}
	if b.At(Sq(-3, 4)) != 0 {
		t.Fatalf("off-board At must be empty")
	}
}

func TestEmptyOriginIsIllegal(t *testing.T) {
	b := InitialBoard()
	if IsLegal(&b, Sq(5, 4), Sq(4, 4)) {
		t.Fatalf("moving from an empty square must be illegal")
	}
	if got := MovesFrom(&b, Sq(5, 4)); len(got) != 0 {
		t.Fatalf("expected no moves from empty square, got %v", got)
	}
}

func TestSameSideDestinationNeverLegal(t *testing.T) {
	cases := []struct {
		name     string
		from, to Square
		kind     PieceKind
	}{
		{"general", Sq(9, 4), Sq(8, 4), PieceGeneral},
		{"advisor", Sq(9, 3), Sq(8, 4), PieceAdvisor},
		{"elephant", Sq(9, 2), Sq(7, 4), PieceElephant},
		{"horse", Sq(5, 4), Sq(3, 5), PieceHorse},
		{"chariot", Sq(5, 0), Sq(5, 6), PieceChariot},
		{"cannon", Sq(5, 0), Sq(5, 6), PieceCannon},
		{"soldier", Sq(4, 4), Sq(3, 4), PieceSoldier},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := boardWith(placed{tc.from, red(tc.kind)})
			if !IsLegal(b, tc.from, tc.to) {
				t.Fatalf("expected %v -> %v legal on an empty board", tc.from, tc.to)
			}
			b.Set(tc.to, red(PieceSoldier))
			if IsLegal(b, tc.from, tc.to) {
				t.Fatalf("expected %v -> %v illegal onto own piece", tc.from, tc.to)
			}
		})
	}
}

func TestEveryPieceKindHasAMoveRule(t *testing.T) {
	origins := map[PieceKind]Square{
		PieceGeneral:  Sq(8, 4),
		PieceAdvisor:  Sq(8, 4),
		PieceElephant: Sq(7, 4),
		PieceHorse:    Sq(5, 4),
		PieceChariot:  Sq(5, 4),
		PieceCannon:   Sq(5, 4),
		PieceSoldier:  Sq(6, 4),
	}
	for _, k := range PieceKinds {
		from, ok := origins[k]
		if !ok {
			t.Fatalf("no test origin for %v", k)
		}
		b := boardWith(placed{from, red(k)})
		if len(MovesFrom(b, from)) == 0 {
			t.Fatalf("%v has no moves from %v on an empty board", k, from)
		}
	}

	b := boardWith(placed{Sq(5, 4), Piece(numPieceKinds)})
	if len(MovesFrom(b, Sq(5, 4))) != 0 {
		t.Fatalf("unknown piece kind must have no moves")
	}
}

func TestGeneralAndAdvisorStayInPalace(t *testing.T) {
	b := boardWith(placed{Sq(7, 3), red(PieceGeneral)}, placed{Sq(0, 5), black(PieceAdvisor)})

	got := MovesFrom(b, Sq(7, 3))
	want := []Square{Sq(7, 4), Sq(8, 3)}
	if !slices.Equal(got, want) {
		t.Fatalf("red general moves: got %v want %v", got, want)
	}
	if IsLegal(b, Sq(7, 3), Sq(8, 4)) {
		t.Fatalf("general must not move diagonally")
	}

	got = MovesFrom(b, Sq(0, 5))
	want = []Square{Sq(1, 4)}
	if !slices.Equal(got, want) {
		t.Fatalf("black advisor moves: got %v want %v", got, want)
	}
}

func TestElephantEyeAndRiver(t *testing.T) {
	b := boardWith(placed{Sq(9, 2), red(PieceElephant)})
	if !IsLegal(b, Sq(9, 2), Sq(7, 4)) {
		t.Fatalf("expected elephant move with empty eye to be legal")
	}
	b.Set(Sq(8, 3), black(PieceSoldier))
	if IsLegal(b, Sq(9, 2), Sq(7, 4)) {
		t.Fatalf("expected elephant move with blocked eye to be illegal")
	}
	if !IsLegal(b, Sq(9, 2), Sq(7, 0)) {
		t.Fatalf("other diagonal must remain legal")
	}

	b = boardWith(placed{Sq(5, 2), red(PieceElephant)}, placed{Sq(4, 6), black(PieceElephant)})
	for _, to := range []Square{Sq(3, 0), Sq(3, 4)} {
		if IsLegal(b, Sq(5, 2), to) {
			t.Fatalf("red elephant must not cross the river to %v", to)
		}
	}
	got := MovesFrom(b, Sq(5, 2))
	want := []Square{Sq(7, 0), Sq(7, 4)}
	if !slices.Equal(got, want) {
		t.Fatalf("red elephant moves: got %v want %v", got, want)
	}
	got = MovesFrom(b, Sq(4, 6))
	want = []Square{Sq(2, 4), Sq(2, 8)}
	if !slices.Equal(got, want) {
		t.Fatalf("black elephant moves: got %v want %v", got, want)
	}
}

func TestHorseLeg(t *testing.T) {
	b := boardWith(placed{Sq(5, 4), red(PieceHorse)})
	if got := len(MovesFrom(b, Sq(5, 4))); got != 8 {
		t.Fatalf("expected 8 horse moves in the open, got %d", got)
	}

	b.Set(Sq(4, 4), black(PieceSoldier))
	for _, to := range []Square{Sq(3, 3), Sq(3, 5)} {
		if IsLegal(b, Sq(5, 4), to) {
			t.Fatalf("expected horse blocked towards %v", to)
		}
	}
	if !IsLegal(b, Sq(5, 4), Sq(4, 2)) {
		t.Fatalf("sideways horse move must not use the forward leg")
	}

	b.Set(Sq(5, 3), red(PieceSoldier))
	for _, to := range []Square{Sq(4, 2), Sq(6, 2)} {
		if IsLegal(b, Sq(5, 4), to) {
			t.Fatalf("expected horse blocked towards %v", to)
		}
	}
	if got := len(MovesFrom(b, Sq(5, 4))); got != 4 {
		t.Fatalf("expected 4 horse moves with two legs blocked, got %d", got)
	}
}

func TestChariotPath(t *testing.T) {
	b := boardWith(
		placed{Sq(5, 0), red(PieceChariot)},
		placed{Sq(5, 3), black(PieceHorse)},
	)
	if !IsLegal(b, Sq(5, 0), Sq(5, 3)) {
		t.Fatalf("chariot must capture first piece on the line")
	}
	if IsLegal(b, Sq(5, 0), Sq(5, 4)) {
		t.Fatalf("chariot must not pass through a piece")
	}
	if IsLegal(b, Sq(5, 0), Sq(4, 1)) {
		t.Fatalf("chariot must not move diagonally")
	}
	if !IsLegal(b, Sq(5, 0), Sq(0, 0)) || !IsLegal(b, Sq(5, 0), Sq(9, 0)) {
		t.Fatalf("chariot must slide along an open file")
	}
}

func TestCannonScreen(t *testing.T) {
	b := boardWith(
		placed{Sq(5, 0), red(PieceCannon)},
		placed{Sq(5, 3), red(PieceSoldier)},
		placed{Sq(5, 6), black(PieceChariot)},
	)
	if !IsLegal(b, Sq(5, 0), Sq(5, 6)) {
		t.Fatalf("cannon must capture over exactly one screen")
	}
	if IsLegal(b, Sq(5, 0), Sq(5, 4)) {
		t.Fatalf("cannon must not slide past a screen")
	}
	if IsLegal(b, Sq(5, 0), Sq(5, 7)) {
		t.Fatalf("cannon must not slide past screen and target")
	}
	if !IsLegal(b, Sq(5, 0), Sq(5, 2)) {
		t.Fatalf("cannon must slide to an empty square with a clear path")
	}

	b.Set(Sq(5, 4), black(PieceSoldier))
	if IsLegal(b, Sq(5, 0), Sq(5, 6)) {
		t.Fatalf("cannon must not capture over two screens")
	}
	if !IsLegal(b, Sq(5, 0), Sq(5, 4)) {
		t.Fatalf("cannon must capture the nearer piece over one screen")
	}

	b = boardWith(placed{Sq(5, 0), red(PieceCannon)}, placed{Sq(5, 1), black(PieceSoldier)})
	if IsLegal(b, Sq(5, 0), Sq(5, 1)) {
		t.Fatalf("cannon must not capture an adjacent piece without a screen")
	}
}

func TestSoldierRiver(t *testing.T) {
	b := boardWith(placed{Sq(6, 4), red(PieceSoldier)})
	got := MovesFrom(b, Sq(6, 4))
	if !slices.Equal(got, []Square{Sq(5, 4)}) {
		t.Fatalf("uncrossed soldier: got %v", got)
	}

	b = boardWith(placed{Sq(4, 4), red(PieceSoldier)})
	got = MovesFrom(b, Sq(4, 4))
	want := []Square{Sq(3, 4), Sq(4, 3), Sq(4, 5)}
	if !slices.Equal(got, want) {
		t.Fatalf("crossed soldier: got %v want %v", got, want)
	}
	if IsLegal(b, Sq(4, 4), Sq(5, 4)) {
		t.Fatalf("soldier must never move backward")
	}
	if IsLegal(b, Sq(4, 4), Sq(3, 3)) {
		t.Fatalf("soldier must never move diagonally")
	}

	b = boardWith(placed{Sq(4, 0), red(PieceSoldier)})
	if got := MovesFrom(b, Sq(4, 0)); len(got) != 2 {
		t.Fatalf("crossed soldier on the edge: expected 2 moves, got %v", got)
	}

	b = boardWith(placed{Sq(4, 4), red(PieceSoldier)}, placed{Sq(4, 5), red(PieceChariot)})
	if got := MovesFrom(b, Sq(4, 4)); len(got) != 2 {
		t.Fatalf("crossed soldier next to own piece: expected 2 moves, got %v", got)
	}

	b = boardWith(placed{Sq(4, 4), black(PieceSoldier)})
	if got := MovesFrom(b, Sq(4, 4)); !slices.Equal(got, []Square{Sq(5, 4)}) {
		t.Fatalf("uncrossed black soldier: got %v", got)
	}
	b = boardWith(placed{Sq(5, 4), black(PieceSoldier)})
	want = []Square{Sq(5, 3), Sq(5, 5), Sq(6, 4)}
	if got := MovesFrom(b, Sq(5, 4)); !slices.Equal(got, want) {
		t.Fatalf("crossed black soldier: got %v want %v", got, want)
	}
}

func TestOpeningMoves(t *testing.T) {
	b := InitialBoard()
	if !IsLegal(&b, Sq(9, 1), Sq(7, 2)) {
		t.Fatalf("horse (9,1)->(7,2) must be legal")
	}
	if IsLegal(&b, Sq(9, 1), Sq(8, 3)) {
		t.Fatalf("horse (9,1)->(8,3) is blocked by the elephant")
	}
	if !IsLegal(&b, Sq(7, 1), Sq(7, 4)) {
		t.Fatalf("central cannon (7,1)->(7,4) must be legal")
	}
	if !IsLegal(&b, Sq(7, 1), Sq(0, 1)) {
		t.Fatalf("cannon must capture the black horse over the black cannon")
	}
	if IsLegal(&b, Sq(9, 0), Sq(6, 0)) {
		t.Fatalf("chariot must not capture own soldier")
	}
}

func TestMovesFromIsIdempotentAndRowMajor(t *testing.T) {
	b := InitialBoard()
	first := MovesFrom(&b, Sq(7, 1))
	second := MovesFrom(&b, Sq(7, 1))
	if !slices.Equal(first, second) {
		t.Fatalf("MovesFrom not idempotent: %v vs %v", first, second)
	}
	for i := 1; i < len(first); i++ {
		prev, cur := first[i-1], first[i]
		if prev.Row > cur.Row || (prev.Row == cur.Row && prev.Col >= cur.Col) {
			t.Fatalf("moves not in row-major order: %v", first)
		}
	}
	if got := len(first); got != 12 {
		t.Fatalf("expected 12 moves for the opening cannon, got %d", got)
	}
}

func TestEvaluatorDoesNotMutateBoard(t *testing.T) {
	b := InitialBoard()
	before := b
	_ = MovesFrom(&b, Sq(7, 1))
	_ = IsInCheck(&b, Red)
	_ = IsLegal(&b, Sq(9, 1), Sq(7, 2))
	if b != before {
		t.Fatalf("board mutated by read-only queries")
	}
}
