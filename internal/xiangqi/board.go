package xiangqi

import (
	"strings"
	"unicode"
)

const (
	Rows       = 10
	Cols       = 9
	NumSquares = Rows * Cols

	// 河界：黑方 0..4 行，红方 5..9 行
	RiverRow = 5

	palaceMinCol = 3
	palaceMaxCol = 5
)

func indexOf(row, col int) int { return row*Cols + col }
func rowOf(sq int) int         { return sq / Cols }
func colOf(sq int) int         { return sq % Cols }
func squareOf(sq int) Square   { return Square{Row: rowOf(sq), Col: colOf(sq)} }

func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

func opposite(side Side) Side {
	if side == Red {
		return Black
	}
	if side == Black {
		return Red
	}
	return NoSide
}

// 兵的前进方向：红向上(-1)，黑向下(+1)
func soldierDir(side Side) int {
	if side == Red {
		return -1
	}
	if side == Black {
		return +1
	}
	return 0
}

// 是否已经过河
func soldierCrossed(side Side, row int) bool {
	if side == Red {
		return row < RiverRow
	}
	if side == Black {
		return row >= RiverRow
	}
	return false
}

// 相不能过河：目标行必须在己方半场
func onOwnHalf(side Side, row int) bool {
	if side == Red {
		return row >= RiverRow
	}
	if side == Black {
		return row < RiverRow
	}
	return false
}

// 是否在九宫
func inPalace(side Side, row, col int) bool {
	if col < palaceMinCol || col > palaceMaxCol {
		return false
	}
	if side == Black {
		return row >= 0 && row <= 2
	}
	if side == Red {
		return row >= Rows-3 && row <= Rows-1 // 7..9
	}
	return false
}

// FEN 字母，小写为黑方
var letterToPieceKind = map[rune]PieceKind{
	'k': PieceGeneral,
	'a': PieceAdvisor,
	'b': PieceElephant,
	'n': PieceHorse,
	'r': PieceChariot,
	'c': PieceCannon,
	'p': PieceSoldier,
}

var pieceKindToLetter = func() map[PieceKind]rune {
	m := make(map[PieceKind]rune, len(letterToPieceKind))
	for ch, k := range letterToPieceKind {
		m[k] = ch
	}
	return m
}()

func pieceToChar(p Piece) rune {
	if p == 0 {
		return '.'
	}
	base, ok := pieceKindToLetter[p.Kind()]
	if !ok {
		return '.'
	}
	if p.Side() == Red {
		return unicode.ToUpper(base)
	}
	return base
}

func charToPiece(ch rune) (Piece, bool) {
	kind, ok := letterToPieceKind[unicode.ToLower(ch)]
	if !ok {
		return 0, false
	}
	side := Black
	if unicode.IsUpper(ch) {
		side = Red
	}
	return MakePiece(side, kind), true
}

// 标准开局
const initialBoardString = `rnbakabnr
.........
.c.....c.
p.p.p.p.p
.........
.........
P.P.P.P.P
.C.....C.
.........
RNBAKABNR`

func parseBoardString(s string) (Board, error) {
	var b Board
	lines := make([]string, 0, Rows)
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) != Rows {
		return b, ErrInvalidFEN
	}
	for r, line := range lines {
		if len([]rune(line)) != Cols {
			return b, ErrInvalidFEN
		}
		for c, ch := range []rune(line) {
			if ch == '.' {
				continue
			}
			pc, ok := charToPiece(ch)
			if !ok {
				return b, ErrInvalidFEN
			}
			b.Squares[indexOf(r, c)] = pc
		}
	}
	return b, nil
}

// InitialBoard 返回标准开局棋盘。
func InitialBoard() Board {
	b, err := parseBoardString(initialBoardString)
	if err != nil {
		panic("initialBoardString: " + err.Error())
	}
	return b
}

func NewInitialPosition() *Position {
	pos := &Position{
		Board:      InitialBoard(),
		SideToMove: Red, // 红先
	}
	pos.Hash = pos.CalculateHash()
	return pos
}

// String 按 initialBoardString 的格式输出棋盘。
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < Cols; c++ {
			sb.WriteRune(pieceToChar(b.Squares[indexOf(r, c)]))
		}
	}
	return sb.String()
}

// Grid 是可序列化快照：每格为 FEN 字母或 "."。
func (b *Board) Grid() [][]string {
	out := make([][]string, Rows)
	for r := 0; r < Rows; r++ {
		row := make([]string, Cols)
		for c := 0; c < Cols; c++ {
			row[c] = string(pieceToChar(b.Squares[indexOf(r, c)]))
		}
		out[r] = row
	}
	return out
}
