package xiangqi

import "fmt"

type Side int8

const (
	NoSide Side = -1
	Red    Side = 0
	Black  Side = 1
)

func (s Side) String() string {
	switch s {
	case Red:
		return "Red"
	case Black:
		return "Black"
	default:
		return "None"
	}
}

// Opponent 返回对方；NoSide 仍为 NoSide。
func (s Side) Opponent() Side {
	return opposite(s)
}

type PieceKind int8

const (
	PieceNone     PieceKind = iota
	PieceGeneral            // 帅 / 将
	PieceAdvisor            // 仕 / 士
	PieceElephant           // 相 / 象
	PieceHorse              // 马
	PieceChariot            // 车
	PieceCannon             // 炮
	PieceSoldier            // 兵 / 卒

	numPieceKinds
)

// PieceKinds 列出所有真实棋子种类，按枚举顺序。
var PieceKinds = [...]PieceKind{
	PieceGeneral,
	PieceAdvisor,
	PieceElephant,
	PieceHorse,
	PieceChariot,
	PieceCannon,
	PieceSoldier,
}

var pieceKindNames = [numPieceKinds]string{
	PieceNone:     "None",
	PieceGeneral:  "General",
	PieceAdvisor:  "Advisor",
	PieceElephant: "Elephant",
	PieceHorse:    "Horse",
	PieceChariot:  "Chariot",
	PieceCannon:   "Cannon",
	PieceSoldier:  "Soldier",
}

func (k PieceKind) String() string {
	if k < 0 || k >= numPieceKinds {
		return fmt.Sprintf("PieceKind(%d)", int8(k))
	}
	return pieceKindNames[k]
}

// ParsePieceKind 是 String 的逆操作。
func ParsePieceKind(s string) (PieceKind, bool) {
	for _, k := range PieceKinds {
		if pieceKindNames[k] == s {
			return k, true
		}
	}
	return PieceNone, false
}

type Piece int8 // 0=空；>0 红；<0 黑；abs=PieceKind

func MakePiece(side Side, kind PieceKind) Piece {
	if kind == PieceNone || side == NoSide {
		return 0
	}
	if side == Red {
		return Piece(kind)
	}
	return -Piece(kind)
}

func (p Piece) Kind() PieceKind {
	if p < 0 {
		return PieceKind(-p)
	}
	return PieceKind(p)
}

func (p Piece) Side() Side {
	if p == 0 {
		return NoSide
	}
	if p > 0 {
		return Red
	}
	return Black
}

func (p Piece) String() string {
	if p == 0 {
		return "Empty"
	}
	return p.Side().String() + " " + p.Kind().String()
}

// Square 是 (行, 列) 坐标；行 0 在黑方底线。
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func Sq(row, col int) Square { return Square{Row: row, Col: col} }

func (s Square) Valid() bool { return onBoard(s.Row, s.Col) }

func (s Square) index() int { return indexOf(s.Row, s.Col) }

func (s Square) String() string { return fmt.Sprintf("(%d,%d)", s.Row, s.Col) }

type Board struct {
	Squares [NumSquares]Piece
}

// At 越界返回空。
func (b *Board) At(sq Square) Piece {
	if !sq.Valid() {
		return 0
	}
	return b.Squares[sq.index()]
}

// Set 越界时静默忽略。
func (b *Board) Set(sq Square, pc Piece) {
	if !sq.Valid() {
		return
	}
	b.Squares[sq.index()] = pc
}

// Find 返回 side 方第一个 kind 棋子的位置（按行优先）。
func (b *Board) Find(side Side, kind PieceKind) (Square, bool) {
	want := MakePiece(side, kind)
	if want == 0 {
		return Square{}, false
	}
	for i, pc := range b.Squares {
		if pc == want {
			return squareOf(i), true
		}
	}
	return Square{}, false
}

type Move struct {
	From  Square `json:"from"`
	To    Square `json:"to"`
	Score int    `json:"-"` // 搜索排序用
}

func (m Move) String() string { return m.From.String() + " -> " + m.To.String() }

// Position = 棋盘 + 轮到谁走
type Position struct {
	Board      Board
	SideToMove Side
	Hash       uint64
}
