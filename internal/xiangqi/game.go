package xiangqi

import (
	"errors"
	"slices"
)

type Status int8

const (
	StatusPlaying Status = iota
	StatusCheck
	StatusWinRed
	StatusWinBlack
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusCheck:
		return "check"
	case StatusWinRed:
		return "win_red"
	case StatusWinBlack:
		return "win_black"
	default:
		return "unknown"
	}
}

// Terminal 分出胜负后不再接受走子。
func (s Status) Terminal() bool {
	return s == StatusWinRed || s == StatusWinBlack
}

func winStatus(side Side) Status {
	if side == Black {
		return StatusWinBlack
	}
	return StatusWinRed
}

// Activation 描述一次点选的结果。
type Activation int8

const (
	ActivationIgnored Activation = iota
	ActivationSelected
	ActivationMoved
	ActivationDeselected
)

func (a Activation) String() string {
	switch a {
	case ActivationSelected:
		return "selected"
	case ActivationMoved:
		return "moved"
	case ActivationDeselected:
		return "deselected"
	default:
		return "ignored"
	}
}

var (
	ErrInvalidCoordinate = errors.New("coordinate out of bounds")
	ErrNoPiece           = errors.New("no piece on square")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrIllegalMove       = errors.New("illegal move")
	ErrGameOver          = errors.New("game over")
)

// Game 是一局棋的完整状态。棋盘只由 Game 自己修改。
type Game struct {
	Position
	status  Status
	history []Record

	selected    Square
	hasSelected bool
	validMoves  []Square
}

func NewGame() *Game {
	return &Game{Position: *NewInitialPosition()}
}

// NewGameFromPosition 从任意局面开局（残局、测试、FEN 导入）。pos 为 nil 时等同 NewGame。
func NewGameFromPosition(pos *Position) *Game {
	if pos == nil {
		return NewGame()
	}
	g := &Game{Position: *pos}
	g.EnsureHash()
	g.status = g.evaluateStatus()
	return g
}

func (g *Game) Turn() Side { return g.SideToMove }

// Reset 整体替换为开局棋盘。
func (g *Game) Reset() {
	*g = Game{Position: *NewInitialPosition()}
}

// Selection 返回当前选中的格子。
func (g *Game) Selection() (Square, bool) {
	return g.selected, g.hasSelected
}

// ValidMoves 是选中棋子的可走目标，未选中时为空。
func (g *Game) ValidMoves() []Square {
	return slices.Clone(g.validMoves)
}

// Status 只随走子更新。
func (g *Game) Status() Status { return g.status }

// History 返回走子记录的拷贝。
func (g *Game) History() []Record {
	return slices.Clone(g.history)
}

// LastMove 最近一步；还没走过时 ok 为 false。
func (g *Game) LastMove() (Record, bool) {
	if len(g.history) == 0 {
		return Record{}, false
	}
	return g.history[len(g.history)-1], true
}

func (g *Game) HistoryStrings() []string {
	out := make([]string, len(g.history))
	for i, r := range g.history {
		out[i] = r.String()
	}
	return out
}

// Winner 未分胜负时为 NoSide。
func (g *Game) Winner() Side {
	switch g.status {
	case StatusWinRed:
		return Red
	case StatusWinBlack:
		return Black
	}
	return NoSide
}

func (g *Game) Clone() *Game {
	cp := *g
	cp.history = slices.Clone(g.history)
	cp.validMoves = slices.Clone(g.validMoves)
	return &cp
}

// SquareActivated 处理一次点选：
// 点己方棋子为选中；已选中且点到可走格则走子；否则取消选中。
func (g *Game) SquareActivated(row, col int) Activation {
	if g.status.Terminal() {
		return ActivationIgnored
	}
	sq := Square{Row: row, Col: col}
	pc := g.Board.At(sq)
	if pc != 0 && pc.Side() == g.SideToMove {
		g.selected = sq
		g.hasSelected = true
		g.validMoves = MovesFrom(&g.Board, sq)
		return ActivationSelected
	}
	if g.hasSelected && slices.Contains(g.validMoves, sq) {
		g.apply(g.selected, sq)
		return ActivationMoved
	}
	g.clearSelection()
	return ActivationDeselected
}

// ApplyMove 一步完成选子和走子，供 AI 或接口直接调用。
func (g *Game) ApplyMove(from, to Square) (Record, error) {
	if g.status.Terminal() {
		return Record{}, ErrGameOver
	}
	if !from.Valid() || !to.Valid() {
		return Record{}, ErrInvalidCoordinate
	}
	pc := g.Board.At(from)
	if pc == 0 {
		return Record{}, ErrNoPiece
	}
	if pc.Side() != g.SideToMove {
		return Record{}, ErrNotYourTurn
	}
	if !IsLegal(&g.Board, from, to) {
		return Record{}, ErrIllegalMove
	}
	return g.apply(from, to), nil
}

func (g *Game) apply(from, to Square) Record {
	mover := g.SideToMove
	pc := g.Board.At(from)
	captured := g.Board.At(to)

	np, ok := g.Position.ApplyMove(Move{From: from, To: to})
	if !ok {
		// 调用方已校验过，走不到这里
		g.clearSelection()
		return Record{}
	}
	g.Position = *np

	rec := Record{
		Side:     mover,
		Kind:     pc.Kind(),
		From:     from,
		To:       to,
		Captured: captured,
	}
	g.history = append(g.history, rec)
	g.clearSelection()

	if captured != 0 && captured.Kind() == PieceGeneral && captured.Side() == opposite(mover) {
		g.status = winStatus(mover)
	} else if IsInCheck(&g.Board, g.SideToMove) {
		g.status = StatusCheck
	} else {
		g.status = StatusPlaying
	}
	return rec
}

// evaluateStatus 用于从任意局面建局：少将的一方已负。
func (g *Game) evaluateStatus() Status {
	redAlive := g.GeneralExists(Red)
	blackAlive := g.GeneralExists(Black)
	switch {
	case redAlive && !blackAlive:
		return StatusWinRed
	case blackAlive && !redAlive:
		return StatusWinBlack
	}
	if IsInCheck(&g.Board, g.SideToMove) {
		return StatusCheck
	}
	return StatusPlaying
}

func (g *Game) clearSelection() {
	g.selected = Square{}
	g.hasSelected = false
	g.validMoves = nil
}
