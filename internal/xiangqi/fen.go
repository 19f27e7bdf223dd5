package xiangqi

import (
	"errors"
	"strings"
)

var ErrInvalidFEN = errors.New("invalid FEN")

// Encode 输出标准象棋 FEN：10 行用“/”隔开，空位用数字压缩；空格后 w/b 表示走子方。
func (p *Position) Encode() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Cols; c++ {
			pc := p.Board.Squares[indexOf(r, c)]
			if pc == 0 {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(pieceToChar(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	if p.SideToMove == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	return sb.String()
}

// DecodePosition 解析 Encode 的输出。也接受“.”表示单个空位，
// 以及省略走子方（默认红方）。
func DecodePosition(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return nil, ErrInvalidFEN
	}
	rows := strings.Split(parts[0], "/")
	if len(rows) != Rows {
		return nil, ErrInvalidFEN
	}
	var b Board
	for r, row := range rows {
		c := 0
		for _, ch := range row {
			if c >= Cols {
				return nil, ErrInvalidFEN
			}
			if ch >= '1' && ch <= '9' {
				c += int(ch - '0')
				continue
			}
			if ch == '.' {
				c++
				continue
			}
			pc, ok := charToPiece(ch)
			if !ok {
				return nil, ErrInvalidFEN
			}
			b.Squares[indexOf(r, c)] = pc
			c++
		}
		if c != Cols {
			return nil, ErrInvalidFEN
		}
	}
	stm := Red
	if len(parts) > 1 {
		switch parts[1] {
		case "w", "r":
			stm = Red
		case "b":
			stm = Black
		default:
			return nil, ErrInvalidFEN
		}
	}
	pos := &Position{
		Board:      b,
		SideToMove: stm,
	}
	pos.Hash = pos.CalculateHash()
	return pos, nil
}
