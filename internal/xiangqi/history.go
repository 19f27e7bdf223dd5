package xiangqi

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidRecord = errors.New("invalid history record")

// Record 是一条走子记录。
type Record struct {
	Side     Side
	Kind     PieceKind
	From     Square
	To       Square
	Captured Piece
}

// String 形如 "Horse: (9,1) -> (7,2)"。
func (r Record) String() string {
	return fmt.Sprintf("%s: (%d,%d) -> (%d,%d)", r.Kind, r.From.Row, r.From.Col, r.To.Row, r.To.Col)
}

func (r Record) Move() Move { return Move{From: r.From, To: r.To} }

// ParseRecord 从 Record.String 的输出恢复棋子种类和两个坐标。
// 文本里没有走子方和吃子信息：结果的 Side 为 NoSide，Captured 为空。
func ParseRecord(s string) (Record, error) {
	var r1, c1, r2, c2 int
	// %s 会吞掉冒号，先按冒号切开
	colon := strings.IndexByte(s, ':')
	if colon <= 0 {
		return Record{}, ErrInvalidRecord
	}
	name := s[:colon]
	kind, ok := ParsePieceKind(name)
	if !ok {
		return Record{}, fmt.Errorf("%w: unknown piece %q", ErrInvalidRecord, name)
	}
	n, err := fmt.Sscanf(s[colon:], ": (%d,%d) -> (%d,%d)", &r1, &c1, &r2, &c2)
	if err != nil || n != 4 {
		return Record{}, fmt.Errorf("%w: %q", ErrInvalidRecord, s)
	}
	rec := Record{
		Side: NoSide,
		Kind: kind,
		From: Square{Row: r1, Col: c1},
		To:   Square{Row: r2, Col: c2},
	}
	if !rec.From.Valid() || !rec.To.Valid() {
		return Record{}, fmt.Errorf("%w: coordinate out of range in %q", ErrInvalidRecord, s)
	}
	return rec, nil
}
