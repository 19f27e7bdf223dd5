package xiangqi

// IsAttacked 判断 sq 是否被 bySide 攻击：对方任一棋子能合法走到该格即算。
func IsAttacked(b *Board, sq Square, bySide Side) bool {
	if b == nil || !sq.Valid() {
		return false
	}
	for s := 0; s < NumSquares; s++ {
		pc := b.Squares[s]
		if pc == 0 || pc.Side() != bySide {
			continue
		}
		if IsLegal(b, squareOf(s), sq) {
			return true
		}
	}
	return false
}

// IsInCheck 判断 side 一方的将是否被将军，含将帅对脸。
// 将已被吃掉时返回 false。
func IsInCheck(b *Board, side Side) bool {
	if b == nil {
		return false
	}
	general, ok := b.Find(side, PieceGeneral)
	if !ok {
		return false
	}
	if IsAttacked(b, general, opposite(side)) {
		return true
	}
	return GeneralsFace(b)
}

// GeneralsFace 两将同列且中间无子
func GeneralsFace(b *Board) bool {
	red, ok := b.Find(Red, PieceGeneral)
	if !ok {
		return false
	}
	black, ok := b.Find(Black, PieceGeneral)
	if !ok {
		return false
	}
	if red.Col != black.Col {
		return false
	}
	n, ok := countBetween(b, red, black)
	return ok && n == 0
}

func (p *Position) IsInCheck(side Side) bool {
	return IsInCheck(&p.Board, side)
}

func (p *Position) GeneralExists(side Side) bool {
	_, ok := p.Board.Find(side, PieceGeneral)
	return ok
}
