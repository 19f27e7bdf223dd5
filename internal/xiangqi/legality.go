package xiangqi

// IsLegal 判断 from -> to 是否符合该棋子的走法规则。
// 越界、起点无子、终点为己方棋子一律返回 false。
// 不检查走后己方是否被将军。
func IsLegal(b *Board, from, to Square) bool {
	if b == nil || !from.Valid() || !to.Valid() {
		return false
	}
	pc := b.At(from)
	if pc == 0 {
		return false
	}
	side := pc.Side()
	if dst := b.At(to); dst != 0 && dst.Side() == side {
		return false
	}

	dr := to.Row - from.Row
	dc := to.Col - from.Col

	switch pc.Kind() {
	case PieceGeneral:
		return legalGeneral(side, to, dr, dc)
	case PieceAdvisor:
		return legalAdvisor(side, to, dr, dc)
	case PieceElephant:
		return legalElephant(b, side, from, to, dr, dc)
	case PieceHorse:
		return legalHorse(b, from, dr, dc)
	case PieceChariot:
		return legalChariot(b, from, to)
	case PieceCannon:
		return legalCannon(b, from, to)
	case PieceSoldier:
		return legalSoldier(side, from, dr, dc)
	default:
		return false
	}
}

// 将：九宫内上下左右一格
func legalGeneral(side Side, to Square, dr, dc int) bool {
	if abs(dr)+abs(dc) != 1 {
		return false
	}
	return inPalace(side, to.Row, to.Col)
}

// 士：九宫内斜走一格
func legalAdvisor(side Side, to Square, dr, dc int) bool {
	if abs(dr) != 1 || abs(dc) != 1 {
		return false
	}
	return inPalace(side, to.Row, to.Col)
}

// 相：田字 + 不过河 + 塞象眼
func legalElephant(b *Board, side Side, from, to Square, dr, dc int) bool {
	if abs(dr) != 2 || abs(dc) != 2 {
		return false
	}
	if !onOwnHalf(side, to.Row) {
		return false
	}
	eye := Square{Row: from.Row + dr/2, Col: from.Col + dc/2}
	return b.At(eye) == 0
}

// 马：日字 + 蹩马腿
func legalHorse(b *Board, from Square, dr, dc int) bool {
	var leg Square
	switch {
	case abs(dr) == 2 && abs(dc) == 1:
		leg = Square{Row: from.Row + dr/2, Col: from.Col}
	case abs(dr) == 1 && abs(dc) == 2:
		leg = Square{Row: from.Row, Col: from.Col + dc/2}
	default:
		return false
	}
	return b.At(leg) == 0
}

// 车：直线，中间无子
func legalChariot(b *Board, from, to Square) bool {
	n, ok := countBetween(b, from, to)
	return ok && n == 0
}

// 炮：平移时中间无子；吃子时中间恰好一个炮架
func legalCannon(b *Board, from, to Square) bool {
	n, ok := countBetween(b, from, to)
	if !ok {
		return false
	}
	if b.At(to) == 0 {
		return n == 0
	}
	return n == 1
}

// 兵：向前一格；过河后可左右一格；不能后退
func legalSoldier(side Side, from Square, dr, dc int) bool {
	forward := soldierDir(side)
	if dc == 0 && dr == forward {
		return true
	}
	if dr == 0 && abs(dc) == 1 && soldierCrossed(side, from.Row) {
		return true
	}
	return false
}

// countBetween 统计同一直线上 from 与 to 之间（不含两端）的棋子数。
// 两点不在同一行/列时 ok=false。
func countBetween(b *Board, from, to Square) (n int, ok bool) {
	if from == to {
		return 0, false
	}
	switch {
	case from.Row == to.Row:
		step := sign(to.Col - from.Col)
		for c := from.Col + step; c != to.Col; c += step {
			if b.Squares[indexOf(from.Row, c)] != 0 {
				n++
			}
		}
	case from.Col == to.Col:
		step := sign(to.Row - from.Row)
		for r := from.Row + step; r != to.Row; r += step {
			if b.Squares[indexOf(r, from.Col)] != 0 {
				n++
			}
		}
	default:
		return 0, false
	}
	return n, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
