package xiangqi

// MovesFrom 按行优先扫描整盘，返回 from 处棋子所有可达的格子。
// 每次调用都重新计算。
func MovesFrom(b *Board, from Square) []Square {
	if b == nil || !from.Valid() || b.At(from) == 0 {
		return nil
	}
	var out []Square
	for sq := 0; sq < NumSquares; sq++ {
		to := squareOf(sq)
		if IsLegal(b, from, to) {
			out = append(out, to)
		}
	}
	return out
}

// GenerateMovesForSide 生成指定一方的全部走法（不过滤送将）
func (p *Position) GenerateMovesForSide(side Side) []Move {
	var moves []Move
	for sq := 0; sq < NumSquares; sq++ {
		pc := p.Board.Squares[sq]
		if pc == 0 || pc.Side() != side {
			continue
		}
		from := squareOf(sq)
		for _, to := range MovesFrom(&p.Board, from) {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

func (p *Position) GenerateMoves() []Move {
	return p.GenerateMovesForSide(p.SideToMove)
}

// ApplyMove 在副本上走子，不修改 p。
// 只校验起点是走子方的棋子，规则合法性由上层负责。
func (p *Position) ApplyMove(m Move) (*Position, bool) {
	if !m.From.Valid() || !m.To.Valid() || m.From == m.To {
		return nil, false
	}
	pc := p.Board.At(m.From)
	if pc == 0 || pc.Side() != p.SideToMove {
		return nil, false
	}
	captured := p.Board.At(m.To)

	np := *p
	np.Board.Set(m.To, pc)
	np.Board.Set(m.From, 0)
	np.SideToMove = opposite(p.SideToMove)

	// 增量 Zobrist：移除 from 的子、移除被吃子（若有）、加入 to 的子、切换走子方。
	h := p.EnsureHash()
	h ^= pieceHashKey(pc, m.From.index())
	if captured != 0 {
		h ^= pieceHashKey(captured, m.To.index())
	}
	h ^= pieceHashKey(pc, m.To.index())
	h ^= zobrist.blackToMove
	np.Hash = h

	return &np, true
}
