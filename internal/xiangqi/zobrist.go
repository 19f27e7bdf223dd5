package xiangqi

import "math/rand/v2"

// 每种（颜色, 兵种）一个槽位，槽位 × 90 格各一个随机键
const zobristSlots = 2 * len(PieceKinds)

// zobristTable 对同一程序内的所有局面固定不变，哈希可以跨 Engine / 会话比较
type zobristTable struct {
	squares     [zobristSlots][NumSquares]uint64
	blackToMove uint64
}

var zobrist = newZobristTable(0x5851F42D4C957F2D, 0x14057B7EF767814F)

func newZobristTable(seed1, seed2 uint64) *zobristTable {
	rng := rand.New(rand.NewPCG(seed1, seed2))
	t := &zobristTable{}
	for slot := range t.squares {
		for sq := range t.squares[slot] {
			t.squares[slot][sq] = rng.Uint64()
		}
	}
	t.blackToMove = rng.Uint64()
	return t
}

// zobristSlot 把棋子映射到表里的行；空位或坏值返回 -1。
func zobristSlot(pc Piece) int {
	k := pc.Kind()
	if k <= PieceNone || k >= numPieceKinds {
		return -1
	}
	switch pc.Side() {
	case Red:
		return int(k-1) * 2
	case Black:
		return int(k-1)*2 + 1
	}
	return -1
}

// pieceHashKey 是 pc 站在 sq 上的贡献，ApplyMove 用它做增量更新。
func pieceHashKey(pc Piece, sq int) uint64 {
	slot := zobristSlot(pc)
	if slot < 0 || sq < 0 || sq >= NumSquares {
		return 0
	}
	return zobrist.squares[slot][sq]
}

// CalculateHash 从头算一遍：所有棋子的键异或，黑方走时再异或一次走子方键。
func (p *Position) CalculateHash() uint64 {
	var h uint64
	for sq, pc := range p.Board.Squares {
		h ^= pieceHashKey(pc, sq)
	}
	if p.SideToMove == Black {
		h ^= zobrist.blackToMove
	}
	return h
}

// EnsureHash 懒计算，返回当前哈希。
func (p *Position) EnsureHash() uint64 {
	if p.Hash == 0 {
		p.Hash = p.CalculateHash()
	}
	return p.Hash
}
