package engine

import (
	"xiangqi/internal/xiangqi"
)

// ======= 基础子力估值 =======

var pieceValue = map[xiangqi.PieceKind]int{
	xiangqi.PieceGeneral:  100000,
	xiangqi.PieceChariot:  900,
	xiangqi.PieceCannon:   450,
	xiangqi.PieceHorse:    400,
	xiangqi.PieceElephant: 200,
	xiangqi.PieceAdvisor:  200,
	xiangqi.PieceSoldier:  100,
}

// 从红方视角的评价：正数红方好，负数黑方好
func Evaluate(pos *xiangqi.Position) int {
	materialPos := evaluateMaterialPositional(pos)
	generalSafety := evaluateGeneralSafety(pos)

	tempo := 0
	if pos.SideToMove == xiangqi.Red {
		tempo = tempoBonus
	} else if pos.SideToMove == xiangqi.Black {
		tempo = -tempoBonus
	}

	return materialPos + generalSafety + tempo
}

// 从红方视角：score = 红方 - 黑方
// 材料 + “简单位置分” 一起算
func evaluateMaterialPositional(pos *xiangqi.Position) int {
	score := 0

	for sq := 0; sq < xiangqi.NumSquares; sq++ {
		pc := pos.Board.Squares[sq]
		if pc == 0 {
			continue
		}
		side := pc.Side()
		kind := pc.Kind()

		r := sq / xiangqi.Cols
		c := sq % xiangqi.Cols

		val := pieceValue[kind] + piecePositionalBonus(kind, side, r, c)
		if side == xiangqi.Red {
			score += val
		} else if side == xiangqi.Black {
			score -= val
		}
	}

	return score
}

// 计算某个棋子在 (row, col) 的位置加成，返回对该方的加分
func piecePositionalBonus(kind xiangqi.PieceKind, side xiangqi.Side, row, col int) int {
	midCol := xiangqi.Cols / 2
	advance := rankFromSide(side, row)

	centerDist := abs(col - midCol)
	centerBonus := 4 - centerDist // 0..4，越靠中路越高

	switch kind {
	case xiangqi.PieceSoldier:
		return soldierPosBonus(side, row, advance, centerBonus)
	case xiangqi.PieceChariot:
		// 车：出动了、占中路更好
		b := centerBonus * 3
		if advance > 0 {
			b += 6
		}
		return b
	case xiangqi.PieceCannon:
		// 炮：中炮最常见，过河略加分
		b := centerBonus * 3
		if col == midCol {
			b += 6
		}
		if soldierCrossedLocal(side, row) {
			b += 4
		}
		return b
	case xiangqi.PieceHorse:
		// 马：离开底线、靠中路
		b := centerBonus * 5
		if advance >= 2 && advance <= 6 {
			b += 8
		}
		return b
	case xiangqi.PieceElephant, xiangqi.PieceAdvisor:
		if col == midCol {
			return 4
		}
		return 0
	case xiangqi.PieceGeneral:
		// 帅：待在底线中路最稳
		b := 0
		if col == midCol {
			b += 4
		}
		if advance > 0 {
			b -= 6 * advance
		}
		return b
	}

	return 0
}

func soldierPosBonus(side xiangqi.Side, row, advance, centerBonus int) int {
	b := 0

	// 过河大加分，越往前越好
	if soldierCrossedLocal(side, row) {
		b += 60 + advance*4
		b += centerBonus * 4
	}

	// 兵到底线（老兵）已经失去前进能力
	if (side == xiangqi.Red && row == 0) || (side == xiangqi.Black && row == xiangqi.Rows-1) {
		b -= 40
	}

	return b
}

// 一些权重，可之后慢慢调
const (
	generalMissingAdvisorPenalty  = 30
	generalMissingElephantPenalty = 20

	generalChariotDirectPressure = 45
	generalCannonScreenPressure  = 35

	tempoBonus = 5
)

func evaluateGeneralSafety(pos *xiangqi.Position) int {
	score := 0

	for _, side := range []xiangqi.Side{xiangqi.Red, xiangqi.Black} {
		general, ok := pos.Board.Find(side, xiangqi.PieceGeneral)
		if !ok {
			continue // 已经被吃，由搜索层按杀棋处理
		}

		numAdvisor, numElephant := countAdvisorElephant(pos, side)

		penalty := 0
		if numAdvisor < 2 {
			penalty += (2 - numAdvisor) * generalMissingAdvisorPenalty
		}
		if numElephant < 2 {
			penalty += (2 - numElephant) * generalMissingElephantPenalty
		}

		// 直线车/炮的威胁（只看最近一门，简单版）
		penalty += straightLongRangePressure(pos, side, general)

		if side == xiangqi.Red {
			score -= penalty
		} else {
			score += penalty
		}
	}

	return score
}

func countAdvisorElephant(pos *xiangqi.Position, side xiangqi.Side) (numAdvisor, numElephant int) {
	for sq := 0; sq < xiangqi.NumSquares; sq++ {
		pc := pos.Board.Squares[sq]
		if pc == 0 || pc.Side() != side {
			continue
		}
		switch pc.Kind() {
		case xiangqi.PieceAdvisor:
			numAdvisor++
		case xiangqi.PieceElephant:
			numElephant++
		}
	}
	return
}

// 四个正方向上查：敌方车/炮的直线威胁
func straightLongRangePressure(pos *xiangqi.Position, side xiangqi.Side, general xiangqi.Square) int {
	enemy := side.Opponent()

	type dir struct{ dr, dc int }
	dirs := []dir{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

	total := 0

	for _, d := range dirs {
		r, c := general.Row+d.dr, general.Col+d.dc
		screenCount := 0

		for r >= 0 && r < xiangqi.Rows && c >= 0 && c < xiangqi.Cols {
			pc := pos.Board.Squares[r*xiangqi.Cols+c]

			if pc != 0 {
				if pc.Side() == enemy {
					switch pc.Kind() {
					case xiangqi.PieceChariot:
						if screenCount == 0 {
							total += generalChariotDirectPressure
						}
					case xiangqi.PieceCannon:
						if screenCount == 1 {
							total += generalCannonScreenPressure
						}
					}
				}
				screenCount++
				if screenCount > 1 {
					break
				}
			}

			r += d.dr
			c += d.dc
		}
	}

	return total
}

func soldierCrossedLocal(side xiangqi.Side, row int) bool {
	if side == xiangqi.Red {
		return row < xiangqi.RiverRow
	}
	if side == xiangqi.Black {
		return row >= xiangqi.RiverRow
	}
	return false
}

// 自己这边的“前进距离”：家附近≈0，越靠近敌营数值越大
func rankFromSide(side xiangqi.Side, row int) int {
	if side == xiangqi.Red {
		return xiangqi.Rows - 1 - row
	}
	if side == xiangqi.Black {
		return row
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
