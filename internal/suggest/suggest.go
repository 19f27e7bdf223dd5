// Package suggest 提供走法建议：本地搜索引擎或远程服务。
// 调用方必须把任何错误都当成“没有建议”，并在落子前自行校验合法性。
package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"xiangqi/internal/xiangqi"
)

// ErrUnavailable 表示拿不到建议：超时、出错、没有可走的棋或返回格式不对。
var ErrUnavailable = errors.New("suggestion unavailable")

type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// ParseDifficulty 大小写不敏感；空串按 Medium。
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "", "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	default:
		return Medium, fmt.Errorf("unknown difficulty %q", s)
	}
}

// Suggester 给出 side 在 board 上的一步建议。
// 返回的着法只保证坐标在棋盘内，不保证合法。
type Suggester interface {
	SuggestMove(ctx context.Context, board xiangqi.Board, side xiangqi.Side, d Difficulty) (xiangqi.Move, error)
}

// 把 Board + 走子方拼成一个带哈希的局面
func positionFor(board xiangqi.Board, side xiangqi.Side) *xiangqi.Position {
	pos := &xiangqi.Position{Board: board, SideToMove: side}
	pos.Hash = pos.CalculateHash()
	return pos
}

func unavailable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnavailable, fmt.Sprintf(format, args...))
}
