package game

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"xiangqi/internal/suggest"
	"xiangqi/internal/xiangqi"
)

// Mode 对局模式
type Mode int

const (
	ModePVP Mode = iota // 双人
	ModePVE             // 人机，AI 执黑
)

const aiSide = xiangqi.Black

func (m Mode) String() string {
	switch m {
	case ModePVP:
		return "pvp"
	case ModePVE:
		return "pve"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode 空串按 PVP。
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pvp":
		return ModePVP, nil
	case "pve", "ai":
		return ModePVE, nil
	default:
		return ModePVP, fmt.Errorf("unknown mode %q", s)
	}
}

// Session 一局棋。game 和订阅者都由 mu 保护。
type Session struct {
	ID string

	mu         sync.Mutex
	game       *xiangqi.Game
	mode       Mode
	difficulty suggest.Difficulty
	createdAt  time.Time
	updatedAt  time.Time
	subs       map[*subscriber]struct{}
}

// Snapshot 是某一时刻的只读拷贝，可以在锁外随便用
type Snapshot struct {
	ID         string
	Mode       Mode
	Difficulty suggest.Difficulty
	Game       *xiangqi.Game
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func newSession(id string, mode Mode, d suggest.Difficulty) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		game:       xiangqi.NewGame(),
		mode:       mode,
		difficulty: d,
		createdAt:  now,
		updatedAt:  now,
		subs:       make(map[*subscriber]struct{}),
	}
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		ID:         s.ID,
		Mode:       s.mode,
		Difficulty: s.difficulty,
		Game:       s.game.Clone(),
		CreatedAt:  s.createdAt,
		UpdatedAt:  s.updatedAt,
	}
}

// PVE 里黑方归 AI，人只能走红方；分出胜负后交给状态机处理
func (s *Session) humanMayMoveLocked() bool {
	return s.mode != ModePVE || s.game.Status().Terminal() || s.game.Turn() != aiSide
}

// 轮到 AI 且对局未结束
func (s *Session) aiToMoveLocked() bool {
	return s.mode == ModePVE && !s.game.Status().Terminal() && s.game.Turn() == aiSide
}

func (s *Session) touchLocked() {
	s.updatedAt = time.Now()
}
