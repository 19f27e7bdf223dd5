package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"xiangqi/internal/suggest"
	"xiangqi/internal/xiangqi"
)

var (
	ErrNotFound = errors.New("game not found")
	// 思考期间局面被改动，建议作废
	ErrStale = errors.New("position changed during suggestion")
)

// 自动应招的思考上限，建议器自己的时限通常更短
const autoReplyTimeout = 30 * time.Second

// Manager 内存里的对局表。
type Manager struct {
	mu     sync.RWMutex
	games  map[string]*Session
	render func(Snapshot) []byte

	suggester suggest.Suggester
	autoReply bool
}

func NewManager(s suggest.Suggester) *Manager {
	return &Manager{
		games:     make(map[string]*Session),
		render:    func(Snapshot) []byte { return nil },
		suggester: s,
	}
}

// SetRenderer 设置推送给订阅者的编码函数；nil 表示不推送。
func (m *Manager) SetRenderer(fn func(Snapshot) []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if fn == nil {
		fn = func(Snapshot) []byte { return nil }
	}
	m.render = fn
}

// SetAutoReply 打开后，PVE 里人走完红方会在后台让 AI 应一步，结果经订阅推送。
func (m *Manager) SetAutoReply(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.autoReply = on
}

func (m *Manager) autoReplyEnabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.autoReply && m.suggester != nil
}

func (m *Manager) renderer() func(Snapshot) []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.render
}

func (m *Manager) NewGame(mode Mode, d suggest.Difficulty) Snapshot {
	id := uuid.NewString()
	s := newSession(id, mode, d)

	m.mu.Lock()
	m.games[id] = s
	m.mu.Unlock()

	log.Printf("[game] %s created mode=%s difficulty=%s", id, mode, d)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (m *Manager) session(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *Manager) Get(id string) (Snapshot, error) {
	s, err := m.session(id)
	if err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(), nil
}

// Delete 移除一局，关闭所有订阅。
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.games[id]
	delete(m.games, id)
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	s.mu.Lock()
	for sub := range s.subs {
		delete(s.subs, sub)
		close(sub.ch)
	}
	s.mu.Unlock()
	return nil
}

// update 在会话锁内执行 fn；fn 返回 true 表示状态变了，需要推送
func (m *Manager) update(id string, fn func(s *Session) bool) (Snapshot, error) {
	s, err := m.session(id)
	if err != nil {
		return Snapshot{}, err
	}
	render := m.renderer()

	s.mu.Lock()
	defer s.mu.Unlock()
	if fn(s) {
		s.touchLocked()
		snap := s.snapshotLocked()
		s.publishLocked(render(snap))
		return snap, nil
	}
	return s.snapshotLocked(), nil
}

// Activate 把一次点击交给状态机。
// PVE 轮到 AI 时拒绝点击，返回 xiangqi.ErrNotYourTurn。
func (m *Manager) Activate(id string, row, col int) (Snapshot, xiangqi.Activation, error) {
	var (
		act     xiangqi.Activation
		turnErr error
		reply   bool
	)
	snap, err := m.update(id, func(s *Session) bool {
		if !s.humanMayMoveLocked() {
			turnErr = xiangqi.ErrNotYourTurn
			return false
		}
		act = s.game.SquareActivated(row, col)
		if act == xiangqi.ActivationMoved {
			rec, _ := s.game.LastMove()
			logMove(s.ID, rec)
			reply = s.aiToMoveLocked()
		}
		return act != xiangqi.ActivationIgnored
	})
	if err != nil {
		return snap, act, err
	}
	if turnErr != nil {
		return snap, act, turnErr
	}
	if reply {
		m.startAutoReply(id)
	}
	return snap, act, nil
}

// ApplyMove 原子地选子并落子。PVE 里不能替 AI 走黑方。
func (m *Manager) ApplyMove(id string, from, to xiangqi.Square) (Snapshot, xiangqi.Record, error) {
	var (
		rec     xiangqi.Record
		moveErr error
		reply   bool
	)
	snap, err := m.update(id, func(s *Session) bool {
		if !s.humanMayMoveLocked() {
			moveErr = xiangqi.ErrNotYourTurn
			return false
		}
		rec, moveErr = s.game.ApplyMove(from, to)
		if moveErr != nil {
			return false
		}
		logMove(s.ID, rec)
		reply = s.aiToMoveLocked()
		return true
	})
	if err != nil {
		return snap, rec, err
	}
	if moveErr != nil {
		return snap, rec, moveErr
	}
	if reply {
		m.startAutoReply(id)
	}
	return snap, rec, nil
}

// startAutoReply 在后台让 AI 应招；失败时局面不变，人可以再调 ai_move。
func (m *Manager) startAutoReply(id string) {
	if !m.autoReplyEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), autoReplyTimeout)
		defer cancel()
		// 建议器和落子的错误 SuggestAndApply 已经记过日志
		_, _, _ = m.SuggestAndApply(ctx, id)
	}()
}

func (m *Manager) Reset(id string) (Snapshot, error) {
	return m.update(id, func(s *Session) bool {
		s.game.Reset()
		log.Printf("[game] %s reset", s.ID)
		return true
	})
}

// SuggestAndApply 让建议器替当前走子方走一步。
// 建议在锁外计算；落子前确认局面没变，否则返回 ErrStale。
// 拿不到建议或建议不合法都返回包装了 suggest.ErrUnavailable 的错误，局面不变。
func (m *Manager) SuggestAndApply(ctx context.Context, id string) (Snapshot, xiangqi.Record, error) {
	if m.suggester == nil {
		return Snapshot{}, xiangqi.Record{}, fmt.Errorf("%w: no suggester configured", suggest.ErrUnavailable)
	}
	s, err := m.session(id)
	if err != nil {
		return Snapshot{}, xiangqi.Record{}, err
	}

	s.mu.Lock()
	if s.game.Status().Terminal() {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, xiangqi.Record{}, xiangqi.ErrGameOver
	}
	board := s.game.Board
	side := s.game.Turn()
	hash := s.game.Hash
	difficulty := s.difficulty
	s.mu.Unlock()

	mv, err := m.suggester.SuggestMove(ctx, board, side, difficulty)
	if err != nil {
		log.Printf("[AI] %s: %v", id, err)
		snap, gerr := m.Get(id)
		if gerr != nil {
			return Snapshot{}, xiangqi.Record{}, gerr
		}
		return snap, xiangqi.Record{}, err
	}

	var (
		rec      xiangqi.Record
		applyErr error
	)
	snap, err := m.update(id, func(s *Session) bool {
		if s.game.Hash != hash || s.game.Turn() != side {
			applyErr = ErrStale
			return false
		}
		rec, applyErr = s.game.ApplyMove(mv.From, mv.To)
		if applyErr != nil {
			applyErr = fmt.Errorf("%w: suggested %v: %w", suggest.ErrUnavailable, mv, applyErr)
			return false
		}
		logMove(s.ID, rec)
		return true
	})
	if err != nil {
		return snap, rec, err
	}
	if applyErr != nil {
		log.Printf("[AI] %s: %v", id, applyErr)
	}
	return snap, rec, applyErr
}

func logMove(id string, rec xiangqi.Record) {
	log.Printf("[game] %s %v %v", id, rec.Side, rec)
}
