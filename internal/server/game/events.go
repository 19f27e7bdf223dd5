package game

import (
	"context"
	"sync"
)

type subscriber struct {
	ch chan []byte
}

// 订阅者集合由 Session.mu 保护；channel 只在持锁时发送和关闭。
func (s *Session) addSubscriberLocked() *subscriber {
	sub := &subscriber{ch: make(chan []byte, 4)}
	s.subs[sub] = struct{}{}
	return sub
}

func (s *Session) removeSubscriber(sub *subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[sub]; ok {
		delete(s.subs, sub)
		close(sub.ch)
	}
}

// 非阻塞广播；跟不上的订阅者直接踢掉
func (s *Session) publishLocked(payload []byte) {
	if payload == nil {
		return
	}
	for sub := range s.subs {
		select {
		case sub.ch <- payload:
		default:
			delete(s.subs, sub)
			close(sub.ch)
		}
	}
}

// Subscribe 订阅某局的状态推送。当前状态会先推一次。
// ctx 结束或调用返回的函数都会退订，channel 随之关闭。
func (m *Manager) Subscribe(ctx context.Context, id string) (<-chan []byte, func(), error) {
	s, err := m.session(id)
	if err != nil {
		return nil, nil, err
	}
	render := m.renderer()

	s.mu.Lock()
	sub := s.addSubscriberLocked()
	if payload := render(s.snapshotLocked()); payload != nil {
		sub.ch <- payload
	}
	s.mu.Unlock()

	var once sync.Once
	done := make(chan struct{})
	unsub := func() {
		once.Do(func() {
			s.removeSubscriber(sub)
			close(done)
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			unsub()
		case <-done:
		}
	}()
	return sub.ch, unsub, nil
}

// Subscribers 返回某局当前的订阅数。
func (m *Manager) Subscribers(id string) int {
	s, err := m.session(id)
	if err != nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
