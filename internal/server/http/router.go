package httpserver

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"xiangqi/internal/server/game"
)

// Handler 实现 http.Handler：/api/* 接口 + 可选的静态页面
type Handler struct {
	router chi.Router
	games  *game.Manager
}

// NewHandler 挂好所有路由。webDir 为空时不提供静态页面。
// 同时把 Manager 的推送编码设置为状态 JSON。
func NewHandler(m *game.Manager, webDir, mobileDir string) *Handler {
	m.SetRenderer(renderState)

	h := &handlers{games: m}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/games", func(r chi.Router) {
		r.Post("/", h.newGame)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.state)
			r.Post("/activate", h.activate)
			r.Post("/move", h.move)
			r.Post("/ai_move", h.aiMove)
			r.Post("/reset", h.reset)
			r.Get("/events", h.events)
		})
	})

	if webDir != "" {
		RegisterStaticRoutes(r, webDir, mobileDir)
	}

	return &Handler{router: r, games: m}
}

func (h *Handler) Games() *game.Manager {
	return h.games
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// Server 包一层 http.Server，支持优雅关闭
type Server struct {
	mu     sync.Mutex
	srv    *http.Server
	cancel context.CancelFunc // 关闭时结束 SSE 之类的长连接
	closed bool
	h      http.Handler
}

func NewServer(h http.Handler) *Server {
	return &Server{h: h}
}

// Listen 阻塞直到服务关闭；正常关闭返回 nil。
// SSE 是长连接，所以不设置 WriteTimeout。
func (s *Server) Listen(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}
	baseCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv.BaseContext = func(net.Listener) context.Context { return baseCtx }

	s.mu.Lock()
	if s.closed {
		// Close 先于 Listen 到达
		s.mu.Unlock()
		return nil
	}
	s.srv = srv
	s.cancel = cancel
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.srv = nil
		s.cancel = nil
		s.mu.Unlock()
	}()

	log.Printf("HTTP listening on %s", addr)
	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close 优雅关闭。之后的 Listen 直接返回 nil。
func (s *Server) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	srv, cancel := s.srv, s.cancel
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	cancel()
	return srv.Shutdown(ctx)
}
