package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"xiangqi/internal/server/game"
	"xiangqi/internal/suggest"
	"xiangqi/internal/xiangqi"
)

const maxJSONBodyBytes int64 = 1 << 20

var heartbeatInterval = 15 * time.Second

type handlers struct {
	games *game.Manager
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		log.Println("writeJSON error:", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// 领域错误 -> HTTP 状态码
func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, xiangqi.ErrInvalidCoordinate):
		return http.StatusBadRequest
	case errors.Is(err, suggest.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, xiangqi.ErrNotYourTurn),
		errors.Is(err, xiangqi.ErrGameOver),
		errors.Is(err, game.ErrStale):
		return http.StatusConflict
	case errors.Is(err, xiangqi.ErrNoPiece),
		errors.Is(err, xiangqi.ErrIllegalMove):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// 允许空 body
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (h *handlers) newGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	mode, err := game.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, err := suggest.ParseDifficulty(req.Difficulty)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap := h.games.NewGame(mode, d)
	writeJSON(w, http.StatusCreated, stateFromSnapshot(snap))
}

func (h *handlers) state(w http.ResponseWriter, r *http.Request) {
	snap, err := h.games.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stateFromSnapshot(snap))
}

func (h *handlers) activate(w http.ResponseWriter, r *http.Request) {
	var req ActivateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	snap, act, err := h.games.Activate(chi.URLParam(r, "id"), req.Row, req.Col)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	resp := ActivateResponse{
		StateResponse: stateFromSnapshot(snap),
		Activation:    act.String(),
	}
	if rec, ok := snap.Game.LastMove(); ok && act == xiangqi.ActivationMoved {
		resp.Move = recordToDTO(rec)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) move(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	snap, rec, err := h.games.ApplyMove(chi.URLParam(r, "id"), req.From, req.To)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, MoveResponse{
		StateResponse: stateFromSnapshot(snap),
		Move:          recordToDTO(rec),
	})
}

// AI 替当前走子方走一步，只在局面没变时落子
func (h *handlers) aiMove(w http.ResponseWriter, r *http.Request) {
	snap, rec, err := h.games.SuggestAndApply(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, MoveResponse{
		StateResponse: stateFromSnapshot(snap),
		Move:          recordToDTO(rec),
	})
}

func (h *handlers) reset(w http.ResponseWriter, r *http.Request) {
	snap, err := h.games.Reset(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stateFromSnapshot(snap))
}

// SSE：每次状态变化推一条 event: state
func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ctx := r.Context()
	ch, unsub, err := h.games.Subscribe(ctx, id)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	defer unsub()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case b, ok := <-ch:
			if !ok {
				return
			}
			_, _ = fmt.Fprintf(w, "event: state\ndata: %s\n\n", b)
			flusher.Flush()
		}
	}
}

// 推送给订阅者的内容就是 StateResponse 的 JSON
func renderState(snap game.Snapshot) []byte {
	b, err := json.Marshal(stateFromSnapshot(snap))
	if err != nil {
		log.Println("renderState error:", err)
		return nil
	}
	return b
}
