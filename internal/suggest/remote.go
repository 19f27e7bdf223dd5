package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"xiangqi/internal/xiangqi"
)

const maxResponseBytes = 64 << 10

// 发给远程服务的局面快照
type remoteRequest struct {
	Position   string     `json:"position"` // FEN
	Board      [][]string `json:"board"`    // 每格 FEN 字母或 "."
	Side       string     `json:"side"`     // "red" / "black"
	Difficulty string     `json:"difficulty"`
}

// 远程服务的回答：{"from":[r,c],"to":[r,c]}，也可以是 null
type remoteResponse struct {
	From []int `json:"from"`
	To   []int `json:"to"`
}

// RemoteSuggester 把局面 POST 到一个外部服务，拿回一步建议。
type RemoteSuggester struct {
	URL    string
	Client *http.Client
}

func NewRemoteSuggester(url string, timeout time.Duration) *RemoteSuggester {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteSuggester{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

func (s *RemoteSuggester) SuggestMove(ctx context.Context, board xiangqi.Board, side xiangqi.Side, d Difficulty) (xiangqi.Move, error) {
	if side != xiangqi.Red && side != xiangqi.Black {
		return xiangqi.Move{}, unavailable("invalid side %v", side)
	}

	payload, err := json.Marshal(remoteRequest{
		Position:   positionFor(board, side).Encode(),
		Board:      board.Grid(),
		Side:       strings.ToLower(side.String()),
		Difficulty: d.String(),
	})
	if err != nil {
		return xiangqi.Move{}, unavailable("encode request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(payload))
	if err != nil {
		return xiangqi.Move{}, unavailable("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return xiangqi.Move{}, unavailable("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return xiangqi.Move{}, unavailable("remote status %d", resp.StatusCode)
	}

	var out *remoteResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return xiangqi.Move{}, unavailable("decode response: %v", err)
	}
	if out == nil {
		return xiangqi.Move{}, unavailable("no move from remote")
	}
	return out.move()
}

// 只做结构校验：两个坐标都在棋盘内且不相同
func (r *remoteResponse) move() (xiangqi.Move, error) {
	if len(r.From) != 2 || len(r.To) != 2 {
		return xiangqi.Move{}, unavailable("malformed move %v -> %v", r.From, r.To)
	}
	m := xiangqi.Move{
		From: xiangqi.Sq(r.From[0], r.From[1]),
		To:   xiangqi.Sq(r.To[0], r.To[1]),
	}
	if !m.From.Valid() || !m.To.Valid() || m.From == m.To {
		return xiangqi.Move{}, unavailable("move out of range %v", m)
	}
	return m, nil
}
