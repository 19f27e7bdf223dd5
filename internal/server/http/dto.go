package httpserver

import (
	"strings"
	"time"

	"xiangqi/internal/server/game"
	"xiangqi/internal/xiangqi"
)

// NewGame 请求，两个字段都可省略
type NewGameRequest struct {
	Mode       string `json:"mode"`       // "pvp" / "pve"
	Difficulty string `json:"difficulty"` // "easy" / "medium" / "hard"
}

// 点击棋盘
type ActivateRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// 直接走一步
type MoveRequest struct {
	From xiangqi.Square `json:"from"`
	To   xiangqi.Square `json:"to"`
}

// 前端用的招法结构
type MoveDTO struct {
	From     xiangqi.Square `json:"from"`
	To       xiangqi.Square `json:"to"`
	Piece    string         `json:"piece"`
	Side     string         `json:"side"`
	Captured string         `json:"captured,omitempty"`
	Text     string         `json:"text"` // 历史记录里的那一行
}

// StateResponse 所有接口都返回这个
type StateResponse struct {
	ID         string           `json:"id"`
	Position   string           `json:"position"` // FEN
	Board      [][]string       `json:"board"`
	Turn       string           `json:"turn"`
	Status     string           `json:"status"` // playing / check / win_red / win_black
	Winner     string           `json:"winner,omitempty"`
	InCheck    bool             `json:"in_check"`
	Selected   *xiangqi.Square  `json:"selected,omitempty"`
	ValidMoves []xiangqi.Square `json:"valid_moves"`
	History    []string         `json:"history"`
	Mode       string           `json:"mode"`
	Difficulty string           `json:"difficulty"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

type ActivateResponse struct {
	StateResponse
	Activation string   `json:"activation"` // ignored / selected / moved / deselected
	Move       *MoveDTO `json:"move,omitempty"`
}

type MoveResponse struct {
	StateResponse
	Move *MoveDTO `json:"move,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func sideName(s xiangqi.Side) string {
	switch s {
	case xiangqi.Red, xiangqi.Black:
		return strings.ToLower(s.String())
	default:
		return ""
	}
}

func stateFromSnapshot(snap game.Snapshot) StateResponse {
	g := snap.Game
	resp := StateResponse{
		ID:         snap.ID,
		Position:   g.Encode(),
		Board:      g.Board.Grid(),
		Turn:       sideName(g.Turn()),
		Status:     g.Status().String(),
		Winner:     sideName(g.Winner()),
		InCheck:    g.Status() == xiangqi.StatusCheck,
		ValidMoves: g.ValidMoves(),
		History:    g.HistoryStrings(),
		Mode:       snap.Mode.String(),
		Difficulty: snap.Difficulty.String(),
		UpdatedAt:  snap.UpdatedAt,
	}
	if sel, ok := g.Selection(); ok {
		resp.Selected = &sel
	}
	if resp.ValidMoves == nil {
		resp.ValidMoves = []xiangqi.Square{}
	}
	if resp.History == nil {
		resp.History = []string{}
	}
	return resp
}

func recordToDTO(rec xiangqi.Record) *MoveDTO {
	dto := &MoveDTO{
		From:  rec.From,
		To:    rec.To,
		Piece: rec.Kind.String(),
		Side:  sideName(rec.Side),
		Text:  rec.String(),
	}
	if rec.Captured != 0 {
		dto.Captured = rec.Captured.Kind().String()
	}
	return dto
}
