package httpserver

import (
	"fmt"

	"cubechess/internal/cubechess"
	"cubechess/internal/server/game"
)

// 前端用的坐标
type CoordDTO struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

func (c CoordDTO) coord() cubechess.Coord { return cubechess.Coord{X: c.X, Y: c.Y, Z: c.Z} }

func coordToDTO(c cubechess.Coord) CoordDTO { return CoordDTO{X: c.X, Y: c.Y, Z: c.Z} }

type PieceDTO struct {
	Role  string   `json:"role"`
	Side  int      `json:"side"` // 0=白, 1=黑
	At    CoordDTO `json:"at"`
	Moved bool     `json:"moved"`
}

type MoveDTO struct {
	To      CoordDTO `json:"to"`
	Capture bool     `json:"capture"`
	Castle  string   `json:"castle,omitempty"` // "king" / "queen"
}

// State 请求
type StateRequest struct {
	GameID string `json:"game_id"`
}

// Click 请求：点击某个格子（选子/走子/取消选择）
type ClickRequest struct {
	GameID string   `json:"game_id"`
	At     CoordDTO `json:"at"`
}

// Promote 请求：role 为 rook/knight/bishop/queen
type PromoteRequest struct {
	GameID string `json:"game_id"`
	Role   string `json:"role"`
}

type PendingDTO struct {
	From CoordDTO `json:"from"`
	To   CoordDTO `json:"to"`
}

// 所有接口都返回同一个状态结构
type StateResponse struct {
	GameID      string        `json:"game_id"`
	Position    string        `json:"position"`
	PositionKey string        `json:"position_key"` // 局面的 Zobrist 哈希，前端据此判断棋盘是否变化
	Pieces      []PieceDTO    `json:"pieces"`
	ToMove      int           `json:"to_move"`
	Status      string        `json:"status"` // "ACTIVE" / "WHITE WINS" / "BLACK WINS"
	Selected    *PieceDTO     `json:"selected,omitempty"`
	ValidMoves  []MoveDTO     `json:"valid_moves"`
	Captured    [2][]PieceDTO `json:"captured"`
	Pending     *PendingDTO   `json:"pending_promotion,omitempty"`
	Plies       int           `json:"plies"`
	Winner      int           `json:"winner"` // -1 表示没有

	// 本次操作吃掉的子
	CapturedNow *PieceDTO `json:"captured_now,omitempty"`
}

func sideToInt(s cubechess.Side) int {
	switch s {
	case cubechess.White:
		return 0
	case cubechess.Black:
		return 1
	default:
		return -1
	}
}

func pieceToDTO(p cubechess.Piece) PieceDTO {
	return PieceDTO{
		Role:  p.Role.String(),
		Side:  sideToInt(p.Side),
		At:    coordToDTO(p.At()),
		Moved: p.Moved,
	}
}

func piecesToDTO(ps []cubechess.Piece) []PieceDTO {
	out := make([]PieceDTO, len(ps))
	for i, p := range ps {
		out[i] = pieceToDTO(p)
	}
	return out
}

func moveToDTO(m cubechess.Move) MoveDTO {
	dto := MoveDTO{To: coordToDTO(m.To), Capture: m.Capture}
	switch m.Castle {
	case cubechess.KingSide:
		dto.Castle = "king"
	case cubechess.QueenSide:
		dto.Castle = "queen"
	}
	return dto
}

func movesToDTO(ms []cubechess.Move) []MoveDTO {
	out := make([]MoveDTO, len(ms))
	for i, m := range ms {
		out[i] = moveToDTO(m)
	}
	return out
}

func parseRole(s string) (cubechess.Role, bool) {
	switch s {
	case "rook", "Rook", "r", "R":
		return cubechess.Rook, true
	case "knight", "Knight", "n", "N":
		return cubechess.Knight, true
	case "bishop", "Bishop", "b", "B":
		return cubechess.Bishop, true
	case "queen", "Queen", "q", "Q":
		return cubechess.Queen, true
	case "king", "King", "k", "K":
		return cubechess.King, true
	case "pawn", "Pawn", "p", "P":
		return cubechess.Pawn, true
	}
	return cubechess.RoleNone, false
}

func stateResponse(snap game.Snapshot, eff cubechess.Effects) StateResponse {
	s := snap.Session
	resp := StateResponse{
		GameID:      snap.ID,
		Position:    s.Board.Encode(),
		PositionKey: fmt.Sprintf("%016x", s.Board.Hash),
		Pieces:      piecesToDTO(s.Board.Pieces(cubechess.NoSide)),
		ToMove:      sideToInt(s.Turn),
		Status:      s.StatusText(),
		ValidMoves:  movesToDTO(s.ValidMoves),
		Captured:    [2][]PieceDTO{piecesToDTO(s.Captured[0]), piecesToDTO(s.Captured[1])},
		Plies:       s.Plies,
		Winner:      sideToInt(s.Winner),
	}
	if s.Selected != nil {
		sel := pieceToDTO(*s.Selected)
		resp.Selected = &sel
	}
	if s.Pending != nil {
		resp.Pending = &PendingDTO{From: coordToDTO(s.Pending.Piece.At()), To: coordToDTO(s.Pending.To)}
	}
	if eff.Captured != nil {
		captured := pieceToDTO(*eff.Captured)
		resp.CapturedNow = &captured
	}
	return resp
}
