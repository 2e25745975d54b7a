package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"cubechess/internal/cubechess"
	"cubechess/internal/storage"
)

// 存档里未结束的对局双方都必须还有王
var ErrCorruptRecord = errors.New("corrupt game record")

type GameState struct {
	ID        string
	Session   Session
	CreatedAt time.Time
	UpdatedAt time.Time

	// 同一局的调用串行执行：先生成走法再落子不是原子的
	mu sync.Mutex
}

// Snapshot 只读副本
type Snapshot struct {
	ID        string
	Session   Session
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (g *GameState) snapshot() Snapshot {
	return Snapshot{ID: g.ID, Session: g.Session, CreatedAt: g.CreatedAt, UpdatedAt: g.UpdatedAt}
}

func (g *GameState) record() *storage.GameRecord {
	s := g.Session
	return &storage.GameRecord{
		ID:        g.ID,
		Board:     s.Board.Encode(),
		Turn:      s.Turn,
		Terminal:  s.Status == StatusTerminal,
		Winner:    s.Winner,
		Captured:  s.Captured,
		Pending:   s.Pending,
		Plies:     s.Plies,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func fromRecord(rec *storage.GameRecord) (*GameState, error) {
	board, err := cubechess.DecodeBoard(rec.Board)
	if err != nil {
		return nil, err
	}
	s := Session{
		Board:    board,
		Turn:     rec.Turn,
		Captured: rec.Captured,
		Status:   StatusActive,
		Winner:   cubechess.NoSide,
		Pending:  rec.Pending,
		Plies:    rec.Plies,
	}
	if rec.Terminal {
		s.Status = StatusTerminal
		s.Winner = rec.Winner
	} else {
		for _, side := range [2]cubechess.Side{cubechess.White, cubechess.Black} {
			if !board.KingExists(side) {
				return nil, fmt.Errorf("%w: %s: active game without %s king", ErrCorruptRecord, rec.ID, side)
			}
		}
	}
	return &GameState{ID: rec.ID, Session: s, CreatedAt: rec.CreatedAt, UpdatedAt: rec.UpdatedAt}, nil
}
